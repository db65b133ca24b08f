package httpapi

import (
	"context"
	"iter"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"recruitflow/internal/bootstrap/logging"
	domainreview "recruitflow/internal/domain/review"
	"recruitflow/internal/usecase/review"
)

const (
	headerReviewer  = "X-Reviewer"
	headerSubmitter = "X-Submitter"
	headerRequestID = "X-Request-ID"
)

// ReviewService is the slice of the review engine exposed over HTTP.
type ReviewService interface {
	Submit(context.Context, review.SubmitInput) (uint64, error)
	PostingPhase(context.Context, uint64) (domainreview.PostingPhase, error)
	ListApplications(context.Context, review.Filter, int) (review.ApplicationPage, error)
	GetApplication(context.Context, uint64) (review.ApplicationDetail, error)
	AuditTrail(context.Context, uint64) ([]review.AuditItem, error)
	Adjacent(context.Context, uint64, review.Filter) (review.Neighbours, error)
	Transition(context.Context, review.TransitionInput) (review.TransitionResult, error)
	RecordEvaluation(context.Context, review.RecordEvaluationInput) (review.EvaluationItem, error)
	ListEvaluations(context.Context, uint64) ([]review.EvaluationItem, error)
	DeleteEvaluation(context.Context, uint64) error
	ExportRows(context.Context, review.Filter) iter.Seq2[review.ExportRow, error]
}

type handler struct {
	svc ReviewService
}

// NewRouter mounts the review API. Every request carries a request id in its
// logging context, taken from X-Request-ID when present.
func NewRouter(svc ReviewService) http.Handler {
	h := &handler{svc: svc}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/postings/{postingID}/phase", h.postingPhase)
	r.Post("/postings/{postingID}/applications", h.submitApplication)

	r.Route("/applications", func(r chi.Router) {
		r.Get("/", h.listApplications)
		r.Get("/export", h.exportApplications)
		r.Route("/{applicationID}", func(r chi.Router) {
			r.Get("/", h.getApplication)
			r.Get("/audit", h.auditTrail)
			r.Get("/adjacent", h.adjacent)
			r.Post("/transitions", h.transition)
			r.Get("/evaluations", h.listEvaluations)
			r.Post("/evaluations", h.recordEvaluation)
		})
	})
	r.Delete("/evaluations/{evaluationID}", h.deleteEvaluation)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(headerRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(headerRequestID, requestID)

		ctx := logging.WithRequestID(r.Context(), requestID)
		ctx = logging.WithAttrs(ctx,
			slog.String("component", "transport.http"),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(ctx))

		logging.Info(ctx, "request served",
			slog.Int("status", ww.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	})
}
