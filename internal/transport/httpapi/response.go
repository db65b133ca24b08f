package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"recruitflow/internal/bootstrap/logging"
	"recruitflow/internal/errs"
	"recruitflow/internal/usecase/review"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, kind string, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Kind: kind, Message: message}})
}

// writeServiceError maps error kinds to status codes. Unkinded errors are
// logged and reported without their internal detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	kind := errs.KindOf(err)
	status := statusForKind(kind)
	if status == http.StatusInternalServerError {
		logging.Error(r.Context(), "request failed", slog.Any("err", errs.Loggable(err)))
		writeError(w, status, "internal", "internal error")
		return
	}
	writeError(w, status, string(kind), err.Error())
}

func statusForKind(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidTransition, errs.KindInvalidScore, errs.KindValidation:
		return http.StatusUnprocessableEntity
	case errs.KindWindowClosed:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func pathID(r *http.Request, name string) (uint64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, errs.Newf(errs.KindValidation, "invalid %s %q", name, raw)
	}
	return id, nil
}

func decodeBody(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return errs.Newf(errs.KindValidation, "invalid request body: %v", err)
	}
	return nil
}

// filterFromQuery reads status=a,b and posting=1,2; repeated parameters are merged.
func filterFromQuery(r *http.Request) (review.Filter, error) {
	query := r.URL.Query()
	var filter review.Filter
	for _, value := range query["status"] {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				filter.Statuses = append(filter.Statuses, part)
			}
		}
	}
	for _, value := range query["posting"] {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil {
				return review.Filter{}, errs.Newf(errs.KindValidation, "invalid posting %q", part)
			}
			filter.PostingIDs = append(filter.PostingIDs, id)
		}
	}
	return filter, nil
}
