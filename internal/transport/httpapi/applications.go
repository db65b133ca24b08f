package httpapi

import (
	"encoding/csv"
	"iter"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"recruitflow/internal/bootstrap/logging"
	"recruitflow/internal/errs"
	"recruitflow/internal/usecase/review"
)

type attachmentJSON struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

type submitRequest struct {
	Name        string           `json:"name"`
	Email       string           `json:"email"`
	Phone       string           `json:"phone"`
	Attachments []attachmentJSON `json:"attachments"`
	Referral    string           `json:"referral"`
}

type submitResponse struct {
	ApplicationID uint64 `json:"application_id"`
}

type phaseResponse struct {
	PostingID uint64  `json:"posting_id"`
	Computed  string  `json:"computed"`
	Override  *string `json:"override,omitempty"`
	Effective string  `json:"effective"`
}

type applicationItemJSON struct {
	ApplicationID uint64 `json:"application_id"`
	PostingID     uint64 `json:"posting_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Status        string `json:"status"`
	StatusLabel   string `json:"status_label"`
	Referral      string `json:"referral,omitempty"`
	LatestTotal   *int   `json:"latest_total"`
	CreatedAt     string `json:"created_at"`
}

type applicationPageJSON struct {
	Items      []applicationItemJSON `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

type applicationDetailJSON struct {
	ApplicationID uint64           `json:"application_id"`
	PostingID     uint64           `json:"posting_id"`
	PostingTitle  string           `json:"posting_title"`
	SubmitterRef  string           `json:"submitter_ref"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	Attachments   []attachmentJSON `json:"attachments"`
	Referral      string           `json:"referral,omitempty"`
	Status        string           `json:"status"`
	StatusLabel   string           `json:"status_label"`
	AllowedNext   []string         `json:"allowed_next"`
	CreatedAt     string           `json:"created_at"`
	UpdatedAt     string           `json:"updated_at"`
}

type auditItemJSON struct {
	AuditID    uint64 `json:"audit_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	Actor      string `json:"actor"`
	CreatedAt  string `json:"created_at"`
}

type adjacentResponse struct {
	PrevID *uint64 `json:"prev_id"`
	NextID *uint64 `json:"next_id"`
}

type transitionRequest struct {
	Status string `json:"status"`
}

type transitionResponse struct {
	ApplicationID uint64 `json:"application_id"`
	Status        string `json:"status"`
}

func (h *handler) postingPhase(w http.ResponseWriter, r *http.Request) {
	postingID, err := pathID(r, "postingID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	phase, err := h.svc.PostingPhase(r.Context(), postingID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, phaseResponse{
		PostingID: postingID,
		Computed:  string(phase.Computed),
		Override:  phase.Override,
		Effective: phase.Effective(),
	})
}

func (h *handler) submitApplication(w http.ResponseWriter, r *http.Request) {
	postingID, err := pathID(r, "postingID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req submitRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	attachments := make([]review.Attachment, 0, len(req.Attachments))
	for _, a := range req.Attachments {
		attachments = append(attachments, review.Attachment{URL: a.URL, Name: a.Name})
	}

	id, err := h.svc.Submit(r.Context(), review.SubmitInput{
		PostingID:    postingID,
		SubmitterRef: r.Header.Get(headerSubmitter),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Attachments:  attachments,
		Referral:     req.Referral,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, submitResponse{ApplicationID: id})
}

func (h *handler) listApplications(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	page := 1
	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeServiceError(w, r, errs.Newf(errs.KindValidation, "invalid page %q", raw))
			return
		}
		page = n
	}

	out, err := h.svc.ListApplications(r.Context(), filter, page)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	resp := applicationPageJSON{
		Items:      make([]applicationItemJSON, 0, len(out.Items)),
		Total:      out.Total,
		Page:       out.Page,
		PageSize:   out.PageSize,
		TotalPages: out.TotalPages,
	}
	for _, item := range out.Items {
		resp.Items = append(resp.Items, applicationItemJSON{
			ApplicationID: item.ApplicationID,
			PostingID:     item.PostingID,
			Name:          item.ApplicantName,
			Email:         item.Email,
			Status:        item.Status,
			StatusLabel:   item.StatusLabel,
			Referral:      item.Referral,
			LatestTotal:   item.LatestTotal,
			CreatedAt:     item.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) getApplication(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "applicationID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	detail, err := h.svc.GetApplication(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	attachments := make([]attachmentJSON, 0, len(detail.Attachments))
	for _, a := range detail.Attachments {
		attachments = append(attachments, attachmentJSON{URL: a.URL, Name: a.Name})
	}
	writeJSON(w, http.StatusOK, applicationDetailJSON{
		ApplicationID: detail.ApplicationID,
		PostingID:     detail.PostingID,
		PostingTitle:  detail.PostingTitle,
		SubmitterRef:  detail.SubmitterRef,
		Name:          detail.Name,
		Email:         detail.Email,
		Phone:         detail.Phone,
		Attachments:   attachments,
		Referral:      detail.Referral,
		Status:        detail.Status,
		StatusLabel:   detail.StatusLabel,
		AllowedNext:   detail.AllowedNext,
		CreatedAt:     detail.CreatedAt,
		UpdatedAt:     detail.UpdatedAt,
	})
}

func (h *handler) auditTrail(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "applicationID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	trail, err := h.svc.AuditTrail(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]auditItemJSON, 0, len(trail))
	for _, entry := range trail {
		out = append(out, auditItemJSON{
			AuditID:    entry.AuditID,
			FromStatus: entry.FromStatus,
			ToStatus:   entry.ToStatus,
			Actor:      entry.Actor,
			CreatedAt:  entry.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) adjacent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "applicationID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	filter, err := filterFromQuery(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out, err := h.svc.Adjacent(r.Context(), id, filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adjacentResponse{PrevID: out.PrevID, NextID: out.NextID})
}

// transition answers with the new status only; clients re-fetch the record.
func (h *handler) transition(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "applicationID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req transitionRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	out, err := h.svc.Transition(r.Context(), review.TransitionInput{
		ApplicationID: id,
		Target:        req.Status,
		Actor:         r.Header.Get(headerReviewer),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, transitionResponse{ApplicationID: out.ApplicationID, Status: out.Status})
}

// exportApplications streams the filtered list as CSV. Errors before the first
// row get a JSON error; later ones can only truncate the body.
func (h *handler) exportApplications(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	next, stop := iter.Pull2(h.svc.ExportRows(r.Context(), filter))
	defer stop()

	row, err, ok := next()
	if ok && err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="applications.csv"`)
	w.WriteHeader(http.StatusOK)

	out := csv.NewWriter(w)
	_ = out.Write(review.ExportColumns)
	for ok && err == nil {
		_ = out.Write(row.Record())
		row, err, ok = next()
	}
	out.Flush()

	if err != nil {
		logging.Error(r.Context(), "export truncated", slog.Any("err", errs.Loggable(err)))
	}
}
