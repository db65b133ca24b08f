package httpapi

import (
	"net/http"

	"recruitflow/internal/usecase/review"
)

type evaluationRequest struct {
	Criterion1 int    `json:"criterion1"`
	Criterion2 int    `json:"criterion2"`
	Criterion3 int    `json:"criterion3"`
	Memo       string `json:"memo"`
}

type evaluationJSON struct {
	EvaluationID  uint64 `json:"evaluation_id"`
	ApplicationID uint64 `json:"application_id"`
	Criterion1    int    `json:"criterion1"`
	Criterion2    int    `json:"criterion2"`
	Criterion3    int    `json:"criterion3"`
	Total         int    `json:"total"`
	Memo          string `json:"memo,omitempty"`
	Evaluator     string `json:"evaluator"`
	EvaluatorName string `json:"evaluator_name"`
	CreatedAt     string `json:"created_at"`
}

func toEvaluationJSON(item review.EvaluationItem) evaluationJSON {
	return evaluationJSON{
		EvaluationID:  item.EvaluationID,
		ApplicationID: item.ApplicationID,
		Criterion1:    item.Criterion1,
		Criterion2:    item.Criterion2,
		Criterion3:    item.Criterion3,
		Total:         item.Total,
		Memo:          item.Memo,
		Evaluator:     item.Evaluator,
		EvaluatorName: item.EvaluatorName,
		CreatedAt:     item.CreatedAt,
	}
}

func (h *handler) recordEvaluation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "applicationID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	var req evaluationRequest
	if err := decodeBody(r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	item, err := h.svc.RecordEvaluation(r.Context(), review.RecordEvaluationInput{
		ApplicationID: id,
		Criterion1:    req.Criterion1,
		Criterion2:    req.Criterion2,
		Criterion3:    req.Criterion3,
		Memo:          req.Memo,
		Evaluator:     r.Header.Get(headerReviewer),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toEvaluationJSON(item))
}

func (h *handler) listEvaluations(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "applicationID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	items, err := h.svc.ListEvaluations(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]evaluationJSON, 0, len(items))
	for _, item := range items {
		out = append(out, toEvaluationJSON(item))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) deleteEvaluation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "evaluationID")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	if err := h.svc.DeleteEvaluation(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
