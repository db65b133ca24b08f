package repository

import (
	"context"

	"recruitflow/internal/infrastructure/persistence/sqlite/model"
	"recruitflow/internal/ports"
)

func (r *ReviewRepository) CreateEvaluation(ctx context.Context, input ports.EvaluationCreate) (ports.Evaluation, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Evaluation{}, err
	}

	row := model.Evaluation{
		ApplicationID: input.ApplicationID,
		Criterion1:    input.Criterion1,
		Criterion2:    input.Criterion2,
		Criterion3:    input.Criterion3,
		Total:         input.Total,
		Memo:          input.Memo,
		Evaluator:     input.Evaluator,
		CreatedAt:     input.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return ports.Evaluation{}, dbError(err, "insert evaluation")
	}
	return mapEvaluation(row), nil
}

// ListEvaluations returns the ledger most-recent first.
func (r *ReviewRepository) ListEvaluations(ctx context.Context, applicationID uint64) ([]ports.Evaluation, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Evaluation
	if err := db.
		Where("application_id = ?", applicationID).
		Order("created_at desc").
		Order("evaluation_id desc").
		Find(&rows).Error; err != nil {
		return nil, dbError(err, "query evaluations")
	}

	items := make([]ports.Evaluation, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapEvaluation(row))
	}
	return items, nil
}

func (r *ReviewRepository) DeleteEvaluation(ctx context.Context, evaluationID uint64) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	result := db.Where("evaluation_id = ?", evaluationID).Delete(&model.Evaluation{})
	if result.Error != nil {
		return false, dbError(result.Error, "delete evaluation")
	}
	return result.RowsAffected > 0, nil
}

// LatestEvaluations picks the current entry per application: latest created_at,
// ties broken by the highest evaluation_id.
func (r *ReviewRepository) LatestEvaluations(ctx context.Context, applicationIDs []uint64) (map[uint64]ports.Evaluation, error) {
	out := make(map[uint64]ports.Evaluation, len(applicationIDs))
	if len(applicationIDs) == 0 {
		return out, nil
	}

	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.Evaluation
	if err := db.
		Where("application_id IN ?", applicationIDs).
		Order("application_id asc").
		Order("created_at desc").
		Order("evaluation_id desc").
		Find(&rows).Error; err != nil {
		return nil, dbError(err, "query latest evaluations")
	}

	for _, row := range rows {
		if _, seen := out[row.ApplicationID]; seen {
			continue
		}
		out[row.ApplicationID] = mapEvaluation(row)
	}
	return out, nil
}

func mapEvaluation(row model.Evaluation) ports.Evaluation {
	return ports.Evaluation{
		EvaluationID:  row.EvaluationID,
		ApplicationID: row.ApplicationID,
		Criterion1:    row.Criterion1,
		Criterion2:    row.Criterion2,
		Criterion3:    row.Criterion3,
		Total:         row.Total,
		Memo:          row.Memo,
		Evaluator:     row.Evaluator,
		CreatedAt:     row.CreatedAt,
	}
}
