package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recruitflow/internal/errs"
	"recruitflow/internal/infrastructure/persistence/sqlite/model"
	"recruitflow/internal/ports"
)

func (r *ReviewRepository) CreateParticipationIfAbsent(ctx context.Context, input ports.ParticipationCreate) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	row := model.Participation{
		SubmitterRef:  input.SubmitterRef,
		PostingID:     input.PostingID,
		ProgramID:     input.ProgramID,
		ApplicationID: input.ApplicationID,
		State:         input.State,
		CreatedAt:     input.CreatedAt,
		UpdatedAt:     input.CreatedAt,
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "application_id"}},
		DoNothing: true,
	}).Create(&row)
	if result.Error != nil {
		return false, dbError(result.Error, "insert participation")
	}
	return result.RowsAffected > 0, nil
}

func (r *ReviewRepository) DeleteParticipationByApplication(ctx context.Context, applicationID uint64) (int64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	result := db.Where("application_id = ?", applicationID).Delete(&model.Participation{})
	if result.Error != nil {
		return 0, dbError(result.Error, "delete participation")
	}
	return result.RowsAffected, nil
}

func (r *ReviewRepository) GetParticipation(ctx context.Context, participationID uint64) (ports.Participation, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Participation{}, err
	}
	return takeParticipation(db.Where("participation_id = ?", participationID))
}

func (r *ReviewRepository) GetParticipationByApplication(ctx context.Context, applicationID uint64) (ports.Participation, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Participation{}, err
	}
	return takeParticipation(db.Where("application_id = ?", applicationID))
}

func (r *ReviewRepository) ListParticipations(ctx context.Context, programID uint64) ([]ports.Participation, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := db.Model(&model.Participation{})
	if programID > 0 {
		query = query.Where("program_id = ?", programID)
	}

	var rows []model.Participation
	if err := query.Order("participation_id asc").Find(&rows).Error; err != nil {
		return nil, dbError(err, "query participations")
	}

	items := make([]ports.Participation, 0, len(rows))
	for _, row := range rows {
		item, err := mapParticipation(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *ReviewRepository) UpdateParticipationState(ctx context.Context, participationID uint64, state string, updatedAt string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	result := db.Model(&model.Participation{}).
		Where("participation_id = ?", participationID).
		Updates(map[string]any{
			"state":      state,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return dbError(result.Error, "update participation state")
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) SaveParticipationReview(ctx context.Context, participationID uint64, review ports.ParticipationReview, updatedAt string) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	scores := make(datatypes.JSONMap, len(review.Scores))
	for name, score := range review.Scores {
		scores[name] = score
	}

	result := db.Model(&model.Participation{}).
		Where("participation_id = ?", participationID).
		Updates(map[string]any{
			"eval_scores":  scores,
			"eval_total":   review.Total,
			"eval_comment": review.Comment,
			"eval_by":      review.EvaluatedBy,
			"eval_at":      review.EvaluatedAt,
			"updated_at":   updatedAt,
		})
	if result.Error != nil {
		return dbError(result.Error, "update participation review")
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func takeParticipation(query *gorm.DB) (ports.Participation, error) {
	var row model.Participation
	if err := query.Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Participation{}, ports.ErrNotFound
		}
		return ports.Participation{}, dbError(err, "query participation")
	}
	return mapParticipation(row)
}

func mapParticipation(row model.Participation) (ports.Participation, error) {
	out := ports.Participation{
		ParticipationID: row.ParticipationID,
		SubmitterRef:    row.SubmitterRef,
		PostingID:       row.PostingID,
		ProgramID:       row.ProgramID,
		ApplicationID:   row.ApplicationID,
		State:           row.State,
		Role:            row.Role,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}

	if row.EvalAt != nil {
		review := &ports.ParticipationReview{
			Scores:      make(map[string]int, len(row.EvalScores)),
			Comment:     derefString(row.EvalComment),
			EvaluatedBy: derefString(row.EvalBy),
			EvaluatedAt: *row.EvalAt,
		}
		if row.EvalTotal != nil {
			review.Total = *row.EvalTotal
		}
		for name, raw := range row.EvalScores {
			score, err := scoreValue(raw)
			if err != nil {
				return ports.Participation{}, errs.Wrapf(err, "participation %d score %q", row.ParticipationID, name)
			}
			review.Scores[name] = score
		}
		out.Review = review
	}
	return out, nil
}

// scoreValue reads a stored review score. JSONMap decodes numbers as json.Number.
func scoreValue(raw any) (int, error) {
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, errs.Wrap(err, "parse score")
		}
		return int(n), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("score %v is not an integer", v)
		}
		return int(v), nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, errs.Wrap(err, "parse score")
		}
		return n, nil
	default:
		return 0, fmt.Errorf("unexpected score type %T", raw)
	}
}
