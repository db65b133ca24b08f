package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"recruitflow/internal/bootstrap/logging"
	domainreview "recruitflow/internal/domain/review"
	"recruitflow/internal/errs"
	"recruitflow/internal/ports"
)

// RecordEvaluation appends a scored review. It is allowed at any status.
func (s *Service) RecordEvaluation(ctx context.Context, input RecordEvaluationInput) (EvaluationItem, error) {
	if err := s.checkReady(ctx, false); err != nil {
		return EvaluationItem{}, err
	}

	evaluator := strings.TrimSpace(input.Evaluator)
	if evaluator == "" {
		return EvaluationItem{}, domainreview.ErrActorRequired
	}
	criteria := domainreview.Criteria{C1: input.Criterion1, C2: input.Criterion2, C3: input.Criterion3}
	if err := criteria.Validate(); err != nil {
		return EvaluationItem{}, err
	}
	memo, err := domainreview.NormalizeMemo(input.Memo)
	if err != nil {
		return EvaluationItem{}, err
	}

	if _, err := s.getApplication(ctx, input.ApplicationID); err != nil {
		return EvaluationItem{}, err
	}

	created, err := s.repo.CreateEvaluation(ctx, ports.EvaluationCreate{
		ApplicationID: input.ApplicationID,
		Criterion1:    criteria.C1,
		Criterion2:    criteria.C2,
		Criterion3:    criteria.C3,
		Total:         criteria.Total(),
		Memo:          optionalString(memo),
		Evaluator:     evaluator,
		CreatedAt:     s.nowString(),
	})
	if err != nil {
		return EvaluationItem{}, err
	}

	logging.Info(
		logging.WithAttrs(ctx, slog.String("component", "usecase.review")),
		"evaluation recorded",
		slog.Uint64("application_id", input.ApplicationID),
		slog.Uint64("evaluation_id", created.EvaluationID),
		slog.Int("total", created.Total),
	)
	return s.evaluationItem(ctx, created), nil
}

// ListEvaluations returns the ledger most-recent first with evaluator display names.
func (s *Service) ListEvaluations(ctx context.Context, applicationID uint64) ([]EvaluationItem, error) {
	if err := s.checkReady(ctx, false); err != nil {
		return nil, err
	}

	if _, err := s.getApplication(ctx, applicationID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListEvaluations(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	items := make([]EvaluationItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, s.evaluationItem(ctx, row))
	}
	return items, nil
}

// DeleteEvaluation removes exactly one ledger entry.
func (s *Service) DeleteEvaluation(ctx context.Context, evaluationID uint64) error {
	if err := s.checkReady(ctx, false); err != nil {
		return err
	}

	deleted, err := s.repo.DeleteEvaluation(ctx, evaluationID)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("%w: id=%d", domainreview.ErrEvaluationNotFound, evaluationID)
	}

	logging.Info(
		logging.WithAttrs(ctx, slog.String("component", "usecase.review")),
		"evaluation deleted",
		slog.Uint64("evaluation_id", evaluationID),
	)
	return nil
}

func (s *Service) evaluationItem(ctx context.Context, row ports.Evaluation) EvaluationItem {
	return EvaluationItem{
		EvaluationID:  row.EvaluationID,
		ApplicationID: row.ApplicationID,
		Criterion1:    row.Criterion1,
		Criterion2:    row.Criterion2,
		Criterion3:    row.Criterion3,
		Total:         row.Total,
		Memo:          derefString(row.Memo),
		Evaluator:     row.Evaluator,
		EvaluatorName: s.reviewerName(ctx, row.Evaluator),
		CreatedAt:     row.CreatedAt,
	}
}

// reviewerName resolves a display name through the cache, falling back to the raw ref.
func (s *Service) reviewerName(ctx context.Context, reviewerRef string) string {
	key := cacheReviewerNameKey(reviewerRef)
	if s.cache != nil {
		if name, found, err := s.cache.Get(ctx, key); err == nil && found {
			return name
		}
	}

	reviewer, err := s.repo.GetReviewer(ctx, reviewerRef)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			logging.Warn(
				logging.WithAttrs(ctx, slog.String("component", "usecase.review")),
				"reviewer lookup failed",
				slog.String("reviewer", reviewerRef),
				slog.Any("err", errs.Loggable(err)),
			)
		}
		return reviewerRef
	}

	s.setCacheBestEffort(ctx, key, reviewer.DisplayName)
	return reviewer.DisplayName
}
