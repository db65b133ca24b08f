package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"recruitflow/internal/bootstrap/logging"
	domainreview "recruitflow/internal/domain/review"
	"recruitflow/internal/ports"
)

type ParticipationItem struct {
	ParticipationID uint64
	ApplicationID   uint64
	SubmitterRef    string
	PostingID       uint64
	ProgramID       uint64
	StoredState     string
	State           string
	Role            string
	Review          *ParticipationReview
	CreatedAt       string
}

type ParticipationReview struct {
	Scores      map[string]int
	Total       int
	Comment     string
	EvaluatedBy string
	EvaluatedAt string
}

type ParticipationReviewInput struct {
	ParticipationID uint64
	Scores          map[string]int
	Comment         string
	Evaluator       string
}

// ListParticipations lists participations of a program (all programs when programID is 0)
// with the state recomputed from the program period.
func (s *Service) ListParticipations(ctx context.Context, programID uint64) ([]ParticipationItem, error) {
	if err := s.checkReady(ctx, false); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListParticipations(ctx, programID)
	if err != nil {
		return nil, err
	}

	programs := make(map[uint64]*ports.Program)
	items := make([]ParticipationItem, 0, len(rows))
	for _, row := range rows {
		program, err := s.lookupProgram(ctx, programs, row.ProgramID)
		if err != nil {
			return nil, err
		}
		state, err := s.effectiveState(row, program)
		if err != nil {
			return nil, err
		}
		items = append(items, participationItem(row, state))
	}
	return items, nil
}

// GetParticipationForApplication returns the participation derived from an application.
func (s *Service) GetParticipationForApplication(ctx context.Context, applicationID uint64) (ParticipationItem, error) {
	if err := s.checkReady(ctx, false); err != nil {
		return ParticipationItem{}, err
	}

	row, err := s.repo.GetParticipationByApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ParticipationItem{}, fmt.Errorf("%w: application=%d", domainreview.ErrParticipationNotFound, applicationID)
		}
		return ParticipationItem{}, err
	}

	program, err := s.lookupProgram(ctx, map[uint64]*ports.Program{}, row.ProgramID)
	if err != nil {
		return ParticipationItem{}, err
	}
	state, err := s.effectiveState(row, program)
	if err != nil {
		return ParticipationItem{}, err
	}
	return participationItem(row, state), nil
}

// SetParticipationState records an explicit lifecycle state such as completed or dropped.
func (s *Service) SetParticipationState(ctx context.Context, participationID uint64, rawState string) error {
	if err := s.checkReady(ctx, false); err != nil {
		return err
	}

	state, err := domainreview.ParseParticipationState(rawState)
	if err != nil {
		return err
	}
	// Other states are derived from the program dates on every read.
	if !state.Explicit() {
		return fmt.Errorf("%w: %q cannot be set explicitly", domainreview.ErrInvalidParticipation, state)
	}

	if err := s.repo.UpdateParticipationState(ctx, participationID, string(state), s.nowString()); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fmt.Errorf("%w: id=%d", domainreview.ErrParticipationNotFound, participationID)
		}
		return err
	}

	logging.Info(
		logging.WithAttrs(ctx, slog.String("component", "usecase.review")),
		"participation state updated",
		slog.Uint64("participation_id", participationID),
		slog.String("state", string(state)),
	)
	return nil
}

// RecordParticipationReview stores the post-acceptance performance review.
// It is independent of the pre-acceptance evaluation ledger and replaces any earlier review.
func (s *Service) RecordParticipationReview(ctx context.Context, input ParticipationReviewInput) error {
	if err := s.checkReady(ctx, false); err != nil {
		return err
	}

	evaluator := strings.TrimSpace(input.Evaluator)
	if evaluator == "" {
		return domainreview.ErrActorRequired
	}
	total, err := domainreview.ValidateReviewScores(input.Scores)
	if err != nil {
		return err
	}

	now := s.nowString()
	if err := s.repo.SaveParticipationReview(ctx, input.ParticipationID, ports.ParticipationReview{
		Scores:      input.Scores,
		Total:       total,
		Comment:     strings.TrimSpace(input.Comment),
		EvaluatedBy: evaluator,
		EvaluatedAt: now,
	}, now); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return fmt.Errorf("%w: id=%d", domainreview.ErrParticipationNotFound, input.ParticipationID)
		}
		return err
	}
	return nil
}

func (s *Service) lookupProgram(ctx context.Context, programs map[uint64]*ports.Program, programID uint64) (*ports.Program, error) {
	if program, ok := programs[programID]; ok {
		return program, nil
	}

	program, err := s.repo.GetProgram(ctx, programID)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			return nil, err
		}
		programs[programID] = nil
		return nil, nil
	}
	programs[programID] = &program
	return &program, nil
}

// effectiveState keeps the stored value when the program period is unknown.
func (s *Service) effectiveState(row ports.Participation, program *ports.Program) (domainreview.ParticipationState, error) {
	stored := domainreview.ParticipationState(row.State)
	if program == nil {
		return stored, nil
	}
	start, err := s.parseDate(program.StartDate)
	if err != nil {
		return "", err
	}
	end, err := s.parseDate(program.EndDate)
	if err != nil {
		return "", err
	}
	return domainreview.EffectiveParticipationState(stored, start, end, s.now(), s.settings.Location), nil
}

func participationItem(row ports.Participation, state domainreview.ParticipationState) ParticipationItem {
	item := ParticipationItem{
		ParticipationID: row.ParticipationID,
		ApplicationID:   row.ApplicationID,
		SubmitterRef:    row.SubmitterRef,
		PostingID:       row.PostingID,
		ProgramID:       row.ProgramID,
		StoredState:     row.State,
		State:           string(state),
		Role:            derefString(row.Role),
		CreatedAt:       row.CreatedAt,
	}
	if row.Review != nil {
		item.Review = &ParticipationReview{
			Scores:      row.Review.Scores,
			Total:       row.Review.Total,
			Comment:     row.Review.Comment,
			EvaluatedBy: row.Review.EvaluatedBy,
			EvaluatedAt: row.Review.EvaluatedAt,
		}
	}
	return item
}
