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

// Transition moves an application along one allowed edge. The status write, the
// audit entry and the participation hook share one transaction.
func (s *Service) Transition(ctx context.Context, input TransitionInput) (TransitionResult, error) {
	if err := s.checkReady(ctx, true); err != nil {
		return TransitionResult{}, err
	}

	actor := strings.TrimSpace(input.Actor)
	if actor == "" {
		return TransitionResult{}, domainreview.ErrActorRequired
	}
	target, err := domainreview.ParseStatus(input.Target)
	if err != nil {
		return TransitionResult{}, err
	}

	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "usecase.review"),
		slog.Uint64("application_id", input.ApplicationID),
		slog.String("actor", actor),
	)

	now := s.nowString()
	var prior domainreview.Status
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.LockApplication(txCtx, input.ApplicationID); err != nil {
			if errors.Is(err, ports.ErrNotFound) {
				return fmt.Errorf("%w: id=%d", domainreview.ErrApplicationNotFound, input.ApplicationID)
			}
			return err
		}

		app, err := s.getApplication(txCtx, input.ApplicationID)
		if err != nil {
			return err
		}
		prior = domainreview.Status(app.Status)
		if err := domainreview.ValidateTransition(prior, target); err != nil {
			return err
		}

		swapped, err := s.repo.CompareAndSetStatus(txCtx, app.ApplicationID, string(prior), string(target), now)
		if err != nil {
			return err
		}
		if !swapped {
			return fmt.Errorf("%w: expected %s", domainreview.ErrStaleStatus, prior)
		}

		if err := s.repo.AppendStatusAudit(txCtx, ports.StatusAuditCreate{
			ApplicationID: app.ApplicationID,
			FromStatus:    string(prior),
			ToStatus:      string(target),
			Actor:         actor,
			CreatedAt:     now,
		}); err != nil {
			return err
		}

		return s.afterTransitionTx(txCtx, app, prior, target, now)
	}); err != nil {
		if kind := errs.KindOf(err); kind == errs.KindUnknown {
			logging.Error(logCtx, "status transition failed", slog.Any("err", errs.Loggable(err)))
		}
		return TransitionResult{}, err
	}

	logging.Info(logCtx, "status transitioned",
		slog.String("from", string(prior)),
		slog.String("to", string(target)),
	)
	return TransitionResult{
		ApplicationID: input.ApplicationID,
		Status:        string(target),
	}, nil
}

// AllowedTransitions lists the targets a reviewer may pick for an application right now.
func (s *Service) AllowedTransitions(ctx context.Context, applicationID uint64) ([]string, error) {
	if err := s.checkReady(ctx, false); err != nil {
		return nil, err
	}

	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	return statusStrings(domainreview.AllowedTargets(domainreview.Status(app.Status))), nil
}

func statusStrings(in []domainreview.Status) []string {
	out := make([]string, 0, len(in))
	for _, status := range in {
		out = append(out, string(status))
	}
	return out
}
