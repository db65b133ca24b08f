package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"recruitflow/internal/bootstrap/logging"
	domainreview "recruitflow/internal/domain/review"
	"recruitflow/internal/errs"
	"recruitflow/internal/ports"
)

// afterTransitionTx is the post-commit hook of a transition, run inside its
// transaction. Integrity problems are logged and swallowed: the status change
// stands even when the posting or program is missing.
func (s *Service) afterTransitionTx(ctx context.Context, app ports.Application, prior domainreview.Status, target domainreview.Status, now string) error {
	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "usecase.review.provision"),
		slog.Uint64("application_id", app.ApplicationID),
	)

	action := domainreview.ProvisionFor(prior, target)
	switch action {
	case domainreview.ProvisionEnsure:
		created, err := s.ensureParticipationTx(ctx, app, now)
		if err != nil {
			if errs.IsKind(err, errs.KindIntegrity) {
				logging.Warn(logCtx, "participation not provisioned", slog.Any("err", errs.Loggable(err)))
				return nil
			}
			return err
		}
		if created {
			logging.Info(logCtx, "participation provisioned")
		}
	case domainreview.ProvisionRetract:
		removed, err := s.repo.DeleteParticipationByApplication(ctx, app.ApplicationID)
		if err != nil {
			return err
		}
		if removed > 0 {
			logging.Info(logCtx, "participation retracted")
		}
	}
	return nil
}

// ensureParticipationTx creates the participation for app unless one exists.
// The unique index on application_id keeps concurrent retries from duplicating it.
func (s *Service) ensureParticipationTx(ctx context.Context, app ports.Application, now string) (bool, error) {
	posting, err := s.repo.GetPosting(ctx, app.PostingID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return false, errs.WithKind(err, errs.KindIntegrity, fmt.Sprintf("posting %d missing for application %d", app.PostingID, app.ApplicationID))
		}
		return false, err
	}
	if posting.ProgramID == nil {
		return false, fmt.Errorf("%w: posting %d", domainreview.ErrProgramMissing, posting.PostingID)
	}
	if _, err := s.repo.GetProgram(ctx, *posting.ProgramID); err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return false, errs.WithKind(err, errs.KindIntegrity, fmt.Sprintf("program %d missing for posting %d", *posting.ProgramID, posting.PostingID))
		}
		return false, err
	}

	return s.repo.CreateParticipationIfAbsent(ctx, ports.ParticipationCreate{
		SubmitterRef:  app.SubmitterRef,
		PostingID:     posting.PostingID,
		ProgramID:     *posting.ProgramID,
		ApplicationID: app.ApplicationID,
		State:         string(domainreview.ParticipationUpcoming),
		CreatedAt:     now,
	})
}

// ReconcileOutcome reports what ReconcileParticipation changed.
type ReconcileOutcome struct {
	Created bool
	Removed bool
}

// ReconcileParticipation makes participation existence match the application's
// current status. It is safe to call repeatedly; retries never create a second record.
func (s *Service) ReconcileParticipation(ctx context.Context, applicationID uint64) (ReconcileOutcome, error) {
	if err := s.checkReady(ctx, true); err != nil {
		return ReconcileOutcome{}, err
	}

	var out ReconcileOutcome
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		app, err := s.getApplication(txCtx, applicationID)
		if err != nil {
			return err
		}

		if domainreview.Status(app.Status) == domainreview.StatusFinalPass {
			created, err := s.ensureParticipationTx(txCtx, app, s.nowString())
			if err != nil {
				return err
			}
			out.Created = created
			return nil
		}

		removed, err := s.repo.DeleteParticipationByApplication(txCtx, applicationID)
		if err != nil {
			return err
		}
		out.Removed = removed > 0
		return nil
	}); err != nil {
		return ReconcileOutcome{}, err
	}
	return out, nil
}
