package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"recruitflow/internal/bootstrap/logging"
	domainreview "recruitflow/internal/domain/review"
	"recruitflow/internal/ports"
)

// Submit records a new application in status submitted. Eligibility is the
// published flag plus the clock-derived window; the posting's manual status is ignored.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (uint64, error) {
	if err := s.checkReady(ctx, true); err != nil {
		return 0, err
	}

	submitter := strings.TrimSpace(input.SubmitterRef)
	if submitter == "" {
		return 0, domainreview.ErrSubmitterRequired
	}
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	if name == "" || email == "" {
		return 0, domainreview.ErrApplicantIncomplete
	}

	attachments, err := normalizeAttachments(input.Attachments)
	if err != nil {
		return 0, err
	}

	now := s.now()
	createdAt := domainreview.FormatTimestamp(now)
	var applicationID uint64
	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		posting, err := s.getPosting(txCtx, input.PostingID)
		if err != nil {
			return err
		}
		start, err := s.parseDate(posting.StartDate)
		if err != nil {
			return err
		}
		end, err := s.parseDate(posting.EndDate)
		if err != nil {
			return err
		}
		if err := domainreview.SubmissionAllowed(posting.Published, start, end, now, s.settings.Location); err != nil {
			return fmt.Errorf("%w: posting %d", err, posting.PostingID)
		}

		created, err := s.repo.CreateApplication(txCtx, ports.Application{
			PostingID:      posting.PostingID,
			SubmitterRef:   submitter,
			ApplicantName:  name,
			ApplicantEmail: email,
			ApplicantPhone: strings.TrimSpace(input.Phone),
			Attachments:    attachments,
			Referral:       optionalString(input.Referral),
			Status:         string(domainreview.StatusSubmitted),
			CreatedAt:      createdAt,
			UpdatedAt:      createdAt,
		})
		if err != nil {
			return err
		}
		applicationID = created.ApplicationID
		return nil
	}); err != nil {
		return 0, err
	}

	logging.Info(
		logging.WithAttrs(ctx, slog.String("component", "usecase.review")),
		"application submitted",
		slog.Uint64("application_id", applicationID),
		slog.Uint64("posting_id", input.PostingID),
	)
	return applicationID, nil
}

// PostingPhase reports the computed window status of a posting next to its stored override.
func (s *Service) PostingPhase(ctx context.Context, postingID uint64) (domainreview.PostingPhase, error) {
	if err := s.checkReady(ctx, false); err != nil {
		return domainreview.PostingPhase{}, err
	}

	posting, err := s.getPosting(ctx, postingID)
	if err != nil {
		return domainreview.PostingPhase{}, err
	}
	start, err := s.parseDate(posting.StartDate)
	if err != nil {
		return domainreview.PostingPhase{}, err
	}
	end, err := s.parseDate(posting.EndDate)
	if err != nil {
		return domainreview.PostingPhase{}, err
	}

	return domainreview.PostingPhase{
		Computed: domainreview.Classify(start, end, s.now(), s.settings.Location),
		Override: optionalString(derefString(posting.ManualStatus)),
	}, nil
}

func normalizeAttachments(in []Attachment) ([]ports.Attachment, error) {
	out := make([]ports.Attachment, 0, len(in))
	for _, a := range in {
		url := strings.TrimSpace(a.URL)
		name := strings.TrimSpace(a.Name)
		if url == "" && name == "" {
			continue
		}
		if url == "" || name == "" {
			return nil, domainreview.ErrAttachmentIncomplete
		}
		out = append(out, ports.Attachment{URL: url, Name: name})
	}
	if len(out) < 1 || len(out) > 2 {
		return nil, fmt.Errorf("%w: got %d", domainreview.ErrAttachmentCount, len(out))
	}
	return out, nil
}
