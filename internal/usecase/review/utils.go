package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainreview "recruitflow/internal/domain/review"
	"recruitflow/internal/ports"
)

const dateLayout = "2006-01-02"

func (s *Service) nowString() string {
	return domainreview.FormatTimestamp(s.now())
}

// parseDate reads a stored calendar date in the configured location.
func (s *Service) parseDate(raw string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(raw), s.settings.Location)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", domainreview.ErrInvalidDate, raw)
	}
	return t, nil
}

func (s *Service) getApplication(ctx context.Context, applicationID uint64) (ports.Application, error) {
	app, err := s.repo.GetApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ports.Application{}, fmt.Errorf("%w: id=%d", domainreview.ErrApplicationNotFound, applicationID)
		}
		return ports.Application{}, err
	}
	return app, nil
}

func (s *Service) getPosting(ctx context.Context, postingID uint64) (ports.Posting, error) {
	posting, err := s.repo.GetPosting(ctx, postingID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return ports.Posting{}, fmt.Errorf("%w: id=%d", domainreview.ErrPostingNotFound, postingID)
		}
		return ports.Posting{}, err
	}
	return posting, nil
}

func (s *Service) setCacheBestEffort(ctx context.Context, key string, value string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, key, value, s.settings.NameCacheTTL)
}

func normalizeFilter(in Filter) (ports.ApplicationFilter, error) {
	out := ports.ApplicationFilter{}

	seen := make(map[domainreview.Status]struct{}, len(in.Statuses))
	for _, raw := range in.Statuses {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		status, err := domainreview.ParseStatus(raw)
		if err != nil {
			return ports.ApplicationFilter{}, fmt.Errorf("%w: status %q", domainreview.ErrInvalidFilter, raw)
		}
		if _, ok := seen[status]; ok {
			continue
		}
		seen[status] = struct{}{}
		out.Statuses = append(out.Statuses, string(status))
	}

	seenPosting := make(map[uint64]struct{}, len(in.PostingIDs))
	for _, id := range in.PostingIDs {
		if id == 0 {
			return ports.ApplicationFilter{}, fmt.Errorf("%w: posting id must be positive", domainreview.ErrInvalidFilter)
		}
		if _, ok := seenPosting[id]; ok {
			continue
		}
		seenPosting[id] = struct{}{}
		out.PostingIDs = append(out.PostingIDs, id)
	}
	return out, nil
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}

func cacheReviewerNameKey(reviewerRef string) string {
	return "reviewer_name:" + reviewerRef
}
