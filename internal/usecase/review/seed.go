package review

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"recruitflow/internal/bootstrap/logging"
	"recruitflow/internal/errs"
	"recruitflow/internal/ports"
)

// Fixture is the YAML document accepted by Seed. Postings, programs and reviewers
// are owned by collaborator services; seeding only mirrors them locally.
type Fixture struct {
	Programs []struct {
		ID        uint64 `yaml:"id"`
		Name      string `yaml:"name"`
		StartDate string `yaml:"start_date"`
		EndDate   string `yaml:"end_date"`
	} `yaml:"programs"`
	Postings []struct {
		ID           uint64  `yaml:"id"`
		ProgramID    *uint64 `yaml:"program_id"`
		Title        string  `yaml:"title"`
		Published    bool    `yaml:"published"`
		StartDate    string  `yaml:"start_date"`
		EndDate      string  `yaml:"end_date"`
		ManualStatus *string `yaml:"manual_status"`
	} `yaml:"postings"`
	Reviewers []struct {
		Ref         string `yaml:"ref"`
		DisplayName string `yaml:"display_name"`
	} `yaml:"reviewers"`
}

type SeedResult struct {
	Programs  int
	Postings  int
	Reviewers int
}

// Seed upserts a fixture in one transaction.
func (s *Service) Seed(ctx context.Context, r io.Reader) (SeedResult, error) {
	if err := s.checkReady(ctx, true); err != nil {
		return SeedResult{}, err
	}

	var fixture Fixture
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&fixture); err != nil {
		if err == io.EOF {
			return SeedResult{}, nil
		}
		return SeedResult{}, errs.Wrap(err, "decode fixture")
	}

	if err := s.validateFixture(fixture); err != nil {
		return SeedResult{}, err
	}

	if err := s.uow.WithTx(ctx, func(txCtx context.Context) error {
		for _, p := range fixture.Programs {
			if err := s.repo.UpsertProgram(txCtx, ports.Program{
				ProgramID: p.ID,
				Name:      strings.TrimSpace(p.Name),
				StartDate: p.StartDate,
				EndDate:   p.EndDate,
			}); err != nil {
				return err
			}
		}
		for _, p := range fixture.Postings {
			if err := s.repo.UpsertPosting(txCtx, ports.Posting{
				PostingID:    p.ID,
				ProgramID:    p.ProgramID,
				Title:        strings.TrimSpace(p.Title),
				Published:    p.Published,
				StartDate:    p.StartDate,
				EndDate:      p.EndDate,
				ManualStatus: p.ManualStatus,
			}); err != nil {
				return err
			}
		}
		for _, rv := range fixture.Reviewers {
			if err := s.repo.UpsertReviewer(txCtx, ports.Reviewer{
				ReviewerRef: strings.TrimSpace(rv.Ref),
				DisplayName: strings.TrimSpace(rv.DisplayName),
			}); err != nil {
				return err
			}
			if s.cache != nil {
				_ = s.cache.Delete(txCtx, cacheReviewerNameKey(strings.TrimSpace(rv.Ref)))
			}
		}
		return nil
	}); err != nil {
		return SeedResult{}, err
	}

	result := SeedResult{
		Programs:  len(fixture.Programs),
		Postings:  len(fixture.Postings),
		Reviewers: len(fixture.Reviewers),
	}
	logging.Info(
		logging.WithAttrs(ctx, slog.String("component", "usecase.review")),
		"fixture seeded",
		slog.Int("programs", result.Programs),
		slog.Int("postings", result.Postings),
		slog.Int("reviewers", result.Reviewers),
	)
	return result, nil
}

func (s *Service) validateFixture(f Fixture) error {
	for _, p := range f.Programs {
		if p.ID == 0 {
			return fmt.Errorf("program id is required (name=%q)", p.Name)
		}
		if err := s.validateRange(p.StartDate, p.EndDate); err != nil {
			return errs.Wrapf(err, "program %d", p.ID)
		}
	}
	for _, p := range f.Postings {
		if p.ID == 0 {
			return fmt.Errorf("posting id is required (title=%q)", p.Title)
		}
		if err := s.validateRange(p.StartDate, p.EndDate); err != nil {
			return errs.Wrapf(err, "posting %d", p.ID)
		}
	}
	for _, rv := range f.Reviewers {
		if strings.TrimSpace(rv.Ref) == "" {
			return fmt.Errorf("reviewer ref is required (display_name=%q)", rv.DisplayName)
		}
	}
	return nil
}

func (s *Service) validateRange(startRaw string, endRaw string) error {
	start, err := s.parseDate(startRaw)
	if err != nil {
		return err
	}
	end, err := s.parseDate(endRaw)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("end date %s is before start date %s", endRaw, startRaw)
	}
	return nil
}
