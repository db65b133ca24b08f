package review

import (
	"context"
	"errors"
	"time"

	"recruitflow/internal/errs"
	"recruitflow/internal/ports"
)

var (
	errRepositoryRequired = errors.New("review repository is required")
	errUnitOfWorkRequired = errors.New("review unit of work is required")
)

const defaultPageSize = 10

// Settings carries the review knobs from config.
type Settings struct {
	PageSize     int
	NameCacheTTL time.Duration
	Location     *time.Location
}

type Service struct {
	repo     ports.ReviewRepository
	uow      ports.UnitOfWork
	cache    ports.Cache
	settings Settings
	now      func() time.Time
}

// NewService wires the review engine with its repository, transaction boundary and optional cache.
func NewService(repo ports.ReviewRepository, uow ports.UnitOfWork, cache ports.Cache, settings Settings) *Service {
	if settings.PageSize <= 0 {
		settings.PageSize = defaultPageSize
	}
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &Service{
		repo:     repo,
		uow:      uow,
		cache:    cache,
		settings: settings,
		now:      time.Now,
	}
}

// PageSize is the list view page size; the navigator ignores it.
func (s *Service) PageSize() int {
	return s.settings.PageSize
}

type Attachment struct {
	URL  string
	Name string
}

type SubmitInput struct {
	PostingID    uint64
	SubmitterRef string
	Name         string
	Email        string
	Phone        string
	Attachments  []Attachment
	Referral     string
}

type TransitionInput struct {
	ApplicationID uint64
	Target        string
	Actor         string
}

// TransitionResult carries only the new status; callers re-fetch the record.
type TransitionResult struct {
	ApplicationID uint64
	Status        string
}

type RecordEvaluationInput struct {
	ApplicationID uint64
	Criterion1    int
	Criterion2    int
	Criterion3    int
	Memo          string
	Evaluator     string
}

type EvaluationItem struct {
	EvaluationID  uint64
	ApplicationID uint64
	Criterion1    int
	Criterion2    int
	Criterion3    int
	Total         int
	Memo          string
	Evaluator     string
	EvaluatorName string
	CreatedAt     string
}

// Filter is shared by the list view, the navigator and the export.
type Filter struct {
	Statuses   []string
	PostingIDs []uint64
}

type ApplicationListItem struct {
	ApplicationID uint64
	PostingID     uint64
	ApplicantName string
	Email         string
	Status        string
	StatusLabel   string
	Referral      string
	LatestTotal   *int
	CreatedAt     string
}

type ApplicationPage struct {
	Items      []ApplicationListItem
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

type ApplicationDetail struct {
	ApplicationID uint64
	PostingID     uint64
	PostingTitle  string
	SubmitterRef  string
	Name          string
	Email         string
	Phone         string
	Attachments   []Attachment
	Referral      string
	Status        string
	StatusLabel   string
	AllowedNext   []string
	CreatedAt     string
	UpdatedAt     string
}

type AuditItem struct {
	AuditID    uint64
	FromStatus string
	ToStatus   string
	Actor      string
	CreatedAt  string
}

type Neighbours struct {
	PrevID *uint64
	NextID *uint64
}

// ExportRow is the flat projection handed to spreadsheet renderers.
type ExportRow struct {
	ApplicationID uint64
	PostingTitle  string
	Name          string
	Email         string
	Phone         string
	StatusLabel   string
	Referral      string
	LatestTotal   *int
}

func (s *Service) checkReady(ctx context.Context, needUOW bool) error {
	if ctx == nil {
		return errors.New("context is required")
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "check context")
	}
	if s.repo == nil {
		return errRepositoryRequired
	}
	if needUOW && s.uow == nil {
		return errUnitOfWorkRequired
	}
	return nil
}
