package ports

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when the addressed row does not exist.
var ErrNotFound = errors.New("record not found")

type Attachment struct {
	URL  string
	Name string
}

type Application struct {
	ApplicationID  uint64
	PostingID      uint64
	SubmitterRef   string
	ApplicantName  string
	ApplicantEmail string
	ApplicantPhone string
	Attachments    []Attachment
	Referral       *string
	Status         string
	CreatedAt      string
	UpdatedAt      string
}

// ApplicationFilter is shared by the paged list, the navigator and the export.
// Empty slices mean "no restriction".
type ApplicationFilter struct {
	Statuses   []string
	PostingIDs []uint64
}

type PageRequest struct {
	Offset int
	Limit  int
}

type StatusAudit struct {
	AuditID       uint64
	ApplicationID uint64
	FromStatus    string
	ToStatus      string
	Actor         string
	CreatedAt     string
}

type StatusAuditCreate struct {
	ApplicationID uint64
	FromStatus    string
	ToStatus      string
	Actor         string
	CreatedAt     string
}

type Evaluation struct {
	EvaluationID  uint64
	ApplicationID uint64
	Criterion1    int
	Criterion2    int
	Criterion3    int
	Total         int
	Memo          *string
	Evaluator     string
	CreatedAt     string
}

type EvaluationCreate struct {
	ApplicationID uint64
	Criterion1    int
	Criterion2    int
	Criterion3    int
	Total         int
	Memo          *string
	Evaluator     string
	CreatedAt     string
}

type ParticipationReview struct {
	Scores      map[string]int
	Total       int
	Comment     string
	EvaluatedBy string
	EvaluatedAt string
}

type Participation struct {
	ParticipationID uint64
	SubmitterRef    string
	PostingID       uint64
	ProgramID       uint64
	ApplicationID   uint64
	State           string
	Role            *string
	Review          *ParticipationReview
	CreatedAt       string
	UpdatedAt       string
}

type ParticipationCreate struct {
	SubmitterRef  string
	PostingID     uint64
	ProgramID     uint64
	ApplicationID uint64
	State         string
	CreatedAt     string
}

type Program struct {
	ProgramID uint64
	Name      string
	StartDate string
	EndDate   string
}

type Posting struct {
	PostingID    uint64
	ProgramID    *uint64
	Title        string
	Published    bool
	StartDate    string
	EndDate      string
	ManualStatus *string
}

type Reviewer struct {
	ReviewerRef string
	DisplayName string
}

type ApplicationRepository interface {
	CreateApplication(ctx context.Context, app Application) (Application, error)
	GetApplication(ctx context.Context, applicationID uint64) (Application, error)
	ListApplications(ctx context.Context, filter ApplicationFilter, page PageRequest) ([]Application, error)
	CountApplications(ctx context.Context, filter ApplicationFilter) (int64, error)
	ListApplicationIDs(ctx context.Context, filter ApplicationFilter) ([]uint64, error)
	// LockApplication takes the write lock on one application row for the rest of
	// the transaction. It returns ErrNotFound for a missing row.
	LockApplication(ctx context.Context, applicationID uint64) error
	// CompareAndSetStatus writes to only while the row still holds from.
	CompareAndSetStatus(ctx context.Context, applicationID uint64, from string, to string, updatedAt string) (bool, error)
	AppendStatusAudit(ctx context.Context, input StatusAuditCreate) error
	ListStatusAudits(ctx context.Context, applicationID uint64) ([]StatusAudit, error)
}

type EvaluationRepository interface {
	CreateEvaluation(ctx context.Context, input EvaluationCreate) (Evaluation, error)
	ListEvaluations(ctx context.Context, applicationID uint64) ([]Evaluation, error)
	DeleteEvaluation(ctx context.Context, evaluationID uint64) (bool, error)
	LatestEvaluations(ctx context.Context, applicationIDs []uint64) (map[uint64]Evaluation, error)
}

type ParticipationRepository interface {
	// CreateParticipationIfAbsent is a no-op when the application already has one.
	CreateParticipationIfAbsent(ctx context.Context, input ParticipationCreate) (bool, error)
	DeleteParticipationByApplication(ctx context.Context, applicationID uint64) (int64, error)
	GetParticipation(ctx context.Context, participationID uint64) (Participation, error)
	GetParticipationByApplication(ctx context.Context, applicationID uint64) (Participation, error)
	ListParticipations(ctx context.Context, programID uint64) ([]Participation, error)
	UpdateParticipationState(ctx context.Context, participationID uint64, state string, updatedAt string) error
	SaveParticipationReview(ctx context.Context, participationID uint64, review ParticipationReview, updatedAt string) error
}

// CatalogRepository reads the collaborator-owned postings, programs and reviewers.
// The Upsert methods exist for fixture seeding only.
type CatalogRepository interface {
	GetPosting(ctx context.Context, postingID uint64) (Posting, error)
	GetProgram(ctx context.Context, programID uint64) (Program, error)
	GetReviewer(ctx context.Context, reviewerRef string) (Reviewer, error)
	UpsertProgram(ctx context.Context, program Program) error
	UpsertPosting(ctx context.Context, posting Posting) error
	UpsertReviewer(ctx context.Context, reviewer Reviewer) error
}

type ReviewRepository interface {
	ApplicationRepository
	EvaluationRepository
	ParticipationRepository
	CatalogRepository
}
