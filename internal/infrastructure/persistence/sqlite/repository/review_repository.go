package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"recruitflow/internal/errs"
	"recruitflow/internal/infrastructure/persistence/sqlite/model"
	"recruitflow/internal/ports"
)

type ReviewRepository struct {
	db *gorm.DB
}

var _ ports.ReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) dbFromContext(ctx context.Context) (*gorm.DB, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}

	tx := ports.TxFromContext(ctx)
	if tx == nil {
		return r.db.WithContext(ctx), nil
	}

	gormTx, ok := tx.(*gorm.DB)
	if !ok || gormTx == nil {
		return nil, fmt.Errorf("invalid tx in context: %T", tx)
	}
	return gormTx.WithContext(ctx), nil
}

// dbError marks an unexpected driver failure; the stack is captured here, once.
func dbError(err error, msg string) error {
	return errs.Wrap(errs.WithStack(err), msg)
}

func (r *ReviewRepository) CreateApplication(ctx context.Context, app ports.Application) (ports.Application, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Application{}, err
	}
	if len(app.Attachments) == 0 {
		return ports.Application{}, errors.New("at least one attachment is required")
	}

	row := model.Application{
		PostingID:       app.PostingID,
		SubmitterRef:    app.SubmitterRef,
		ApplicantName:   app.ApplicantName,
		ApplicantEmail:  app.ApplicantEmail,
		ApplicantPhone:  app.ApplicantPhone,
		Attachment1URL:  app.Attachments[0].URL,
		Attachment1Name: app.Attachments[0].Name,
		Referral:        app.Referral,
		Status:          app.Status,
		CreatedAt:       app.CreatedAt,
		UpdatedAt:       app.UpdatedAt,
	}
	if len(app.Attachments) > 1 {
		url, name := app.Attachments[1].URL, app.Attachments[1].Name
		row.Attachment2URL = &url
		row.Attachment2Name = &name
	}

	if err := db.Create(&row).Error; err != nil {
		return ports.Application{}, dbError(err, "insert application")
	}
	return mapApplication(row), nil
}

func (r *ReviewRepository) GetApplication(ctx context.Context, applicationID uint64) (ports.Application, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Application{}, err
	}

	var row model.Application
	if err := db.Where("application_id = ?", applicationID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Application{}, ports.ErrNotFound
		}
		return ports.Application{}, dbError(err, "query application")
	}
	return mapApplication(row), nil
}

func (r *ReviewRepository) ListApplications(ctx context.Context, filter ports.ApplicationFilter, page ports.PageRequest) ([]ports.Application, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	query := orderedApplications(filteredApplications(db, filter))
	if page.Limit > 0 {
		query = query.Limit(page.Limit)
	}
	if page.Offset > 0 {
		query = query.Offset(page.Offset)
	}

	var rows []model.Application
	if err := query.Find(&rows).Error; err != nil {
		return nil, dbError(err, "query applications")
	}

	items := make([]ports.Application, 0, len(rows))
	for _, row := range rows {
		items = append(items, mapApplication(row))
	}
	return items, nil
}

func (r *ReviewRepository) CountApplications(ctx context.Context, filter ports.ApplicationFilter) (int64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := filteredApplications(db, filter).Count(&count).Error; err != nil {
		return 0, dbError(err, "count applications")
	}
	return count, nil
}

func (r *ReviewRepository) ListApplicationIDs(ctx context.Context, filter ports.ApplicationFilter) ([]uint64, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var ids []uint64
	if err := orderedApplications(filteredApplications(db, filter)).
		Pluck("application_id", &ids).Error; err != nil {
		return nil, dbError(err, "query application ids")
	}
	return ids, nil
}

// LockApplication issues a no-op write so SQLite takes the database write lock
// before the status is read. A concurrent transition then waits (busy_timeout)
// and reads the committed status instead of a stale one.
func (r *ReviewRepository) LockApplication(ctx context.Context, applicationID uint64) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	result := db.Exec("UPDATE applications SET updated_at = updated_at WHERE application_id = ?", applicationID)
	if result.Error != nil {
		return dbError(result.Error, "lock application")
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *ReviewRepository) CompareAndSetStatus(ctx context.Context, applicationID uint64, from string, to string, updatedAt string) (bool, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return false, err
	}

	result := db.Model(&model.Application{}).
		Where("application_id = ? AND status = ?", applicationID, from).
		Updates(map[string]any{
			"status":     to,
			"updated_at": updatedAt,
		})
	if result.Error != nil {
		return false, dbError(result.Error, "update application status")
	}
	return result.RowsAffected == 1, nil
}

func (r *ReviewRepository) AppendStatusAudit(ctx context.Context, input ports.StatusAuditCreate) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.StatusAudit{
		ApplicationID: input.ApplicationID,
		FromStatus:    input.FromStatus,
		ToStatus:      input.ToStatus,
		Actor:         input.Actor,
		CreatedAt:     input.CreatedAt,
	}
	if err := db.Create(&row).Error; err != nil {
		return dbError(err, "insert status audit")
	}
	return nil
}

func (r *ReviewRepository) ListStatusAudits(ctx context.Context, applicationID uint64) ([]ports.StatusAudit, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var rows []model.StatusAudit
	if err := db.
		Where("application_id = ?", applicationID).
		Order("created_at asc").
		Order("audit_id asc").
		Find(&rows).Error; err != nil {
		return nil, dbError(err, "query status audits")
	}

	items := make([]ports.StatusAudit, 0, len(rows))
	for _, row := range rows {
		items = append(items, ports.StatusAudit{
			AuditID:       row.AuditID,
			ApplicationID: row.ApplicationID,
			FromStatus:    row.FromStatus,
			ToStatus:      row.ToStatus,
			Actor:         row.Actor,
			CreatedAt:     row.CreatedAt,
		})
	}
	return items, nil
}

func filteredApplications(db *gorm.DB, filter ports.ApplicationFilter) *gorm.DB {
	query := db.Model(&model.Application{})
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if len(filter.PostingIDs) > 0 {
		query = query.Where("posting_id IN ?", filter.PostingIDs)
	}
	return query
}

// orderedApplications is the single ordering used by the list, navigator and export.
func orderedApplications(query *gorm.DB) *gorm.DB {
	return query.Order("created_at desc").Order("application_id desc")
}

func mapApplication(row model.Application) ports.Application {
	attachments := []ports.Attachment{{URL: row.Attachment1URL, Name: row.Attachment1Name}}
	if row.Attachment2URL != nil && *row.Attachment2URL != "" {
		attachments = append(attachments, ports.Attachment{
			URL:  *row.Attachment2URL,
			Name: derefString(row.Attachment2Name),
		})
	}

	return ports.Application{
		ApplicationID:  row.ApplicationID,
		PostingID:      row.PostingID,
		SubmitterRef:   row.SubmitterRef,
		ApplicantName:  row.ApplicantName,
		ApplicantEmail: row.ApplicantEmail,
		ApplicantPhone: row.ApplicantPhone,
		Attachments:    attachments,
		Referral:       row.Referral,
		Status:         row.Status,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func derefString(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
