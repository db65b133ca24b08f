package review

import (
	"context"
	"errors"

	domainreview "recruitflow/internal/domain/review"
	"recruitflow/internal/ports"
)

// ListApplications returns one page of the review queue, newest first.
// page is 1-based; values below 1 are treated as 1.
func (s *Service) ListApplications(ctx context.Context, filter Filter, page int) (ApplicationPage, error) {
	if err := s.checkReady(ctx, false); err != nil {
		return ApplicationPage{}, err
	}

	normalized, err := normalizeFilter(filter)
	if err != nil {
		return ApplicationPage{}, err
	}
	if page < 1 {
		page = 1
	}
	size := s.settings.PageSize

	total, err := s.repo.CountApplications(ctx, normalized)
	if err != nil {
		return ApplicationPage{}, err
	}
	rows, err := s.repo.ListApplications(ctx, normalized, ports.PageRequest{
		Offset: (page - 1) * size,
		Limit:  size,
	})
	if err != nil {
		return ApplicationPage{}, err
	}

	latest, err := s.repo.LatestEvaluations(ctx, applicationIDs(rows))
	if err != nil {
		return ApplicationPage{}, err
	}

	items := make([]ApplicationListItem, 0, len(rows))
	for _, row := range rows {
		status := domainreview.Status(row.Status)
		items = append(items, ApplicationListItem{
			ApplicationID: row.ApplicationID,
			PostingID:     row.PostingID,
			ApplicantName: row.ApplicantName,
			Email:         row.ApplicantEmail,
			Status:        row.Status,
			StatusLabel:   status.Label(),
			Referral:      derefString(row.Referral),
			LatestTotal:   latestTotal(latest, row.ApplicationID),
			CreatedAt:     row.CreatedAt,
		})
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return ApplicationPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}, nil
}

// GetApplication re-fetches the full record; use it after any mutation.
func (s *Service) GetApplication(ctx context.Context, applicationID uint64) (ApplicationDetail, error) {
	if err := s.checkReady(ctx, false); err != nil {
		return ApplicationDetail{}, err
	}

	app, err := s.getApplication(ctx, applicationID)
	if err != nil {
		return ApplicationDetail{}, err
	}

	postingTitle := ""
	posting, err := s.repo.GetPosting(ctx, app.PostingID)
	switch {
	case err == nil:
		postingTitle = posting.Title
	case !errors.Is(err, ports.ErrNotFound):
		return ApplicationDetail{}, err
	}

	attachments := make([]Attachment, 0, len(app.Attachments))
	for _, a := range app.Attachments {
		attachments = append(attachments, Attachment{URL: a.URL, Name: a.Name})
	}

	status := domainreview.Status(app.Status)
	return ApplicationDetail{
		ApplicationID: app.ApplicationID,
		PostingID:     app.PostingID,
		PostingTitle:  postingTitle,
		SubmitterRef:  app.SubmitterRef,
		Name:          app.ApplicantName,
		Email:         app.ApplicantEmail,
		Phone:         app.ApplicantPhone,
		Attachments:   attachments,
		Referral:      derefString(app.Referral),
		Status:        app.Status,
		StatusLabel:   status.Label(),
		AllowedNext:   statusStrings(domainreview.AllowedTargets(status)),
		CreatedAt:     app.CreatedAt,
		UpdatedAt:     app.UpdatedAt,
	}, nil
}

// AuditTrail lists status changes oldest first.
func (s *Service) AuditTrail(ctx context.Context, applicationID uint64) ([]AuditItem, error) {
	if err := s.checkReady(ctx, false); err != nil {
		return nil, err
	}

	if _, err := s.getApplication(ctx, applicationID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListStatusAudits(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	items := make([]AuditItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, AuditItem{
			AuditID:    row.AuditID,
			FromStatus: row.FromStatus,
			ToStatus:   row.ToStatus,
			Actor:      row.Actor,
			CreatedAt:  row.CreatedAt,
		})
	}
	return items, nil
}

// Adjacent finds the neighbours of an application in the full filtered sequence,
// independent of the list page size.
func (s *Service) Adjacent(ctx context.Context, applicationID uint64, filter Filter) (Neighbours, error) {
	if err := s.checkReady(ctx, false); err != nil {
		return Neighbours{}, err
	}

	normalized, err := normalizeFilter(filter)
	if err != nil {
		return Neighbours{}, err
	}

	ids, err := s.repo.ListApplicationIDs(ctx, normalized)
	if err != nil {
		return Neighbours{}, err
	}

	adjacency, err := domainreview.Adjacent(ids, applicationID)
	if err != nil {
		return Neighbours{}, err
	}
	return Neighbours{PrevID: adjacency.PrevID, NextID: adjacency.NextID}, nil
}

func applicationIDs(rows []ports.Application) []uint64 {
	ids := make([]uint64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ApplicationID)
	}
	return ids
}

func latestTotal(latest map[uint64]ports.Evaluation, applicationID uint64) *int {
	ev, ok := latest[applicationID]
	if !ok {
		return nil
	}
	total := ev.Total
	return &total
}
