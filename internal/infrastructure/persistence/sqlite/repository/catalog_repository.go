package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"recruitflow/internal/infrastructure/persistence/sqlite/model"
	"recruitflow/internal/ports"
)

func (r *ReviewRepository) GetPosting(ctx context.Context, postingID uint64) (ports.Posting, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Posting{}, err
	}

	var row model.Posting
	if err := db.Where("posting_id = ?", postingID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Posting{}, ports.ErrNotFound
		}
		return ports.Posting{}, dbError(err, "query posting")
	}
	return ports.Posting{
		PostingID:    row.PostingID,
		ProgramID:    row.ProgramID,
		Title:        row.Title,
		Published:    row.Published,
		StartDate:    row.StartDate,
		EndDate:      row.EndDate,
		ManualStatus: row.ManualStatus,
	}, nil
}

func (r *ReviewRepository) GetProgram(ctx context.Context, programID uint64) (ports.Program, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Program{}, err
	}

	var row model.Program
	if err := db.Where("program_id = ?", programID).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Program{}, ports.ErrNotFound
		}
		return ports.Program{}, dbError(err, "query program")
	}
	return ports.Program{
		ProgramID: row.ProgramID,
		Name:      row.Name,
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
	}, nil
}

func (r *ReviewRepository) GetReviewer(ctx context.Context, reviewerRef string) (ports.Reviewer, error) {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return ports.Reviewer{}, err
	}

	var row model.Reviewer
	if err := db.Where("reviewer_ref = ?", reviewerRef).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Reviewer{}, ports.ErrNotFound
		}
		return ports.Reviewer{}, dbError(err, "query reviewer")
	}
	return ports.Reviewer{ReviewerRef: row.ReviewerRef, DisplayName: row.DisplayName}, nil
}

func (r *ReviewRepository) UpsertProgram(ctx context.Context, program ports.Program) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.Program{
		ProgramID: program.ProgramID,
		Name:      program.Name,
		StartDate: program.StartDate,
		EndDate:   program.EndDate,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "program_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "start_date", "end_date"}),
	}).Create(&row).Error; err != nil {
		return dbError(err, "upsert program")
	}
	return nil
}

func (r *ReviewRepository) UpsertPosting(ctx context.Context, posting ports.Posting) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.Posting{
		PostingID:    posting.PostingID,
		ProgramID:    posting.ProgramID,
		Title:        posting.Title,
		Published:    posting.Published,
		StartDate:    posting.StartDate,
		EndDate:      posting.EndDate,
		ManualStatus: posting.ManualStatus,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "posting_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"program_id", "title", "published", "start_date", "end_date", "manual_status"}),
	}).Create(&row).Error; err != nil {
		return dbError(err, "upsert posting")
	}
	return nil
}

func (r *ReviewRepository) UpsertReviewer(ctx context.Context, reviewer ports.Reviewer) error {
	db, err := r.dbFromContext(ctx)
	if err != nil {
		return err
	}

	row := model.Reviewer{
		ReviewerRef: reviewer.ReviewerRef,
		DisplayName: reviewer.DisplayName,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "reviewer_ref"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name"}),
	}).Create(&row).Error; err != nil {
		return dbError(err, "upsert reviewer")
	}
	return nil
}
