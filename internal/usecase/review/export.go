package review

import (
	"context"
	"errors"
	"iter"
	"strconv"

	domainreview "recruitflow/internal/domain/review"
	"recruitflow/internal/ports"
)

const exportBatchSize = 200

// ExportRows yields one flat row per application under the list view's filter and
// ordering. Rows are read in batches; iteration stops at the first error.
func (s *Service) ExportRows(ctx context.Context, filter Filter) iter.Seq2[ExportRow, error] {
	return func(yield func(ExportRow, error) bool) {
		if err := s.checkReady(ctx, false); err != nil {
			yield(ExportRow{}, err)
			return
		}

		normalized, err := normalizeFilter(filter)
		if err != nil {
			yield(ExportRow{}, err)
			return
		}

		titles := make(map[uint64]string)
		for offset := 0; ; offset += exportBatchSize {
			if err := ctx.Err(); err != nil {
				yield(ExportRow{}, err)
				return
			}

			rows, err := s.repo.ListApplications(ctx, normalized, ports.PageRequest{Offset: offset, Limit: exportBatchSize})
			if err != nil {
				yield(ExportRow{}, err)
				return
			}
			if len(rows) == 0 {
				return
			}

			latest, err := s.repo.LatestEvaluations(ctx, applicationIDs(rows))
			if err != nil {
				yield(ExportRow{}, err)
				return
			}

			for _, row := range rows {
				title, err := s.postingTitle(ctx, titles, row.PostingID)
				if err != nil {
					yield(ExportRow{}, err)
					return
				}

				if !yield(ExportRow{
					ApplicationID: row.ApplicationID,
					PostingTitle:  title,
					Name:          row.ApplicantName,
					Email:         row.ApplicantEmail,
					Phone:         row.ApplicantPhone,
					StatusLabel:   domainreview.Status(row.Status).Label(),
					Referral:      derefString(row.Referral),
					LatestTotal:   latestTotal(latest, row.ApplicationID),
				}, nil) {
					return
				}
			}

			if len(rows) < exportBatchSize {
				return
			}
		}
	}
}

func (s *Service) postingTitle(ctx context.Context, titles map[uint64]string, postingID uint64) (string, error) {
	if title, ok := titles[postingID]; ok {
		return title, nil
	}

	posting, err := s.repo.GetPosting(ctx, postingID)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			return "", err
		}
		posting.Title = ""
	}
	titles[postingID] = posting.Title
	return posting.Title, nil
}

// ExportColumns names the fields of ExportRow.Record in order.
var ExportColumns = []string{"application_id", "posting", "name", "email", "phone", "status", "referral", "latest_total"}

// Record renders the row for CSV writers; a missing latest total is an empty cell.
func (r ExportRow) Record() []string {
	total := ""
	if r.LatestTotal != nil {
		total = strconv.Itoa(*r.LatestTotal)
	}
	return []string{
		strconv.FormatUint(r.ApplicationID, 10),
		r.PostingTitle,
		r.Name,
		r.Email,
		r.Phone,
		r.StatusLabel,
		r.Referral,
		total,
	}
}
