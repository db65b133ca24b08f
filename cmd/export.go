package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"recruitflow/internal/bootstrap"
	"recruitflow/internal/bootstrap/logging"
	"recruitflow/internal/errs"
	"recruitflow/internal/usecase/review"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered applications as CSV or a terminal table",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")

		w := cmd.OutOrStdout()
		if strings.TrimSpace(outPath) != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return errs.Wrapf(err, "create export file %q", outPath)
			}
			defer f.Close()
			w = f
		}

		var count int
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "csv":
			count, err = writeExportCSV(w, svc.ExportRows(ctx, filter))
		case "table":
			count, err = writeExportTable(w, svc.ExportRows(ctx, filter))
		default:
			return fmt.Errorf("unsupported export format %q", format)
		}
		if err != nil {
			logging.Error(ctx, "export applications failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "export applications")
		}

		logging.Info(ctx, "applications exported", slog.Int("rows", count), slog.String("format", format))
		return nil
	}),
}

func writeExportCSV(w io.Writer, rows iter.Seq2[review.ExportRow, error]) (int, error) {
	out := csv.NewWriter(w)
	if err := out.Write(review.ExportColumns); err != nil {
		return 0, errs.Wrap(err, "write csv header")
	}

	count := 0
	for row, err := range rows {
		if err != nil {
			return count, err
		}
		if err := out.Write(row.Record()); err != nil {
			return count, errs.Wrap(err, "write csv row")
		}
		count++
	}
	out.Flush()
	return count, errs.Wrap(out.Error(), "flush csv")
}

func writeExportTable(w io.Writer, rows iter.Seq2[review.ExportRow, error]) (int, error) {
	table := newTable(w, "ID", "Posting", "Name", "Email", "Phone", "Status", "Referral", "Latest total")

	count := 0
	for row, err := range rows {
		if err != nil {
			return count, err
		}
		table.Append([]string{
			fmt.Sprintf("%d", row.ApplicationID),
			row.PostingTitle,
			row.Name,
			row.Email,
			row.Phone,
			row.StatusLabel,
			row.Referral,
			optionalTotal(row.LatestTotal),
		})
		count++
	}
	table.Render()
	return count, nil
}

func init() {
	rootCmd.AddCommand(exportCmd)

	addFilterFlags(exportCmd)
	exportCmd.Flags().String("format", "csv", "Output format: csv or table")
	exportCmd.Flags().String("out", "", "Write to this file instead of stdout")
}
