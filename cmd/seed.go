package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"recruitflow/internal/bootstrap"
	"recruitflow/internal/bootstrap/logging"
	"recruitflow/internal/errs"
	"recruitflow/internal/usecase/review"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load programs, postings and reviewers from a YAML fixture",
	RunE: withApp(func(cmd *cobra.Command, app *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		path, _ := cmd.Flags().GetString("file")
		f, err := os.Open(path)
		if err != nil {
			return errs.Wrapf(err, "open fixture %q", path)
		}
		defer f.Close()

		if err := app.InitSchema(ctx); err != nil {
			return errs.Wrap(err, "initialize schema")
		}

		out, err := svc.Seed(ctx, f)
		if err != nil {
			logging.Error(ctx, "seed fixture failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "seed fixture")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "seeded programs=%d postings=%d reviewers=%d\n", out.Programs, out.Postings, out.Reviewers); err != nil {
			return errs.Wrap(err, "write seed output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("file", "configs/fixtures.yaml", "Fixture file path")
}
