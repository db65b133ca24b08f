package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"recruitflow/internal/bootstrap"
	"recruitflow/internal/bootstrap/logging"
	"recruitflow/internal/errs"
	"recruitflow/internal/usecase/review"
)

var postingCmd = &cobra.Command{
	Use:   "posting",
	Short: "Inspect recruitment postings",
}

var postingPhaseCmd = &cobra.Command{
	Use:   "phase",
	Short: "Show the computed recruitment window phase and any manual override",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		id, _ := cmd.Flags().GetUint64("id")
		phase, err := svc.PostingPhase(ctx, id)
		if err != nil {
			logging.Error(ctx, "read posting phase failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "read posting phase")
		}

		override := "-"
		if phase.Override != nil {
			override = *phase.Override
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "computed: %s\noverride: %s\n", phase.Computed, override); err != nil {
			return errs.Wrap(err, "write phase output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(postingCmd)
	postingCmd.AddCommand(postingPhaseCmd)

	postingPhaseCmd.Flags().Uint64("id", 0, "Posting id")
	_ = postingPhaseCmd.MarkFlagRequired("id")
}
