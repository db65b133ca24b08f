package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"recruitflow/internal/bootstrap"
	"recruitflow/internal/bootstrap/logging"
	"recruitflow/internal/errs"
	"recruitflow/internal/usecase/review"
)

var participationCmd = &cobra.Command{
	Use:   "participation",
	Short: "Inspect and manage participations created by final acceptance",
}

var participationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List participations with their date-derived state",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		programID, _ := cmd.Flags().GetUint64("program")
		items, err := svc.ListParticipations(ctx, programID)
		if err != nil {
			logging.Error(ctx, "list participations failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list participations")
		}

		table := newTable(cmd.OutOrStdout(), "ID", "Application", "Submitter", "Program", "State", "Review total")
		for _, item := range items {
			total := "-"
			if item.Review != nil {
				total = fmt.Sprintf("%d", item.Review.Total)
			}
			table.Append([]string{
				fmt.Sprintf("%d", item.ParticipationID),
				fmt.Sprintf("%d", item.ApplicationID),
				item.SubmitterRef,
				fmt.Sprintf("%d", item.ProgramID),
				item.State,
				total,
			})
		}
		table.Render()
		return nil
	}),
}

var participationStateCmd = &cobra.Command{
	Use:   "state",
	Short: "Set an explicit participation state (completed, dropped)",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		id, _ := cmd.Flags().GetUint64("id")
		state, _ := cmd.Flags().GetString("state")
		if err := svc.SetParticipationState(ctx, id, state); err != nil {
			logging.Error(ctx, "set participation state failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "set participation state")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "participation %d state: %s\n", id, state); err != nil {
			return errs.Wrap(err, "write state output")
		}
		return nil
	}),
}

var participationReviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Record the performance review of a participation",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		id, _ := cmd.Flags().GetUint64("id")
		scores, _ := cmd.Flags().GetStringToInt("score")
		comment, _ := cmd.Flags().GetString("comment")
		evaluator, _ := cmd.Flags().GetString("evaluator")

		if err := svc.RecordParticipationReview(ctx, review.ParticipationReviewInput{
			ParticipationID: id,
			Scores:          scores,
			Comment:         comment,
			Evaluator:       evaluator,
		}); err != nil {
			logging.Error(ctx, "record participation review failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "record participation review")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "recorded review for participation %d\n", id); err != nil {
			return errs.Wrap(err, "write review output")
		}
		return nil
	}),
}

var participationReconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Re-run provisioning so participation matches the application status",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		id, _ := cmd.Flags().GetUint64("application")
		out, err := svc.ReconcileParticipation(ctx, id)
		if err != nil {
			logging.Error(ctx, "reconcile participation failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "reconcile participation")
		}

		var changes []string
		if out.Created {
			changes = append(changes, "created")
		}
		if out.Removed {
			changes = append(changes, "removed")
		}
		if len(changes) == 0 {
			changes = append(changes, "unchanged")
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "application %d participation: %s\n", id, strings.Join(changes, ",")); err != nil {
			return errs.Wrap(err, "write reconcile output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(participationCmd)
	participationCmd.AddCommand(participationListCmd)
	participationCmd.AddCommand(participationStateCmd)
	participationCmd.AddCommand(participationReviewCmd)
	participationCmd.AddCommand(participationReconcileCmd)

	participationListCmd.Flags().Uint64("program", 0, "Program id (0 lists every program)")

	participationStateCmd.Flags().Uint64("id", 0, "Participation id")
	participationStateCmd.Flags().String("state", "", "completed or dropped")
	_ = participationStateCmd.MarkFlagRequired("id")
	_ = participationStateCmd.MarkFlagRequired("state")

	participationReviewCmd.Flags().Uint64("id", 0, "Participation id")
	participationReviewCmd.Flags().StringToInt("score", nil, "Scores as name=value (0-100)")
	participationReviewCmd.Flags().String("comment", "", "Review comment")
	participationReviewCmd.Flags().String("evaluator", "", "Evaluator reference")
	_ = participationReviewCmd.MarkFlagRequired("id")
	_ = participationReviewCmd.MarkFlagRequired("evaluator")

	participationReconcileCmd.Flags().Uint64("application", 0, "Application id")
	_ = participationReconcileCmd.MarkFlagRequired("application")
}
