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

var evaluationCmd = &cobra.Command{
	Use:     "evaluation",
	Aliases: []string{"eval"},
	Short:   "Record and browse scored evaluations",
}

var evaluationRecordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record an evaluation with three criterion scores (0-100)",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		id, _ := cmd.Flags().GetUint64("application")
		c1, _ := cmd.Flags().GetInt("c1")
		c2, _ := cmd.Flags().GetInt("c2")
		c3, _ := cmd.Flags().GetInt("c3")
		memo, _ := cmd.Flags().GetString("memo")
		evaluator, _ := cmd.Flags().GetString("evaluator")

		item, err := svc.RecordEvaluation(ctx, review.RecordEvaluationInput{
			ApplicationID: id,
			Criterion1:    c1,
			Criterion2:    c2,
			Criterion3:    c3,
			Memo:          memo,
			Evaluator:     evaluator,
		})
		if err != nil {
			logging.Error(ctx, "record evaluation failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "record evaluation")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "recorded evaluation: %d total=%d\n", item.EvaluationID, item.Total); err != nil {
			return errs.Wrap(err, "write record output")
		}
		return nil
	}),
}

var evaluationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List evaluations of an application, most recent first",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		id, _ := cmd.Flags().GetUint64("application")
		items, err := svc.ListEvaluations(ctx, id)
		if err != nil {
			logging.Error(ctx, "list evaluations failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list evaluations")
		}

		table := newTable(cmd.OutOrStdout(), "ID", "Evaluator", "C1", "C2", "C3", "Total", "Memo", "At")
		for _, item := range items {
			table.Append([]string{
				fmt.Sprintf("%d", item.EvaluationID),
				item.EvaluatorName,
				fmt.Sprintf("%d", item.Criterion1),
				fmt.Sprintf("%d", item.Criterion2),
				fmt.Sprintf("%d", item.Criterion3),
				fmt.Sprintf("%d", item.Total),
				item.Memo,
				item.CreatedAt,
			})
		}
		table.Render()
		return nil
	}),
}

var evaluationDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete one evaluation",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		id, _ := cmd.Flags().GetUint64("id")
		if err := svc.DeleteEvaluation(ctx, id); err != nil {
			logging.Error(ctx, "delete evaluation failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "delete evaluation")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "deleted evaluation: %d\n", id); err != nil {
			return errs.Wrap(err, "write delete output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(evaluationCmd)
	evaluationCmd.AddCommand(evaluationRecordCmd)
	evaluationCmd.AddCommand(evaluationListCmd)
	evaluationCmd.AddCommand(evaluationDeleteCmd)

	evaluationRecordCmd.Flags().Uint64("application", 0, "Application id")
	evaluationRecordCmd.Flags().Int("c1", 0, "Criterion 1 score")
	evaluationRecordCmd.Flags().Int("c2", 0, "Criterion 2 score")
	evaluationRecordCmd.Flags().Int("c3", 0, "Criterion 3 score")
	evaluationRecordCmd.Flags().String("memo", "", "Free-text memo")
	evaluationRecordCmd.Flags().String("evaluator", "", "Evaluator reference")
	_ = evaluationRecordCmd.MarkFlagRequired("application")
	_ = evaluationRecordCmd.MarkFlagRequired("evaluator")

	evaluationListCmd.Flags().Uint64("application", 0, "Application id")
	_ = evaluationListCmd.MarkFlagRequired("application")

	evaluationDeleteCmd.Flags().Uint64("id", 0, "Evaluation id")
	_ = evaluationDeleteCmd.MarkFlagRequired("id")
}
