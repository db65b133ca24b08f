package cmd

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"recruitflow/internal/bootstrap"
	"recruitflow/internal/bootstrap/logging"
	"recruitflow/internal/errs"
	"recruitflow/internal/usecase/review"
)

var applicationCmd = &cobra.Command{
	Use:     "application",
	Aliases: []string{"app"},
	Short:   "Submit, browse and move applications through review",
}

var applicationSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit an application against a posting",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		postingID, _ := cmd.Flags().GetUint64("posting")
		submitter, _ := cmd.Flags().GetString("submitter")
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		phone, _ := cmd.Flags().GetString("phone")
		referral, _ := cmd.Flags().GetString("referral")
		rawAttachments, _ := cmd.Flags().GetStringArray("attachment")

		attachments, err := parseAttachments(rawAttachments)
		if err != nil {
			return err
		}

		id, err := svc.Submit(ctx, review.SubmitInput{
			PostingID:    postingID,
			SubmitterRef: submitter,
			Name:         name,
			Email:        email,
			Phone:        phone,
			Attachments:  attachments,
			Referral:     referral,
		})
		if err != nil {
			logging.Error(ctx, "submit application failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "submit application")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "submitted application: %d\n", id); err != nil {
			return errs.Wrap(err, "write submit output")
		}
		return nil
	}),
}

var applicationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of the review queue",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		page, _ := cmd.Flags().GetInt("page")

		out, err := svc.ListApplications(ctx, filter, page)
		if err != nil {
			logging.Error(ctx, "list applications failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "list applications")
		}

		table := newTable(cmd.OutOrStdout(), "ID", "Posting", "Name", "Email", "Status", "Latest total", "Submitted at")
		for _, item := range out.Items {
			table.Append([]string{
				fmt.Sprintf("%d", item.ApplicationID),
				fmt.Sprintf("%d", item.PostingID),
				item.ApplicantName,
				item.Email,
				statusLabel(item.Status),
				optionalTotal(item.LatestTotal),
				item.CreatedAt,
			})
		}
		table.Render()

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d, %d applications\n", out.Page, out.TotalPages, out.Total); err != nil {
			return errs.Wrap(err, "write list output")
		}
		return nil
	}),
}

var applicationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one application with its allowed next statuses",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		id, _ := cmd.Flags().GetUint64("id")
		detail, err := svc.GetApplication(ctx, id)
		if err != nil {
			logging.Error(ctx, "get application failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "get application")
		}

		var b strings.Builder
		fmt.Fprintf(&b, "application: %d\n", detail.ApplicationID)
		fmt.Fprintf(&b, "posting: %d %s\n", detail.PostingID, detail.PostingTitle)
		fmt.Fprintf(&b, "submitter: %s\n", detail.SubmitterRef)
		fmt.Fprintf(&b, "name: %s\nemail: %s\nphone: %s\n", detail.Name, detail.Email, detail.Phone)
		for i, a := range detail.Attachments {
			fmt.Fprintf(&b, "attachment %d: %s (%s)\n", i+1, a.Name, a.URL)
		}
		if detail.Referral != "" {
			fmt.Fprintf(&b, "referral: %s\n", detail.Referral)
		}
		fmt.Fprintf(&b, "status: %s\n", statusLabel(detail.Status))
		fmt.Fprintf(&b, "allowed next: %s\n", strings.Join(detail.AllowedNext, ", "))
		fmt.Fprintf(&b, "created at: %s\nupdated at: %s\n", detail.CreatedAt, detail.UpdatedAt)

		if _, err := fmt.Fprint(cmd.OutOrStdout(), b.String()); err != nil {
			return errs.Wrap(err, "write show output")
		}
		return nil
	}),
}

var applicationAuditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show the status history of an application, oldest first",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		id, _ := cmd.Flags().GetUint64("id")
		trail, err := svc.AuditTrail(ctx, id)
		if err != nil {
			logging.Error(ctx, "read audit trail failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "read audit trail")
		}

		table := newTable(cmd.OutOrStdout(), "At", "From", "To", "Actor")
		for _, entry := range trail {
			table.Append([]string{entry.CreatedAt, statusLabel(entry.FromStatus), statusLabel(entry.ToStatus), entry.Actor})
		}
		table.Render()
		return nil
	}),
}

var applicationTransitionCmd = &cobra.Command{
	Use:   "transition",
	Short: "Move an application to another status",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		id, _ := cmd.Flags().GetUint64("id")
		target, _ := cmd.Flags().GetString("to")
		actor, _ := cmd.Flags().GetString("actor")

		out, err := svc.Transition(ctx, review.TransitionInput{
			ApplicationID: id,
			Target:        target,
			Actor:         actor,
		})
		if err != nil {
			logging.Error(ctx, "transition application failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "transition application")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "application %d is now %s\n", out.ApplicationID, statusLabel(out.Status)); err != nil {
			return errs.Wrap(err, "write transition output")
		}
		return nil
	}),
}

var applicationAdjacentCmd = &cobra.Command{
	Use:   "adjacent",
	Short: "Show the previous and next application under a filter",
	RunE: withApp(func(cmd *cobra.Command, _ *bootstrap.App, svc *review.Service) error {
		ctx := logging.WithAttrs(cmd.Context(), slog.String("command", cmd.CommandPath()))

		id, _ := cmd.Flags().GetUint64("id")
		filter, err := filterFromFlags(cmd)
		if err != nil {
			return err
		}
		out, err := svc.Adjacent(ctx, id, filter)
		if err != nil {
			logging.Error(ctx, "find adjacent applications failed", slog.Any("err", errs.Loggable(err)))
			return errs.Wrap(err, "find adjacent applications")
		}

		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "prev: %s\nnext: %s\n", optionalID(out.PrevID), optionalID(out.NextID)); err != nil {
			return errs.Wrap(err, "write adjacent output")
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(applicationCmd)
	applicationCmd.AddCommand(applicationSubmitCmd)
	applicationCmd.AddCommand(applicationListCmd)
	applicationCmd.AddCommand(applicationShowCmd)
	applicationCmd.AddCommand(applicationAuditCmd)
	applicationCmd.AddCommand(applicationTransitionCmd)
	applicationCmd.AddCommand(applicationAdjacentCmd)

	applicationSubmitCmd.Flags().Uint64("posting", 0, "Posting id")
	applicationSubmitCmd.Flags().String("submitter", "", "Submitter reference")
	applicationSubmitCmd.Flags().String("name", "", "Applicant name")
	applicationSubmitCmd.Flags().String("email", "", "Applicant email")
	applicationSubmitCmd.Flags().String("phone", "", "Applicant phone")
	applicationSubmitCmd.Flags().String("referral", "", "Referral source")
	applicationSubmitCmd.Flags().StringArray("attachment", nil, "Attachment as name=url (repeat up to twice)")
	_ = applicationSubmitCmd.MarkFlagRequired("posting")
	_ = applicationSubmitCmd.MarkFlagRequired("submitter")

	addFilterFlags(applicationListCmd)
	applicationListCmd.Flags().Int("page", 1, "Page number, 1-based")

	for _, c := range []*cobra.Command{applicationShowCmd, applicationAuditCmd, applicationTransitionCmd, applicationAdjacentCmd} {
		c.Flags().Uint64("id", 0, "Application id")
		_ = c.MarkFlagRequired("id")
	}

	applicationTransitionCmd.Flags().String("to", "", "Target status (submitted, first_pass, final_pass, rejected)")
	applicationTransitionCmd.Flags().String("actor", "", "Acting reviewer reference")
	_ = applicationTransitionCmd.MarkFlagRequired("to")
	_ = applicationTransitionCmd.MarkFlagRequired("actor")

	addFilterFlags(applicationAdjacentCmd)
}

func addFilterFlags(c *cobra.Command) {
	c.Flags().StringSlice("status", nil, "Restrict to statuses (comma separated)")
	c.Flags().StringSlice("posting", nil, "Restrict to posting ids (comma separated)")
}

func filterFromFlags(cmd *cobra.Command) (review.Filter, error) {
	statuses, _ := cmd.Flags().GetStringSlice("status")
	rawPostings, _ := cmd.Flags().GetStringSlice("posting")

	postings := make([]uint64, 0, len(rawPostings))
	for _, raw := range rawPostings {
		id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return review.Filter{}, fmt.Errorf("invalid posting id %q", raw)
		}
		postings = append(postings, id)
	}
	return review.Filter{Statuses: statuses, PostingIDs: postings}, nil
}

func parseAttachments(raw []string) ([]review.Attachment, error) {
	out := make([]review.Attachment, 0, len(raw))
	for _, item := range raw {
		name, url, ok := strings.Cut(item, "=")
		if !ok {
			return nil, fmt.Errorf("attachment %q must be name=url", item)
		}
		out = append(out, review.Attachment{Name: strings.TrimSpace(name), URL: strings.TrimSpace(url)})
	}
	return out, nil
}
