package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/storefront"
)

var subscriptionsCmd = &cobra.Command{
	Use:         "subscriptions",
	Aliases:     []string{"dashboard"},
	Short:       "List your subscriptions and what you can do with them",
	Annotations: routed(storefront.RouteDashboard),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := state.dashboard(nil)
		if err := d.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("error loading subscriptions: %w", err)
		}
		subs := d.Subscriptions()
		if len(subs) == 0 {
			fmt.Fprintln(state.out, "No subscriptions yet. Run `seacatering subscribe` to start one.")
			return nil
		}
		for _, s := range subs {
			fmt.Fprintf(state.out, "#%-5d %-13s ", s.ID, s.PlanName)
			statusColor(s.EffectiveStatus()).Fprintf(state.out, "%-10s", s.EffectiveStatus())
			fmt.Fprintf(state.out, " %s / month\n", rupiah(s.TotalPrice))
			fmt.Fprintf(state.out, "       %s on %s\n", strings.Join(s.MealTypes, ", "), strings.Join(s.DeliveryDays, ", "))
			if s.Allergies != "" {
				fmt.Fprintf(state.out, "       Allergies: %s\n", s.Allergies)
			}
			if actions := d.Actions(s.ID); len(actions) > 0 {
				names := make([]string, 0, len(actions))
				for _, a := range actions {
					names = append(names, string(a))
				}
				fmt.Fprintf(state.out, "       Actions: %s\n", strings.Join(names, ", "))
			}
		}
		return nil
	},
}

var pauseCmd = statusCommand("pause", domain.ActionPause, "Pause an active subscription")

var resumeCmd = statusCommand("resume", domain.ActionResume, "Resume a paused subscription")

var cancelCmd = statusCommand("cancel", domain.ActionCancel, "Cancel a subscription")

func statusCommand(use string, action domain.Action, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:         use + " <subscription-id>",
		Short:       short,
		Args:        cobra.ExactArgs(1),
		Annotations: routed(storefront.RouteDashboard),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			yes, _ := cmd.Flags().GetBool("yes")
			d, err := loadDashboard(cmd.Context(), state.confirmer(yes))
			if err != nil {
				return err
			}
			if _, err := d.Perform(cmd.Context(), id, action); err != nil {
				return err
			}
			target, _ := action.Target()
			green.Fprintf(state.out, "Subscription #%d is now %s\n", id, target)
			return nil
		},
	}
	cmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

var payCmd = &cobra.Command{
	Use:         "pay <subscription-id>",
	Short:       "Pay for a pending subscription",
	Args:        cobra.ExactArgs(1),
	Annotations: routed(storefront.RouteDashboard),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		d, err := loadDashboard(cmd.Context(), nil)
		if err != nil {
			return err
		}
		attempt, err := d.PayNow(cmd.Context(), id)
		if err != nil {
			return err
		}
		res, err := attempt.Wait(cmd.Context())
		if err != nil {
			return err
		}
		return reportAttempt(state.out, res)
	},
}

var recommendCmd = &cobra.Command{
	Use:         "recommend <subscription-id>",
	Short:       "Ask for dish recommendations that suit a subscription",
	Args:        cobra.ExactArgs(1),
	Annotations: routed(storefront.RouteDashboard),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		recs, err := state.api.Recommend(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("could not get recommendations: %w", err)
		}
		if len(recs) == 0 {
			fmt.Fprintln(state.out, "No recommendations right now.")
			return nil
		}
		for _, r := range recs {
			green.Fprintf(state.out, "* %s\n", r.Name)
			fmt.Fprintf(state.out, "  %s\n", r.Description)
		}
		return nil
	},
}

func loadDashboard(ctx context.Context, confirm storefront.Confirmer) (*storefront.Dashboard, error) {
	d := state.dashboard(confirm)
	if err := d.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("error loading subscriptions: %w", err)
	}
	return d, nil
}
