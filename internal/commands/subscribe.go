package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sea-catering/storefront/internal/storefront"
)

var subscribeCmd = &cobra.Command{
	Use:         "subscribe",
	Short:       "Subscribe to a meal plan and pay for it",
	Example:     "  seacatering subscribe --plan protein --meals lunch,dinner --days all --phone 08123456789",
	Annotations: routed(storefront.RouteSubscription),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := draftFromFlags(cmd)
		if err != nil {
			return err
		}
		draft.Name, _ = cmd.Flags().GetString("name")
		draft.Phone, _ = cmd.Flags().GetString("phone")
		draft.Allergies, _ = cmd.Flags().GetString("allergies")
		if strings.TrimSpace(draft.Name) == "" && state.profile != nil {
			draft.Name = state.profile.FullName
		}
		if err := draft.Validate(); err != nil {
			return err
		}

		fmt.Fprintf(state.out, "Subscribing to %s for %s / month\n", draft.Plan, rupiah(draft.Estimate()))
		attempt, err := state.handshake(storefront.NewCache()).Submit(cmd.Context(), draft)
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

func init() {
	addSelectionFlags(subscribeCmd)
	subscribeCmd.Flags().String("name", "", "Contact name (defaults to your account name)")
	subscribeCmd.Flags().String("phone", "", "Active phone number")
	subscribeCmd.Flags().String("allergies", "", "Allergies or dietary restrictions")
}
