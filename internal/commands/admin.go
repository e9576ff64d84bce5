package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sea-catering/storefront/internal/storefront"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrator tools",
}

var adminStatsCmd = &cobra.Command{
	Use:         "stats",
	Short:       "Show subscription metrics",
	Annotations: routed(storefront.RouteAdmin),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		stats, err := state.api.DashboardStats(cmd.Context(), from, to)
		if err != nil {
			return fmt.Errorf("error loading dashboard stats: %w", err)
		}
		fmt.Fprintf(state.out, "New subscriptions:          %d\n", stats.NewSubscriptions)
		fmt.Fprint(state.out, "Monthly recurring revenue:  ")
		green.Fprintf(state.out, "%s\n", rupiah(stats.MonthlyRecurringRevenue))
		fmt.Fprintf(state.out, "Active subscriptions:       %d\n", stats.ActiveSubscriptions)
		fmt.Fprintf(state.out, "Reactivations:              %d\n", stats.Reactivations)
		return nil
	},
}

func init() {
	adminCmd.AddCommand(adminStatsCmd)
	adminStatsCmd.Flags().String("from", "", "Only count activity on or after this date (YYYY-MM-DD)")
	adminStatsCmd.Flags().String("to", "", "Only count activity on or before this date (YYYY-MM-DD)")
}
