package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/storefront"
)

var plansCmd = &cobra.Command{
	Use:         "plans",
	Short:       "List meal plans, meal types and delivery days",
	Annotations: routed(storefront.RouteMenu),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(state.out, "Meal plans:")
		for _, p := range domain.Plans() {
			green.Fprintf(state.out, "  %-13s %s per meal  (%s)\n", p.Name, rupiah(p.PricePerMeal), p.Slug)
			fmt.Fprintf(state.out, "                %s\n", p.Description)
		}
		fmt.Fprint(state.out, "Meal types:")
		for _, m := range domain.MealTypes() {
			fmt.Fprintf(state.out, " %s", m)
		}
		fmt.Fprint(state.out, "\nDelivery days:")
		for _, d := range domain.DeliveryDays() {
			fmt.Fprintf(state.out, " %s", d)
		}
		fmt.Fprintln(state.out)
		return nil
	},
}

var estimateCmd = &cobra.Command{
	Use:         "estimate",
	Short:       "Estimate the monthly price of a selection",
	Example:     "  seacatering estimate --plan protein --meals lunch,dinner --days all",
	Annotations: routed(storefront.RouteMenu),
	RunE: func(cmd *cobra.Command, args []string) error {
		draft, err := draftFromFlags(cmd)
		if err != nil {
			return err
		}
		if _, ok := domain.LookupPlan(draft.Plan); !ok {
			return storefront.ErrUnknownPlan
		}
		fmt.Fprintf(state.out, "%s, %d meal type(s), %d day(s): ", draft.Plan, len(draft.Meals), len(draft.Days))
		green.Fprintf(state.out, "%s / month\n", rupiah(draft.Estimate()))
		return nil
	},
}

func draftFromFlags(cmd *cobra.Command) (*storefront.Draft, error) {
	plan, _ := cmd.Flags().GetString("plan")
	rawMeals, _ := cmd.Flags().GetString("meals")
	rawDays, _ := cmd.Flags().GetString("days")

	meals, err := parseMeals(rawMeals)
	if err != nil {
		return nil, err
	}
	days, err := parseDays(rawDays)
	if err != nil {
		return nil, err
	}
	if p, ok := domain.LookupPlan(plan); ok {
		plan = p.Name
	}
	return &storefront.Draft{Plan: plan, Meals: meals, Days: days}, nil
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("plan", "", "Meal plan: diet, protein or royal")
	cmd.Flags().String("meals", "", "Comma-separated meal types, e.g. breakfast,dinner")
	cmd.Flags().String("days", "", "Comma-separated delivery days, e.g. mon,wed,fri, or all")
}

func init() {
	addSelectionFlags(estimateCmd)
}
