package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/storefront"
)

var testimonialsCmd = &cobra.Command{
	Use:         "testimonials",
	Short:       "Read what customers say",
	Annotations: routed(storefront.RouteTestimonials),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, _ := cmd.Flags().GetInt("page")
		board := storefront.NewBoard(state.api)
		if err := board.Load(cmd.Context()); err != nil {
			return fmt.Errorf("error loading testimonials: %w", err)
		}
		board.GoTo(page)
		visible := board.Visible()
		if len(visible) == 0 {
			fmt.Fprintln(state.out, "No testimonials yet.")
			return nil
		}
		for _, t := range visible {
			printTestimonial(t)
		}
		fmt.Fprintf(state.out, "Page %d of %d\n", board.CurrentPage(), board.Pages())
		return nil
	},
}

var reviewCmd = &cobra.Command{
	Use:         "review <text>",
	Short:       "Share your experience",
	Args:        cobra.MinimumNArgs(1),
	Annotations: routed(storefront.RouteReview),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, _ := cmd.Flags().GetInt("rating")
		board := storefront.NewBoard(state.api)
		t, err := board.Submit(cmd.Context(), strings.Join(args, " "), rating)
		if err != nil {
			return err
		}
		green.Fprintf(state.out, "Thank you for your review!\n")
		printTestimonial(t)
		return nil
	},
}

func printTestimonial(t domain.Testimonial) {
	yellow.Fprintf(state.out, "%s%s\n", strings.Repeat("*", t.Rating), strings.Repeat(".", domain.MaxRating-t.Rating))
	fmt.Fprintf(state.out, "  %q\n  - %s\n", t.Review, t.Name)
}

func init() {
	testimonialsCmd.Flags().Int("page", 1, "Page to show")
	reviewCmd.Flags().IntP("rating", "r", 0, "Rating from 1 to 5")
}
