// Package pricing computes monthly subscription estimates from the catalog.
package pricing

import (
	"fmt"
	"math"

	"github.com/sea-catering/storefront/internal/domain"
)

// WeeksPerMonth approximates the number of delivery weeks in a month.
const WeeksPerMonth = 4.3

// Estimate returns the monthly price, in rupiah, of a plan delivered for the
// given meal types on the given days. Duplicates are ignored; an empty meal or
// day selection yields zero. Estimate panics on a plan the catalog does not know.
func Estimate(plan string, meals []domain.MealType, days []domain.DeliveryDay) int64 {
	p, ok := domain.LookupPlan(plan)
	if !ok {
		panic(fmt.Sprintf("pricing: unknown plan %q", plan))
	}
	m := distinct(meals)
	d := distinct(days)
	if m == 0 || d == 0 {
		return 0
	}
	return int64(math.Round(float64(p.PricePerMeal*int64(m*d)) * WeeksPerMonth))
}

func distinct[T comparable](items []T) int {
	seen := make(map[T]struct{}, len(items))
	for _, it := range items {
		seen[it] = struct{}{}
	}
	return len(seen)
}
