package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sea-catering/storefront/internal/domain"
)

func TestEstimateProteinPlanAllWeek(t *testing.T) {
	got := Estimate(domain.PlanProtein,
		[]domain.MealType{domain.MealLunch, domain.MealDinner},
		domain.DeliveryDays())
	assert.EqualValues(t, 2408000, got)
}

func TestEstimateEmptySelectionsAreZero(t *testing.T) {
	meals := []domain.MealType{domain.MealBreakfast}
	days := []domain.DeliveryDay{domain.Monday}
	for _, p := range domain.Plans() {
		assert.Zero(t, Estimate(p.Name, nil, days), p.Name)
		assert.Zero(t, Estimate(p.Name, meals, nil), p.Name)
		assert.Zero(t, Estimate(p.Name, nil, nil), p.Name)
	}
}

func TestEstimateMatchesFormulaForEveryPlan(t *testing.T) {
	meals := domain.MealTypes()
	days := domain.DeliveryDays()
	for _, p := range domain.Plans() {
		for m := 1; m <= len(meals); m++ {
			for d := 1; d <= len(days); d++ {
				want := float64(p.PricePerMeal) * float64(m) * float64(d) * WeeksPerMonth
				got := Estimate(p.Name, meals[:m], days[:d])
				assert.InDelta(t, want, float64(got), 0.5, "%s m=%d d=%d", p.Name, m, d)
			}
		}
	}
}

func TestEstimateIgnoresDuplicatesAndOrder(t *testing.T) {
	a := Estimate(domain.PlanDiet,
		[]domain.MealType{domain.MealDinner, domain.MealLunch, domain.MealDinner},
		[]domain.DeliveryDay{domain.Friday, domain.Monday, domain.Friday})
	b := Estimate(domain.PlanDiet,
		[]domain.MealType{domain.MealLunch, domain.MealDinner},
		[]domain.DeliveryDay{domain.Monday, domain.Friday})
	assert.Equal(t, b, a)
	assert.EqualValues(t, 516000, a)
}

func TestEstimateUnknownPlanPanics(t *testing.T) {
	assert.Panics(t, func() {
		Estimate("Keto Plan", []domain.MealType{domain.MealLunch}, []domain.DeliveryDay{domain.Monday})
	})
}
