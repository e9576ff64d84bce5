package domain

import (
	"strings"

	"github.com/gosimple/slug"
)

// Plan is a meal plan offered in the catalog.
type Plan struct {
	Name         string
	Slug         string
	PricePerMeal int64
	Description  string
}

// MealType is one of the meals a subscription can deliver each day.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
)

// DeliveryDay is a weekday on which meals are delivered.
type DeliveryDay string

const (
	Monday    DeliveryDay = "Monday"
	Tuesday   DeliveryDay = "Tuesday"
	Wednesday DeliveryDay = "Wednesday"
	Thursday  DeliveryDay = "Thursday"
	Friday    DeliveryDay = "Friday"
	Saturday  DeliveryDay = "Saturday"
	Sunday    DeliveryDay = "Sunday"
)

// Plan names as stored on subscriptions.
const (
	PlanDiet    = "Diet Plan"
	PlanProtein = "Protein Plan"
	PlanRoyal   = "Royal Plan"
)

var plans = []Plan{
	{Name: PlanDiet, PricePerMeal: 30000, Description: "Balanced, calorie-controlled meals for weight management."},
	{Name: PlanProtein, PricePerMeal: 40000, Description: "High-protein meals for training and recovery."},
	{Name: PlanRoyal, PricePerMeal: 60000, Description: "Premium chef-curated dishes with gourmet ingredients."},
}

var mealTypes = []MealType{MealBreakfast, MealLunch, MealDinner}

var deliveryDays = []DeliveryDay{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func init() {
	for i := range plans {
		plans[i].Slug = slug.Make(plans[i].Name)
	}
}

// Plans lists the catalog plans in display order.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// MealTypes lists the selectable meal types.
func MealTypes() []MealType {
	out := make([]MealType, len(mealTypes))
	copy(out, mealTypes)
	return out
}

// DeliveryDays lists the selectable delivery days, Monday first.
func DeliveryDays() []DeliveryDay {
	out := make([]DeliveryDay, len(deliveryDays))
	copy(out, deliveryDays)
	return out
}

// LookupPlan finds a plan by display name or slug ("Protein Plan", "protein-plan", "protein").
func LookupPlan(name string) (Plan, bool) {
	key := slug.Make(strings.TrimSpace(name))
	if key == "" {
		return Plan{}, false
	}
	for _, p := range plans {
		if p.Slug == key || p.Slug == key+"-plan" {
			return p, true
		}
	}
	return Plan{}, false
}

// ParseMealType matches a meal type case-insensitively.
func ParseMealType(s string) (MealType, bool) {
	for _, m := range mealTypes {
		if strings.EqualFold(string(m), strings.TrimSpace(s)) {
			return m, true
		}
	}
	return "", false
}

// ParseDeliveryDay matches a weekday case-insensitively, accepting three-letter abbreviations.
func ParseDeliveryDay(s string) (DeliveryDay, bool) {
	s = strings.TrimSpace(s)
	for _, d := range deliveryDays {
		if strings.EqualFold(string(d), s) || (len(s) == 3 && strings.EqualFold(string(d)[:3], s)) {
			return d, true
		}
	}
	return "", false
}
