package storefront

import (
	"slices"
	"strings"
	"sync"

	"github.com/sea-catering/storefront/internal/api/dto"
	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/pricing"
)

// Draft is a subscription being composed. Once the server has created it the
// draft remembers the id so a retried checkout resumes at the payment step.
//
// The fields are filled in before the draft is handed to a Handshake; after
// that the selection changes only through ToggleMeal and ToggleDay, which
// share the lock the handshake reads under.
type Draft struct {
	Plan      string
	Name      string
	Phone     string
	Allergies string
	Meals     []domain.MealType
	Days      []domain.DeliveryDay

	mu             sync.Mutex
	subscriptionID int64
}

type selection struct {
	plan      string
	name      string
	phone     string
	allergies string
	meals     []domain.MealType
	days      []domain.DeliveryDay
}

func (d *Draft) snapshot() selection {
	d.mu.Lock()
	defer d.mu.Unlock()
	return selection{
		plan:      d.Plan,
		name:      strings.TrimSpace(d.Name),
		phone:     strings.TrimSpace(d.Phone),
		allergies: strings.TrimSpace(d.Allergies),
		meals:     slices.Clone(d.Meals),
		days:      slices.Clone(d.Days),
	}
}

// ToggleMeal adds the meal type, or removes it when already selected.
func (d *Draft) ToggleMeal(m domain.MealType) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Meals = toggle(d.Meals, m)
}

// ToggleDay adds the delivery day, or removes it when already selected.
func (d *Draft) ToggleDay(day domain.DeliveryDay) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Days = toggle(d.Days, day)
}

func toggle[T comparable](set []T, v T) []T {
	if i := slices.Index(set, v); i >= 0 {
		return slices.Delete(slices.Clone(set), i, i+1)
	}
	return append(slices.Clone(set), v)
}

// Estimate is the monthly price of the current selection, zero while the
// plan is unknown or either set is empty.
func (d *Draft) Estimate() int64 {
	return d.snapshot().estimate()
}

func (s selection) estimate() int64 {
	if _, ok := domain.LookupPlan(s.plan); !ok {
		return 0
	}
	return pricing.Estimate(s.plan, s.meals, s.days)
}

// Validate checks the draft locally.
func (d *Draft) Validate() error {
	return d.snapshot().validate()
}

func (s selection) validate() error {
	if _, ok := domain.LookupPlan(s.plan); !ok {
		return ErrUnknownPlan
	}
	if s.name == "" {
		return ErrMissingName
	}
	if s.phone == "" {
		return ErrMissingPhone
	}
	if len(s.meals) == 0 {
		return ErrNoMealTypes
	}
	if len(s.days) == 0 {
		return ErrNoDeliveryDays
	}
	return nil
}

// Request builds the create-subscription payload from one consistent view
// of the selection.
func (d *Draft) Request() (dto.SubscribeRequest, error) {
	s := d.snapshot()
	if err := s.validate(); err != nil {
		return dto.SubscribeRequest{}, err
	}
	plan, _ := domain.LookupPlan(s.plan)
	req := dto.SubscribeRequest{
		Name:         s.name,
		Phone:        s.phone,
		SelectedPlan: plan.Name,
		Allergies:    s.allergies,
		TotalPrice:   s.estimate(),
	}
	for _, m := range s.meals {
		req.SelectedMeals = append(req.SelectedMeals, string(m))
	}
	for _, day := range s.days {
		req.SelectedDays = append(req.SelectedDays, string(day))
	}
	return req, nil
}

// SubscriptionID reports the id the server assigned, if step one has succeeded.
func (d *Draft) SubscriptionID() (int64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.subscriptionID, d.subscriptionID != 0
}

func (d *Draft) remember(id int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscriptionID = id
}

// seed is the locally known shape of the created subscription.
func (d *Draft) seed(id int64, totalPrice int64) domain.Subscription {
	req, _ := d.Request()
	if totalPrice == 0 {
		totalPrice = req.TotalPrice
	}
	return domain.Subscription{
		ID:           id,
		Name:         req.Name,
		Phone:        req.Phone,
		PlanName:     req.SelectedPlan,
		MealTypes:    req.SelectedMeals,
		DeliveryDays: req.SelectedDays,
		Allergies:    req.Allergies,
		TotalPrice:   totalPrice,
		Status:       domain.SubscriptionPending,
	}
}
