package storefront

import (
	"context"
	"fmt"

	"github.com/sea-catering/storefront/internal/api/dto"
	"github.com/sea-catering/storefront/internal/domain"
)

// Confirmer asks the user to confirm a status change.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// DashboardAPI is the part of the API the dashboard calls.
type DashboardAPI interface {
	ListSubscriptions(ctx context.Context) ([]dto.Subscription, error)
	UpdateStatus(ctx context.Context, id int64, status string) (dto.StatusUpdateResponse, error)
}

// Dashboard is the customer's view of their subscriptions.
type Dashboard struct {
	api       DashboardAPI
	cache     *Cache
	handshake *Handshake
	confirm   Confirmer
}

func NewDashboard(api DashboardAPI, cache *Cache, handshake *Handshake, confirm Confirmer) *Dashboard {
	return &Dashboard{api: api, cache: cache, handshake: handshake, confirm: confirm}
}

// Refresh replaces the cache with the server's list. Provisional annotations are dropped.
func (d *Dashboard) Refresh(ctx context.Context) error {
	list, err := d.api.ListSubscriptions(ctx)
	if err != nil {
		return err
	}
	subs := make([]domain.Subscription, 0, len(list))
	for _, s := range list {
		subs = append(subs, s.Domain())
	}
	d.cache.Replace(subs)
	return nil
}

func (d *Dashboard) Subscriptions() []CachedSubscription {
	return d.cache.Items()
}

// Actions lists the affordances for a cached subscription. Pay-now is
// withheld while a checkout for it is in flight.
func (d *Dashboard) Actions(id int64) []domain.Action {
	s, ok := d.cache.Get(id)
	if !ok {
		return nil
	}
	var out []domain.Action
	for _, a := range domain.ActionsFor(s.EffectiveStatus()) {
		if a == domain.ActionPayNow && d.handshake.InFlight(id) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// SetStatus asks for confirmation and then changes the status on the server.
// A rejected request leaves the cache untouched and returns the server error,
// whose message is shown verbatim.
func (d *Dashboard) SetStatus(ctx context.Context, id int64, target domain.SubscriptionStatus) error {
	s, ok := d.cache.Get(id)
	if !ok {
		return ErrUnknownSubscription
	}
	if !domain.CanTransition(s.EffectiveStatus(), target) {
		return ErrActionNotOffered
	}
	if d.confirm != nil && !d.confirm.Confirm(fmt.Sprintf("Change %s #%d to %s?", s.PlanName, id, target)) {
		return ErrNotConfirmed
	}

	resp, err := d.api.UpdateStatus(ctx, id, string(target))
	if err != nil {
		return err
	}
	status := domain.SubscriptionStatus(resp.Status)
	if !status.Valid() {
		status = target
	}
	d.cache.ApplyConfirmedStatus(id, status)
	return nil
}

// Perform runs a dashboard affordance. Pay-now returns the checkout attempt.
func (d *Dashboard) Perform(ctx context.Context, id int64, action domain.Action) (*Attempt, error) {
	if action == domain.ActionPayNow {
		return d.PayNow(ctx, id)
	}
	target, ok := action.Target()
	if !ok {
		return nil, ErrActionNotOffered
	}
	return nil, d.SetStatus(ctx, id, target)
}

// PayNow retries checkout for a pending subscription.
func (d *Dashboard) PayNow(ctx context.Context, id int64) (*Attempt, error) {
	s, ok := d.cache.Get(id)
	if !ok {
		return nil, ErrUnknownSubscription
	}
	if s.EffectiveStatus() != domain.SubscriptionPending {
		return nil, ErrActionNotOffered
	}
	return d.handshake.PayNow(ctx, id)
}
