package storefront

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sea-catering/storefront/internal/api/dto"
	"github.com/sea-catering/storefront/internal/client"
	"github.com/sea-catering/storefront/internal/domain"
)

func newDashboard(api *fakeAPI, confirm bool) (*Dashboard, *Cache, *widget) {
	cache := NewCache()
	w := &widget{}
	h := NewHandshake(api, w, cache, nil)
	return NewDashboard(api, cache, h, ConfirmFunc(func(string) bool { return confirm })), cache, w
}

func sampleSubscriptions() []dto.Subscription {
	return []dto.Subscription{
		{ID: 3, PlanName: domain.PlanRoyal, Status: "paused"},
		{ID: 2, PlanName: domain.PlanProtein, Status: "active"},
		{ID: 1, PlanName: domain.PlanDiet, Status: "pending"},
	}
}

func TestDashboardAffordances(t *testing.T) {
	api := &fakeAPI{
		subscriptions: append(sampleSubscriptions(), dto.Subscription{ID: 4, Status: "cancelled"}),
		paymentResp:   dto.PaymentResponse{SnapToken: "snap"},
	}
	d, _, _ := newDashboard(api, true)
	require.NoError(t, d.Refresh(context.Background()))

	assert.Equal(t, []domain.Action{domain.ActionResume, domain.ActionCancel}, d.Actions(3))
	assert.Equal(t, []domain.Action{domain.ActionPause, domain.ActionCancel}, d.Actions(2))
	assert.Equal(t, []domain.Action{domain.ActionPayNow, domain.ActionCancel}, d.Actions(1))
	assert.Empty(t, d.Actions(4))

	_, err := d.PayNow(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.Action{domain.ActionCancel}, d.Actions(1), "pay-now is disabled while in flight")
}

func TestSetStatusReplacesOnlyThatEntry(t *testing.T) {
	api := &fakeAPI{subscriptions: sampleSubscriptions()}
	d, cache, _ := newDashboard(api, true)
	require.NoError(t, d.Refresh(context.Background()))
	before := cache.Items()

	require.NoError(t, d.SetStatus(context.Background(), 2, domain.SubscriptionPaused))

	after := cache.Items()
	require.Len(t, after, 3)
	assert.Equal(t, domain.SubscriptionPaused, after[1].Status)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[2], after[2])
	assert.Equal(t, domain.SubscriptionActive, before[1].Status, "earlier snapshots are not mutated")
}

func TestSetStatusFailureLeavesCacheUntouched(t *testing.T) {
	api := &fakeAPI{
		subscriptions: sampleSubscriptions(),
		statusErr:     &client.APIError{Status: http.StatusConflict, Code: "CONFLICT", Message: "cannot change status from active to paused"},
	}
	d, cache, _ := newDashboard(api, true)
	require.NoError(t, d.Refresh(context.Background()))
	before := cache.Items()

	err := d.SetStatus(context.Background(), 2, domain.SubscriptionPaused)
	require.Error(t, err)
	assert.Equal(t, "cannot change status from active to paused", err.Error())
	assert.Equal(t, before, cache.Items())
}

func TestSetStatusNeedsConfirmation(t *testing.T) {
	api := &fakeAPI{subscriptions: sampleSubscriptions()}
	d, _, _ := newDashboard(api, false)
	require.NoError(t, d.Refresh(context.Background()))

	assert.ErrorIs(t, d.SetStatus(context.Background(), 3, domain.SubscriptionActive), ErrNotConfirmed)
	assert.ErrorIs(t, d.SetStatus(context.Background(), 1, domain.SubscriptionActive), ErrActionNotOffered)
	assert.ErrorIs(t, d.SetStatus(context.Background(), 42, domain.SubscriptionCancelled), ErrUnknownSubscription)
	assert.Zero(t, api.statusCalls)
}

func TestPerformMapsActions(t *testing.T) {
	api := &fakeAPI{subscriptions: sampleSubscriptions(), paymentResp: dto.PaymentResponse{SnapToken: "snap"}}
	d, cache, _ := newDashboard(api, true)
	require.NoError(t, d.Refresh(context.Background()))

	a, err := d.Perform(context.Background(), 3, domain.ActionResume)
	require.NoError(t, err)
	assert.Nil(t, a)
	got, _ := cache.Get(3)
	assert.Equal(t, domain.SubscriptionActive, got.Status)

	a, err = d.Perform(context.Background(), 1, domain.ActionPayNow)
	require.NoError(t, err)
	require.NotNil(t, a)

	_, err = d.Perform(context.Background(), 2, domain.ActionPayNow)
	assert.ErrorIs(t, err, ErrActionNotOffered)
}

func TestRefreshOverwritesProvisionalStatus(t *testing.T) {
	api := &fakeAPI{subscriptions: sampleSubscriptions(), paymentResp: dto.PaymentResponse{SnapToken: "snap"}}
	d, cache, w := newDashboard(api, true)
	require.NoError(t, d.Refresh(context.Background()))

	a, err := d.PayNow(context.Background(), 1)
	require.NoError(t, err)
	w.last().OnSuccess(CheckoutResult{TransactionID: "trx"})
	<-a.Done()

	got, _ := cache.Get(1)
	assert.Equal(t, domain.SubscriptionActive, got.EffectiveStatus())
	assert.Equal(t, []domain.Action{domain.ActionPause, domain.ActionCancel}, d.Actions(1))

	// the webhook has not arrived yet, so the server still says pending
	require.NoError(t, d.Refresh(context.Background()))
	got, _ = cache.Get(1)
	assert.Nil(t, got.Provisional)
	assert.Equal(t, domain.SubscriptionPending, got.EffectiveStatus())
}
