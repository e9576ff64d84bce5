package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionsForStatus(t *testing.T) {
	assert.Equal(t, []Action{ActionResume, ActionCancel}, ActionsFor(SubscriptionPaused))
	assert.Equal(t, []Action{ActionPause, ActionCancel}, ActionsFor(SubscriptionActive))
	assert.Equal(t, []Action{ActionPayNow, ActionCancel}, ActionsFor(SubscriptionPending))
	assert.Empty(t, ActionsFor(SubscriptionCancelled))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to SubscriptionStatus
		want     bool
	}{
		{SubscriptionPaused, SubscriptionActive, true},
		{SubscriptionActive, SubscriptionPaused, true},
		{SubscriptionPending, SubscriptionCancelled, true},
		{SubscriptionActive, SubscriptionCancelled, true},
		{SubscriptionPending, SubscriptionActive, false},
		{SubscriptionPending, SubscriptionPaused, false},
		{SubscriptionCancelled, SubscriptionActive, false},
		{SubscriptionPaused, SubscriptionPaused, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestLookupPlan(t *testing.T) {
	for _, name := range []string{"Protein Plan", "protein-plan", "protein", "  PROTEIN plan "} {
		p, ok := LookupPlan(name)
		require.True(t, ok, name)
		assert.Equal(t, PlanProtein, p.Name)
		assert.EqualValues(t, 40000, p.PricePerMeal)
	}
	_, ok := LookupPlan("Keto Plan")
	assert.False(t, ok)
	_, ok = LookupPlan("")
	assert.False(t, ok)
}

func TestParseDeliveryDay(t *testing.T) {
	d, ok := ParseDeliveryDay("wed")
	require.True(t, ok)
	assert.Equal(t, Wednesday, d)
	_, ok = ParseDeliveryDay("someday")
	assert.False(t, ok)
}

func TestOrderIDRoundTrip(t *testing.T) {
	at := time.Unix(1700000000, 0)
	orderID := NewOrderID(42, at)
	assert.Equal(t, "SEACATERING-42-1700000000", orderID)

	id, err := SubscriptionIDFromOrder(orderID)
	require.NoError(t, err)
	assert.EqualValues(t, 42, id)

	_, err = SubscriptionIDFromOrder("OTHER-1-2")
	assert.Error(t, err)
}
