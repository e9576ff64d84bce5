package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishRunsEveryHandler(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var got []Event
	d.Subscribe(EventPaymentSettled, func(_ context.Context, e Event) error {
		return errors.New("mail down")
	})
	d.Subscribe(EventPaymentSettled, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})
	d.Subscribe(EventSubscriptionCreated, func(context.Context, Event) error {
		t.Fatal("unrelated handler invoked")
		return nil
	})

	require.NoError(t, d.Publish(context.Background(), Event{Type: EventPaymentSettled, SubscriptionID: 3}))
	require.Len(t, got, 1)
	assert.NotEmpty(t, got[0].ID)
	assert.False(t, got[0].Timestamp.IsZero())
	assert.EqualValues(t, 3, got[0].SubscriptionID)
}
