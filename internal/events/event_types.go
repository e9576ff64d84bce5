package events

import (
	"time"

	"github.com/sea-catering/storefront/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSubscriptionCreated       EventType = "subscription_created"
	EventSubscriptionStatusChanged EventType = "subscription_status_changed"
	EventPaymentSettled            EventType = "payment_settled"
	EventTestimonialCreated        EventType = "testimonial_created"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID             string      `json:"id"`
	Type           EventType   `json:"type"`
	SubscriptionID int64       `json:"subscription_id,omitempty"`
	UserID         int64       `json:"user_id,omitempty"`
	Timestamp      time.Time   `json:"timestamp"`
	Payload        interface{} `json:"payload"`
}

// SubscriptionCreatedPayload payload.
type SubscriptionCreatedPayload struct {
	PlanName   string `json:"plan_name"`
	TotalPrice int64  `json:"total_price"`
}

// SubscriptionStatusChangedPayload payload.
type SubscriptionStatusChangedPayload struct {
	OldStatus domain.SubscriptionStatus `json:"old_status"`
	NewStatus domain.SubscriptionStatus `json:"new_status"`
	Actor     domain.HistoryActor       `json:"actor"`
}

// PaymentSettledPayload payload.
type PaymentSettledPayload struct {
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
	GrossAmount   int64  `json:"gross_amount"`
}

// TestimonialCreatedPayload payload.
type TestimonialCreatedPayload struct {
	TestimonialID int64 `json:"testimonial_id"`
	Rating        int   `json:"rating"`
}
