package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// PaymentStatus mirrors the processor's transaction status.
type PaymentStatus string

const (
	PaymentCreated    PaymentStatus = "created"
	PaymentPending    PaymentStatus = "pending"
	PaymentCapture    PaymentStatus = "capture"
	PaymentSettlement PaymentStatus = "settlement"
	PaymentDeny       PaymentStatus = "deny"
	PaymentCancel     PaymentStatus = "cancel"
	PaymentExpire     PaymentStatus = "expire"
	PaymentFailure    PaymentStatus = "failure"
)

// Settled reports whether the status means the money was received.
func (s PaymentStatus) Settled() bool {
	return s == PaymentCapture || s == PaymentSettlement
}

// Payment records one checkout attempt for a subscription.
type Payment struct {
	ID             int64
	OrderID        string
	SubscriptionID int64
	SnapToken      string
	RedirectURL    string
	GrossAmount    int64
	Status         PaymentStatus
	TransactionID  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const orderPrefix = "SEACATERING"

// NewOrderID builds the processor order id for a subscription payment attempt.
func NewOrderID(subscriptionID int64, at time.Time) string {
	return fmt.Sprintf("%s-%d-%d", orderPrefix, subscriptionID, at.Unix())
}

// SubscriptionIDFromOrder extracts the subscription id from an order id built by NewOrderID.
func SubscriptionIDFromOrder(orderID string) (int64, error) {
	parts := strings.Split(orderID, "-")
	if len(parts) != 3 || parts[0] != orderPrefix {
		return 0, fmt.Errorf("unrecognised order id %q", orderID)
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("order id %q: %w", orderID, err)
	}
	return id, nil
}
