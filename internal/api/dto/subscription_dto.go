package dto

import (
	"time"

	"github.com/sea-catering/storefront/internal/domain"
)

// SubscribeRequest creates a subscription. TotalPrice is the client's
// estimate and is ignored by the server.
type SubscribeRequest struct {
	Name          string   `json:"name" validate:"required,max=120"`
	Phone         string   `json:"phone" validate:"required,min=8,max=20"`
	SelectedPlan  string   `json:"selectedPlan" validate:"required"`
	SelectedMeals []string `json:"selectedMeals" validate:"required,min=1,dive,required"`
	SelectedDays  []string `json:"selectedDays" validate:"required,min=1,dive,required"`
	Allergies     string   `json:"allergies" validate:"max=500"`
	TotalPrice    int64    `json:"totalPrice,omitempty"`
}

// SubscribeResponse confirms a created subscription.
type SubscribeResponse struct {
	Message        string `json:"message"`
	SubscriptionID int64  `json:"subscriptionId"`
	TotalPrice     int64  `json:"totalPrice"`
}

// Subscription is the wire form of a subscription.
type Subscription struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	PlanName     string    `json:"planName"`
	MealTypes    []string  `json:"mealTypes"`
	DeliveryDays []string  `json:"deliveryDays"`
	Allergies    string    `json:"allergies,omitempty"`
	TotalPrice   int64     `json:"totalPrice"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// FromSubscription converts a domain subscription.
func FromSubscription(s domain.Subscription) Subscription {
	return Subscription{
		ID:           s.ID,
		Name:         s.Name,
		Phone:        s.Phone,
		PlanName:     s.PlanName,
		MealTypes:    nonNil(s.MealTypes),
		DeliveryDays: nonNil(s.DeliveryDays),
		Allergies:    s.Allergies,
		TotalPrice:   s.TotalPrice,
		Status:       string(s.Status),
		CreatedAt:    s.CreatedAt,
	}
}

// FromSubscriptions converts a list, never returning nil.
func FromSubscriptions(list []domain.Subscription) []Subscription {
	out := make([]Subscription, 0, len(list))
	for _, s := range list {
		out = append(out, FromSubscription(s))
	}
	return out
}

// Domain converts back to the domain subscription.
func (s Subscription) Domain() domain.Subscription {
	return domain.Subscription{
		ID:           s.ID,
		Name:         s.Name,
		Phone:        s.Phone,
		PlanName:     s.PlanName,
		MealTypes:    s.MealTypes,
		DeliveryDays: s.DeliveryDays,
		Allergies:    s.Allergies,
		TotalPrice:   s.TotalPrice,
		Status:       domain.SubscriptionStatus(s.Status),
		CreatedAt:    s.CreatedAt,
	}
}

// StatusUpdateRequest changes a subscription's status.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=active paused cancelled"`
}

// StatusUpdateResponse confirms a status change.
type StatusUpdateResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// PaymentResponse hands the client its checkout token.
type PaymentResponse struct {
	SnapToken   string `json:"snapToken"`
	RedirectURL string `json:"redirectUrl,omitempty"`
	OrderID     string `json:"orderId,omitempty"`
}

// Recommendation is an AI-suggested dish.
type Recommendation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// FromRecommendations converts a list, never returning nil.
func FromRecommendations(list []domain.Recommendation) []Recommendation {
	out := make([]Recommendation, 0, len(list))
	for _, r := range list {
		out = append(out, Recommendation{Name: r.Name, Description: r.Description})
	}
	return out
}

// PaymentNotification is the Midtrans HTTP notification body. Midtrans sends
// gross_amount as a decimal string.
type PaymentNotification struct {
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	OrderID           string `json:"order_id" validate:"required"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key" validate:"required"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
