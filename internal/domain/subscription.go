package domain

import "time"

// SubscriptionStatus enumerates lifecycle states for a subscription.
type SubscriptionStatus string

const (
	SubscriptionPending   SubscriptionStatus = "pending"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionPaused    SubscriptionStatus = "paused"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionPending, SubscriptionActive, SubscriptionPaused, SubscriptionCancelled:
		return true
	}
	return false
}

// Subscription is a customer's meal-plan subscription.
type Subscription struct {
	ID           int64
	UserID       int64
	Name         string
	Phone        string
	PlanName     string
	MealTypes    []string
	DeliveryDays []string
	Allergies    string
	TotalPrice   int64
	Status       SubscriptionStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Action is a dashboard affordance offered for a subscription.
type Action string

const (
	ActionPayNow Action = "pay-now"
	ActionResume Action = "resume"
	ActionPause  Action = "pause"
	ActionCancel Action = "cancel"
)

// Target returns the status an action moves a subscription to. Pay-now has no direct target.
func (a Action) Target() (SubscriptionStatus, bool) {
	switch a {
	case ActionResume:
		return SubscriptionActive, true
	case ActionPause:
		return SubscriptionPaused, true
	case ActionCancel:
		return SubscriptionCancelled, true
	}
	return "", false
}

// ActionsFor lists the affordances a customer gets for a subscription in status s.
func ActionsFor(s SubscriptionStatus) []Action {
	switch s {
	case SubscriptionPending:
		return []Action{ActionPayNow, ActionCancel}
	case SubscriptionActive:
		return []Action{ActionPause, ActionCancel}
	case SubscriptionPaused:
		return []Action{ActionResume, ActionCancel}
	}
	return nil
}

// CanTransition reports whether a customer may move a subscription from one status to another.
// pending -> active is reserved for payment settlement.
func CanTransition(from, to SubscriptionStatus) bool {
	for _, a := range ActionsFor(from) {
		if target, ok := a.Target(); ok && target == to {
			return true
		}
	}
	return false
}

// HistoryActor identifies what caused a status change.
type HistoryActor string

const (
	HistoryActorUser    HistoryActor = "user"
	HistoryActorPayment HistoryActor = "payment"
)

// SubscriptionHistory is an audit entry for a status change.
type SubscriptionHistory struct {
	ID             int64
	SubscriptionID int64
	Actor          HistoryActor
	OldStatus      SubscriptionStatus
	NewStatus      SubscriptionStatus
	CreatedAt      time.Time
}

// DashboardStats aggregates the admin dashboard numbers.
type DashboardStats struct {
	NewSubscriptions        int
	MonthlyRecurringRevenue int64
	ActiveSubscriptions     int
	Reactivations           int
}
