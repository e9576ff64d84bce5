// Package storefront implements the customer-facing flows of the storefront
// client: profile resolution, the subscription draft, the payment handshake,
// the dashboard, the testimonial board and the route table.
package storefront

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every local validation failure. These never reach the network.
var ErrValidation = errors.New("validation failed")

var (
	ErrUnknownPlan      = fmt.Errorf("%w: choose a meal plan", ErrValidation)
	ErrMissingName      = fmt.Errorf("%w: enter your name", ErrValidation)
	ErrMissingPhone     = fmt.Errorf("%w: enter an active phone number", ErrValidation)
	ErrNoMealTypes      = fmt.Errorf("%w: select at least one meal type", ErrValidation)
	ErrNoDeliveryDays   = fmt.Errorf("%w: select at least one delivery day", ErrValidation)
	ErrEmptyReview      = fmt.Errorf("%w: write a review", ErrValidation)
	ErrRatingOutOfRange = fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	ErrActionNotOffered = fmt.Errorf("%w: action not available for this subscription", ErrValidation)
)

var (
	// ErrInFlight rejects a second checkout for a subscription that already has one open.
	ErrInFlight = errors.New("a checkout is already in progress for this subscription")
	// ErrNotConfirmed is returned when the user declines a status change.
	ErrNotConfirmed = errors.New("status change not confirmed")
	// ErrUnknownSubscription is returned for ids missing from the cached list.
	ErrUnknownSubscription = errors.New("subscription not found")
)
