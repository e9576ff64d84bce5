package dto

import (
	"time"

	"github.com/sea-catering/storefront/internal/domain"
)

// TestimonialRequest submits a review.
type TestimonialRequest struct {
	Review string `json:"review" validate:"required,max=1000"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
}

// Testimonial is the wire form of a review.
type Testimonial struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Review    string    `json:"review"`
	Rating    int       `json:"rating"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// FromTestimonial converts a domain testimonial.
func FromTestimonial(t domain.Testimonial) Testimonial {
	avatar := t.Avatar
	if avatar == "" {
		avatar = domain.AvatarFor(t.Name)
	}
	return Testimonial{ID: t.ID, Name: t.Name, Review: t.Review, Rating: t.Rating, Avatar: avatar, CreatedAt: t.CreatedAt}
}

// FromTestimonials converts a list, never returning nil.
func FromTestimonials(list []domain.Testimonial) []Testimonial {
	out := make([]Testimonial, 0, len(list))
	for _, t := range list {
		out = append(out, FromTestimonial(t))
	}
	return out
}

// Domain converts back to the domain testimonial.
func (t Testimonial) Domain() domain.Testimonial {
	return domain.Testimonial{ID: t.ID, Name: t.Name, Review: t.Review, Rating: t.Rating, Avatar: t.Avatar, CreatedAt: t.CreatedAt}
}

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	NewSubscriptions        int   `json:"newSubscriptions"`
	MonthlyRecurringRevenue int64 `json:"monthlyRecurringRevenue"`
	ActiveSubscriptions     int   `json:"activeSubscriptions"`
	Reactivations           int   `json:"reactivations"`
}

// FromStats converts domain stats.
func FromStats(s domain.DashboardStats) DashboardStats {
	return DashboardStats{
		NewSubscriptions:        s.NewSubscriptions,
		MonthlyRecurringRevenue: s.MonthlyRecurringRevenue,
		ActiveSubscriptions:     s.ActiveSubscriptions,
		Reactivations:           s.Reactivations,
	}
}

// ErrorBody is the error envelope every failing endpoint returns.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one failure.
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
