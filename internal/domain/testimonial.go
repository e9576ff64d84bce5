package domain

import (
	"net/url"
	"time"
)

// Rating bounds for testimonials.
const (
	MinRating = 1
	MaxRating = 5
)

// Testimonial is a customer review shown on the home page.
type Testimonial struct {
	ID        int64
	UserID    int64
	Name      string
	Review    string
	Rating    int
	Avatar    string
	CreatedAt time.Time
}

// AvatarFor derives the display avatar reference for an author name.
func AvatarFor(name string) string {
	return "https://ui-avatars.com/api/?background=random&name=" + url.QueryEscape(name)
}

// Recommendation is an AI-suggested dish for a subscription.
type Recommendation struct {
	Name        string
	Description string
}
