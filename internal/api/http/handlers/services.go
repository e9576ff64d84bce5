package handlers

import (
	"context"

	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/repository"
	"github.com/sea-catering/storefront/internal/service"
)

// AuthService is what the auth handlers need from the service layer.
type AuthService interface {
	Register(ctx context.Context, fullName, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, domain.AccessToken, error)
}

// SubscriptionService is what the subscription handlers need.
type SubscriptionService interface {
	Create(ctx context.Context, userID int64, input service.SubscribeInput) (*domain.Subscription, error)
	List(ctx context.Context, userID int64) ([]domain.Subscription, error)
	UpdateStatus(ctx context.Context, userID, id int64, target domain.SubscriptionStatus) (*domain.Subscription, error)
}

// PaymentService is what the payment handlers need.
type PaymentService interface {
	CreatePayment(ctx context.Context, user *domain.User, subscriptionID int64) (*domain.Payment, error)
	HandleNotification(ctx context.Context, n service.Notification) error
}

// RecommendationService is what the recommendation handler needs.
type RecommendationService interface {
	ForSubscription(ctx context.Context, userID, subscriptionID int64) ([]domain.Recommendation, error)
}

// TestimonialService is what the testimonial handlers need.
type TestimonialService interface {
	List(ctx context.Context) ([]domain.Testimonial, error)
	Create(ctx context.Context, user *domain.User, review string, rating int) (*domain.Testimonial, error)
}

// AdminService is what the admin handlers need.
type AdminService interface {
	DashboardStats(ctx context.Context, rng repository.StatsRange) (domain.DashboardStats, error)
}
