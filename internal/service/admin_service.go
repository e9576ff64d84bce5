package service

import (
	"context"

	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/repository"
	apperrors "github.com/sea-catering/storefront/pkg/util"
)

// AdminService serves the admin dashboard.
type AdminService struct {
	subscriptions repository.SubscriptionRepository
}

// NewAdminService constructs the service.
func NewAdminService(subscriptions repository.SubscriptionRepository) *AdminService {
	return &AdminService{subscriptions: subscriptions}
}

// DashboardStats aggregates subscription metrics. New subscriptions and
// reactivations honour the range; revenue and active count are current.
func (s *AdminService) DashboardStats(ctx context.Context, rng repository.StatsRange) (domain.DashboardStats, error) {
	if rng.From != nil && rng.To != nil && rng.To.Before(*rng.From) {
		return domain.DashboardStats{}, apperrors.NewValidationError("end date is before start date", nil)
	}
	return s.subscriptions.Stats(ctx, rng)
}
