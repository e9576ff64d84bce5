package service

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/sea-catering/storefront/internal/ai"
	"github.com/sea-catering/storefront/internal/domain"
	apperrors "github.com/sea-catering/storefront/pkg/util"
)

// Recommender produces dish suggestions for a plan.
type Recommender interface {
	Recommend(ctx context.Context, planName, allergies string) ([]domain.Recommendation, error)
}

// RecommendationService suggests dishes for a customer's subscription.
type RecommendationService struct {
	subscriptions *SubscriptionService
	recommender   Recommender
	logger        *zap.Logger
}

// NewRecommendationService constructs the service.
func NewRecommendationService(subscriptions *SubscriptionService, recommender Recommender, logger *zap.Logger) *RecommendationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecommendationService{subscriptions: subscriptions, recommender: recommender, logger: logger}
}

// ForSubscription recommends dishes matching the plan and allergies of one of the caller's subscriptions.
func (s *RecommendationService) ForSubscription(ctx context.Context, userID, subscriptionID int64) ([]domain.Recommendation, error) {
	sub, err := s.subscriptions.Get(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	recs, err := s.recommender.Recommend(ctx, sub.PlanName, sub.Allergies)
	if err != nil {
		if errors.Is(err, ai.ErrNotConfigured) {
			return nil, apperrors.NewDomainError("AI_UNAVAILABLE", err.Error(), http.StatusServiceUnavailable, nil)
		}
		s.logger.Error("ai recommendation failed", zap.Int64("subscription_id", subscriptionID), zap.Error(err))
		return nil, apperrors.NewUpstreamError("failed to generate recommendations", err)
	}
	return recs, nil
}
