package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/events"
	"github.com/sea-catering/storefront/internal/pricing"
	"github.com/sea-catering/storefront/internal/repository"
	apperrors "github.com/sea-catering/storefront/pkg/util"
)

// SubscriptionService coordinates subscription workflows.
type SubscriptionService struct {
	subscriptions repository.SubscriptionRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// SubscribeInput describes subscription creation payload.
type SubscribeInput struct {
	Name      string
	Phone     string
	Plan      string
	Meals     []string
	Days      []string
	Allergies string
}

// NewSubscriptionService constructs the service.
func NewSubscriptionService(subscriptions repository.SubscriptionRepository, dispatcher events.Dispatcher, logger *zap.Logger) *SubscriptionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubscriptionService{subscriptions: subscriptions, dispatcher: dispatcher, logger: logger}
}

// Create stores a pending subscription. The price is computed here from the
// catalog; whatever the client estimated is ignored.
func (s *SubscriptionService) Create(ctx context.Context, userID int64, input SubscribeInput) (*domain.Subscription, error) {
	plan, ok := domain.LookupPlan(input.Plan)
	if !ok {
		return nil, apperrors.NewValidationError("unknown plan", map[string]any{"selectedPlan": input.Plan})
	}

	meals := make([]domain.MealType, 0, len(input.Meals))
	for _, raw := range input.Meals {
		m, ok := domain.ParseMealType(raw)
		if !ok {
			return nil, apperrors.NewValidationError("unknown meal type", map[string]any{"selectedMeals": raw})
		}
		meals = append(meals, m)
	}
	days := make([]domain.DeliveryDay, 0, len(input.Days))
	for _, raw := range input.Days {
		d, ok := domain.ParseDeliveryDay(raw)
		if !ok {
			return nil, apperrors.NewValidationError("unknown delivery day", map[string]any{"selectedDays": raw})
		}
		days = append(days, d)
	}
	if len(meals) == 0 || len(days) == 0 {
		return nil, apperrors.NewValidationError("select at least one meal type and one delivery day", nil)
	}

	sub := &domain.Subscription{
		UserID:       userID,
		Name:         strings.TrimSpace(input.Name),
		Phone:        strings.TrimSpace(input.Phone),
		PlanName:     plan.Name,
		MealTypes:    dedupe(meals),
		DeliveryDays: dedupe(days),
		Allergies:    strings.TrimSpace(input.Allergies),
		TotalPrice:   pricing.Estimate(plan.Name, meals, days),
		Status:       domain.SubscriptionPending,
	}
	if err := s.subscriptions.Create(ctx, sub); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:           events.EventSubscriptionCreated,
		SubscriptionID: sub.ID,
		UserID:         userID,
		Payload:        events.SubscriptionCreatedPayload{PlanName: sub.PlanName, TotalPrice: sub.TotalPrice},
	})
	return sub, nil
}

// List returns the caller's subscriptions, newest first.
func (s *SubscriptionService) List(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	return s.subscriptions.ListByUser(ctx, userID)
}

// Get loads a subscription owned by the caller.
func (s *SubscriptionService) Get(ctx context.Context, userID, id int64) (*domain.Subscription, error) {
	sub, err := s.subscriptions.GetForUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("subscription", map[string]any{"id": id})
		}
		return nil, err
	}
	return sub, nil
}

// UpdateStatus applies a customer-initiated status change.
func (s *SubscriptionService) UpdateStatus(ctx context.Context, userID, id int64, target domain.SubscriptionStatus) (*domain.Subscription, error) {
	if !target.Valid() || target == domain.SubscriptionPending {
		return nil, apperrors.NewValidationError("invalid status", map[string]any{"status": target})
	}

	sub, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanTransition(sub.Status, target) {
		return nil, apperrors.NewConflict(
			fmt.Sprintf("cannot change a %s subscription to %s", sub.Status, target),
			map[string]any{"status": sub.Status})
	}

	moved, err := s.subscriptions.TransitionStatus(ctx, id, sub.Status, target, domain.HistoryActorUser)
	if err != nil {
		return nil, err
	}
	if !moved {
		return nil, apperrors.NewConflict("subscription status changed concurrently", nil)
	}

	old := sub.Status
	sub.Status = target
	s.logger.Info("subscription status changed",
		zap.Int64("subscription_id", id),
		zap.String("from", string(old)),
		zap.String("to", string(target)))

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:           events.EventSubscriptionStatusChanged,
		SubscriptionID: id,
		UserID:         userID,
		Payload: events.SubscriptionStatusChangedPayload{
			OldStatus: old,
			NewStatus: target,
			Actor:     domain.HistoryActorUser,
		},
	})
	return sub, nil
}

func dedupe[T ~string](in []T) []string {
	seen := make(map[T]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, string(v))
	}
	return out
}
