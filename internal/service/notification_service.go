package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/events"
	"github.com/sea-catering/storefront/internal/mailer"
	"github.com/sea-catering/storefront/internal/repository"
)

// NotificationService e-mails customers about payment and status events.
type NotificationService struct {
	dispatcher    events.Dispatcher
	mailer        mailer.Mailer
	users         repository.UserRepository
	subscriptions repository.SubscriptionRepository
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, m mailer.Mailer, users repository.UserRepository, subscriptions repository.SubscriptionRepository, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher:    dispatcher,
		mailer:        m,
		users:         users,
		subscriptions: subscriptions,
		logger:        logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventSubscriptionCreated, n.handleSubscriptionCreated)
	n.dispatcher.Subscribe(events.EventPaymentSettled, n.handlePaymentSettled)
	n.dispatcher.Subscribe(events.EventSubscriptionStatusChanged, n.handleStatusChanged)
	n.dispatcher.Subscribe(events.EventTestimonialCreated, n.handleTestimonialCreated)
}

func (n *NotificationService) handleSubscriptionCreated(_ context.Context, event events.Event) error {
	n.logger.Info("SubscriptionCreated", zap.Int64("subscription_id", event.SubscriptionID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleTestimonialCreated(_ context.Context, event events.Event) error {
	n.logger.Info("TestimonialCreated", zap.Int64("user_id", event.UserID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handlePaymentSettled(ctx context.Context, event events.Event) error {
	n.logger.Info("PaymentSettled", zap.Int64("subscription_id", event.SubscriptionID), zap.Any("payload", event.Payload))
	payload, _ := event.Payload.(events.PaymentSettledPayload)

	sub, user, err := n.recipient(ctx, event.SubscriptionID)
	if err != nil {
		return err
	}
	subject := "SEA Catering: payment received"
	body := fmt.Sprintf("Hi %s,\n\nWe received your payment of Rp %d for the %s (order %s). Your subscription is now active.\n",
		user.FullName, payload.GrossAmount, sub.PlanName, payload.OrderID)
	return n.mailer.Send(ctx, user.Email, subject, body)
}

func (n *NotificationService) handleStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("SubscriptionStatusChanged", zap.Int64("subscription_id", event.SubscriptionID), zap.Any("payload", event.Payload))
	payload, ok := event.Payload.(events.SubscriptionStatusChangedPayload)
	if !ok || payload.Actor == domain.HistoryActorPayment {
		// the settlement mail already covers activation by payment
		return nil
	}

	sub, user, err := n.recipient(ctx, event.SubscriptionID)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("SEA Catering: subscription %s", payload.NewStatus)
	body := fmt.Sprintf("Hi %s,\n\nYour %s subscription is now %s.\n", user.FullName, sub.PlanName, payload.NewStatus)
	return n.mailer.Send(ctx, user.Email, subject, body)
}

func (n *NotificationService) recipient(ctx context.Context, subscriptionID int64) (*domain.Subscription, *domain.User, error) {
	sub, err := n.subscriptions.GetByID(ctx, subscriptionID)
	if err != nil {
		return nil, nil, fmt.Errorf("load subscription %d: %w", subscriptionID, err)
	}
	user, err := n.users.GetByID(ctx, sub.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("load user %d: %w", sub.UserID, err)
	}
	return sub, user, nil
}
