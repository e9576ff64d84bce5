package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/events"
	"github.com/sea-catering/storefront/internal/gateway"
	"github.com/sea-catering/storefront/internal/repository"
	apperrors "github.com/sea-catering/storefront/pkg/util"
)

// CheckoutGateway is the payment processor.
type CheckoutGateway interface {
	CreateCheckout(c gateway.Checkout) (gateway.Session, error)
	VerifySignature(orderID, statusCode, grossAmount, signature string) bool
}

// Locker takes short-lived exclusive locks.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, func(), error)
}

// Notification is the subset of a Midtrans payment notification the service acts on.
type Notification struct {
	OrderID           string
	StatusCode        string
	GrossAmount       string
	SignatureKey      string
	TransactionStatus string
	TransactionID     string
	FraudStatus       string
}

// PaymentService opens checkouts and reconciles processor notifications.
type PaymentService struct {
	subscriptions repository.SubscriptionRepository
	payments      repository.PaymentRepository
	gateway       CheckoutGateway
	locker        Locker
	lockTTL       time.Duration
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	now           func() time.Time
}

// PaymentDependencies bundles collaborators for the payment service.
type PaymentDependencies struct {
	SubscriptionRepo repository.SubscriptionRepository
	PaymentRepo      repository.PaymentRepository
	Gateway          CheckoutGateway
	Locker           Locker
	LockTTL          time.Duration
	Dispatcher       events.Dispatcher
	Logger           *zap.Logger
}

// NewPaymentService constructs the service.
func NewPaymentService(deps PaymentDependencies) *PaymentService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ttl := deps.LockTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &PaymentService{
		subscriptions: deps.SubscriptionRepo,
		payments:      deps.PaymentRepo,
		gateway:       deps.Gateway,
		locker:        deps.Locker,
		lockTTL:       ttl,
		dispatcher:    deps.Dispatcher,
		logger:        logger,
		now:           time.Now,
	}
}

func paymentLockKey(subscriptionID int64) string {
	return "payment:lock:" + strconv.FormatInt(subscriptionID, 10)
}

// CreatePayment opens a hosted checkout for one of the caller's pending subscriptions.
func (s *PaymentService) CreatePayment(ctx context.Context, user *domain.User, subscriptionID int64) (*domain.Payment, error) {
	sub, err := s.subscriptions.GetForUser(ctx, subscriptionID, user.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("subscription", map[string]any{"id": subscriptionID})
		}
		return nil, err
	}
	if sub.Status != domain.SubscriptionPending {
		return nil, apperrors.NewConflict("only pending subscriptions can be paid", map[string]any{"status": sub.Status})
	}

	if s.locker != nil {
		acquired, release, err := s.locker.TryLock(ctx, paymentLockKey(sub.ID), s.lockTTL)
		if err != nil {
			return nil, fmt.Errorf("payment lock: %w", err)
		}
		if !acquired {
			return nil, apperrors.NewConflict("a payment is already being created for this subscription", nil)
		}
		defer release()
	}

	orderID := domain.NewOrderID(sub.ID, s.now())
	session, err := s.gateway.CreateCheckout(gateway.Checkout{
		OrderID:       orderID,
		GrossAmount:   sub.TotalPrice,
		CustomerName:  user.FullName,
		CustomerEmail: user.Email,
		ItemID:        "SUB-" + strconv.FormatInt(sub.ID, 10),
		ItemName:      "Subscription: " + sub.PlanName,
	})
	if err != nil {
		s.logger.Error("create checkout failed", zap.Int64("subscription_id", sub.ID), zap.Error(err))
		return nil, apperrors.NewUpstreamError("failed to create payment transaction", err)
	}

	payment := &domain.Payment{
		OrderID:        orderID,
		SubscriptionID: sub.ID,
		SnapToken:      session.Token,
		RedirectURL:    session.RedirectURL,
		GrossAmount:    sub.TotalPrice,
		Status:         domain.PaymentCreated,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

// HandleNotification verifies and applies a processor notification. A settled
// payment activates its pending subscription; repeats are no-ops. Once the
// signature checks out the notification is always acknowledged.
func (s *PaymentService) HandleNotification(ctx context.Context, n Notification) error {
	if !s.gateway.VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, n.SignatureKey) {
		return apperrors.NewForbidden("invalid signature")
	}

	subscriptionID, err := domain.SubscriptionIDFromOrder(n.OrderID)
	if err != nil {
		// acknowledged so the processor stops retrying
		s.logger.Warn("notification with unrecognised order id", zap.String("order_id", n.OrderID))
		return nil
	}

	status := domain.PaymentStatus(n.TransactionStatus)
	if err := s.payments.UpdateStatus(ctx, n.OrderID, status, n.TransactionID); err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
		s.logger.Warn("notification for unknown payment", zap.String("order_id", n.OrderID))
	}

	if !settles(status, n.FraudStatus) {
		s.logger.Info("payment notification",
			zap.String("order_id", n.OrderID),
			zap.String("transaction_status", n.TransactionStatus))
		return nil
	}

	activated, err := s.subscriptions.TransitionStatus(ctx, subscriptionID,
		domain.SubscriptionPending, domain.SubscriptionActive, domain.HistoryActorPayment)
	if err != nil {
		return err
	}
	if !activated {
		s.logger.Info("settlement for non-pending subscription ignored", zap.Int64("subscription_id", subscriptionID))
		return nil
	}

	s.logger.Info("subscription activated by payment",
		zap.Int64("subscription_id", subscriptionID),
		zap.String("order_id", n.OrderID))

	amount, _ := strconv.ParseFloat(n.GrossAmount, 64)
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:           events.EventPaymentSettled,
		SubscriptionID: subscriptionID,
		Payload: events.PaymentSettledPayload{
			OrderID:       n.OrderID,
			TransactionID: n.TransactionID,
			GrossAmount:   int64(amount),
		},
	})
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:           events.EventSubscriptionStatusChanged,
		SubscriptionID: subscriptionID,
		Payload: events.SubscriptionStatusChangedPayload{
			OldStatus: domain.SubscriptionPending,
			NewStatus: domain.SubscriptionActive,
			Actor:     domain.HistoryActorPayment,
		},
	})
	return nil
}

// settles reports whether a transaction status means the money arrived. Card
// captures flagged "challenge" wait for manual review.
func settles(status domain.PaymentStatus, fraudStatus string) bool {
	if status == domain.PaymentCapture && fraudStatus == "challenge" {
		return false
	}
	return status.Settled()
}
