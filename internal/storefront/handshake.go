package storefront

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/sea-catering/storefront/internal/api/dto"
	"github.com/sea-catering/storefront/internal/client"
	"github.com/sea-catering/storefront/internal/domain"
)

// State is a step of the subscription-to-payment handshake.
type State string

const (
	StateIdle                    State = "idle"
	StateCreatingSubscription    State = "creating_subscription"
	StateCreatingPaymentIntent   State = "creating_payment_intent"
	StateAwaitingCheckoutOutcome State = "awaiting_checkout_outcome"
	StateSettled                 State = "settled"
	StateAbandoned               State = "abandoned"
)

// Outcome qualifies StateSettled.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomePending Outcome = "pending"
	OutcomeError   Outcome = "error"
)

const (
	msgSubscribeFailed = "Failed to create subscription. Please try again."
	msgNoSubscription  = "The server did not return a subscription id."
	msgPaymentFailed   = "Failed to start the payment. Please try again."
	msgNoToken         = "The server did not return a payment token."
	msgPaid            = "Payment successful! Your subscription will be activated shortly."
	msgPaymentPending  = "Your payment is pending. We will update the status upon confirmation."
	msgCheckoutFailed  = "Payment failed. Please try again."
	msgCheckoutClosed  = "Checkout closed before the payment completed."
	msgPaymentInFlight = "A payment for this subscription is already in progress."
)

var (
	errMissingSubscriptionID = errors.New("missing subscription id")
	errMissingToken          = errors.New("missing payment token")
	errCheckoutFailed        = errors.New("checkout failed")
)

// CheckoutResult is what the hosted checkout reports to a callback.
type CheckoutResult struct {
	OrderID           string
	TransactionID     string
	TransactionStatus string
	StatusMessage     string
}

// Callbacks receive the hosted checkout outcome. Only the first call counts.
type Callbacks struct {
	OnSuccess func(CheckoutResult)
	OnPending func(CheckoutResult)
	OnError   func(CheckoutResult)
	OnClose   func()
}

// Widget opens the hosted checkout for a payment token.
type Widget interface {
	Pay(token string, cb Callbacks)
}

// HandshakeAPI is the part of the API the handshake calls.
type HandshakeAPI interface {
	Subscribe(ctx context.Context, req dto.SubscribeRequest) (dto.SubscribeResponse, error)
	CreatePayment(ctx context.Context, id int64) (dto.PaymentResponse, error)
}

// Result is the terminal state of an attempt.
type Result struct {
	State          State
	Outcome        Outcome
	SubscriptionID int64
	TransactionID  string
	Message        string
	Err            error
}

// Attempt is one run of the handshake. It settles exactly once.
type Attempt struct {
	mu             sync.Mutex
	state          State
	subscriptionID int64
	result         Result

	draft *Draft
	once  sync.Once
	done  chan struct{}
}

func newAttempt() *Attempt {
	return &Attempt{state: StateIdle, done: make(chan struct{})}
}

// State is the step the attempt is currently in.
func (a *Attempt) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// SubscriptionID is zero until the subscription exists.
func (a *Attempt) SubscriptionID() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.subscriptionID
}

// Done is closed when the attempt settles or is abandoned.
func (a *Attempt) Done() <-chan struct{} {
	return a.done
}

// Result returns the outcome without blocking; ok is false while in flight.
func (a *Attempt) Result() (Result, bool) {
	select {
	case <-a.done:
	default:
		return Result{}, false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result, true
}

// Wait blocks until the attempt finishes or ctx is done. The checkout itself
// has no timeout, so the caller bounds the wait.
func (a *Attempt) Wait(ctx context.Context) (Result, error) {
	select {
	case <-a.done:
		res, _ := a.Result()
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Handshake drives create-subscription, create-payment-intent and the hosted
// checkout, with at most one attempt in flight per subscription.
type Handshake struct {
	api    HandshakeAPI
	widget Widget
	cache  *Cache
	logger *zap.Logger

	mu      sync.Mutex
	byID    map[int64]*Attempt
	byDraft map[*Draft]*Attempt
}

func NewHandshake(api HandshakeAPI, widget Widget, cache *Cache, logger *zap.Logger) *Handshake {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cache == nil {
		cache = NewCache()
	}
	return &Handshake{
		api:     api,
		widget:  widget,
		cache:   cache,
		logger:  logger,
		byID:    make(map[int64]*Attempt),
		byDraft: make(map[*Draft]*Attempt),
	}
}

// Submitting reports whether any attempt is in flight.
func (h *Handshake) Submitting() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.byID) > 0 || len(h.byDraft) > 0
}

// InFlight reports whether the subscription has an open attempt.
func (h *Handshake) InFlight(id int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.byID[id]
	return ok
}

// Submit runs the full handshake for a draft. A draft whose subscription was
// already created resumes at the payment step. Validation failures and
// ErrInFlight are returned directly without any request; every later failure
// settles the returned attempt.
func (h *Handshake) Submit(ctx context.Context, d *Draft) (*Attempt, error) {
	req, err := d.Request()
	if err != nil {
		return nil, err
	}
	if id, ok := d.SubscriptionID(); ok {
		a, err := h.begin(id, d)
		if err != nil {
			return nil, err
		}
		h.pay(ctx, a, h.seedFor(id, d.seed(id, 0)))
		return a, nil
	}

	a := newAttempt()
	a.draft = d
	h.mu.Lock()
	if _, busy := h.byDraft[d]; busy {
		h.mu.Unlock()
		return nil, ErrInFlight
	}
	h.byDraft[d] = a
	h.mu.Unlock()

	h.transition(a, StateCreatingSubscription)
	resp, err := h.api.Subscribe(ctx, req)
	if err != nil {
		h.fail(a, client.MessageOf(err, msgSubscribeFailed), err)
		return a, nil
	}
	if resp.SubscriptionID == 0 {
		h.fail(a, msgNoSubscription, errMissingSubscriptionID)
		return a, nil
	}

	id := resp.SubscriptionID
	a.mu.Lock()
	a.subscriptionID = id
	a.mu.Unlock()
	if err := h.claim(a, id, d); err != nil {
		h.fail(a, msgPaymentInFlight, err)
		return a, nil
	}

	h.pay(ctx, a, d.seed(id, resp.TotalPrice))
	return a, nil
}

// PayNow runs steps two and three for an existing pending subscription.
func (h *Handshake) PayNow(ctx context.Context, id int64) (*Attempt, error) {
	a, err := h.begin(id, nil)
	if err != nil {
		return nil, err
	}
	h.pay(ctx, a, h.seedFor(id, domain.Subscription{ID: id, Status: domain.SubscriptionPending}))
	return a, nil
}

func (h *Handshake) begin(id int64, d *Draft) (*Attempt, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, busy := h.byID[id]; busy {
		return nil, ErrInFlight
	}
	if d != nil {
		if _, busy := h.byDraft[d]; busy {
			return nil, ErrInFlight
		}
	}
	a := newAttempt()
	a.subscriptionID = id
	a.draft = d
	h.byID[id] = a
	if d != nil {
		h.byDraft[d] = a
	}
	return a, nil
}

// claim registers the attempt under its new subscription id and only then
// lets the draft remember the id, so a concurrent Submit of the same draft
// either sees the draft busy or the id busy.
func (h *Handshake) claim(a *Attempt, id int64, d *Draft) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	d.remember(id)
	if other, busy := h.byID[id]; busy && other != a {
		return ErrInFlight
	}
	h.byID[id] = a
	return nil
}

func (h *Handshake) seedFor(id int64, fallback domain.Subscription) domain.Subscription {
	if cached, ok := h.cache.Get(id); ok {
		return cached.Subscription
	}
	return fallback
}

func (h *Handshake) pay(ctx context.Context, a *Attempt, seed domain.Subscription) {
	h.transition(a, StateCreatingPaymentIntent)
	resp, err := h.api.CreatePayment(ctx, seed.ID)
	if err != nil {
		h.fail(a, client.MessageOf(err, msgPaymentFailed), err)
		return
	}
	if resp.SnapToken == "" {
		h.fail(a, msgNoToken, errMissingToken)
		return
	}

	h.transition(a, StateAwaitingCheckoutOutcome)
	h.widget.Pay(resp.SnapToken, Callbacks{
		OnSuccess: func(r CheckoutResult) {
			h.settle(a, Result{State: StateSettled, Outcome: OutcomeSuccess, TransactionID: r.TransactionID, Message: msgPaid}, func() {
				h.cache.MarkPaid(seed, r.TransactionID)
			})
		},
		OnPending: func(r CheckoutResult) {
			h.settle(a, Result{State: StateSettled, Outcome: OutcomePending, TransactionID: r.TransactionID, Message: msgPaymentPending}, nil)
		},
		OnError: func(r CheckoutResult) {
			msg := msgCheckoutFailed
			if r.StatusMessage != "" {
				msg += " Reason: " + r.StatusMessage
			}
			h.settle(a, Result{State: StateSettled, Outcome: OutcomeError, TransactionID: r.TransactionID, Message: msg, Err: errCheckoutFailed}, nil)
		},
		OnClose: func() {
			h.settle(a, Result{State: StateAbandoned, Message: msgCheckoutClosed}, nil)
		},
	})
}

func (h *Handshake) fail(a *Attempt, message string, err error) {
	h.settle(a, Result{State: StateSettled, Outcome: OutcomeError, Message: message, Err: err}, nil)
}

func (h *Handshake) settle(a *Attempt, res Result, effect func()) {
	a.once.Do(func() {
		if effect != nil {
			effect()
		}
		a.mu.Lock()
		from := a.state
		res.SubscriptionID = a.subscriptionID
		a.state = res.State
		a.result = res
		a.mu.Unlock()

		h.release(a, res.SubscriptionID)
		h.logger.Debug("handshake settled",
			zap.Int64("subscription_id", res.SubscriptionID),
			zap.String("from", string(from)),
			zap.String("to", string(res.State)),
			zap.String("outcome", string(res.Outcome)),
			zap.Error(res.Err),
		)
		close(a.done)
	})
}

func (h *Handshake) transition(a *Attempt, to State) {
	a.mu.Lock()
	from := a.state
	a.state = to
	id := a.subscriptionID
	a.mu.Unlock()
	h.logger.Debug("handshake transition",
		zap.Int64("subscription_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
}

func (h *Handshake) release(a *Attempt, id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if id != 0 && h.byID[id] == a {
		delete(h.byID, id)
	}
	if a.draft != nil && h.byDraft[a.draft] == a {
		delete(h.byDraft, a.draft)
	}
}
