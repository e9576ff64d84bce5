package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/events"
	"github.com/sea-catering/storefront/internal/gateway"
	"github.com/sea-catering/storefront/internal/repository"
)

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[int64]*domain.User
	next  int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.next++
	u.ID = f.next
	u.CreatedAt = time.Now()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeSubscriptionRepo struct {
	mu      sync.Mutex
	subs    map[int64]*domain.Subscription
	history []domain.SubscriptionHistory
	next    int64
	stats   domain.DashboardStats
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{subs: map[int64]*domain.Subscription{}}
}

func (f *fakeSubscriptionRepo) put(sub domain.Subscription) *domain.Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	if sub.ID == 0 {
		f.next++
		sub.ID = f.next
	}
	f.subs[sub.ID] = &sub
	return &sub
}

func (f *fakeSubscriptionRepo) Create(_ context.Context, sub *domain.Subscription) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.next++
	sub.ID = f.next
	sub.CreatedAt = time.Now()
	cp := *sub
	f.subs[sub.ID] = &cp
	return nil
}

func (f *fakeSubscriptionRepo) GetByID(_ context.Context, id int64) (*domain.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.subs[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeSubscriptionRepo) GetForUser(ctx context.Context, id, userID int64) (*domain.Subscription, error) {
	s, err := f.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	return s, nil
}

func (f *fakeSubscriptionRepo) ListByUser(_ context.Context, userID int64) ([]domain.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Subscription{}
	for _, s := range f.subs {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeSubscriptionRepo) TransitionStatus(_ context.Context, id int64, from, to domain.SubscriptionStatus, actor domain.HistoryActor) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.subs[id]
	if !ok || s.Status != from {
		return false, nil
	}
	s.Status = to
	f.history = append(f.history, domain.SubscriptionHistory{SubscriptionID: id, Actor: actor, OldStatus: from, NewStatus: to})
	return true, nil
}

func (f *fakeSubscriptionRepo) Stats(context.Context, repository.StatsRange) (domain.DashboardStats, error) {
	return f.stats, nil
}

func (f *fakeSubscriptionRepo) status(id int64) domain.SubscriptionStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subs[id].Status
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	payments map[string]*domain.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*domain.Payment{}}
}

func (f *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = int64(len(f.payments) + 1)
	cp := *p
	f.payments[p.OrderID] = &cp
	return nil
}

func (f *fakePaymentRepo) GetByOrderID(_ context.Context, orderID string) (*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.payments[orderID]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePaymentRepo) UpdateStatus(_ context.Context, orderID string, status domain.PaymentStatus, txID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.payments[orderID]
	if !ok {
		return pgx.ErrNoRows
	}
	p.Status = status
	if txID != "" {
		p.TransactionID = txID
	}
	return nil
}

type fakeTestimonialRepo struct {
	mu    sync.Mutex
	items []domain.Testimonial
	lists int
}

func (f *fakeTestimonialRepo) Create(_ context.Context, t *domain.Testimonial) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t.ID = int64(len(f.items) + 1)
	f.items = append([]domain.Testimonial{*t}, f.items...)
	return nil
}

func (f *fakeTestimonialRepo) List(context.Context, int) ([]domain.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	return append([]domain.Testimonial{}, f.items...), nil
}

type fakeGateway struct {
	mu       sync.Mutex
	calls    []gateway.Checkout
	err      error
	validSig string
}

func (g *fakeGateway) CreateCheckout(c gateway.Checkout) (gateway.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, c)
	if g.err != nil {
		return gateway.Session{}, g.err
	}
	return gateway.Session{Token: "snap-" + c.OrderID, RedirectURL: "https://app.sandbox.midtrans.com/snap/v4/" + c.OrderID}, nil
}

func (g *fakeGateway) VerifySignature(_, _, _, signature string) bool {
	return signature == g.validSig
}

type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	released int
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}}
}

func (l *fakeLocker) TryLock(_ context.Context, key string, _ time.Duration) (bool, func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return false, func() {}, nil
	}
	l.held[key] = true
	return true, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
		l.released++
	}, nil
}

var errCacheMiss = errors.New("miss")

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]domain.Testimonial
}

func (c *fakeCache) GetJSON(_ context.Context, key string, dst any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return errCacheMiss
	}
	*(dst.(*[]domain.Testimonial)) = append([]domain.Testimonial{}, v...)
	return nil
}

func (c *fakeCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = map[string][]domain.Testimonial{}
	}
	c.entries[key] = append([]domain.Testimonial{}, value.([]domain.Testimonial)...)
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

type sentMail struct {
	To, Subject, Body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

type recordingDispatcher struct {
	events.Dispatcher
	mu        sync.Mutex
	published []events.Event
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{Dispatcher: events.NewInMemoryDispatcher(nil)}
}

func (d *recordingDispatcher) Publish(ctx context.Context, e events.Event) error {
	d.mu.Lock()
	d.published = append(d.published, e)
	d.mu.Unlock()
	return d.Dispatcher.Publish(ctx, e)
}

func (d *recordingDispatcher) types() []events.EventType {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		out = append(out, e.Type)
	}
	return out
}
