package storefront

import (
	"context"
	"sync"
	"time"

	"github.com/sea-catering/storefront/internal/api/dto"
)

type fakeAPI struct {
	mu sync.Mutex

	subscribeCalls int
	paymentCalls   int
	statusCalls    int
	createCalls    int
	meCalls        int

	subscribeDelay time.Duration
	subscribeResp  dto.SubscribeResponse
	subscribeErr   error
	paymentResp    dto.PaymentResponse
	paymentErr     error
	statusErr      error
	subscriptions  []dto.Subscription
	testimonials   []dto.Testimonial
	createErr      error
	me             dto.UserProfile
	meErr          error
}

func (f *fakeAPI) Subscribe(_ context.Context, _ dto.SubscribeRequest) (dto.SubscribeResponse, error) {
	if f.subscribeDelay > 0 {
		time.Sleep(f.subscribeDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subscribeCalls++
	return f.subscribeResp, f.subscribeErr
}

func (f *fakeAPI) CreatePayment(_ context.Context, _ int64) (dto.PaymentResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paymentCalls++
	return f.paymentResp, f.paymentErr
}

func (f *fakeAPI) ListSubscriptions(context.Context) ([]dto.Subscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dto.Subscription(nil), f.subscriptions...), nil
}

func (f *fakeAPI) UpdateStatus(_ context.Context, _ int64, status string) (dto.StatusUpdateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return dto.StatusUpdateResponse{}, f.statusErr
	}
	return dto.StatusUpdateResponse{Message: "updated", Status: status}, nil
}

func (f *fakeAPI) ListTestimonials(context.Context) ([]dto.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]dto.Testimonial(nil), f.testimonials...), nil
}

func (f *fakeAPI) CreateTestimonial(_ context.Context, req dto.TestimonialRequest) (dto.Testimonial, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return dto.Testimonial{}, f.createErr
	}
	return dto.Testimonial{ID: int64(100 + f.createCalls), Name: "Rina", Review: req.Review, Rating: req.Rating}, nil
}

func (f *fakeAPI) Me(context.Context) (dto.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.meCalls++
	return f.me, f.meErr
}

func (f *fakeAPI) calls() (subscribe, payment int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subscribeCalls, f.paymentCalls
}

// widget records the tokens it was opened with and keeps the callbacks so a
// test can fire them later, as the hosted checkout would.
type widget struct {
	mu     sync.Mutex
	tokens []string
	cbs    []Callbacks
}

func (w *widget) Pay(token string, cb Callbacks) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.tokens = append(w.tokens, token)
	w.cbs = append(w.cbs, cb)
}

func (w *widget) last() Callbacks {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cbs[len(w.cbs)-1]
}

func (w *widget) opened() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.tokens)
}
