package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sea-catering/storefront/internal/domain"
	"github.com/sea-catering/storefront/internal/events"
	"github.com/sea-catering/storefront/internal/repository"
	apperrors "github.com/sea-catering/storefront/pkg/util"
)

const testimonialsCacheKey = "testimonials:all"

// JSONCache is a key/value cache for JSON-encodable values.
type JSONCache interface {
	GetJSON(ctx context.Context, key string, dst any) error
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// TestimonialService lists and stores customer reviews.
type TestimonialService struct {
	testimonials repository.TestimonialRepository
	cache        JSONCache
	cacheTTL     time.Duration
	dispatcher   events.Dispatcher
	logger       *zap.Logger
}

// NewTestimonialService constructs the service. A nil cache or zero TTL disables caching.
func NewTestimonialService(repo repository.TestimonialRepository, cache JSONCache, cacheTTL time.Duration, dispatcher events.Dispatcher, logger *zap.Logger) *TestimonialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TestimonialService{testimonials: repo, cache: cache, cacheTTL: cacheTTL, dispatcher: dispatcher, logger: logger}
}

func (s *TestimonialService) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

// List returns every testimonial, newest first.
func (s *TestimonialService) List(ctx context.Context) ([]domain.Testimonial, error) {
	if s.cacheEnabled() {
		var cached []domain.Testimonial
		if err := s.cache.GetJSON(ctx, testimonialsCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	list, err := s.testimonials.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	if s.cacheEnabled() {
		if err := s.cache.SetJSON(ctx, testimonialsCacheKey, list, s.cacheTTL); err != nil {
			s.logger.Warn("cache testimonials", zap.Error(err))
		}
	}
	return list, nil
}

// Create stores a review written by user.
func (s *TestimonialService) Create(ctx context.Context, user *domain.User, review string, rating int) (*domain.Testimonial, error) {
	review = strings.TrimSpace(review)
	if review == "" {
		return nil, apperrors.NewValidationError("review is required", map[string]any{"field": "review"})
	}
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5", map[string]any{"field": "rating"})
	}

	t := &domain.Testimonial{
		UserID: user.ID,
		Name:   user.FullName,
		Review: review,
		Rating: rating,
		Avatar: domain.AvatarFor(user.FullName),
	}
	if err := s.testimonials.Create(ctx, t); err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Delete(ctx, testimonialsCacheKey); err != nil {
			s.logger.Warn("invalidate testimonials cache", zap.Error(err))
		}
	}

	publishEvent(ctx, s.dispatcher, events.Event{
		Type:    events.EventTestimonialCreated,
		UserID:  user.ID,
		Payload: events.TestimonialCreatedPayload{TestimonialID: t.ID, Rating: t.Rating},
	})
	return t, nil
}
