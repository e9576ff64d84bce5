package storefront

import (
	"context"
	"strings"
	"sync"

	"github.com/sea-catering/storefront/internal/api/dto"
	"github.com/sea-catering/storefront/internal/domain"
)

// PageSize is the number of testimonials shown per page.
const PageSize = 3

// TestimonialAPI is the part of the API the board calls.
type TestimonialAPI interface {
	ListTestimonials(ctx context.Context) ([]dto.Testimonial, error)
	CreateTestimonial(ctx context.Context, req dto.TestimonialRequest) (dto.Testimonial, error)
}

// Form holds the review being written.
type Form struct {
	Review string
	Rating int
}

// Validate checks the form locally.
func (f Form) Validate() error {
	if strings.TrimSpace(f.Review) == "" {
		return ErrEmptyReview
	}
	if f.Rating < domain.MinRating || f.Rating > domain.MaxRating {
		return ErrRatingOutOfRange
	}
	return nil
}

// Board is the paginated testimonial list with its submission form.
type Board struct {
	api TestimonialAPI

	mu    sync.Mutex
	items []domain.Testimonial
	form  Form
	page  int
}

func NewBoard(api TestimonialAPI) *Board {
	return &Board{api: api, page: 1}
}

// Load fetches the list, newest first, and returns to the first page.
func (b *Board) Load(ctx context.Context) error {
	list, err := b.api.ListTestimonials(ctx)
	if err != nil {
		return err
	}
	items := make([]domain.Testimonial, 0, len(list))
	for _, t := range list {
		items = append(items, t.Domain())
	}
	b.mu.Lock()
	b.items = items
	b.page = 1
	b.mu.Unlock()
	return nil
}

// SetForm replaces the form contents.
func (b *Board) SetForm(f Form) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.form = f
}

func (b *Board) Form() Form {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.form
}

// Submit posts the review. On success the new testimonial is prepended, the
// form is reset and the board returns to page one. On failure nothing changes.
func (b *Board) Submit(ctx context.Context, review string, rating int) (domain.Testimonial, error) {
	form := Form{Review: review, Rating: rating}
	b.SetForm(form)
	if err := form.Validate(); err != nil {
		return domain.Testimonial{}, err
	}

	created, err := b.api.CreateTestimonial(ctx, dto.TestimonialRequest{Review: strings.TrimSpace(review), Rating: rating})
	if err != nil {
		return domain.Testimonial{}, err
	}

	t := created.Domain()
	b.mu.Lock()
	defer b.mu.Unlock()
	items := make([]domain.Testimonial, 0, len(b.items)+1)
	b.items = append(append(items, t), b.items...)
	b.form = Form{}
	b.page = 1
	return t, nil
}

// All returns every loaded testimonial.
func (b *Board) All() []domain.Testimonial {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Testimonial, len(b.items))
	copy(out, b.items)
	return out
}

// Pages is the page count, at least one.
func (b *Board) Pages() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pages()
}

func (b *Board) pages() int {
	n := (len(b.items) + PageSize - 1) / PageSize
	if n == 0 {
		return 1
	}
	return n
}

func (b *Board) CurrentPage() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// GoTo moves to page n, clamped to the valid range.
func (b *Board) GoTo(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.page = min(max(n, 1), b.pages())
}

func (b *Board) Next() { b.GoTo(b.CurrentPage() + 1) }

func (b *Board) Prev() { b.GoTo(b.CurrentPage() - 1) }

// Visible returns the testimonials on the current page.
func (b *Board) Visible() []domain.Testimonial {
	b.mu.Lock()
	defer b.mu.Unlock()
	start := (b.page - 1) * PageSize
	if start >= len(b.items) {
		return nil
	}
	end := min(start+PageSize, len(b.items))
	out := make([]domain.Testimonial, end-start)
	copy(out, b.items[start:end])
	return out
}
