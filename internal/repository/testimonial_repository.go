package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sea-catering/storefront/internal/domain"
)

// TestimonialRepository stores customer reviews.
type TestimonialRepository interface {
	Create(ctx context.Context, t *domain.Testimonial) error
	List(ctx context.Context, limit int) ([]domain.Testimonial, error)
}

type testimonialRepository struct {
	pool *pgxpool.Pool
}

// NewTestimonialRepository instantiates repository.
func NewTestimonialRepository(pool *pgxpool.Pool) TestimonialRepository {
	return &testimonialRepository{pool: pool}
}

func (r *testimonialRepository) Create(ctx context.Context, t *domain.Testimonial) error {
	const query = `
        INSERT INTO testimonials (user_id, name, review, rating, avatar)
        VALUES (NULLIF($1, 0), $2, $3, $4, $5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query, t.UserID, t.Name, t.Review, t.Rating, t.Avatar).
		Scan(&t.ID, &t.CreatedAt)
}

// List returns the newest testimonials first. A non-positive limit returns all.
func (r *testimonialRepository) List(ctx context.Context, limit int) ([]domain.Testimonial, error) {
	query := `
        SELECT id, COALESCE(user_id, 0), name, review, rating, avatar, created_at
        FROM testimonials ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Testimonial{}
	for rows.Next() {
		var t domain.Testimonial
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Review, &t.Rating, &t.Avatar, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
