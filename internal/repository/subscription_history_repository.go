package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sea-catering/storefront/internal/domain"
)

// SubscriptionHistoryRepository stores status audit entries.
type SubscriptionHistoryRepository interface {
	ListBySubscription(ctx context.Context, subscriptionID int64) ([]domain.SubscriptionHistory, error)
}

type subscriptionHistoryRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionHistoryRepository builds repository.
func NewSubscriptionHistoryRepository(pool *pgxpool.Pool) SubscriptionHistoryRepository {
	return &subscriptionHistoryRepository{pool: pool}
}

func insertHistory(ctx context.Context, tx pgx.Tx, history *domain.SubscriptionHistory) error {
	const query = `
        INSERT INTO subscription_history (subscription_id, actor, old_status, new_status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return tx.QueryRow(ctx, query,
		history.SubscriptionID,
		history.Actor,
		history.OldStatus,
		history.NewStatus,
	).Scan(&history.ID, &history.CreatedAt)
}

func (r *subscriptionHistoryRepository) ListBySubscription(ctx context.Context, subscriptionID int64) ([]domain.SubscriptionHistory, error) {
	const query = `
        SELECT id, subscription_id, actor, old_status, new_status, created_at
        FROM subscription_history WHERE subscription_id=$1 ORDER BY created_at ASC, id ASC`
	rows, err := r.pool.Query(ctx, query, subscriptionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SubscriptionHistory
	for rows.Next() {
		var history domain.SubscriptionHistory
		if err := rows.Scan(
			&history.ID,
			&history.SubscriptionID,
			&history.Actor,
			&history.OldStatus,
			&history.NewStatus,
			&history.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, history)
	}
	return result, rows.Err()
}
