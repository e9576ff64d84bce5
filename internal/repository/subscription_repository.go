package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sea-catering/storefront/internal/domain"
)

// StatsRange bounds the time-based admin metrics. Nil ends are open.
type StatsRange struct {
	From *time.Time
	To   *time.Time
}

// SubscriptionRepository encapsulates subscription persistence.
type SubscriptionRepository interface {
	Create(ctx context.Context, sub *domain.Subscription) error
	GetByID(ctx context.Context, id int64) (*domain.Subscription, error)
	GetForUser(ctx context.Context, id, userID int64) (*domain.Subscription, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error)
	// TransitionStatus moves the subscription from one status to another and
	// records the history entry in the same transaction. It reports false when
	// the row was not in the expected status.
	TransitionStatus(ctx context.Context, id int64, from, to domain.SubscriptionStatus, actor domain.HistoryActor) (bool, error)
	Stats(ctx context.Context, rng StatsRange) (domain.DashboardStats, error)
}

type subscriptionRepository struct {
	pool *pgxpool.Pool
}

// NewSubscriptionRepository instantiates repository.
func NewSubscriptionRepository(pool *pgxpool.Pool) SubscriptionRepository {
	return &subscriptionRepository{pool: pool}
}

const subscriptionColumns = `id, user_id, name, phone_number, plan_name, meal_types, delivery_days,
               allergies, total_price, status, created_at, updated_at`

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) error {
	const query = `
        INSERT INTO subscriptions (user_id, name, phone_number, plan_name, meal_types, delivery_days, allergies, total_price, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		sub.UserID,
		sub.Name,
		sub.Phone,
		sub.PlanName,
		sub.MealTypes,
		sub.DeliveryDays,
		sub.Allergies,
		sub.TotalPrice,
		sub.Status,
	).Scan(&sub.ID, &sub.CreatedAt, &sub.UpdatedAt)
}

func (r *subscriptionRepository) GetByID(ctx context.Context, id int64) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id=$1`
	return scanSubscription(r.pool.QueryRow(ctx, query, id))
}

func (r *subscriptionRepository) GetForUser(ctx context.Context, id, userID int64) (*domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id=$1 AND user_id=$2`
	return scanSubscription(r.pool.QueryRow(ctx, query, id, userID))
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Subscription{}
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *sub)
	}
	return result, rows.Err()
}

func (r *subscriptionRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.SubscriptionStatus, actor domain.HistoryActor) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	cmd, err := tx.Exec(ctx,
		`UPDATE subscriptions SET status=$1, updated_at=NOW() WHERE id=$2 AND status=$3`,
		to, id, from)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		return false, nil
	}

	history := &domain.SubscriptionHistory{SubscriptionID: id, Actor: actor, OldStatus: from, NewStatus: to}
	if err := insertHistory(ctx, tx, history); err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (r *subscriptionRepository) Stats(ctx context.Context, rng StatsRange) (domain.DashboardStats, error) {
	var stats domain.DashboardStats

	createdClause, createdArgs := rangeClause("created_at", rng)
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscriptions WHERE `+createdClause, createdArgs...,
	).Scan(&stats.NewSubscriptions); err != nil {
		return stats, fmt.Errorf("count new subscriptions: %w", err)
	}

	if err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_price), 0), COUNT(*) FROM subscriptions WHERE status=$1`,
		domain.SubscriptionActive,
	).Scan(&stats.MonthlyRecurringRevenue, &stats.ActiveSubscriptions); err != nil {
		return stats, fmt.Errorf("sum active subscriptions: %w", err)
	}

	historyClause, historyArgs := rangeClause("created_at", rng)
	historyArgs = append(historyArgs, domain.SubscriptionPaused, domain.SubscriptionActive)
	n := len(historyArgs)
	query := fmt.Sprintf(
		`SELECT COUNT(*) FROM subscription_history WHERE %s AND old_status=$%d AND new_status=$%d`,
		historyClause, n-1, n)
	if err := r.pool.QueryRow(ctx, query, historyArgs...).Scan(&stats.Reactivations); err != nil {
		return stats, fmt.Errorf("count reactivations: %w", err)
	}
	return stats, nil
}

func rangeClause(column string, rng StatsRange) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if rng.From != nil {
		args = append(args, *rng.From)
		clauses = append(clauses, fmt.Sprintf("%s >= $%d", column, len(args)))
	}
	if rng.To != nil {
		args = append(args, *rng.To)
		clauses = append(clauses, fmt.Sprintf("%s <= $%d", column, len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func scanSubscription(row pgx.Row) (*domain.Subscription, error) {
	var sub domain.Subscription
	if err := row.Scan(
		&sub.ID,
		&sub.UserID,
		&sub.Name,
		&sub.Phone,
		&sub.PlanName,
		&sub.MealTypes,
		&sub.DeliveryDays,
		&sub.Allergies,
		&sub.TotalPrice,
		&sub.Status,
		&sub.CreatedAt,
		&sub.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &sub, nil
}
