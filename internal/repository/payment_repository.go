package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sea-catering/storefront/internal/domain"
)

// PaymentRepository persists checkout attempts.
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.PaymentStatus, transactionID string) error
}

type paymentRepository struct {
	pool *pgxpool.Pool
}

// NewPaymentRepository instantiates repository.
func NewPaymentRepository(pool *pgxpool.Pool) PaymentRepository {
	return &paymentRepository{pool: pool}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	const query = `
        INSERT INTO payments (order_id, subscription_id, snap_token, redirect_url, gross_amount, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		payment.OrderID,
		payment.SubscriptionID,
		payment.SnapToken,
		payment.RedirectURL,
		payment.GrossAmount,
		payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt, &payment.UpdatedAt)
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	const query = `
        SELECT id, order_id, subscription_id, snap_token, redirect_url, gross_amount, status, transaction_id, created_at, updated_at
        FROM payments WHERE order_id=$1`
	var payment domain.Payment
	if err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&payment.ID,
		&payment.OrderID,
		&payment.SubscriptionID,
		&payment.SnapToken,
		&payment.RedirectURL,
		&payment.GrossAmount,
		&payment.Status,
		&payment.TransactionID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) UpdateStatus(ctx context.Context, orderID string, status domain.PaymentStatus, transactionID string) error {
	const query = `
        UPDATE payments SET status=$1, transaction_id=COALESCE(NULLIF($2, ''), transaction_id), updated_at=NOW()
        WHERE order_id=$3`
	cmd, err := r.pool.Exec(ctx, query, status, transactionID, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
