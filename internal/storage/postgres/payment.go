package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selerasa/restopos/internal/domain/payment"
)

var _ payment.Repository = (*TransactionRepository)(nil)

// TransactionRepository implements payment.Repository backed by PostgreSQL.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository returns a TransactionRepository that uses the
// given pool.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create persists a settlement transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx *payment.Transaction) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO transactions (id, order_id, user_id, tx_date, amount, received, change, method, created_at)
		 VALUES ($1, $2, NULLIF($3, 0), $4, $5, $6, $7, $8, $9)`,
		tx.ID, tx.OrderID, tx.UserID, tx.Date, tx.Amount, tx.Received, tx.Change, tx.Method, tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating transaction for order %d: %w", tx.OrderID, err)
	}
	return nil
}
