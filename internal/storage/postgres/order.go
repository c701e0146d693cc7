package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selerasa/restopos/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists an order together with its line items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create order: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (table_no, order_date, user_id, note, status, total, created_at)
		 VALUES ($1, $2, NULLIF($3, 0), $4, $5, $6, $7)
		 RETURNING id`,
		o.TableNo, o.Date, o.UserID, o.Note, o.Status, o.Total, o.CreatedAt,
	).Scan(&o.ID)
	if err != nil {
		return fmt.Errorf("inserting order: %w", err)
	}

	for i := range o.Items {
		it := &o.Items[i]
		_, err := tx.Exec(ctx,
			`INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, subtotal, note)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			o.ID, it.MenuItemID, it.Quantity, it.UnitPrice, it.Subtotal, it.Note)
		if err != nil {
			return fmt.Errorf("inserting order item %d: %w", it.MenuItemID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create order: %w", err)
	}
	return nil
}

// GetByID loads an order with its line items, or order.ErrNotFound.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	var o order.Order
	err := r.pool.QueryRow(ctx,
		`SELECT o.id, o.table_no, o.order_date, COALESCE(o.user_id, 0), COALESCE(u.name, ''),
		        o.note, o.status, o.total, o.created_at
		 FROM orders o
		 LEFT JOIN users u ON u.id = o.user_id
		 WHERE o.id = $1`, id,
	).Scan(&o.ID, &o.TableNo, &o.Date, &o.UserID, &o.CustomerName,
		&o.Note, &o.Status, &o.Total, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT oi.menu_item_id, m.name, oi.quantity, oi.unit_price, oi.subtotal, oi.note
		 FROM order_items oi
		 JOIN menu_items m ON m.id = oi.menu_item_id
		 WHERE oi.order_id = $1
		 ORDER BY oi.id`, id)
	if err != nil {
		return nil, fmt.Errorf("listing order %d items: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var it order.Item
		if err := rows.Scan(&it.MenuItemID, &it.MenuName, &it.Quantity,
			&it.UnitPrice, &it.Subtotal, &it.Note); err != nil {
			return nil, fmt.Errorf("scanning order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return &o, rows.Err()
}

// UpdateStatus writes a new lifecycle status. Transition validity is the
// service's responsibility; this is a plain persistence write.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id int64, status order.Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("updating order %d status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

// ListByStatus returns orders in any of the given statuses, newest first.
func (r *OrderRepository) ListByStatus(ctx context.Context, statuses []order.Status, limit int) ([]order.Order, error) {
	ss := make([]string, len(statuses))
	for i, s := range statuses {
		ss[i] = string(s)
	}
	return r.list(ctx,
		`SELECT o.id, o.table_no, o.order_date, COALESCE(o.user_id, 0), COALESCE(u.name, ''),
		        o.note, o.status, o.total, o.created_at
		 FROM orders o
		 LEFT JOIN users u ON u.id = o.user_id
		 WHERE o.status = ANY($1)
		 ORDER BY o.created_at DESC
		 LIMIT $2`, ss, limit)
}

// ListRecent returns the most recently created orders regardless of status.
func (r *OrderRepository) ListRecent(ctx context.Context, limit int) ([]order.Order, error) {
	return r.list(ctx,
		`SELECT o.id, o.table_no, o.order_date, COALESCE(o.user_id, 0), COALESCE(u.name, ''),
		        o.note, o.status, o.total, o.created_at
		 FROM orders o
		 LEFT JOIN users u ON u.id = o.user_id
		 ORDER BY o.created_at DESC
		 LIMIT $1`, limit)
}

func (r *OrderRepository) list(ctx context.Context, sql string, args ...any) ([]order.Order, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var out []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(&o.ID, &o.TableNo, &o.Date, &o.UserID, &o.CustomerName,
			&o.Note, &o.Status, &o.Total, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
