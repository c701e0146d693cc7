package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/selerasa/restopos/internal/domain/report"
)

var _ report.Source = (*ReportSource)(nil)

// ReportSource implements report.Source with range-filtered reads. All range
// predicates compare DATE columns, so a report boundary is a calendar day
// regardless of the server's timezone. Numeric fields are coalesced to zero
// in SQL, so a row with a missing amount degrades to zero instead of failing
// the whole report.
type ReportSource struct {
	pool *pgxpool.Pool
}

// NewReportSource returns a ReportSource that uses the given pool.
func NewReportSource(pool *pgxpool.Pool) *ReportSource {
	return &ReportSource{pool: pool}
}

// OrdersInRange returns orders whose order_date falls in the range.
func (s *ReportSource) OrdersInRange(ctx context.Context, rng report.Range) ([]report.OrderRow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, order_date, status, COALESCE(total, 0)
		 FROM orders
		 WHERE order_date BETWEEN $1 AND $2`,
		rng.Start.Time(), rng.End.Time())
	if err != nil {
		return nil, fmt.Errorf("querying orders in %s: %w", rng, err)
	}
	defer rows.Close()

	var out []report.OrderRow
	for rows.Next() {
		var (
			r report.OrderRow
			d time.Time
		)
		if err := rows.Scan(&r.ID, &d, &r.Status, &r.Total); err != nil {
			return nil, fmt.Errorf("scanning order row: %w", err)
		}
		r.Date = report.DateOf(d)
		out = append(out, r)
	}
	return out, rows.Err()
}

// TransactionsInRange returns transactions whose tx_date falls in the range,
// joined with the order's table number and the cashier's name for detail
// tables.
func (s *ReportSource) TransactionsInRange(ctx context.Context, rng report.Range) ([]report.TransactionRow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT t.id, t.order_id, COALESCE(o.table_no, ''), COALESCE(u.name, ''),
		        t.tx_date, COALESCE(t.amount, 0), t.method, t.created_at
		 FROM transactions t
		 LEFT JOIN orders o ON o.id = t.order_id
		 LEFT JOIN users u ON u.id = t.user_id
		 WHERE t.tx_date BETWEEN $1 AND $2`,
		rng.Start.Time(), rng.End.Time())
	if err != nil {
		return nil, fmt.Errorf("querying transactions in %s: %w", rng, err)
	}
	defer rows.Close()

	var out []report.TransactionRow
	for rows.Next() {
		var (
			r report.TransactionRow
			d time.Time
		)
		if err := rows.Scan(&r.ID, &r.OrderID, &r.TableNo, &r.CashierName,
			&d, &r.Amount, &r.Method, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning transaction row: %w", err)
		}
		r.Date = report.DateOf(d)
		out = append(out, r)
	}
	return out, rows.Err()
}

// ItemsSoldInRange returns line items whose parent order's date falls in the
// range, each joined with its menu item and the parent order's creation
// timestamp.
func (s *ReportSource) ItemsSoldInRange(ctx context.Context, rng report.Range) ([]report.SoldItemRow, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT oi.menu_item_id, COALESCE(m.name, ''), COALESCE(m.category, ''),
		        oi.quantity, COALESCE(oi.subtotal, 0), o.created_at
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id
		 LEFT JOIN menu_items m ON m.id = oi.menu_item_id
		 WHERE o.order_date BETWEEN $1 AND $2`,
		rng.Start.Time(), rng.End.Time())
	if err != nil {
		return nil, fmt.Errorf("querying sold items in %s: %w", rng, err)
	}
	defer rows.Close()

	var out []report.SoldItemRow
	for rows.Next() {
		var r report.SoldItemRow
		if err := rows.Scan(&r.MenuItemID, &r.MenuName, &r.Category,
			&r.Quantity, &r.Subtotal, &r.OrderCreatedAt); err != nil {
			return nil, fmt.Errorf("scanning sold item row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
