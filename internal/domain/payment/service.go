package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/selerasa/restopos/internal/domain/order"
)

// Sentinel errors for settlement validation.
var (
	ErrUnknownMethod      = fmt.Errorf("unknown payment method")
	ErrOrderNotPayable    = fmt.Errorf("order is not payable in its current status")
	ErrInsufficientAmount = fmt.Errorf("received amount is less than the order total")
)

// AmountMismatchError indicates a non-cash payment whose amount does not
// reconcile with the order total.
type AmountMismatchError struct {
	OrderID int64
	Total   decimal.Decimal
	Amount  decimal.Decimal
}

func (e *AmountMismatchError) Error() string {
	return fmt.Sprintf("payment amount %s does not match order %d total %s",
		e.Amount, e.OrderID, e.Total)
}

// SettleRequest holds the input for settling an order.
type SettleRequest struct {
	OrderID  int64
	UserID   int64
	Method   Method
	Received decimal.Decimal // cash handed over; ignored for debit/qris
}

// Service encapsulates payment settlement business logic.
type Service struct {
	orders order.Repository
	txs    Repository
	now    func() time.Time
	newID  func() string
}

// NewService creates a payment Service with the required domain dependencies.
func NewService(orders order.Repository, txs Repository) *Service {
	return &Service{
		orders: orders,
		txs:    txs,
		now:    time.Now,
		newID:  func() string { return uuid.New().String() },
	}
}

// Settle records the payment transaction for an order and completes it.
// The transaction amount always equals the order total; for cash payments the
// received amount must cover the total and the change is computed here. The
// order is moved to selesai through the status state machine.
func (s *Service) Settle(ctx context.Context, req SettleRequest) (*Transaction, error) {
	if !req.Method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, req.Method)
	}

	o, err := s.orders.GetByID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", req.OrderID, err)
	}
	if o.Status != order.StatusProses && o.Status != order.StatusSelesai {
		return nil, fmt.Errorf("%w: order %d is %s", ErrOrderNotPayable, o.ID, o.Status)
	}

	received := req.Received
	change := decimal.Zero
	if req.Method == MethodTunai {
		if received.LessThan(o.Total) {
			return nil, fmt.Errorf("%w: received %s, total %s", ErrInsufficientAmount, received, o.Total)
		}
		change = received.Sub(o.Total)
	} else {
		// Non-cash settlements are exact by definition.
		received = o.Total
	}

	now := s.now()
	tx := &Transaction{
		ID:        s.newID(),
		OrderID:   o.ID,
		UserID:    req.UserID,
		TableNo:   o.TableNo,
		Date:      now,
		Amount:    o.Total,
		Received:  received,
		Change:    change,
		Method:    req.Method,
		CreatedAt: now,
	}
	if err := s.txs.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	// An order settled while still in proses completes now; one already
	// selesai stays as it is.
	if o.Status == order.StatusProses {
		next, err := order.Transition(o.Status, order.StatusSelesai)
		if err != nil {
			return nil, err
		}
		if err := s.orders.UpdateStatus(ctx, o.ID, next); err != nil {
			return nil, fmt.Errorf("complete order %d: %w", o.ID, err)
		}
	}

	return tx, nil
}
