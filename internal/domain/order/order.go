package order

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order. Status changes go through
// Transition; direct assignment between states is not allowed anywhere else.
type Status string

const (
	// StatusPending is the initial state of every placed order.
	StatusPending Status = "pending"
	// StatusProses means the order has been validated and sent to the kitchen.
	StatusProses Status = "proses"
	// StatusSelesai is the terminal state of a fulfilled, settled order.
	StatusSelesai Status = "selesai"
	// StatusDibatalkan is the terminal state of a cancelled order.
	StatusDibatalkan Status = "dibatalkan"
)

// transitions holds the allowed edges of the status state machine.
var transitions = map[Status][]Status{
	StatusPending: {StatusProses, StatusDibatalkan},
	StatusProses:  {StatusSelesai, StatusDibatalkan},
}

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProses, StatusSelesai, StatusDibatalkan:
		return true
	}
	return false
}

// Terminal reports whether s is a final state. Orders in a terminal state are
// immutable for reporting purposes.
func (s Status) Terminal() bool {
	return s == StatusSelesai || s == StatusDibatalkan
}

// CanTransition reports whether the edge s -> to is allowed.
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// InvalidTransitionError indicates a rejected status change.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition %s -> %s", e.From, e.To)
}

// Transition validates the edge from -> to, returning the new status or an
// InvalidTransitionError. Every caller that changes an order's status must go
// through this function.
func Transition(from, to Status) (Status, error) {
	if !from.CanTransition(to) {
		return from, &InvalidTransitionError{From: from, To: to}
	}
	return to, nil
}

// Order is a customer's placed request for one or more menu items, tied to a
// table and carrying a lifecycle status.
type Order struct {
	ID           int64
	TableNo      string
	Date         time.Time // calendar date of the order (DATE column)
	UserID       int64
	CustomerName string
	Note         string
	Status       Status
	Total        decimal.Decimal
	Items        []Item
	CreatedAt    time.Time
}

// Item is one menu-item/quantity entry within an order.
type Item struct {
	MenuItemID int64
	MenuName   string
	Quantity   int
	UnitPrice  decimal.Decimal
	Subtotal   decimal.Decimal
	Note       string
}

// Repository defines persistence operations for orders.
type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, id int64) (*Order, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	ListByStatus(ctx context.Context, statuses []Status, limit int) ([]Order, error)
	ListRecent(ctx context.Context, limit int) ([]Order, error)
}
