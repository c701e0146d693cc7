package menu

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested menu item does not exist.
var ErrNotFound = errors.New("menu item not found")

// Item is a dish on the menu. Reference data for order placement and
// reporting; the aggregator never mutates it.
type Item struct {
	ID          int64
	Name        string
	Category    string
	Price       decimal.Decimal
	Status      string
	Description string
	CreatedAt   time.Time
}

// Repository defines read and admin operations for the menu catalog.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Item, error)
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
}
