package order

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/selerasa/restopos/internal/domain/menu"
)

// Sentinel errors for order validation.
var (
	ErrEmptyItems = fmt.Errorf("items required")
	ErrNotFound   = fmt.Errorf("order not found")
)

// MenuItemNotFoundError indicates a requested menu item does not exist.
type MenuItemNotFoundError struct {
	MenuItemID int64
}

func (e *MenuItemNotFoundError) Error() string {
	return fmt.Sprintf("menu item %d not found", e.MenuItemID)
}

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	MenuItemID int64
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("quantity must be greater than 0 for menu item %d", e.MenuItemID)
}

// PlaceOrderRequest holds the input for placing an order.
type PlaceOrderRequest struct {
	TableNo string
	UserID  int64
	Note    string
	Items   []ItemRequest
}

// ItemRequest is one requested line item.
type ItemRequest struct {
	MenuItemID int64
	Quantity   int
	Note       string
}

// Service encapsulates order lifecycle business logic.
type Service struct {
	menu   menu.Repository
	orders Repository
	now    func() time.Time
}

// NewService creates an order Service with the required domain dependencies.
func NewService(menuRepo menu.Repository, orders Repository) *Service {
	return &Service{
		menu:   menuRepo,
		orders: orders,
		now:    time.Now,
	}
}

// PlaceOrder validates items, fetches menu items in a single batch, prices
// each line (subtotal = quantity x unit price), persists the order with its
// line items, and returns it in the initial pending state.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}

	ids := make([]int64, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{MenuItemID: item.MenuItemID}
		}
		ids[i] = item.MenuItemID
	}

	fetched, err := s.menu.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get menu items: %w", err)
	}

	byID := make(map[int64]menu.Item, len(fetched))
	for _, m := range fetched {
		byID[m.ID] = m
	}

	now := s.now()
	total := decimal.Zero
	items := make([]Item, len(req.Items))
	for i, item := range req.Items {
		m, ok := byID[item.MenuItemID]
		if !ok {
			return nil, &MenuItemNotFoundError{MenuItemID: item.MenuItemID}
		}
		subtotal := m.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		items[i] = Item{
			MenuItemID: item.MenuItemID,
			MenuName:   m.Name,
			Quantity:   item.Quantity,
			UnitPrice:  m.Price,
			Subtotal:   subtotal,
			Note:       item.Note,
		}
		total = total.Add(subtotal)
	}

	o := &Order{
		TableNo:   req.TableNo,
		Date:      now,
		UserID:    req.UserID,
		Note:      req.Note,
		Status:    StatusPending,
		Total:     total.Round(2),
		Items:     items,
		CreatedAt: now,
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return o, nil
}

// AdvanceStatus moves an order to the given status through the state machine,
// rejecting invalid edges such as selesai -> pending.
func (s *Service) AdvanceStatus(ctx context.Context, id int64, to Status) (*Order, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("unknown order status %q", to)
	}

	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}

	next, err := Transition(o.Status, to)
	if err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("update order %d status: %w", id, err)
	}
	o.Status = next
	return o, nil
}

// Get returns a single order with its line items.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListPending returns orders waiting for cashier validation, newest first.
func (s *Service) ListPending(ctx context.Context, limit int) ([]Order, error) {
	return s.orders.ListByStatus(ctx, []Status{StatusPending}, limit)
}

// ListAwaitingPayment returns orders that are being prepared or served but not
// yet settled, newest first.
func (s *Service) ListAwaitingPayment(ctx context.Context, limit int) ([]Order, error) {
	return s.orders.ListByStatus(ctx, []Status{StatusProses, StatusSelesai}, limit)
}

// ListRecent returns the most recently created orders regardless of status.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]Order, error) {
	return s.orders.ListRecent(ctx, limit)
}
