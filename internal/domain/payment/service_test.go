package payment

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selerasa/restopos/internal/domain/order"
)

// --- Mock implementations ---

type mockOrderRepo struct {
	byID       map[int64]*order.Order
	lastStatus order.Status
	updateErr  error
}

func (m *mockOrderRepo) Create(_ context.Context, _ *order.Order) error { return nil }

func (m *mockOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) UpdateStatus(_ context.Context, id int64, status order.Status) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.lastStatus = status
	if o, ok := m.byID[id]; ok {
		o.Status = status
	}
	return nil
}

func (m *mockOrderRepo) ListByStatus(_ context.Context, _ []order.Status, _ int) ([]order.Order, error) {
	return nil, nil
}

func (m *mockOrderRepo) ListRecent(_ context.Context, _ int) ([]order.Order, error) {
	return nil, nil
}

type mockTxRepo struct {
	lastTx *Transaction
	err    error
}

func (m *mockTxRepo) Create(_ context.Context, tx *Transaction) error {
	m.lastTx = tx
	return m.err
}

// --- Helpers ---

func newService(orders *mockOrderRepo, txs *mockTxRepo) *Service {
	svc := NewService(orders, txs)
	svc.now = func() time.Time {
		return time.Date(2025, 6, 15, 13, 45, 0, 0, time.UTC)
	}
	svc.newID = func() string { return "tx-fixed" }
	return svc
}

func payableOrder(id int64, status order.Status, total string) *order.Order {
	return &order.Order{
		ID:      id,
		TableNo: "5",
		Status:  status,
		Total:   decimal.RequireFromString(total),
	}
}

// --- Tests ---

func TestSettle_CashWithChange(t *testing.T) {
	orders := &mockOrderRepo{byID: map[int64]*order.Order{
		1: payableOrder(1, order.StatusProses, "65000"),
	}}
	txs := &mockTxRepo{}
	svc := newService(orders, txs)

	tx, err := svc.Settle(context.Background(), SettleRequest{
		OrderID:  1,
		UserID:   3,
		Method:   MethodTunai,
		Received: decimal.RequireFromString("100000"),
	})

	require.NoError(t, err)
	assert.Equal(t, "tx-fixed", tx.ID)
	assert.True(t, decimal.RequireFromString("65000").Equal(tx.Amount))
	assert.True(t, decimal.RequireFromString("100000").Equal(tx.Received))
	assert.True(t, decimal.RequireFromString("35000").Equal(tx.Change))
	assert.Equal(t, MethodTunai, tx.Method)
	assert.Equal(t, order.StatusSelesai, orders.lastStatus)
	assert.Same(t, tx, txs.lastTx)
}

func TestSettle_CashInsufficient(t *testing.T) {
	orders := &mockOrderRepo{byID: map[int64]*order.Order{
		1: payableOrder(1, order.StatusProses, "65000"),
	}}
	svc := newService(orders, &mockTxRepo{})

	_, err := svc.Settle(context.Background(), SettleRequest{
		OrderID:  1,
		Method:   MethodTunai,
		Received: decimal.RequireFromString("50000"),
	})
	require.ErrorIs(t, err, ErrInsufficientAmount)
}

func TestSettle_NonCashIsExact(t *testing.T) {
	for _, method := range []Method{MethodDebit, MethodQRIS} {
		t.Run(string(method), func(t *testing.T) {
			orders := &mockOrderRepo{byID: map[int64]*order.Order{
				1: payableOrder(1, order.StatusProses, "80000"),
			}}
			txs := &mockTxRepo{}
			svc := newService(orders, txs)

			tx, err := svc.Settle(context.Background(), SettleRequest{
				OrderID: 1,
				Method:  method,
			})

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString("80000").Equal(tx.Amount))
			assert.True(t, decimal.RequireFromString("80000").Equal(tx.Received))
			assert.True(t, tx.Change.IsZero())
		})
	}
}

func TestSettle_UnknownMethod(t *testing.T) {
	svc := newService(&mockOrderRepo{}, &mockTxRepo{})
	_, err := svc.Settle(context.Background(), SettleRequest{OrderID: 1, Method: "cek"})
	require.ErrorIs(t, err, ErrUnknownMethod)
}

func TestSettle_NotPayableStatuses(t *testing.T) {
	for _, status := range []order.Status{order.StatusPending, order.StatusDibatalkan} {
		t.Run(string(status), func(t *testing.T) {
			orders := &mockOrderRepo{byID: map[int64]*order.Order{
				1: payableOrder(1, status, "65000"),
			}}
			svc := newService(orders, &mockTxRepo{})

			_, err := svc.Settle(context.Background(), SettleRequest{
				OrderID: 1,
				Method:  MethodQRIS,
			})
			require.ErrorIs(t, err, ErrOrderNotPayable)
		})
	}
}

func TestSettle_AlreadySelesaiStaysSelesai(t *testing.T) {
	orders := &mockOrderRepo{byID: map[int64]*order.Order{
		1: payableOrder(1, order.StatusSelesai, "65000"),
	}}
	svc := newService(orders, &mockTxRepo{})

	_, err := svc.Settle(context.Background(), SettleRequest{OrderID: 1, Method: MethodDebit})
	require.NoError(t, err)
	assert.Equal(t, order.Status(""), orders.lastStatus, "no redundant status write")
}

func TestSettle_TxRepoError(t *testing.T) {
	orders := &mockOrderRepo{byID: map[int64]*order.Order{
		1: payableOrder(1, order.StatusProses, "65000"),
	}}
	svc := newService(orders, &mockTxRepo{err: errors.New("db write failed")})

	_, err := svc.Settle(context.Background(), SettleRequest{OrderID: 1, Method: MethodQRIS})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create transaction")
	assert.Equal(t, order.Status(""), orders.lastStatus, "order untouched when transaction fails")
}
