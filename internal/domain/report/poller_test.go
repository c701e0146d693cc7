package report

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/selerasa/restopos/internal/domain/payment"
)

// flakySource fails on demand so refresh behaviour can be driven directly.
type flakySource struct {
	mockSource
	fail bool
}

func (f *flakySource) TransactionsInRange(ctx context.Context, rng Range) ([]TransactionRow, error) {
	if f.fail {
		return nil, errors.New("service unavailable")
	}
	return f.mockSource.TransactionsInRange(ctx, rng)
}

func newTestPoller(src Source) *Poller {
	rangeFn := func(now time.Time) (Range, Options) {
		return LastNDays(DateOf(now), 7), Options{DenseDays: true}
	}
	return NewPoller(NewAggregator(src), rangeFn, time.Minute, zap.NewNop())
}

func TestPoller_RefreshStoresSnapshot(t *testing.T) {
	day := NewDate(2025, time.June, 15)
	src := &flakySource{mockSource: mockSource{
		txs: []TransactionRow{{
			ID: "t1", Date: day, Amount: decimal.NewFromInt(50000),
			Method: payment.MethodTunai, CreatedAt: day.Time(),
		}},
	}}

	p := newTestPoller(src)
	p.now = func() time.Time { return day.Time().Add(18 * time.Hour) }

	p.refresh(context.Background())

	snap := p.Snapshot()
	require.NotNil(t, snap.Report)
	assert.False(t, snap.Stale)
	assert.NoError(t, snap.LastError)
	assert.True(t, decimal.NewFromInt(50000).Equal(snap.Report.Overview.TotalRevenue))
}

func TestPoller_FailedRefreshKeepsLastKnownGood(t *testing.T) {
	day := NewDate(2025, time.June, 15)
	src := &flakySource{mockSource: mockSource{
		txs: []TransactionRow{{
			ID: "t1", Date: day, Amount: decimal.NewFromInt(50000),
			Method: payment.MethodTunai, CreatedAt: day.Time(),
		}},
	}}

	p := newTestPoller(src)
	p.now = func() time.Time { return day.Time().Add(18 * time.Hour) }

	p.refresh(context.Background())
	good := p.Snapshot()
	require.NotNil(t, good.Report)

	src.fail = true
	p.refresh(context.Background())

	snap := p.Snapshot()
	assert.True(t, snap.Stale)
	assert.Error(t, snap.LastError)
	require.NotNil(t, snap.Report, "failed refresh must not clear visible data")
	assert.Equal(t, good.Report, snap.Report)
	assert.Equal(t, good.RefreshedAt, snap.RefreshedAt)

	// Recovery clears the stale flag.
	src.fail = false
	p.refresh(context.Background())
	snap = p.Snapshot()
	assert.False(t, snap.Stale)
	assert.NoError(t, snap.LastError)
}

func TestPoller_SnapshotBeforeFirstRefresh(t *testing.T) {
	p := newTestPoller(&mockSource{})
	snap := p.Snapshot()
	assert.Nil(t, snap.Report)
	assert.False(t, snap.Stale)
}
