package report

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultFetchTimeout bounds a single report build. The source contract has
// no timeout of its own, so expiry here counts as a fetch failure.
const DefaultFetchTimeout = 15 * time.Second

// Source is the data-fetch collaborator. Each method returns the rows for the
// given inclusive date range; implementations filter on the entities' DATE
// columns, never on timestamps.
type Source interface {
	OrdersInRange(ctx context.Context, rng Range) ([]OrderRow, error)
	TransactionsInRange(ctx context.Context, rng Range) ([]TransactionRow, error)
	// ItemsSoldInRange returns line items whose parent order's date is in
	// range, each joined with its menu item and the order's creation
	// timestamp.
	ItemsSoldInRange(ctx context.Context, rng Range) ([]SoldItemRow, error)
}

// Aggregator builds reports from a Source. It holds no state between builds;
// concurrent builds are independent and last-writer-wins at the caller is
// fine.
type Aggregator struct {
	src     Source
	timeout time.Duration
	now     func() time.Time
}

// NewAggregator creates an Aggregator over the given source.
func NewAggregator(src Source) *Aggregator {
	return &Aggregator{
		src:     src,
		timeout: DefaultFetchTimeout,
		now:     time.Now,
	}
}

// WithTimeout overrides the per-build fetch timeout.
func (a *Aggregator) WithTimeout(d time.Duration) *Aggregator {
	a.timeout = d
	return a
}

// Build fetches the current-period orders, transactions, and sold items plus
// the previous-period orders and transactions as five independent concurrent
// reads, then aggregates. If any fetch fails the whole build fails with no
// partial result.
func (a *Aggregator) Build(ctx context.Context, rng Range, opts Options) (*Report, error) {
	opts = opts.withDefaults()
	prev := rng.Previous()

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var (
		orders     []OrderRow
		txs        []TransactionRow
		items      []SoldItemRow
		prevOrders []OrderRow
		prevTxs    []TransactionRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		orders, err = a.src.OrdersInRange(gctx, rng)
		return err
	})
	g.Go(func() (err error) {
		txs, err = a.src.TransactionsInRange(gctx, rng)
		return err
	})
	g.Go(func() (err error) {
		items, err = a.src.ItemsSoldInRange(gctx, rng)
		return err
	})
	g.Go(func() (err error) {
		prevOrders, err = a.src.OrdersInRange(gctx, prev)
		return err
	})
	g.Go(func() (err error) {
		prevTxs, err = a.src.TransactionsInRange(gctx, prev)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch report data for %s: %w", rng, err)
	}

	hourFrom, hourTo := opts.hourWindow()
	r := &Report{
		Range:          rng,
		Overview:       buildOverview(orders, txs, prevOrders, prevTxs),
		RevenueByDate:  revenueSeries(txs, rng, opts.DenseDays),
		HourlyOrders:   hourlySeries(items, hourFrom, hourTo),
		TopMenu:        topMenu(items, opts.TopN),
		OrdersByStatus: statusBreakdown(orders),
		PaymentMethods: methodBreakdown(txs),
		GeneratedAt:    a.now(),
	}
	if opts.IncludeTransactions {
		r.Transactions = newestFirst(txs)
	}
	return r, nil
}
