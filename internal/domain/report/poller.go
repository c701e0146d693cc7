package report

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Snapshot is the last produced report plus its freshness. When a refresh
// fails the previous report is retained and Stale is set, so a failed refresh
// never clears visible data.
type Snapshot struct {
	Report      *Report
	RefreshedAt time.Time
	Stale       bool
	LastError   error
}

// RangeFunc yields the range and options for the next refresh. Dashboards
// with rolling windows ("last 7 days", "today") recompute the range on every
// tick.
type RangeFunc func(now time.Time) (Range, Options)

// Poller periodically rebuilds a report and keeps the latest snapshot. The
// aggregator stays pure; the poller is the external scheduler that re-invokes
// it and swaps results last-writer-wins.
type Poller struct {
	agg      *Aggregator
	rangeFn  RangeFunc
	interval time.Duration
	lg       *zap.Logger
	now      func() time.Time

	snap atomic.Pointer[Snapshot]
}

// NewPoller creates a Poller refreshing at the given interval.
func NewPoller(agg *Aggregator, rangeFn RangeFunc, interval time.Duration, lg *zap.Logger) *Poller {
	p := &Poller{
		agg:      agg,
		rangeFn:  rangeFn,
		interval: interval,
		lg:       lg,
		now:      time.Now,
	}
	p.snap.Store(&Snapshot{})
	return p
}

// Run refreshes immediately and then on every tick until the context is
// cancelled. Intended to run in its own goroutine.
func (p *Poller) Run(ctx context.Context) {
	p.refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.refresh(ctx)
		}
	}
}

// Snapshot returns the latest snapshot. The Report is nil until the first
// successful refresh.
func (p *Poller) Snapshot() Snapshot {
	return *p.snap.Load()
}

func (p *Poller) refresh(ctx context.Context) {
	now := p.now()
	rng, opts := p.rangeFn(now)

	r, err := p.agg.Build(ctx, rng, opts)
	if err != nil {
		prev := p.snap.Load()
		p.snap.Store(&Snapshot{
			Report:      prev.Report,
			RefreshedAt: prev.RefreshedAt,
			Stale:       true,
			LastError:   err,
		})
		p.lg.Warn("report refresh failed, keeping previous snapshot",
			zap.String("range", rng.String()),
			zap.Error(err),
		)
		return
	}

	p.snap.Store(&Snapshot{Report: r, RefreshedAt: now})
	p.lg.Debug("report refreshed", zap.String("range", rng.String()))
}
