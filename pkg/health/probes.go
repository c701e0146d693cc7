package health

import (
	"context"
	"runtime"
	"time"

	"github.com/go-faster/errors"
)

// Pinger is satisfied by pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DatabasePing returns a probe that checks database connectivity.
func DatabasePing(db Pinger) Probe {
	return func(ctx context.Context) error {
		if err := db.Ping(ctx); err != nil {
			return errors.Wrap(err, "database ping")
		}
		return nil
	}
}

// GoroutineCount returns a probe that fails when the goroutine count exceeds
// threshold, as a coarse leak detector.
func GoroutineCount(threshold int) Probe {
	return func(context.Context) error {
		if n := runtime.NumGoroutine(); n > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", n, threshold)
		}
		return nil
	}
}

// SnapshotFresh returns a probe that fails when the most recent report
// snapshot is older than maxAge. lastRefresh reports the refresh time of the
// current snapshot and whether one exists yet.
func SnapshotFresh(maxAge time.Duration, lastRefresh func() (time.Time, bool)) Probe {
	return func(context.Context) error {
		at, ok := lastRefresh()
		if !ok {
			return errors.New("no report snapshot yet")
		}
		if age := time.Since(at); age > maxAge {
			return errors.Errorf("report snapshot is stale: refreshed %s ago", age.Round(time.Second))
		}
		return nil
	}
}
