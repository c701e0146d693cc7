// Package app wires configuration, storage, domain services, and the HTTP
// server into a running process.
package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/selerasa/restopos/internal/domain/order"
	"github.com/selerasa/restopos/internal/domain/payment"
	"github.com/selerasa/restopos/internal/domain/report"
	"github.com/selerasa/restopos/internal/handler"
	"github.com/selerasa/restopos/internal/storage/postgres"
	"github.com/selerasa/restopos/pkg/health"
	"github.com/selerasa/restopos/pkg/httpmiddleware"
)

// Run creates all dependencies, starts the report poller and HTTP server, and
// handles graceful shutdown. It is the single wiring point for the
// application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// PostgreSQL pool + migrations.
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	// Repositories.
	menuRepo := postgres.NewMenuRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	apikeyRepo := postgres.NewAPIKeyRepository(pool)
	reportSource := postgres.NewReportSource(pool)

	// Domain services.
	orderService := order.NewService(menuRepo, orderRepo)
	paymentService := payment.NewService(orderRepo, txRepo)
	aggregator := report.NewAggregator(reportSource).WithTimeout(cfg.Report.FetchTimeout)

	// Background poller for the owner dashboard: rolling window, dense
	// buckets, recomputed on every tick.
	poller := report.NewPoller(aggregator, func(now time.Time) (report.Range, report.Options) {
		rng := report.LastNDays(report.DateOf(now), cfg.Report.WindowDays)
		return rng, report.Options{DenseDays: true, FullDay: true}
	}, cfg.Report.RefreshInterval, lg.Named("poller"))
	go poller.Run(ctx)

	// Health probes.
	healthHandler := health.NewHandler()
	healthHandler.AddLiveness("goroutines", health.GoroutineCount(10000))
	healthHandler.AddReadiness("postgres", health.DatabasePing(pool))
	healthHandler.AddReadiness("report-snapshot", health.SnapshotFresh(
		5*cfg.Report.RefreshInterval,
		func() (time.Time, bool) {
			snap := poller.Snapshot()
			return snap.RefreshedAt, snap.Report != nil
		},
	))

	// HTTP handlers: API routes behind key auth, health endpoints open.
	h := handler.NewHandler(menuRepo, orderService, paymentService, aggregator, poller, userRepo)
	securityHandler := handler.NewSecurityHandler(apikeyRepo, []byte(cfg.APIKeyPepper))

	api := http.NewServeMux()
	h.Routes(api)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthHandler.LiveEndpoint)
	mux.HandleFunc("/readyz", healthHandler.ReadyEndpoint)
	mux.Handle("/api/", securityHandler.RequireAPIKey(api))

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowedOrigins: cfg.CORS.Origins,
			}),
			httpmiddleware.RateLimit(httpmiddleware.RateLimitConfig{
				Requests: cfg.RateLimit.Max,
				Window:   cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("restopos-api", m.TracerProvider(), m.MeterProvider()),
			httpmiddleware.LogRequests(),
			httpmiddleware.Compress(),
		),
	}

	healthHandler.SetReady(true)

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthHandler.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
