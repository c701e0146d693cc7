// Command seed-db populates a fresh database with demo staff accounts, a
// small menu catalog, and an API key for local development.
package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/selerasa/restopos/internal/storage/postgres"
)

func main() {
	var (
		databaseURL  string
		apiKey       string
		apiKeyPepper string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&apiKey, "api-key", "", "API key to seed (or RESTOPOS_SEED_API_KEY env)")
	flag.StringVar(&apiKeyPepper, "api-key-pepper", "", "HMAC pepper for API key hashing (or RESTOPOS_API_KEY_PEPPER env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if apiKey == "" {
		apiKey = os.Getenv("RESTOPOS_SEED_API_KEY")
	}
	if apiKey == "" {
		slog.Error("API key is required: set --api-key or RESTOPOS_SEED_API_KEY")
		os.Exit(1)
	}
	if apiKeyPepper == "" {
		apiKeyPepper = os.Getenv("RESTOPOS_API_KEY_PEPPER")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, apiKey, apiKeyPepper); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

type seedUser struct {
	username string
	name     string
	role     string
}

var seedUsers = []seedUser{
	{username: "admin", name: "Admin Resto", role: "administrator"},
	{username: "kasir1", name: "Kasir Satu", role: "kasir"},
	{username: "waiter1", name: "Waiter Satu", role: "waiter"},
	{username: "owner", name: "Pemilik Resto", role: "owner"},
	{username: "budi", name: "Budi Santoso", role: "pelanggan"},
}

type seedMenuItem struct {
	name     string
	category string
	price    int64
}

var seedMenu = []seedMenuItem{
	{name: "Nasi Goreng Spesial", category: "makanan", price: 25000},
	{name: "Mie Ayam Bakso", category: "makanan", price: 20000},
	{name: "Ayam Bakar Madu", category: "makanan", price: 30000},
	{name: "Es Teh Manis", category: "minuman", price: 8000},
	{name: "Jus Alpukat", category: "minuman", price: 15000},
	{name: "Pisang Goreng", category: "snack", price: 12000},
}

func run(ctx context.Context, databaseURL, apiKey, pepper string) error {
	slog.Info("connecting to database")

	pool, err := postgres.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "create db pool")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	for _, u := range seedUsers {
		_, err := pool.Exec(ctx, `
			INSERT INTO users (username, name, role)
			VALUES ($1, $2, $3)
			ON CONFLICT (username) DO NOTHING`,
			u.username, u.name, u.role,
		)
		if err != nil {
			return errors.Wrapf(err, "seed user %s", u.username)
		}
	}
	slog.Info("seeded users", slog.Int("count", len(seedUsers)))

	for _, m := range seedMenu {
		_, err := pool.Exec(ctx, `
			INSERT INTO menu_items (name, category, price, status)
			VALUES ($1, $2, $3, 'tersedia')
			ON CONFLICT (name) DO NOTHING`,
			m.name, m.category, decimal.NewFromInt(m.price),
		)
		if err != nil {
			return errors.Wrapf(err, "seed menu item %s", m.name)
		}
	}
	slog.Info("seeded menu items", slog.Int("count", len(seedMenu)))

	if err := seedDemoOrders(ctx, pool); err != nil {
		return errors.Wrap(err, "seed demo orders")
	}

	mac := hmac.New(sha256.New, []byte(pepper))
	mac.Write([]byte(apiKey))
	keyHash := hex.EncodeToString(mac.Sum(nil))

	_, err = pool.Exec(ctx, `
		INSERT INTO api_keys (key_hash, label, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key_hash) DO NOTHING`,
		keyHash, "seed", time.Now(),
	)
	if err != nil {
		return errors.Wrap(err, "seed api key")
	}
	slog.Info("seeded api key", slog.String("label", "seed"))

	return nil
}

// seedDemoOrders inserts a settled demo order with its transaction and one
// pending order, so freshly seeded dashboards have data. Skipped when any
// orders already exist.
func seedDemoOrders(ctx context.Context, pool *pgxpool.Pool) error {
	var existing int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM orders`).Scan(&existing); err != nil {
		return errors.Wrap(err, "count orders")
	}
	if existing > 0 {
		slog.Info("orders already present, skipping demo data", slog.Int("count", existing))
		return nil
	}

	var (
		nasiID, tehID       int64
		nasiPrice, tehPrice decimal.Decimal
	)
	err := pool.QueryRow(ctx,
		`SELECT id, price FROM menu_items WHERE name = 'Nasi Goreng Spesial'`,
	).Scan(&nasiID, &nasiPrice)
	if err != nil {
		return errors.Wrap(err, "look up demo menu item")
	}
	err = pool.QueryRow(ctx,
		`SELECT id, price FROM menu_items WHERE name = 'Es Teh Manis'`,
	).Scan(&tehID, &tehPrice)
	if err != nil {
		return errors.Wrap(err, "look up demo menu item")
	}

	total := nasiPrice.Add(tehPrice.Mul(decimal.NewFromInt(2)))

	var settledID int64
	err = pool.QueryRow(ctx, `
		INSERT INTO orders (table_no, note, status, total)
		VALUES ('M1', 'demo', 'selesai', $1)
		RETURNING id`, total,
	).Scan(&settledID)
	if err != nil {
		return errors.Wrap(err, "insert settled order")
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, 1, $3, $3), ($1, $4, 2, $5, $6)`,
		settledID, nasiID, nasiPrice, tehID, tehPrice, tehPrice.Mul(decimal.NewFromInt(2)),
	)
	if err != nil {
		return errors.Wrap(err, "insert settled order items")
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO transactions (id, order_id, amount, received, change, method)
		VALUES ($1, $2, $3, $3, 0, 'qris')`,
		uuid.New(), settledID, total,
	)
	if err != nil {
		return errors.Wrap(err, "insert demo transaction")
	}

	var pendingID int64
	err = pool.QueryRow(ctx, `
		INSERT INTO orders (table_no, note, status, total)
		VALUES ('M2', 'demo', 'pending', $1)
		RETURNING id`, nasiPrice,
	).Scan(&pendingID)
	if err != nil {
		return errors.Wrap(err, "insert pending order")
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, 1, $3, $3)`,
		pendingID, nasiID, nasiPrice,
	)
	if err != nil {
		return errors.Wrap(err, "insert pending order items")
	}

	slog.Info("seeded demo orders", slog.Int64("settled", settledID), slog.Int64("pending", pendingID))
	return nil
}
