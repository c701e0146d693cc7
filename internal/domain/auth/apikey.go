package auth

import (
	"context"
	"time"

	"github.com/go-faster/errors"
)

// ErrKeyNotFound is returned when no API key matches the given hash.
var ErrKeyNotFound = errors.New("api key not found")

// APIKey holds the stored HMAC-SHA256 hash of an issued staff API key.
// Plaintext keys are never stored.
type APIKey struct {
	KeyHash   string
	Label     string
	CreatedAt time.Time
}

// Repository provides lookup of issued API keys by hash.
type Repository interface {
	FindByHash(ctx context.Context, hash string) (*APIKey, error)
}
