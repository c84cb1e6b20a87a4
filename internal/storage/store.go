package storage

import (
	"context"
	"errors"
)

var ErrUnavailable = errors.New("storage unavailable")

// Store is a flat string key-value store. Implementations must be safe for
// concurrent use. Get reports ok=false for an absent key.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}
