package repositories

import (
	"context"
	"time"

	"github.com/tropicaldog17/zakat/internal/cache"
)

// PriceCacheRepository persists cache entries so quotes survive restarts.
type PriceCacheRepository interface {
	cache.Store
	// Purge removes entries that expired before t and returns how many went.
	Purge(ctx context.Context, before time.Time) (int64, error)
}

// RequestCounterRepository tracks paid upstream calls per calendar month.
type RequestCounterRepository interface {
	Count(ctx context.Context, year int, month time.Month) (int64, error)
	// TryIncrement counts one call unless the month has reached limit.
	TryIncrement(ctx context.Context, year int, month time.Month, limit int64) (int64, bool, error)
}
