package repositories

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tropicaldog17/zakat/internal/cache"
	"github.com/tropicaldog17/zakat/internal/config"
	"github.com/tropicaldog17/zakat/internal/db"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Connect(config.Database{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

type storedQuote struct {
	Price  string `json:"price"`
	Source string `json:"source"`
}

func TestPriceCacheRepository_SetGet(t *testing.T) {
	ctx := context.Background()
	repo := NewPriceCacheRepository(newTestDB(t))

	require.NoError(t, repo.Set(ctx, "metal:gold:USD", storedQuote{Price: "70", Source: "coingecko"}, time.Hour))

	var got storedQuote
	require.NoError(t, repo.Get(ctx, "metal:gold:USD", &got))
	assert.Equal(t, storedQuote{Price: "70", Source: "coingecko"}, got)

	assert.ErrorIs(t, repo.Get(ctx, "metal:silver:USD", &got), cache.ErrCacheMiss)
}

func TestPriceCacheRepository_UpsertReplacesValue(t *testing.T) {
	ctx := context.Background()
	repo := NewPriceCacheRepository(newTestDB(t))

	require.NoError(t, repo.Set(ctx, "k", storedQuote{Price: "1"}, time.Hour))
	require.NoError(t, repo.Set(ctx, "k", storedQuote{Price: "2", Source: "metalpriceapi"}, time.Hour))

	var got storedQuote
	require.NoError(t, repo.Get(ctx, "k", &got))
	assert.Equal(t, "2", got.Price)
	assert.Equal(t, "metalpriceapi", got.Source)
}

func TestPriceCacheRepository_ExpiryAndPurge(t *testing.T) {
	ctx := context.Background()
	repo := NewPriceCacheRepository(newTestDB(t)).(*priceCacheRepository)

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return start }
	require.NoError(t, repo.Set(ctx, "short", storedQuote{Price: "1"}, time.Minute))
	require.NoError(t, repo.Set(ctx, "long", storedQuote{Price: "2"}, 24*time.Hour))

	repo.now = func() time.Time { return start.Add(2 * time.Minute) }
	var got storedQuote
	assert.ErrorIs(t, repo.Get(ctx, "short", &got), cache.ErrCacheMiss)
	require.NoError(t, repo.Get(ctx, "long", &got))

	n, err := repo.Purge(ctx, start.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestPriceCacheRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewPriceCacheRepository(newTestDB(t))

	require.NoError(t, repo.Set(ctx, "a", storedQuote{Price: "1"}, time.Hour))
	require.NoError(t, repo.Set(ctx, "b", storedQuote{Price: "2"}, time.Hour))
	require.NoError(t, repo.Delete(ctx, "a", "b"))
	require.NoError(t, repo.Delete(ctx))

	var got storedQuote
	assert.ErrorIs(t, repo.Get(ctx, "a", &got), cache.ErrCacheMiss)
	assert.ErrorIs(t, repo.Get(ctx, "b", &got), cache.ErrCacheMiss)
	assert.NoError(t, repo.Close())
}

func TestRequestCounterRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRequestCounterRepository(newTestDB(t))

	n, err := repo.Count(ctx, 2026, time.March)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, ok, err := repo.TryIncrement(ctx, 2026, time.March, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), n)

	n, ok, err = repo.TryIncrement(ctx, 2026, time.March, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), n)

	// at the limit the counter stays put
	n, ok, err = repo.TryIncrement(ctx, 2026, time.March, 2)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(2), n)

	// a new month starts from zero
	n, err = repo.Count(ctx, 2026, time.April)
	require.NoError(t, err)
	assert.Zero(t, n)

	n, ok, err = repo.TryIncrement(ctx, 2026, time.April, 2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), n)

	n, err = repo.Count(ctx, 2026, time.March)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestRequestCounterRepository_ZeroLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewRequestCounterRepository(newTestDB(t))

	n, ok, err := repo.TryIncrement(ctx, 2026, time.July, 0)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, n)
}

func TestRequestCounterRepository_ConcurrentIncrementsStopAtLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewRequestCounterRepository(newTestDB(t))

	var (
		wg      sync.WaitGroup
		granted atomic.Int32
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := repo.TryIncrement(ctx, 2026, time.May, 10)
			assert.NoError(t, err)
			if ok {
				granted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(10), granted.Load())
	n, err := repo.Count(ctx, 2026, time.May)
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
}
