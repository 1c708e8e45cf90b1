package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tropicaldog17/zakat/internal/cache"
	"github.com/tropicaldog17/zakat/internal/db"
	"github.com/tropicaldog17/zakat/internal/models"
)

type priceCacheRepository struct {
	db  *db.DB
	now func() time.Time
}

// NewPriceCacheRepository creates a cache.Store over the cached_prices table.
func NewPriceCacheRepository(database *db.DB) PriceCacheRepository {
	return &priceCacheRepository{db: database, now: time.Now}
}

func (r *priceCacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	var entry models.CachedEntry
	err := r.db.WithContext(ctx).Where("key = ?", key).Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cache.ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("failed to get cached entry: %w", err)
	}
	if r.now().After(entry.ExpiresAt) {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal([]byte(entry.Payload), dest)
}

func (r *priceCacheRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	now := r.now()
	if expiration <= 0 {
		expiration = 7 * 24 * time.Hour
	}
	entry := models.CachedEntry{
		ID:        uuid.NewString(),
		Key:       key,
		Payload:   string(payload),
		ExpiresAt: now.Add(expiration),
		UpdatedAt: now,
	}
	err = r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "expires_at", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to cache entry: %w", err)
	}
	return nil
}

func (r *priceCacheRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Where("key IN ?", keys).Delete(&models.CachedEntry{}).Error; err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	return nil
}

func (r *priceCacheRepository) Purge(ctx context.Context, before time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&models.CachedEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Close is a no-op; the connection belongs to the caller.
func (r *priceCacheRepository) Close() error { return nil }
