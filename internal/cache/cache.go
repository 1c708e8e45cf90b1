// Package cache provides the key/value stores price and exchange-rate quotes
// are kept in. Values are stored as JSON so a reader always gets its own copy.
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Store is implemented by every backend.
type Store interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	// Get decodes the stored value into dest or returns ErrCacheMiss.
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// IsMiss reports whether err means the key was absent or expired.
func IsMiss(err error) bool {
	return errors.Is(err, ErrCacheMiss)
}
