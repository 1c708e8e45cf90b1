package cache

import (
	"context"
	"encoding/json"
	"time"
)

// LayeredStore keeps a small in-process L1 in front of a shared L2.
type LayeredStore struct {
	mem   *MemoryStore
	l2    Store
	memTT time.Duration
}

func NewLayeredStore(l2 Store, opts ...LayeredOption) *LayeredStore {
	cfg := &LayeredConfig{
		MemoryMaxSize: 1000,
		MemoryTTL:     time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &LayeredStore{
		mem:   NewMemoryStore(WithMemoryMaxSize(cfg.MemoryMaxSize)),
		l2:    l2,
		memTT: cfg.MemoryTTL,
	}
}

// Set writes through: L1 first, then L2. An L2 failure is returned, but this
// process still serves the value from L1 until it expires there.
func (lc *LayeredStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	_ = lc.mem.Set(ctx, key, value, lc.l1TTL(expiration))
	return lc.l2.Set(ctx, key, value, expiration)
}

func (lc *LayeredStore) Get(ctx context.Context, key string, dest interface{}) error {
	if err := lc.mem.Get(ctx, key, dest); err == nil {
		return nil
	}

	var raw json.RawMessage
	if err := lc.l2.Get(ctx, key, &raw); err != nil {
		return err
	}
	_ = lc.mem.Set(ctx, key, raw, lc.memTT)
	return json.Unmarshal(raw, dest)
}

func (lc *LayeredStore) Delete(ctx context.Context, keys ...string) error {
	_ = lc.mem.Delete(ctx, keys...)
	return lc.l2.Delete(ctx, keys...)
}

func (lc *LayeredStore) Close() error {
	_ = lc.mem.Close()
	return lc.l2.Close()
}

func (lc *LayeredStore) l1TTL(expiration time.Duration) time.Duration {
	if expiration > 0 && expiration < lc.memTT {
		return expiration
	}
	return lc.memTT
}
