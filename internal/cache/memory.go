package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryItem struct {
	data     []byte
	expireAt time.Time
	access   time.Time
}

// MemoryStore is an in-process Store with TTL expiry and LRU eviction.
type MemoryStore struct {
	mu      sync.Mutex
	data    map[string]*memoryItem
	maxSize int
	now     func() time.Time
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	cfg := &MemoryConfig{
		MaxSize:         1000,
		CleanupInterval: 5 * time.Minute,
		Now:             time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = 1000
	}

	ms := &MemoryStore{
		data:    make(map[string]*memoryItem),
		maxSize: cfg.MaxSize,
		now:     cfg.Now,
		done:    make(chan struct{}),
	}
	if cfg.CleanupInterval > 0 {
		ms.ticker = time.NewTicker(cfg.CleanupInterval)
		go ms.cleanupExpired()
	}
	return ms
}

func (ms *MemoryStore) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := ms.now()
	if _, exists := ms.data[key]; !exists && len(ms.data) >= ms.maxSize {
		ms.evictLRU()
	}
	if expiration <= 0 {
		expiration = 7 * 24 * time.Hour
	}
	ms.data[key] = &memoryItem{data: data, expireAt: now.Add(expiration), access: now}
	return nil
}

func (ms *MemoryStore) Get(_ context.Context, key string, dest interface{}) error {
	ms.mu.Lock()
	item, ok := ms.data[key]
	now := ms.now()
	if !ok || now.After(item.expireAt) {
		if ok {
			delete(ms.data, key)
		}
		ms.mu.Unlock()
		return ErrCacheMiss
	}
	item.access = now
	data := item.data
	ms.mu.Unlock()

	return json.Unmarshal(data, dest)
}

func (ms *MemoryStore) Delete(_ context.Context, keys ...string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for _, key := range keys {
		delete(ms.data, key)
	}
	return nil
}

// Len returns the number of keys held, expired or not.
func (ms *MemoryStore) Len() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.data)
}

func (ms *MemoryStore) evictLRU() {
	var oldestKey string
	var oldest time.Time
	for key, item := range ms.data {
		if oldestKey == "" || item.access.Before(oldest) {
			oldestKey, oldest = key, item.access
		}
	}
	if oldestKey != "" {
		delete(ms.data, oldestKey)
	}
}

func (ms *MemoryStore) cleanupExpired() {
	for {
		select {
		case <-ms.done:
			return
		case <-ms.ticker.C:
			ms.mu.Lock()
			now := ms.now()
			for key, item := range ms.data {
				if now.After(item.expireAt) {
					delete(ms.data, key)
				}
			}
			ms.mu.Unlock()
		}
	}
}

// Close stops the sweeper.
func (ms *MemoryStore) Close() error {
	ms.once.Do(func() {
		if ms.ticker != nil {
			ms.ticker.Stop()
		}
		close(ms.done)
	})
	return nil
}
