package auth

import (
	"context"
	"sync"
	"time"
)

const defaultCacheTTL = 5 * time.Minute

// Cache stores user profiles between requests so providers that fetch them
// over the network do not do so on every page view.
type Cache interface {
	Get(ctx context.Context, userID string) (*User, bool)
	Set(ctx context.Context, user *User)
	Delete(ctx context.Context, userID string)
	Close() error
}

// MemoryCache is a process-local Cache with a background sweep of expired entries.
type MemoryCache struct {
	mu      sync.RWMutex
	data    map[string]*cacheEntry
	ttl     time.Duration
	cleanup *time.Ticker
	done    chan struct{}
	once    sync.Once
}

type cacheEntry struct {
	user      *User
	expiresAt time.Time
}

// NewMemoryCache creates a cache whose entries live for ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	cache := &MemoryCache{
		data:    make(map[string]*cacheEntry),
		ttl:     ttl,
		cleanup: time.NewTicker(ttl),
		done:    make(chan struct{}),
	}

	go cache.cleanupExpired()

	return cache
}

func (c *MemoryCache) Get(_ context.Context, userID string) (*User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[userID]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, false
	}

	u := *entry.user
	return &u, true
}

func (c *MemoryCache) Set(_ context.Context, user *User) {
	if user == nil || user.ID == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	u := *user
	c.data[user.ID] = &cacheEntry{
		user:      &u,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *MemoryCache) Delete(_ context.Context, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, userID)
}

// Close stops the sweeper. It is safe to call more than once.
func (c *MemoryCache) Close() error {
	c.once.Do(func() {
		c.cleanup.Stop()
		close(c.done)
	})
	return nil
}

func (c *MemoryCache) cleanupExpired() {
	for {
		select {
		case <-c.cleanup.C:
			c.mu.Lock()
			now := time.Now()
			for id, entry := range c.data {
				if now.After(entry.expiresAt) {
					delete(c.data, id)
				}
			}
			c.mu.Unlock()
		case <-c.done:
			return
		}
	}
}
