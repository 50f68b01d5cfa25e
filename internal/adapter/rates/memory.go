package rates

import (
	"context"
	"sync"
	"time"

	"github.com/buddybudget/networth-backend/internal/domain"
)

// MemoryCache is an in-process Cache, used in development and tests.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	rate      *domain.ExchangeRate
	expiresAt time.Time
}

// NewMemoryCache creates a new MemoryCache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
	}
}

// Get returns the cached rate for key, or (nil, nil) when absent or expired.
func (c *MemoryCache) Get(_ context.Context, key string) (*domain.ExchangeRate, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.rate, nil
}

// Set stores rate under key for ttl.
func (c *MemoryCache) Set(_ context.Context, key string, rate *domain.ExchangeRate, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{
		rate:      rate,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}
