package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"recruitment-console/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "console:cache:"

// DefaultCacheTTL is used when Set is called with a zero ttl.
const DefaultCacheTTL = 5 * time.Minute

type redisCache struct {
	client *goredis.Client
}

func NewRedisCache(client *goredis.Client) domain.Cache {
	return &redisCache{client: client}
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, err := c.client.Get(ctx, cacheKeyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	return c.client.Set(ctx, cacheKeyPrefix+key, raw, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, cacheKeyPrefix+key).Err()
}

type cacheEntry struct {
	value     []byte
	expiresAt time.Time
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewMemoryCache is the in-process fallback. Values are stored as JSON so
// callers get copies, matching the redis behaviour.
func NewMemoryCache() domain.Cache {
	return &memoryCache{entries: make(map[string]cacheEntry), now: time.Now}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || !c.now().Before(entry.expiresAt) {
		return domain.ErrCacheMiss
	}
	return json.Unmarshal(entry.value, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value: %w", err)
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: raw, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}
