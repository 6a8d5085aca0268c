package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"recruitment-console/pkg/apperror"
	"recruitment-console/pkg/logger"
	"recruitment-console/pkg/redis"
	"recruitment-console/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// RateLimitConfig holds configuration for rate limiting
type RateLimitConfig struct {
	// Requests per window
	Limit int
	// Time window duration
	Window time.Duration
	// Custom key extractor (default: IP-based)
	KeyFunc func(*gin.Context) string
	// Key prefix for Redis
	KeyPrefix string
	// Whether to fail closed (reject) when Redis is unavailable
	FailClosed bool
	// Audit receives rate_limit_triggered events; may be nil
	Audit *security.AuditLogger
	// Redis overrides the shared client; nil uses redis.Client()
	Redis *goredis.Client
}

// rateLimitEntry tracks request count for a key (in-memory fallback)
type rateLimitEntry struct {
	count   int
	resetAt time.Time
	mu      sync.Mutex
}

// Lua script for atomic increment with TTL on first set
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: [current_count, ttl_remaining]
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

func clientIPKey(c *gin.Context) string {
	return c.ClientIP()
}

// GlobalRateLimitConfig covers every console route.
func GlobalRateLimitConfig(limit int, window time.Duration, audit *security.AuditLogger) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:ip:",
		KeyFunc:   clientIPKey,
		Audit:     audit,
	}
}

// LoginRateLimitConfig is the strict limit for the login and callback routes.
func LoginRateLimitConfig(limit int, window time.Duration, audit *security.AuditLogger) RateLimitConfig {
	return RateLimitConfig{
		Limit:      limit,
		Window:     window,
		KeyPrefix:  "rl:login:",
		FailClosed: true,
		KeyFunc:    clientIPKey,
		Audit:      audit,
	}
}

// UploadRateLimitConfig applies to candidate form submissions, keyed by user
// when one is signed in.
func UploadRateLimitConfig(limit int, window time.Duration, audit *security.AuditLogger) RateLimitConfig {
	return RateLimitConfig{
		Limit:     limit,
		Window:    window,
		KeyPrefix: "rl:upload:",
		KeyFunc: func(c *gin.Context) string {
			if identity, ok := CurrentIdentity(c); ok {
				return "user:" + identity.Username
			}
			return c.ClientIP()
		},
		Audit: audit,
	}
}

// RateLimitMiddleware creates a rate limiting middleware with the given config.
// Uses Redis when available, falls back to in-memory when not.
func RateLimitMiddleware(config RateLimitConfig) gin.HandlerFunc {
	if config.KeyFunc == nil {
		config.KeyFunc = clientIPKey
	}
	store := &sync.Map{}
	go cleanupLoop(store)

	return func(c *gin.Context) {
		fullKey := config.KeyPrefix + config.KeyFunc(c)
		now := time.Now()

		var count int
		var resetAt time.Time

		client := config.Redis
		if client == nil {
			client = redis.Client()
		}
		if client != nil {
			var err error
			count, resetAt, err = checkRateLimitRedis(c.Request.Context(), client, fullKey, config)
			if err != nil {
				logger.Log.Warn("rate limit redis check failed", "key_prefix", config.KeyPrefix, "error", err)
				if config.FailClosed {
					_ = c.Error(apperror.New(http.StatusServiceUnavailable, "Service temporarily unavailable. Please try again.", err))
					c.Abort()
					return
				}
				count, resetAt = checkRateLimitInMemory(store, fullKey, config, now)
			}
		} else {
			count, resetAt = checkRateLimitInMemory(store, fullKey, config, now)
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Limit))
		c.Header("X-RateLimit-Reset", resetAt.Format(time.RFC3339))

		if count > config.Limit {
			retryAfter := int(time.Until(resetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(retryAfter))

			config.Audit.LogRateLimitTriggered(c.Request.Context(), c.Request.URL.Path)

			_ = c.Error(apperror.New(http.StatusTooManyRequests, "Too many requests. Please try again later.", nil))
			c.Abort()
			return
		}

		remaining := config.Limit - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		c.Next()
	}
}

// cleanupLoop drops expired in-memory entries. It lives for the process.
func cleanupLoop(store *sync.Map) {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		now := time.Now()
		store.Range(func(key, value interface{}) bool {
			entry := value.(*rateLimitEntry)
			entry.mu.Lock()
			if now.After(entry.resetAt) {
				store.Delete(key)
			}
			entry.mu.Unlock()
			return true
		})
	}
}

// checkRateLimitRedis checks rate limit using Redis with atomic Lua script
func checkRateLimitRedis(ctx context.Context, client *goredis.Client, key string, config RateLimitConfig) (int, time.Time, error) {
	ttlSeconds := int(config.Window.Seconds())

	result, err := client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return 0, time.Time{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)

	return int(count), time.Now().Add(time.Duration(ttl) * time.Second), nil
}

// checkRateLimitInMemory checks rate limit using in-memory store (fallback)
func checkRateLimitInMemory(store *sync.Map, key string, config RateLimitConfig, now time.Time) (int, time.Time) {
	entryI, _ := store.LoadOrStore(key, &rateLimitEntry{
		resetAt: now.Add(config.Window),
	})
	entry := entryI.(*rateLimitEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if now.After(entry.resetAt) {
		entry.count = 0
		entry.resetAt = now.Add(config.Window)
	}
	entry.count++

	return entry.count, entry.resetAt
}
