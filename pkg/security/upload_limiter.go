package security

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// UploadLimiter enforces CV upload quotas with a redis sliding window:
// a per-IP limit per minute and a per-user limit per day.
type UploadLimiter struct {
	client       *goredis.Client
	maxPerMinute int
	maxPerDay    int
	now          func() time.Time
}

// KEYS[1] window key, ARGV limit, window seconds, now (unix), member.
// Returns 1 when the upload is allowed and recorded.
const uploadRateLimitScript = `
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

if redis.call('ZCARD', key) >= limit then
    return 0
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('EXPIRE', key, window)
return 1
`

// NewUploadLimiter defaults to 10 uploads/min per IP and 50/day per user.
// A nil client disables the limiter.
func NewUploadLimiter(client *goredis.Client, perMin, perDay int) *UploadLimiter {
	if perMin <= 0 {
		perMin = 10
	}
	if perDay <= 0 {
		perDay = 50
	}
	return &UploadLimiter{
		client:       client,
		maxPerMinute: perMin,
		maxPerDay:    perDay,
		now:          time.Now,
	}
}

// AllowUpload reports whether the upload may proceed and, if not, how many
// seconds to wait. Redis errors deny the upload.
func (ul *UploadLimiter) AllowUpload(ctx context.Context, ip, username string) (bool, int, error) {
	if ul == nil || ul.client == nil {
		return true, 0, nil
	}

	now := ul.now()
	member := fmt.Sprintf("%d", now.UnixNano())

	allowed, err := ul.checkLimit(ctx, "ratelimit:upload:ip:"+ip, ul.maxPerMinute, 60, now.Unix(), member)
	if err != nil {
		return false, 60, fmt.Errorf("upload rate limit check: %w", err)
	}
	if !allowed {
		return false, 60, nil
	}

	if username != "" {
		allowed, err = ul.checkLimit(ctx, "ratelimit:upload:user:"+username, ul.maxPerDay, 86400, now.Unix(), member)
		if err != nil {
			return false, 3600, fmt.Errorf("upload rate limit check: %w", err)
		}
		if !allowed {
			return false, 3600, nil
		}
	}
	return true, 0, nil
}

func (ul *UploadLimiter) checkLimit(ctx context.Context, key string, limit, window int, now int64, member string) (bool, error) {
	result, err := ul.client.Eval(ctx, uploadRateLimitScript, []string{key}, limit, window, now, member).Result()
	if err != nil {
		return false, err
	}
	allowed, ok := result.(int64)
	if !ok {
		return false, fmt.Errorf("unexpected result type %T from rate limit script", result)
	}
	return allowed == 1, nil
}
