package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockKeyPrefix = "padel:lock:tournament:"
	lockRetry     = 50 * time.Millisecond
)

// releaseScript deletes the lock only while it still holds our token, so an
// expired lock taken over by another process is left alone.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`)

// redisLocker extends the per-tournament lock across processes sharing a Redis.
type redisLocker struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisLocker(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) Locker {
	return &redisLocker{client: client, ttl: ttl, logger: logger}
}

func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	redisKey := lockKeyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", redisKey, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetry):
		}
	}

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := l.release(ctx, redisKey, token); err != nil {
			// The lock still expires after ttl.
			l.logger.Warn("failed to release tournament lock", "key", redisKey, "error", err)
		}
	}, nil
}

func (l *redisLocker) release(ctx context.Context, redisKey, token string) error {
	return releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err()
}
