// Package capturelock keeps concurrent captures of one payment order apart.
package capturelock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/borport/borport_backend/internal/apperrors"
	"github.com/borport/borport_backend/internal/core/ports/gateways"
	"github.com/borport/borport_backend/internal/utils"
	"github.com/go-redis/redis/v8"
)

const keyPrefix = "borport:lock:"

// releaseScript deletes the key only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard is a SET NX lock with a per-holder token.
type RedisGuard struct {
	client *redis.Client
	logger *slog.Logger
}

var _ gateways.CaptureGuard = (*RedisGuard)(nil)

// NewRedisGuard parses a redis:// URL or a bare host:port address.
func NewRedisGuard(redisURL string, logger *slog.Logger) (*RedisGuard, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		opts = &redis.Options{Addr: redisURL}
	}
	return &RedisGuard{client: redis.NewClient(opts), logger: logger}, nil
}

// NewRedisGuardFromClient wraps an existing client.
func NewRedisGuardFromClient(client *redis.Client, logger *slog.Logger) *RedisGuard {
	return &RedisGuard{client: client, logger: logger}
}

func (g *RedisGuard) Ping(ctx context.Context) error {
	return g.client.Ping(ctx).Err()
}

func (g *RedisGuard) Close() error {
	return g.client.Close()
}

func (g *RedisGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error) {
	token, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate lock token: %w", err)
	}
	redisKey := keyPrefix + key

	ok, err := g.client.SetNX(ctx, redisKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire capture lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: a capture for this order is already in progress", apperrors.ErrConflict)
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			// The request context may already be cancelled.
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, g.client, []string{redisKey}, token).Err(); err != nil && err != redis.Nil {
				g.logger.Warn("Failed to release capture lock", slog.String("key", redisKey), slog.String("error", err.Error()))
			}
		})
	}
	return release, nil
}

// LocalGuard is an in-process guard for single-instance deployments without Redis.
type LocalGuard struct {
	mu    sync.Mutex
	held  map[string]time.Time
	clock func() time.Time
}

var _ gateways.CaptureGuard = (*LocalGuard)(nil)

func NewLocalGuard() *LocalGuard {
	return &LocalGuard{held: make(map[string]time.Time), clock: time.Now}
}

func (g *LocalGuard) Acquire(_ context.Context, key string, ttl time.Duration) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock()
	if expires, ok := g.held[key]; ok && now.Before(expires) {
		return nil, fmt.Errorf("%w: a capture for this order is already in progress", apperrors.ErrConflict)
	}
	expires := now.Add(ttl)
	g.held[key] = expires

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			if g.held[key] == expires {
				delete(g.held, key)
			}
		})
	}, nil
}
