package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheUnavailable is returned when the Redis server does not answer.
var ErrCacheUnavailable = errors.New("auth: profile cache unavailable")

// RedisCache shares cached profiles between server instances.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects to the Redis instance at url (redis://...) and
// verifies it answers a ping within two seconds.
func NewRedisCache(url string, ttl time.Duration) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: ping: %w", ErrCacheUnavailable, err)
	}

	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &RedisCache{
		client: client,
		prefix: "auth:user:",
		ttl:    ttl,
	}, nil
}

func (r *RedisCache) key(userID string) string {
	return r.prefix + userID
}

// Get treats every Redis failure as a miss; the provider then asks upstream.
func (r *RedisCache) Get(ctx context.Context, userID string) (*User, bool) {
	val, err := r.client.Get(ctx, r.key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("redis cache get failed", "error", err, "user_id", userID)
		return nil, false
	}

	var u User
	if err := json.Unmarshal(val, &u); err != nil {
		slog.Warn("redis cache entry unreadable", "error", err, "user_id", userID)
		return nil, false
	}
	return &u, true
}

func (r *RedisCache) Set(ctx context.Context, user *User) {
	if user == nil || user.ID == "" {
		return
	}

	data, err := json.Marshal(user)
	if err != nil {
		slog.Warn("redis cache marshal failed", "error", err, "user_id", user.ID)
		return
	}

	if err := r.client.Set(ctx, r.key(user.ID), data, r.ttl).Err(); err != nil {
		slog.Warn("redis cache set failed", "error", err, "user_id", user.ID)
	}
}

func (r *RedisCache) Delete(ctx context.Context, userID string) {
	if err := r.client.Del(ctx, r.key(userID)).Err(); err != nil {
		slog.Warn("redis cache delete failed", "error", err, "user_id", userID)
	}
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
