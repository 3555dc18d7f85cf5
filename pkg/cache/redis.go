package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	bwerrors "github.com/matzehuels/bwcolor/pkg/errors"
)

// DefaultRedisPrefix namespaces every key a RedisCache writes.
const DefaultRedisPrefix = "bwcolor:"

// RedisCache stores entries in Redis using native key expiry.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache connects to the server at url (redis://host:port/db) and
// verifies the connection with PING.
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, bwerrors.Wrap(bwerrors.ErrCodeInvalidConfig, err, "redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, bwerrors.Wrap(bwerrors.ErrCodeCacheUnavailable, err, "redis %s", opts.Addr)
	}
	return NewRedisCacheFromClient(client, DefaultRedisPrefix), nil
}

// NewRedisCacheFromClient wraps an existing client. The cache takes
// ownership and closes the client in Close.
func NewRedisCacheFromClient(client *redis.Client, prefix string) *RedisCache {
	return &RedisCache{client: client, prefix: prefix}
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, redisError(err)
	}
	return data, true, nil
}

// Set stores a value, retrying transient network failures.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return RetryWithBackoff(ctx, func() error {
		return redisError(c.client.Set(ctx, c.prefix+key, data, ttl).Err())
	})
}

// Delete removes a value from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return redisError(c.client.Del(ctx, c.prefix+key).Err())
}

// Clear deletes every key under the cache prefix.
func (c *RedisCache) Clear(ctx context.Context) (int, error) {
	removed := 0
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 256).Iterator()
	for iter.Next(ctx) {
		n, err := c.client.Del(ctx, iter.Val()).Result()
		if err != nil {
			return removed, redisError(err)
		}
		removed += int(n)
	}
	return removed, redisError(iter.Err())
}

// Close closes the client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func redisError(err error) error {
	if err == nil {
		return nil
	}
	var ne net.Error
	if errors.As(err, &ne) {
		return Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	if errors.Is(err, redis.ErrClosed) {
		return ErrClosed
	}
	return err
}

var (
	_ Cache   = (*RedisCache)(nil)
	_ Clearer = (*RedisCache)(nil)
)
