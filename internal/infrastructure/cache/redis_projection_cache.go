package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/edusabi/mobileFacul/internal/domain/sale"
	"github.com/edusabi/mobileFacul/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "pos:projection:"

// RedisProjectionCache keeps composed sale projections in Redis as JSON.
// Every instance of the service sharing the Redis database sees the same projections.
type RedisProjectionCache struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisProjectionCache connects to Redis and verifies the connection
func NewRedisProjectionCache(ctx context.Context, cfg RedisConfig, ttl time.Duration) (*RedisProjectionCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisProjectionCacheWithClient(client, "", ttl), nil
}

// NewRedisProjectionCacheWithClient creates a cache over an existing client.
// A non-positive ttl keeps projections until they are deleted.
func NewRedisProjectionCacheWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisProjectionCache {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	if ttl < 0 {
		ttl = 0
	}
	return &RedisProjectionCache{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// Put stores p under its sale id, replacing any previous projection
func (c *RedisProjectionCache) Put(ctx context.Context, p *sale.Projection) error {
	if p == nil {
		return shared.ErrInvalidInput
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal projection failed: %w", err)
	}
	if err := c.client.Set(ctx, c.key(p.SaleID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Get returns the projection of saleID or shared.ErrNotFound on a miss
func (c *RedisProjectionCache) Get(ctx context.Context, saleID int64) (*sale.Projection, error) {
	data, err := c.client.Get(ctx, c.key(saleID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var p sale.Projection
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("unmarshal projection failed: %w", err)
	}
	return &p, nil
}

// Delete removes the projection of saleID. Deleting a missing key is not an error.
func (c *RedisProjectionCache) Delete(ctx context.Context, saleID int64) error {
	if err := c.client.Del(ctx, c.key(saleID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

// Ping checks the Redis connection
func (c *RedisProjectionCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client
func (c *RedisProjectionCache) Close() error {
	return c.client.Close()
}

func (c *RedisProjectionCache) key(saleID int64) string {
	return c.keyPrefix + strconv.FormatInt(saleID, 10)
}

var _ ProjectionCache = (*RedisProjectionCache)(nil)
