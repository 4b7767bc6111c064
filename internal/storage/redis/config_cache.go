package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ppc-guardrail-lab/internal/domain"
	"ppc-guardrail-lab/internal/storage"
)

// DefaultTTL bounds how stale a cached config may get between writes.
const DefaultTTL = 5 * time.Minute

const keyPrefix = "product_config:"

// kv is the subset of Redis commands the cache needs. Kept small so tests
// can swap in a map-backed fake.
type kv interface {
	// Get returns ErrCacheMiss when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// ErrCacheMiss signals an absent key.
var ErrCacheMiss = errors.New("cache miss")

// redisKV adapts go-redis to the kv interface.
type redisKV struct {
	client *redis.Client
}

func (r *redisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return val, err
}

func (r *redisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisKV) Del(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

// ConfigCache is a read-through cache in front of a ProductConfigStore.
// Reads hit Redis first; writes go to the inner store and invalidate the
// cached entry. Cache failures degrade to the inner store rather than
// failing the read.
type ConfigCache struct {
	inner storage.ProductConfigStore
	kv    kv
	ttl   time.Duration
}

// NewConfigCache wraps the inner store with a Redis-backed cache.
func NewConfigCache(inner storage.ProductConfigStore, addr string) *ConfigCache {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &ConfigCache{
		inner: inner,
		kv:    &redisKV{client: client},
		ttl:   DefaultTTL,
	}
}

// Compile-time interface check.
var _ storage.ProductConfigStore = (*ConfigCache)(nil)

// Insert delegates to the inner store and primes the cache on success.
func (c *ConfigCache) Insert(ctx context.Context, cfg *domain.ProductConfig) error {
	if err := c.inner.Insert(ctx, cfg); err != nil {
		return err
	}
	c.prime(ctx, cfg)
	return nil
}

// GetByASIN reads through the cache.
func (c *ConfigCache) GetByASIN(ctx context.Context, asin string) (*domain.ProductConfig, error) {
	if val, err := c.kv.Get(ctx, keyPrefix+asin); err == nil {
		var cfg domain.ProductConfig
		if err := json.Unmarshal([]byte(val), &cfg); err == nil {
			return &cfg, nil
		}
		// Corrupt entry; drop it and fall through to the inner store
		_ = c.kv.Del(ctx, keyPrefix+asin)
	}

	cfg, err := c.inner.GetByASIN(ctx, asin)
	if err != nil {
		return nil, err
	}
	c.prime(ctx, cfg)
	return cfg, nil
}

// List always reads the inner store; full scans are not cached.
func (c *ConfigCache) List(ctx context.Context) ([]*domain.ProductConfig, error) {
	return c.inner.List(ctx)
}

// ApplyUpdates writes to the inner store and invalidates the cached entry.
func (c *ConfigCache) ApplyUpdates(ctx context.Context, asin string, updates *domain.ConfigUpdates) error {
	if err := c.inner.ApplyUpdates(ctx, asin, updates); err != nil {
		return err
	}
	if err := c.kv.Del(ctx, keyPrefix+asin); err != nil {
		return fmt.Errorf("invalidate cached config %s: %w", asin, err)
	}
	return nil
}

// prime stores the config in the cache; failures are ignored.
func (c *ConfigCache) prime(ctx context.Context, cfg *domain.ProductConfig) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return
	}
	_ = c.kv.Set(ctx, keyPrefix+cfg.ASIN, string(data), c.ttl)
}
