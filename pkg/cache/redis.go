package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements Service using Redis.
type RedisCache struct {
	client *redis.Client
	prefix string
}

// RedisOption configures RedisCache.
type RedisOption func(*redisConfig)

type redisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// WithRedisAddr sets the Redis address.
func WithRedisAddr(addr string) RedisOption {
	return func(c *redisConfig) {
		c.Addr = addr
	}
}

// WithRedisAuth sets password and database number.
func WithRedisAuth(password string, db int) RedisOption {
	return func(c *redisConfig) {
		c.Password = password
		c.DB = db
	}
}

// WithRedisPrefix sets the key prefix.
func WithRedisPrefix(prefix string) RedisOption {
	return func(c *redisConfig) {
		c.Prefix = prefix
	}
}

// NewRedisCache creates a Redis cache client and verifies connectivity.
func NewRedisCache(opts ...RedisOption) (*RedisCache, error) {
	cfg := &redisConfig{
		Addr:   "localhost:6379",
		Prefix: "finsight",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisCache{client: client, prefix: cfg.Prefix}, nil
}

func (c *RedisCache) wrapKey(key string) string {
	return c.prefix + ":" + key
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.wrapKey(key), data, expiration).Err()
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.client.Get(ctx, c.wrapKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return unmarshal(data, dest)
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	wrapped := make([]string, len(keys))
	for i, k := range keys {
		wrapped[i] = c.wrapKey(k)
	}
	return c.client.Del(ctx, wrapped...).Err()
}

func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, c.wrapKey(key)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
