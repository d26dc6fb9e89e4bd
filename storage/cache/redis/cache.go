// Package rediscache implements core.Cache on a Redis server.
package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/jamespares/chinaprof/core"
)

// KeyPrefix namespaces every key written by this application.
const KeyPrefix = "chinaprof:"

type Cache struct {
	client *redis.Client
}

var _ core.Cache = (*Cache)(nil)

func New(conf core.RedisConfig) *Cache {
	return NewWithClient(redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	}))
}

func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Ping(ctx context.Context) error {
	return errors.Wrap(c.client.Ping(ctx).Err(), "pinging redis")
}

func (c *Cache) Close() error {
	return c.client.Close()
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if key == "" {
		return core.ErrCacheKey
	}
	if value == nil {
		return core.ErrCacheNilVal
	}
	if ttl < 0 {
		ttl = 0
	}

	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrap(err, "encoding cache value")
	}
	return errors.Wrap(c.client.Set(ctx, KeyPrefix+key, data, ttl).Err(), "redis set")
}

func (c *Cache) Get(ctx context.Context, key string, dst interface{}) error {
	if key == "" {
		return core.ErrCacheKey
	}

	data, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return core.ErrCacheMiss
		}
		return errors.Wrap(err, "redis get")
	}
	return errors.Wrap(json.Unmarshal(data, dst), "decoding cache value")
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = KeyPrefix + key
	}
	return errors.Wrap(c.client.Del(ctx, prefixed...).Err(), "redis del")
}
