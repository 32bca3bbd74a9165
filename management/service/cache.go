package service

import (
	"context"
	"time"

	"taller/pkg/redis"
)

// PlateCache caches the encoded result of a public plate lookup.
type PlateCache interface {
	Get(ctx context.Context, plate string) ([]byte, bool, error)
	Set(ctx context.Context, plate string, data []byte) error
	Delete(ctx context.Context, plate string) error
}

const plateKeyPrefix = "taller:orders:plate:"

type redisPlateCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisPlateCache stores lookups in redis for ttl.
func NewRedisPlateCache(client *redis.Client, ttl time.Duration) PlateCache {
	return &redisPlateCache{client: client, ttl: ttl}
}

func (c *redisPlateCache) Get(ctx context.Context, plate string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, plateKeyPrefix+plate)
	if err != nil {
		if redis.IsNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (c *redisPlateCache) Set(ctx context.Context, plate string, data []byte) error {
	return c.client.SetWithExpire(ctx, plateKeyPrefix+plate, data, c.ttl)
}

func (c *redisPlateCache) Delete(ctx context.Context, plate string) error {
	return c.client.Del(ctx, plateKeyPrefix+plate)
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (noopCache) Set(context.Context, string, []byte) error         { return nil }
func (noopCache) Delete(context.Context, string) error              { return nil }
