// Copyright 2026 The Taller Authors, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package redis

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	rdb *redis.Client
}

type ClientConfig struct {
	Addr     string
	Password string
	DB       int

	// MaxWait bounds how long NewClient keeps retrying the first ping.
	// Zero means a single attempt.
	MaxWait time.Duration
}

// NewClient connects and pings the server, retrying with exponential
// backoff for up to cfg.MaxWait.
func NewClient(ctx context.Context, cfg *ClientConfig) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := ping(ctx, rdb, cfg.MaxWait); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return &Client{rdb: rdb}, nil
}

func ping(ctx context.Context, rdb *redis.Client, maxWait time.Duration) error {
	expback := backoff.NewExponentialBackOff()
	expback.InitialInterval = 200 * time.Millisecond
	expback.MaxInterval = 5 * time.Second
	expback.MaxElapsedTime = 0 // v4 defaults to 15m; v5 imposes no elapsed limit

	deadline := time.Now().Add(maxWait)
	for {
		err := rdb.Ping(ctx).Err()
		if err == nil {
			return nil
		}

		wait := expback.NextBackOff()
		if wait == backoff.Stop || time.Now().Add(wait).After(deadline) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// Get returns the value of the key. A missing key yields an error for
// which IsNil reports true.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	return c.rdb.Get(ctx, key).Bytes()
}

func (c *Client) SetWithExpire(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

func (c *Client) Del(ctx context.Context, key string) error {
	return c.rdb.Del(ctx, key).Err()
}

// IsNil reports whether err means the key does not exist.
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
