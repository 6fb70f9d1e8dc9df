// Package cache is a read-through redis cache for catalog lookups.
// It degrades to a no-op when no redis address is configured, so the
// service runs without a cache in development.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/AGKL-Team/AGKL-Sales-backend/pkg/config"
	"github.com/go-redis/redis/v8"
)

var (
	client *redis.Client
	ttl    time.Duration
)

// Initialize connects to redis. An empty address leaves the cache
// disabled without error.
func Initialize(cfg *config.RedisConfig) error {
	if cfg.Addr == "" {
		return nil
	}

	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := c.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	client = c
	ttl = cfg.TTL
	return nil
}

// Enabled reports whether a redis connection is active
func Enabled() bool {
	return client != nil
}

// GetJSON loads a cached value into dest. Returns false on miss, cache
// disabled, or decode failure.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}

	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetJSON stores a value under the key with the configured TTL.
// Failures are ignored: the cache is an optimization, never a source
// of truth.
func SetJSON(ctx context.Context, key string, value interface{}) {
	if client == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// Invalidate removes every key matching the pattern
func Invalidate(ctx context.Context, pattern string) {
	if client == nil {
		return
	}

	iter := client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

// Close closes the redis connection
func Close() {
	if client != nil {
		client.Close()
	}
}
