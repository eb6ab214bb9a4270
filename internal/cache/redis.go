package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/rentgrid/car-rental-api/internal/config"
)

type Client struct {
	rdb *redis.Client
}

func NewClient(cfg *config.Config) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

func (c *Client) Get(ctx context.Context, key string) (string, error) {
	return c.rdb.Get(ctx, key).Result()
}

// IsMiss reports whether a Get error just means the key is absent.
func IsMiss(err error) bool {
	return err == redis.Nil
}

func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return c.rdb.Set(ctx, key, value, expiration).Err()
}

func (c *Client) Delete(ctx context.Context, keys ...string) error {
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *Client) Close() error {
	return c.rdb.Close()
}

// --------------------------------------------------
// Dashboard stats
// --------------------------------------------------

func StatsKey(tenantID string) string {
	return fmt.Sprintf("dashboard:stats:%s", tenantID)
}

func (c *Client) GetStats(ctx context.Context, tenantID string) (string, error) {
	return c.Get(ctx, StatsKey(tenantID))
}

func (c *Client) SetStats(ctx context.Context, tenantID, payload string, ttl time.Duration) error {
	return c.Set(ctx, StatsKey(tenantID), payload, ttl)
}

func (c *Client) InvalidateStats(ctx context.Context, tenantID string) error {
	return c.Delete(ctx, StatsKey(tenantID))
}
