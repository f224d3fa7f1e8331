package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"guestbook/internal/config"
	"guestbook/internal/model"
	"guestbook/internal/repository"
)

const entryPageKeyPrefix = "guestbook:entries:" // page key: guestbook:entries:{limit}:{offset}

// RedisEntryCache is a Redis-backed EntryCache. Pages are stored as JSON
// under prefixed keys with a TTL, so even a missed invalidation heals itself.
type RedisEntryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisEntryCache connects to Redis and verifies the connection.
func NewRedisEntryCache(cfg config.RedisConfig) (*RedisEntryCache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis addr is required")
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

	ttl := time.Duration(cfg.TTLSec) * time.Second
	if ttl <= 0 {
		ttl = time.Minute
	}

	return &RedisEntryCache{client: client, ttl: ttl}, nil
}

// NewRedisEntryCacheWithClient wraps an existing client. Used by tests.
func NewRedisEntryCacheWithClient(client *redis.Client, ttl time.Duration) *RedisEntryCache {
	return &RedisEntryCache{client: client, ttl: ttl}
}

var _ EntryCache = (*RedisEntryCache)(nil)

type cachedPage struct {
	Items []model.Entry `json:"items"`
	Total int           `json:"total"`
}

func pageKey(limit, offset int) string {
	return fmt.Sprintf("%s%d:%d", entryPageKeyPrefix, limit, offset)
}

// GetPage returns the cached page for (limit, offset), or ErrCacheMiss.
func (c *RedisEntryCache) GetPage(ctx context.Context, limit, offset int) (*repository.PageResult[model.Entry], error) {
	data, err := c.client.Get(ctx, pageKey(limit, offset)).Bytes()
	if err == redis.Nil {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached page: %w", err)
	}

	var p cachedPage
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached page: %w", err)
	}
	return &repository.PageResult[model.Entry]{Items: p.Items, Total: p.Total}, nil
}

// SetPage stores a page for (limit, offset) with the configured TTL.
func (c *RedisEntryCache) SetPage(ctx context.Context, limit, offset int, page *repository.PageResult[model.Entry]) error {
	data, err := json.Marshal(cachedPage{Items: page.Items, Total: page.Total})
	if err != nil {
		return fmt.Errorf("failed to marshal page: %w", err)
	}
	if err := c.client.Set(ctx, pageKey(limit, offset), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cached page: %w", err)
	}
	return nil
}

// Invalidate deletes every cached page under the entries prefix.
func (c *RedisEntryCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, entryPageKeyPrefix+"*", 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached pages: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cached pages: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (c *RedisEntryCache) Close() error {
	return c.client.Close()
}
