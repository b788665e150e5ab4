package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cyberfanta/shopping-exercise/internal/domain"
	"github.com/redis/go-redis/v9"
)

const categoriesKey = "catalog:categories:active"

// CategoryCache keeps the active category list in Redis.
type CategoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCategoryCache(client *redis.Client, ttl time.Duration) *CategoryCache {
	return &CategoryCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *CategoryCache) Get(ctx context.Context) ([]domain.Category, bool, error) {
	data, err := c.client.Get(ctx, categoriesKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("client.Get: %w", err)
	}

	var categories []domain.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, false, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return categories, true, nil
}

func (c *CategoryCache) Set(ctx context.Context, categories []domain.Category) error {
	if categories == nil {
		categories = []domain.Category{}
	}

	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if err := c.client.Set(ctx, categoriesKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("client.Set: %w", err)
	}

	return nil
}

func (c *CategoryCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, categoriesKey).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}
	return nil
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("client.Ping: %w", err)
	}

	return client, nil
}
