package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"maison-gda/internal/domain"
)

const (
	brandsKey     = "catalog:brands"
	categoriesKey = "catalog:categories"
)

// TaxonomyCache keeps the brand and category listings as JSON in Redis
type TaxonomyCache struct {
	redis *RedisClient
	ttl   time.Duration
}

// NewTaxonomyCache creates a TaxonomyCache whose entries live for ttl
func NewTaxonomyCache(redis *RedisClient, ttl time.Duration) *TaxonomyCache {
	return &TaxonomyCache{redis: redis, ttl: ttl}
}

func (c *TaxonomyCache) GetBrands(ctx context.Context) ([]*domain.Brand, error) {
	var brands []*domain.Brand
	if err := c.get(ctx, brandsKey, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (c *TaxonomyCache) SetBrands(ctx context.Context, brands []*domain.Brand) error {
	return c.set(ctx, brandsKey, brands)
}

func (c *TaxonomyCache) GetCategories(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	if err := c.get(ctx, categoriesKey, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *TaxonomyCache) SetCategories(ctx context.Context, categories []*domain.Category) error {
	return c.set(ctx, categoriesKey, categories)
}

// Invalidate drops both listings
func (c *TaxonomyCache) Invalidate(ctx context.Context) error {
	if err := c.redis.Delete(ctx, brandsKey, categoriesKey); err != nil {
		return fmt.Errorf("failed to invalidate taxonomy cache: %w", err)
	}
	return nil
}

func (c *TaxonomyCache) get(ctx context.Context, key string, dest interface{}) error {
	data, err := c.redis.Get(ctx, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return nil
}

func (c *TaxonomyCache) set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	if err := c.redis.Set(ctx, key, data, c.ttl); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}
