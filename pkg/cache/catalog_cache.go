package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// CatalogCacheTTL bounds how long an admin change to the catalog can stay invisible.
	CatalogCacheTTL = time.Hour

	catalogCacheKey = "items:catalog"
)

// CachedItem is the item read model. Image holds the stored filename, not a
// URL, so a media base change never serves stale URLs.
type CachedItem struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Image string `json:"image"`
}

// CatalogCache stores the whole item catalog under a single key.
type CatalogCache struct {
	client *RedisClient
}

// NewCatalogCache creates a CatalogCache backed by r.
func NewCatalogCache(r *RedisClient) *CatalogCache {
	return &CatalogCache{client: r}
}

// Get returns the cached catalog or ErrMiss.
func (c *CatalogCache) Get(ctx context.Context) ([]CachedItem, error) {
	var items []CachedItem
	if err := c.client.getJSON(ctx, catalogCacheKey, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Set replaces the cached catalog.
func (c *CatalogCache) Set(ctx context.Context, items []CachedItem) error {
	return c.client.setJSON(ctx, catalogCacheKey, items, CatalogCacheTTL)
}

// Invalidate drops the cached catalog.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	if err := c.client.Client().Del(ctx, catalogCacheKey).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}
