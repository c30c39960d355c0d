package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// PointCacheTTL is the lifetime of a cached point. Points are immutable
	// once registered, so the TTL only bounds memory use.
	PointCacheTTL = 24 * time.Hour

	pointCacheKeyPrefix = "point"
)

// CachedPoint is the denormalized point read model, items included.
type CachedPoint struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Whatsapp  string       `json:"whatsapp"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	City      string       `json:"city"`
	UF        string       `json:"uf"`
	Image     string       `json:"image,omitempty"`
	Items     []CachedItem `json:"items"`
}

// PointCache reads and writes point read models. Key format: "point:{id}".
type PointCache struct {
	client *RedisClient
}

// NewPointCache creates a PointCache backed by r.
func NewPointCache(r *RedisClient) *PointCache {
	return &PointCache{client: r}
}

// Get returns the cached point or ErrMiss.
func (c *PointCache) Get(ctx context.Context, id int64) (*CachedPoint, error) {
	var p CachedPoint
	if err := c.client.getJSON(ctx, c.key(id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Set writes p with PointCacheTTL.
func (c *PointCache) Set(ctx context.Context, p *CachedPoint) error {
	return c.client.setJSON(ctx, c.key(p.ID), p, PointCacheTTL)
}

// Delete removes a cached point.
func (c *PointCache) Delete(ctx context.Context, id int64) error {
	if err := c.client.Client().Del(ctx, c.key(id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

func (c *PointCache) key(id int64) string {
	return fmt.Sprintf("%s:%d", pointCacheKeyPrefix, id)
}
