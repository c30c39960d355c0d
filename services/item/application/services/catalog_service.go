package services

import (
	"context"
	"errors"
	"fmt"

	pkgcache "github.com/ecoleta/ecoleta/pkg/cache"
	"github.com/ecoleta/ecoleta/pkg/logger"
	"github.com/ecoleta/ecoleta/services/item/domain/models"
	"github.com/ecoleta/ecoleta/services/item/domain/repositories"
)

// CatalogCache holds the whole catalog as one cached value.
type CatalogCache interface {
	Get(ctx context.Context) ([]pkgcache.CachedItem, error)
	Set(ctx context.Context, items []pkgcache.CachedItem) error
}

// CatalogService serves the item catalog, read through the cache when one
// is configured.
type CatalogService struct {
	repo  repositories.ItemRepository
	cache CatalogCache
	log   logger.Logger
}

// NewCatalogService returns a CatalogService. catalogCache may be nil.
func NewCatalogService(repo repositories.ItemRepository, catalogCache CatalogCache, log logger.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: catalogCache, log: log}
}

// List returns every item ordered by id. Cache failures fall through to
// Postgres; a Postgres failure is returned as is.
func (s *CatalogService) List(ctx context.Context) ([]*models.Item, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err == nil {
			return cachedToItems(cached), nil
		}
		if !errors.Is(err, pkgcache.ErrMiss) {
			s.log.WarnContext(ctx, "catalog cache read failed", "error", err)
		}
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(context.WithoutCancel(ctx), itemsToCached(items)); err != nil {
			s.log.WarnContext(ctx, "catalog cache write failed", "error", err)
		}
	}
	return items, nil
}

func itemsToCached(items []*models.Item) []pkgcache.CachedItem {
	out := make([]pkgcache.CachedItem, len(items))
	for i, it := range items {
		out[i] = pkgcache.CachedItem{ID: it.ID, Title: it.Title.String(), Image: it.Image}
	}
	return out
}

func cachedToItems(cached []pkgcache.CachedItem) []*models.Item {
	out := make([]*models.Item, len(cached))
	for i, c := range cached {
		out[i] = &models.Item{ID: c.ID, Title: models.ItemTitle(c.Title), Image: c.Image}
	}
	return out
}
