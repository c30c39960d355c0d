package services

import (
	"context"
	"errors"
	"fmt"

	pkgcache "github.com/ecoleta/ecoleta/pkg/cache"
	"github.com/ecoleta/ecoleta/pkg/logger"
	"github.com/ecoleta/ecoleta/services/point/domain/models"
	"github.com/ecoleta/ecoleta/services/point/domain/repositories"
)

// PointCache is the read-model cache consulted by PointService.
type PointCache interface {
	Get(ctx context.Context, id int64) (*pkgcache.CachedPoint, error)
	Set(ctx context.Context, p *pkgcache.CachedPoint) error
}

// PointService serves point reads. Single points are read through the cache
// when one is configured.
type PointService struct {
	repo  repositories.PointRepository
	cache PointCache
	log   logger.Logger
}

// NewPointService returns a PointService. pointCache may be nil.
func NewPointService(repo repositories.PointRepository, pointCache PointCache, log logger.Logger) *PointService {
	return &PointService{repo: repo, cache: pointCache, log: log}
}

// Show returns a point with its items using a read-through cache:
//  1. Check Redis first.
//  2. On miss (or cache error), query Postgres.
//  3. Write the Postgres result back to the cache.
//
// Returns domain.ErrPointNotFound when no point has id.
func (s *PointService) Show(ctx context.Context, id int64) (*models.Point, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, id)
		if err == nil {
			return cachedToPoint(cached), nil
		}
		if !errors.Is(err, pkgcache.ErrMiss) {
			s.log.WarnContext(ctx, "point cache read failed", "point_id", id, "error", err)
		}
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get point: %w", err)
	}

	s.store(ctx, p)
	return p, nil
}

// List returns the points matching f ordered by id.
func (s *PointService) List(ctx context.Context, f models.Filter) ([]*models.Point, error) {
	points, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list points: %w", err)
	}
	return points, nil
}

// Warm loads a point from Postgres into the cache. The worker calls it for
// every point.created event.
func (s *PointService) Warm(ctx context.Context, id int64) error {
	if s.cache == nil {
		return nil
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("warm point %d: %w", id, err)
	}
	if err := s.cache.Set(ctx, PointToCached(p)); err != nil {
		return fmt.Errorf("warm point %d: %w", id, err)
	}
	return nil
}

func (s *PointService) store(ctx context.Context, p *models.Point) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(context.WithoutCancel(ctx), PointToCached(p)); err != nil {
		s.log.WarnContext(ctx, "point cache write failed", "point_id", p.ID, "error", err)
	}
}

// PointToCached converts a point into its cache read model.
func PointToCached(p *models.Point) *pkgcache.CachedPoint {
	items := make([]pkgcache.CachedItem, len(p.Items))
	for i, it := range p.Items {
		items[i] = pkgcache.CachedItem{ID: it.ID, Title: it.Title, Image: it.Image}
	}
	return &pkgcache.CachedPoint{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Whatsapp:  p.Whatsapp,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		City:      p.City,
		UF:        p.UF,
		Image:     p.Image,
		Items:     items,
	}
}

func cachedToPoint(c *pkgcache.CachedPoint) *models.Point {
	items := make([]models.AcceptedItem, len(c.Items))
	for i, it := range c.Items {
		items[i] = models.AcceptedItem{ID: it.ID, Title: it.Title, Image: it.Image}
	}
	return &models.Point{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Whatsapp:  c.Whatsapp,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		City:      c.City,
		UF:        c.UF,
		Image:     c.Image,
		Items:     items,
	}
}
