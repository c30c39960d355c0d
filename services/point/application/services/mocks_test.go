package services

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	pkgcache "github.com/ecoleta/ecoleta/pkg/cache"
	"github.com/ecoleta/ecoleta/services/point/domain/models"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, p *models.NewPoint) (*models.Point, error) {
	args := m.Called(ctx, p)
	if fn, ok := args.Get(0).(func(context.Context, *models.NewPoint) *models.Point); ok {
		return fn(ctx, p), args.Error(1)
	}
	if pt, _ := args.Get(0).(*models.Point); pt != nil {
		return pt, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*models.Point, error) {
	args := m.Called(ctx, id)
	if pt, _ := args.Get(0).(*models.Point); pt != nil {
		return pt, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, f models.Filter) ([]*models.Point, error) {
	args := m.Called(ctx, f)
	pts, _ := args.Get(0).([]*models.Point)
	return pts, args.Error(1)
}

type mockPhotos struct{ mock.Mock }

func (m *mockPhotos) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	args := m.Called(ctx, originalName, r)
	return args.String(0), args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, id int64) (*pkgcache.CachedPoint, error) {
	args := m.Called(ctx, id)
	if p, _ := args.Get(0).(*pkgcache.CachedPoint); p != nil {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, p *pkgcache.CachedPoint) error {
	return m.Called(ctx, p).Error(0)
}
