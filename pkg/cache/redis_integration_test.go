//go:build integration

package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoleta/ecoleta/pkg/cache"
	"github.com/ecoleta/ecoleta/pkg/testutil/containers"
)

func TestCaches_AgainstRedis(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	rc := cache.NewRedisClientFrom(containers.NewRedisContainer(t).Client)
	ctx := context.Background()

	catalog := cache.NewCatalogCache(rc)
	_, err := catalog.Get(ctx)
	require.ErrorIs(t, err, cache.ErrMiss)

	items := []cache.CachedItem{{ID: 1, Title: "Lâmpadas", Image: "lampadas.svg"}}
	require.NoError(t, catalog.Set(ctx, items))
	got, err := catalog.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)
	require.NoError(t, catalog.Invalidate(ctx))

	points := cache.NewPointCache(rc)
	p := &cache.CachedPoint{ID: 9, Name: "Eco Center", UF: "SP", Items: items}
	require.NoError(t, points.Set(ctx, p))
	gotPoint, err := points.Get(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, p, gotPoint)

	require.NoError(t, points.Delete(ctx, 9))
	_, err = points.Get(ctx, 9)
	assert.ErrorIs(t, err, cache.ErrMiss)
}
