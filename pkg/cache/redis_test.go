package cache

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/ecoleta/ecoleta/pkg/config"
)

func newTestConfig(url string) *config.Config {
	return &config.Config{RedisURL: url}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	if _, err := NewRedisClient(newTestConfig("not-a-valid-url")); err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestNewRedisClient_UnreachableHost(t *testing.T) {
	if _, err := NewRedisClient(newTestConfig("redis://localhost:19999")); err == nil {
		t.Fatal("expected error when Redis is unreachable, got nil")
	}
}

func TestPointCache_Key(t *testing.T) {
	c := NewPointCache(nil)
	if got := c.key(42); got != "point:42" {
		t.Fatalf("unexpected key %q", got)
	}
}

// Integration tests: skipped unless REDIS_URL is set.
func TestRedisIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	rc, err := NewRedisClient(newTestConfig(redisURL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rc.Close() //nolint:errcheck
	ctx := context.Background()

	t.Run("Ping", func(t *testing.T) {
		if err := rc.Ping(ctx); err != nil {
			t.Fatalf("Ping failed: %v", err)
		}
	})

	t.Run("CatalogRoundTrip", func(t *testing.T) {
		cc := NewCatalogCache(rc)
		_ = cc.Invalidate(ctx)
		if _, err := cc.Get(ctx); !errors.Is(err, ErrMiss) {
			t.Fatalf("expected ErrMiss, got %v", err)
		}
		want := []CachedItem{{ID: 1, Title: "Lâmpadas", Image: "lampadas.svg"}}
		if err := cc.Set(ctx, want); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := cc.Get(ctx)
		if err != nil || len(got) != 1 || got[0] != want[0] {
			t.Fatalf("Get = %+v, %v", got, err)
		}
	})

	t.Run("PointMissThenHit", func(t *testing.T) {
		pc := NewPointCache(rc)
		_ = pc.Delete(ctx, 999001)
		if _, err := pc.Get(ctx, 999001); !errors.Is(err, ErrMiss) {
			t.Fatalf("expected ErrMiss, got %v", err)
		}
		p := &CachedPoint{ID: 999001, Name: "Eco Center", UF: "SP", Items: []CachedItem{{ID: 1}}}
		if err := pc.Set(ctx, p); err != nil {
			t.Fatalf("Set: %v", err)
		}
		got, err := pc.Get(ctx, 999001)
		if err != nil || got.Name != "Eco Center" || got.Image != "" {
			t.Fatalf("Get = %+v, %v", got, err)
		}
	})
}
