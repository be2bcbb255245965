package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/metalscrape/backend/config"
	"github.com/metalscrape/backend/internal/domain"
	"github.com/metalscrape/backend/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("json store round trips into a catalog", func(t *testing.T) {
		s, closeFn, err := OpenStore(ctx, config.StoreConfig{Type: "json", DataDir: t.TempDir()}, logger.NewNop())
		require.NoError(t, err)
		defer closeFn()

		key := domain.BundleKey{Material: "Steel", Shape: "Flat Bar"}
		require.NoError(t, s.Save(ctx, key, &domain.ProductBundle{
			Products:   []domain.ProductInfo{{UUID: "u", ProductID: "1", Index: 1, BaseWeight: 2}},
			Variations: []domain.ProductVariation{{ParentUUID: "u", Length: 10, Price: 40}},
		}))

		idx, err := LoadCatalog(ctx, s, logger.NewNop())
		require.NoError(t, err)
		assert.Equal(t, 1, idx.Len())
		assert.Equal(t, []string{"Steel"}, idx.Facets().Materials)
		assert.Equal(t, []string{"Flat Bar"}, idx.Facets().Shapes)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, _, err := OpenStore(ctx, config.StoreConfig{Type: "sqlite"}, logger.NewNop())
		assert.Error(t, err)
	})

	t.Run("postgres with bad dsn fails", func(t *testing.T) {
		_, _, err := OpenStore(ctx, config.StoreConfig{Type: "postgres", PostgresDSN: "::not a dsn::"}, logger.NewNop())
		assert.Error(t, err)
	})
}

func TestLoadCatalog_IntegrityError(t *testing.T) {
	ctx := context.Background()
	s, closeFn, err := OpenStore(ctx, config.StoreConfig{Type: "json", DataDir: t.TempDir()}, logger.NewNop())
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, s.Save(ctx, domain.BundleKey{Material: "Steel", Shape: "Angle"}, &domain.ProductBundle{
		Products:   []domain.ProductInfo{{UUID: "u", BaseWeight: 1}},
		Variations: []domain.ProductVariation{{ParentUUID: "missing", Length: 4, Price: 1}},
	}))

	_, err = LoadCatalog(ctx, s, logger.NewNop())
	assert.True(t, errors.Is(err, domain.ErrDataIntegrity), "error = %v", err)
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	t.Run("memory cache", func(t *testing.T) {
		c, closeFn, err := OpenCache(ctx, config.CacheConfig{Type: "memory", TTL: time.Hour}, logger.NewNop())
		require.NoError(t, err)
		defer closeFn()

		require.NoError(t, c.Set(ctx, "k", 1.5, time.Minute))
		v, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, 1.5, v)
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		_, _, err := OpenCache(ctx, config.CacheConfig{Type: "memcached"}, logger.NewNop())
		assert.Error(t, err)
	})

	t.Run("redis with bad url fails", func(t *testing.T) {
		_, _, err := OpenCache(ctx, config.CacheConfig{Type: "redis", RedisURL: "not-a-url"}, logger.NewNop())
		assert.Error(t, err)
	})
}

func TestIngestTargets(t *testing.T) {
	t.Run("empty filters select every category", func(t *testing.T) {
		targets := IngestTargets("https://vendor.test", nil, nil)
		assert.Len(t, targets, 43)
		assert.Equal(t, "https://vendor.test/steel-products/steel-angle", targets[0].URL)
	})

	t.Run("filters by material and shape case-insensitively", func(t *testing.T) {
		targets := IngestTargets("https://vendor.test/", []string{"steel"}, []string{"flat bar", "ANGLE"})
		require.Len(t, targets, 2)
		assert.Equal(t, domain.BundleKey{Material: "Steel", Shape: "Angle"}, targets[0].Key)
		assert.Equal(t, domain.BundleKey{Material: "Steel", Shape: "Flat Bar"}, targets[1].Key)
	})

	t.Run("unknown material selects nothing", func(t *testing.T) {
		assert.Empty(t, IngestTargets("https://vendor.test", []string{"Unobtainium"}, nil))
	})
}

func TestPendingTargets(t *testing.T) {
	ctx := context.Background()
	s, closeFn, err := OpenStore(ctx, config.StoreConfig{Type: "json", DataDir: t.TempDir()}, logger.NewNop())
	require.NoError(t, err)
	defer closeFn()

	stored := domain.BundleKey{Material: "Steel", Shape: "Angle"}
	require.NoError(t, s.Save(ctx, stored, &domain.ProductBundle{
		Products:   []domain.ProductInfo{{UUID: "u", BaseWeight: 1}},
		Variations: []domain.ProductVariation{{ParentUUID: "u", Length: 4, Price: 1}},
	}))

	targets := IngestTargets("https://vendor.test", []string{"Steel"}, []string{"Angle", "Flat Bar"})
	require.Len(t, targets, 2)

	pending, err := PendingTargets(ctx, s, targets)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.BundleKey{Material: "Steel", Shape: "Flat Bar"}, pending[0].Key)
}

func TestNewVendorClient_BaseURLFeedsTargets(t *testing.T) {
	client := NewVendorClient(config.VendorConfig{BaseURL: "https://vendor.test/"}, logger.NewNop())

	targets := IngestTargets(client.BaseURL(), []string{"Steel"}, []string{"Angle"})
	require.Len(t, targets, 1)
	assert.Equal(t, "https://vendor.test/steel-products/steel-angle", targets[0].URL)
}
