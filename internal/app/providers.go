package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/metalscrape/backend/config"
	"github.com/metalscrape/backend/internal/catalog"
	"github.com/metalscrape/backend/internal/domain"
	"github.com/metalscrape/backend/internal/infrastructure/cache"
	"github.com/metalscrape/backend/internal/infrastructure/store"
	"github.com/metalscrape/backend/internal/infrastructure/vendor"
	"github.com/metalscrape/backend/internal/platform/logger"
	"github.com/metalscrape/backend/internal/usecase"
)

const (
	memoryCacheCleanupInterval = 10 * time.Minute
	redisKeyPrefix             = "metalscrape:"
)

// OpenStore opens the configured catalog store; closeFn releases it
func OpenStore(ctx context.Context, cfg config.StoreConfig, log *logger.Logger) (s domain.CatalogStore, closeFn func(), err error) {
	switch cfg.Type {
	case "json":
		log.Info("Using JSON catalog store", "data_dir", cfg.DataDir)
		return store.NewFileStore(cfg.DataDir, log), func() {}, nil
	case "postgres":
		pg, err := store.OpenPostgres(ctx, cfg.PostgresDSN, cfg.MaxConns, log)
		if err != nil {
			return nil, nil, err
		}
		if err := pg.Migrate(ctx); err != nil {
			pg.Close()
			return nil, nil, err
		}
		log.Info("Using Postgres catalog store", "dsn", cfg.PostgresDSN, "max_conns", cfg.MaxConns)
		return pg, pg.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store type %q", cfg.Type)
	}
}

// OpenCache opens the configured price quote cache; closeFn releases it
func OpenCache(ctx context.Context, cfg config.CacheConfig, log *logger.Logger) (c domain.CacheRepository, closeFn func(), err error) {
	switch cfg.Type {
	case "memory":
		mem := cache.NewMemoryCache(memoryCacheCleanupInterval)
		log.Info("Using in-memory quote cache", "ttl", cfg.TTL)
		return mem, func() { _ = mem.Close() }, nil
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, redisKeyPrefix)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using Redis quote cache", "url", cfg.RedisURL, "ttl", cfg.TTL)
		return rc, func() {
			if err := rc.Close(); err != nil {
				log.Warn("Failed to close redis cache", "error", err)
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported cache type %q", cfg.Type)
	}
}

// LoadCatalog reads every stored bundle and builds the searchable catalog
func LoadCatalog(ctx context.Context, s domain.CatalogStore, log *logger.Logger) (*catalog.CatalogIndex, error) {
	bundles, err := s.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bundles: %w", err)
	}

	idx, err := catalog.BuildFromBundles(bundles)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	facets := idx.Facets()
	log.Info("Catalog loaded",
		"bundles", len(bundles),
		"products", idx.Len(),
		"materials", len(facets.Materials),
		"shapes", len(facets.Shapes))
	return idx, nil
}

// NewVendorClient builds the rate limited vendor client from configuration
func NewVendorClient(cfg config.VendorConfig, log *logger.Logger) *vendor.Client {
	return vendor.NewClient(cfg.BaseURL, vendor.ClientOptions{
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		Timeout:           cfg.Timeout,
	}, log)
}

// IngestTargets selects vendor categories by material and shape, case-insensitively.
// Empty filters select everything.
func IngestTargets(baseURL string, materials, shapes []string) []usecase.IngestTarget {
	var targets []usecase.IngestTarget
	for _, c := range vendor.Categories() {
		if !matchesAny(c.Key.Material, materials) || !matchesAny(c.Key.Shape, shapes) {
			continue
		}
		targets = append(targets, usecase.IngestTarget{Key: c.Key, URL: c.URL(baseURL)})
	}
	return targets
}

// PendingTargets drops targets whose category already has a stored bundle
func PendingTargets(ctx context.Context, s domain.CatalogStore, targets []usecase.IngestTarget) ([]usecase.IngestTarget, error) {
	keys, err := s.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stored categories: %w", err)
	}
	stored := make(map[domain.BundleKey]struct{}, len(keys))
	for _, key := range keys {
		stored[key] = struct{}{}
	}

	pending := make([]usecase.IngestTarget, 0, len(targets))
	for _, target := range targets {
		if _, ok := stored[target.Key]; !ok {
			pending = append(pending, target)
		}
	}
	return pending, nil
}

func matchesAny(name string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	for _, w := range wanted {
		if strings.EqualFold(strings.TrimSpace(w), name) {
			return true
		}
	}
	return false
}
