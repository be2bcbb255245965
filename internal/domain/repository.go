package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogStore persists product bundles keyed by (material, shape)
type CatalogStore interface {
	Save(ctx context.Context, key BundleKey, bundle *ProductBundle) error
	Load(ctx context.Context, key BundleKey) (*ProductBundle, error)
	LoadAll(ctx context.Context) (map[BundleKey]*ProductBundle, error)
	Keys(ctx context.Context) ([]BundleKey, error)
}

// VendorClient scrapes product listings and looks up prices from the vendor site
type VendorClient interface {
	ScrapeProducts(ctx context.Context, url string) ([]ProductInfo, error)
	QuotePrice(ctx context.Context, product *ProductInfo, length string, quantity int) (*ProductVariation, error)
}
