package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/metalscrape/backend/internal/domain"
	"github.com/metalscrape/backend/internal/platform/logger"
)

func testProduct() *domain.ProductInfo {
	return &domain.ProductInfo{
		UUID:         "u-1",
		ProductID:    "1001",
		Index:        1,
		Size:         `1/8" x 1"`,
		Desc:         "Flat Bar",
		LengthSKUIDs: map[string]string{"8": "sku-8", "20": "sku-20"},
		BaseWeight:   0.425,
	}
}

func TestNewPricingService(t *testing.T) {
	t.Run("creates service with default values", func(t *testing.T) {
		svc := NewPricingService(NewMockCacheRepository(), NewMockVendorClient(), PricingServiceConfig{}, logger.NewNop())
		if svc.cacheTTL != 24*time.Hour {
			t.Errorf("cacheTTL = %v, want 24h", svc.cacheTTL)
		}
		if svc.quantity != 1 {
			t.Errorf("quantity = %v, want 1", svc.quantity)
		}
	})

	t.Run("creates service with custom values", func(t *testing.T) {
		svc := NewPricingService(NewMockCacheRepository(), NewMockVendorClient(), PricingServiceConfig{
			CacheTTL: time.Hour,
			Quantity: 3,
		}, logger.NewNop())
		if svc.cacheTTL != time.Hour {
			t.Errorf("cacheTTL = %v, want 1h", svc.cacheTTL)
		}
		if svc.quantity != 3 {
			t.Errorf("quantity = %v, want 3", svc.quantity)
		}
	})
}

func TestQuote(t *testing.T) {
	ctx := context.Background()

	t.Run("returns error for length not offered", func(t *testing.T) {
		vendor := NewMockVendorClient()
		svc := NewPricingService(NewMockCacheRepository(), vendor, PricingServiceConfig{}, logger.NewNop())

		_, err := svc.Quote(ctx, testProduct(), "12")
		if !errors.Is(err, domain.ErrLengthNotOffered) {
			t.Errorf("error = %v, want ErrLengthNotOffered", err)
		}
		if vendor.quoteCalls != 0 {
			t.Errorf("quoteCalls = %d, want 0", vendor.quoteCalls)
		}
	})

	t.Run("returns cached price on cache hit", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.data["price:1001:sku-8:1"] = 17.5
		vendor := NewMockVendorClient()
		svc := NewPricingService(cache, vendor, PricingServiceConfig{}, logger.NewNop())

		result, err := svc.Quote(ctx, testProduct(), "8")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Price != 17.5 || result.Length != 8 || result.ParentUUID != "u-1" {
			t.Errorf("result = %+v, want {u-1 8 17.5}", *result)
		}
		if vendor.quoteCalls != 0 {
			t.Errorf("quoteCalls = %d, want 0", vendor.quoteCalls)
		}
	})

	t.Run("asks vendor on cache miss and caches the price", func(t *testing.T) {
		cache := NewMockCacheRepository()
		vendor := NewMockVendorClient()
		vendor.prices["sku-20"] = 42.1
		svc := NewPricingService(cache, vendor, PricingServiceConfig{Quantity: 2}, logger.NewNop())

		result, err := svc.Quote(ctx, testProduct(), "20")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Price != 42.1 || result.Length != 20 {
			t.Errorf("result = %+v, want price 42.1 at 20 ft", *result)
		}
		if cache.data["price:1001:sku-20:2"] != 42.1 {
			t.Errorf("cache entry = %v, want 42.1", cache.data["price:1001:sku-20:2"])
		}
	})

	t.Run("treats cache failure as miss", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.getError = errors.New("connection refused")
		vendor := NewMockVendorClient()
		vendor.prices["sku-8"] = 9.99
		svc := NewPricingService(cache, vendor, PricingServiceConfig{}, logger.NewNop())

		result, err := svc.Quote(ctx, testProduct(), "8")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Price != 9.99 {
			t.Errorf("Price = %v, want 9.99", result.Price)
		}
	})

	t.Run("cache write failure does not fail the quote", func(t *testing.T) {
		cache := NewMockCacheRepository()
		cache.setError = errors.New("read only")
		vendor := NewMockVendorClient()
		vendor.prices["sku-8"] = 9.99
		svc := NewPricingService(cache, vendor, PricingServiceConfig{}, logger.NewNop())

		if _, err := svc.Quote(ctx, testProduct(), "8"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cache.setCalls != 1 {
			t.Errorf("setCalls = %d, want 1", cache.setCalls)
		}
	})

	t.Run("returns error when vendor fails", func(t *testing.T) {
		vendor := NewMockVendorClient()
		vendor.quoteError = domain.ErrVendorAPIFailure
		svc := NewPricingService(NewMockCacheRepository(), vendor, PricingServiceConfig{}, logger.NewNop())

		_, err := svc.Quote(ctx, testProduct(), "8")
		if !errors.Is(err, domain.ErrVendorAPIFailure) {
			t.Errorf("error = %v, want ErrVendorAPIFailure", err)
		}
	})
}

func TestQuoteCacheKey(t *testing.T) {
	if got := quoteCacheKey("1001", "sku-8", 1); got != "price:1001:sku-8:1" {
		t.Errorf("quoteCacheKey = %q, want price:1001:sku-8:1", got)
	}
}
