package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/metalscrape/backend/internal/domain"
	"github.com/metalscrape/backend/internal/platform/logger"
)

// PricingServiceConfig holds configuration for the pricing service
type PricingServiceConfig struct {
	CacheTTL time.Duration
	Quantity int
}

// PricingService looks up variation prices, consulting the quote cache before the vendor
type PricingService struct {
	cache    domain.CacheRepository
	vendor   domain.VendorClient
	cacheTTL time.Duration
	quantity int
	log      *logger.Logger
}

// NewPricingService creates a new pricing service with dependencies
func NewPricingService(
	cache domain.CacheRepository,
	vendor domain.VendorClient,
	config PricingServiceConfig,
	log *logger.Logger,
) *PricingService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	quantity := config.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	return &PricingService{
		cache:    cache,
		vendor:   vendor,
		cacheTTL: cacheTTL,
		quantity: quantity,
		log:      log.With("component", "PricingService"),
	}
}

// Quote returns the priced variation of product at the given length label.
// Flow: check cache -> ask vendor -> cache -> return
func (s *PricingService) Quote(ctx context.Context, product *domain.ProductInfo, length string) (*domain.ProductVariation, error) {
	skuID, ok := product.LengthSKUIDs[length]
	if !ok {
		return nil, fmt.Errorf("%w: length %s for product %s", domain.ErrLengthNotOffered, length, product.ProductID)
	}

	cacheKey := quoteCacheKey(product.ProductID, skuID, s.quantity)
	if price, err := s.getFromCache(ctx, cacheKey); err == nil {
		lengthFeet, err := strconv.Atoi(length)
		if err != nil {
			return nil, fmt.Errorf("%w: length label %q is not an integer", domain.ErrProductParse, length)
		}
		return &domain.ProductVariation{ParentUUID: product.UUID, Length: lengthFeet, Price: price}, nil
	}

	variation, err := s.vendor.QuotePrice(ctx, product, length, s.quantity)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, cacheKey, variation.Price, s.cacheTTL); err != nil {
		s.log.Warn("Failed to cache price quote", "key", cacheKey, "error", err)
	}

	return variation, nil
}

// quoteCacheKey formats "price:{product_id}:{sku_id}:{qty}"
func quoteCacheKey(productID, skuID string, quantity int) string {
	return fmt.Sprintf("price:%s:%s:%d", productID, skuID, quantity)
}

func (s *PricingService) getFromCache(ctx context.Context, key string) (float64, error) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.log.Warn("Price cache unavailable", "key", key, "error", err)
		}
		return 0, err
	}

	switch price := value.(type) {
	case float64:
		return price, nil
	case string:
		return strconv.ParseFloat(price, 64)
	default:
		return 0, domain.ErrCacheMiss
	}
}
