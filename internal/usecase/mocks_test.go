package usecase

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/metalscrape/backend/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	mu       sync.Mutex
	data     map[string]interface{}
	getError error
	setError error
	getCalls int
	setCalls int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string]interface{}),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok, nil
}

// MockVendorClient is a mock implementation of domain.VendorClient
type MockVendorClient struct {
	mu          sync.Mutex
	products    map[string][]domain.ProductInfo
	scrapeError error
	onScrape    func(url string)
	prices      map[string]float64 // keyed by sku id
	quoteError  error
	quoteCalls  int
}

func NewMockVendorClient() *MockVendorClient {
	return &MockVendorClient{
		products: make(map[string][]domain.ProductInfo),
		prices:   make(map[string]float64),
	}
}

func (m *MockVendorClient) ScrapeProducts(ctx context.Context, url string) ([]domain.ProductInfo, error) {
	if m.onScrape != nil {
		m.onScrape(url)
	}
	if m.scrapeError != nil {
		return nil, m.scrapeError
	}
	products, ok := m.products[url]
	if !ok {
		return nil, domain.ErrProductParse
	}
	return append([]domain.ProductInfo(nil), products...), nil
}

func (m *MockVendorClient) QuotePrice(ctx context.Context, product *domain.ProductInfo, length string, quantity int) (*domain.ProductVariation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quoteCalls++
	if m.quoteError != nil {
		return nil, m.quoteError
	}
	sku, ok := product.LengthSKUIDs[length]
	if !ok {
		return nil, domain.ErrLengthNotOffered
	}
	feet, err := strconv.Atoi(length)
	if err != nil {
		return nil, domain.ErrProductParse
	}
	return &domain.ProductVariation{ParentUUID: product.UUID, Length: feet, Price: m.prices[sku]}, nil
}

// MockCatalogStore is a mock implementation of domain.CatalogStore
type MockCatalogStore struct {
	mu        sync.Mutex
	bundles   map[domain.BundleKey]*domain.ProductBundle
	saveError error
}

func NewMockCatalogStore() *MockCatalogStore {
	return &MockCatalogStore{bundles: make(map[domain.BundleKey]*domain.ProductBundle)}
}

func (m *MockCatalogStore) Save(ctx context.Context, key domain.BundleKey, bundle *domain.ProductBundle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.bundles[key] = bundle
	return nil
}

func (m *MockCatalogStore) Load(ctx context.Context, key domain.BundleKey) (*domain.ProductBundle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bundle, ok := m.bundles[key]
	if !ok {
		return nil, domain.ErrBundleNotFound
	}
	return bundle, nil
}

func (m *MockCatalogStore) LoadAll(ctx context.Context) (map[domain.BundleKey]*domain.ProductBundle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[domain.BundleKey]*domain.ProductBundle, len(m.bundles))
	for k, v := range m.bundles {
		out[k] = v
	}
	return out, nil
}

func (m *MockCatalogStore) Keys(ctx context.Context) ([]domain.BundleKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]domain.BundleKey, 0, len(m.bundles))
	for k := range m.bundles {
		keys = append(keys, k)
	}
	return keys, nil
}
