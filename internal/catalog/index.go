package catalog

import (
	"fmt"
	"math"
	"sort"

	"github.com/metalscrape/backend/internal/domain"
)

// CatalogIndex is an immutable snapshot of joined products plus its sort cache.
// It is safe for concurrent use.
type CatalogIndex struct {
	products  []domain.SpecificProduct
	sortIndex *SortIndex
	materials []string
	shapes    []string
}

// Facets lists the distinct categories present in the catalog
type Facets struct {
	Materials []string `json:"materials"`
	Shapes    []string `json:"shapes"`
	Count     int      `json:"count"`
}

// Build joins the bundles, in the given category order, into a searchable catalog.
// No catalog is returned if any variation cannot be resolved.
func Build(categories []Category) (*CatalogIndex, error) {
	products, err := JoinCategories(categories)
	if err != nil {
		return nil, err
	}

	materials := make(map[string]struct{})
	shapes := make(map[string]struct{})
	for i := range products {
		materials[products[i].Material] = struct{}{}
		shapes[products[i].Shape] = struct{}{}
	}

	return &CatalogIndex{
		products:  products,
		sortIndex: NewSortIndex(products),
		materials: sortedKeys(materials),
		shapes:    sortedKeys(shapes),
	}, nil
}

// BuildFromBundles builds a catalog from keyed bundles ordered by material, then shape
func BuildFromBundles(bundles map[domain.BundleKey]*domain.ProductBundle) (*CatalogIndex, error) {
	return Build(SortedCategories(bundles))
}

// Len returns the number of joined products
func (c *CatalogIndex) Len() int {
	return len(c.products)
}

// Facets returns the sorted distinct materials and shapes
func (c *CatalogIndex) Facets() Facets {
	return Facets{
		Materials: append([]string{}, c.materials...),
		Shapes:    append([]string{}, c.shapes...),
		Count:     len(c.products),
	}
}

// Search sorts the catalog by q.Attribute, filters it, and returns the requested page.
// Unknown attributes fail with domain.ErrInvalidAttribute; other malformed
// parameters fail with domain.ErrInvalidQuery. An empty page is not an error.
func (c *CatalogIndex) Search(q domain.SearchQuery) ([]domain.SpecificProduct, error) {
	attr, ok := ParseAttribute(q.Attribute)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAttribute, q.Attribute)
	}
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	order := c.sortIndex.OrderFor(attr, q.Ascending)
	filter := NewFilter(q.Materials, q.Shapes, q.Filters)
	return filter.Page(c.products, order, q.Page, q.PageSize), nil
}

func validateQuery(q domain.SearchQuery) error {
	if q.Page < 0 {
		return fmt.Errorf("%w: page must be non-negative, got %d", domain.ErrInvalidQuery, q.Page)
	}
	if q.PageSize <= 0 {
		return fmt.Errorf("%w: page size must be positive, got %d", domain.ErrInvalidQuery, q.PageSize)
	}

	ranges := []struct {
		name string
		r    domain.Range
	}{
		{"length", q.Filters.Length},
		{"poundsPerFoot", q.Filters.PoundsPerFoot},
		{"price", q.Filters.Price},
		{"pricePerFoot", q.Filters.PricePerFoot},
		{"pricePerPound", q.Filters.PricePerPound},
	}
	for _, b := range ranges {
		if b.r.Lower != nil && math.IsNaN(*b.r.Lower) {
			return fmt.Errorf("%w: %sLower is not a number", domain.ErrInvalidQuery, b.name)
		}
		if b.r.Upper != nil && math.IsNaN(*b.r.Upper) {
			return fmt.Errorf("%w: %sUpper is not a number", domain.ErrInvalidQuery, b.name)
		}
	}
	return nil
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
