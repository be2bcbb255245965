package catalog

import (
	"cmp"
	"slices"
	"sync/atomic"

	"github.com/metalscrape/backend/internal/domain"
)

const (
	descending = 0
	ascending  = 1
)

// SortIndex memoizes orderings of a joined product collection as permutations of
// positions into that collection.
//
// The cache has one slot per (attribute, direction) and is never evicted: the key
// domain is fixed by the set of public fields, so it can hold at most
// 2*numAttributes permutations. A larger key domain would need a bounded cache.
type SortIndex struct {
	products []domain.SpecificProduct
	orders   [numAttributes][2]atomic.Pointer[[]int]
}

// NewSortIndex creates a sort index over products. The slice must not be mutated afterwards.
func NewSortIndex(products []domain.SpecificProduct) *SortIndex {
	return &SortIndex{products: products}
}

// OrderFor returns the positions of the collection sorted by attr.
//
// Concurrent misses on the same key may both compute the ordering; the result is
// deterministic, and every caller receives whichever permutation was stored first.
// The returned slice is shared and must be treated as read-only.
func (s *SortIndex) OrderFor(attr Attribute, asc bool) []int {
	slot := &s.orders[attr][direction(asc)]
	if order := slot.Load(); order != nil {
		return *order
	}

	order := s.computeOrder(attr, asc)
	if !slot.CompareAndSwap(nil, &order) {
		return *slot.Load()
	}
	return order
}

// Cached reports whether the ordering for (attr, asc) has been computed
func (s *SortIndex) Cached(attr Attribute, asc bool) bool {
	return s.orders[attr][direction(asc)].Load() != nil
}

// computeOrder sorts positions by the composite key (attr, canonical keys..., position).
// Descending reverses the whole composite comparison, tie-break keys included.
func (s *SortIndex) computeOrder(attr Attribute, asc bool) []int {
	keys := keyOrder(attr)
	compareKeys := make([]compareFunc, len(keys))
	for i, key := range keys {
		compareKeys[i] = comparators[key]
	}

	order := make([]int, len(s.products))
	for i := range order {
		order[i] = i
	}

	slices.SortFunc(order, func(i, j int) int {
		c := s.compare(compareKeys, i, j)
		if !asc {
			return -c
		}
		return c
	})

	return order
}

func (s *SortIndex) compare(compareKeys []compareFunc, i, j int) int {
	a, b := &s.products[i], &s.products[j]
	for _, compareKey := range compareKeys {
		if c := compareKey(a, b); c != 0 {
			return c
		}
	}
	// position keeps fully identical keys in a reproducible order
	return cmp.Compare(i, j)
}

func direction(asc bool) int {
	if asc {
		return ascending
	}
	return descending
}
