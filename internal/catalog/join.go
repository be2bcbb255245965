package catalog

import (
	"fmt"
	"sort"

	"github.com/metalscrape/backend/internal/domain"
)

// Category pairs a bundle with the (material, shape) key it was collected under
type Category struct {
	Key    domain.BundleKey
	Bundle *domain.ProductBundle
}

// SortedCategories flattens a keyed bundle map into categories ordered by material, then shape
func SortedCategories(bundles map[domain.BundleKey]*domain.ProductBundle) []Category {
	categories := make([]Category, 0, len(bundles))
	for key, bundle := range bundles {
		categories = append(categories, Category{Key: key, Bundle: bundle})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Key.Less(categories[j].Key)
	})
	return categories
}

// JoinCategories resolves every variation against its own bundle's products and
// returns one SpecificProduct per variation, in category order then variation order.
// A variation whose parent is missing from its bundle fails the whole join.
func JoinCategories(categories []Category) ([]domain.SpecificProduct, error) {
	total := 0
	for _, category := range categories {
		if category.Bundle != nil {
			total += len(category.Bundle.Variations)
		}
	}

	out := make([]domain.SpecificProduct, 0, total)
	for _, category := range categories {
		if category.Bundle == nil {
			continue
		}

		byUUID := make(map[string]*domain.ProductInfo, len(category.Bundle.Products))
		for i := range category.Bundle.Products {
			product := &category.Bundle.Products[i]
			byUUID[product.UUID] = product
		}

		for i := range category.Bundle.Variations {
			variation := &category.Bundle.Variations[i]
			product, ok := byUUID[variation.ParentUUID]
			if !ok {
				return nil, fmt.Errorf("%w: variation %d of %s/%s references unknown product %q",
					domain.ErrDataIntegrity, i, category.Key.Material, category.Key.Shape, variation.ParentUUID)
			}
			out = append(out, Stitch(product, variation, category.Key))
		}
	}

	return out, nil
}

// Stitch builds the joined record for a variation of product sold under key.
// Derived prices are exact divisions; rounding is left to presentation.
func Stitch(product *domain.ProductInfo, variation *domain.ProductVariation, key domain.BundleKey) domain.SpecificProduct {
	length := float64(variation.Length)
	return domain.SpecificProduct{
		UUID:          product.UUID,
		ProductID:     product.ProductID,
		Index:         product.Index,
		Material:      key.Material,
		Shape:         key.Shape,
		Size:          product.Size,
		Desc:          product.Desc,
		BaseWeight:    product.BaseWeight,
		Length:        variation.Length,
		Price:         variation.Price,
		PricePerFoot:  variation.Price / length,
		PricePerPound: variation.Price / (product.BaseWeight * length),
	}
}
