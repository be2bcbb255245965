package catalog

import (
	"fmt"

	"github.com/metalscrape/backend/internal/domain"
)

func ptr(f float64) *float64 {
	return &f
}

// twoRecordCatalog holds A (index 1, 20ft, $50, 2 lb/ft) and B (index 2, 10ft, $80, 1 lb/ft)
func twoRecordCatalog() []Category {
	return []Category{
		{
			Key: domain.BundleKey{Material: "Steel", Shape: "Angle"},
			Bundle: &domain.ProductBundle{
				Products: []domain.ProductInfo{
					{UUID: "a", ProductID: "100", Index: 1, Size: "1 x 1", Desc: "A", BaseWeight: 2.0,
						LengthSKUIDs: map[string]string{"20": "s20"}},
					{UUID: "b", ProductID: "200", Index: 2, Size: "2 x 2", Desc: "B", BaseWeight: 1.0,
						LengthSKUIDs: map[string]string{"10": "s10"}},
				},
				Variations: []domain.ProductVariation{
					{ParentUUID: "a", Length: 20, Price: 50.0},
					{ParentUUID: "b", Length: 10, Price: 80.0},
				},
			},
		},
	}
}

// mixedCatalog builds several categories with repeated indexes and prices so
// that tie-break keys matter.
func mixedCatalog() []Category {
	materials := []string{"Steel", "Aluminum 6061"}
	shapes := []string{"Angle", "Flat Bar"}
	lengths := []int{4, 8, 12, 20}

	var categories []Category
	for mi, material := range materials {
		for si, shape := range shapes {
			bundle := &domain.ProductBundle{}
			for idx := 1; idx <= 3; idx++ {
				uuid := fmt.Sprintf("%s-%s-%d", material, shape, idx)
				product := domain.ProductInfo{
					UUID:         uuid,
					ProductID:    fmt.Sprintf("%d%d%d", mi, si, idx),
					Index:        idx,
					Size:         fmt.Sprintf("%d in", idx),
					Desc:         shape,
					BaseWeight:   float64(idx) * 0.5,
					LengthSKUIDs: map[string]string{},
				}
				for _, length := range lengths {
					product.LengthSKUIDs[fmt.Sprint(length)] = fmt.Sprintf("sku-%s-%d", uuid, length)
					bundle.Variations = append(bundle.Variations, domain.ProductVariation{
						ParentUUID: uuid,
						Length:     length,
						Price:      float64((length*idx)%7) * 10,
					})
				}
				bundle.Products = append(bundle.Products, product)
			}
			categories = append(categories, Category{
				Key:    domain.BundleKey{Material: material, Shape: shape},
				Bundle: bundle,
			})
		}
	}
	return categories
}

func descs(products []domain.SpecificProduct) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.Desc
	}
	return ids
}
