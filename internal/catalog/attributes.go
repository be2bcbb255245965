package catalog

import (
	"cmp"
	"strings"

	"github.com/metalscrape/backend/internal/domain"
)

// Attribute is a public, sortable field of domain.SpecificProduct
type Attribute int

const (
	AttrUUID Attribute = iota
	AttrProductID
	AttrIndex
	AttrMaterial
	AttrShape
	AttrSize
	AttrDesc
	AttrBaseWeight
	AttrLength
	AttrPrice
	AttrPricePerFoot
	AttrPricePerPound

	numAttributes
)

// attributeNames match the JSON field names of domain.SpecificProduct
var attributeNames = [numAttributes]string{
	AttrUUID:          "uuid",
	AttrProductID:     "product_id",
	AttrIndex:         "index",
	AttrMaterial:      "material",
	AttrShape:         "shape",
	AttrSize:          "size",
	AttrDesc:          "desc",
	AttrBaseWeight:    "base_weight",
	AttrLength:        "length",
	AttrPrice:         "price",
	AttrPricePerFoot:  "price_per_foot",
	AttrPricePerPound: "price_per_pound",
}

type compareFunc func(a, b *domain.SpecificProduct) int

var comparators = [numAttributes]compareFunc{
	AttrUUID:          func(a, b *domain.SpecificProduct) int { return strings.Compare(a.UUID, b.UUID) },
	AttrProductID:     func(a, b *domain.SpecificProduct) int { return strings.Compare(a.ProductID, b.ProductID) },
	AttrIndex:         func(a, b *domain.SpecificProduct) int { return cmp.Compare(a.Index, b.Index) },
	AttrMaterial:      func(a, b *domain.SpecificProduct) int { return strings.Compare(a.Material, b.Material) },
	AttrShape:         func(a, b *domain.SpecificProduct) int { return strings.Compare(a.Shape, b.Shape) },
	AttrSize:          func(a, b *domain.SpecificProduct) int { return strings.Compare(a.Size, b.Size) },
	AttrDesc:          func(a, b *domain.SpecificProduct) int { return strings.Compare(a.Desc, b.Desc) },
	AttrBaseWeight:    func(a, b *domain.SpecificProduct) int { return cmp.Compare(a.BaseWeight, b.BaseWeight) },
	AttrLength:        func(a, b *domain.SpecificProduct) int { return cmp.Compare(a.Length, b.Length) },
	AttrPrice:         func(a, b *domain.SpecificProduct) int { return cmp.Compare(a.Price, b.Price) },
	AttrPricePerFoot:  func(a, b *domain.SpecificProduct) int { return cmp.Compare(a.PricePerFoot, b.PricePerFoot) },
	AttrPricePerPound: func(a, b *domain.SpecificProduct) int { return cmp.Compare(a.PricePerPound, b.PricePerPound) },
}

// canonicalOrder is the fixed tie-break list; a requested attribute is promoted to the front
var canonicalOrder = [...]Attribute{AttrIndex, AttrLength, AttrPrice, AttrBaseWeight}

// ParseAttribute resolves a field name to its Attribute
func ParseAttribute(name string) (Attribute, bool) {
	for attr, attrName := range attributeNames {
		if attrName == name {
			return Attribute(attr), true
		}
	}
	return 0, false
}

// String returns the field name of the attribute
func (a Attribute) String() string {
	if a < 0 || a >= numAttributes {
		return "unknown"
	}
	return attributeNames[a]
}

// Attributes lists every sortable field name
func Attributes() []string {
	names := make([]string, len(attributeNames))
	copy(names, attributeNames[:])
	return names
}

// keyOrder returns attr followed by the canonical keys with attr removed
func keyOrder(attr Attribute) []Attribute {
	keys := make([]Attribute, 0, len(canonicalOrder)+1)
	keys = append(keys, attr)
	for _, key := range canonicalOrder {
		if key != attr {
			keys = append(keys, key)
		}
	}
	return keys
}
