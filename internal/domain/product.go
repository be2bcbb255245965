package domain

// ProductInfo represents a product family scraped from a vendor listing page
type ProductInfo struct {
	UUID         string            `json:"uuid"`
	ProductID    string            `json:"product_id"`
	Index        int               `json:"index"` // 1-based position on the listing page
	Size         string            `json:"size"`
	Desc         string            `json:"desc"`
	LengthSKUIDs map[string]string `json:"length_skuids"` // length label -> vendor SKU id
	BaseWeight   float64           `json:"base_weight"`   // pounds per linear foot
}

// ProductVariation is one priced, purchasable length of a ProductInfo
type ProductVariation struct {
	ParentUUID string  `json:"parent_uuid"`
	Length     int     `json:"length"`
	Price      float64 `json:"price"`
}

// BundleKey identifies a (material, shape) category
type BundleKey struct {
	Material string `json:"material"`
	Shape    string `json:"shape"`
}

// Less orders keys by material, then shape
func (k BundleKey) Less(other BundleKey) bool {
	if k.Material != other.Material {
		return k.Material < other.Material
	}
	return k.Shape < other.Shape
}

// ProductBundle holds the products and variations collected for one category
type ProductBundle struct {
	Products   []ProductInfo      `json:"products"`
	Variations []ProductVariation `json:"variations"`
}

// SpecificProduct is a joined, query-ready record: one per ProductVariation
type SpecificProduct struct {
	UUID          string  `json:"uuid"`
	ProductID     string  `json:"product_id"`
	Index         int     `json:"index"`
	Material      string  `json:"material"`
	Shape         string  `json:"shape"`
	Size          string  `json:"size"`
	Desc          string  `json:"desc"`
	BaseWeight    float64 `json:"base_weight"`
	Length        int     `json:"length"`
	Price         float64 `json:"price"`
	PricePerFoot  float64 `json:"price_per_foot"`
	PricePerPound float64 `json:"price_per_pound"`
}
