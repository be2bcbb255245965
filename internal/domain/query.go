package domain

// Range is an inclusive numeric bound; a nil side never excludes
type Range struct {
	Lower *float64 `json:"lower,omitempty"`
	Upper *float64 `json:"upper,omitempty"`
}

// Contains reports whether v satisfies both present bounds.
// NaN satisfies no bound.
func (r Range) Contains(v float64) bool {
	if r.Lower != nil && !(v >= *r.Lower) {
		return false
	}
	if r.Upper != nil && !(v <= *r.Upper) {
		return false
	}
	return true
}

// IsZero reports whether neither bound is set
func (r Range) IsZero() bool {
	return r.Lower == nil && r.Upper == nil
}

// Filters holds the numeric range constraints of a search
type Filters struct {
	Length        Range `json:"length"`
	PoundsPerFoot Range `json:"poundsPerFoot"` // applies to base_weight
	Price         Range `json:"price"`
	PricePerFoot  Range `json:"pricePerFoot"`
	PricePerPound Range `json:"pricePerPound"`
}

// SearchQuery represents a catalog search request
type SearchQuery struct {
	Attribute string
	Ascending bool
	Materials []string // nil means all
	Shapes    []string // nil means all
	Filters   Filters
	Page      int
	PageSize  int
}
