package catalog

import (
	"github.com/metalscrape/backend/internal/domain"
)

// Filter is a compiled set of search constraints; every present constraint must hold
type Filter struct {
	materials map[string]struct{} // nil means any material
	shapes    map[string]struct{} // nil means any shape
	ranges    domain.Filters
}

// NewFilter compiles the categorical and numeric constraints of a query.
// A nil category list places no constraint; an empty non-nil list admits nothing.
func NewFilter(materials, shapes []string, filters domain.Filters) *Filter {
	return &Filter{
		materials: toSet(materials),
		shapes:    toSet(shapes),
		ranges:    filters,
	}
}

// IsIdentity reports whether the filter admits every product
func (f *Filter) IsIdentity() bool {
	return f.materials == nil && f.shapes == nil &&
		f.ranges.Length.IsZero() &&
		f.ranges.PoundsPerFoot.IsZero() &&
		f.ranges.Price.IsZero() &&
		f.ranges.PricePerFoot.IsZero() &&
		f.ranges.PricePerPound.IsZero()
}

// Matches reports whether p satisfies every constraint
func (f *Filter) Matches(p *domain.SpecificProduct) bool {
	if f.materials != nil {
		if _, ok := f.materials[p.Material]; !ok {
			return false
		}
	}
	if f.shapes != nil {
		if _, ok := f.shapes[p.Shape]; !ok {
			return false
		}
	}
	return f.ranges.Length.Contains(float64(p.Length)) &&
		f.ranges.PoundsPerFoot.Contains(p.BaseWeight) &&
		f.ranges.Price.Contains(p.Price) &&
		f.ranges.PricePerFoot.Contains(p.PricePerFoot) &&
		f.ranges.PricePerPound.Contains(p.PricePerPound)
}

// Page walks products in the given order, keeps those matching the filter and
// returns the matches at positions [page*pageSize, (page+1)*pageSize).
// A page past the end yields an empty, non-nil slice.
func (f *Filter) Page(products []domain.SpecificProduct, order []int, page, pageSize int) []domain.SpecificProduct {
	out := make([]domain.SpecificProduct, 0)
	if page < 0 || pageSize <= 0 || page > (len(order)-1)/pageSize {
		return out
	}

	skip := page * pageSize
	if f.IsIdentity() {
		end := min(skip+pageSize, len(order))
		for _, pos := range order[skip:end] {
			out = append(out, products[pos])
		}
		return out
	}

	for _, pos := range order {
		p := &products[pos]
		if !f.Matches(p) {
			continue
		}
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, *p)
		if len(out) == pageSize {
			break
		}
	}
	return out
}

func toSet(values []string) map[string]struct{} {
	if values == nil {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
