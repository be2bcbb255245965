package usecase

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/metalscrape/backend/internal/domain"
)

// PagingConfig bounds the page size a caller may request
type PagingConfig struct {
	DefaultPageSize int
	MaxPageSize     int
}

// boundParams maps each range to its lower and upper query parameter names
var boundParams = []struct {
	lower, upper string
	target       func(*domain.Filters) *domain.Range
}{
	{"lengthLower", "lengthUpper", func(f *domain.Filters) *domain.Range { return &f.Length }},
	{"poundsPerFootLower", "poundsPerFootUpper", func(f *domain.Filters) *domain.Range { return &f.PoundsPerFoot }},
	{"priceLower", "priceUpper", func(f *domain.Filters) *domain.Range { return &f.Price }},
	{"pricePerFootLower", "pricePerFootUpper", func(f *domain.Filters) *domain.Range { return &f.PricePerFoot }},
	{"pricePerPoundLower", "pricePerPoundUpper", func(f *domain.Filters) *domain.Range { return &f.PricePerPound }},
}

// ParseSearchParams converts request query values into a SearchQuery.
// Empty values are treated as absent. The attribute name is passed through
// unvalidated; the catalog rejects unknown names.
func ParseSearchParams(values url.Values, paging PagingConfig) (domain.SearchQuery, error) {
	q := domain.SearchQuery{
		Attribute: "index",
		Ascending: true,
		Page:      0,
		PageSize:  paging.DefaultPageSize,
	}

	if sort := strings.TrimSpace(values.Get("sort")); sort != "" {
		q.Attribute = sort
	}

	switch dir := strings.ToLower(strings.TrimSpace(values.Get("sortdir"))); dir {
	case "", "asc", "ascending":
	case "desc", "descending":
		q.Ascending = false
	default:
		return domain.SearchQuery{}, fmt.Errorf("%w: sortdir %q", domain.ErrInvalidQuery, dir)
	}

	q.Materials = listParam(values, "materials")
	q.Shapes = listParam(values, "shapes")

	for _, b := range boundParams {
		r := b.target(&q.Filters)
		var err error
		if r.Lower, err = floatParam(values, b.lower); err != nil {
			return domain.SearchQuery{}, err
		}
		if r.Upper, err = floatParam(values, b.upper); err != nil {
			return domain.SearchQuery{}, err
		}
	}

	if raw := strings.TrimSpace(values.Get("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return domain.SearchQuery{}, fmt.Errorf("%w: page %q", domain.ErrInvalidQuery, raw)
		}
		q.Page = page
	}

	if raw := strings.TrimSpace(values.Get("pageSize")); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return domain.SearchQuery{}, fmt.Errorf("%w: pageSize %q", domain.ErrInvalidQuery, raw)
		}
		q.PageSize = size
	}
	if paging.MaxPageSize > 0 && q.PageSize > paging.MaxPageSize {
		q.PageSize = paging.MaxPageSize
	}

	return q, nil
}

// listParam accepts both repeated keys and comma separated values.
// It returns nil when the parameter is absent or holds no names.
func listParam(values url.Values, key string) []string {
	var out []string
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func floatParam(values url.Values, key string) (*float64, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) {
		return nil, fmt.Errorf("%w: %s %q is not a number", domain.ErrInvalidQuery, key, raw)
	}
	return &v, nil
}
