package domain

import "errors"

var (
	// ErrDataIntegrity is returned when a variation references a product missing from its bundle
	ErrDataIntegrity = errors.New("catalog data integrity violation")

	// ErrInvalidQuery is returned when search parameters are malformed
	ErrInvalidQuery = errors.New("invalid query")

	// ErrInvalidAttribute is returned when the sort attribute is not a public product field
	ErrInvalidAttribute = errors.New("invalid sort attribute")

	// ErrBundleNotFound is returned when a stored category cannot be found
	ErrBundleNotFound = errors.New("product bundle not found")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrVendorAPIFailure is returned when a vendor request fails
	ErrVendorAPIFailure = errors.New("vendor request failed")

	// ErrProductParse is returned when a listing row cannot be parsed
	ErrProductParse = errors.New("unable to parse product listing")

	// ErrLengthNotOffered is returned when a length is not sold for a product
	ErrLengthNotOffered = errors.New("length not offered for product")
)
