package domain

import "errors"

var (
	// ErrProductNotFound is returned when a product id resolves to no
	// listings. A business condition, never conflated with transport
	// failures.
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrCatalogUnavailable is returned when a catalog API request fails
	// at the transport level or with a non-2xx status.
	ErrCatalogUnavailable = errors.New("catalog service request failed")

	// ErrDecodeFailure is returned when a catalog response body cannot be
	// decoded into the expected shape.
	ErrDecodeFailure = errors.New("malformed catalog response")

	// ErrQueryTooShort is returned when a search query of trimmed length
	// <= 2 is suppressed before reaching the catalog service.
	ErrQueryTooShort = errors.New("search query too short")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
