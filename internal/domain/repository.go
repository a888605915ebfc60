package domain

import (
	"context"
	"time"
)

// CatalogClient defines the read-only surface of the remote catalog
// service. Every operation is one HTTP GET returning the decoded body;
// no caching and no retries happen at this layer.
type CatalogClient interface {
	FetchAll(ctx context.Context) ([]RawProduct, error)
	FetchByID(ctx context.Context, npID string) (*ComparisonResponse, error)
	Search(ctx context.Context, query string) ([]RawProduct, error)
	FetchFilterMeta(ctx context.Context) (*RawFilterMeta, error)
	FetchVendors(ctx context.Context) ([]Vendor, error)
	FetchProductListings(ctx context.Context, npID string) ([]RawListing, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
