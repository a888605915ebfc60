package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/infrastructure/catalog"
)

// Cache keys for the catalog snapshot used by browsing.
const (
	productsCacheKey   = "catalog:products"
	filterMetaCacheKey = "catalog:filtermeta"
)

// BrowseServiceConfig holds configuration for the browse service
type BrowseServiceConfig struct {
	CacheTTL time.Duration
}

// BrowseService serves catalog browsing: the full product list, filter
// metadata, and the client-side-style linear filter over an in-memory
// snapshot. Products are stored pre-normalized (lowercase + trim) so
// every comparison runs on normalized values.
type BrowseService struct {
	cache    domain.CacheRepository
	catalog  domain.CatalogClient
	cacheTTL time.Duration
}

// NewBrowseService creates a new browse service with dependencies
func NewBrowseService(cache domain.CacheRepository, client domain.CatalogClient, config BrowseServiceConfig) *BrowseService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 5 * time.Minute
	}

	return &BrowseService{
		cache:    cache,
		catalog:  client,
		cacheTTL: cacheTTL,
	}
}

// Products returns the normalized full catalog, cache-first. A cache
// write failure is logged and ignored.
func (s *BrowseService) Products(ctx context.Context) ([]domain.Product, error) {
	if cached, err := s.cache.Get(ctx, productsCacheKey); err == nil {
		if products, ok := cached.([]domain.Product); ok {
			return products, nil
		}
	}

	raw, err := s.catalog.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	products := catalog.MapProducts(raw)
	for i := range products {
		normalizeProduct(&products[i])
	}

	if err := s.cache.Set(ctx, productsCacheKey, products, s.cacheTTL); err != nil {
		log.Printf("[BROWSE] caching products failed: %v", err)
	}

	return products, nil
}

// Filter returns the subsequence of the catalog satisfying the ANDed
// predicates of opts. An unset predicate is always true. Category and
// sub-category match exactly; the free-text query matches as a
// substring of the name or the description.
func (s *BrowseService) Filter(ctx context.Context, opts domain.FilterOptions) ([]domain.Product, error) {
	products, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}

	category := catalog.NormalizeText(opts.Category)
	subCategory := catalog.NormalizeText(opts.SubCategory)
	query := catalog.NormalizeText(opts.Query)

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if subCategory != "" && p.SubCategory != subCategory {
			continue
		}
		if query != "" && !strings.Contains(p.Name, query) && !strings.Contains(p.Description, query) {
			continue
		}
		filtered = append(filtered, p)
	}

	return filtered, nil
}

// FilterMeta returns the normalized category metadata, cache-first.
func (s *BrowseService) FilterMeta(ctx context.Context) (*domain.FilterMeta, error) {
	if cached, err := s.cache.Get(ctx, filterMetaCacheKey); err == nil {
		if meta, ok := cached.(*domain.FilterMeta); ok {
			return meta, nil
		}
	}

	raw, err := s.catalog.FetchFilterMeta(ctx)
	if err != nil {
		return nil, err
	}

	meta := catalog.MapFilterMeta(raw)

	if err := s.cache.Set(ctx, filterMetaCacheKey, meta, s.cacheTTL); err != nil {
		log.Printf("[BROWSE] caching filter meta failed: %v", err)
	}

	return meta, nil
}

// Search passes a free-text query to the catalog service and returns
// normalized summaries. Short queries fail with ErrQueryTooShort
// before any request is issued.
func (s *BrowseService) Search(ctx context.Context, query string) ([]domain.Product, error) {
	raw, err := s.catalog.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	return catalog.MapProducts(raw), nil
}

// normalizeProduct lowercases and trims the filterable text fields in
// place, once, at load time.
func normalizeProduct(p *domain.Product) {
	p.Name = catalog.NormalizeText(p.Name)
	p.Description = catalog.NormalizeText(p.Description)
	p.Category = catalog.NormalizeText(p.Category)
	p.SubCategory = catalog.NormalizeText(p.SubCategory)
}
