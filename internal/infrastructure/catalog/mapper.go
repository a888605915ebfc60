package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopscout/backend/internal/domain"
)

// The upstream catalog is loosely typed: numeric fields arrive as JSON
// numbers or numeric strings, and the vendor key / product URL appear
// under several field names. This file is the single place where raw
// records become canonical domain records.

// LenientNumber coerces a loosely typed value to float64. Missing or
// non-numeric input yields 0 and never an error; callers must treat a
// zero price as "unknown", not as a genuine free item.
func LenientNumber(v interface{}) float64 {
	switch n := v.(type) {
	case nil:
		return 0
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// NormalizeText lowercases and trims a value. Applied uniformly to
// stored data and filter inputs so comparisons always run on
// pre-normalized text.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// vendorKey resolves the vendor identity of a listing across the
// upstream's inconsistent field names.
func vendorKey(site, websiteName, vendorName string) string {
	if site != "" {
		return site
	}
	if websiteName != "" {
		return websiteName
	}
	return vendorName
}

// listingURL resolves the product-page URL across fallback field names.
func listingURL(l domain.RawListing) string {
	if l.SiteURL != "" {
		return l.SiteURL
	}
	if l.URL != "" {
		return l.URL
	}
	return l.ProductURL
}

// priceFor joins a listing to its price row by vendor key. First match
// wins when duplicate rows exist; no match yields 0.
func priceFor(vendor string, prices []domain.RawPrice) float64 {
	for _, p := range prices {
		if vendorKey(p.Site, p.WebsiteName, p.VendorName) == vendor {
			return LenientNumber(p.Price)
		}
	}
	return 0
}

// MapListing normalizes one raw listing, joining its price row from the
// separate price collection.
func MapListing(l domain.RawListing, prices []domain.RawPrice) domain.Listing {
	vendor := vendorKey(l.Site, l.WebsiteName, l.VendorName)

	return domain.Listing{
		Vendor:         vendor,
		URL:            listingURL(l),
		Price:          priceFor(vendor, prices),
		Rating:         LenientNumber(l.Rating),
		TrustScore:     LenientNumber(l.TrustScore),
		DeliveryDays:   int(LenientNumber(l.DaysToDeliver)),
		FreeDelivery:   l.FreeDelivery,
		CashOnDelivery: l.CashOnDelivery,
		ReturnPolicy:   l.ReturnPolicy,
	}
}

// MapComparison normalizes a raw comparison response: product metadata
// is copied from the first listing (all listings of one np_id share
// identical descriptive fields) and every listing is price-joined in
// its original order. Empty listings mean the product does not exist.
func MapComparison(resp *domain.ComparisonResponse) (*domain.Product, []domain.Listing, error) {
	if resp == nil || len(resp.Listings) == 0 {
		return nil, nil, domain.ErrProductNotFound
	}

	first := resp.Listings[0]
	product := &domain.Product{
		NpID:        resp.NpID.String(),
		Name:        first.ProductName,
		Description: first.Description,
		Category:    first.Category,
		SubCategory: first.SubCategory,
		Brand:       first.BrandName,
		ImageURL:    first.ImageURL,
	}

	listings := make([]domain.Listing, 0, len(resp.Listings))
	for _, l := range resp.Listings {
		listings = append(listings, MapListing(l, resp.Prices))
	}

	return product, listings, nil
}

// MapSuggestion projects a comparison response into the abbreviated
// suggestion summary. No price or listing data is carried over.
func MapSuggestion(npID string, resp *domain.ComparisonResponse) (*domain.Suggestion, error) {
	if resp == nil || len(resp.Listings) == 0 {
		return nil, domain.ErrProductNotFound
	}

	first := resp.Listings[0]
	return &domain.Suggestion{
		NpID:        npID,
		Name:        first.ProductName,
		Description: first.Description,
		Brand:       first.BrandName,
		Category:    first.Category,
		SubCategory: first.SubCategory,
		ImageURL:    first.ImageURL,
		Rating:      LenientNumber(first.Rating),
		TrustScore:  LenientNumber(first.TrustScore),
	}, nil
}

// MapProduct normalizes one product summary record.
func MapProduct(raw domain.RawProduct) domain.Product {
	return domain.Product{
		NpID:        raw.NpID.String(),
		Name:        raw.ProductName,
		Description: raw.Description,
		Category:    raw.Category,
		SubCategory: raw.SubCategory,
		Brand:       raw.BrandName,
		ImageURL:    raw.ImageURL,
		Rating:      LenientNumber(raw.Rating),
		TrustScore:  LenientNumber(raw.TrustScore),
	}
}

// MapProducts normalizes a product summary sequence, preserving order.
func MapProducts(raw []domain.RawProduct) []domain.Product {
	products := make([]domain.Product, 0, len(raw))
	for _, r := range raw {
		products = append(products, MapProduct(r))
	}
	return products
}

// MapFilterMeta normalizes filter metadata; category and sub-category
// values are lowercased and trimmed at the boundary so browse
// comparisons never re-normalize.
func MapFilterMeta(raw *domain.RawFilterMeta) *domain.FilterMeta {
	meta := &domain.FilterMeta{
		Categories:    make([]string, 0, len(raw.Categories)),
		SubCategories: make([]domain.SubCategory, 0, len(raw.SubCategories)),
	}
	for _, c := range raw.Categories {
		meta.Categories = append(meta.Categories, NormalizeText(c))
	}
	for _, sc := range raw.SubCategories {
		meta.SubCategories = append(meta.SubCategories, domain.SubCategory{
			Name:   NormalizeText(sc.Name),
			Parent: NormalizeText(sc.Parent),
		})
	}
	return meta
}
