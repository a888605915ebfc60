package domain

// Product holds the descriptive metadata of a catalog product. For a
// comparison view it is sourced from the first listing returned for the
// np_id; every listing of one product carries identical metadata.
type Product struct {
	NpID        string  `json:"np_id"`
	Name        string  `json:"product_name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category,omitempty"`
	SubCategory string  `json:"sub_category,omitempty"`
	Brand       string  `json:"brand_name,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	TrustScore  float64 `json:"trust_score,omitempty"`
}

// Listing is one vendor's offer of a product. Price is joined from the
// separate price collection; 0 means "unknown", not free.
type Listing struct {
	Vendor         string  `json:"website_name"`
	URL            string  `json:"url"`
	Price          float64 `json:"price"`
	Rating         float64 `json:"rating"`
	TrustScore     float64 `json:"trust_score"`
	DeliveryDays   int     `json:"estimated_delivery_days"`
	FreeDelivery   bool    `json:"free_delivery"`
	CashOnDelivery bool    `json:"cash_on_delivery"`
	ReturnPolicy   string  `json:"return_policy,omitempty"`
}

// Suggestion is the abbreviated summary of a related product, resolved
// from its own comparison response. Carries no price or listing data.
type Suggestion struct {
	NpID        string  `json:"np_id"`
	Name        string  `json:"product_name"`
	Description string  `json:"description,omitempty"`
	Brand       string  `json:"brand_name,omitempty"`
	Category    string  `json:"category,omitempty"`
	SubCategory string  `json:"sub_category,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	Rating      float64 `json:"rating"`
	TrustScore  float64 `json:"trust_score"`
}

// ComparisonView is the normalized per-request aggregate handed to
// presentation: product metadata, ordered listings, 0-2 suggestions.
// Rebuilt fresh on every request; nothing persists.
type ComparisonView struct {
	Product     Product      `json:"product"`
	Listings    []Listing    `json:"listings"`
	Suggestions []Suggestion `json:"suggestions"`
	BestDeal    *Listing     `json:"best_deal,omitempty"`
}

// Vendor is an entry from the vendors directory. Part of the catalog
// client surface; the comparison aggregator does not consume it.
type Vendor struct {
	Name       string  `json:"name"`
	URL        string  `json:"url,omitempty"`
	TrustScore float64 `json:"trust_score,omitempty"`
}

// SubCategory pairs a sub-category with its parent category.
type SubCategory struct {
	Name   string `json:"name"`
	Parent string `json:"parent"`
}

// FilterMeta is the filter metadata used to drive category browsing.
type FilterMeta struct {
	Categories    []string      `json:"categories"`
	SubCategories []SubCategory `json:"sub_categories"`
}

// FilterOptions are the optional browse predicates. Empty fields mean
// "no constraint" for that predicate; set fields are ANDed together.
type FilterOptions struct {
	Category    string `form:"category" json:"category"`
	SubCategory string `form:"sub_category" json:"sub_category"`
	Query       string `form:"q" json:"q"`
}
