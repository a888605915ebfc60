package domain

import "encoding/json"

// Raw catalog API shapes. The upstream is loosely typed: ids and
// numeric fields arrive as JSON numbers or numeric strings depending on
// the data source, and vendor/url fields appear under several names.
// Normalization into the canonical types happens in exactly one place,
// the catalog package's mapper.

// FlexString decodes a JSON string or number into a string. np_id and
// listing ids arrive in both shapes.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }

// RawProduct is a product summary as returned by the list and search
// endpoints.
type RawProduct struct {
	NpID        FlexString `json:"np_id"`
	ProductName string     `json:"product_name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	SubCategory string     `json:"sub_category"`
	BrandName   string     `json:"brand_name"`
	ImageURL    string     `json:"image_url"`
	Rating      any        `json:"rating"`
	TrustScore  any        `json:"trust_score"`
}

// RawListing is one vendor listing inside a comparison response. The
// vendor key and product-page URL each have fallback field names.
type RawListing struct {
	ID             FlexString `json:"id"`
	Site           string     `json:"site"`
	WebsiteName    string     `json:"website_name"`
	VendorName     string     `json:"vendor_name"`
	SiteURL        string     `json:"site_url"`
	URL            string     `json:"url"`
	ProductURL     string     `json:"product_url"`
	ProductName    string     `json:"product_name"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	SubCategory    string     `json:"sub_category"`
	BrandName      string     `json:"brand_name"`
	ImageURL       string     `json:"image_url"`
	Rating         any        `json:"rating"`
	TrustScore     any        `json:"trust_score"`
	DaysToDeliver  any        `json:"days_to_deliver"`
	FreeDelivery   bool       `json:"free_delivery"`
	CashOnDelivery bool       `json:"cash_on_delivery"`
	ReturnPolicy   string     `json:"return_policy"`
}

// RawPrice is one vendor price row, joined to a listing by vendor key.
// At most one row per vendor per product.
type RawPrice struct {
	Site        string `json:"site"`
	WebsiteName string `json:"website_name"`
	VendorName  string `json:"vendor_name"`
	Price       any    `json:"price"`
}

// SuggestionRefs carries up to two related product ids alongside a
// comparison response.
type SuggestionRefs struct {
	Suggestion1 FlexString `json:"suggestion1"`
	Suggestion2 FlexString `json:"suggestion2"`
}

// ComparisonResponse is the raw fetch-by-id payload.
type ComparisonResponse struct {
	NpID        FlexString     `json:"np_id"`
	Listings    []RawListing   `json:"listings"`
	Prices      []RawPrice     `json:"prices"`
	Suggestions SuggestionRefs `json:"suggestions"`
}

// RawFilterMeta is the raw filter metadata payload.
type RawFilterMeta struct {
	Categories    []string         `json:"categories"`
	SubCategories []RawSubCategory `json:"sub_categories"`
}

// RawSubCategory pairs a sub-category name with its parent category.
type RawSubCategory struct {
	Name   string `json:"name"`
	Parent string `json:"parent"`
}
