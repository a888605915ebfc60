package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopscout/backend/internal/domain"
	"golang.org/x/time/rate"
)

// MinQueryLength is the caller-side convention of the search endpoint:
// queries of trimmed length <= 2 are never sent upstream.
const MinQueryLength = 3

// maxErrorBodyBytes caps how much of an upstream error body is read
// for logging.
const maxErrorBodyBytes = 2048

// Client handles communication with the remote catalog API. It is a
// thin, stateless request layer: one HTTP GET per operation, decoded
// body returned verbatim, no caching and no retries. Every failure is
// reported to the caller as-is.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	debug       bool
}

// defaultTimeout bounds one catalog request end to end.
const defaultTimeout = 15 * time.Second

// NewClient creates a new catalog API client. A zero timeout falls
// back to the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	// Keep outbound pressure on the catalog service bounded; 20 req/s
	// with a small burst is far above anything the aggregator issues.
	limiter := rate.NewLimiter(rate.Limit(20), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: limiter,
	}
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

func (c *Client) debugLog(format string, args ...interface{}) {
	if c.debug {
		log.Printf("[CATALOG] "+format, args...)
	}
}

// getJSON executes one HTTP GET against the catalog API and decodes the
// JSON body into out. Transport failures and non-2xx statuses map to
// ErrCatalogUnavailable (404 to ErrProductNotFound), parse failures to
// ErrDecodeFailure.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	c.debugLog("GET %s", reqURL)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ShopScout/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		log.Printf("[CATALOG] API error - GET %s - Status: %d, Body: %s", path, resp.StatusCode, string(body))
		return fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDecodeFailure, err)
	}

	return nil
}

// FetchAll retrieves the full product catalog.
func (c *Client) FetchAll(ctx context.Context) ([]domain.RawProduct, error) {
	var products []domain.RawProduct
	if err := c.getJSON(ctx, "/api/products", nil, &products); err != nil {
		return nil, err
	}
	c.debugLog("FetchAll returned %d products", len(products))
	return products, nil
}

// FetchByID retrieves the raw comparison payload for one product id:
// listings, price rows and up to two suggestion references. Behavior on
// an unknown id is whatever the catalog service answers; nothing is
// validated locally.
func (c *Client) FetchByID(ctx context.Context, npID string) (*domain.ComparisonResponse, error) {
	if npID == "" {
		return nil, domain.ErrInvalidRequest
	}

	var resp domain.ComparisonResponse
	path := fmt.Sprintf("/api/products/id/%s", url.PathEscape(npID))
	if err := c.getJSON(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	c.debugLog("FetchByID %s returned %d listings, %d prices", npID, len(resp.Listings), len(resp.Prices))
	return &resp, nil
}

// Search queries the catalog by free text. Queries of trimmed length
// <= 2 are suppressed locally and never reach the upstream.
func (c *Client) Search(ctx context.Context, query string) ([]domain.RawProduct, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, domain.ErrQueryTooShort
	}

	params := url.Values{}
	params.Add("q", query)

	var products []domain.RawProduct
	if err := c.getJSON(ctx, "/api/products/search", params, &products); err != nil {
		return nil, err
	}
	c.debugLog("Search %q returned %d products", query, len(products))
	return products, nil
}

// FetchFilterMeta retrieves the category / sub-category metadata.
func (c *Client) FetchFilterMeta(ctx context.Context) (*domain.RawFilterMeta, error) {
	var meta domain.RawFilterMeta
	if err := c.getJSON(ctx, "/api/products/filters", nil, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// FetchVendors retrieves the vendors directory. Not consumed by the
// comparison aggregator but part of the client surface.
func (c *Client) FetchVendors(ctx context.Context) ([]domain.Vendor, error) {
	var vendors []domain.Vendor
	if err := c.getJSON(ctx, "/api/vendors", nil, &vendors); err != nil {
		return nil, err
	}
	return vendors, nil
}

// FetchProductListings retrieves the raw listings of one product from
// the vendors endpoint.
func (c *Client) FetchProductListings(ctx context.Context, npID string) ([]domain.RawListing, error) {
	if npID == "" {
		return nil, domain.ErrInvalidRequest
	}

	var listings []domain.RawListing
	path := fmt.Sprintf("/api/vendors/product/%s", url.PathEscape(npID))
	if err := c.getJSON(ctx, path, nil, &listings); err != nil {
		return nil, err
	}
	return listings, nil
}
