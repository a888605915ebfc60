package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopscout/backend/internal/domain"
	"github.com/shopscout/backend/internal/infrastructure/catalog"
	"github.com/shopscout/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	compare *usecase.CompareService
	browse  *usecase.BrowseService
	catalog domain.CatalogClient
}

// NewHandler creates a new HTTP handler
func NewHandler(compare *usecase.CompareService, browse *usecase.BrowseService, client domain.CatalogClient) *Handler {
	return &Handler{
		compare: compare,
		browse:  browse,
		catalog: client,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shopscout-backend",
		"version": "1.0.0",
	})
}

// ListProducts returns the catalog, optionally filtered by category,
// sub_category and free-text q query parameters.
func (h *Handler) ListProducts(c *gin.Context) {
	var opts domain.FilterOptions
	if err := c.ShouldBindQuery(&opts); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filter parameters"})
		return
	}

	products, err := h.browse.Filter(c.Request.Context(), opts)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// SearchProducts proxies a free-text search to the catalog service.
func (h *Handler) SearchProducts(c *gin.Context) {
	products, err := h.browse.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetFilterMeta returns the category / sub-category metadata.
func (h *Handler) GetFilterMeta(c *gin.Context) {
	meta, err := h.browse.FilterMeta(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, meta)
}

// GetComparison returns the normalized comparison view for one np_id.
func (h *Handler) GetComparison(c *gin.Context) {
	view, err := h.compare.BuildView(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// ListVendors passes the vendors directory through.
func (h *Handler) ListVendors(c *gin.Context) {
	vendors, err := h.catalog.FetchVendors(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, vendors)
}

// GetProductListings returns the normalized listings of one product
// from the vendors endpoint. No price rows exist on this path, so
// prices come back as 0 ("unknown").
func (h *Handler) GetProductListings(c *gin.Context) {
	raw, err := h.catalog.FetchProductListings(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}

	listings := make([]domain.Listing, 0, len(raw))
	for _, l := range raw {
		listings = append(listings, catalog.MapListing(l, nil))
	}

	c.JSON(http.StatusOK, listings)
}

// renderError maps domain errors to HTTP statuses. Not-found is a
// distinct user state; upstream failures surface as 502 so the client
// can offer a retry.
func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, domain.ErrQueryTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"error": "search query must be longer than 2 characters"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request parameters"})
	case errors.Is(err, domain.ErrCatalogUnavailable), errors.Is(err, domain.ErrDecodeFailure):
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog service temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
