package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/metalscrape/backend/internal/catalog"
	"github.com/metalscrape/backend/internal/domain"
	"github.com/metalscrape/backend/internal/platform/logger"
	"github.com/metalscrape/backend/internal/usecase"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// ProductCatalog is the read side of the product catalog
type ProductCatalog interface {
	Search(q domain.SearchQuery) ([]domain.SpecificProduct, error)
	Facets() catalog.Facets
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	catalog ProductCatalog
	paging  usecase.PagingConfig
	log     *logger.Logger
}

// NewHandler creates a new HTTP handler. A nil catalog makes the product
// endpoints answer 503.
func NewHandler(productCatalog ProductCatalog, paging usecase.PagingConfig, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.NewNop()
	}
	return &Handler{
		catalog: productCatalog,
		paging:  paging,
		log:     log.With("component", "HTTPHandler"),
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "metalscrape-backend",
		"version": Version,
	})
}

// SearchProducts handles GET /api/v1/products
func (h *Handler) SearchProducts(c *gin.Context) {
	if h.catalog == nil {
		RespondError(c, http.StatusServiceUnavailable, "catalog_unavailable", errors.New("catalog not loaded"))
		return
	}

	query, err := usecase.ParseSearchParams(c.Request.URL.Query(), h.paging)
	if err != nil {
		h.respondSearchError(c, err)
		return
	}

	results, err := h.catalog.Search(query)
	if err != nil {
		h.respondSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}

// Facets handles GET /api/v1/products/facets
func (h *Handler) Facets(c *gin.Context) {
	if h.catalog == nil {
		RespondError(c, http.StatusServiceUnavailable, "catalog_unavailable", errors.New("catalog not loaded"))
		return
	}
	c.JSON(http.StatusOK, h.catalog.Facets())
}

func (h *Handler) respondSearchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAttribute):
		RespondError(c, http.StatusBadRequest, "invalid_attribute", err)
	case errors.Is(err, domain.ErrInvalidQuery):
		RespondError(c, http.StatusBadRequest, "invalid_query", err)
	default:
		h.log.Error("Search failed", "error", err)
		RespondError(c, http.StatusInternalServerError, "internal_error", errors.New("internal server error"))
	}
}
