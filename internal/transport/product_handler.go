package transport

import (
	"net/http"

	"maison-gda/internal/middleware"
	"maison-gda/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductHandler serves the public catalog
type ProductHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers the catalog routes. optionalAuth identifies the
// viewer on product detail without requiring a session.
func (h *ProductHandler) RegisterRoutes(r chi.Router, optionalAuth func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.With(optionalAuth).Get("/{slug}", h.GetProduct)
	})
	r.Get("/api/brands", h.ListBrands)
	r.Get("/api/categories", h.ListCategories)
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params, parseErrors := parseListProductsParams(r.URL.Query())
	if len(parseErrors) > 0 {
		h.logger.Debug("Malformed listing parameters", zap.String("query", r.URL.RawQuery))
		middleware.RespondWithValidationErrors(w, parseErrors)
		return
	}

	if err := middleware.ValidateRequest(params); err != nil {
		h.logger.Debug("Listing parameters failed validation", zap.Error(err))
		middleware.RespondWithValidationErrors(w, middleware.FormatValidationErrors(err))
		return
	}

	page, err := h.catalogService.ListProducts(r.Context(), params.Query())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, page)
}

// GetProduct handles GET /api/products/{slug}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	var viewerID *uuid.UUID
	if userID, ok := middleware.GetUserID(r.Context()); ok {
		viewerID = &userID
	}

	product, err := h.catalogService.GetProductBySlug(r.Context(), chi.URLParam(r, "slug"), viewerID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// ListBrands handles GET /api/brands
func (h *ProductHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalogService.ListBrands(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to list brands")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"brands": brands})
}

// ListCategories handles GET /api/categories
func (h *ProductHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context())
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}
