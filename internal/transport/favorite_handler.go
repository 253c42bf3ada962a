package transport

import (
	"net/http"

	"maison-gda/internal/middleware"
	"maison-gda/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ToggleFavoriteRequest is the body of POST /api/favorites
type ToggleFavoriteRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
}

// FavoriteHandler serves the signed-in user's favorites
type FavoriteHandler struct {
	favoriteService service.FavoriteService
	logger          *zap.Logger
}

// NewFavoriteHandler creates a new FavoriteHandler
func NewFavoriteHandler(favoriteService service.FavoriteService, logger *zap.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
		logger:          logger,
	}
}

// RegisterRoutes registers the favorites routes. Both require a session;
// toggles additionally go through toggleLimit.
func (h *FavoriteHandler) RegisterRoutes(r chi.Router, authMiddleware, toggleLimit func(http.Handler) http.Handler) {
	r.Route("/api/favorites", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListFavorites)
		r.With(toggleLimit).Post("/", h.ToggleFavorite)
	})
}

// ListFavorites handles GET /api/favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	favorites, err := h.favoriteService.List(r.Context(), userID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to list favorites")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"favorites": favorites})
}

// ToggleFavorite handles POST /api/favorites
func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		middleware.RespondWithError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ToggleFavoriteRequest
	if !decodeRequest(w, r, h.logger, &req) {
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithValidationErrors(w, []middleware.ValidationError{
			{Field: "productId", Message: "Must be a valid UUID"},
		})
		return
	}

	result, err := h.favoriteService.Toggle(r.Context(), userID, productID)
	if err != nil {
		respondWithServiceError(w, h.logger, err, "failed to toggle favorite")
		return
	}

	h.logger.Info("Favorite toggled",
		zap.String("user_id", userID.String()),
		zap.String("product_id", productID.String()),
		zap.String("result", string(result)),
	)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": result.Message()})
}
