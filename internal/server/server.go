package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"maison-gda/internal/cache"
	"maison-gda/internal/config"
	"maison-gda/internal/database"
	custommiddleware "maison-gda/internal/middleware"
	"maison-gda/internal/repository"
	"maison-gda/internal/service"
	"maison-gda/internal/transport"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     database.Service
	redis  *cache.RedisClient
}

// NewServer wires the storefront API. redis may be nil, in which case rate
// limiting and the taxonomy cache are disabled.
func NewServer(cfg *config.Config, logger *zap.Logger, db database.Service, redis *cache.RedisClient) *Server {
	router := chi.NewRouter()

	for _, mw := range custommiddleware.DefaultMiddlewareStack(cfg.Server.TrustProxy) {
		router.Use(mw)
	}
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.Server.IsDevelopment()))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	s := &Server{
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redis,
	}

	router.Get("/health", s.health)

	// Initialize repositories
	sqlDB := db.DB()
	userRepo := repository.NewUserRepository(sqlDB)
	refreshTokenRepo := repository.NewRefreshTokenRepository(sqlDB)
	productRepo := repository.NewProductRepository(sqlDB)
	brandRepo := repository.NewBrandRepository(sqlDB)
	categoryRepo := repository.NewCategoryRepository(sqlDB)
	favoriteRepo := repository.NewFavoriteRepository(sqlDB)

	var taxonomy service.TaxonomyCache
	if redis != nil {
		taxonomy = cache.NewTaxonomyCache(redis, cfg.Catalog.CacheTTL)
	}

	// Initialize services
	userService := service.NewUserService(userRepo, refreshTokenRepo, service.TokenSettings{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  time.Duration(cfg.JWT.AccessExpiry) * time.Minute,
		RefreshTTL: time.Duration(cfg.JWT.RefreshExpiry) * 24 * time.Hour,
	})
	catalogService := service.NewCatalogService(productRepo, brandRepo, categoryRepo, favoriteRepo, taxonomy, logger)
	favoriteService := service.NewFavoriteService(favoriteRepo)

	authMiddleware := custommiddleware.AuthMiddleware(cfg.JWT.Secret, logger)
	optionalAuth := custommiddleware.OptionalAuthMiddleware(cfg.JWT.Secret, logger)

	// Register routes
	transport.NewUserHandler(userService, logger).RegisterRoutes(router, authMiddleware, s.rateLimit("ratelimit:auth"))
	transport.NewProductHandler(catalogService, logger).RegisterRoutes(router, optionalAuth)
	transport.NewFavoriteHandler(favoriteService, logger).RegisterRoutes(router, authMiddleware, s.rateLimit("ratelimit:favorites"))

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// rateLimit returns the limiter for one route group, or a no-op without Redis
func (s *Server) rateLimit(prefix string) func(http.Handler) http.Handler {
	if s.redis == nil || s.config.RateLimit.Requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return custommiddleware.RateLimitMiddleware(s.redis.Client(), custommiddleware.RateLimitConfig{
		RequestsPerWindow: s.config.RateLimit.Requests,
		Window:            s.config.RateLimit.Window,
		KeyPrefix:         prefix,
	}, s.logger)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	dbHealth := s.db.Health(r.Context())
	if dbHealth["status"] != "up" {
		status = http.StatusServiceUnavailable
	}

	redisStatus := "disabled"
	if s.redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), time.Second)
		defer cancel()
		redisStatus = "up"
		if err := s.redis.Ping(ctx); err != nil {
			redisStatus = "down"
		}
	}

	custommiddleware.RespondWithJSON(w, status, map[string]interface{}{
		"database": dbHealth,
		"redis":    redisStatus,
	})
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	_ = s.logger.Sync()
	return nil
}
