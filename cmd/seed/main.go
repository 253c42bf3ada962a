package main

import (
	"context"
	"fmt"
	"time"

	"maison-gda/internal/cache"
	"maison-gda/internal/config"
	"maison-gda/internal/database"
	"maison-gda/internal/logger"
	"maison-gda/internal/seed"
	"maison-gda/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// A missing .env is fine, the environment may already be set
	_ = godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dbService, err := database.New(ctx, &cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbService.Close()

	if err := database.RunMigrations(ctx, dbService.DB(), log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	var taxonomy seed.Invalidator
	if redisClient, err := cache.NewRedisClient(ctx, &cfg.Redis); err != nil {
		log.Warn("Redis unavailable, taxonomy cache not invalidated", zap.Error(err))
	} else {
		defer redisClient.Close()
		taxonomy = cache.NewTaxonomyCache(redisClient, cfg.Catalog.CacheTTL)
	}

	seeder := seed.NewSeeder(dbService.DB(), service.TokenSettings{Secret: cfg.JWT.Secret}, taxonomy, log)
	summary, err := seeder.Run(ctx, cfg.Seed)
	if err != nil {
		log.Fatal("Seed failed", zap.Error(err))
	}

	log.Info("Seed completed",
		zap.Int("brands", summary.Brands),
		zap.Int("categories", summary.Categories),
		zap.Int("products", summary.Products),
		zap.Int("favorites", summary.Favorites),
		zap.String("user_id", summary.UserID.String()),
	)
}
