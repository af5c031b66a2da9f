package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/prepsense/backend/config"
	httpDelivery "github.com/prepsense/backend/internal/delivery/http"
	"github.com/prepsense/backend/internal/domain"
	"github.com/prepsense/backend/internal/infrastructure/cache"
	"github.com/prepsense/backend/internal/infrastructure/fooddb"
	"github.com/prepsense/backend/internal/infrastructure/memstore"
	"github.com/prepsense/backend/internal/infrastructure/sqlitestore"
	"github.com/prepsense/backend/internal/pkg/logging"
	"github.com/prepsense/backend/internal/usecase"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting prepsense pantry backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Type),
		zap.String("cache", cfg.Cache.Type),
	)

	// Pantry store
	var repo domain.PantryRepository
	switch cfg.Store.Type {
	case "sqlite":
		store, err := sqlitestore.New(cfg.Store.SQLitePath)
		if err != nil {
			logger.Fatal("failed to open sqlite store", zap.Error(err))
		}
		defer store.Close()
		repo = store
	default:
		logger.Warn("using in-memory store; inventory will not survive restarts")
		repo = memstore.New()
	}

	// Category lookup cache
	var categoryCache domain.CacheRepository
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(context.Background(), cfg.Cache.RedisURL)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisCache.Close()
		categoryCache = redisCache
	default:
		categoryCache = cache.NewMemoryCache(cfg.Cache.MaxEntries)
	}

	// External food database (optional)
	var foodSource domain.FoodDataSource
	if cfg.FoodDB.Enabled {
		foodSource = fooddb.NewClient(cfg.FoodDB.APIKey, cfg.FoodDB.BaseURL, cfg.RateLimit.FoodDB, logger)
		logger.Info("food database configured", zap.String("baseURL", cfg.FoodDB.BaseURL))
	} else {
		logger.Warn("food database disabled; category resolution stops at the keyword table")
	}

	resolver := usecase.NewCategoryResolver(foodSource, categoryCache, cfg.Cache.TTL, logger)

	matcher := usecase.NewMatcher(usecase.MatcherConfig{
		SimilarityThreshold: cfg.Matching.SimilarityThreshold,
		EnableFuzzyMatching: cfg.Matching.EnableFuzzyMatching,
		FuzzyEditDistance:   cfg.Matching.FuzzyEditDistance,
	}, logger)

	ledger := usecase.NewLedger(repo, matcher, usecase.LedgerConfig{
		DeductionTimeout: cfg.Ledger.DeductionTimeout,
	}, logger)

	logger.Info("matcher configured",
		zap.Float64("similarityThreshold", cfg.Matching.SimilarityThreshold),
		zap.Bool("fuzzy", cfg.Matching.EnableFuzzyMatching),
	)

	handler := httpDelivery.NewHandler(ledger, resolver, repo, logger)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
