package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"school-placement/internal/config"
	"school-placement/internal/db"
	apihttp "school-placement/internal/http"
	"school-placement/internal/repository"
	"school-placement/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	catalog, err := config.LoadCatalog(cfg.ProgramCatalogPath)
	if err != nil {
		logger.Fatal("load program catalog", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	pgQualificationRepo := repository.NewPgQualificationRepository(pool)
	var qualificationRepo repository.QualificationRepository = pgQualificationRepo
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()

		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, qualification cache disabled", zap.Error(err))
		} else {
			qualificationRepo = service.NewCachedQualificationRepository(redisClient, qualificationRepo, cfg.QualificationCacheTTL, logger)
		}
		cancel()
	}

	studentRepo := repository.NewPgStudentRepository(pool)
	selectionRepo := repository.NewPgSelectionRepository(pool)

	qualificationGate := service.NewQualificationGate(qualificationRepo, logger)
	engine, err := service.NewRecommendationEngine(catalog, qualificationGate, logger)
	if err != nil {
		logger.Fatal("recommendation engine", zap.Error(err))
	}
	// La confirmacion consulta la lista sin cache.
	confirmationGate := service.NewQualificationGate(pgQualificationRepo, logger)
	confirmationSvc := service.NewConfirmationService(catalog, engine.Evaluator(), confirmationGate, selectionRepo, logger)

	placementHandler := apihttp.NewPlacementHandler(logger, engine, confirmationSvc, qualificationGate, studentRepo)
	router := apihttp.NewRouter(logger, placementHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.Int("programs", len(catalog.Programs)))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
