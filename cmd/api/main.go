package main

// @title Bizli Geo Service API
// @version 1.0.0
// @description Гео-сервис платформы бронирования Bizli. Предоставляет API для иерархических географических справочников (страна, штат, департамент, город, район), поиска бизнесов по локации и радиусу, расширенного поиска с фильтрами и обратного геокодирования позиции пользователя.
// @description
// @description Основные возможности:
// @description - Кешируемые справочники географических уровней с локализацией (en, fr, es, ht)
// @description - Поиск бизнесов по стране/штату/городу с фильтром по радиусу
// @description - Расширенный поиск с фильтрами и чипами активных фильтров
// @description - Обратное геокодирование и гидратация сохраненного выбора локации

// @contact.name API Support
// @contact.email support@bizli.solutions

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/bizli/geo-service/docs/swagger"
	"github.com/bizli/geo-service/internal/config"
	httpDelivery "github.com/bizli/geo-service/internal/delivery/http"
	"github.com/bizli/geo-service/internal/delivery/http/handler"
	"github.com/bizli/geo-service/internal/infrastructure/nominatim"
	"github.com/bizli/geo-service/internal/pkg/logger"
	"github.com/bizli/geo-service/internal/repository/cache"
	"github.com/bizli/geo-service/internal/repository/memory"
	"github.com/bizli/geo-service/internal/repository/postgres"
	"github.com/bizli/geo-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.NewNamed(cfg.Log.Level, "api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Bizli Geo Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Connect to PostgreSQL
	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()
	log.Info("PostgreSQL connected")

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Initialize Repositories
	geoRepo := postgres.NewGeographyRepository(db)
	businessRepo := postgres.NewBusinessRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	geoCache := memory.NewGeographyCache()
	geocoder := nominatim.NewClient(&cfg.Geocoder, log)

	log.Info("Repositories initialized")

	// 7. Initialize Use Cases
	geoUC := usecase.NewGeographyUseCase(geoRepo, geoCache, log)

	businessUC := usecase.NewBusinessUseCase(businessRepo, log)

	searchUC := usecase.NewSearchUseCase(
		businessRepo,
		geoUC,
		cacheRepo,
		log,
		cfg.Cache.SearchCacheTTL,
	)

	log.Info("Use cases initialized")

	// 8. Initialize HTTP Handlers
	geographyHandler := handler.NewGeographyHandler(geoUC, log)
	businessHandler := handler.NewBusinessHandler(businessUC, searchUC, log)
	selectionHandler := handler.NewSelectionHandler(geoUC, geocoder, log)

	log.Info("HTTP handlers initialized")

	// 9. Initialize HTTP Server
	server := httpDelivery.NewServer(
		cfg,
		log,
		geographyHandler,
		businessHandler,
		selectionHandler,
	)

	log.Info("HTTP server initialized")

	// 10. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 11. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
