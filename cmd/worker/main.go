package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/bizli/geo-service/internal/config"
	"github.com/bizli/geo-service/internal/infrastructure/nominatim"
	"github.com/bizli/geo-service/internal/pkg/logger"
	"github.com/bizli/geo-service/internal/repository/cache"
	"github.com/bizli/geo-service/internal/repository/postgres"
	redisRepo "github.com/bizli/geo-service/internal/repository/redis"
	"github.com/bizli/geo-service/internal/worker"
	"github.com/bizli/geo-service/internal/worker/geocode"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.NewNamed(cfg.Log.Level, "worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Geocode Backfill Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries),
		zap.Int("sweep_batch_size", cfg.Worker.SweepBatchSize),
		zap.Strings("countries", cfg.Worker.Countries))

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

	// 5. Initialize repositories
	businessRepo := postgres.NewBusinessRepository(db)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), cfg.Worker.StreamReadTimeout, log)
	geocoder := nominatim.NewClient(&cfg.Geocoder, log)

	// 6. Initialize workers
	backfillWorker := geocode.NewBackfillWorker(
		streamRepo,
		businessRepo,
		geocoder,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		cfg.Worker.SweepBatchSize,
		cfg.Worker.Countries,
		cfg.Geocoder.DefaultLanguage,
		log,
	)

	// 7. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(backfillWorker)

	// 8. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
