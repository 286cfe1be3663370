package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/example/ec-showcase/internal/app"
	"github.com/example/ec-showcase/internal/config"
	"github.com/example/ec-showcase/internal/domain/catalog"
	"github.com/example/ec-showcase/internal/infrastructure/kafka"
	"github.com/example/ec-showcase/internal/logging"
	"github.com/example/ec-showcase/internal/projection"
	"go.uber.org/zap"
)

// The projector evicts cached collection product lists when the catalog
// publishes product changes. It runs beside the API when the cache is shared.
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath := getEnv("SHOWCASE_CONFIG", "showcase.yaml")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[Projector] Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[Projector] %v", err)
	}
	if !cfg.Cache.Enabled {
		log.Fatal("[Projector] cache must be enabled (set REDIS_ADDR)")
	}
	if !cfg.Kafka.Enabled {
		log.Fatal("[Projector] kafka must be enabled (set KAFKA_BROKERS)")
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("[Projector] %v", err)
	}
	defer logger.Sync()

	consumerGroup := getEnv("KAFKA_CONSUMER_GROUP", cfg.Kafka.GroupID)

	prods, err := app.OpenProducts(ctx, cfg, catalog.Default(), logger)
	if err != nil {
		logger.Fatal("failed to open product source", zap.Error(err))
	}
	defer prods.Close()

	projector := projection.NewProjector(prods.Cache, logger)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, consumerGroup, logger)
	defer consumer.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		logger.Info("starting event consumer",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Kafka.Topic),
			zap.String("group", consumerGroup))
		if err := consumer.Consume(ctx, projector.HandleEvent); err != nil && ctx.Err() == nil {
			logger.Error("consumer error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	cancel()
	<-done
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
