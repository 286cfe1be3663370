package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/example/ec-showcase/internal/api"
	"github.com/example/ec-showcase/internal/app"
	"github.com/example/ec-showcase/internal/auth"
	"github.com/example/ec-showcase/internal/config"
	"github.com/example/ec-showcase/internal/domain/catalog"
	"github.com/example/ec-showcase/internal/infrastructure/kafka"
	"github.com/example/ec-showcase/internal/logging"
	"github.com/example/ec-showcase/internal/projection"
	"github.com/example/ec-showcase/internal/query"
	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath := getEnv("SHOWCASE_CONFIG", "showcase.yaml")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("[API] Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[API] %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("[API] %v", err)
	}
	defer logger.Sync()

	logger.Info("starting showcase service",
		zap.String("config", configPath),
		zap.String("addr", cfg.Server.Addr),
		zap.String("products", cfg.Products.Source),
		zap.Bool("cache", cfg.Cache.Enabled),
		zap.Bool("kafka", cfg.Kafka.Enabled),
		zap.Duration("rotation_interval", cfg.GetRotationInterval()))

	store := catalog.Default()

	prods, err := app.OpenProducts(ctx, cfg, store, logger)
	if err != nil {
		logger.Fatal("failed to open product source", zap.Error(err))
	}
	defer prods.Close()

	delivery, err := app.NewDelivery(cfg.Imaging, logger)
	if err != nil {
		logger.Fatal("failed to configure image delivery", zap.Error(err))
	}

	holder := config.NewHolder(cfg)
	queryHandler := query.NewHandler(store, prods.Source, holder, delivery, logger)

	clock := api.NewSharedClock(holder.RotationInterval())
	defer clock.Stop()

	var invalidator projection.Invalidator
	if prods.Cache != nil {
		invalidator = prods.Cache
	}
	projector := projection.NewProjector(invalidator, logger)

	opts := []api.Option{
		api.WithIntervals(holder),
		api.WithActivations(projector),
	}

	var wg sync.WaitGroup
	if cfg.Kafka.Enabled {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		opts = append(opts, api.WithPublisher(producer))

		// the activation tallies live in this process, so it reads every partition
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.InstanceGroupID("api"), logger)
		defer consumer.Close()

		wg.Add(1)
		go func() {
			defer wg.Done()
			logger.Info("starting kafka consumer", zap.Strings("brokers", cfg.Kafka.Brokers))
			if err := consumer.Consume(ctx, projector.HandleEvent); err != nil && ctx.Err() == nil {
				logger.Error("projector stopped", zap.Error(err))
			}
		}()
	}

	var jwtService *auth.JWTService
	if cfg.IsAdminEnabled() {
		jwtService, err = auth.NewJWTService(cfg.Auth.JWTSecret, cfg.GetTokenExpiry())
		if err != nil {
			logger.Fatal("failed to configure auth", zap.Error(err))
		}
	} else {
		logger.Warn("JWT_SECRET not set, admin endpoints disabled")
	}

	// only the layout and the rotation interval are live; everything else
	// needs a restart
	watcher, err := config.NewWatcher(configPath, holder, logger, func(old, updated *config.Config) {
		clock.Reset(updated.GetRotationInterval())
	})
	if err != nil {
		logger.Fatal("failed to create config watcher", zap.Error(err))
	}
	defer watcher.Stop()
	if err := watcher.Start(ctx); err != nil {
		logger.Warn("config hot reload disabled", zap.Error(err))
	}

	handlers := api.NewHandlers(queryHandler, clock, logger, opts...)
	router := api.NewRouter(handlers, jwtService, logger)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("server started", zap.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
	// hijacked websocket connections are not closed by Shutdown
	handlers.Hub().CloseAll()

	wg.Wait()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
