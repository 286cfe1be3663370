package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/example/ec-showcase/internal/app"
	"github.com/example/ec-showcase/internal/config"
	"github.com/example/ec-showcase/internal/domain/catalog"
	"github.com/example/ec-showcase/internal/infrastructure/kinesis"
	"github.com/example/ec-showcase/internal/logging"
	"github.com/example/ec-showcase/internal/projection"
	"go.uber.org/zap"
)

var (
	projector *projection.Projector
	logger    *zap.Logger
)

func init() {
	cfg, err := config.Load(getEnv("SHOWCASE_CONFIG", "showcase.yaml"))
	if err != nil {
		log.Fatalf("[Lambda Projector] Failed to load config: %v", err)
	}
	if !cfg.Cache.Enabled {
		log.Fatal("[Lambda Projector] REDIS_ADDR is required")
	}

	logger, err = logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("[Lambda Projector] %v", err)
	}
	logger = logger.Named("lambda")

	prods, err := app.OpenProducts(context.Background(), cfg, catalog.Default(), logger)
	if err != nil {
		logger.Fatal("failed to open product source", zap.Error(err))
	}
	projector = projection.NewProjector(prods.Cache, logger)

	logger.Info("initialized", zap.String("redis", cfg.Cache.RedisAddr))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func handler(ctx context.Context, kinesisEvent events.KinesisEvent) (events.KinesisEventResponse, error) {
	logger.Info("received records", zap.Int("count", len(kinesisEvent.Records)))

	var batchItemFailures []events.KinesisBatchItemFailure
	fail := func(record events.KinesisEventRecord) {
		batchItemFailures = append(batchItemFailures, events.KinesisBatchItemFailure{
			ItemIdentifier: record.Kinesis.SequenceNumber,
		})
	}

	for _, record := range kinesisEvent.Records {
		event, err := kinesis.ConvertFromKinesisRecord(record)
		if err != nil {
			logger.Warn("failed to convert record", zap.String("record", record.EventID), zap.Error(err))
			fail(record)
			continue
		}
		if event == nil {
			continue
		}

		eventJSON, err := json.Marshal(event)
		if err != nil {
			fail(record)
			continue
		}
		if err := projector.HandleEvent(ctx, []byte(event.AggregateID), eventJSON); err != nil {
			logger.Warn("failed to process event",
				zap.String("event_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Error(err))
			fail(record)
			continue
		}
	}

	logger.Info("processed records",
		zap.Int("ok", len(kinesisEvent.Records)-len(batchItemFailures)),
		zap.Int("total", len(kinesisEvent.Records)))

	return events.KinesisEventResponse{
		BatchItemFailures: batchItemFailures,
	}, nil
}

func main() {
	lambda.Start(handler)
}
