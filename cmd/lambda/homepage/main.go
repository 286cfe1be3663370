package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/example/ec-showcase/internal/api"
	"github.com/example/ec-showcase/internal/app"
	"github.com/example/ec-showcase/internal/config"
	"github.com/example/ec-showcase/internal/domain/catalog"
	"github.com/example/ec-showcase/internal/domain/showcase"
	"github.com/example/ec-showcase/internal/logging"
	"github.com/example/ec-showcase/internal/query"
	"go.uber.org/zap"
)

// homepageHandler serves the homepage from API Gateway. Invocations share
// no clock, so the tick is derived from wall time.
type homepageHandler struct {
	query    *query.Handler
	interval time.Duration
	now      func() time.Time
	logger   *zap.Logger
}

func (h *homepageHandler) wallTick() int {
	ms := h.interval.Milliseconds()
	if ms <= 0 {
		ms = showcase.HomepageRotationInterval.Milliseconds()
	}
	return int(h.now().UnixMilli() / ms)
}

func (h *homepageHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := req.QueryStringParameters

	var variants []showcase.Variant
	if raw := params["variant"]; raw != "" {
		v := showcase.Variant(raw)
		if !v.Valid() {
			return errorResponse(http.StatusBadRequest, "invalid variant"), nil
		}
		variants = []showcase.Variant{v}
	}

	tick := h.wallTick()
	if raw := params["tick"]; raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return errorResponse(http.StatusBadRequest, "invalid tick"), nil
		}
		tick = n
	}

	view := h.query.Homepage(ctx, variants, tick, h.interval)

	if params["format"] == "html" {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    map[string]string{"Content-Type": "text/html; charset=utf-8"},
			Body:       api.BuildHomepageHTML(view),
		}, nil
	}

	body, err := json.Marshal(view)
	if err != nil {
		h.logger.Error("encoding homepage", zap.Error(err))
		return errorResponse(http.StatusInternalServerError, "internal error"), nil
	}
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}

func errorResponse(status int, message string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(map[string]string{"error": message})
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg, err := config.Load(getEnv("SHOWCASE_CONFIG", "showcase.yaml"))
	if err != nil {
		log.Fatalf("[Lambda Homepage] Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[Lambda Homepage] %v", err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatalf("[Lambda Homepage] %v", err)
	}
	logger = logger.Named("lambda")

	store := catalog.Default()
	prods, err := app.OpenProducts(context.Background(), cfg, store, logger)
	if err != nil {
		logger.Fatal("failed to open product source", zap.Error(err))
	}
	delivery, err := app.NewDelivery(cfg.Imaging, logger)
	if err != nil {
		logger.Fatal("failed to configure image delivery", zap.Error(err))
	}

	h := &homepageHandler{
		query:    query.NewHandler(store, prods.Source, config.NewHolder(cfg), delivery, logger),
		interval: cfg.GetRotationInterval(),
		now:      time.Now,
		logger:   logger,
	}
	logger.Info("initialized", zap.String("products", cfg.Products.Source))

	lambda.Start(h.Handle)
}
