package products

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/example/ec-showcase/internal/domain/catalog"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	collectionKeyPrefix = "showcase:collection-products:"
	allProductsKey      = "showcase:all-products"
	DefaultCacheTTL     = 5 * time.Minute
)

// CollectionKey is the Redis key holding a collection's cached products
func CollectionKey(slug string) string {
	return collectionKeyPrefix + slug
}

// CachedSource is a read-through Redis cache in front of another Source.
// Redis failures never fail a read: the backend is queried directly instead.
type CachedSource struct {
	backend Source
	client  *redis.Client
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCachedSource wraps backend with a Redis cache
func NewCachedSource(backend Source, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedSource{
		backend: backend,
		client:  client,
		ttl:     ttl,
		logger:  logger.Named("product-cache"),
	}
}

func (c *CachedSource) ProductsForCollection(ctx context.Context, slug string) ([]catalog.Product, error) {
	return c.readThrough(ctx, CollectionKey(slug), func() ([]catalog.Product, error) {
		return c.backend.ProductsForCollection(ctx, slug)
	})
}

func (c *CachedSource) AllProducts(ctx context.Context) ([]catalog.Product, error) {
	return c.readThrough(ctx, allProductsKey, func() ([]catalog.Product, error) {
		return c.backend.AllProducts(ctx)
	})
}

// Invalidate evicts a collection's cached list and the full listing
func (c *CachedSource) Invalidate(ctx context.Context, slug string) error {
	return c.client.Del(ctx, CollectionKey(slug), allProductsKey).Err()
}

func (c *CachedSource) readThrough(ctx context.Context, key string, load func() ([]catalog.Product, error)) ([]catalog.Product, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached []catalog.Product
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		c.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	products, err := load()
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(products)
	if err != nil {
		return products, nil
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return products, nil
}
