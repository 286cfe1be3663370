package projection

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/example/ec-showcase/internal/domain/catalog"
	"github.com/example/ec-showcase/internal/domain/showcase"
	"github.com/example/ec-showcase/internal/infrastructure/kafka"
	"github.com/example/ec-showcase/internal/readmodel"
	"go.uber.org/zap"
)

// Invalidator evicts cached product data for a collection
type Invalidator interface {
	Invalidate(ctx context.Context, slug string) error
}

type Projector struct {
	cache  Invalidator
	logger *zap.Logger

	mu            sync.RWMutex
	activations   map[string]*readmodel.CollectionActivationsReadModel
	invalidations map[string]*readmodel.CacheInvalidationReadModel
}

// NewProjector creates a projector. cache may be nil when products are not cached.
func NewProjector(cache Invalidator, logger *zap.Logger) *Projector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Projector{
		cache:         cache,
		logger:        logger.Named("projector"),
		activations:   make(map[string]*readmodel.CollectionActivationsReadModel),
		invalidations: make(map[string]*readmodel.CacheInvalidationReadModel),
	}
}

func (p *Projector) HandleEvent(ctx context.Context, key, value []byte) error {
	event, err := kafka.DecodeEvent(value)
	if err != nil {
		return err
	}

	p.logger.Debug("received event",
		zap.String("event_type", event.EventType),
		zap.String("aggregate", event.AggregateType))

	switch event.AggregateType {
	case catalog.AggregateType:
		return p.handleCollectionEvent(ctx, event)
	case showcase.AggregateType:
		return p.handleShowcaseEvent(event)
	}

	return nil
}

func (p *Projector) handleCollectionEvent(ctx context.Context, event kafka.Event) error {
	switch event.EventType {
	case catalog.EventCollectionProductsChanged:
		var e catalog.CollectionProductsChanged
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}
		if e.CollectionSlug == "" {
			return fmt.Errorf("%s without collection slug", event.EventType)
		}
		if p.cache != nil {
			if err := p.cache.Invalidate(ctx, e.CollectionSlug); err != nil {
				return fmt.Errorf("invalidate %q: %w", e.CollectionSlug, err)
			}
		}

		p.mu.Lock()
		p.invalidations[e.CollectionSlug] = &readmodel.CacheInvalidationReadModel{
			CollectionSlug: e.CollectionSlug,
			ProductIDs:     e.ProductIDs,
			InvalidatedAt:  e.ChangedAt,
		}
		p.mu.Unlock()

		p.logger.Info("collection cache invalidated", zap.String("collection", e.CollectionSlug))
	}
	return nil
}

func (p *Projector) handleShowcaseEvent(event kafka.Event) error {
	switch event.EventType {
	case showcase.EventCardActivated:
		var e showcase.CardActivated
		if err := json.Unmarshal(event.Data, &e); err != nil {
			return err
		}

		p.mu.Lock()
		defer p.mu.Unlock()
		rm, ok := p.activations[e.CollectionSlug]
		if !ok {
			rm = &readmodel.CollectionActivationsReadModel{
				CollectionSlug: e.CollectionSlug,
				ByVariant:      make(map[string]int),
			}
			p.activations[e.CollectionSlug] = rm
		}
		rm.Count++
		if e.Variant != "" {
			rm.ByVariant[string(e.Variant)]++
		}
		if e.ActivatedAt.After(rm.LastActivatedAt) {
			rm.LastActivatedAt = e.ActivatedAt
		}
	}
	return nil
}

// Activations returns a snapshot of activation tallies ordered by collection slug
func (p *Projector) Activations() []readmodel.CollectionActivationsReadModel {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]readmodel.CollectionActivationsReadModel, 0, len(p.activations))
	for _, rm := range p.activations {
		cp := *rm
		cp.ByVariant = make(map[string]int, len(rm.ByVariant))
		for k, v := range rm.ByVariant {
			cp.ByVariant[k] = v
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CollectionSlug < out[j].CollectionSlug })
	return out
}

// LastInvalidation returns the most recent cache eviction for a collection
func (p *Projector) LastInvalidation(slug string) (readmodel.CacheInvalidationReadModel, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	rm, ok := p.invalidations[slug]
	if !ok {
		return readmodel.CacheInvalidationReadModel{}, false
	}
	return *rm, true
}
