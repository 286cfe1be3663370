package query

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/ec-showcase/internal/domain/catalog"
	"github.com/example/ec-showcase/internal/domain/showcase"
	"github.com/example/ec-showcase/internal/imaging"
	"github.com/example/ec-showcase/internal/products"
	"github.com/example/ec-showcase/internal/products/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type prefixDelivery struct {
	hints []imaging.Hints
}

func (p *prefixDelivery) URL(ref string, h imaging.Hints) string {
	p.hints = append(p.hints, h)
	return "https://cdn.test" + ref
}

func newTestQueryHandler() (*Handler, *mocks.MockSource) {
	source := mocks.NewMockSource(products.SeedProducts(catalog.Default())...)
	layouts := StaticLayout{
		Config: showcase.DefaultHomepageLayout().LayoutConfig(),
		Fixed:  showcase.DefaultFixedImages(),
	}
	handler := NewHandler(catalog.Default(), source, layouts, nil, nil)
	return handler, source
}

// swappingLayouts hands out a different arrangement on every read
type swappingLayouts struct {
	reads        int
	arrangements []showcase.Arrangement
}

func (s *swappingLayouts) Arrangement() showcase.Arrangement {
	a := s.arrangements[s.reads%len(s.arrangements)]
	s.reads++
	return a
}

func cardBySlot(t *testing.T, v VariantView, slot string) CardView {
	t.Helper()
	for _, c := range v.Cards {
		if c.Slot == slot {
			return c
		}
	}
	t.Fatalf("no card for slot %s", slot)
	return CardView{}
}

// ============================================
// Homepage Tests
// ============================================

func TestHandler_Showcase_ReadsOneArrangementPerPass(t *testing.T) {
	single := func(slug string) showcase.LayoutConfig {
		slot := []showcase.SlotConfig{{Name: "only", Slug: slug, Strategy: showcase.StrategySingle, Span: 1}}
		return showcase.LayoutConfig{Compact: slot, Wide: slot}
	}
	layouts := &swappingLayouts{arrangements: []showcase.Arrangement{
		{Layout: single("polos")},
		{Layout: single("jackets")},
	}}
	handler := NewHandler(catalog.Default(), products.NewSeedSource(catalog.Default()), layouts, nil, nil)

	view := handler.Showcase(context.Background(), nil, 0, 7*time.Second)

	assert.Equal(t, 1, layouts.reads)
	require.Len(t, view.Variants, 2)
	for _, v := range view.Variants {
		require.Len(t, v.Cards, 1)
		assert.Equal(t, "polos", v.Cards[0].Collection.Slug, v.Variant)
	}
}

func TestHandler_Homepage_AllVariants(t *testing.T) {
	handler, _ := newTestQueryHandler()

	view := handler.Homepage(context.Background(), nil, 0, 7*time.Second)

	assert.Equal(t, "hero", view.Hero.ID)
	assert.Equal(t, "/hero/hero-image.jpeg", view.Hero.Desktop.Src)
	assert.Equal(t, int64(1000), view.Hero.FadeInMs)
	assert.Equal(t, ShowcaseSectionID, view.Showcase.SectionID)
	assert.Equal(t, int64(7000), view.Showcase.RotationIntervalMs)
	assert.Equal(t, int64(500), view.Showcase.CrossfadeMs)
	require.Len(t, view.Showcase.Variants, 2)
	assert.Equal(t, showcase.VariantCompact, view.Showcase.Variants[0].Variant)
	assert.Equal(t, showcase.VariantWide, view.Showcase.Variants[1].Variant)
	assert.Len(t, view.Showcase.Variants[1].Cards, 6)
}

func TestHandler_Variant_WideCards(t *testing.T) {
	handler, _ := newTestQueryHandler()

	wide := handler.Variant(context.Background(), showcase.VariantWide, 0)

	assert.Equal(t, 3, wide.Columns)

	polos := cardBySlot(t, wide, "top-row-1")
	assert.Equal(t, "polos", polos.Collection.Slug)
	assert.Equal(t, "/shop?collection=polos", polos.Href)
	assert.Equal(t, "/products/pique-polo/pique-polo-1.jpg", polos.TransitionKey)
	assert.Equal(t, int64(0), polos.DelayMs)

	featured := cardBySlot(t, wide, "featured")
	assert.Equal(t, 3, featured.Span)
	assert.Equal(t, int64(240), featured.DelayMs)
	require.Len(t, featured.Panels, 3)
	assert.Equal(t, "/products/patchwork-flannel-01/patchwork-flannel-01-1.jpg", featured.Panels[0].Src)
	assert.Equal(t, "/products/patchwork-flannel-02/patchwork-flannel-02-1.jpg", featured.Panels[1].Src)
	assert.Equal(t, "/products/patchwork-flannel-03/patchwork-flannel-03-1.jpg", featured.Panels[2].Src)

	accessories := cardBySlot(t, wide, "bottom-row-left")
	assert.Equal(t, 2, accessories.Span)
	require.Len(t, accessories.Panels, 2)
	assert.Equal(t, "/products/corduroy-cap/corduroy-cap-6.jpeg", accessories.Panels[0].Src)
}

func TestHandler_Variant_TickAdvancesSingleCardsTogether(t *testing.T) {
	handler, _ := newTestQueryHandler()
	ctx := context.Background()

	at0 := handler.Variant(ctx, showcase.VariantWide, 0)
	at1 := handler.Variant(ctx, showcase.VariantWide, 1)

	for i := range at0.Cards {
		c0, c1 := at0.Cards[i], at1.Cards[i]
		if c0.Strategy == showcase.StrategySingle && c0.ImageCount > 1 {
			assert.NotEqual(t, c0.TransitionKey, c1.TransitionKey, c0.Slot)
		} else {
			assert.Equal(t, c0.Panels, c1.Panels, c0.Slot)
		}
	}
}

func TestHandler_Variant_SourceFailureDegradesAndLogs(t *testing.T) {
	source := mocks.NewMockSource()
	source.Err = errors.New("db down")
	core, logs := observer.New(zap.WarnLevel)
	layouts := StaticLayout{Config: showcase.DefaultHomepageLayout().LayoutConfig(), Fixed: showcase.DefaultFixedImages()}
	handler := NewHandler(catalog.Default(), source, layouts, nil, zap.New(core))

	wide := handler.Variant(context.Background(), showcase.VariantWide, 3)

	require.Len(t, wide.Cards, 6)
	assert.True(t, cardBySlot(t, wide, "top-row-1").Placeholder)
	assert.Empty(t, cardBySlot(t, wide, "featured").Panels)
	assert.Len(t, cardBySlot(t, wide, "bottom-row-left").Panels, 2, "fixed images need no products")
	assert.Equal(t, 5, logs.FilterMessage("showcase card degraded").Len())
}

func TestHandler_Variant_DeliveryApplied(t *testing.T) {
	source := mocks.NewMockSource(products.SeedProducts(catalog.Default())...)
	delivery := &prefixDelivery{}
	layouts := StaticLayout{Config: showcase.DefaultHomepageLayout().LayoutConfig()}
	handler := NewHandler(catalog.Default(), source, layouts, delivery, nil)

	wide := handler.Variant(context.Background(), showcase.VariantWide, 0)

	polos := cardBySlot(t, wide, "top-row-1")
	assert.Equal(t, "https://cdn.test/products/pique-polo/pique-polo-1.jpg", polos.Panels[0].Src)
	assert.Equal(t, "/products/pique-polo/pique-polo-1.jpg", polos.TransitionKey, "transition key stays the raw ref")
	for _, h := range delivery.hints {
		assert.Equal(t, 95, h.Quality)
	}
}

func TestHandler_RotatingCards(t *testing.T) {
	handler, _ := newTestQueryHandler()

	cards := handler.RotatingCards(context.Background(), showcase.VariantCompact, 2)

	require.Len(t, cards, 4)
	for _, c := range cards {
		assert.Equal(t, showcase.StrategySingle, c.Strategy)
	}
}

// ============================================
// Preview & Activation Tests
// ============================================

func TestHandler_PreviewLayout(t *testing.T) {
	handler, source := newTestQueryHandler()
	cfg := showcase.LayoutConfig{
		Wide: []showcase.SlotConfig{
			{Name: "a", Slug: "jackets", Strategy: showcase.StrategySingle, Span: 1},
			{Name: "b", Slug: "swimwear", Strategy: showcase.StrategySingle, Span: 1},
		},
	}

	preview := handler.PreviewLayout(cfg)

	assert.False(t, preview.Valid)
	require.Len(t, preview.Problems, 1)
	require.Len(t, preview.Variants, 2)
	assert.Empty(t, preview.Variants[0].Slots)
	require.Len(t, preview.Variants[1].Slots, 1)
	assert.Equal(t, "jackets", preview.Variants[1].Slots[0].Collection.Slug)
	assert.Zero(t, source.CollectionCallCount(), "preview never touches products")
}

func TestHandler_Activate(t *testing.T) {
	handler, _ := newTestQueryHandler()

	view, err := handler.Activate("flannel-long-sleeve")

	require.NoError(t, err)
	assert.Equal(t, "/shop?collection=flannel-long-sleeve", view.Href)

	_, err = handler.Activate("swimwear")
	assert.ErrorIs(t, err, catalog.ErrCollectionNotFound)
}
