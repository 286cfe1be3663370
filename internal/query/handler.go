package query

import (
	"context"
	"time"

	"github.com/example/ec-showcase/internal/domain/catalog"
	"github.com/example/ec-showcase/internal/domain/showcase"
	"github.com/example/ec-showcase/internal/imaging"
	"github.com/example/ec-showcase/internal/products"
	"go.uber.org/zap"
)

const (
	singleCardWidth = 640
	panelWidth      = 480
	heroMobileWidth = 828
	productWidth    = 800
)

// LayoutProvider supplies the live layout configuration
type LayoutProvider interface {
	Arrangement() showcase.Arrangement
}

// StaticLayout serves a fixed layout
type StaticLayout struct {
	Config showcase.LayoutConfig
	Fixed  map[string][]string
}

func (s StaticLayout) Arrangement() showcase.Arrangement {
	return showcase.Arrangement{Layout: s.Config, FixedImages: s.Fixed}
}

type Handler struct {
	catalog  *catalog.Store
	products products.Source
	layouts  LayoutProvider
	delivery imaging.Delivery
	hero     showcase.Hero
	logger   *zap.Logger
}

func NewHandler(store *catalog.Store, source products.Source, layouts LayoutProvider, delivery imaging.Delivery, logger *zap.Logger) *Handler {
	if delivery == nil {
		delivery = imaging.Passthrough{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		catalog:  store,
		products: source,
		layouts:  layouts,
		delivery: delivery,
		hero:     showcase.DefaultHero(),
		logger:   logger.Named("query"),
	}
}

// Homepage renders the hero and the showcase for variants at tick.
// No variants means every variant in render order.
func (h *Handler) Homepage(ctx context.Context, variants []showcase.Variant, tick int, interval time.Duration) HomepageView {
	return HomepageView{
		Hero:     h.Hero(),
		Showcase: h.Showcase(ctx, variants, tick, interval),
	}
}

func (h *Handler) Hero() HeroView {
	hero := h.hero
	return HeroView{
		ID:       hero.ID,
		Alt:      hero.Alt,
		Priority: hero.Priority,
		FadeInMs: hero.FadeIn.Milliseconds(),
		Desktop:  h.heroImage(hero.Desktop, hero.Quality, hero.Desktop.Width),
		Mobile:   h.heroImage(hero.Mobile, hero.Quality, heroMobileWidth),
	}
}

func (h *Handler) heroImage(img showcase.HeroImage, quality, width int) HeroImageView {
	return HeroImageView{
		Src:    h.delivery.URL(img.Src, imaging.Hints{Quality: quality, Width: width}),
		Width:  img.Width,
		Height: img.Height,
		Fill:   img.Fill,
		Sizes:  img.Sizes,
	}
}

func (h *Handler) Showcase(ctx context.Context, variants []showcase.Variant, tick int, interval time.Duration) ShowcaseView {
	if len(variants) == 0 {
		variants = showcase.Variants
	}
	view := ShowcaseView{
		SectionID:          ShowcaseSectionID,
		Tick:               tick,
		RotationIntervalMs: interval.Milliseconds(),
		CrossfadeMs:        showcase.CrossfadeDuration.Milliseconds(),
		EntranceMs:         showcase.EntranceDuration.Milliseconds(),
		Variants:           make([]VariantView, 0, len(variants)),
	}
	arrangement := h.layouts.Arrangement()
	for _, v := range variants {
		view.Variants = append(view.Variants, h.variant(ctx, arrangement, v, tick))
	}
	return view
}

// Variant assembles and resolves one device variant at tick.
// Product lookups that fail degrade their card and are logged.
func (h *Handler) Variant(ctx context.Context, v showcase.Variant, tick int) VariantView {
	return h.variant(ctx, h.layouts.Arrangement(), v, tick)
}

func (h *Handler) variant(ctx context.Context, arrangement showcase.Arrangement, v showcase.Variant, tick int) VariantView {
	layout := showcase.Assemble(arrangement.Layout, h.catalog, v)
	resolver := showcase.NewResolver(h.products, arrangement.FixedImages)

	cards, errs := resolver.ResolveAll(ctx, layout, tick)
	for _, err := range errs {
		h.logger.Warn("showcase card degraded", zap.String("variant", string(v)), zap.Error(err))
	}

	view := VariantView{
		Variant: v,
		Columns: layout.Columns,
		Cards:   make([]CardView, 0, len(cards)),
	}
	for _, card := range cards {
		view.Cards = append(view.Cards, h.cardView(card))
	}
	return view
}

// RotatingCards returns only the cards whose imagery changes with the tick
func (h *Handler) RotatingCards(ctx context.Context, v showcase.Variant, tick int) []CardView {
	all := h.Variant(ctx, v, tick)
	out := make([]CardView, 0, len(all.Cards))
	for _, card := range all.Cards {
		if card.Strategy == showcase.StrategySingle {
			out = append(out, card)
		}
	}
	return out
}

func (h *Handler) cardView(card showcase.Card) CardView {
	width := panelWidth
	if card.Strategy == showcase.StrategySingle {
		width = singleCardWidth
	}
	hints := imaging.Hints{Quality: showcase.ImageQuality, Width: width}

	panels := make([]PanelView, len(card.Panels))
	for i, p := range card.Panels {
		panels[i] = PanelView{Src: h.delivery.URL(p.Src, hints), Alt: p.Alt}
	}

	return CardView{
		Slot:          card.Slot.Name,
		Collection:    collectionRef(card.Slot.Collection),
		Strategy:      card.Strategy,
		Span:          card.Slot.Span,
		Index:         card.Slot.Index,
		DelayMs:       card.Slot.Delay.Milliseconds(),
		Href:          card.Href,
		Placeholder:   card.Placeholder,
		Panels:        panels,
		ImageIndex:    card.ImageIndex,
		ImageCount:    card.ImageCount,
		Sizes:         card.Sizes,
		TransitionKey: card.TransitionKey(),
	}
}

// PreviewLayout assembles a candidate layout without installing it
func (h *Handler) PreviewLayout(cfg showcase.LayoutConfig) LayoutPreview {
	preview := LayoutPreview{
		Variants: make([]LayoutVariantView, 0, len(showcase.Variants)),
		Problems: []string{},
	}
	for _, layout := range showcase.AssembleAll(cfg, h.catalog) {
		lv := LayoutVariantView{
			Variant: layout.Variant,
			Columns: layout.Columns,
			Slots:   make([]SlotView, 0, len(layout.Slots)),
		}
		for _, s := range layout.Slots {
			lv.Slots = append(lv.Slots, slotView(s))
		}
		preview.Variants = append(preview.Variants, lv)
	}
	for _, p := range cfg.Problems(h.catalog) {
		preview.Problems = append(preview.Problems, p.Error())
	}
	preview.Valid = len(preview.Problems) == 0
	return preview
}

// Activate returns the navigation intent for a card of collection slug
func (h *Handler) Activate(slug string) (ActivationView, error) {
	col, ok := h.catalog.CollectionBySlug(slug)
	if !ok {
		return ActivationView{}, catalog.ErrCollectionNotFound
	}
	return ActivationView{
		Href:       showcase.ActivationHref(col.Slug),
		Collection: collectionRef(col),
	}, nil
}

func slotView(s showcase.Slot) SlotView {
	return SlotView{
		Name:       s.Name,
		Collection: collectionRef(s.Collection),
		Strategy:   s.Strategy,
		Span:       s.Span,
		Index:      s.Index,
		DelayMs:    s.Delay.Milliseconds(),
	}
}

func collectionRef(c catalog.Collection) CollectionRef {
	return CollectionRef{Name: c.Name, Slug: c.Slug}
}
