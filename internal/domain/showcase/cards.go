package showcase

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/example/ec-showcase/internal/domain/catalog"
)

const (
	// ImageQuality is the delivery quality hint for showcase imagery
	ImageQuality = 95
	// CrossfadeDuration is the fade-out/fade-in time of a rotating image
	CrossfadeDuration = 500 * time.Millisecond

	singleSizes = "(max-width: 640px) 50vw, (max-width: 1024px) 33vw, 25vw"
	panelSizes  = "33vw"
)

// ProductAccessor returns the ordered products of a collection.
// An unknown slug yields an empty list and a nil error.
type ProductAccessor interface {
	ProductsForCollection(ctx context.Context, slug string) ([]catalog.Product, error)
}

// DefaultFixedImages pins the accessories double card to two cap shots
func DefaultFixedImages() map[string][]string {
	return map[string][]string{
		"accessories": {
			"/products/corduroy-cap/corduroy-cap-6.jpeg",
			"/products/corduroy-cap/corduroy-cap-1.jpg",
		},
	}
}

// Panel is one displayed image
type Panel struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Card is a slot resolved to concrete imagery for one tick
type Card struct {
	Slot Slot `json:"-"`
	// Href is the navigation intent issued when the card is activated
	Href     string   `json:"href"`
	Strategy Strategy `json:"strategy"`
	// Placeholder is set when a single card has no image to show
	Placeholder bool    `json:"placeholder"`
	Panels      []Panel `json:"panels"`
	// ImageIndex is the position in the flattened sequence a single card shows
	ImageIndex int `json:"image_index"`
	// ImageCount is the number of candidate images the card chose from
	ImageCount int    `json:"image_count"`
	Sizes      string `json:"sizes"`
}

// TransitionKey changes exactly when a single card's displayed image changes
func (c Card) TransitionKey() string {
	if c.Placeholder || len(c.Panels) == 0 {
		return ""
	}
	return c.Panels[0].Src
}

// ActivationHref is the shop listing filtered to one collection
func ActivationHref(slug string) string {
	return "/shop?" + url.Values{"collection": {slug}}.Encode()
}

// Resolver turns slots into cards. It never mutates catalog or product data.
type Resolver struct {
	products ProductAccessor
	fixed    map[string][]string
}

// NewResolver creates a resolver. fixed maps a collection slug to the
// hardcoded images its double card shows instead of product imagery.
func NewResolver(products ProductAccessor, fixed map[string][]string) *Resolver {
	return &Resolver{products: products, fixed: fixed}
}

// Resolve computes the card for slot at tick. On accessor failure the
// returned card is the empty-imagery degradation and the error is returned
// for logging only.
func (r *Resolver) Resolve(ctx context.Context, slot Slot, tick int) (Card, error) {
	card := Card{
		Slot:     slot,
		Href:     ActivationHref(slot.Collection.Slug),
		Strategy: slot.Strategy,
		Sizes:    panelSizes,
	}

	if slot.Strategy == StrategyDouble {
		if fixed := r.fixed[slot.Collection.Slug]; len(fixed) > 0 {
			card.Panels = panelsFor(slot.Collection.Name, CyclePanels(fixed, 2))
			card.ImageCount = len(fixed)
			return card, nil
		}
	}

	products, err := r.products.ProductsForCollection(ctx, slot.Collection.Slug)
	if err != nil {
		products = nil
		err = fmt.Errorf("products for %q: %w", slot.Collection.Slug, err)
	}

	switch slot.Strategy {
	case StrategyDouble, StrategyTriple:
		firsts := FirstImages(products)
		card.ImageCount = len(firsts)
		card.Panels = panelsFor(slot.Collection.Name, CyclePanels(firsts, slot.Strategy.Panels()))
	default:
		card.Sizes = singleSizes
		images := FlattenImages(products)
		card.ImageCount = len(images)
		idx, ok := SingleImageIndex(tick, len(images))
		if !ok {
			card.Placeholder = true
			card.Panels = []Panel{}
			break
		}
		card.ImageIndex = idx
		card.Panels = []Panel{{Src: images[idx], Alt: slot.Collection.Name}}
	}
	return card, err
}

// ResolveAll resolves every slot of a layout at the same tick
func (r *Resolver) ResolveAll(ctx context.Context, layout VariantLayout, tick int) ([]Card, []error) {
	cards := make([]Card, 0, len(layout.Slots))
	var errs []error
	for _, slot := range layout.Slots {
		card, err := r.Resolve(ctx, slot, tick)
		if err != nil {
			errs = append(errs, err)
		}
		cards = append(cards, card)
	}
	return cards, errs
}

// FlattenImages concatenates every product's images in product order
func FlattenImages(products []catalog.Product) []string {
	var images []string
	for _, p := range products {
		for _, img := range p.Images {
			if img != "" {
				images = append(images, img)
			}
		}
	}
	return images
}

// FirstImages returns the lead image of each product that has one
func FirstImages(products []catalog.Product) []string {
	var firsts []string
	for _, p := range products {
		if img, ok := p.FirstImage(); ok {
			firsts = append(firsts, img)
		}
	}
	return firsts
}

// SingleImageIndex is tick mod n; ok is false when there is nothing to show
func SingleImageIndex(tick, n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	if tick < 0 {
		tick = 0
	}
	return tick % n, true
}

// CyclePanels fills n panels with images[i mod len(images)].
// No images means no panels.
func CyclePanels(images []string, n int) []string {
	if len(images) == 0 {
		return []string{}
	}
	out := make([]string, n)
	for i := range out {
		out[i] = images[i%len(images)]
	}
	return out
}

func panelsFor(name string, images []string) []Panel {
	panels := make([]Panel, len(images))
	for i, img := range images {
		panels[i] = Panel{Src: img, Alt: fmt.Sprintf("%s %d", name, i+1)}
	}
	return panels
}
