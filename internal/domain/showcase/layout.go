package showcase

import (
	"errors"
	"fmt"
	"time"

	"github.com/example/ec-showcase/internal/domain/catalog"
)

const (
	// DelayStep staggers the entrance animation of consecutive slots
	DelayStep = 80 * time.Millisecond
	// EntranceDuration is the length of a slot's entrance animation
	EntranceDuration = 400 * time.Millisecond
)

var (
	ErrInvalidLayout     = errors.New("invalid layout")
	ErrUnknownCollection = errors.New("collection not in catalog")
	ErrInvalidStrategy   = errors.New("unknown rendering strategy")
	ErrInvalidSpan       = errors.New("span out of range")
)

// SlotConfig binds one named slot to a collection slug
type SlotConfig struct {
	Name     string   `yaml:"name" json:"name"`
	Slug     string   `yaml:"slug" json:"slug"`
	Strategy Strategy `yaml:"strategy" json:"strategy"`
	Span     int      `yaml:"span" json:"span"`
}

// LayoutConfig is the declared slot order for each device variant
type LayoutConfig struct {
	Compact []SlotConfig `yaml:"compact" json:"compact"`
	Wide    []SlotConfig `yaml:"wide" json:"wide"`
}

// Arrangement is everything a render pass reads from live configuration.
// One pass uses one Arrangement so its variants never mix two configs.
type Arrangement struct {
	Layout      LayoutConfig
	FixedImages map[string][]string
}

// Slots returns the declared slots for v
func (c LayoutConfig) Slots(v Variant) []SlotConfig {
	if v == VariantWide {
		return c.Wide
	}
	return c.Compact
}

// HomepageLayout is the curated slot-to-collection mapping of the homepage
type HomepageLayout struct {
	TopRow         []string `yaml:"top_row" json:"topRow"`
	Featured       string   `yaml:"featured" json:"featured"`
	BottomRowLeft  string   `yaml:"bottom_row_left" json:"bottomRowLeft"`
	BottomRowRight string   `yaml:"bottom_row_right" json:"bottomRowRight"`
}

// DefaultHomepageLayout is the storefront's shipped arrangement
func DefaultHomepageLayout() HomepageLayout {
	return HomepageLayout{
		TopRow:         []string{"polos", "flannel-short-sleeve", "jackets"},
		Featured:       "flannel-patchwork-long-sleeve",
		BottomRowLeft:  "accessories",
		BottomRowRight: "flannel-long-sleeve",
	}
}

// LayoutConfig expands the homepage mapping into per-variant slot lists.
//
// Wide (3 columns): top row, featured across the full width, then the
// double-width bottom-left next to the bottom-right.
// Compact (2 columns): featured first, two top-row cards, the bottom-left
// across both columns, then the remaining top-row cards and bottom-right.
func (h HomepageLayout) LayoutConfig() LayoutConfig {
	var cfg LayoutConfig

	for i, slug := range h.TopRow {
		cfg.Wide = append(cfg.Wide, topRowSlot(i, slug))
	}
	cfg.Wide = append(cfg.Wide,
		SlotConfig{Name: "featured", Slug: h.Featured, Strategy: StrategyTriple, Span: VariantWide.Columns()},
		SlotConfig{Name: "bottom-row-left", Slug: h.BottomRowLeft, Strategy: StrategyDouble, Span: 2},
		SlotConfig{Name: "bottom-row-right", Slug: h.BottomRowRight, Strategy: StrategySingle, Span: 1},
	)

	split := min(2, len(h.TopRow))
	cfg.Compact = append(cfg.Compact,
		SlotConfig{Name: "featured", Slug: h.Featured, Strategy: StrategyTriple, Span: VariantCompact.Columns()},
	)
	for i, slug := range h.TopRow[:split] {
		cfg.Compact = append(cfg.Compact, topRowSlot(i, slug))
	}
	cfg.Compact = append(cfg.Compact,
		SlotConfig{Name: "bottom-row-left", Slug: h.BottomRowLeft, Strategy: StrategyDouble, Span: VariantCompact.Columns()},
	)
	for i, slug := range h.TopRow[split:] {
		cfg.Compact = append(cfg.Compact, topRowSlot(split+i, slug))
	}
	cfg.Compact = append(cfg.Compact,
		SlotConfig{Name: "bottom-row-right", Slug: h.BottomRowRight, Strategy: StrategySingle, Span: 1},
	)

	return cfg
}

func topRowSlot(i int, slug string) SlotConfig {
	return SlotConfig{
		Name:     fmt.Sprintf("top-row-%d", i+1),
		Slug:     slug,
		Strategy: StrategySingle,
		Span:     1,
	}
}

// Slot is a resolved, renderable position in a variant's grid
type Slot struct {
	Name       string
	Variant    Variant
	Collection catalog.Collection
	Strategy   Strategy
	Span       int
	// Index is the slot's position among the emitted slots of its variant
	Index int
	Delay time.Duration
}

// VariantLayout is the assembled grid of one device variant
type VariantLayout struct {
	Variant Variant
	Columns int
	Slots   []Slot
}

// Assemble resolves every declared slot of v against store.
// Slots whose slug is not in the catalog are dropped; indices and delays
// are computed over the remaining slots, so a dropped slot shifts the
// delays of the slots after it.
func Assemble(cfg LayoutConfig, store *catalog.Store, v Variant) VariantLayout {
	declared := cfg.Slots(v)
	layout := VariantLayout{
		Variant: v,
		Columns: v.Columns(),
		Slots:   make([]Slot, 0, len(declared)),
	}

	for _, sc := range declared {
		col, ok := store.CollectionBySlug(sc.Slug)
		if !ok {
			continue
		}
		index := len(layout.Slots)
		layout.Slots = append(layout.Slots, Slot{
			Name:       sc.Name,
			Variant:    v,
			Collection: col,
			Strategy:   sc.Strategy,
			Span:       clampSpan(sc.Span, layout.Columns),
			Index:      index,
			Delay:      time.Duration(index) * DelayStep,
		})
	}
	return layout
}

// AssembleAll assembles every variant in render order
func AssembleAll(cfg LayoutConfig, store *catalog.Store) []VariantLayout {
	layouts := make([]VariantLayout, 0, len(Variants))
	for _, v := range Variants {
		layouts = append(layouts, Assemble(cfg, store, v))
	}
	return layouts
}

func clampSpan(span, columns int) int {
	if span < 1 {
		return 1
	}
	if span > columns {
		return columns
	}
	return span
}

// Problems lists everything that would make a slot misbehave: malformed
// or unknown slugs, unknown strategies and spans that do not fit the grid.
// Rendering tolerates all of these; Problems exists for strict load-time checks.
func (c LayoutConfig) Problems(store *catalog.Store) []error {
	var problems []error
	for _, v := range Variants {
		for i, sc := range c.Slots(v) {
			where := fmt.Sprintf("%s[%d] %q", v, i, sc.Name)
			switch {
			case !catalog.ValidSlug(sc.Slug):
				problems = append(problems, fmt.Errorf("%w: %s: slug %q: %w", ErrInvalidLayout, where, sc.Slug, catalog.ErrInvalidSlug))
			case store != nil:
				if _, ok := store.CollectionBySlug(sc.Slug); !ok {
					problems = append(problems, fmt.Errorf("%w: %s: slug %q: %w", ErrInvalidLayout, where, sc.Slug, ErrUnknownCollection))
				}
			}
			if !sc.Strategy.Valid() {
				problems = append(problems, fmt.Errorf("%w: %s: strategy %q: %w", ErrInvalidLayout, where, sc.Strategy, ErrInvalidStrategy))
			}
			if sc.Span < 1 || sc.Span > v.Columns() {
				problems = append(problems, fmt.Errorf("%w: %s: span %d: %w", ErrInvalidLayout, where, sc.Span, ErrInvalidSpan))
			}
		}
	}
	return problems
}

// Validate joins Problems into a single error, nil when the layout is clean
func (c LayoutConfig) Validate(store *catalog.Store) error {
	return errors.Join(c.Problems(store)...)
}
