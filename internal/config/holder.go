package config

import (
	"sync/atomic"
	"time"

	"github.com/example/ec-showcase/internal/domain/showcase"
)

// Holder publishes the live configuration. Readers always see a complete
// Config; a reload swaps the whole value at once.
type Holder struct {
	current atomic.Pointer[Config]
}

// NewHolder creates a holder serving cfg
func NewHolder(cfg *Config) *Holder {
	h := &Holder{}
	h.current.Store(cfg)
	return h
}

// Config returns the live configuration. Callers must not mutate it.
func (h *Holder) Config() *Config {
	return h.current.Load()
}

// Swap installs cfg and returns the previous configuration
func (h *Holder) Swap(cfg *Config) *Config {
	return h.current.Swap(cfg)
}

// Arrangement returns the layout and fixed images of a single snapshot
func (h *Holder) Arrangement() showcase.Arrangement {
	cfg := h.Config()
	return showcase.Arrangement{
		Layout:      cfg.LayoutConfig(),
		FixedImages: cfg.Showcase.FixedImages,
	}
}

func (h *Holder) RotationInterval() time.Duration {
	return h.Config().GetRotationInterval()
}
