package showcase

import "time"

// HeroImage is one device rendition of the hero banner
type HeroImage struct {
	Src    string `json:"src"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	// Fill stretches the image over its container instead of using intrinsic size
	Fill  bool   `json:"fill"`
	Sizes string `json:"sizes"`
}

// Hero is the full-width banner above the showcase
type Hero struct {
	ID       string        `json:"id"`
	Alt      string        `json:"alt"`
	Quality  int           `json:"quality"`
	Priority bool          `json:"priority"`
	FadeIn   time.Duration `json:"-"`
	Desktop  HeroImage     `json:"desktop"`
	Mobile   HeroImage     `json:"mobile"`
}

// DefaultHero returns the storefront banner
func DefaultHero() Hero {
	return Hero{
		ID:       "hero",
		Alt:      "Oh Sh!rt",
		Quality:  ImageQuality,
		Priority: true,
		FadeIn:   time.Second,
		Desktop: HeroImage{
			Src:    "/hero/hero-image.jpeg",
			Width:  1920,
			Height: 1080,
			Sizes:  "100vw",
		},
		Mobile: HeroImage{
			Src:   "/hero/hero_mobile.jpeg",
			Fill:  true,
			Sizes: "100vw",
		},
	}
}
