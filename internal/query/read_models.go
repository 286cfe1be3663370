package query

import "github.com/example/ec-showcase/internal/domain/showcase"

// ShowcaseSectionID anchors the showcase section of the homepage
const ShowcaseSectionID = "collection-showcase"

type HeroImageView struct {
	Src    string `json:"src"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Fill   bool   `json:"fill"`
	Sizes  string `json:"sizes"`
}

type HeroView struct {
	ID       string        `json:"id"`
	Alt      string        `json:"alt"`
	Priority bool          `json:"priority"`
	FadeInMs int64         `json:"fadeInMs"`
	Desktop  HeroImageView `json:"desktop"`
	Mobile   HeroImageView `json:"mobile"`
}

type CollectionRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type PanelView struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// CardView is one showcase card as rendered at a tick
type CardView struct {
	Slot          string            `json:"slot"`
	Collection    CollectionRef     `json:"collection"`
	Strategy      showcase.Strategy `json:"strategy"`
	Span          int               `json:"span"`
	Index         int               `json:"index"`
	DelayMs       int64             `json:"delayMs"`
	Href          string            `json:"href"`
	Placeholder   bool              `json:"placeholder"`
	Panels        []PanelView       `json:"panels"`
	ImageIndex    int               `json:"imageIndex"`
	ImageCount    int               `json:"imageCount"`
	Sizes         string            `json:"sizes"`
	TransitionKey string            `json:"transitionKey,omitempty"`
}

type VariantView struct {
	Variant showcase.Variant `json:"variant"`
	Columns int              `json:"columns"`
	Cards   []CardView       `json:"cards"`
}

type ShowcaseView struct {
	SectionID          string        `json:"sectionId"`
	Tick               int           `json:"tick"`
	RotationIntervalMs int64         `json:"rotationIntervalMs"`
	CrossfadeMs        int64         `json:"crossfadeMs"`
	EntranceMs         int64         `json:"entranceMs"`
	Variants           []VariantView `json:"variants"`
}

type HomepageView struct {
	Hero     HeroView     `json:"hero"`
	Showcase ShowcaseView `json:"showcase"`
}

// SlotView is an assembled slot without imagery
type SlotView struct {
	Name       string            `json:"name"`
	Collection CollectionRef     `json:"collection"`
	Strategy   showcase.Strategy `json:"strategy"`
	Span       int               `json:"span"`
	Index      int               `json:"index"`
	DelayMs    int64             `json:"delayMs"`
}

type LayoutVariantView struct {
	Variant showcase.Variant `json:"variant"`
	Columns int              `json:"columns"`
	Slots   []SlotView       `json:"slots"`
}

// LayoutPreview is the result of assembling a candidate layout
type LayoutPreview struct {
	Variants []LayoutVariantView `json:"variants"`
	Problems []string            `json:"problems"`
	Valid    bool                `json:"valid"`
}

// ActivationView is the navigation intent of an activated card
type ActivationView struct {
	Href       string        `json:"href"`
	Collection CollectionRef `json:"collection"`
}
