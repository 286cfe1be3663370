package catalog

import "time"

// Size is a garment size offered by a product
type Size string

const (
	SizeXS      Size = "XS"
	SizeS       Size = "S"
	SizeM       Size = "M"
	SizeL       Size = "L"
	SizeXL      Size = "XL"
	SizeOneSize Size = "One Size"
)

// Sizes lists every known size in display order
var Sizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeOneSize}

// Valid reports whether s is one of the known sizes
func (s Size) Valid() bool {
	for _, known := range Sizes {
		if s == known {
			return true
		}
	}
	return false
}

// Color is a named product color
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Category represents a product category
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

func (c Category) GetID() string   { return c.ID }
func (c Category) GetSlug() string { return c.Slug }

// Collection represents a curated group of products shown on the storefront
type Collection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

func (c Collection) GetID() string   { return c.ID }
func (c Collection) GetSlug() string { return c.Slug }

// Product is a sellable item. Images are ordered and may be empty.
type Product struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Slug           string     `json:"slug"`
	Description    string     `json:"description"`
	Price          float64    `json:"price"`
	CompareAtPrice *float64   `json:"compareAtPrice,omitempty"`
	Images         []string   `json:"images"`
	Category       Category   `json:"category"`
	Collection     Collection `json:"collection"`
	Sizes          []Size     `json:"sizes"`
	Colors         []Color    `json:"colors"`
	InStock        bool       `json:"inStock"`
	Featured       bool       `json:"featured,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// FirstImage returns the product's lead image
func (p Product) FirstImage() (string, bool) {
	if len(p.Images) == 0 || p.Images[0] == "" {
		return "", false
	}
	return p.Images[0], true
}
