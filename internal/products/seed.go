package products

import (
	"fmt"
	"time"

	"github.com/example/ec-showcase/internal/domain/catalog"
)

type seedProduct struct {
	slug       string
	name       string
	collection string
	price      float64
	compareAt  float64
	images     []string
	sizes      []catalog.Size
	colors     []catalog.Color
	featured   bool
	inStock    bool
}

var (
	navy     = catalog.Color{Name: "Navy", Hex: "#1f2a44"}
	black    = catalog.Color{Name: "Black", Hex: "#111111"}
	white    = catalog.Color{Name: "White", Hex: "#f5f5f5"}
	olive    = catalog.Color{Name: "Olive", Hex: "#556b2f"}
	red      = catalog.Color{Name: "Red", Hex: "#b22222"}
	tan      = catalog.Color{Name: "Tan", Hex: "#d2b48c"}
	apparel  = []catalog.Size{catalog.SizeS, catalog.SizeM, catalog.SizeL, catalog.SizeXL}
	oneSize  = []catalog.Size{catalog.SizeOneSize}
	seedBase = time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
)

// productImages names images the way the storefront's asset folders do
func productImages(slug string, exts ...string) []string {
	images := make([]string, len(exts))
	for i, ext := range exts {
		images[i] = fmt.Sprintf("/products/%s/%s-%d.%s", slug, slug, i+1, ext)
	}
	return images
}

var seed = []seedProduct{
	{slug: "pique-polo", name: "Piqué Polo", collection: "polos", price: 48, images: productImages("pique-polo", "jpg", "jpg", "jpg"), sizes: apparel, colors: []catalog.Color{navy, white}, featured: true, inStock: true},
	{slug: "striped-polo", name: "Striped Polo", collection: "polos", price: 52, compareAt: 65, images: productImages("striped-polo", "jpg", "jpeg"), sizes: apparel, colors: []catalog.Color{navy, red}, inStock: true},
	{slug: "chore-jacket", name: "Canvas Chore Jacket", collection: "jackets", price: 145, images: productImages("chore-jacket", "jpg", "jpg", "jpg", "jpg"), sizes: apparel, colors: []catalog.Color{tan, olive}, featured: true, inStock: true},
	{slug: "coach-jacket", name: "Coach Jacket", collection: "jackets", price: 120, images: productImages("coach-jacket", "jpeg", "jpg"), sizes: apparel, colors: []catalog.Color{black}, inStock: false},
	{slug: "corduroy-cap", name: "Corduroy Cap", collection: "accessories", price: 32, images: []string{
		"/products/corduroy-cap/corduroy-cap-1.jpg",
		"/products/corduroy-cap/corduroy-cap-2.jpg",
		"/products/corduroy-cap/corduroy-cap-6.jpeg",
	}, sizes: oneSize, colors: []catalog.Color{tan, olive, navy}, featured: true, inStock: true},
	{slug: "canvas-tote", name: "Canvas Tote", collection: "accessories", price: 28, images: productImages("canvas-tote", "jpg"), sizes: oneSize, colors: []catalog.Color{white}, inStock: true},
	{slug: "buffalo-check-flannel", name: "Buffalo Check Flannel", collection: "flannel-long-sleeve", price: 78, images: productImages("buffalo-check-flannel", "jpg", "jpg", "jpg"), sizes: apparel, colors: []catalog.Color{red, black}, featured: true, inStock: true},
	{slug: "heritage-plaid-flannel", name: "Heritage Plaid Flannel", collection: "flannel-long-sleeve", price: 82, compareAt: 95, images: productImages("heritage-plaid-flannel", "jpg", "jpg"), sizes: apparel, colors: []catalog.Color{olive, navy}, inStock: true},
	{slug: "summer-plaid-short-sleeve", name: "Summer Plaid Short Sleeve", collection: "flannel-short-sleeve", price: 64, images: productImages("summer-plaid-short-sleeve", "jpg", "jpg"), sizes: apparel, colors: []catalog.Color{navy, white}, inStock: true},
	{slug: "madras-short-sleeve", name: "Madras Short Sleeve", collection: "flannel-short-sleeve", price: 60, images: productImages("madras-short-sleeve", "jpeg", "jpg", "jpg"), sizes: apparel, colors: []catalog.Color{red, tan}, featured: true, inStock: true},
	{slug: "patchwork-flannel-01", name: "Patchwork Flannel No. 1", collection: "flannel-patchwork-long-sleeve", price: 110, images: productImages("patchwork-flannel-01", "jpg", "jpg"), sizes: apparel, colors: []catalog.Color{red, navy}, featured: true, inStock: true},
	{slug: "patchwork-flannel-02", name: "Patchwork Flannel No. 2", collection: "flannel-patchwork-long-sleeve", price: 115, images: productImages("patchwork-flannel-02", "jpg", "jpg", "jpg"), sizes: apparel, colors: []catalog.Color{olive, black}, inStock: true},
	{slug: "patchwork-flannel-03", name: "Patchwork Flannel No. 3", collection: "flannel-patchwork-long-sleeve", price: 115, images: productImages("patchwork-flannel-03", "jpg"), sizes: apparel, colors: []catalog.Color{tan, red}, inStock: true},
}

// SeedProducts builds the seed catalog against store. Products whose
// collection is unknown to store are skipped.
func SeedProducts(store *catalog.Store) []catalog.Product {
	out := make([]catalog.Product, 0, len(seed))
	for i, s := range seed {
		col, ok := store.CollectionBySlug(s.collection)
		if !ok {
			continue
		}
		cat, _ := store.CategoryBySlug(s.collection)

		p := catalog.Product{
			ID:          "prod-" + s.slug,
			Name:        s.name,
			Slug:        s.slug,
			Description: s.name + " from the " + col.Name + " collection.",
			Price:       s.price,
			Images:      append([]string(nil), s.images...),
			Category:    cat,
			Collection:  col,
			Sizes:       append([]catalog.Size(nil), s.sizes...),
			Colors:      append([]catalog.Color(nil), s.colors...),
			InStock:     s.inStock,
			Featured:    s.featured,
			CreatedAt:   seedBase.Add(time.Duration(i) * 24 * time.Hour),
		}
		if s.compareAt > 0 {
			compareAt := s.compareAt
			p.CompareAtPrice = &compareAt
		}
		out = append(out, p)
	}
	return out
}
