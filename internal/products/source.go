package products

import (
	"context"

	"github.com/example/ec-showcase/internal/domain/catalog"
)

// Source provides product listings. Implementations return products in
// their stable storage order; an unknown collection slug yields an empty
// list and a nil error.
type Source interface {
	ProductsForCollection(ctx context.Context, slug string) ([]catalog.Product, error)
	AllProducts(ctx context.Context) ([]catalog.Product, error)
}

// MemorySource serves a fixed product list
type MemorySource struct {
	products []catalog.Product
}

// NewMemorySource creates a source over a copy of products
func NewMemorySource(products []catalog.Product) *MemorySource {
	return &MemorySource{products: append([]catalog.Product(nil), products...)}
}

// NewSeedSource serves the storefront's seed catalog
func NewSeedSource(store *catalog.Store) *MemorySource {
	return NewMemorySource(SeedProducts(store))
}

func (m *MemorySource) ProductsForCollection(ctx context.Context, slug string) ([]catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := []catalog.Product{}
	for _, p := range m.products {
		if p.Collection.Slug == slug {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MemorySource) AllProducts(ctx context.Context) ([]catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]catalog.Product{}, m.products...), nil
}
