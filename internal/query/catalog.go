package query

import (
	"context"

	"github.com/example/ec-showcase/internal/domain/catalog"
	"github.com/example/ec-showcase/internal/domain/showcase"
	"github.com/example/ec-showcase/internal/imaging"
)

// Categories
func (h *Handler) ListCategories() []catalog.Category {
	return h.catalog.Categories()
}

func (h *Handler) GetCategory(slug string) (catalog.Category, error) {
	c, ok := h.catalog.CategoryBySlug(slug)
	if !ok {
		return catalog.Category{}, catalog.ErrCategoryNotFound
	}
	return c, nil
}

// Collections
func (h *Handler) ListCollections() []catalog.Collection {
	return h.catalog.Collections()
}

func (h *Handler) GetCollection(slug string) (catalog.Collection, error) {
	c, ok := h.catalog.CollectionBySlug(slug)
	if !ok {
		return catalog.Collection{}, catalog.ErrCollectionNotFound
	}
	return c, nil
}

// CollectionProducts lists a known collection's products in source order
func (h *Handler) CollectionProducts(ctx context.Context, slug string) ([]catalog.Product, error) {
	if _, err := h.GetCollection(slug); err != nil {
		return nil, err
	}
	products, err := h.products.ProductsForCollection(ctx, slug)
	if err != nil {
		return nil, err
	}
	return h.deliverImages(products), nil
}

// ShopProducts is the shop listing: filters applied, then sorted
func (h *Handler) ShopProducts(ctx context.Context, filters catalog.ShopFilters, sort catalog.SortOption) ([]catalog.Product, error) {
	all, err := h.products.AllProducts(ctx)
	if err != nil {
		return nil, err
	}
	listed := catalog.SortProducts(catalog.FilterProducts(all, filters), sort)
	return h.deliverImages(listed), nil
}

func (h *Handler) deliverImages(products []catalog.Product) []catalog.Product {
	hints := imaging.Hints{Quality: showcase.ImageQuality, Width: productWidth}
	out := make([]catalog.Product, len(products))
	for i, p := range products {
		images := make([]string, len(p.Images))
		for j, img := range p.Images {
			images[j] = h.delivery.URL(img, hints)
		}
		p.Images = images
		out[i] = p
	}
	return out
}
