package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/example/ec-showcase/internal/domain/catalog"
	"go.uber.org/zap"
)

// shopQuery is the query string of a shop listing request
type shopQuery struct {
	Category   []string `schema:"category"`
	Collection []string `schema:"collection"`
	Size       []string `schema:"size"`
	Color      []string `schema:"color"`
	MinPrice   *float64 `schema:"minPrice"`
	MaxPrice   *float64 `schema:"maxPrice"`
	Sort       string   `schema:"sort"`
}

func (q shopQuery) filters() catalog.ShopFilters {
	f := catalog.ShopFilters{
		Category:   q.Category,
		Collection: q.Collection,
		Color:      q.Color,
		MinPrice:   q.MinPrice,
		MaxPrice:   q.MaxPrice,
	}
	for _, s := range q.Size {
		f.Size = append(f.Size, catalog.Size(s))
	}
	return f
}

// ListCategories returns all categories
func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.queryHandler.ListCategories())
}

// GetCategory returns a single category by slug
func (h *Handlers) GetCategory(w http.ResponseWriter, r *http.Request) {
	slug := extractPathParam(r.URL.Path, "/api/categories/")
	category, err := h.queryHandler.GetCategory(slug)
	if err != nil {
		respondJSONError(w, "Category not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, category)
}

func (h *Handlers) ListCollections(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.queryHandler.ListCollections())
}

// GetCollection serves /api/collections/{slug} and /api/collections/{slug}/products
func (h *Handlers) GetCollection(w http.ResponseWriter, r *http.Request) {
	path := extractPathParam(r.URL.Path, "/api/collections/")
	if slug, ok := strings.CutSuffix(path, "/products"); ok {
		h.getCollectionProducts(w, r, slug)
		return
	}

	collection, err := h.queryHandler.GetCollection(path)
	if err != nil {
		respondJSONError(w, "Collection not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, collection)
}

func (h *Handlers) getCollectionProducts(w http.ResponseWriter, r *http.Request, slug string) {
	products, err := h.queryHandler.CollectionProducts(r.Context(), slug)
	if errors.Is(err, catalog.ErrCollectionNotFound) {
		respondJSONError(w, "Collection not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("listing collection products", zap.String("collection", slug), zap.Error(err))
		respondJSONError(w, "Failed to fetch products", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// ListShopProducts returns the filtered and sorted shop listing
func (h *Handlers) ListShopProducts(w http.ResponseWriter, r *http.Request) {
	var q shopQuery
	if err := h.decoder.Decode(&q, r.URL.Query()); err != nil {
		respondJSONError(w, "Invalid query parameters", http.StatusBadRequest)
		return
	}
	sort, err := catalog.ParseSortOption(q.Sort)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	products, err := h.queryHandler.ShopProducts(r.Context(), q.filters(), sort)
	if err != nil {
		h.logger.Error("listing shop products", zap.Error(err))
		respondJSONError(w, "Failed to fetch products", http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, products)
}
