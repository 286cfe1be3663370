package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []Product {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return []Product{
		{
			ID: "p1", Name: "Navy Polo", Price: 45,
			Category:   Category{Slug: "polos"},
			Collection: Collection{Slug: "polos"},
			Sizes:      []Size{SizeS, SizeM},
			Colors:     []Color{{Name: "Navy", Hex: "#1f2a44"}},
			InStock:    true,
			CreatedAt:  base,
		},
		{
			ID: "p2", Name: "chore jacket", Price: 120,
			Category:   Category{Slug: "jackets"},
			Collection: Collection{Slug: "jackets"},
			Sizes:      []Size{SizeL},
			Colors:     []Color{{Name: "Olive", Hex: "#556b2f"}},
			Featured:   true,
			CreatedAt:  base.Add(48 * time.Hour),
		},
		{
			ID: "p3", Name: "Corduroy Cap", Price: 30,
			Category:   Category{Slug: "accessories"},
			Collection: Collection{Slug: "accessories"},
			Sizes:      []Size{SizeOneSize},
			Colors:     []Color{{Name: "Navy", Hex: "#1f2a44"}},
			CreatedAt:  base.Add(24 * time.Hour),
		},
	}
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func price(v float64) *float64 { return &v }

// ============================================
// Filter Tests
// ============================================

func TestFilterProducts(t *testing.T) {
	tests := []struct {
		name    string
		filters ShopFilters
		want    []string
	}{
		{"no filters", ShopFilters{}, []string{"p1", "p2", "p3"}},
		{"single collection", ShopFilters{Collection: []string{"jackets"}}, []string{"p2"}},
		{"collections are OR-ed", ShopFilters{Collection: []string{"polos", "accessories"}}, []string{"p1", "p3"}},
		{"category", ShopFilters{Category: []string{"accessories"}}, []string{"p3"}},
		{"size", ShopFilters{Size: []Size{SizeM, SizeL}}, []string{"p1", "p2"}},
		{"color case-insensitive", ShopFilters{Color: []string{"navy"}}, []string{"p1", "p3"}},
		{"min price", ShopFilters{MinPrice: price(45)}, []string{"p1", "p2"}},
		{"max price", ShopFilters{MaxPrice: price(44.99)}, []string{"p3"}},
		{"fields are AND-ed", ShopFilters{Color: []string{"Navy"}, MinPrice: price(40)}, []string{"p1"}},
		{"no match", ShopFilters{Collection: []string{"swimwear"}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProducts(testProducts(), tt.filters)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

// ============================================
// Sort Tests
// ============================================

func TestSortProducts(t *testing.T) {
	tests := []struct {
		opt  SortOption
		want []string
	}{
		{SortRelevance, []string{"p2", "p1", "p3"}},
		{SortPriceAsc, []string{"p3", "p1", "p2"}},
		{SortPriceDesc, []string{"p2", "p1", "p3"}},
		{SortNameAsc, []string{"p2", "p3", "p1"}},
		{SortNameDesc, []string{"p1", "p3", "p2"}},
		{SortNewest, []string{"p2", "p3", "p1"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.opt), func(t *testing.T) {
			got := SortProducts(testProducts(), tt.opt)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSortProducts_DoesNotMutateInput(t *testing.T) {
	products := testProducts()

	_ = SortProducts(products, SortPriceAsc)

	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(products))
}

func TestParseSortOption(t *testing.T) {
	opt, err := ParseSortOption("")
	require.NoError(t, err)
	assert.Equal(t, SortRelevance, opt)

	opt, err = ParseSortOption("name-desc")
	require.NoError(t, err)
	assert.Equal(t, SortNameDesc, opt)

	_, err = ParseSortOption("cheapest")
	assert.ErrorIs(t, err, ErrInvalidSortOption)
}

func TestSize_Valid(t *testing.T) {
	assert.True(t, SizeOneSize.Valid())
	assert.False(t, Size("XXL").Valid())
}

func TestProduct_FirstImage(t *testing.T) {
	_, ok := Product{}.FirstImage()
	assert.False(t, ok)

	img, ok := Product{Images: []string{"/a.jpg", "/b.jpg"}}.FirstImage()
	assert.True(t, ok)
	assert.Equal(t, "/a.jpg", img)
}
