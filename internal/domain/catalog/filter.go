package catalog

import (
	"errors"
	"sort"
	"strings"
)

var ErrInvalidSortOption = errors.New("invalid sort option")

// SortOption selects the ordering of a shop listing
type SortOption string

const (
	SortRelevance SortOption = "relevance"
	SortPriceAsc  SortOption = "price-asc"
	SortPriceDesc SortOption = "price-desc"
	SortNameAsc   SortOption = "name-asc"
	SortNameDesc  SortOption = "name-desc"
	SortNewest    SortOption = "newest"
)

// ParseSortOption parses s, defaulting to relevance when s is empty
func ParseSortOption(s string) (SortOption, error) {
	switch opt := SortOption(s); opt {
	case "":
		return SortRelevance, nil
	case SortRelevance, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortNewest:
		return opt, nil
	}
	return "", ErrInvalidSortOption
}

// ShopFilters narrows a shop listing. Empty fields do not filter.
// Values within one field are OR-ed, fields are AND-ed.
type ShopFilters struct {
	Category   []string `json:"category,omitempty"`
	Collection []string `json:"collection,omitempty"`
	Size       []Size   `json:"size,omitempty"`
	Color      []string `json:"color,omitempty"`
	MinPrice   *float64 `json:"minPrice,omitempty"`
	MaxPrice   *float64 `json:"maxPrice,omitempty"`
}

// Matches reports whether p passes every filter
func (f ShopFilters) Matches(p Product) bool {
	if len(f.Category) > 0 && !containsString(f.Category, p.Category.Slug) {
		return false
	}
	if len(f.Collection) > 0 && !containsString(f.Collection, p.Collection.Slug) {
		return false
	}
	if len(f.Size) > 0 && !hasAnySize(p.Sizes, f.Size) {
		return false
	}
	if len(f.Color) > 0 && !hasAnyColor(p.Colors, f.Color) {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

// FilterProducts returns the products matching f, preserving order
func FilterProducts(products []Product, f ShopFilters) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// SortProducts returns a sorted copy of products. Ties keep source order.
// Relevance puts featured products first.
func SortProducts(products []Product, opt SortOption) []Product {
	out := append([]Product(nil), products...)

	var less func(a, b Product) bool
	switch opt {
	case SortPriceAsc:
		less = func(a, b Product) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b Product) bool { return a.Price > b.Price }
	case SortNameAsc:
		less = func(a, b Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) }
	case SortNameDesc:
		less = func(a, b Product) bool { return strings.ToLower(a.Name) > strings.ToLower(b.Name) }
	case SortNewest:
		less = func(a, b Product) bool { return a.CreatedAt.After(b.CreatedAt) }
	default:
		less = func(a, b Product) bool { return a.Featured && !b.Featured }
	}

	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}

func hasAnySize(have, want []Size) bool {
	for _, s := range have {
		for _, w := range want {
			if s == w {
				return true
			}
		}
	}
	return false
}

func hasAnyColor(have []Color, want []string) bool {
	for _, c := range have {
		for _, w := range want {
			if strings.EqualFold(c.Name, w) {
				return true
			}
		}
	}
	return false
}
