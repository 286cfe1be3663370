package mocks

import (
	"context"
	"sync"

	"github.com/example/ec-showcase/internal/domain/catalog"
)

// MockSource is a mock implementation of products.Source for testing
type MockSource struct {
	mu       sync.RWMutex
	products []catalog.Product

	// Err is returned by every call when set
	Err error

	// For tracking calls in tests
	CollectionCalls []string
	AllCalls        int
}

// NewMockSource creates a new MockSource serving products
func NewMockSource(products ...catalog.Product) *MockSource {
	return &MockSource{
		products:        products,
		CollectionCalls: make([]string, 0),
	}
}

// Add appends products to the served list
func (m *MockSource) Add(products ...catalog.Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, products...)
}

// ProductsForCollection returns the products whose collection slug matches
func (m *MockSource) ProductsForCollection(ctx context.Context, slug string) ([]catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CollectionCalls = append(m.CollectionCalls, slug)
	if m.Err != nil {
		return nil, m.Err
	}

	out := []catalog.Product{}
	for _, p := range m.products {
		if p.Collection.Slug == slug {
			out = append(out, p)
		}
	}
	return out, nil
}

// AllProducts returns every product
func (m *MockSource) AllProducts(ctx context.Context) ([]catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.AllCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]catalog.Product{}, m.products...), nil
}

// Reset clears recorded calls
func (m *MockSource) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CollectionCalls = make([]string, 0)
	m.AllCalls = 0
}

// CollectionCallCount returns the number of ProductsForCollection calls
func (m *MockSource) CollectionCallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.CollectionCalls)
}
