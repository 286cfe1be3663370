package catalog

import "errors"

var (
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCollectionNotFound = errors.New("collection not found")
)

// Record is anything addressable by id and slug
type Record interface {
	GetID() string
	GetSlug() string
}

// LookupBySlug returns the first record whose slug equals slug
func LookupBySlug[T Record](set []T, slug string) (T, bool) {
	for _, r := range set {
		if r.GetSlug() == slug {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// LookupByID returns the first record whose id equals id
func LookupByID[T Record](set []T, id string) (T, bool) {
	for _, r := range set {
		if r.GetID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Store is an immutable, ordered set of categories and collections.
// It is safe for concurrent use since nothing mutates it after construction.
type Store struct {
	categories  []Category
	collections []Collection
}

// NewStore copies the given records into a new store
func NewStore(categories []Category, collections []Collection) *Store {
	return &Store{
		categories:  append([]Category(nil), categories...),
		collections: append([]Collection(nil), collections...),
	}
}

// Default returns the store backed by the built-in storefront catalog
func Default() *Store {
	return defaultStore
}

// Categories returns the categories in authoring order
func (s *Store) Categories() []Category {
	return append([]Category(nil), s.categories...)
}

// Collections returns the collections in authoring order
func (s *Store) Collections() []Collection {
	return append([]Collection(nil), s.collections...)
}

func (s *Store) CategoryBySlug(slug string) (Category, bool) {
	return LookupBySlug(s.categories, slug)
}

func (s *Store) CategoryByID(id string) (Category, bool) {
	return LookupByID(s.categories, id)
}

func (s *Store) CollectionBySlug(slug string) (Collection, bool) {
	return LookupBySlug(s.collections, slug)
}

func (s *Store) CollectionByID(id string) (Collection, bool) {
	return LookupByID(s.collections, id)
}
