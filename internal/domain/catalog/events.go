package catalog

import "time"

const AggregateType = "Collection"

const (
	EventCollectionProductsChanged = "CollectionProductsChanged"
)

// CollectionProductsChanged is emitted when products are added to, removed
// from, or re-imaged within a collection
type CollectionProductsChanged struct {
	CollectionSlug string    `json:"collection_slug"`
	ProductIDs     []string  `json:"product_ids,omitempty"`
	ChangedAt      time.Time `json:"changed_at"`
}
