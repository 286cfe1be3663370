package readmodel

import "time"

// CollectionActivationsReadModel tallies showcase card activations for one collection
type CollectionActivationsReadModel struct {
	CollectionSlug  string         `json:"collection_slug"`
	Count           int            `json:"count"`
	ByVariant       map[string]int `json:"by_variant"`
	LastActivatedAt time.Time      `json:"last_activated_at"`
}

// CacheInvalidationReadModel records the last eviction of a collection's product cache
type CacheInvalidationReadModel struct {
	CollectionSlug string    `json:"collection_slug"`
	ProductIDs     []string  `json:"product_ids,omitempty"`
	InvalidatedAt  time.Time `json:"invalidated_at"`
}
