package showcase

import "time"

const AggregateType = "Showcase"

const (
	EventCardActivated = "ShowcaseCardActivated"
)

// CardActivated is emitted when a shopper follows a showcase card
type CardActivated struct {
	SessionID      string    `json:"session_id,omitempty"`
	CollectionSlug string    `json:"collection_slug"`
	Variant        Variant   `json:"variant"`
	Position       int       `json:"position"`
	Href           string    `json:"href"`
	ActivatedAt    time.Time `json:"activated_at"`
}
