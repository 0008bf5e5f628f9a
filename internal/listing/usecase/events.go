package usecase

import "time"

const (
	SubjectListingCreated = "property.created"
	SubjectListingUpdated = "property.updated"
	SubjectListingDeleted = "property.deleted"
)

// ListingEvent is published after every successful listing mutation.
type ListingEvent struct {
	ListingID     string    `json:"listing_id"`
	AuthorID      string    `json:"author_id"`
	Title         string    `json:"title,omitempty"`
	ImageCount    int       `json:"image_count"`
	ImagesAdded   int       `json:"images_added,omitempty"`
	ImagesRemoved int       `json:"images_removed,omitempty"`
	OrphanedKeys  []string  `json:"orphaned_keys,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}
