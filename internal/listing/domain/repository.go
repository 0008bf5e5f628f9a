package domain

import (
	"context"
	"time"
)

// ListingRepository is the record store. Not-found maps to ErrNotFound and a
// version mismatch on Update maps to ErrConflict.
type ListingRepository interface {
	Create(ctx context.Context, listing *Listing) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindAll(ctx context.Context, filter Filter) ([]*Listing, error)
	FindByAuthor(ctx context.Context, authorID string) ([]*Listing, error)
	// Update persists l if the stored version equals expectedVersion and
	// bumps l.Version on success.
	Update(ctx context.Context, l *Listing, expectedVersion int64) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, filter Filter) (int64, error)
	IncrementViews(ctx context.Context, id string) error
}

type ResourceKind string

const (
	ResourceImage    ResourceKind = "image"
	ResourceVideo    ResourceKind = "video"
	ResourceDocument ResourceKind = "document"
)

// UploadOptions controls how an asset is stored.
type UploadOptions struct {
	Kind   ResourceKind
	Prefix string
}

// StoredAsset is the result of an upload.
type StoredAsset struct {
	URL string
	Key string
}

// Storage is the object storage gateway.
type Storage interface {
	StoreMany(ctx context.Context, payloads [][]byte, folder string, opts UploadOptions) ([]StoredAsset, error)
	RemoveMany(ctx context.Context, keys []string, kind ResourceKind) CleanupReport
	KeyFromURL(rawURL string) (string, error)
}

// ListingCache caches listing details. Implementations must treat a miss as
// (nil, nil).
type ListingCache interface {
	GetListing(ctx context.Context, id string) (*Listing, error)
	SetListing(ctx context.Context, listing *Listing) error
	DeleteListing(ctx context.Context, id string) error
}

// AuthorDirectory resolves author contact cards from the users store.
type AuthorDirectory interface {
	GetContact(ctx context.Context, userID string) (*AuthorContact, error)
}

// EventPublisher emits domain events. Failures are never fatal to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// ListingPolicy decides whether an author may create another listing.
type ListingPolicy interface {
	CanCreateListing(ctx context.Context, authorID string) error
}

// Notifier sends out-of-band messages to users.
type Notifier interface {
	SendListingCreatedEmail(toEmail, listingTitle string) error
}

// Clock is swapped in tests.
type Clock func() time.Time
