package domain

import "errors"

var (
	// ErrValidation indicates bad input shape or image count.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates the listing does not exist.
	ErrNotFound = errors.New("listing not found")
	// ErrForbidden indicates a mutation by someone other than the author.
	ErrForbidden = errors.New("user not authorized to modify this listing")
	// ErrConflict indicates the listing changed since it was read.
	ErrConflict = errors.New("listing was modified concurrently")
	// ErrPersistence indicates the record store failed.
	ErrPersistence = errors.New("listing persistence failed")
	// ErrUpload indicates object storage rejected an upload.
	ErrUpload = errors.New("image upload failed")
	// ErrDelete indicates object storage rejected a removal.
	ErrDelete = errors.New("image delete failed")
	// ErrKeyExtraction indicates no asset key could be derived from a URL.
	ErrKeyExtraction = errors.New("could not extract asset key from url")
	// ErrSubscriptionRequired indicates the dealer may not create more listings.
	ErrSubscriptionRequired = errors.New("an active subscription is required to create listings")
)
