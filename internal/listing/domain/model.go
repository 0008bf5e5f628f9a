package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinImages = 1
	MaxImages = 10

	minTitleLen       = 5
	maxTitleLen       = 200
	maxDescriptionLen = 2000
	minLocationLen    = 2
	maxLocationLen    = 200
)

type Category string

const (
	CategoryResidential Category = "Residential"
	CategoryCommercial  Category = "Commercial"
	CategoryLand        Category = "Land"
	CategoryIndustrial  Category = "Industrial"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryResidential, CategoryCommercial, CategoryLand, CategoryIndustrial:
		return true
	}
	return false
}

type Purpose string

const (
	PurposeSale Purpose = "sale"
	PurposeRent Purpose = "rent"
)

func (p Purpose) IsValid() bool {
	return p == PurposeSale || p == PurposeRent
}

// Image is a stored listing image. Key is the storage-side identifier kept
// next to the public URL so removal never depends on parsing the URL.
type Image struct {
	URL string
	Key string
}

type Listing struct {
	ID          string
	AuthorID    string
	Title       string
	Description string
	Category    Category
	Subtype     string
	Purpose     Purpose
	Price       float64
	Location    string
	Images      []Image
	IsActive    bool
	Views       int64
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ImageURLs returns the image URLs in display order.
func (l *Listing) ImageURLs() []string {
	urls := make([]string, 0, len(l.Images))
	for _, img := range l.Images {
		urls = append(urls, img.URL)
	}
	return urls
}

// AuthorContact is the minimal author card joined into the detail view.
type AuthorContact struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// ListingDetail is what the detail endpoint returns.
type ListingDetail struct {
	*Listing
	Author *AuthorContact
}

// Summary is the list-view projection: first image only, no author id.
type Summary struct {
	ID          string
	Title       string
	Description string
	Category    Category
	Subtype     string
	Purpose     Purpose
	Price       float64
	Location    string
	Image       string
	IsActive    bool
	Views       int64
	CreatedAt   time.Time
}

// ToSummary projects a listing for list views.
func (l *Listing) ToSummary() Summary {
	s := Summary{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Category:    l.Category,
		Subtype:     l.Subtype,
		Purpose:     l.Purpose,
		Price:       l.Price,
		Location:    l.Location,
		IsActive:    l.IsActive,
		Views:       l.Views,
		CreatedAt:   l.CreatedAt,
	}
	if len(l.Images) > 0 {
		s.Image = l.Images[0].URL
	}
	return s
}

// CreateInput carries the text fields of a new listing.
type CreateInput struct {
	Title       string
	Description string
	Category    Category
	Subtype     string
	Purpose     Purpose
	Price       float64
	Location    string
}

// Validate checks field constraints. Image count is checked separately.
func (in CreateInput) Validate() error {
	if err := validateTitle(in.Title); err != nil {
		return err
	}
	if err := validateDescription(in.Description); err != nil {
		return err
	}
	if !in.Category.IsValid() {
		return fmt.Errorf("%w: invalid category %q", ErrValidation, in.Category)
	}
	if !in.Purpose.IsValid() {
		return fmt.Errorf("%w: invalid purpose %q", ErrValidation, in.Purpose)
	}
	if err := validatePrice(in.Price); err != nil {
		return err
	}
	return validateLocation(in.Location)
}

// ListingPatch is a partial update. A nil field keeps the stored value; a
// non-nil pointer to an empty string explicitly clears Description/Subtype.
type ListingPatch struct {
	Title       *string
	Description *string
	Category    *Category
	Subtype     *string
	Purpose     *Purpose
	Price       *float64
	Location    *string
	IsActive    *bool
	// Version, when set, must match the stored version.
	Version *int64
}

// Validate checks only the fields that are present.
func (p ListingPatch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Description != nil {
		if err := validateDescription(*p.Description); err != nil {
			return err
		}
	}
	if p.Category != nil && !p.Category.IsValid() {
		return fmt.Errorf("%w: invalid category %q", ErrValidation, *p.Category)
	}
	if p.Purpose != nil && !p.Purpose.IsValid() {
		return fmt.Errorf("%w: invalid purpose %q", ErrValidation, *p.Purpose)
	}
	if p.Price != nil {
		if err := validatePrice(*p.Price); err != nil {
			return err
		}
	}
	if p.Location != nil {
		return validateLocation(*p.Location)
	}
	return nil
}

// Apply merges the patch into l. Author and images are never touched here.
func (p ListingPatch) Apply(l *Listing) {
	if p.Title != nil {
		l.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.Subtype != nil {
		l.Subtype = *p.Subtype
	}
	if p.Purpose != nil {
		l.Purpose = *p.Purpose
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Location != nil {
		l.Location = strings.TrimSpace(*p.Location)
	}
	if p.IsActive != nil {
		l.IsActive = *p.IsActive
	}
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n < minTitleLen || n > maxTitleLen {
		return fmt.Errorf("%w: title must be between %d and %d characters", ErrValidation, minTitleLen, maxTitleLen)
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return fmt.Errorf("%w: description must be at most %d characters", ErrValidation, maxDescriptionLen)
	}
	return nil
}

func validatePrice(price float64) error {
	if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return fmt.Errorf("%w: price must be a non-negative number", ErrValidation)
	}
	return nil
}

func validateLocation(location string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(location))
	if n < minLocationLen || n > maxLocationLen {
		return fmt.Errorf("%w: location must be between %d and %d characters", ErrValidation, minLocationLen, maxLocationLen)
	}
	return nil
}
