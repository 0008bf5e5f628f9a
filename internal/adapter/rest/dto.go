package rest

import (
	"time"

	enquirydomain "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/enquiry/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	subdomain "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/subscription/domain"
)

type authorDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

type listingDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Subtype     string     `json:"subtype,omitempty"`
	Purpose     string     `json:"purpose"`
	Price       float64    `json:"price"`
	Location    string     `json:"location"`
	Images      []string   `json:"images"`
	IsActive    bool       `json:"isActive"`
	Views       int64      `json:"views"`
	Version     int64      `json:"version"`
	AuthorID    string     `json:"authorId,omitempty"`
	Author      *authorDTO `json:"author,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type summaryDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Subtype     string    `json:"subtype,omitempty"`
	Purpose     string    `json:"purpose"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Image       string    `json:"image,omitempty"`
	IsActive    bool      `json:"isActive"`
	Views       int64     `json:"views"`
	CreatedAt   time.Time `json:"createdAt"`
}

type pageDTO struct {
	Total int64 `json:"total"`
	Page  int64 `json:"page,omitempty"`
	Limit int64 `json:"limit,omitempty"`
}

type enquiryDTO struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	UserID     string    `json:"userId"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type subscriptionDTO struct {
	DealerID  string    `json:"dealerId"`
	Plan      string    `json:"plan"`
	ExpiresAt time.Time `json:"expiresAt"`
	IsActive  bool      `json:"isActive"`
	Current   bool      `json:"current"`
}

func toListingDTO(l *domain.Listing) listingDTO {
	return listingDTO{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Category:    string(l.Category),
		Subtype:     l.Subtype,
		Purpose:     string(l.Purpose),
		Price:       l.Price,
		Location:    l.Location,
		Images:      l.ImageURLs(),
		IsActive:    l.IsActive,
		Views:       l.Views,
		Version:     l.Version,
		AuthorID:    l.AuthorID,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// toDetailDTO replaces the author id with the joined contact card when present.
func toDetailDTO(d *domain.ListingDetail) listingDTO {
	dto := toListingDTO(d.Listing)
	if d.Author != nil {
		dto.Author = &authorDTO{ID: d.Author.ID, Name: d.Author.Name, Email: d.Author.Email, Phone: d.Author.Phone}
	}
	return dto
}

func toListingDTOs(listings []*domain.Listing) []listingDTO {
	out := make([]listingDTO, 0, len(listings))
	for _, l := range listings {
		out = append(out, toListingDTO(l))
	}
	return out
}

func toSummaryDTOs(summaries []domain.Summary) []summaryDTO {
	out := make([]summaryDTO, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, summaryDTO{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			Category:    string(s.Category),
			Subtype:     s.Subtype,
			Purpose:     string(s.Purpose),
			Price:       s.Price,
			Location:    s.Location,
			Image:       s.Image,
			IsActive:    s.IsActive,
			Views:       s.Views,
			CreatedAt:   s.CreatedAt,
		})
	}
	return out
}

func toEnquiryDTO(e *enquirydomain.Enquiry) enquiryDTO {
	return enquiryDTO{
		ID:         e.ID,
		PropertyID: e.PropertyID,
		UserID:     e.UserID,
		Message:    e.Message,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func toEnquiryDTOs(enquiries []*enquirydomain.Enquiry) []enquiryDTO {
	out := make([]enquiryDTO, 0, len(enquiries))
	for _, e := range enquiries {
		out = append(out, toEnquiryDTO(e))
	}
	return out
}

func toSubscriptionDTO(s *subdomain.Subscription, now time.Time) subscriptionDTO {
	return subscriptionDTO{
		DealerID:  s.DealerID,
		Plan:      string(s.Plan),
		ExpiresAt: s.ExpiresAt,
		IsActive:  s.IsActive,
		Current:   s.IsCurrent(now),
	}
}
