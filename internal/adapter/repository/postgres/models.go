package postgres

import (
	"time"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
)

type imageRow struct {
	URL string `json:"url"`
	Key string `json:"key,omitempty"`
}

type listingRow struct {
	ID          string     `gorm:"type:uuid;primaryKey"`
	AuthorID    string     `gorm:"type:varchar(64);index;not null"`
	Title       string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	Category    string     `gorm:"type:varchar(32);index:idx_properties_search;not null"`
	Subtype     string     `gorm:"type:varchar(100)"`
	Purpose     string     `gorm:"type:varchar(16);index:idx_properties_search;not null"`
	Price       float64    `gorm:"type:numeric(14,2);index;not null"`
	Location    string     `gorm:"type:varchar(200);index:idx_properties_search;not null"`
	Images      []imageRow `gorm:"serializer:json;type:jsonb;not null"`
	IsActive    bool       `gorm:"default:true"`
	Views       int64      `gorm:"default:0"`
	Version     int64      `gorm:"not null;default:1"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time
}

func (listingRow) TableName() string { return "properties" }

func fromDomainListing(l *domain.Listing) *listingRow {
	images := make([]imageRow, 0, len(l.Images))
	for _, img := range l.Images {
		images = append(images, imageRow{URL: img.URL, Key: img.Key})
	}
	return &listingRow{
		ID:          l.ID,
		AuthorID:    l.AuthorID,
		Title:       l.Title,
		Description: l.Description,
		Category:    string(l.Category),
		Subtype:     l.Subtype,
		Purpose:     string(l.Purpose),
		Price:       l.Price,
		Location:    l.Location,
		Images:      images,
		IsActive:    l.IsActive,
		Views:       l.Views,
		Version:     l.Version,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func (r *listingRow) toDomain() *domain.Listing {
	images := make([]domain.Image, 0, len(r.Images))
	for _, img := range r.Images {
		images = append(images, domain.Image{URL: img.URL, Key: img.Key})
	}
	return &domain.Listing{
		ID:          r.ID,
		AuthorID:    r.AuthorID,
		Title:       r.Title,
		Description: r.Description,
		Category:    domain.Category(r.Category),
		Subtype:     r.Subtype,
		Purpose:     domain.Purpose(r.Purpose),
		Price:       r.Price,
		Location:    r.Location,
		Images:      images,
		IsActive:    r.IsActive,
		Views:       r.Views,
		Version:     r.Version,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
