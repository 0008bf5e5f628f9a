package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	enquirydomain "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/enquiry/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	subdomain "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/subscription/domain"
)

type imageDocument struct {
	URL string `bson:"url"`
	Key string `bson:"key,omitempty"`
}

type listingDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	AuthorID    string             `bson:"author_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Subtype     string             `bson:"subtype,omitempty"`
	Purpose     string             `bson:"purpose"`
	Price       float64            `bson:"price"`
	Location    string             `bson:"location"`
	Images      []imageDocument    `bson:"images"`
	IsActive    bool               `bson:"is_active"`
	Views       int64              `bson:"views"`
	Version     int64              `bson:"version"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

// userDocument is the slice of the users collection this service reads.
type userDocument struct {
	ID    any    `bson:"_id"`
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Phone string `bson:"phone"`
}

type enquiryDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	PropertyID string             `bson:"property_id"`
	UserID     string             `bson:"user_id"`
	Message    string             `bson:"message"`
	Status     string             `bson:"status"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

type subscriptionDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	DealerID  string             `bson:"dealer_id"`
	Plan      string             `bson:"plan"`
	ExpiresAt time.Time          `bson:"expires_at"`
	IsActive  bool               `bson:"is_active"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func objectIDFromHex(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid id %q: %w", id, err)
	}
	return oid, nil
}

func fromDomainListing(l *domain.Listing) (*listingDocument, error) {
	var oid primitive.ObjectID
	if l.ID != "" {
		var err error
		if oid, err = objectIDFromHex(l.ID); err != nil {
			return nil, err
		}
	}
	images := make([]imageDocument, 0, len(l.Images))
	for _, img := range l.Images {
		images = append(images, imageDocument{URL: img.URL, Key: img.Key})
	}
	return &listingDocument{
		ID:          oid,
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
	}, nil
}

func (d *listingDocument) toDomain() *domain.Listing {
	images := make([]domain.Image, 0, len(d.Images))
	for _, img := range d.Images {
		images = append(images, domain.Image{URL: img.URL, Key: img.Key})
	}
	return &domain.Listing{
		ID:          d.ID.Hex(),
		AuthorID:    d.AuthorID,
		Title:       d.Title,
		Description: d.Description,
		Category:    domain.Category(d.Category),
		Subtype:     d.Subtype,
		Purpose:     domain.Purpose(d.Purpose),
		Price:       d.Price,
		Location:    d.Location,
		Images:      images,
		IsActive:    d.IsActive,
		Views:       d.Views,
		Version:     d.Version,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func toDomainListings(docs []*listingDocument) []*domain.Listing {
	out := make([]*domain.Listing, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out
}

func (d *userDocument) toContact() *domain.AuthorContact {
	id := ""
	switch v := d.ID.(type) {
	case primitive.ObjectID:
		id = v.Hex()
	case string:
		id = v
	default:
		id = fmt.Sprint(v)
	}
	return &domain.AuthorContact{ID: id, Name: d.Name, Email: d.Email, Phone: d.Phone}
}

func (d *enquiryDocument) toDomain() *enquirydomain.Enquiry {
	return &enquirydomain.Enquiry{
		ID:         d.ID.Hex(),
		PropertyID: d.PropertyID,
		UserID:     d.UserID,
		Message:    d.Message,
		Status:     enquirydomain.Status(d.Status),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func toDomainEnquiries(docs []*enquiryDocument) []*enquirydomain.Enquiry {
	out := make([]*enquirydomain.Enquiry, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out
}

func (d *subscriptionDocument) toDomain() *subdomain.Subscription {
	return &subdomain.Subscription{
		ID:        d.ID.Hex(),
		DealerID:  d.DealerID,
		Plan:      subdomain.Plan(d.Plan),
		ExpiresAt: d.ExpiresAt,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
