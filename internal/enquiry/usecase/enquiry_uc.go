package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/enquiry/domain"
	listingdomain "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/metrics"
)

const SubjectEnquiryCreated = "enquiry.created"

// Listings is the part of the listing store enquiries depend on.
type Listings interface {
	FindByID(ctx context.Context, id string) (*listingdomain.Listing, error)
	FindByAuthor(ctx context.Context, authorID string) ([]*listingdomain.Listing, error)
}

type EnquiryEvent struct {
	EnquiryID  string    `json:"enquiry_id"`
	PropertyID string    `json:"property_id"`
	UserID     string    `json:"user_id"`
	AuthorID   string    `json:"author_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type EnquiryUsecase struct {
	repo      domain.EnquiryRepository
	listings  Listings
	authors   listingdomain.AuthorDirectory
	publisher listingdomain.EventPublisher
	notifier  domain.Notifier
	metrics   *metrics.MetricsManager
	now       func() time.Time
	logger    *logger.Logger
}

// NewEnquiryUsecase builds the service. authors, publisher, notifier and m may be nil.
func NewEnquiryUsecase(repo domain.EnquiryRepository, listings Listings, authors listingdomain.AuthorDirectory,
	publisher listingdomain.EventPublisher, notifier domain.Notifier, m *metrics.MetricsManager, log *logger.Logger) *EnquiryUsecase {
	return &EnquiryUsecase{
		repo:      repo,
		listings:  listings,
		authors:   authors,
		publisher: publisher,
		notifier:  notifier,
		metrics:   m,
		now:       time.Now,
		logger:    log.Named("EnquiryUsecase"),
	}
}

// Create records an enquiry from userID about propertyID.
func (uc *EnquiryUsecase) Create(ctx context.Context, userID, propertyID, message string) (*domain.Enquiry, error) {
	msg, err := domain.ValidateMessage(message)
	if err != nil {
		return nil, err
	}
	if propertyID == "" {
		return nil, fmt.Errorf("%w: property_id is required", domain.ErrValidation)
	}
	listing, err := uc.listings.FindByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	e := &domain.Enquiry{
		PropertyID: propertyID,
		UserID:     userID,
		Message:    msg,
		Status:     domain.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		uc.logger.Error("Failed to create enquiry", zap.String("property_id", propertyID), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("Enquiry created", zap.String("enquiry_id", e.ID), zap.String("property_id", propertyID), zap.String("user_id", userID))

	uc.metrics.EnquiryCreated()
	if uc.publisher != nil {
		event := EnquiryEvent{EnquiryID: e.ID, PropertyID: propertyID, UserID: userID, AuthorID: listing.AuthorID, OccurredAt: now}
		if err := uc.publisher.Publish(ctx, SubjectEnquiryCreated, event); err != nil {
			uc.logger.Warn("Failed to publish enquiry event", zap.Error(err))
		}
	}
	uc.notifyAuthor(ctx, listing, msg)
	return e, nil
}

func (uc *EnquiryUsecase) notifyAuthor(ctx context.Context, listing *listingdomain.Listing, message string) {
	if uc.notifier == nil || uc.authors == nil {
		return
	}
	author, err := uc.authors.GetContact(ctx, listing.AuthorID)
	if err != nil || author == nil || author.Email == "" {
		return
	}
	if err := uc.notifier.SendEnquiryReceivedEmail(author.Email, listing.Title, message); err != nil {
		uc.logger.Warn("Failed to email listing author", zap.String("listing_id", listing.ID), zap.Error(err))
	}
}

// Get returns an enquiry visible to actor: its sender, the listing author or an admin.
func (uc *EnquiryUsecase) Get(ctx context.Context, id string, actor domain.Actor) (*domain.Enquiry, error) {
	e, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Admin || e.UserID == actor.ID {
		return e, nil
	}
	if err := uc.requireListingOwner(ctx, e, actor); err != nil {
		return nil, err
	}
	return e, nil
}

func (uc *EnquiryUsecase) ListAll(ctx context.Context, actor domain.Actor) ([]*domain.Enquiry, error) {
	if !actor.Admin {
		return nil, domain.ErrForbidden
	}
	return uc.repo.FindAll(ctx)
}

// ListReceived returns enquiries about any listing owned by dealerID.
func (uc *EnquiryUsecase) ListReceived(ctx context.Context, dealerID string) ([]*domain.Enquiry, error) {
	listings, err := uc.listings.FindByAuthor(ctx, dealerID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
	}
	return uc.repo.FindByProperties(ctx, ids)
}

func (uc *EnquiryUsecase) ListSent(ctx context.Context, userID string) ([]*domain.Enquiry, error) {
	return uc.repo.FindByUser(ctx, userID)
}

// UpdateStatus is allowed for the listing author and admins.
func (uc *EnquiryUsecase) UpdateStatus(ctx context.Context, id string, actor domain.Actor, status domain.Status) (*domain.Enquiry, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, status)
	}
	e, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Admin {
		if err := uc.requireListingOwner(ctx, e, actor); err != nil {
			return nil, err
		}
	}

	e.Status = status
	e.UpdatedAt = uc.now().UTC()
	if err := uc.repo.UpdateStatus(ctx, id, status, e.UpdatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete is allowed for the listing author and admins.
func (uc *EnquiryUsecase) Delete(ctx context.Context, id string, actor domain.Actor) error {
	e, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.Admin {
		if err := uc.requireListingOwner(ctx, e, actor); err != nil {
			return err
		}
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *EnquiryUsecase) requireListingOwner(ctx context.Context, e *domain.Enquiry, actor domain.Actor) error {
	listing, err := uc.listings.FindByID(ctx, e.PropertyID)
	if errors.Is(err, listingdomain.ErrNotFound) {
		return domain.ErrForbidden
	}
	if err != nil {
		return err
	}
	if listing.AuthorID != actor.ID {
		return domain.ErrForbidden
	}
	return nil
}
