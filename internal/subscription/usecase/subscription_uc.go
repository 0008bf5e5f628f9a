package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	listingdomain "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/subscription/domain"
)

const SubjectSubscriptionChanged = "subscription.changed"

// ListingCounter counts listings matching a filter.
type ListingCounter interface {
	Count(ctx context.Context, f listingdomain.Filter) (int64, error)
}

type SubscriptionEvent struct {
	DealerID   string    `json:"dealer_id"`
	Plan       string    `json:"plan"`
	Active     bool      `json:"active"`
	ExpiresAt  time.Time `json:"expires_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

type SubscriptionUsecase struct {
	repo      domain.SubscriptionRepository
	listings  ListingCounter
	publisher listingdomain.EventPublisher
	now       func() time.Time
	logger    *logger.Logger
}

func NewSubscriptionUsecase(repo domain.SubscriptionRepository, listings ListingCounter, publisher listingdomain.EventPublisher, log *logger.Logger) *SubscriptionUsecase {
	return &SubscriptionUsecase{
		repo:      repo,
		listings:  listings,
		publisher: publisher,
		now:       time.Now,
		logger:    log.Named("SubscriptionUsecase"),
	}
}

func (uc *SubscriptionUsecase) Plans() []domain.PlanSpec {
	return append([]domain.PlanSpec(nil), domain.Catalog...)
}

func (uc *SubscriptionUsecase) Get(ctx context.Context, dealerID string) (*domain.Subscription, error) {
	return uc.repo.FindByDealer(ctx, dealerID)
}

// Subscribe creates or renews the dealer's subscription. Renewal extends from
// the later of now and the current expiry.
func (uc *SubscriptionUsecase) Subscribe(ctx context.Context, dealerID string, plan domain.Plan) (*domain.Subscription, error) {
	spec, err := domain.Lookup(plan)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()

	current, err := uc.repo.FindByDealer(ctx, dealerID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	start := now
	if current.IsCurrent(now) {
		start = current.ExpiresAt
	}

	sub := &domain.Subscription{
		DealerID:  dealerID,
		Plan:      plan,
		ExpiresAt: start.Add(spec.Duration),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Upsert(ctx, sub); err != nil {
		uc.logger.Error("Failed to store subscription", zap.String("dealer_id", dealerID), zap.Error(err))
		return nil, err
	}
	uc.logger.Info("Subscription updated",
		zap.String("dealer_id", dealerID), zap.String("plan", string(plan)), zap.Time("expires_at", sub.ExpiresAt))
	uc.publish(ctx, sub, now)
	return sub, nil
}

func (uc *SubscriptionUsecase) Cancel(ctx context.Context, dealerID string) error {
	now := uc.now().UTC()
	if err := uc.repo.Deactivate(ctx, dealerID, now); err != nil {
		return err
	}
	uc.publish(ctx, &domain.Subscription{DealerID: dealerID}, now)
	return nil
}

// CanCreateListing allows a dealer with a current subscription whose plan
// quota exceeds their listing count.
func (uc *SubscriptionUsecase) CanCreateListing(ctx context.Context, dealerID string) error {
	sub, err := uc.repo.FindByDealer(ctx, dealerID)
	if errors.Is(err, domain.ErrNotFound) {
		return listingdomain.ErrSubscriptionRequired
	}
	if err != nil {
		return err
	}
	now := uc.now()
	if !sub.IsCurrent(now) {
		return fmt.Errorf("%w: subscription expired or cancelled", listingdomain.ErrSubscriptionRequired)
	}
	spec, err := domain.Lookup(sub.Plan)
	if err != nil {
		return fmt.Errorf("%w: %v", listingdomain.ErrSubscriptionRequired, err)
	}

	count, err := uc.listings.Count(ctx, listingdomain.Filter{}.WithEquality(listingdomain.FieldAuthor, dealerID))
	if err != nil {
		return err
	}
	if count >= spec.ListingQuota {
		return fmt.Errorf("%w: %s plan allows %d listings", listingdomain.ErrSubscriptionRequired, spec.Plan, spec.ListingQuota)
	}
	return nil
}

func (uc *SubscriptionUsecase) publish(ctx context.Context, sub *domain.Subscription, now time.Time) {
	if uc.publisher == nil {
		return
	}
	event := SubscriptionEvent{DealerID: sub.DealerID, Plan: string(sub.Plan), Active: sub.IsActive, ExpiresAt: sub.ExpiresAt, OccurredAt: now}
	if err := uc.publisher.Publish(ctx, SubjectSubscriptionChanged, event); err != nil {
		uc.logger.Warn("Failed to publish subscription event", zap.Error(err))
	}
}
