package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	listingdomain "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/subscription/domain"
)

type MockSubscriptionRepository struct{ mock.Mock }

func (m *MockSubscriptionRepository) FindByDealer(ctx context.Context, dealerID string) (*domain.Subscription, error) {
	args := m.Called(ctx, dealerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subscription), args.Error(1)
}
func (m *MockSubscriptionRepository) Upsert(ctx context.Context, s *domain.Subscription) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSubscriptionRepository) Deactivate(ctx context.Context, dealerID string, at time.Time) error {
	args := m.Called(ctx, dealerID, at)
	return args.Error(0)
}

type MockCounter struct{ mock.Mock }

func (m *MockCounter) Count(ctx context.Context, f listingdomain.Filter) (int64, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(int64), args.Error(1)
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newSubscriptionUsecase(repo *MockSubscriptionRepository, counter *MockCounter) *SubscriptionUsecase {
	uc := NewSubscriptionUsecase(repo, counter, nil, logger.NewNop())
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid plan", func(t *testing.T) {
		uc := newSubscriptionUsecase(new(MockSubscriptionRepository), new(MockCounter))
		_, err := uc.Subscribe(ctx, "dealer-1", "gold")
		assert.ErrorIs(t, err, domain.ErrInvalidPlan)
	})

	t.Run("new subscription starts now", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		repo.On("FindByDealer", mock.Anything, "dealer-1").Return(nil, domain.ErrNotFound)
		repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		uc := newSubscriptionUsecase(repo, new(MockCounter))

		sub, err := uc.Subscribe(ctx, "dealer-1", domain.PlanBasic)

		require.NoError(t, err)
		assert.Equal(t, fixedNow.Add(30*24*time.Hour), sub.ExpiresAt)
		assert.True(t, sub.IsActive)
	})

	t.Run("renewal extends current expiry", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		expiry := fixedNow.Add(10 * 24 * time.Hour)
		repo.On("FindByDealer", mock.Anything, "dealer-1").
			Return(&domain.Subscription{DealerID: "dealer-1", Plan: domain.PlanBasic, ExpiresAt: expiry, IsActive: true}, nil)
		repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		uc := newSubscriptionUsecase(repo, new(MockCounter))

		sub, err := uc.Subscribe(ctx, "dealer-1", domain.PlanStandard)

		require.NoError(t, err)
		assert.Equal(t, expiry.Add(90*24*time.Hour), sub.ExpiresAt)
		assert.Equal(t, domain.PlanStandard, sub.Plan)
	})

	t.Run("expired subscription restarts from now", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		repo.On("FindByDealer", mock.Anything, "dealer-1").
			Return(&domain.Subscription{Plan: domain.PlanBasic, ExpiresAt: fixedNow.Add(-time.Hour), IsActive: true}, nil)
		repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
		uc := newSubscriptionUsecase(repo, new(MockCounter))

		sub, err := uc.Subscribe(ctx, "dealer-1", domain.PlanBasic)

		require.NoError(t, err)
		assert.Equal(t, fixedNow.Add(30*24*time.Hour), sub.ExpiresAt)
	})
}

func TestCanCreateListing(t *testing.T) {
	ctx := context.Background()
	authorFilter := listingdomain.Filter{}.WithEquality(listingdomain.FieldAuthor, "dealer-1")

	t.Run("no subscription", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		repo.On("FindByDealer", mock.Anything, "dealer-1").Return(nil, domain.ErrNotFound)
		uc := newSubscriptionUsecase(repo, new(MockCounter))

		assert.ErrorIs(t, uc.CanCreateListing(ctx, "dealer-1"), listingdomain.ErrSubscriptionRequired)
	})

	t.Run("cancelled subscription", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		repo.On("FindByDealer", mock.Anything, "dealer-1").
			Return(&domain.Subscription{Plan: domain.PlanPremium, ExpiresAt: fixedNow.Add(time.Hour), IsActive: false}, nil)
		counter := new(MockCounter)
		uc := newSubscriptionUsecase(repo, counter)

		assert.ErrorIs(t, uc.CanCreateListing(ctx, "dealer-1"), listingdomain.ErrSubscriptionRequired)
		counter.AssertNotCalled(t, "Count", mock.Anything, mock.Anything)
	})

	t.Run("quota reached", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		repo.On("FindByDealer", mock.Anything, "dealer-1").
			Return(&domain.Subscription{Plan: domain.PlanBasic, ExpiresAt: fixedNow.Add(time.Hour), IsActive: true}, nil)
		counter := new(MockCounter)
		counter.On("Count", mock.Anything, authorFilter).Return(int64(5), nil)
		uc := newSubscriptionUsecase(repo, counter)

		assert.ErrorIs(t, uc.CanCreateListing(ctx, "dealer-1"), listingdomain.ErrSubscriptionRequired)
	})

	t.Run("under quota", func(t *testing.T) {
		repo := new(MockSubscriptionRepository)
		repo.On("FindByDealer", mock.Anything, "dealer-1").
			Return(&domain.Subscription{Plan: domain.PlanBasic, ExpiresAt: fixedNow.Add(time.Hour), IsActive: true}, nil)
		counter := new(MockCounter)
		counter.On("Count", mock.Anything, authorFilter).Return(int64(4), nil)
		uc := newSubscriptionUsecase(repo, counter)

		assert.NoError(t, uc.CanCreateListing(ctx, "dealer-1"))
		counter.AssertExpectations(t)
	})
}

func TestCancel(t *testing.T) {
	repo := new(MockSubscriptionRepository)
	repo.On("Deactivate", mock.Anything, "dealer-1", fixedNow).Return(nil).Once()
	uc := newSubscriptionUsecase(repo, new(MockCounter))

	require.NoError(t, uc.Cancel(context.Background(), "dealer-1"))
	repo.AssertExpectations(t)
}

func TestPlans(t *testing.T) {
	uc := newSubscriptionUsecase(new(MockSubscriptionRepository), new(MockCounter))
	plans := uc.Plans()
	require.Len(t, plans, 3)
	assert.Equal(t, domain.PlanBasic, plans[0].Plan)
}
