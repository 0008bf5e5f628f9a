package rest

import (
	"context"

	"github.com/stretchr/testify/mock"

	enquirydomain "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/enquiry/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	subdomain "github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/subscription/domain"
)

type MockListingService struct{ mock.Mock }

func (m *MockListingService) Create(ctx context.Context, authorID string, in domain.CreateInput, images [][]byte) (*domain.Listing, error) {
	args := m.Called(ctx, authorID, in, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) Update(ctx context.Context, id, authorID string, patch domain.ListingPatch, newImages [][]byte, deleteURLs []string) (*domain.Listing, error) {
	args := m.Called(ctx, id, authorID, patch, newImages, deleteURLs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingService) Delete(ctx context.Context, id, authorID string) (domain.CleanupReport, error) {
	args := m.Called(ctx, id, authorID)
	return args.Get(0).(domain.CleanupReport), args.Error(1)
}

func (m *MockListingService) GetByID(ctx context.Context, id string) (*domain.ListingDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ListingDetail), args.Error(1)
}

func (m *MockListingService) GetAll(ctx context.Context, filter domain.Filter) ([]domain.Summary, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Summary), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingService) GetByAuthor(ctx context.Context, authorID string) ([]*domain.Listing, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).([]*domain.Listing), args.Error(1)
}

type MockEnquiryService struct{ mock.Mock }

func (m *MockEnquiryService) Create(ctx context.Context, userID, propertyID, message string) (*enquirydomain.Enquiry, error) {
	args := m.Called(ctx, userID, propertyID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enquirydomain.Enquiry), args.Error(1)
}

func (m *MockEnquiryService) Get(ctx context.Context, id string, actor enquirydomain.Actor) (*enquirydomain.Enquiry, error) {
	args := m.Called(ctx, id, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enquirydomain.Enquiry), args.Error(1)
}

func (m *MockEnquiryService) ListAll(ctx context.Context, actor enquirydomain.Actor) ([]*enquirydomain.Enquiry, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]*enquirydomain.Enquiry), args.Error(1)
}

func (m *MockEnquiryService) ListReceived(ctx context.Context, dealerID string) ([]*enquirydomain.Enquiry, error) {
	args := m.Called(ctx, dealerID)
	return args.Get(0).([]*enquirydomain.Enquiry), args.Error(1)
}

func (m *MockEnquiryService) ListSent(ctx context.Context, userID string) ([]*enquirydomain.Enquiry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]*enquirydomain.Enquiry), args.Error(1)
}

func (m *MockEnquiryService) UpdateStatus(ctx context.Context, id string, actor enquirydomain.Actor, status enquirydomain.Status) (*enquirydomain.Enquiry, error) {
	args := m.Called(ctx, id, actor, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*enquirydomain.Enquiry), args.Error(1)
}

func (m *MockEnquiryService) Delete(ctx context.Context, id string, actor enquirydomain.Actor) error {
	args := m.Called(ctx, id, actor)
	return args.Error(0)
}

type MockSubscriptionService struct{ mock.Mock }

func (m *MockSubscriptionService) Plans() []subdomain.PlanSpec {
	return subdomain.Catalog
}

func (m *MockSubscriptionService) Get(ctx context.Context, dealerID string) (*subdomain.Subscription, error) {
	args := m.Called(ctx, dealerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subdomain.Subscription), args.Error(1)
}

func (m *MockSubscriptionService) Subscribe(ctx context.Context, dealerID string, plan subdomain.Plan) (*subdomain.Subscription, error) {
	args := m.Called(ctx, dealerID, plan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subdomain.Subscription), args.Error(1)
}

func (m *MockSubscriptionService) Cancel(ctx context.Context, dealerID string) error {
	args := m.Called(ctx, dealerID)
	return args.Error(0)
}
