package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
)

const testFolder = "himalayan-nest/properties"

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	repo      *MockListingRepository
	storage   *MockStorage
	cache     *MockListingCache
	authors   *MockAuthorDirectory
	publisher *MockPublisher
	policy    *MockPolicy
	notifier  *MockNotifier
}

// newUsecase wires only the core collaborators; optional ones are attached
// by the individual tests that need them.
func newUsecase(f *fixture) *ListingUsecase {
	deps := Deps{
		Repo:    f.repo,
		Storage: f.storage,
		Folder:  testFolder,
		Clock:   func() time.Time { return fixedNow },
	}
	if f.cache != nil {
		deps.Cache = f.cache
	}
	if f.authors != nil {
		deps.Authors = f.authors
	}
	if f.publisher != nil {
		deps.Publisher = f.publisher
	}
	if f.policy != nil {
		deps.Policy = f.policy
	}
	if f.notifier != nil {
		deps.Notifier = f.notifier
	}
	return NewListingUsecase(deps, logger.NewNop())
}

func newFixture() *fixture {
	return &fixture{repo: new(MockListingRepository), storage: new(MockStorage)}
}

func validInput() domain.CreateInput {
	return domain.CreateInput{
		Title:       "Cosy cottage in Manali",
		Description: "Two bedrooms with a view of the valley",
		Category:    domain.CategoryResidential,
		Subtype:     "Cottage",
		Purpose:     domain.PurposeSale,
		Price:       4500000,
		Location:    "Manali",
	}
}

func payloads(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = []byte{byte(i)}
	}
	return out
}

func asset(name string) domain.StoredAsset {
	return domain.StoredAsset{
		URL: "https://cdn.example.com/listings/upload/" + testFolder + "/" + name + ".jpg",
		Key: testFolder + "/" + name,
	}
}

func image(name string) domain.Image {
	a := asset(name)
	return domain.Image{URL: a.URL, Key: a.Key}
}

func existingListing(images ...domain.Image) *domain.Listing {
	return &domain.Listing{
		ID:          "listing-1",
		AuthorID:    "dealer-1",
		Title:       "Orchard land near Kullu",
		Description: "Apple orchard",
		Category:    domain.CategoryLand,
		Purpose:     domain.PurposeSale,
		Price:       9000000,
		Location:    "Kullu",
		Images:      images,
		IsActive:    true,
		Views:       12,
		Version:     3,
		CreatedAt:   fixedNow.Add(-48 * time.Hour),
		UpdatedAt:   fixedNow.Add(-24 * time.Hour),
	}
}

func urls(images []domain.Image) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		out = append(out, img.URL)
	}
	return out
}

func TestListingUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("zero images rejected before upload", func(t *testing.T) {
		f := newFixture()
		uc := newUsecase(f)

		_, err := uc.Create(ctx, "dealer-1", validInput(), nil)

		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "at least one image required")
		f.storage.AssertNotCalled(t, "StoreMany", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("eleven images rejected before upload", func(t *testing.T) {
		f := newFixture()
		uc := newUsecase(f)

		_, err := uc.Create(ctx, "dealer-1", validInput(), payloads(11))

		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "too many images")
		f.storage.AssertNotCalled(t, "StoreMany", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid fields rejected before upload", func(t *testing.T) {
		f := newFixture()
		uc := newUsecase(f)
		in := validInput()
		in.Price = -1

		_, err := uc.Create(ctx, "dealer-1", in, payloads(1))

		require.ErrorIs(t, err, domain.ErrValidation)
		f.storage.AssertNotCalled(t, "StoreMany", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("policy rejection stops before upload", func(t *testing.T) {
		f := newFixture()
		f.policy = new(MockPolicy)
		f.policy.On("CanCreateListing", mock.Anything, "dealer-1").Return(domain.ErrSubscriptionRequired)
		uc := newUsecase(f)

		_, err := uc.Create(ctx, "dealer-1", validInput(), payloads(2))

		require.ErrorIs(t, err, domain.ErrSubscriptionRequired)
		f.storage.AssertNotCalled(t, "StoreMany", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.policy.AssertExpectations(t)
	})

	t.Run("upload failure creates nothing", func(t *testing.T) {
		f := newFixture()
		f.storage.On("StoreMany", mock.Anything, payloads(2), testFolder, mock.Anything).
			Return(nil, domain.ErrUpload)
		uc := newUsecase(f)

		_, err := uc.Create(ctx, "dealer-1", validInput(), payloads(2))

		require.ErrorIs(t, err, domain.ErrUpload)
		f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.storage.AssertNotCalled(t, "RemoveMany", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture()
		f.publisher = new(MockPublisher)
		f.authors = new(MockAuthorDirectory)
		f.notifier = new(MockNotifier)
		assets := []domain.StoredAsset{asset("a"), asset("b")}
		f.storage.On("StoreMany", mock.Anything, payloads(2), testFolder,
			domain.UploadOptions{Kind: domain.ResourceImage, Prefix: imagePrefix}).Return(assets, nil).Once()
		f.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Listing")).
			Run(func(args mock.Arguments) { args.Get(1).(*domain.Listing).ID = "new-id" }).
			Return(nil).Once()
		f.publisher.On("Publish", mock.Anything, SubjectListingCreated, mock.AnythingOfType("usecase.ListingEvent")).Return(nil).Once()
		f.authors.On("GetContact", mock.Anything, "dealer-1").
			Return(&domain.AuthorContact{ID: "dealer-1", Email: "dealer@example.com"}, nil)
		f.notifier.On("SendListingCreatedEmail", "dealer@example.com", validInput().Title).Return(nil).Once()
		uc := newUsecase(f)

		listing, err := uc.Create(ctx, "dealer-1", validInput(), payloads(2))

		require.NoError(t, err)
		assert.Equal(t, "new-id", listing.ID)
		assert.Equal(t, "dealer-1", listing.AuthorID)
		assert.Equal(t, []domain.Image{image("a"), image("b")}, listing.Images)
		assert.True(t, listing.IsActive)
		assert.Zero(t, listing.Views)
		assert.Equal(t, int64(1), listing.Version)
		assert.Equal(t, fixedNow, listing.CreatedAt)
		f.repo.AssertExpectations(t)
		f.storage.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("persistence failure removes each upload once", func(t *testing.T) {
		f := newFixture()
		assets := []domain.StoredAsset{asset("a"), asset("b"), asset("c")}
		dbErr := errors.New("connection reset")
		f.storage.On("StoreMany", mock.Anything, payloads(3), testFolder, mock.Anything).Return(assets, nil)
		f.repo.On("Create", mock.Anything, mock.Anything).Return(dbErr)
		f.storage.On("RemoveMany", mock.Anything, []string{assets[0].Key, assets[1].Key, assets[2].Key}, domain.ResourceImage).
			Return(domain.CleanupReport{Items: []domain.CleanupItem{
				{Key: assets[0].Key}, {Key: assets[1].Key, Err: domain.ErrDelete}, {Key: assets[2].Key},
			}}).Once()
		uc := newUsecase(f)

		_, err := uc.Create(ctx, "dealer-1", validInput(), payloads(3))

		require.ErrorIs(t, err, domain.ErrPersistence)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, domain.ErrDelete)
		f.storage.AssertNumberOfCalls(t, "RemoveMany", 1)
		f.storage.AssertExpectations(t)
	})
}

func TestListingUsecase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", mock.Anything, "missing").Return(nil, domain.ErrNotFound)
		uc := newUsecase(f)

		_, err := uc.Update(ctx, "missing", "dealer-1", domain.ListingPatch{}, nil, nil)

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("non-owner gets forbidden not not-found", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", mock.Anything, "listing-1").Return(existingListing(image("a")), nil)
		uc := newUsecase(f)

		_, err := uc.Update(ctx, "listing-1", "intruder", domain.ListingPatch{}, payloads(1), nil)

		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.NotErrorIs(t, err, domain.ErrNotFound)
		f.storage.AssertNotCalled(t, "StoreMany", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("removing last image rejected without remote calls", func(t *testing.T) {
		f := newFixture()
		l := existingListing(image("a"))
		f.repo.On("FindByID", mock.Anything, "listing-1").Return(l, nil)
		uc := newUsecase(f)

		_, err := uc.Update(ctx, "listing-1", "dealer-1", domain.ListingPatch{}, nil, []string{image("a").URL})

		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "at least one image must remain")
		f.storage.AssertNotCalled(t, "StoreMany", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.storage.AssertNotCalled(t, "RemoveMany", mock.Anything, mock.Anything, mock.Anything)
		f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("exceeding maximum rejected without remote calls", func(t *testing.T) {
		f := newFixture()
		images := make([]domain.Image, 0, 9)
		for _, n := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} {
			images = append(images, image(n))
		}
		f.repo.On("FindByID", mock.Anything, "listing-1").Return(existingListing(images...), nil)
		uc := newUsecase(f)

		_, err := uc.Update(ctx, "listing-1", "dealer-1", domain.ListingPatch{}, payloads(2), nil)

		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), "max images exceeded")
		f.storage.AssertNotCalled(t, "StoreMany", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("delete b and add d yields a c d", func(t *testing.T) {
		f := newFixture()
		f.cache = new(MockListingCache)
		l := existingListing(image("a"), image("b"), image("c"))
		f.repo.On("FindByID", mock.Anything, "listing-1").Return(l, nil)
		f.storage.On("StoreMany", mock.Anything, payloads(1), testFolder, mock.Anything).
			Return([]domain.StoredAsset{asset("d")}, nil).Once()
		f.repo.On("Update", mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
			return assert.ObjectsAreEqual([]string{image("a").URL, image("c").URL, image("d").URL}, urls(l.Images))
		}), int64(3)).Return(nil).Once()
		f.storage.On("RemoveMany", mock.Anything, []string{image("b").Key}, domain.ResourceImage).
			Return(domain.CleanupReport{Items: []domain.CleanupItem{{Key: image("b").Key}}}).Once()
		f.cache.On("DeleteListing", mock.Anything, "listing-1").Return(nil).Once()
		uc := newUsecase(f)

		updated, err := uc.Update(ctx, "listing-1", "dealer-1", domain.ListingPatch{}, payloads(1), []string{image("b").URL})

		require.NoError(t, err)
		assert.Equal(t, []domain.Image{image("a"), image("c"), image("d")}, updated.Images)
		assert.Equal(t, "Orchard land near Kullu", updated.Title)
		assert.Equal(t, fixedNow, updated.UpdatedAt)
		f.repo.AssertExpectations(t)
		f.storage.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})

	t.Run("partial patch keeps unspecified fields", func(t *testing.T) {
		f := newFixture()
		l := existingListing(image("a"))
		f.repo.On("FindByID", mock.Anything, "listing-1").Return(l, nil)
		f.repo.On("Update", mock.Anything, mock.Anything, int64(3)).Return(nil)
		uc := newUsecase(f)
		price := 8500000.0
		empty := ""

		updated, err := uc.Update(ctx, "listing-1", "dealer-1", domain.ListingPatch{Price: &price, Description: &empty}, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, price, updated.Price)
		assert.Empty(t, updated.Description)
		assert.Equal(t, "Orchard land near Kullu", updated.Title)
		assert.Equal(t, domain.CategoryLand, updated.Category)
		assert.Equal(t, "dealer-1", updated.AuthorID)
		f.storage.AssertNotCalled(t, "StoreMany", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.storage.AssertNotCalled(t, "RemoveMany", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("foreign urls are ignored", func(t *testing.T) {
		f := newFixture()
		l := existingListing(image("a"))
		f.repo.On("FindByID", mock.Anything, "listing-1").Return(l, nil)
		f.repo.On("Update", mock.Anything, mock.Anything, int64(3)).Return(nil)
		uc := newUsecase(f)

		updated, err := uc.Update(ctx, "listing-1", "dealer-1", domain.ListingPatch{}, nil,
			[]string{"https://cdn.example.com/listings/upload/other/listing/x.jpg"})

		require.NoError(t, err)
		assert.Equal(t, []domain.Image{image("a")}, updated.Images)
		f.storage.AssertNotCalled(t, "RemoveMany", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("persistence failure removes only new uploads", func(t *testing.T) {
		f := newFixture()
		l := existingListing(image("a"), image("b"))
		f.repo.On("FindByID", mock.Anything, "listing-1").Return(l, nil)
		f.storage.On("StoreMany", mock.Anything, payloads(2), testFolder, mock.Anything).
			Return([]domain.StoredAsset{asset("x"), asset("y")}, nil)
		f.repo.On("Update", mock.Anything, mock.Anything, int64(3)).Return(errors.New("write failed"))
		f.storage.On("RemoveMany", mock.Anything, []string{asset("x").Key, asset("y").Key}, domain.ResourceImage).
			Return(domain.CleanupReport{}).Once()
		uc := newUsecase(f)

		_, err := uc.Update(ctx, "listing-1", "dealer-1", domain.ListingPatch{}, payloads(2), []string{image("a").URL})

		require.ErrorIs(t, err, domain.ErrPersistence)
		f.storage.AssertNumberOfCalls(t, "RemoveMany", 1)
		f.storage.AssertNotCalled(t, "RemoveMany", mock.Anything, []string{image("a").Key}, mock.Anything)
	})

	t.Run("stale version is a conflict", func(t *testing.T) {
		f := newFixture()
		l := existingListing(image("a"))
		f.repo.On("FindByID", mock.Anything, "listing-1").Return(l, nil)
		f.repo.On("Update", mock.Anything, mock.Anything, int64(2)).Return(domain.ErrConflict)
		uc := newUsecase(f)
		stale := int64(2)

		_, err := uc.Update(ctx, "listing-1", "dealer-1", domain.ListingPatch{Version: &stale}, nil, nil)

		require.ErrorIs(t, err, domain.ErrConflict)
		assert.NotErrorIs(t, err, domain.ErrPersistence)
	})
}

func TestListingUsecase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", mock.Anything, "missing").Return(nil, domain.ErrNotFound)
		uc := newUsecase(f)

		_, err := uc.Delete(ctx, "missing", "dealer-1")

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("non-owner forbidden", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", mock.Anything, "listing-1").Return(existingListing(image("a")), nil)
		uc := newUsecase(f)

		_, err := uc.Delete(ctx, "listing-1", "intruder")

		require.ErrorIs(t, err, domain.ErrForbidden)
		f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		f.storage.AssertNotCalled(t, "RemoveMany", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage failures do not block deletion", func(t *testing.T) {
		f := newFixture()
		legacy := domain.Image{URL: "https://cdn.example.com/listings/upload/v1712/" + testFolder + "/legacy.png"}
		l := existingListing(image("a"), legacy)
		f.repo.On("FindByID", mock.Anything, "listing-1").Return(l, nil)
		f.repo.On("Delete", mock.Anything, "listing-1").Return(nil).Once()
		f.storage.On("KeyFromURL", legacy.URL).Return(testFolder+"/legacy", nil)
		f.storage.On("RemoveMany", mock.Anything, []string{image("a").Key, testFolder + "/legacy"}, domain.ResourceImage).
			Return(domain.CleanupReport{Items: []domain.CleanupItem{
				{Key: image("a").Key, Err: domain.ErrDelete},
				{Key: testFolder + "/legacy"},
			}}).Once()
		uc := newUsecase(f)

		report, err := uc.Delete(ctx, "listing-1", "dealer-1")

		require.NoError(t, err)
		assert.Equal(t, []string{image("a").Key}, report.FailedKeys())
		f.repo.AssertExpectations(t)
		f.storage.AssertExpectations(t)
	})

	t.Run("unparseable legacy url is reported", func(t *testing.T) {
		f := newFixture()
		legacy := domain.Image{URL: "https://elsewhere.example.com/photo.jpg"}
		f.repo.On("FindByID", mock.Anything, "listing-1").Return(existingListing(legacy), nil)
		f.repo.On("Delete", mock.Anything, "listing-1").Return(nil)
		f.storage.On("KeyFromURL", legacy.URL).Return("", domain.ErrKeyExtraction)
		uc := newUsecase(f)

		report, err := uc.Delete(ctx, "listing-1", "dealer-1")

		require.NoError(t, err)
		require.Len(t, report.Failed(), 1)
		assert.ErrorIs(t, report.Failed()[0].Err, domain.ErrKeyExtraction)
		f.storage.AssertNotCalled(t, "RemoveMany", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListingUsecase_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("increments views once and joins author", func(t *testing.T) {
		f := newFixture()
		f.authors = new(MockAuthorDirectory)
		l := existingListing(image("a"))
		f.repo.On("FindByID", mock.Anything, "listing-1").Return(l, nil)
		f.repo.On("IncrementViews", mock.Anything, "listing-1").Return(nil).Once()
		contact := &domain.AuthorContact{ID: "dealer-1", Name: "Tenzin", Email: "t@example.com", Phone: "98160"}
		f.authors.On("GetContact", mock.Anything, "dealer-1").Return(contact, nil)
		uc := newUsecase(f)

		detail, err := uc.GetByID(ctx, "listing-1")

		require.NoError(t, err)
		assert.Equal(t, contact, detail.Author)
		assert.Equal(t, int64(13), detail.Views)
		f.repo.AssertNumberOfCalls(t, "IncrementViews", 1)
	})

	t.Run("view counter failure is not surfaced", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", mock.Anything, "listing-1").Return(existingListing(image("a")), nil)
		f.repo.On("IncrementViews", mock.Anything, "listing-1").Return(errors.New("timeout"))
		uc := newUsecase(f)

		detail, err := uc.GetByID(ctx, "listing-1")

		require.NoError(t, err)
		assert.Nil(t, detail.Author)
	})

	t.Run("cache hit still counts the view", func(t *testing.T) {
		f := newFixture()
		f.cache = new(MockListingCache)
		f.cache.On("GetListing", mock.Anything, "listing-1").Return(existingListing(image("a")), nil)
		f.cache.On("SetListing", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("IncrementViews", mock.Anything, "listing-1").Return(nil).Once()
		uc := newUsecase(f)

		_, err := uc.GetByID(ctx, "listing-1")

		require.NoError(t, err)
		f.repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
		f.repo.AssertExpectations(t)
	})

	t.Run("repeated cache hits show a growing view count", func(t *testing.T) {
		f := newFixture()
		f.cache = new(MockListingCache)
		var stored *domain.Listing
		f.cache.On("GetListing", mock.Anything, "listing-1").
			Return(func(context.Context, string) *domain.Listing {
				if stored == nil {
					return existingListing(image("a"))
				}
				cp := *stored
				return &cp
			}, nil)
		f.cache.On("SetListing", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { stored = args.Get(1).(*domain.Listing) }).
			Return(nil)
		f.repo.On("IncrementViews", mock.Anything, "listing-1").Return(nil)
		uc := newUsecase(f)

		first, err := uc.GetByID(ctx, "listing-1")
		require.NoError(t, err)
		second, err := uc.GetByID(ctx, "listing-1")
		require.NoError(t, err)

		assert.Equal(t, int64(13), first.Views)
		assert.Equal(t, int64(14), second.Views)
		f.repo.AssertNumberOfCalls(t, "IncrementViews", 2)
	})

	t.Run("cache miss is cached once with the counted view", func(t *testing.T) {
		f := newFixture()
		f.cache = new(MockListingCache)
		f.cache.On("GetListing", mock.Anything, "listing-1").Return(nil, nil)
		f.cache.On("SetListing", mock.Anything, mock.MatchedBy(func(l *domain.Listing) bool {
			return l.Views == 13
		})).Return(nil).Once()
		f.repo.On("FindByID", mock.Anything, "listing-1").Return(existingListing(image("a")), nil)
		f.repo.On("IncrementViews", mock.Anything, "listing-1").Return(nil)
		uc := newUsecase(f)

		_, err := uc.GetByID(ctx, "listing-1")

		require.NoError(t, err)
		f.cache.AssertNumberOfCalls(t, "SetListing", 1)
	})

	t.Run("failed increment leaves a cache hit untouched", func(t *testing.T) {
		f := newFixture()
		f.cache = new(MockListingCache)
		f.cache.On("GetListing", mock.Anything, "listing-1").Return(existingListing(image("a")), nil)
		f.repo.On("IncrementViews", mock.Anything, "listing-1").Return(errors.New("timeout"))
		uc := newUsecase(f)

		detail, err := uc.GetByID(ctx, "listing-1")

		require.NoError(t, err)
		assert.Equal(t, int64(12), detail.Views)
		f.cache.AssertNotCalled(t, "SetListing", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture()
		f.repo.On("FindByID", mock.Anything, "missing").Return(nil, domain.ErrNotFound)
		uc := newUsecase(f)

		_, err := uc.GetByID(ctx, "missing")

		require.ErrorIs(t, err, domain.ErrNotFound)
		f.repo.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
	})
}

func TestListingUsecase_GetAll(t *testing.T) {
	f := newFixture()
	filter := domain.Filter{Sort: domain.SortNewest}
	f.repo.On("FindAll", mock.Anything, filter).
		Return([]*domain.Listing{existingListing(image("a"), image("b"))}, nil)
	f.repo.On("Count", mock.Anything, filter).Return(int64(1), nil)
	uc := newUsecase(f)

	items, total, err := uc.GetAll(context.Background(), filter)

	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, image("a").URL, items[0].Image)
	assert.Equal(t, "listing-1", items[0].ID)
}
