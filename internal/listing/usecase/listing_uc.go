package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/metrics"
)

const imagePrefix = "property"

// Deps groups the collaborators of ListingUsecase. Repo and Storage are
// required; everything else may be nil.
type Deps struct {
	Repo      domain.ListingRepository
	Storage   domain.Storage
	Cache     domain.ListingCache
	Authors   domain.AuthorDirectory
	Publisher domain.EventPublisher
	Policy    domain.ListingPolicy
	Notifier  domain.Notifier
	Metrics   *metrics.MetricsManager
	// Folder is the storage folder all listing images are placed under.
	Folder string
	Clock  domain.Clock
}

// ListingUsecase coordinates listing records with their stored images.
type ListingUsecase struct {
	repo      domain.ListingRepository
	storage   domain.Storage
	cache     domain.ListingCache
	authors   domain.AuthorDirectory
	publisher domain.EventPublisher
	policy    domain.ListingPolicy
	notifier  domain.Notifier
	metrics   *metrics.MetricsManager
	folder    string
	now       domain.Clock
	logger    *logger.Logger
}

func NewListingUsecase(deps Deps, log *logger.Logger) *ListingUsecase {
	now := deps.Clock
	if now == nil {
		now = time.Now
	}
	return &ListingUsecase{
		repo:      deps.Repo,
		storage:   deps.Storage,
		cache:     deps.Cache,
		authors:   deps.Authors,
		publisher: deps.Publisher,
		policy:    deps.Policy,
		notifier:  deps.Notifier,
		metrics:   deps.Metrics,
		folder:    deps.Folder,
		now:       now,
		logger:    log.Named("ListingUsecase"),
	}
}

// Create uploads images and persists a new listing owned by authorID. Every
// check that can fail without remote calls runs before the first upload.
func (uc *ListingUsecase) Create(ctx context.Context, authorID string, in domain.CreateInput, images [][]byte) (*domain.Listing, error) {
	log := uc.logger.With(zap.String("author_id", authorID), zap.Int("images", len(images)))
	log.Info("Creating listing", zap.String("title", in.Title))

	switch {
	case len(images) < domain.MinImages:
		return nil, fmt.Errorf("%w: at least one image required", domain.ErrValidation)
	case len(images) > domain.MaxImages:
		return nil, fmt.Errorf("%w: too many images", domain.ErrValidation)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if uc.policy != nil {
		if err := uc.policy.CanCreateListing(ctx, authorID); err != nil {
			log.Warn("Listing creation rejected by policy", zap.Error(err))
			return nil, err
		}
	}

	assets, err := uc.storage.StoreMany(ctx, images, uc.folder, domain.UploadOptions{Kind: domain.ResourceImage, Prefix: imagePrefix})
	if err != nil {
		log.Error("Failed to upload listing images", zap.Error(err))
		return nil, err
	}

	now := uc.now().UTC()
	listing := &domain.Listing{
		AuthorID:    authorID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Subtype:     in.Subtype,
		Purpose:     in.Purpose,
		Price:       in.Price,
		Location:    in.Location,
		Images:      toImages(assets),
		IsActive:    true,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, listing); err != nil {
		log.Error("Failed to persist listing, rolling back uploads", zap.Error(err))
		uc.removeKeys(ctx, assetKeys(assets), "create_rollback")
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	uc.metrics.ListingCreated(len(listing.Images))
	uc.publish(ctx, SubjectListingCreated, ListingEvent{
		ListingID:  listing.ID,
		AuthorID:   listing.AuthorID,
		Title:      listing.Title,
		ImageCount: len(listing.Images),
		OccurredAt: now,
	})
	uc.notifyCreated(ctx, listing)

	log.Info("Listing created", zap.String("listing_id", listing.ID))
	return listing, nil
}

// Update applies patch, appends newImages and drops deleteURLs from a listing
// owned by authorID. URLs that do not belong to the listing are ignored.
func (uc *ListingUsecase) Update(ctx context.Context, id, authorID string, patch domain.ListingPatch, newImages [][]byte, deleteURLs []string) (*domain.Listing, error) {
	log := uc.logger.With(zap.String("listing_id", id), zap.String("author_id", authorID))
	log.Info("Updating listing", zap.Int("new_images", len(newImages)), zap.Int("delete_urls", len(deleteURLs)))

	listing, err := uc.loadOwned(ctx, id, authorID)
	if err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	survivors, removed := partitionImages(listing.Images, deleteURLs)
	if len(removed) != countUnique(deleteURLs) {
		log.Warn("Ignoring delete urls that do not belong to the listing",
			zap.Int("requested", countUnique(deleteURLs)), zap.Int("matched", len(removed)))
	}

	finalCount := len(listing.Images) + len(newImages) - len(removed)
	switch {
	case finalCount < domain.MinImages:
		return nil, fmt.Errorf("%w: at least one image must remain", domain.ErrValidation)
	case finalCount > domain.MaxImages:
		return nil, fmt.Errorf("%w: max images exceeded", domain.ErrValidation)
	}

	var uploaded []domain.StoredAsset
	if len(newImages) > 0 {
		uploaded, err = uc.storage.StoreMany(ctx, newImages, uc.folder, domain.UploadOptions{Kind: domain.ResourceImage, Prefix: imagePrefix})
		if err != nil {
			log.Error("Failed to upload new listing images", zap.Error(err))
			return nil, err
		}
	}

	expected := listing.Version
	if patch.Version != nil {
		expected = *patch.Version
	}

	patch.Apply(listing)
	listing.Images = append(survivors, toImages(uploaded)...)
	listing.UpdatedAt = uc.now().UTC()

	if err := uc.repo.Update(ctx, listing, expected); err != nil {
		log.Error("Failed to persist listing update", zap.Error(err))
		if len(uploaded) > 0 {
			uc.removeKeys(ctx, assetKeys(uploaded), "update_rollback")
		}
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	// Originals are removed only once the record no longer references them.
	report := uc.removeImages(ctx, removed, "update")

	uc.invalidate(ctx, listing.ID)
	uc.metrics.ListingUpdated(len(uploaded))
	uc.publish(ctx, SubjectListingUpdated, ListingEvent{
		ListingID:     listing.ID,
		AuthorID:      listing.AuthorID,
		Title:         listing.Title,
		ImageCount:    len(listing.Images),
		ImagesAdded:   len(uploaded),
		ImagesRemoved: len(removed),
		OrphanedKeys:  report.FailedKeys(),
		OccurredAt:    listing.UpdatedAt,
	})

	log.Info("Listing updated", zap.Int64("version", listing.Version), zap.Int("images", len(listing.Images)))
	return listing, nil
}

// Delete removes the listing and then, best effort, its stored images. The
// report lists per-image outcomes; image failures never surface as errors.
func (uc *ListingUsecase) Delete(ctx context.Context, id, authorID string) (domain.CleanupReport, error) {
	log := uc.logger.With(zap.String("listing_id", id), zap.String("author_id", authorID))
	log.Info("Deleting listing")

	listing, err := uc.loadOwned(ctx, id, authorID)
	if err != nil {
		return domain.CleanupReport{}, err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		log.Error("Failed to delete listing record", zap.Error(err))
		if errors.Is(err, domain.ErrNotFound) {
			return domain.CleanupReport{}, err
		}
		return domain.CleanupReport{}, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	report := uc.removeImages(ctx, listing.Images, "delete")

	uc.invalidate(ctx, id)
	uc.metrics.ListingDeleted()
	uc.publish(ctx, SubjectListingDeleted, ListingEvent{
		ListingID:     id,
		AuthorID:      listing.AuthorID,
		ImagesRemoved: len(listing.Images) - len(report.Failed()),
		OrphanedKeys:  report.FailedKeys(),
		OccurredAt:    uc.now().UTC(),
	})

	log.Info("Listing deleted", zap.Int("images", len(listing.Images)), zap.Int("cleanup_failures", len(report.Failed())))
	return report, nil
}

// GetByID returns the listing detail and counts one view. The returned and
// cached view counts include this view. A failed view increment or author
// lookup is logged and does not fail the read.
func (uc *ListingUsecase) GetByID(ctx context.Context, id string) (*domain.ListingDetail, error) {
	listing, hit, err := uc.cachedListing(ctx, id)
	if err != nil {
		return nil, err
	}

	viewed := false
	if err := uc.repo.IncrementViews(ctx, id); err != nil {
		uc.logger.Warn("Failed to increment listing views", zap.String("listing_id", id), zap.Error(err))
	} else {
		listing.Views++
		viewed = true
	}
	if !hit || viewed {
		uc.storeCached(ctx, listing)
	}

	detail := &domain.ListingDetail{Listing: listing}
	if uc.authors != nil && listing.AuthorID != "" {
		author, err := uc.authors.GetContact(ctx, listing.AuthorID)
		if err != nil {
			uc.logger.Warn("Failed to load author contact",
				zap.String("listing_id", id), zap.String("author_id", listing.AuthorID), zap.Error(err))
		} else {
			detail.Author = author
		}
	}
	return detail, nil
}

// GetAll returns the summary projection of matching listings and the total
// number of matches ignoring pagination.
func (uc *ListingUsecase) GetAll(ctx context.Context, filter domain.Filter) ([]domain.Summary, int64, error) {
	uc.logger.Debug("Listing search", zap.String("filter", fmt.Sprintf("%+v", filter)))

	listings, err := uc.repo.FindAll(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to search listings", zap.Error(err))
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to count listings", zap.Error(err))
		return nil, 0, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	summaries := make([]domain.Summary, 0, len(listings))
	for _, l := range listings {
		summaries = append(summaries, l.ToSummary())
	}
	return summaries, total, nil
}

// GetByAuthor returns every listing owned by authorID, newest first.
func (uc *ListingUsecase) GetByAuthor(ctx context.Context, authorID string) ([]*domain.Listing, error) {
	listings, err := uc.repo.FindByAuthor(ctx, authorID)
	if err != nil {
		uc.logger.Error("Failed to load author listings", zap.String("author_id", authorID), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	return listings, nil
}

// loadOwned checks existence before ownership so a non-owner learns the
// listing exists but cannot touch it.
func (uc *ListingUsecase) loadOwned(ctx context.Context, id, authorID string) (*domain.Listing, error) {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		uc.logger.Error("Failed to load listing", zap.String("listing_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if listing == nil {
		return nil, domain.ErrNotFound
	}
	if listing.AuthorID != authorID {
		uc.logger.Warn("Forbidden listing mutation",
			zap.String("listing_id", id), zap.String("owner_id", listing.AuthorID), zap.String("actor_id", authorID))
		return nil, domain.ErrForbidden
	}
	return listing, nil
}

// cachedListing loads a listing from the cache, falling back to the store.
// hit reports whether the cache served it.
func (uc *ListingUsecase) cachedListing(ctx context.Context, id string) (*domain.Listing, bool, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetListing(ctx, id)
		if err != nil {
			uc.logger.Warn("Listing cache read failed", zap.String("listing_id", id), zap.Error(err))
		} else if cached != nil {
			return cached, true, nil
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, err
		}
		uc.logger.Error("Failed to load listing", zap.String("listing_id", id), zap.Error(err))
		return nil, false, fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}
	if listing == nil {
		return nil, false, domain.ErrNotFound
	}
	return listing, false, nil
}

func (uc *ListingUsecase) storeCached(ctx context.Context, listing *domain.Listing) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.SetListing(ctx, listing); err != nil {
		uc.logger.Warn("Listing cache write failed", zap.String("listing_id", listing.ID), zap.Error(err))
	}
}

func (uc *ListingUsecase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteListing(ctx, id); err != nil {
		uc.logger.Warn("Listing cache invalidation failed", zap.String("listing_id", id), zap.Error(err))
	}
}

func (uc *ListingUsecase) publish(ctx context.Context, subject string, event ListingEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, subject, event); err != nil {
		uc.logger.Warn("Failed to publish listing event", zap.String("subject", subject), zap.String("listing_id", event.ListingID), zap.Error(err))
	}
}

func (uc *ListingUsecase) notifyCreated(ctx context.Context, listing *domain.Listing) {
	if uc.notifier == nil || uc.authors == nil {
		return
	}
	author, err := uc.authors.GetContact(ctx, listing.AuthorID)
	if err != nil || author == nil || author.Email == "" {
		return
	}
	if err := uc.notifier.SendListingCreatedEmail(author.Email, listing.Title); err != nil {
		uc.logger.Warn("Failed to send listing created email", zap.String("listing_id", listing.ID), zap.Error(err))
	}
}

// removeImages resolves each image to its storage key and removes them all.
// Images whose key cannot be derived are reported as failed items.
func (uc *ListingUsecase) removeImages(ctx context.Context, images []domain.Image, operation string) domain.CleanupReport {
	if len(images) == 0 {
		return domain.CleanupReport{}
	}
	var (
		keys       []string
		unresolved []domain.CleanupItem
	)
	for _, img := range images {
		key := img.Key
		if key == "" {
			var err error
			key, err = uc.storage.KeyFromURL(img.URL)
			if err != nil {
				uc.logger.Warn("Cannot derive asset key, image left in storage", zap.String("url", img.URL), zap.Error(err))
				unresolved = append(unresolved, domain.CleanupItem{Key: img.URL, Err: err})
				continue
			}
		}
		keys = append(keys, key)
	}

	report := uc.removeKeys(ctx, keys, operation)
	if len(unresolved) > 0 {
		report.Items = append(report.Items, unresolved...)
		uc.metrics.CleanupFailed(operation, len(unresolved))
	}
	return report
}

func (uc *ListingUsecase) removeKeys(ctx context.Context, keys []string, operation string) domain.CleanupReport {
	if len(keys) == 0 {
		return domain.CleanupReport{}
	}
	report := uc.storage.RemoveMany(ctx, keys, domain.ResourceImage)
	if failed := report.FailedKeys(); len(failed) > 0 {
		uc.metrics.CleanupFailed(operation, len(failed))
		uc.logger.Warn("Storage cleanup incomplete, objects may be orphaned",
			zap.String("operation", operation), zap.Strings("keys", failed))
	}
	return report
}

// partitionImages splits images into those kept and those named in
// deleteURLs, preserving the original order of both.
func partitionImages(images []domain.Image, deleteURLs []string) (kept, removed []domain.Image) {
	drop := make(map[string]struct{}, len(deleteURLs))
	for _, u := range deleteURLs {
		drop[u] = struct{}{}
	}
	kept = make([]domain.Image, 0, len(images))
	for _, img := range images {
		if _, ok := drop[img.URL]; ok {
			removed = append(removed, img)
			continue
		}
		kept = append(kept, img)
	}
	return kept, removed
}

func countUnique(values []string) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

func toImages(assets []domain.StoredAsset) []domain.Image {
	images := make([]domain.Image, 0, len(assets))
	for _, a := range assets {
		images = append(images, domain.Image{URL: a.URL, Key: a.Key})
	}
	return images
}

func assetKeys(assets []domain.StoredAsset) []string {
	keys := make([]string, 0, len(assets))
	for _, a := range assets {
		keys = append(keys, a.Key)
	}
	return keys
}
