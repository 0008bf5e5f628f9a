package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
)

// ListingRepository implements domain.ListingRepository on Postgres via gorm.
type ListingRepository struct {
	db     *gorm.DB
	logger *logger.Logger
}

func NewListingRepository(db *gorm.DB, log *logger.Logger) *ListingRepository {
	return &ListingRepository{db: db, logger: log.Named("PostgresListingRepository")}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	row := fromDomainListing(l)
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		r.logger.Error("Failed to insert listing", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	l.ID = row.ID
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	var row listingRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("db select failed: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ListingRepository) FindAll(ctx context.Context, f domain.Filter) ([]*domain.Listing, error) {
	q := r.db.WithContext(ctx).Scopes(filterScope(f)).Order(orderBy(f.Sort))
	if f.Limit > 0 {
		q = q.Limit(int(f.Limit)).Offset(int(f.Skip()))
	}
	return r.find(q)
}

func (r *ListingRepository) FindByAuthor(ctx context.Context, authorID string) ([]*domain.Listing, error) {
	return r.find(r.db.WithContext(ctx).Where("author_id = ?", authorID).Order(orderBy(domain.SortNewest)))
}

func (r *ListingRepository) find(q *gorm.DB) ([]*domain.Listing, error) {
	var rows []*listingRow
	if err := q.Find(&rows).Error; err != nil {
		r.logger.Error("Failed to find listings", zap.Error(err))
		return nil, fmt.Errorf("db select failed: %w", err)
	}
	out := make([]*domain.Listing, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing, expectedVersion int64) error {
	if !validID(l.ID) {
		return domain.ErrNotFound
	}
	row := fromDomainListing(l)
	images, err := json.Marshal(row.Images)
	if err != nil {
		return fmt.Errorf("encode images: %w", err)
	}
	res := r.db.WithContext(ctx).Model(&listingRow{}).
		Where("id = ? AND version = ?", l.ID, expectedVersion).
		Updates(map[string]any{
			"title":       row.Title,
			"description": row.Description,
			"category":    row.Category,
			"subtype":     row.Subtype,
			"purpose":     row.Purpose,
			"price":       row.Price,
			"location":    row.Location,
			"images":      gorm.Expr("?::jsonb", string(images)),
			"is_active":   row.IsActive,
			"updated_at":  row.UpdatedAt,
			"version":     gorm.Expr("version + 1"),
		})
	if res.Error != nil {
		r.logger.Error("Failed to update listing", zap.String("listing_id", l.ID), zap.Error(res.Error))
		return fmt.Errorf("db update failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := r.db.WithContext(ctx).Model(&listingRow{}).Where("id = ?", l.ID).Count(&n).Error; err != nil {
			return fmt.Errorf("db count failed: %w", err)
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrConflict
	}
	l.Version = expectedVersion + 1
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&listingRow{})
	if res.Error != nil {
		return fmt.Errorf("db delete failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) Count(ctx context.Context, f domain.Filter) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&listingRow{}).Scopes(filterScope(f)).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("db count failed: %w", err)
	}
	return n, nil
}

func (r *ListingRepository) IncrementViews(ctx context.Context, id string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	res := r.db.WithContext(ctx).Model(&listingRow{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("db update failed: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
