package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
)

const listingCollectionName = "properties"

// ListingRepository implements domain.ListingRepository on MongoDB.
type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewListingRepository(db *mongo.Database, log *logger.Logger) *ListingRepository {
	log = log.Named("ListingRepository")
	collection := db.Collection(listingCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "purpose", Value: 1}, {Key: "location", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		// Startup continues; indexes may exist already or be managed elsewhere.
		log.Error("Failed to create indexes for properties collection", zap.Error(err))
	}

	return &ListingRepository{collection: collection, logger: log}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	doc, err := fromDomainListing(l)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert listing", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	l.ID = doc.ID.Hex()
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc listingDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to find listing", zap.String("listing_id", id), zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ListingRepository) FindAll(ctx context.Context, f domain.Filter) ([]*domain.Listing, error) {
	opts := options.Find().SetSort(listingSort(f.Sort))
	if f.Limit > 0 {
		opts.SetLimit(f.Limit).SetSkip(f.Skip())
	}
	return r.find(ctx, listingQuery(f), opts)
}

func (r *ListingRepository) FindByAuthor(ctx context.Context, authorID string) ([]*domain.Listing, error) {
	return r.find(ctx, bson.M{"author_id": authorID}, options.Find().SetSort(listingSort(domain.SortNewest)))
}

func (r *ListingRepository) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*domain.Listing, error) {
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error("Failed to find listings", zap.Any("query", query), zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	return toDomainListings(docs), nil
}

// Update writes every mutable field if the stored version still equals
// expectedVersion, then bumps the version.
func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing, expectedVersion int64) error {
	doc, err := fromDomainListing(l)
	if err != nil {
		return domain.ErrNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"title":       doc.Title,
			"description": doc.Description,
			"category":    doc.Category,
			"subtype":     doc.Subtype,
			"purpose":     doc.Purpose,
			"price":       doc.Price,
			"location":    doc.Location,
			"images":      doc.Images,
			"is_active":   doc.IsActive,
			"updated_at":  doc.UpdatedAt,
		},
		"$inc": bson.M{"version": 1},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID, "version": expectedVersion}, update)
	if err != nil {
		r.logger.Error("Failed to update listing", zap.String("listing_id", l.ID), zap.Error(err))
		return fmt.Errorf("db update failed: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.collection.CountDocuments(ctx, bson.M{"_id": doc.ID})
		if err != nil {
			return fmt.Errorf("db count failed: %w", err)
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		r.logger.Warn("Listing version mismatch", zap.String("listing_id", l.ID), zap.Int64("expected_version", expectedVersion))
		return domain.ErrConflict
	}
	l.Version = expectedVersion + 1
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		r.logger.Error("Failed to delete listing", zap.String("listing_id", id), zap.Error(err))
		return fmt.Errorf("db delete failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ListingRepository) Count(ctx context.Context, f domain.Filter) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, listingQuery(f))
	if err != nil {
		return 0, fmt.Errorf("db count failed: %w", err)
	}
	return n, nil
}

func (r *ListingRepository) IncrementViews(ctx context.Context, id string) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("db update failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
