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

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/enquiry/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
)

const enquiryCollectionName = "enquiries"

type EnquiryRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewEnquiryRepository(db *mongo.Database, log *logger.Logger) *EnquiryRepository {
	log = log.Named("EnquiryRepository")
	collection := db.Collection(enquiryCollectionName)

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "property_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Error("Failed to create indexes for enquiries collection", zap.Error(err))
	}
	return &EnquiryRepository{collection: collection, logger: log}
}

func (r *EnquiryRepository) Create(ctx context.Context, e *domain.Enquiry) error {
	doc := enquiryDocument{
		ID:         primitive.NewObjectID(),
		PropertyID: e.PropertyID,
		UserID:     e.UserID,
		Message:    e.Message,
		Status:     string(e.Status),
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("Failed to insert enquiry", zap.Error(err))
		return fmt.Errorf("db insert failed: %w", err)
	}
	e.ID = doc.ID.Hex()
	return nil
}

func (r *EnquiryRepository) FindByID(ctx context.Context, id string) (*domain.Enquiry, error) {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	var doc enquiryDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EnquiryRepository) FindAll(ctx context.Context) ([]*domain.Enquiry, error) {
	return r.find(ctx, bson.M{})
}

func (r *EnquiryRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Enquiry, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *EnquiryRepository) FindByProperties(ctx context.Context, propertyIDs []string) ([]*domain.Enquiry, error) {
	if len(propertyIDs) == 0 {
		return []*domain.Enquiry{}, nil
	}
	return r.find(ctx, bson.M{"property_id": bson.M{"$in": propertyIDs}})
}

func (r *EnquiryRepository) find(ctx context.Context, query bson.M) ([]*domain.Enquiry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		r.logger.Error("Failed to find enquiries", zap.Error(err))
		return nil, fmt.Errorf("db find failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []*enquiryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db cursor all failed: %w", err)
	}
	return toDomainEnquiries(docs), nil
}

func (r *EnquiryRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": updatedAt}})
	if err != nil {
		return fmt.Errorf("db update failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *EnquiryRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("db delete failed: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
