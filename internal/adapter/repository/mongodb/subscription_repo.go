package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/subscription/domain"
)

const subscriptionCollectionName = "subscriptions"

type SubscriptionRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewSubscriptionRepository(db *mongo.Database, log *logger.Logger) *SubscriptionRepository {
	log = log.Named("SubscriptionRepository")
	collection := db.Collection(subscriptionCollectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "dealer_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Error("Failed to create indexes for subscriptions collection", zap.Error(err))
	}
	return &SubscriptionRepository{collection: collection, logger: log}
}

func (r *SubscriptionRepository) FindByDealer(ctx context.Context, dealerID string) (*domain.Subscription, error) {
	var doc subscriptionDocument
	if err := r.collection.FindOne(ctx, bson.M{"dealer_id": dealerID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("Failed to find subscription", zap.String("dealer_id", dealerID), zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toDomain(), nil
}

// Upsert writes s by dealer and fills in its ID and CreatedAt.
func (r *SubscriptionRepository) Upsert(ctx context.Context, s *domain.Subscription) error {
	update := bson.M{
		"$set": bson.M{
			"plan":       string(s.Plan),
			"expires_at": s.ExpiresAt,
			"is_active":  s.IsActive,
			"updated_at": s.UpdatedAt,
		},
		"$setOnInsert": bson.M{"created_at": s.CreatedAt},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var doc subscriptionDocument
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{"dealer_id": s.DealerID}, update, opts).Decode(&doc); err != nil {
		r.logger.Error("Failed to upsert subscription", zap.String("dealer_id", s.DealerID), zap.Error(err))
		return fmt.Errorf("db upsert failed: %w", err)
	}
	s.ID = doc.ID.Hex()
	s.CreatedAt = doc.CreatedAt
	return nil
}

func (r *SubscriptionRepository) Deactivate(ctx context.Context, dealerID string, at time.Time) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"dealer_id": dealerID},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": at}})
	if err != nil {
		return fmt.Errorf("db update failed: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
