package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/listing/domain"
	"github.com/anmolkhurana490/Himalayan-Nest-Real-Estate-sub000/internal/platform/logger"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository reads author contact cards from the users collection owned
// by the auth service.
type UserRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewUserRepository(db *mongo.Database, log *logger.Logger) *UserRepository {
	return &UserRepository{
		collection: db.Collection("users"),
		logger:     log.Named("UserRepository"),
	}
}

// GetContact implements domain.AuthorDirectory. Ids may be ObjectID hex or
// plain strings.
func (r *UserRepository) GetContact(ctx context.Context, userID string) (*domain.AuthorContact, error) {
	var key any = userID
	if oid, err := primitive.ObjectIDFromHex(userID); err == nil {
		key = oid
	}

	var doc userDocument
	opts := options.FindOne().SetProjection(bson.M{"name": 1, "email": 1, "phone": 1})
	if err := r.collection.FindOne(ctx, bson.M{"_id": key}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		r.logger.Error("Failed to find user", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("db findone failed: %w", err)
	}
	return doc.toContact(), nil
}
