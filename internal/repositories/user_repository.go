package repositories

import (
	"context"

	"github.com/pixelgram/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository defines the interface for user profile data operations
type UserRepository interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.User, error)
	SaveProfile(ctx context.Context, user *models.User) error
	UpdateFollowing(ctx context.Context, userID string, following []string) error
	CountFollowers(ctx context.Context, userID string) (int64, error)
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// GetProfile retrieves a user profile by user id from MongoDB
func (r *MongoUserRepository) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrProfileNotFound
		}
		return nil, err
	}
	return &user, nil
}

// GetProfileByUsername retrieves a user profile by its unique handle
func (r *MongoUserRepository) GetProfileByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrProfileNotFound
		}
		return nil, err
	}
	return &user, nil
}

// SaveProfile writes the whole profile document, creating it if it does not
// exist yet. Field merging against the stored profile is the caller's job.
func (r *MongoUserRepository) SaveProfile(ctx context.Context, user *models.User) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user, opts)
	return err
}

// UpdateFollowing replaces the user's whole follow-list. Last writer wins;
// there is no optimistic lock against a concurrent mutation.
func (r *MongoUserRepository) UpdateFollowing(ctx context.Context, userID string, following []string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": bson.M{"following": following}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrProfileNotFound
	}
	return nil
}

// CountFollowers counts the profiles whose follow-list contains the user id
func (r *MongoUserRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"following": userID})
}
