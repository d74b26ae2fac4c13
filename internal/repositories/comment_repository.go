package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pixelgram/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("comments")}
}

// CreateComment creates a new comment in MongoDB, stamping its id and
// creation time. Comments are never edited or deleted afterwards.
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	comment.Timestamp = time.Now().UnixMilli()
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentsByPostID retrieves all comments for a post, newest first
func (r *MongoCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"post_id": postID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}
