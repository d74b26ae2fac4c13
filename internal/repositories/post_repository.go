package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pixelgram/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxAuthorsPerQuery is the upper bound the store places on in-set filters.
// Callers with larger author sets must split them into multiple queries.
const MaxAuthorsPerQuery = 30

// PostRepository defines the interface for post data operations.
// Every listing query returns posts sorted descending by creation time.
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
	GetPostsByAuthors(ctx context.Context, authorIDs []string) ([]models.Post, error)
	GetPostsAfter(ctx context.Context, after int64) ([]models.Post, error)
	SearchPosts(ctx context.Context, term string) ([]models.Post, error)
	SetLikes(ctx context.Context, postID string, likes []string) error
	UpdateAuthorImage(ctx context.Context, authorID, imageURL string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

var sortByTimeDesc = options.Find().SetSort(bson.D{{Key: "time", Value: -1}})

// CreatePost creates a new post in MongoDB, stamping its id and creation
// time and starting with an empty like-list.
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	post.Time = time.Now().UnixMilli()
	if post.Likes == nil {
		post.Likes = []string{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by id from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, models.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByAuthor retrieves all posts by a single author, newest first
func (r *MongoPostRepository) GetPostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{"user_id": authorID})
}

// GetPostsByAuthors retrieves all posts whose author is in the given id set,
// newest first. The set may hold at most MaxAuthorsPerQuery ids.
func (r *MongoPostRepository) GetPostsByAuthors(ctx context.Context, authorIDs []string) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	if len(authorIDs) > MaxAuthorsPerQuery {
		return nil, fmt.Errorf("at most %d authors per query, got %d", MaxAuthorsPerQuery, len(authorIDs))
	}
	return r.findPosts(ctx, bson.M{"user_id": bson.M{"$in": authorIDs}})
}

// GetPostsAfter retrieves all posts created strictly after the given time
// (milliseconds since epoch), newest first
func (r *MongoPostRepository) GetPostsAfter(ctx context.Context, after int64) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{"time": bson.M{"$gt": after}})
}

// SearchPosts retrieves all posts whose derived search terms contain the
// given normalized term, newest first
func (r *MongoPostRepository) SearchPosts(ctx context.Context, term string) ([]models.Post, error) {
	return r.findPosts(ctx, bson.M{"search_terms": term})
}

// SetLikes replaces the whole like-list on the given post
func (r *MongoPostRepository) SetLikes(ctx context.Context, postID string, likes []string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": postID}, bson.M{"$set": bson.M{"likes": likes}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrPostNotFound
	}
	return nil
}

// UpdateAuthorImage refreshes the denormalized author avatar on every post
// by the given author as a single batched write
func (r *MongoPostRepository) UpdateAuthorImage(ctx context.Context, authorID, imageURL string) error {
	posts, err := r.GetPostsByAuthor(ctx, authorID)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		return nil // Nothing to update
	}

	writes := make([]mongo.WriteModel, 0, len(posts))
	for _, post := range posts {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": post.ID}).
			SetUpdate(bson.M{"$set": bson.M{"user_image": imageURL}}))
	}

	_, err = r.collection.BulkWrite(ctx, writes)
	return err
}

// findPosts runs a filter query sorted descending by creation time
func (r *MongoPostRepository) findPosts(ctx context.Context, filter bson.M) ([]models.Post, error) {
	cursor, err := r.collection.Find(ctx, filter, sortByTimeDesc)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}
