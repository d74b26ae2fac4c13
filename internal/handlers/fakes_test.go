package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sort"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/pixelgram/backend/internal/models"
	"github.com/pixelgram/backend/internal/repositories"
)

// fakeUserRepo is an in-memory UserRepository
type fakeUserRepo struct {
	profiles map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{profiles: make(map[string]*models.User)}
	for _, user := range users {
		copied := *user
		repo.profiles[user.ID] = &copied
	}
	return repo
}

func (r *fakeUserRepo) GetProfile(_ context.Context, userID string) (*models.User, error) {
	user, ok := r.profiles[userID]
	if !ok {
		return nil, models.ErrProfileNotFound
	}
	copied := *user
	copied.Following = append([]string{}, user.Following...)
	return &copied, nil
}

func (r *fakeUserRepo) GetProfileByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.profiles {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, models.ErrProfileNotFound
}

func (r *fakeUserRepo) SaveProfile(_ context.Context, user *models.User) error {
	copied := *user
	r.profiles[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdateFollowing(_ context.Context, userID string, following []string) error {
	user, ok := r.profiles[userID]
	if !ok {
		return models.ErrProfileNotFound
	}
	user.Following = append([]string{}, following...)
	return nil
}

func (r *fakeUserRepo) CountFollowers(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, user := range r.profiles {
		for _, id := range user.Following {
			if id == userID {
				count++
				break
			}
		}
	}
	return count, nil
}

// fakePostRepo is an in-memory PostRepository. It mirrors the Mongo
// repository's contracts: descending time order and the in-set cap.
type fakePostRepo struct {
	posts         []models.Post
	nextID        int
	nextTime      int64
	authorQueries [][]string
	imageUpdates  map[string]string // author id -> last batched avatar URL
}

func newFakePostRepo(posts ...models.Post) *fakePostRepo {
	return &fakePostRepo{
		posts:        append([]models.Post{}, posts...),
		nextTime:     1_000_000,
		imageUpdates: make(map[string]string),
	}
}

func (r *fakePostRepo) CreatePost(_ context.Context, post *models.Post) error {
	r.nextID++
	r.nextTime++
	post.ID = fmt.Sprintf("post-%d", r.nextID)
	post.Time = r.nextTime
	if post.Likes == nil {
		post.Likes = []string{}
	}
	r.posts = append(r.posts, *post)
	return nil
}

func (r *fakePostRepo) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	for _, post := range r.posts {
		if post.ID == id {
			copied := post
			copied.Likes = append([]string{}, post.Likes...)
			return &copied, nil
		}
	}
	return nil, models.ErrPostNotFound
}

func (r *fakePostRepo) GetPostsByAuthor(_ context.Context, authorID string) ([]models.Post, error) {
	return r.filter(func(p models.Post) bool { return p.UserID == authorID }), nil
}

func (r *fakePostRepo) GetPostsByAuthors(_ context.Context, authorIDs []string) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	if len(authorIDs) > repositories.MaxAuthorsPerQuery {
		return nil, fmt.Errorf("at most %d authors per query, got %d", repositories.MaxAuthorsPerQuery, len(authorIDs))
	}
	r.authorQueries = append(r.authorQueries, append([]string{}, authorIDs...))

	members := make(map[string]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		members[id] = struct{}{}
	}
	return r.filter(func(p models.Post) bool {
		_, ok := members[p.UserID]
		return ok
	}), nil
}

func (r *fakePostRepo) GetPostsAfter(_ context.Context, after int64) ([]models.Post, error) {
	return r.filter(func(p models.Post) bool { return p.Time > after }), nil
}

func (r *fakePostRepo) SearchPosts(_ context.Context, term string) ([]models.Post, error) {
	return r.filter(func(p models.Post) bool {
		for _, t := range p.SearchTerms {
			if t == term {
				return true
			}
		}
		return false
	}), nil
}

func (r *fakePostRepo) SetLikes(_ context.Context, postID string, likes []string) error {
	for i := range r.posts {
		if r.posts[i].ID == postID {
			r.posts[i].Likes = append([]string{}, likes...)
			return nil
		}
	}
	return models.ErrPostNotFound
}

func (r *fakePostRepo) UpdateAuthorImage(_ context.Context, authorID, imageURL string) error {
	r.imageUpdates[authorID] = imageURL
	for i := range r.posts {
		if r.posts[i].UserID == authorID {
			r.posts[i].UserImage = imageURL
		}
	}
	return nil
}

func (r *fakePostRepo) filter(keep func(models.Post) bool) []models.Post {
	matched := []models.Post{}
	for _, post := range r.posts {
		if keep(post) {
			matched = append(matched, post)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Time > matched[j].Time })
	return matched
}

// fakeCommentRepo is an in-memory CommentRepository
type fakeCommentRepo struct {
	comments []models.Comment
	nextID   int
	nextTime int64
}

func (r *fakeCommentRepo) CreateComment(_ context.Context, comment *models.Comment) error {
	r.nextID++
	r.nextTime++
	comment.ID = fmt.Sprintf("comment-%d", r.nextID)
	comment.Timestamp = r.nextTime
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) GetCommentsByPostID(_ context.Context, postID string) ([]models.Comment, error) {
	matched := []models.Comment{}
	for _, comment := range r.comments {
		if comment.PostID == postID {
			matched = append(matched, comment)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Timestamp > matched[j].Timestamp })
	return matched, nil
}

// fakeAccounts is an in-memory FirebaseAccounts
type fakeAccounts struct {
	uid         string
	validTokens map[string]string // id token -> uid
	revoked     []string
	createErr   error
}

func (a *fakeAccounts) CreateUser(_ context.Context, _ *auth.UserToCreate) (*auth.UserRecord, error) {
	if a.createErr != nil {
		return nil, a.createErr
	}
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: a.uid}}, nil
}

func (a *fakeAccounts) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	uid, ok := a.validTokens[idToken]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return &auth.Token{UID: uid}, nil
}

func (a *fakeAccounts) RevokeRefreshTokens(_ context.Context, uid string) error {
	a.revoked = append(a.revoked, uid)
	return nil
}

// newTestContext builds an echo context carrying the given session user id,
// the way the auth middleware would
func newTestContext(method, target string, body any, userID string) (echo.Context, *httptest.ResponseRecorder) {
	var payload bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&payload).Encode(body)
	}
	req := httptest.NewRequest(method, target, &payload)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	if userID != "" {
		c.Set("userID", userID)
	}
	return c, rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
	return out
}
