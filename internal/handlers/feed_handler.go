package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pixelgram/backend/internal/models"
	"github.com/pixelgram/backend/internal/repositories"
)

// FeedHandler assembles the feed for the session's user: posts authored by
// the user or anyone they follow, falling back to a time-windowed general
// feed when personalization yields nothing.
type FeedHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	window         time.Duration // general-feed lookback window
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, window time.Duration) *FeedHandler {
	return &FeedHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		window:         window,
	}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns the feed posts for the current user, newest first.
// All matching posts are returned in one page.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return storeError(err)
	}

	profile, err := h.userRepository.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return storeError(err)
	}

	var posts []models.Post
	if len(profile.Following) > 0 {
		posts, err = h.personalizedFeed(c.Request().Context(), userID, profile.Following)
		if err != nil {
			return storeError(err)
		}
	}

	// Fall back to the general feed when the viewer follows nobody or
	// nobody they follow has posted
	if len(posts) == 0 {
		cutoff := time.Now().Add(-h.window).UnixMilli()
		posts, err = h.postRepository.GetPostsAfter(c.Request().Context(), cutoff)
		if err != nil {
			return storeError(err)
		}
	}

	return c.JSON(http.StatusOK, posts)
}

// personalizedFeed returns the posts authored by the viewer or anyone on
// their follow-list. Author sets larger than the store's in-set cap are
// split into multiple queries and the results merged.
func (h *FeedHandler) personalizedFeed(ctx context.Context, viewerID string, following []string) ([]models.Post, error) {
	authors := feedAuthorSet(viewerID, following)

	posts := []models.Post{}
	for _, chunk := range chunkAuthors(authors, repositories.MaxAuthorsPerQuery) {
		chunkPosts, err := h.postRepository.GetPostsByAuthors(ctx, chunk)
		if err != nil {
			return nil, err
		}
		posts = append(posts, chunkPosts...)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Time > posts[j].Time
	})
	return posts, nil
}

// feedAuthorSet builds the author id set for the personalized feed: the
// follow-list plus the viewer's own id, deduplicated.
func feedAuthorSet(viewerID string, following []string) []string {
	authors := make([]string, 0, len(following)+1)
	seen := make(map[string]struct{}, len(following)+1)
	for _, id := range append([]string{viewerID}, following...) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		authors = append(authors, id)
	}
	return authors
}

// chunkAuthors splits an author id set into slices of at most size ids
func chunkAuthors(authors []string, size int) [][]string {
	var chunks [][]string
	for len(authors) > size {
		chunks = append(chunks, authors[:size])
		authors = authors[size:]
	}
	if len(authors) > 0 {
		chunks = append(chunks, authors)
	}
	return chunks
}
