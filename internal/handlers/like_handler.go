package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pixelgram/backend/internal/models"
	"github.com/pixelgram/backend/internal/repositories"
)

// LikeHandler handles like-toggle HTTP requests
type LikeHandler struct {
	postRepository repositories.PostRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(postRepo repositories.PostRepository) *LikeHandler {
	return &LikeHandler{postRepository: postRepo}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
}

// ToggleLike flips the session user's like on a post: the user id is
// removed from the like-list if present, appended otherwise, and the whole
// list is written back.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return storeError(err)
	}
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		return storeError(err)
	}

	newLikes := models.ToggleLike(post.Likes, userID)
	if err := h.postRepository.SetLikes(c.Request().Context(), postID, newLikes); err != nil {
		return storeError(err)
	}

	liked := len(newLikes) > len(post.Likes)
	return c.JSON(http.StatusOK, echo.Map{"likes": newLikes, "liked": liked})
}
