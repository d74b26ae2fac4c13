package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pixelgram/backend/internal/models"
	"github.com/pixelgram/backend/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	postRepository    repositories.PostRepository // To verify the parent post exists
	userRepository    repositories.UserRepository // To denormalize the author handle
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, userRepo repositories.UserRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		postRepository:    postRepo,
		userRepository:    userRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
	g.GET("/posts/:id/comments", h.GetCommentsByPostID)
}

// CreateComment creates a new comment on a post, stamped with the session
// user's handle
func (h *CommentHandler) CreateComment(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return storeError(err)
	}
	postID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return storeError(err)
	}

	author, err := h.userRepository.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return storeError(err)
	}

	comment := &models.Comment{
		PostID:   postID,
		Username: author.Username,
		Text:     req.Text,
	}

	if err := h.commentRepository.CreateComment(c.Request().Context(), comment); err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusCreated, comment)
}

// GetCommentsByPostID retrieves all comments for a post, newest first
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID := c.Param("id")

	// Verify post exists
	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		return storeError(err)
	}

	comments, err := h.commentRepository.GetCommentsByPostID(c.Request().Context(), postID)
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, comments)
}
