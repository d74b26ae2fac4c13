package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pixelgram/backend/internal/models"
	"github.com/pixelgram/backend/internal/repositories"
	"github.com/pixelgram/backend/internal/search"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository // To denormalize author fields onto new posts
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/search", h.SearchPosts)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/users/:id/posts", h.GetPostsByAuthor)
}

// CreatePost creates a new post for the session's user. The author handle
// and avatar are copied onto the post at creation time, and search terms
// are derived from the description.
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return storeError(err)
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if (req.ImageURL == "") == (req.VideoURL == "") {
		return echo.NewHTTPError(http.StatusBadRequest, "Exactly one of image_url or video_url must be provided")
	}

	author, err := h.userRepository.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return storeError(err)
	}

	post := &models.Post{
		UserID:      userID,
		Username:    author.Username,
		UserImage:   author.ImageURL,
		PostImage:   req.ImageURL,
		PostVideo:   req.VideoURL,
		Description: req.Description,
		SearchTerms: search.Terms(req.Description),
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPost retrieves a single post by id
func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postRepository.GetPostByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, post)
}

// GetPostsByAuthor retrieves all posts by a user, newest first
func (h *PostHandler) GetPostsByAuthor(c echo.Context) error {
	posts, err := h.postRepository.GetPostsByAuthor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, posts)
}

// SearchPosts retrieves the posts whose search terms contain the query
// term, newest first. The term is trimmed and lowercased before matching.
func (h *PostHandler) SearchPosts(c echo.Context) error {
	term := search.NormalizeQuery(c.QueryParam("q"))
	if term == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query parameter q is required")
	}

	posts, err := h.postRepository.SearchPosts(c.Request().Context(), term)
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, posts)
}
