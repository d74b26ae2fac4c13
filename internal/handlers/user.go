package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pixelgram/backend/internal/models"
	"github.com/pixelgram/backend/internal/repositories"
)

// UserHandler handles user profile HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
	postRepository repositories.PostRepository // To propagate avatar changes onto posts
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, postRepo repositories.PostRepository) *UserHandler {
	return &UserHandler{
		userRepository: userRepo,
		postRepository: postRepo,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/users/:id", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/users/:id/followers/count", h.GetFollowersCount)
}

// GetProfile retrieves a user profile by id
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userRepository.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile merges the given fields into the session's profile,
// creating the profile if it does not exist yet. When the avatar URL
// changes, the denormalized copy on the user's posts is refreshed with a
// batched write; handle changes are not propagated.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return storeError(err)
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	current, err := h.userRepository.GetProfile(c.Request().Context(), userID)
	if errors.Is(err, models.ErrProfileNotFound) {
		current = &models.User{ID: userID, Following: []string{}}
	} else if err != nil {
		return storeError(err)
	}

	avatarChanged := req.ImageURL != nil && *req.ImageURL != current.ImageURL

	merged := mergeProfile(current, &req)
	if err := h.userRepository.SaveProfile(c.Request().Context(), merged); err != nil {
		return storeError(err)
	}

	if avatarChanged {
		if err := h.postRepository.UpdateAuthorImage(c.Request().Context(), userID, merged.ImageURL); err != nil {
			return storeError(err)
		}
	}

	return c.JSON(http.StatusOK, merged)
}

// GetFollowersCount counts the profiles following the given user
func (h *UserHandler) GetFollowersCount(c echo.Context) error {
	count, err := h.userRepository.CountFollowers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

// mergeProfile overlays the non-nil request fields onto the stored profile
func mergeProfile(current *models.User, req *models.UpdateProfileRequest) *models.User {
	merged := *current
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Username != nil {
		merged.Username = *req.Username
	}
	if req.ImageURL != nil {
		merged.ImageURL = *req.ImageURL
	}
	if req.Bio != nil {
		merged.Bio = *req.Bio
	}
	if merged.Following == nil {
		merged.Following = []string{}
	}
	return &merged
}
