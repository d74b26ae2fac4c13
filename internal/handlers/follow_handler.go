package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pixelgram/backend/internal/repositories"
)

// FollowHandler handles follow/unfollow HTTP requests. Both operations are
// a read-then-write of the viewer's whole follow-list; concurrent mutations
// from another session are last-writer-wins.
type FollowHandler struct {
	userRepository repositories.UserRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(userRepo repositories.UserRepository) *FollowHandler {
	return &FollowHandler{userRepository: userRepo}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
}

// FollowUser adds the target user to the viewer's follow-list
func (h *FollowHandler) FollowUser(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return storeError(err)
	}

	targetID := c.Param("id")
	if targetID == userID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	following, err := h.mutateFollowing(c, userID, addFollowee(targetID))
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"following": following})
}

// UnfollowUser removes the target user from the viewer's follow-list
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return storeError(err)
	}

	following, err := h.mutateFollowing(c, userID, removeFollowee(c.Param("id")))
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"following": following})
}

// mutateFollowing reads the viewer's follow-list, applies the mutation and
// writes the whole list back
func (h *FollowHandler) mutateFollowing(c echo.Context, userID string, mutate func([]string) []string) ([]string, error) {
	profile, err := h.userRepository.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return nil, err
	}

	following := mutate(profile.Following)
	if err := h.userRepository.UpdateFollowing(c.Request().Context(), userID, following); err != nil {
		return nil, err
	}
	return following, nil
}

// addFollowee appends the target id unless it is already present
func addFollowee(targetID string) func([]string) []string {
	return func(following []string) []string {
		for _, id := range following {
			if id == targetID {
				return following
			}
		}
		return append(following, targetID)
	}
}

// removeFollowee removes every occurrence of the target id
func removeFollowee(targetID string) func([]string) []string {
	return func(following []string) []string {
		remaining := make([]string, 0, len(following))
		for _, id := range following {
			if id != targetID {
				remaining = append(remaining, id)
			}
		}
		return remaining
	}
}
