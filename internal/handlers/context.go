package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pixelgram/backend/internal/models"
)

// currentUserID resolves the active session's user id set by the auth
// middleware. It fails with models.ErrNotAuthenticated when no session is
// active on the request.
func currentUserID(c echo.Context) (string, error) {
	userID, ok := c.Get("userID").(string)
	if !ok || userID == "" {
		return "", models.ErrNotAuthenticated
	}
	return userID, nil
}

// storeError maps a data-access failure onto an HTTP error response
func storeError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, models.ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	case errors.Is(err, models.ErrProfileNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	case errors.Is(err, models.ErrPostNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
