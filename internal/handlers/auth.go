package handlers

import (
	"context"
	"errors"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pixelgram/backend/internal/models"
	"github.com/pixelgram/backend/internal/repositories"
)

// FirebaseAccounts is the slice of the Firebase auth client used for
// account management. *auth.Client satisfies it.
type FirebaseAccounts interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	accounts       FirebaseAccounts
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, accounts FirebaseAccounts) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		accounts:       accounts,
	}
}

// RegisterAuthRoutes registers the unprotected authentication routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
}

// RegisterSessionRoutes registers authentication routes that require an
// active session
func (h *AuthHandler) RegisterSessionRoutes(g *echo.Group) {
	g.POST("/auth/signout", h.SignOut)
}

// Signup creates a Firebase account and the user's initial profile.
// The handle uniqueness check is a pre-query, not a store constraint, so
// two concurrent signups with the same handle can race.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Check if the handle is already taken
	_, err := h.userRepository.GetProfileByUsername(c.Request().Context(), req.Username)
	if err == nil {
		return echo.NewHTTPError(http.StatusConflict, models.ErrUsernameTaken.Error())
	}
	if !errors.Is(err, models.ErrProfileNotFound) {
		return storeError(err)
	}

	record, err := h.accounts.CreateUser(c.Request().Context(), (&auth.UserToCreate{}).
		Email(req.Email).
		Password(req.Password).
		DisplayName(req.Name))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, models.ErrAccountCreation.Error())
	}

	user := &models.User{
		ID:        record.UID,
		Name:      req.Name,
		Username:  req.Username,
		Following: []string{},
	}

	if err := h.userRepository.SaveProfile(c.Request().Context(), user); err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusCreated, user)
}

// SignIn verifies a Firebase ID token and returns the session's profile
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.accounts.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
	}

	user, err := h.userRepository.GetProfile(c.Request().Context(), token.UID)
	if err != nil {
		return storeError(err)
	}

	return c.JSON(http.StatusOK, user)
}

// SignOut revokes the session's refresh tokens
func (h *AuthHandler) SignOut(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return storeError(err)
	}

	if err := h.accounts.RevokeRefreshTokens(c.Request().Context(), userID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.NoContent(http.StatusNoContent)
}
