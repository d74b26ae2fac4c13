package models

import "errors"

// Error kinds surfaced by the data-access layer. Handlers map these onto
// HTTP status codes with errors.Is; anything else is treated as a store
// operation failure.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrAccountCreation  = errors.New("account creation failed")
)
