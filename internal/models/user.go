package models

// User represents a user profile document stored in MongoDB.
//
// Followers are not stored on the profile; they are derived by querying
// which other profiles list this user's id in their following array.
type User struct {
	ID        string   `json:"id" bson:"_id"` // Firebase UID, assigned at account creation
	Name      string   `json:"name,omitempty" bson:"name,omitempty"`
	Username  string   `json:"username" bson:"username"`
	ImageURL  string   `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Bio       string   `json:"bio,omitempty" bson:"bio,omitempty"`
	Following []string `json:"following" bson:"following"`
}

// SignupRequest defines the request body for creating a new account
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name,omitempty" validate:"omitempty,max=50"`
}

// SigninRequest defines the request body for signing in with a Firebase ID token
type SigninRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// UpdateProfileRequest defines the request body for a partial profile update.
// Nil fields are left untouched on the stored profile.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=50"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=30"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=500"`
}
