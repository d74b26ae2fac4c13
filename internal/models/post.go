package models

// Post represents a social media post stored in MongoDB.
//
// Username and UserImage are denormalized copies of the author's profile
// taken at creation time. UserImage is refreshed across the author's posts
// by a batched write when the author changes their avatar; Username is not
// kept in sync with later profile edits.
type Post struct {
	ID          string   `json:"id" bson:"_id"`
	UserID      string   `json:"user_id" bson:"user_id"`
	Username    string   `json:"username" bson:"username"`
	UserImage   string   `json:"user_image,omitempty" bson:"user_image,omitempty"`
	PostImage   string   `json:"post_image,omitempty" bson:"post_image,omitempty"`
	PostVideo   string   `json:"post_video,omitempty" bson:"post_video,omitempty"`
	Description string   `json:"description,omitempty" bson:"description,omitempty"`
	Time        int64    `json:"time" bson:"time"` // creation time, milliseconds since epoch
	Likes       []string `json:"likes" bson:"likes"`
	SearchTerms []string `json:"search_terms,omitempty" bson:"search_terms,omitempty"`
}

// CreatePostRequest defines the request body for creating a new post.
// Exactly one of ImageURL/VideoURL must be set.
type CreatePostRequest struct {
	Description string `json:"description,omitempty" validate:"omitempty,max=2200"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
	VideoURL    string `json:"video_url,omitempty" validate:"omitempty,url"`
}

// ToggleLike returns the like-list after the given user toggles their like:
// the id is removed if present, appended otherwise. Every occurrence of the
// id is removed, so the result never contains duplicates of that user.
func ToggleLike(likes []string, userID string) []string {
	newLikes := make([]string, 0, len(likes)+1)
	found := false
	for _, id := range likes {
		if id == userID {
			found = true
			continue
		}
		newLikes = append(newLikes, id)
	}
	if !found {
		newLikes = append(newLikes, userID)
	}
	return newLikes
}
