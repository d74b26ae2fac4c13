package models

// Comment represents a comment on a post. The author is denormalized by
// handle, not by user id, matching what feed clients render.
type Comment struct {
	ID        string `json:"id" bson:"_id"`
	PostID    string `json:"post_id" bson:"post_id"`
	Username  string `json:"username" bson:"username"`
	Text      string `json:"text" bson:"text"`
	Timestamp int64  `json:"timestamp" bson:"timestamp"` // milliseconds since epoch
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Text string `json:"text" validate:"required,min=1,max=500"`
}
