package posts

import "time"

// PostView is a post as shown in the feed: the post itself plus the owning
// user's alias and the aggregated like count.
type PostView struct {
	ID         int       `json:"id" example:"1"`
	Message    string    `json:"message" example:"Hola"`
	CreatedAt  time.Time `json:"createdAt" example:"2023-01-15T10:30:00Z"`
	UserAlias  string    `json:"userAlias" example:"juanp"`
	UserID     int       `json:"userId" example:"1"`
	LikesCount int       `json:"likesCount" example:"0"`
}

// CreatePostRequest is the payload for creating a post.
type CreatePostRequest struct {
	Message string `json:"message" validate:"required" example:"Hola"`
}

// UpdatePostRequest is the payload for editing a post's message.
type UpdatePostRequest struct {
	Message string `json:"message" validate:"required" example:"Hola de nuevo"`
}

// MessageResponse is a generic success message payload.
type MessageResponse struct {
	Message string `json:"message" example:"like registered"`
}
