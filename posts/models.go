// Package posts implements the posts feature: creating, listing, editing and
// deleting short text posts, and registering likes with duplicate prevention.
package posts

import "time"

// Post represents a post as stored in the database. CreatedAt is assigned by
// the database on insert and never changes afterwards.
type Post struct {
	ID        int       `json:"id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    int       `json:"userId"`
}
