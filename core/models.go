package core

import "time"

// Identity is the authenticated viewer.
//
// This is the "who" - the user behind the current session
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SessionData is what the auth gateway hands back for a live session:
// the identity plus the raw credential. The token is opaque to this
// module; it is held and passed back through, never parsed.
type SessionData struct {
	Identity  *Identity `json:"identity"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Post is a blog post as the gateway returns it.
//
// UpdatedAt >= CreatedAt always; they are equal until the first edit.
type Post struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment belongs to exactly one post. The parent linkage is trusted
// from the gateway and never validated locally.
type Comment struct {
	ID            string    `json:"id"`
	PostID        string    `json:"postId"`
	OwnerID       string    `json:"ownerId"`
	Body          string    `json:"body"`
	AttachmentURL *string   `json:"attachmentUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
