package core

import (
	"context"
	"time"
)

// Ports define the contract with the remote data/auth/storage service.
// The stores never reach past these interfaces; everything behind them
// (transport, retries, the database itself) is the adapter's business.

// ============================================
// AUTH PORT
// ============================================

// AuthGateway covers the credential lifecycle. A nil Identity inside a
// returned SessionData means "no one is signed in" and is not an error.
type AuthGateway interface {
	SignUp(ctx context.Context, email, password string) (*SessionData, error)
	SignIn(ctx context.Context, email, password string) (*SessionData, error)
	SignOut(ctx context.Context, token string) error

	// CurrentSession resolves a raw token back into a session. An
	// unknown or expired token yields an empty SessionData, not an
	// error - callers use it to rehydrate at startup.
	CurrentSession(ctx context.Context, token string) (*SessionData, error)
}

// ============================================
// ENTITY PORTS
// ============================================

// PostGateway exposes the posts collection. List takes an inclusive
// offset range and always orders by creation time, newest first.
type PostGateway interface {
	CountPosts(ctx context.Context) (int, error)
	ListPosts(ctx context.Context, offsetStart, offsetEnd int) ([]*Post, error)
	GetPost(ctx context.Context, id string) (*Post, error)
	InsertPost(ctx context.Context, ownerID, title, body string, imageURL *string) (*Post, error)
	UpdatePost(ctx context.Context, id, title, body string, imageURL *string, modifiedAt time.Time) (*Post, error)
	DeletePost(ctx context.Context, id string) error
}

// CommentGateway exposes comments, always scoped by post. Listing
// orders by creation time, newest first.
type CommentGateway interface {
	ListComments(ctx context.Context, postID string) ([]*Comment, error)
	InsertComment(ctx context.Context, postID, ownerID, body string, attachmentURL *string) (*Comment, error)
	UpdateComment(ctx context.Context, id, body string, attachmentURL *string, modifiedAt time.Time) (*Comment, error)
	DeleteComment(ctx context.Context, id string) error
}

// ============================================
// BLOB PORT
// ============================================

// BlobStorage uploads raw bytes and returns a public URL. The stores
// themselves never call it; they only ever receive resolved URLs.
type BlobStorage interface {
	UploadBlob(ctx context.Context, path string, data []byte) (string, error)
}

// Gateway is the full remote service surface.
type Gateway interface {
	AuthGateway
	PostGateway
	CommentGateway
	BlobStorage
}
