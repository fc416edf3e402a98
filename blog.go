package blog

import (
	"github.com/Garrette27/fullstack-blog-redux/core"
	"github.com/Garrette27/fullstack-blog-redux/stores"
)

// interfaces
type (
	Gateway        = core.Gateway
	AuthGateway    = core.AuthGateway
	PostGateway    = core.PostGateway
	CommentGateway = core.CommentGateway
	BlobStorage    = core.BlobStorage
)

// structs
type (
	Identity    = core.Identity
	SessionData = core.SessionData
	Post        = core.Post
	Comment     = core.Comment
	PageInfo    = core.PageInfo

	SessionStore = stores.SessionStore
	PostStore    = stores.PostStore
	CommentStore = stores.CommentStore
)

var (
	ErrNotAuthenticated = core.ErrNotAuthenticated

	ErrUserExists         = core.ErrUserExists
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrSessionNotFound    = core.ErrSessionNotFound
	ErrSessionExpired     = core.ErrSessionExpired

	ErrPostNotFound    = core.ErrPostNotFound
	ErrCommentNotFound = core.ErrCommentNotFound

	ErrEmailRequired    = core.ErrEmailRequired
	ErrPasswordRequired = core.ErrPasswordRequired
	ErrTitleRequired    = core.ErrTitleRequired
	ErrBodyRequired     = core.ErrBodyRequired

	ErrGatewayRequired = core.ErrGatewayRequired
	ErrInvalidPageSize = core.ErrInvalidPageSize
)

const defaultPageSize = 5

// Config wires a Blog to its remote gateway.
type Config struct {
	Gateway core.Gateway

	// Optional config
	PageSize int // default window size for post listings
}

// Blog bundles the three independently constructible state containers
// that mirror the remote service. Nothing here is a process-wide
// singleton; construct as many as you need and inject them wherever
// intents are issued.
type Blog struct {
	Sessions *SessionStore
	Posts    *PostStore
	Comments *CommentStore

	PageSize int

	gateway core.Gateway
}

// Gateway returns the wired remote gateway, for collaborators outside
// the cache core (e.g. the upload surface).
func (b *Blog) Gateway() core.Gateway {
	return b.gateway
}

func New(config Config) (*Blog, error) {
	if config.Gateway == nil {
		return nil, ErrGatewayRequired
	}
	if config.PageSize < 0 {
		return nil, ErrInvalidPageSize
	}

	// Set defaults

	pageSize := config.PageSize
	if pageSize == 0 {
		pageSize = defaultPageSize
	}

	sessions := stores.NewSessionStore(config.Gateway)

	return &Blog{
		Sessions: sessions,
		Posts:    stores.NewPostStore(config.Gateway, sessions),
		Comments: stores.NewCommentStore(config.Gateway, sessions),
		PageSize: pageSize,
		gateway:  config.Gateway,
	}, nil
}
