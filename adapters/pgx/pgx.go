package pgx

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"

	blog "github.com/Garrette27/fullstack-blog-redux"
	"github.com/Garrette27/fullstack-blog-redux/pkg/crypto"
)

// Config tunes the adapter. The zero value is usable.
type Config struct {
	Passwords     crypto.PasswordHandler // default: argon2id
	SessionMaxAge time.Duration          // default: 24h
	BlobBaseURL   string                 // public URL prefix for uploaded blobs
}

// Adapter implements the full gateway contract over Postgres.
type Adapter struct {
	pool          *pgxpool.Pool
	passwords     crypto.PasswordHandler
	sessionMaxAge time.Duration
	blobBaseURL   string
}

var _ blog.Gateway = (*Adapter)(nil)

func New(pool *pgxpool.Pool, config ...Config) *Adapter {
	var c Config
	if len(config) > 0 {
		c = config[0]
	}
	if c.Passwords == nil {
		c.Passwords = crypto.NewArgon2()
	}
	if c.SessionMaxAge == 0 {
		c.SessionMaxAge = 24 * time.Hour
	}
	if c.BlobBaseURL == "" {
		c.BlobBaseURL = "/blobs"
	}

	return &Adapter{
		pool:          pool,
		passwords:     c.Passwords,
		sessionMaxAge: c.SessionMaxAge,
		blobBaseURL:   c.BlobBaseURL,
	}
}

// newID mints a ULID: unique, and lexicographically ordered by
// creation time, which keeps id order consistent with the
// created-at-desc listing the gateway promises.
func newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}

// Migrate creates the schema if it does not exist yet. Intended for
// examples and tests; production deployments run their own
// migrations.
func (a *Adapter) Migrate(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token_hash TEXT NOT NULL UNIQUE,
			expires_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS posts (
			id         TEXT PRIMARY KEY,
			owner_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title      TEXT NOT NULL,
			body       TEXT NOT NULL,
			image_url  TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS comments (
			id             TEXT PRIMARY KEY,
			post_id        TEXT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
			owner_id       TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			body           TEXT NOT NULL,
			attachment_url TEXT,
			created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS blobs (
			path       TEXT PRIMARY KEY,
			data       BYTEA NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}

	for _, stmt := range ddl {
		if _, err := a.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
