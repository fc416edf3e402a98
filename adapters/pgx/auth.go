package pgx

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	blog "github.com/Garrette27/fullstack-blog-redux"
	"github.com/Garrette27/fullstack-blog-redux/pkg/crypto"
)

// SignUp registers a new user with email and password and opens their
// first session.
func (a *Adapter) SignUp(ctx context.Context, email, password string) (*blog.SessionData, error) {
	// Reject duplicates up front for a clean error; the unique
	// constraint still backstops races.
	var exists bool
	err := a.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		return nil, blog.ErrUserExists
	}

	hash, err := a.passwords.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	ident := &blog.Identity{ID: newID(), Email: email}
	_, err = a.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash) VALUES ($1, $2, $3)`,
		ident.ID, ident.Email, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return a.createSession(ctx, ident)
}

// SignIn authenticates a user with email and password and opens a new
// session.
func (a *Adapter) SignIn(ctx context.Context, email, password string) (*blog.SessionData, error) {
	ident := &blog.Identity{}
	var hash string
	err := a.pool.QueryRow(ctx,
		`SELECT id, email, password_hash FROM users WHERE email = $1`, email).
		Scan(&ident.ID, &ident.Email, &hash)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, blog.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	valid, err := a.passwords.Verify(password, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, blog.ErrInvalidCredentials
	}

	return a.createSession(ctx, ident)
}

// SignOut deletes the session behind the raw token. An already-gone
// session is not an error; sign-out is idempotent.
func (a *Adapter) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, err := a.pool.Exec(ctx,
		`DELETE FROM sessions WHERE token_hash = $1`, crypto.HashToken(token))
	return err
}

// CurrentSession resolves a raw token. Unknown and expired tokens
// yield an empty SessionData so callers can rehydrate without
// special-casing "signed out".
func (a *Adapter) CurrentSession(ctx context.Context, token string) (*blog.SessionData, error) {
	if token == "" {
		return &blog.SessionData{}, nil
	}

	ident := &blog.Identity{}
	var sessionID string
	var expiresAt time.Time
	err := a.pool.QueryRow(ctx,
		`SELECT s.id, s.expires_at, u.id, u.email
		   FROM sessions s JOIN users u ON u.id = s.user_id
		  WHERE s.token_hash = $1`,
		crypto.HashToken(token)).
		Scan(&sessionID, &expiresAt, &ident.ID, &ident.Email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return &blog.SessionData{}, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	if time.Now().After(expiresAt) {
		_, _ = a.pool.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
		return &blog.SessionData{}, nil
	}

	return &blog.SessionData{Identity: ident, Token: token, ExpiresAt: expiresAt}, nil
}

func (a *Adapter) createSession(ctx context.Context, ident *blog.Identity) (*blog.SessionData, error) {
	pair, err := crypto.GenerateToken(crypto.DefaultTokenLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	expiresAt := time.Now().Add(a.sessionMaxAge)
	_, err = a.pool.Exec(ctx,
		`INSERT INTO sessions (id, user_id, token_hash, expires_at) VALUES ($1, $2, $3, $4)`,
		newID(), ident.ID, pair.Hash, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &blog.SessionData{Identity: ident, Token: pair.Token, ExpiresAt: expiresAt}, nil
}
