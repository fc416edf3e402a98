package stores

import (
	"context"

	"github.com/Garrette27/fullstack-blog-redux/core"
)

// SessionStore owns the current authenticated identity and the raw
// session credential. It is the only component that writes them; the
// entity stores get read-through access and nothing else.
type SessionStore struct {
	opState

	gateway core.AuthGateway

	identity      *core.Identity
	token         string
	authenticated bool
}

var _ identityReader = (*SessionStore)(nil)

func NewSessionStore(gateway core.AuthGateway) *SessionStore {
	return &SessionStore{gateway: gateway}
}

// Register creates a new account and signs it in. On failure the prior
// session state is left untouched.
func (s *SessionStore) Register(ctx context.Context, email, password string) error {
	if email == "" {
		return s.failLocal(core.ErrEmailRequired)
	}
	if password == "" {
		return s.failLocal(core.ErrPasswordRequired)
	}

	s.begin()
	data, err := s.gateway.SignUp(ctx, email, password)
	if err != nil {
		return s.fail(err)
	}

	s.replace(data)
	return nil
}

// Login authenticates with email and password. On failure the prior
// session state is left untouched.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	if email == "" {
		return s.failLocal(core.ErrEmailRequired)
	}
	if password == "" {
		return s.failLocal(core.ErrPasswordRequired)
	}

	s.begin()
	data, err := s.gateway.SignIn(ctx, email, password)
	if err != nil {
		return s.fail(err)
	}

	s.replace(data)
	return nil
}

// Logout signs the current session out. The local state is only
// cleared after the gateway confirms - there is no optimistic clear,
// so a failed sign-out leaves the viewer signed in.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	s.begin()
	if err := s.gateway.SignOut(ctx, token); err != nil {
		return s.fail(err)
	}

	s.replace(nil)
	return nil
}

// CheckSession resolves the given raw token with the gateway and
// overwrites identity, token and the authenticated flag from the
// result - even to empty. This is the one operation allowed to
// silently downgrade authentication state; it runs at process start to
// rehydrate a persisted credential.
func (s *SessionStore) CheckSession(ctx context.Context, token string) error {
	s.begin()
	data, err := s.gateway.CurrentSession(ctx, token)
	if err != nil {
		return s.fail(err)
	}

	s.replace(data)
	return nil
}

// replace swaps the whole session state from a gateway result and
// resolves the in-flight operation. A nil or empty result clears it.
func (s *SessionStore) replace(data *core.SessionData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if data == nil || data.Identity == nil {
		s.identity = nil
		s.token = ""
		s.authenticated = false
	} else {
		s.identity = data.Identity
		s.token = data.Token
		s.authenticated = data.Token != ""
	}
	s.loading = false
}

// failLocal records a validation failure without a gateway round trip,
// following the same status protocol as any other operation.
func (s *SessionStore) failLocal(err error) error {
	s.begin()
	return s.fail(err)
}

// Identity returns the current viewer, or nil when signed out. The
// pointer is never mutated after publication, so callers may hold it
// across a gateway call.
func (s *SessionStore) Identity() *core.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Token returns the raw session credential, "" when signed out.
func (s *SessionStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *SessionStore) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}
