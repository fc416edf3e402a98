package stores

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Garrette27/fullstack-blog-redux/core"
)

// Requirement: Register and Login replace the whole session state on
// success; on failure the prior state is left untouched.
func TestSessionStore_LoginLifecycle(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		setup    func(*FakeGateway)
		wantErr  bool
		wantAuth bool
	}{
		{
			name:     "login succeeds for valid credentials",
			email:    "alice@example.com",
			password: "SecurePass123!",
			wantAuth: true,
		},
		{
			name:     "login failure keeps prior state",
			email:    "alice@example.com",
			password: "wrong",
			setup: func(g *FakeGateway) {
				g.signInErr = core.ErrInvalidCredentials
			},
			wantErr: true,
		},
		{
			name:    "empty email fails locally",
			email:   "",
			wantErr: true,
		},
		{
			name:    "empty password fails locally",
			email:   "alice@example.com",
			wantErr: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// Arrange
			gateway := NewFakeGateway()
			if test.setup != nil {
				test.setup(gateway)
			}
			store := NewSessionStore(gateway)

			// Act
			err := store.Login(context.Background(), test.email, test.password)

			// Assert
			if (err != nil) != test.wantErr {
				t.Fatalf("Login() error = %v, wantErr %v", err, test.wantErr)
			}
			if store.Authenticated() != test.wantAuth {
				t.Errorf("Authenticated() = %v, want %v", store.Authenticated(), test.wantAuth)
			}
			if test.wantAuth && store.Identity() == nil {
				t.Error("Identity() = nil after successful login")
			}
			if !test.wantAuth && store.Token() != "" {
				t.Errorf("Token() = %q, want empty", store.Token())
			}
		})
	}
}

func TestSessionStore_Register(t *testing.T) {
	gateway := NewFakeGateway()
	store := NewSessionStore(gateway)

	if err := store.Register(context.Background(), "bob@example.com", "SecurePass123!"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if !store.Authenticated() {
		t.Error("Authenticated() = false after register")
	}
	if got := store.Identity().Email; got != "bob@example.com" {
		t.Errorf("identity email = %s, want bob@example.com", got)
	}
}

// Requirement: logout clears state only after the gateway confirms; a
// failed sign-out leaves the viewer signed in, with the error recorded.
func TestSessionStore_Logout(t *testing.T) {
	t.Run("success clears everything", func(t *testing.T) {
		gateway := NewFakeGateway()
		store := NewSessionStore(gateway)
		if err := store.Login(context.Background(), "alice@example.com", "pw-secret"); err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		if err := store.Logout(context.Background()); err != nil {
			t.Fatalf("Logout() error = %v", err)
		}
		if store.Authenticated() || store.Identity() != nil || store.Token() != "" {
			t.Error("session state not cleared after logout")
		}
	})

	t.Run("failure keeps the session", func(t *testing.T) {
		gateway := NewFakeGateway()
		store := NewSessionStore(gateway)
		if err := store.Login(context.Background(), "alice@example.com", "pw-secret"); err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		gateway.signOutErr = errors.New("gateway down")
		if err := store.Logout(context.Background()); err == nil {
			t.Fatal("Logout() error = nil, want failure")
		}
		if !store.Authenticated() {
			t.Error("failed logout must not clear the session")
		}
		if store.Err() != "gateway down" {
			t.Errorf("Err() = %q, want gateway message", store.Err())
		}
	})
}

// Requirement: CheckSession overwrites identity, token and the
// authenticated flag from the result - even to empty. It is the one
// operation allowed to silently downgrade authentication state.
func TestSessionStore_CheckSession(t *testing.T) {
	t.Run("rehydrates a live session", func(t *testing.T) {
		gateway := NewFakeGateway()
		gateway.session = &core.SessionData{
			Identity:  &core.Identity{ID: "user-9", Email: "carol@example.com"},
			Token:     "raw-token",
			ExpiresAt: time.Now().Add(time.Hour),
		}
		store := NewSessionStore(gateway)

		if err := store.CheckSession(context.Background(), "raw-token"); err != nil {
			t.Fatalf("CheckSession() error = %v", err)
		}
		if !store.Authenticated() || store.Identity() == nil {
			t.Fatal("session not rehydrated")
		}
		if store.Identity().ID != "user-9" {
			t.Errorf("identity = %s, want user-9", store.Identity().ID)
		}
	})

	t.Run("empty result downgrades silently", func(t *testing.T) {
		gateway := NewFakeGateway()
		store := NewSessionStore(gateway)
		if err := store.Login(context.Background(), "alice@example.com", "pw-secret"); err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		// Gateway reports no session behind the token.
		if err := store.CheckSession(context.Background(), "stale-token"); err != nil {
			t.Fatalf("CheckSession() error = %v", err)
		}
		if store.Authenticated() || store.Identity() != nil {
			t.Error("CheckSession must overwrite state even to empty")
		}
		if store.Err() != "" {
			t.Errorf("Err() = %q, want no error on a clean downgrade", store.Err())
		}
	})

	t.Run("gateway failure keeps prior identity", func(t *testing.T) {
		gateway := NewFakeGateway()
		store := NewSessionStore(gateway)
		if err := store.Login(context.Background(), "alice@example.com", "pw-secret"); err != nil {
			t.Fatalf("Login() error = %v", err)
		}

		gateway.sessionErr = errors.New("lookup failed")
		if err := store.CheckSession(context.Background(), store.Token()); err == nil {
			t.Fatal("CheckSession() error = nil, want failure")
		}
		if !store.Authenticated() {
			t.Error("a failed check must not drop the prior session")
		}
	})
}

// Requirement: an in-flight create that captured the identity before a
// logout is unaffected by it; no re-check happens after the gateway
// responds.
func TestSessionStore_LogoutDoesNotAffectCapturedIdentity(t *testing.T) {
	gateway := NewFakeGateway()
	sessions := NewSessionStore(gateway)
	if err := sessions.Login(context.Background(), "alice@example.com", "pw-secret"); err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	ownerID := sessions.Identity().ID
	posts := NewPostStore(gateway, sessions)

	// Park the create inside the gateway call, complete a logout, then
	// let it finish.
	entered := make(chan struct{})
	release := make(chan struct{})
	gateway.insertHook = func() {
		close(entered)
		<-release
	}

	done := make(chan error, 1)
	go func() {
		done <- posts.Create(context.Background(), "t", "b", nil)
	}()

	<-entered
	if err := sessions.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("Create() error = %v, want success despite mid-flight logout", err)
	}
	window := posts.Window()
	if len(window) != 1 || window[0].OwnerID != ownerID {
		t.Errorf("created post owner = %v, want the identity captured before logout", window)
	}
}
