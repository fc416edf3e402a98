package stores

import (
	"sync"

	"github.com/Garrette27/fullstack-blog-redux/core"
)

// opState is the lifecycle bookkeeping every store shares: one loading
// flag, the last error message, and a generation counter. Every
// operation follows the same protocol - begin clears the previous
// error, raises loading and bumps the generation; resolution (fail, or
// the success-path reconciliation) lowers loading again. There is no
// mutual exclusion between operations: when
// two overlap, the last one to complete wins the flag and the error
// field.
//
// The mutex also guards the owning store's collections. It is held
// only around state transitions, never across a gateway call.
type opState struct {
	mu         sync.RWMutex
	loading    bool
	lastErr    string
	generation uint64
}

func (s *opState) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.lastErr = ""
	s.generation++
}

// fail records err verbatim as the user-visible error message and
// resolves the operation. It returns err so call sites can
// `return s.fail(err)`.
func (s *opState) fail(err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.lastErr = err.Error()
	return err
}

// Loading reports whether an operation is in flight. With overlapping
// operations this is last-writer-wins, which callers are expected to
// tolerate (intents are debounced upstream).
func (s *opState) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last failure message, or "" if the most recent
// operation succeeded. It is retained until the next operation starts
// or ClearError is called.
func (s *opState) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearError drops the retained error message without starting an
// operation.
func (s *opState) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

// Generation increments every time an operation starts. Callers that
// care about staleness snapshot it before issuing an intent and
// compare afterwards; the store itself never discards a result.
func (s *opState) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// identityReader is the slice of SessionStore the entity stores need:
// read-only access to the current viewer. Mutations that require
// authorship capture the identity once, before the gateway call, and
// never re-check afterwards.
type identityReader interface {
	Identity() *core.Identity
}

// requireIdentity is the authorization gate shared by every create
// intent: fail closed with ErrNotAuthenticated before the gateway is
// ever consulted.
func requireIdentity(r identityReader) (*core.Identity, error) {
	ident := r.Identity()
	if ident == nil {
		return nil, core.ErrNotAuthenticated
	}
	return ident, nil
}
