package stores

import (
	"context"
	"time"

	"github.com/Garrette27/fullstack-blog-redux/core"
)

// PostStore mirrors one paginated window of the remote posts
// collection plus a single focused post. Reads replace the window
// wholesale; writes reconcile it in place without re-fetching, trading
// strict consistency for one round trip per intent.
type PostStore struct {
	opState

	gateway  core.PostGateway
	sessions identityReader

	window  []*core.Post
	focused *core.Post
	page    core.PageInfo
}

func NewPostStore(gateway core.PostGateway, sessions identityReader) *PostStore {
	return &PostStore{
		gateway:  gateway,
		sessions: sessions,
	}
}

// List fetches the window for page (1-based) with the given page size,
// ordered newest first. On success the previous window is replaced
// entirely - entries from an earlier page never leak into the new one -
// and the total count is overwritten.
//
// The count fetch is best-effort: if it fails the total is taken as
// zero and the list still proceeds. Only a failed slice fetch fails
// the call.
func (s *PostStore) List(ctx context.Context, page, pageSize int) error {
	if pageSize <= 0 {
		s.begin()
		return s.fail(core.ErrInvalidPageSize)
	}

	s.begin()

	total, err := s.gateway.CountPosts(ctx)
	if err != nil {
		total = 0
	}

	info := core.PageInfo{Page: page, PageSize: pageSize, Total: total}
	start, end := info.OffsetRange()

	posts, err := s.gateway.ListPosts(ctx, start, end)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = posts
	s.page = info
	s.loading = false
	return nil
}

// Get fetches one post into the focused slot, independent of the list
// window. On failure the slot keeps its previous occupant.
func (s *PostStore) Get(ctx context.Context, id string) error {
	s.begin()

	post, err := s.gateway.GetPost(ctx, id)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = post
	s.loading = false
	return nil
}

// ClearFocused empties the focused slot. Callers invoke it when
// navigating away from a single-post view; no operation does it
// implicitly.
func (s *PostStore) ClearFocused() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = nil
}

// Create inserts a new post owned by the current viewer. It fails
// closed with ErrNotAuthenticated, without touching the gateway, when
// no one is signed in.
//
// On success the new post is prepended to the window and the total
// count incremented. The prepend happens regardless of which page the
// window holds; off page 1 the window then carries one item beyond the
// nominal page size until the next list fetch. Known limitation,
// retained from the source system.
func (s *PostStore) Create(ctx context.Context, title, body string, imageURL *string) error {
	s.begin()

	ident, err := requireIdentity(s.sessions)
	if err != nil {
		return s.fail(err)
	}

	post, err := s.gateway.InsertPost(ctx, ident.ID, title, body, imageURL)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = append([]*core.Post{post}, s.window...)
	s.page.Total++
	s.loading = false
	return nil
}

// Update rewrites a post's content. The new modified timestamp is
// stamped here and written through the gateway. On success the
// matching window entry is replaced in place (silently skipped when
// the post is not in the current window) and the focused slot is
// replaced independently if its id matches.
func (s *PostStore) Update(ctx context.Context, id, title, body string, imageURL *string) error {
	s.begin()

	// Any authenticated identity will do; ownership is advisory and
	// checked at the UI level, not here.
	if _, err := requireIdentity(s.sessions); err != nil {
		return s.fail(err)
	}

	post, err := s.gateway.UpdatePost(ctx, id, title, body, imageURL, time.Now())
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.window {
		if p.ID == post.ID {
			s.window[i] = post
			break
		}
	}
	if s.focused != nil && s.focused.ID == post.ID {
		s.focused = post
	}
	s.loading = false
	return nil
}

// Delete removes a post. On success the matching window entry is
// dropped and the total count decremented - unconditionally, even when
// the id was not in the window. The count drifts until the next list
// fetch restores the authoritative value. The focused slot is cleared
// if it held the deleted post.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	s.begin()

	if _, err := requireIdentity(s.sessions); err != nil {
		return s.fail(err)
	}

	if err := s.gateway.DeletePost(ctx, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.window {
		if p.ID == id {
			s.window = append(s.window[:i], s.window[i+1:]...)
			break
		}
	}
	s.page.Total--
	if s.focused != nil && s.focused.ID == id {
		s.focused = nil
	}
	s.loading = false
	return nil
}

// Window returns a copy of the cached post window, newest first.
func (s *PostStore) Window() []*core.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*core.Post, len(s.window))
	copy(out, s.window)
	return out
}

// Focused returns the post in the focused slot, or nil.
func (s *PostStore) Focused() *core.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.focused
}

// Page returns the pagination state from the most recent list fetch,
// adjusted by writes since.
func (s *PostStore) Page() core.PageInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}
