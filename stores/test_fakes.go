package stores

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Garrette27/fullstack-blog-redux/core"
)

// FakeGateway is a test-only in-memory implementation of core.Gateway.
// Behavior is injected through error fields and optional hooks; call
// counters let tests assert that an operation never reached the
// gateway.
type FakeGateway struct {
	mu sync.Mutex

	// auth
	signUpErr  error
	signInErr  error
	signOutErr error
	sessionErr error
	session    *core.SessionData // result of CurrentSession

	// posts
	count      int
	countErr   error
	posts      []*core.Post // newest first, the full remote collection
	listErr    error
	listHook   func(offsetStart, offsetEnd int) ([]*core.Post, error)
	getErr     error
	insertErr  error
	insertHook func() // runs unlocked before an insert lands
	updateErr  error
	deleteErr  error

	// comments
	comments       []*core.Comment // newest first
	commentListErr error

	seq   int
	calls map[string]int
}

var _ core.Gateway = (*FakeGateway)(nil)

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{calls: make(map[string]int)}
}

func (f *FakeGateway) record(op string) {
	f.calls[op]++
}

// Calls returns how often the named gateway operation was invoked.
func (f *FakeGateway) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FakeGateway) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

// ============================================
// AUTH
// ============================================

func (f *FakeGateway) SignUp(ctx context.Context, email, password string) (*core.SessionData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SignUp")
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &core.SessionData{
		Identity:  &core.Identity{ID: f.nextID("user"), Email: email},
		Token:     f.nextID("token"),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}, nil
}

func (f *FakeGateway) SignIn(ctx context.Context, email, password string) (*core.SessionData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SignIn")
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &core.SessionData{
		Identity:  &core.Identity{ID: f.nextID("user"), Email: email},
		Token:     f.nextID("token"),
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}, nil
}

func (f *FakeGateway) SignOut(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SignOut")
	return f.signOutErr
}

func (f *FakeGateway) CurrentSession(ctx context.Context, token string) (*core.SessionData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CurrentSession")
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	if f.session != nil {
		return f.session, nil
	}
	return &core.SessionData{}, nil
}

// ============================================
// POSTS
// ============================================

func (f *FakeGateway) CountPosts(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CountPosts")
	if f.countErr != nil {
		return 0, f.countErr
	}
	if f.count > 0 {
		return f.count, nil
	}
	return len(f.posts), nil
}

func (f *FakeGateway) ListPosts(ctx context.Context, offsetStart, offsetEnd int) ([]*core.Post, error) {
	f.mu.Lock()
	hook := f.listHook
	f.record("ListPosts")
	if f.listErr != nil {
		defer f.mu.Unlock()
		return nil, f.listErr
	}
	f.mu.Unlock()

	// Hooks run unlocked so tests can block in them to model slow
	// gateway calls.
	if hook != nil {
		return hook(offsetStart, offsetEnd)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return slicePosts(f.posts, offsetStart, offsetEnd), nil
}

func slicePosts(posts []*core.Post, offsetStart, offsetEnd int) []*core.Post {
	if offsetStart >= len(posts) {
		return []*core.Post{}
	}
	if offsetEnd >= len(posts) {
		offsetEnd = len(posts) - 1
	}
	out := make([]*core.Post, 0, offsetEnd-offsetStart+1)
	for _, p := range posts[offsetStart : offsetEnd+1] {
		out = append(out, p)
	}
	return out
}

func (f *FakeGateway) GetPost(ctx context.Context, id string) (*core.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GetPost")
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, p := range f.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, core.ErrPostNotFound
}

func (f *FakeGateway) InsertPost(ctx context.Context, ownerID, title, body string, imageURL *string) (*core.Post, error) {
	f.mu.Lock()
	hook := f.insertHook
	f.mu.Unlock()
	if hook != nil {
		hook()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertPost")
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	now := time.Now()
	post := &core.Post{
		ID:        f.nextID("post"),
		OwnerID:   ownerID,
		Title:     title,
		Body:      body,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.posts = append([]*core.Post{post}, f.posts...)
	return post, nil
}

func (f *FakeGateway) UpdatePost(ctx context.Context, id, title, body string, imageURL *string, modifiedAt time.Time) (*core.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdatePost")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i, p := range f.posts {
		if p.ID == id {
			updated := *p
			updated.Title = title
			updated.Body = body
			updated.ImageURL = imageURL
			updated.UpdatedAt = modifiedAt
			f.posts[i] = &updated
			return &updated, nil
		}
	}
	return nil, core.ErrPostNotFound
}

func (f *FakeGateway) DeletePost(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeletePost")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, p := range f.posts {
		if p.ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return nil
}

// ============================================
// COMMENTS
// ============================================

func (f *FakeGateway) ListComments(ctx context.Context, postID string) ([]*core.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListComments")
	if f.commentListErr != nil {
		return nil, f.commentListErr
	}
	out := []*core.Comment{}
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *FakeGateway) InsertComment(ctx context.Context, postID, ownerID, body string, attachmentURL *string) (*core.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("InsertComment")
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	now := time.Now()
	comment := &core.Comment{
		ID:            f.nextID("comment"),
		PostID:        postID,
		OwnerID:       ownerID,
		Body:          body,
		AttachmentURL: attachmentURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	f.comments = append([]*core.Comment{comment}, f.comments...)
	return comment, nil
}

func (f *FakeGateway) UpdateComment(ctx context.Context, id, body string, attachmentURL *string, modifiedAt time.Time) (*core.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateComment")
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i, c := range f.comments {
		if c.ID == id {
			updated := *c
			updated.Body = body
			updated.AttachmentURL = attachmentURL
			updated.UpdatedAt = modifiedAt
			f.comments[i] = &updated
			return &updated, nil
		}
	}
	return nil, core.ErrCommentNotFound
}

func (f *FakeGateway) DeleteComment(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteComment")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, c := range f.comments {
		if c.ID == id {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

// ============================================
// BLOB
// ============================================

func (f *FakeGateway) UploadBlob(ctx context.Context, path string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UploadBlob")
	return "/blobs/" + path, nil
}

// fakeViewer is a fixed identityReader for entity store tests.
type fakeViewer struct {
	ident *core.Identity
}

func (f *fakeViewer) Identity() *core.Identity { return f.ident }

// seedPosts fills the fake's remote collection with n posts, newest
// first (post-n down to post-1).
func seedPosts(f *FakeGateway, n int) {
	base := time.Now().Add(-time.Duration(n) * time.Minute)
	for i := 1; i <= n; i++ {
		ts := base.Add(time.Duration(i) * time.Minute)
		f.posts = append([]*core.Post{{
			ID:        fmt.Sprintf("post-%d", i),
			OwnerID:   "user-1",
			Title:     fmt.Sprintf("title %d", i),
			Body:      fmt.Sprintf("body %d", i),
			CreatedAt: ts,
			UpdatedAt: ts,
		}}, f.posts...)
	}
}
