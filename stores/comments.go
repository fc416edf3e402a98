package stores

import (
	"context"
	"time"

	"github.com/Garrette27/fullstack-blog-redux/core"
)

// CommentStore mirrors the comment list of one focused post, newest
// first. It follows the same protocol as PostStore but carries no
// pagination and no single-item slot. The caller owns the scope: when
// the focused post changes, ClearAll must run or comments from the
// previous post stay visible.
type CommentStore struct {
	opState

	gateway  core.CommentGateway
	sessions identityReader

	comments []*core.Comment
}

func NewCommentStore(gateway core.CommentGateway, sessions identityReader) *CommentStore {
	return &CommentStore{
		gateway:  gateway,
		sessions: sessions,
	}
}

// List replaces the whole collection with the comments of postID.
func (s *CommentStore) List(ctx context.Context, postID string) error {
	s.begin()

	comments, err := s.gateway.ListComments(ctx, postID)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = comments
	s.loading = false
	return nil
}

// Create inserts a comment under postID, owned by the current viewer.
// Same authentication precondition as PostStore.Create: no identity,
// no gateway call. The new comment is prepended on success.
func (s *CommentStore) Create(ctx context.Context, postID, body string, attachmentURL *string) error {
	s.begin()

	ident, err := requireIdentity(s.sessions)
	if err != nil {
		return s.fail(err)
	}

	comment, err := s.gateway.InsertComment(ctx, postID, ident.ID, body, attachmentURL)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append([]*core.Comment{comment}, s.comments...)
	s.loading = false
	return nil
}

// Update rewrites a comment in place by id. A comment missing from the
// collection is a silent no-op, not an error.
func (s *CommentStore) Update(ctx context.Context, id, body string, attachmentURL *string) error {
	s.begin()

	// Same gate as Update on posts: authenticated, not necessarily
	// the owner.
	if _, err := requireIdentity(s.sessions); err != nil {
		return s.fail(err)
	}

	comment, err := s.gateway.UpdateComment(ctx, id, body, attachmentURL, time.Now())
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.comments {
		if c.ID == comment.ID {
			s.comments[i] = comment
			break
		}
	}
	s.loading = false
	return nil
}

// Delete removes a comment by id. There is no counter to maintain;
// the collection length is the count.
func (s *CommentStore) Delete(ctx context.Context, id string) error {
	s.begin()

	if _, err := requireIdentity(s.sessions); err != nil {
		return s.fail(err)
	}

	if err := s.gateway.DeleteComment(ctx, id); err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.comments {
		if c.ID == id {
			s.comments = append(s.comments[:i], s.comments[i+1:]...)
			break
		}
	}
	s.loading = false
	return nil
}

// ClearAll empties the collection without a gateway call. It does not
// touch the loading flag; a clear during an in-flight list does not
// cancel it, and the late result will still land.
func (s *CommentStore) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = nil
}

// Comments returns a copy of the cached collection, newest first.
func (s *CommentStore) Comments() []*core.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*core.Comment, len(s.comments))
	copy(out, s.comments)
	return out
}
