package stores

import (
	"context"
	"errors"
	"testing"

	"github.com/Garrette27/fullstack-blog-redux/core"
)

func newPostStore(gateway *FakeGateway, ident *core.Identity) *PostStore {
	return NewPostStore(gateway, &fakeViewer{ident: ident})
}

var viewer = &core.Identity{ID: "user-1", Email: "alice@example.com"}

// Requirement: listing page P with size L replaces the window with exactly
// the items the gateway returned for that range; a later list for a
// different page never contains leftovers from P.
func TestPostStore_List_ReplacesWindow(t *testing.T) {
	gateway := NewFakeGateway()
	seedPosts(gateway, 12)
	store := newPostStore(gateway, viewer)

	if err := store.List(context.Background(), 1, 5); err != nil {
		t.Fatalf("List(page 1) error = %v", err)
	}
	page1 := store.Window()
	if len(page1) != 5 {
		t.Fatalf("page 1 window length = %d, want 5", len(page1))
	}
	if page1[0].ID != "post-12" {
		t.Errorf("page 1 first item = %s, want post-12 (newest first)", page1[0].ID)
	}

	if err := store.List(context.Background(), 2, 5); err != nil {
		t.Fatalf("List(page 2) error = %v", err)
	}
	page2 := store.Window()
	if len(page2) != 5 {
		t.Fatalf("page 2 window length = %d, want 5", len(page2))
	}
	for _, stale := range page1 {
		for _, p := range page2 {
			if p.ID == stale.ID {
				t.Errorf("page 2 window contains leftover %s from page 1", p.ID)
			}
		}
	}
	if got := store.Page().Total; got != 12 {
		t.Errorf("total = %d, want 12", got)
	}
}

// Requirement: with 47 items and page size 5 there are 10 pages, and page 10
// holds the partial tail (2 items) with no error.
func TestPostStore_List_PartialLastPage(t *testing.T) {
	gateway := NewFakeGateway()
	seedPosts(gateway, 47)
	store := newPostStore(gateway, viewer)

	if err := store.List(context.Background(), 10, 5); err != nil {
		t.Fatalf("List(page 10) error = %v", err)
	}

	if got := store.Page().TotalPages(); got != 10 {
		t.Errorf("TotalPages() = %d, want 10", got)
	}
	window := store.Window()
	if len(window) != 2 {
		t.Fatalf("window length = %d, want 2 (items 46-47)", len(window))
	}
	if window[0].ID != "post-2" || window[1].ID != "post-1" {
		t.Errorf("window = [%s %s], want [post-2 post-1]", window[0].ID, window[1].ID)
	}
	if store.Err() != "" {
		t.Errorf("Err() = %q, want empty", store.Err())
	}
}

// Requirement: a count-fetch failure is non-fatal; the list proceeds with
// total zero. Only a failed slice fetch fails the call.
func TestPostStore_List_CountFailureNonFatal(t *testing.T) {
	gateway := NewFakeGateway()
	seedPosts(gateway, 3)
	gateway.countErr = errors.New("count unavailable")
	store := newPostStore(gateway, viewer)

	if err := store.List(context.Background(), 1, 5); err != nil {
		t.Fatalf("List() error = %v, want nil", err)
	}
	if got := len(store.Window()); got != 3 {
		t.Errorf("window length = %d, want 3", got)
	}
	if got := store.Page().Total; got != 0 {
		t.Errorf("total = %d, want 0 after count failure", got)
	}
}

func TestPostStore_List_FetchFailureKeepsWindow(t *testing.T) {
	gateway := NewFakeGateway()
	seedPosts(gateway, 5)
	store := newPostStore(gateway, viewer)

	if err := store.List(context.Background(), 1, 5); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	gateway.listErr = errors.New("gateway exploded")
	if err := store.List(context.Background(), 2, 5); err == nil {
		t.Fatal("List() error = nil, want failure")
	}

	if got := len(store.Window()); got != 5 {
		t.Errorf("window length = %d, want previous 5 after failure", got)
	}
	if store.Err() != "gateway exploded" {
		t.Errorf("Err() = %q, want gateway message verbatim", store.Err())
	}
	if store.Loading() {
		t.Error("Loading() = true after failed operation")
	}
}

// Requirement: after a successful Create the window grows by one, the new
// post sits at index 0 regardless of prior contents, and the total count
// increases by exactly 1.
func TestPostStore_Create_PrependsAndCounts(t *testing.T) {
	gateway := NewFakeGateway()
	seedPosts(gateway, 47)
	store := newPostStore(gateway, viewer)

	if err := store.List(context.Background(), 1, 5); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	before := store.Window()
	if len(before) != 5 || store.Page().Total != 47 {
		t.Fatalf("precondition: window %d/total %d, want 5/47", len(before), store.Page().Total)
	}

	if err := store.Create(context.Background(), "A", "B", nil); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	after := store.Window()
	if len(after) != len(before)+1 {
		t.Errorf("window length = %d, want %d", len(after), len(before)+1)
	}
	if after[0].Title != "A" || after[0].Body != "B" {
		t.Errorf("window[0] = %q/%q, want the created post", after[0].Title, after[0].Body)
	}
	if after[0].OwnerID != viewer.ID {
		t.Errorf("created owner = %s, want viewer %s", after[0].OwnerID, viewer.ID)
	}
	if got := store.Page().Total; got != 48 {
		t.Errorf("total = %d, want 48", got)
	}
}

// Requirement: the prepend happens even when the window is not on page 1;
// the window then exceeds the nominal page size. Deliberate approximation,
// not to be corrected by a re-fetch.
func TestPostStore_Create_PrependsOffPageOne(t *testing.T) {
	gateway := NewFakeGateway()
	seedPosts(gateway, 12)
	store := newPostStore(gateway, viewer)

	if err := store.List(context.Background(), 2, 5); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	listCalls := gateway.Calls("ListPosts")

	if err := store.Create(context.Background(), "new", "body", nil); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	window := store.Window()
	if len(window) != 6 {
		t.Errorf("window length = %d, want 6 (prepend grows past the page size)", len(window))
	}
	if window[0].Title != "new" {
		t.Errorf("window[0] = %q, want the created post", window[0].Title)
	}
	if gateway.Calls("ListPosts") != listCalls {
		t.Error("Create must not re-fetch the list")
	}
}

// Requirement: deleting an id present in the window removes it and
// decrements the total; deleting an id absent from the window still
// decrements the total. The second half is a documented quirk.
func TestPostStore_Delete_CountBookkeeping(t *testing.T) {
	gateway := NewFakeGateway()
	seedPosts(gateway, 12)
	store := newPostStore(gateway, viewer)

	if err := store.List(context.Background(), 1, 5); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	// Present in the window.
	if err := store.Delete(context.Background(), "post-12"); err != nil {
		t.Fatalf("Delete(present) error = %v", err)
	}
	for _, p := range store.Window() {
		if p.ID == "post-12" {
			t.Error("deleted post still in window")
		}
	}
	if got := store.Page().Total; got != 11 {
		t.Errorf("total = %d, want 11", got)
	}

	// Absent from the window (it lives on page 2). The count still drops.
	if err := store.Delete(context.Background(), "post-3"); err != nil {
		t.Fatalf("Delete(absent) error = %v", err)
	}
	if got := len(store.Window()); got != 4 {
		t.Errorf("window length = %d, want 4 (unchanged by absent delete)", got)
	}
	if got := store.Page().Total; got != 10 {
		t.Errorf("total = %d, want 10 after absent delete", got)
	}
}

func TestPostStore_Delete_ClearsMatchingFocused(t *testing.T) {
	gateway := NewFakeGateway()
	seedPosts(gateway, 3)
	store := newPostStore(gateway, viewer)

	if err := store.Get(context.Background(), "post-2"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if err := store.Delete(context.Background(), "post-2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if store.Focused() != nil {
		t.Error("focused slot not cleared after deleting the focused post")
	}
}

// Requirement: updating a post outside the current window leaves the window
// untouched but refreshes a matching focused slot.
func TestPostStore_Update_OutsideWindowRefreshesFocused(t *testing.T) {
	gateway := NewFakeGateway()
	seedPosts(gateway, 12)
	store := newPostStore(gateway, viewer)

	if err := store.List(context.Background(), 1, 5); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if err := store.Get(context.Background(), "post-3"); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	before := store.Window()

	if err := store.Update(context.Background(), "post-3", "edited", "edited body", nil); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	after := store.Window()
	if len(after) != len(before) {
		t.Fatalf("window length changed: %d -> %d", len(before), len(after))
	}
	for i := range after {
		if after[i].ID != before[i].ID {
			t.Errorf("window order changed at %d: %s -> %s", i, before[i].ID, after[i].ID)
		}
	}
	focused := store.Focused()
	if focused == nil || focused.Title != "edited" {
		t.Error("focused slot not refreshed by matching update")
	}
}

func TestPostStore_Update_InWindowReplacesInPlace(t *testing.T) {
	gateway := NewFakeGateway()
	seedPosts(gateway, 5)
	store := newPostStore(gateway, viewer)

	if err := store.List(context.Background(), 1, 5); err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if err := store.Update(context.Background(), "post-4", "edited", "body", nil); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	window := store.Window()
	if window[1].ID != "post-4" || window[1].Title != "edited" {
		t.Errorf("window[1] = %s/%q, want post-4 replaced in place", window[1].ID, window[1].Title)
	}
}

// Requirement: writes with no authenticated identity never invoke the
// gateway and resolve with the authorization error.
func TestPostStore_Writes_RequireIdentity(t *testing.T) {
	tests := []struct {
		name string
		op   func(*PostStore) error
		call string
	}{
		{
			name: "create",
			op: func(s *PostStore) error {
				return s.Create(context.Background(), "t", "b", nil)
			},
			call: "InsertPost",
		},
		{
			name: "update",
			op: func(s *PostStore) error {
				return s.Update(context.Background(), "post-1", "t", "b", nil)
			},
			call: "UpdatePost",
		},
		{
			name: "delete",
			op: func(s *PostStore) error {
				return s.Delete(context.Background(), "post-1")
			},
			call: "DeletePost",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			gateway := NewFakeGateway()
			seedPosts(gateway, 3)
			store := newPostStore(gateway, nil) // signed out

			err := test.op(store)
			if !errors.Is(err, core.ErrNotAuthenticated) {
				t.Fatalf("error = %v, want ErrNotAuthenticated", err)
			}
			if gateway.Calls(test.call) != 0 {
				t.Errorf("%s reached the gateway despite missing identity", test.call)
			}
			if store.Err() != core.ErrNotAuthenticated.Error() {
				t.Errorf("Err() = %q, want authorization message", store.Err())
			}
		})
	}
}

// Requirement: the error field is retained until the next operation starts,
// which clears it; an explicit clear intent also drops it.
func TestPostStore_ErrorLifecycle(t *testing.T) {
	gateway := NewFakeGateway()
	gateway.listErr = errors.New("boom")
	store := newPostStore(gateway, viewer)

	if err := store.List(context.Background(), 1, 5); err == nil {
		t.Fatal("List() error = nil, want failure")
	}
	if store.Err() != "boom" {
		t.Fatalf("Err() = %q, want boom", store.Err())
	}

	gen := store.Generation()
	gateway.listErr = nil
	if err := store.List(context.Background(), 1, 5); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if store.Err() != "" {
		t.Errorf("Err() = %q, want cleared by next operation", store.Err())
	}
	if store.Generation() != gen+1 {
		t.Errorf("Generation() = %d, want %d", store.Generation(), gen+1)
	}

	gateway.listErr = errors.New("boom again")
	_ = store.List(context.Background(), 1, 5)
	store.ClearError()
	if store.Err() != "" {
		t.Error("ClearError() did not drop the message")
	}
}

// Requirement: two concurrent lists may resolve out of order; the final
// window and total belong to whichever resolved last. Accepted race.
func TestPostStore_ConcurrentLists_LastWriterWins(t *testing.T) {
	gateway := NewFakeGateway()
	seedPosts(gateway, 10)

	release1 := make(chan struct{})
	release2 := make(chan struct{})
	gateway.listHook = func(offsetStart, offsetEnd int) ([]*core.Post, error) {
		if offsetStart == 0 {
			<-release1 // page 1 resolves second
		} else {
			<-release2
		}
		gateway.mu.Lock()
		defer gateway.mu.Unlock()
		return slicePosts(gateway.posts, offsetStart, offsetEnd), nil
	}

	store := newPostStore(gateway, viewer)

	done1 := make(chan error, 1)
	done2 := make(chan error, 1)
	go func() { done1 <- store.List(context.Background(), 1, 5) }()
	go func() { done2 <- store.List(context.Background(), 2, 5) }()

	close(release2)
	if err := <-done2; err != nil {
		t.Fatalf("List(page 2) error = %v", err)
	}
	close(release1)
	if err := <-done1; err != nil {
		t.Fatalf("List(page 1) error = %v", err)
	}

	// Page 1 completed last, so its window and page info stick.
	window := store.Window()
	if len(window) == 0 || window[0].ID != "post-10" {
		t.Errorf("final window head = %v, want post-10 from the last resolved list", window)
	}
	if got := store.Page().Page; got != 1 {
		t.Errorf("final page = %d, want 1 (last writer)", got)
	}
}
