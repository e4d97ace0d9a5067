package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/obrolin/forum/internal/errs"
	"github.com/obrolin/forum/internal/model"
)

// ThreadDetail holds the currently open thread and its ordered reply list.
// In-flight fetches are never cancelled; instead every completion is tagged
// with the generation it was issued for and discarded if the view has moved
// on, so a slow Open can never overwrite a newer one.
type ThreadDetail struct {
	store   Store
	session *SessionManager
	log     *zap.Logger

	mu         sync.Mutex
	gen        uint64
	thread     *model.Thread
	replies    []model.Reply
	repliesErr error
}

// NewThreadDetail constructs a detail view.
func NewThreadDetail(store Store, session *SessionManager, log *zap.Logger) *ThreadDetail {
	if log == nil {
		log = zap.NewNop()
	}
	return &ThreadDetail{store: store, session: session, log: log}
}

// Open fetches the thread and its replies and makes them the current view.
// A thread-fetch failure is returned and leaves any already-open view
// untouched. A reply-fetch failure is scoped: the thread is still shown and
// the error is exposed via RepliesError, distinct from the empty-list state.
func (d *ThreadDetail) Open(ctx context.Context, threadID uuid.UUID) error {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.mu.Unlock()

	t, err := d.store.GetThread(ctx, threadID)
	if err != nil {
		return fmt.Errorf("open thread: %w", err)
	}

	replies, repliesErr := d.store.ListReplies(ctx, threadID)
	if repliesErr == nil && replies == nil {
		replies = []model.Reply{}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gen != gen {
		// view changed while we were fetching; drop the stale result
		d.log.Debug("discarding stale thread fetch", zap.String("thread_id", threadID.String()))
		return nil
	}
	d.thread = t
	d.replies = replies
	d.repliesErr = repliesErr
	return nil
}

// SubmitReply inserts a reply by the current viewer and re-opens the thread
// so the view reflects the authoritative reply list. There is no optimistic
// local insert.
func (d *ThreadDetail) SubmitReply(ctx context.Context, threadID uuid.UUID, body string) error {
	viewer := d.session.Viewer()
	if viewer == nil {
		return errs.ErrSignInRequired
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return errors.New("reply body is required")
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	r := &model.Reply{ID: id, ThreadID: threadID, Body: body, AuthorID: viewer.ID}
	if err := d.store.CreateReply(ctx, r); err != nil {
		return fmt.Errorf("submit reply: %w", err)
	}
	return d.Open(ctx, threadID)
}

// Close discards the detail view state. Any in-flight Open for the previous
// thread completes into the void.
func (d *ThreadDetail) Close() {
	d.mu.Lock()
	d.gen++
	d.thread = nil
	d.replies = nil
	d.repliesErr = nil
	d.mu.Unlock()
}

// Thread returns the open thread, or nil when the view is closed.
func (d *ThreadDetail) Thread() *model.Thread {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.thread == nil {
		return nil
	}
	cp := *d.thread
	return &cp
}

// Replies returns the open thread's replies oldest first. A non-nil empty
// slice means the thread truly has no replies; nil means the view is closed
// or the reply fetch failed (see RepliesError).
func (d *ThreadDetail) Replies() []model.Reply {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.replies == nil {
		return nil
	}
	return append([]model.Reply(nil), d.replies...)
}

// RepliesError returns the scoped reply-fetch error, if any.
func (d *ThreadDetail) RepliesError() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.repliesErr
}
