// Package client implements the browser-equivalent view state of the forum:
// session identity, the active category filter, the cached thread list, the
// open thread detail, and the write paths (compose, reply, vote). The remote
// store is always ground truth: every mutation is followed by a re-fetch of
// the affected view slice, never an optimistic local patch.
package client

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/obrolin/forum/internal/model"
)

// Auth is the slice of the hosted service's authentication surface the
// client depends on.
type Auth interface {
	GetSession(ctx context.Context) (*model.Session, error)
	SignUp(ctx context.Context, name, email, password string) error
	SignInWithPassword(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
	// Subscribe registers a session-change callback; the returned func
	// cancels the subscription.
	Subscribe(fn func(*model.Session)) func()
}

// Store is the slice of the hosted service's record access the client
// depends on. Ordering is the store's concern: threads arrive newest first,
// replies oldest first, both joined with author names.
type Store interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	ListThreads(ctx context.Context, category string) ([]model.Thread, error)
	GetThread(ctx context.Context, id uuid.UUID) (*model.Thread, error)
	CreateThread(ctx context.Context, t *model.Thread) error
	ListReplies(ctx context.Context, threadID uuid.UUID) ([]model.Reply, error)
	CreateReply(ctx context.Context, r *model.Reply) error
	SetVotes(ctx context.Context, kind model.VoteKind, id uuid.UUID, votes int64) error
}
