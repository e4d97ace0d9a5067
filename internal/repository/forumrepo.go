package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/obrolin/forum/internal/model"
)

// ThreadRepository provides access to threads with denormalized author names.
type ThreadRepository interface {
	// Create inserts a new thread with zero votes.
	Create(ctx context.Context, t *model.Thread) error

	// GetByID returns a single thread joined with its author's name.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Thread, error)

	// List returns threads ordered by creation time descending, joined with
	// author names. An empty category means no filter.
	List(ctx context.Context, category string) ([]model.Thread, error)

	// SetVotes overwrites the votes counter with the provided value.
	// Deliberately not an increment: callers supply their last observed
	// count plus a delta, and concurrent writers can overwrite each other.
	SetVotes(ctx context.Context, id uuid.UUID, votes int64) error
}

// ReplyRepository provides access to replies within a thread.
type ReplyRepository interface {
	// Create inserts a new reply with zero votes.
	Create(ctx context.Context, r *model.Reply) error

	// ListByThread returns replies ordered by creation time ascending,
	// joined with author names.
	ListByThread(ctx context.Context, threadID uuid.UUID) ([]model.Reply, error)

	// SetVotes overwrites the votes counter (same semantics as threads).
	SetVotes(ctx context.Context, id uuid.UUID, votes int64) error
}
