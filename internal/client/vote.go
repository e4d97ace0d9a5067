package client

import (
	"context"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/obrolin/forum/internal/errs"
	"github.com/obrolin/forum/internal/model"
)

// VoteCoordinator applies up/down votes against a thread or reply. The write
// is a read-modify-write using the caller's last observed count, not an
// atomic increment: two voters who both observed the same count race, and
// the later write wins, silently losing one delta. That matches the store's
// documented semantics and is preserved here on purpose.
type VoteCoordinator struct {
	store   Store
	session *SessionManager
	threads *ThreadStore
	filter  *CategoryFilter
	log     *zap.Logger
}

// NewVoteCoordinator constructs a vote coordinator.
func NewVoteCoordinator(store Store, session *SessionManager, threads *ThreadStore,
	filter *CategoryFilter, log *zap.Logger,
) *VoteCoordinator {
	if log == nil {
		log = zap.NewNop()
	}
	return &VoteCoordinator{store: store, session: session, threads: threads, filter: filter, log: log}
}

// Vote writes observed+direction as the new vote count and reloads the
// thread list for the active filter. An unauthenticated viewer gets
// ErrSignInRequired before any remote call. The open detail view is not
// refreshed here; only the list is.
func (v *VoteCoordinator) Vote(ctx context.Context, kind model.VoteKind, id uuid.UUID, observed int64, direction int) error {
	if direction != 1 && direction != -1 {
		return fmt.Errorf("direction must be +1 or -1, got %d", direction)
	}
	if v.session.Viewer() == nil {
		return errs.ErrSignInRequired
	}

	if err := v.store.SetVotes(ctx, kind, id, observed+int64(direction)); err != nil {
		return fmt.Errorf("vote: %w", err)
	}

	// refresh the visible list from ground truth; a failed refresh leaves
	// the previous (now stale) list renderable
	if _, err := v.threads.Load(ctx, v.filter.Active()); err != nil {
		v.log.Warn("thread list refresh after vote failed", zap.Error(err))
	}
	return nil
}
