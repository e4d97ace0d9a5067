package client

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/obrolin/forum/internal/model"
)

// ThreadStore caches the last successfully fetched thread list for the
// active filter. It never patches the cache in place: every mutation
// elsewhere triggers a fresh Load, so the cache only ever reflects an
// authoritative read.
type ThreadStore struct {
	store Store
	log   *zap.Logger

	mu      sync.Mutex
	threads []model.Thread
}

// NewThreadStore constructs a thread store over the remote store.
func NewThreadStore(store Store, log *zap.Logger) *ThreadStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &ThreadStore{store: store, log: log}
}

// Load fetches the ordered thread list for the category (newest first) and
// replaces the cache on success. An empty result is a valid state, distinct
// from an error; on error the previous cache is kept as a stale-but-valid
// view and the error is returned for the UI to surface.
func (s *ThreadStore) Load(ctx context.Context, category string) ([]model.Thread, error) {
	threads, err := s.store.ListThreads(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("load threads: %w", err)
	}
	if threads == nil {
		threads = []model.Thread{}
	}

	s.mu.Lock()
	s.threads = threads
	s.mu.Unlock()

	s.log.Debug("thread list loaded",
		zap.String("category", category),
		zap.Int("count", len(threads)),
	)
	return append([]model.Thread(nil), threads...), nil
}

// Threads returns a copy of the last successful fetch, nil before the first.
func (s *ThreadStore) Threads() []model.Thread {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.threads == nil {
		return nil
	}
	return append([]model.Thread(nil), s.threads...)
}
