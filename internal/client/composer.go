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

// Draft is the composer's held input state.
type Draft struct {
	Title    string
	Body     string
	Category string
	MediaURL string
}

// Composer creates new threads on behalf of the current viewer. The draft is
// cleared only on a successful insert; any failure leaves it untouched so
// the user never loses typed input.
type Composer struct {
	store   Store
	session *SessionManager
	threads *ThreadStore
	filter  *CategoryFilter
	log     *zap.Logger

	mu    sync.Mutex
	draft Draft
}

// NewComposer constructs a composer.
func NewComposer(store Store, session *SessionManager, threads *ThreadStore,
	filter *CategoryFilter, log *zap.Logger,
) *Composer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Composer{store: store, session: session, threads: threads, filter: filter, log: log}
}

// SetDraft replaces the held draft.
func (c *Composer) SetDraft(d Draft) {
	c.mu.Lock()
	c.draft = d
	c.mu.Unlock()
}

// Draft returns the held draft.
func (c *Composer) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Submit validates the draft and inserts it as a new thread by the current
// viewer. On success the draft is cleared and the thread list reloaded for
// the active filter; no remote call is made for invalid input.
func (c *Composer) Submit(ctx context.Context) error {
	viewer := c.session.Viewer()
	if viewer == nil {
		return errs.ErrSignInRequired
	}

	c.mu.Lock()
	d := c.draft
	c.mu.Unlock()

	title := strings.TrimSpace(d.Title)
	body := strings.TrimSpace(d.Body)
	if title == "" || body == "" {
		return errors.New("title and body are required")
	}
	if !model.ValidCategory(d.Category) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidCategory, d.Category)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}
	t := &model.Thread{
		ID:       id,
		Title:    title,
		Body:     body,
		Category: d.Category,
		MediaURL: strings.TrimSpace(d.MediaURL),
		AuthorID: viewer.ID,
	}
	if err := c.store.CreateThread(ctx, t); err != nil {
		return fmt.Errorf("post thread: %w", err)
	}

	c.mu.Lock()
	c.draft = Draft{}
	c.mu.Unlock()

	if _, err := c.threads.Load(ctx, c.filter.Active()); err != nil {
		c.log.Warn("thread list refresh after post failed", zap.Error(err))
	}
	return nil
}
