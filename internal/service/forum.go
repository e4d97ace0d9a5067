package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/obrolin/forum/internal/errs"
	"github.com/obrolin/forum/internal/model"
	"github.com/obrolin/forum/internal/repository"
)

// ForumService defines record access over profiles, threads and replies.
type ForumService interface {
	// GetProfile returns a public profile by ID.
	GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error)
	// ListThreads returns threads newest first. category may be a configured
	// category or the "all" sentinel (or empty, treated as all).
	ListThreads(ctx context.Context, category string) ([]model.Thread, error)
	// GetThread returns a single thread with its author's name.
	GetThread(ctx context.Context, id uuid.UUID) (*model.Thread, error)
	// CreateThread validates and inserts a new thread.
	CreateThread(ctx context.Context, t *model.Thread) error
	// ListReplies returns a thread's replies oldest first.
	ListReplies(ctx context.Context, threadID uuid.UUID) ([]model.Reply, error)
	// CreateReply validates and inserts a new reply.
	CreateReply(ctx context.Context, r *model.Reply) error
	// SetVotes overwrites the votes counter of a thread or reply.
	SetVotes(ctx context.Context, kind model.VoteKind, id uuid.UUID, votes int64) error
}

type ForumServiceImpl struct {
	threads repository.ThreadRepository
	replies repository.ReplyRepository
	users   repository.ProfileRepository
	log     *zap.Logger
}

// NewForumService constructs ForumService with required repositories.
func NewForumService(threads repository.ThreadRepository, replies repository.ReplyRepository,
	profiles repository.ProfileRepository, log *zap.Logger,
) *ForumServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	return &ForumServiceImpl{threads: threads, replies: replies, users: profiles, log: log}
}

// GetProfile returns a public profile by ID.
func (s *ForumServiceImpl) GetProfile(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	if id == uuid.Nil {
		return nil, errors.New("validation: empty profile id")
	}
	return s.users.GetByID(ctx, id)
}

// ListThreads returns threads newest first for the given filter.
func (s *ForumServiceImpl) ListThreads(ctx context.Context, category string) ([]model.Thread, error) {
	switch {
	case category == "" || category == model.CategoryAll:
		return s.threads.List(ctx, "")
	case model.ValidCategory(category):
		return s.threads.List(ctx, category)
	default:
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidCategory, category)
	}
}

// GetThread returns a single thread by ID.
func (s *ForumServiceImpl) GetThread(ctx context.Context, id uuid.UUID) (*model.Thread, error) {
	if id == uuid.Nil {
		return nil, errors.New("validation: empty thread id")
	}
	return s.threads.GetByID(ctx, id)
}

// CreateThread validates and inserts a new thread. The caller owns the ID so
// a retried insert stays idempotent.
func (s *ForumServiceImpl) CreateThread(ctx context.Context, t *model.Thread) error {
	if t == nil || t.ID == uuid.Nil {
		return errors.New("validation: empty thread id")
	}
	if t.AuthorID == uuid.Nil {
		return errors.New("validation: empty author id")
	}
	if t.Title == "" || t.Body == "" {
		return errors.New("validation: title and body are required")
	}
	if !model.ValidCategory(t.Category) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidCategory, t.Category)
	}
	if err := s.threads.Create(ctx, t); err != nil {
		return err
	}
	s.log.Info("thread created",
		zap.String("thread_id", t.ID.String()),
		zap.String("category", t.Category),
	)
	return nil
}

// ListReplies returns a thread's replies oldest first.
func (s *ForumServiceImpl) ListReplies(ctx context.Context, threadID uuid.UUID) ([]model.Reply, error) {
	if threadID == uuid.Nil {
		return nil, errors.New("validation: empty thread id")
	}
	return s.replies.ListByThread(ctx, threadID)
}

// CreateReply validates and inserts a new reply.
func (s *ForumServiceImpl) CreateReply(ctx context.Context, r *model.Reply) error {
	if r == nil || r.ID == uuid.Nil {
		return errors.New("validation: empty reply id")
	}
	if r.ThreadID == uuid.Nil || r.AuthorID == uuid.Nil {
		return errors.New("validation: empty thread/author id")
	}
	if r.Body == "" {
		return errors.New("validation: body is required")
	}
	if err := s.replies.Create(ctx, r); err != nil {
		return err
	}
	s.log.Info("reply created",
		zap.String("reply_id", r.ID.String()),
		zap.String("thread_id", r.ThreadID.String()),
	)
	return nil
}

// SetVotes overwrites the votes counter of a thread or reply. This is a plain
// field update with the caller's computed value; concurrent voters who read
// the same base count overwrite each other and the later write wins.
func (s *ForumServiceImpl) SetVotes(ctx context.Context, kind model.VoteKind, id uuid.UUID, votes int64) error {
	if id == uuid.Nil {
		return errors.New("validation: empty id")
	}
	var err error
	switch kind {
	case model.VoteThread:
		err = s.threads.SetVotes(ctx, id, votes)
	case model.VoteReply:
		err = s.replies.SetVotes(ctx, id, votes)
	default:
		return fmt.Errorf("validation: unknown vote kind %q", kind)
	}
	if err != nil {
		return err
	}
	s.log.Info("votes written",
		zap.String("kind", string(kind)),
		zap.String("id", id.String()),
		zap.Int64("votes", votes),
	)
	return nil
}
