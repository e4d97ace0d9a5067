package postgres

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/obrolin/forum/internal/errs"
	"github.com/obrolin/forum/internal/model"
)

// ReplyRepo implements ReplyRepository using PostgreSQL.
type ReplyRepo struct{ db *DB }

// NewReplyRepo constructs a reply repository.
func NewReplyRepo(db *DB) *ReplyRepo { return &ReplyRepo{db: db} }

// Create inserts a new reply with zero votes.
func (r *ReplyRepo) Create(ctx context.Context, rp *model.Reply) error {
	const q = `
INSERT INTO replies (id, thread_id, body, author_id, votes)
VALUES ($1, $2, $3, $4, 0)`
	_, err := r.db.Pool.Exec(ctx, q, rp.ID, rp.ThreadID, rp.Body, rp.AuthorID)
	switch {
	case isUniqueViolation(err):
		return errs.ErrAlreadyExists
	case isForeignKeyViolation(err):
		// thread or author missing
		return errs.ErrNotFound
	}
	return err
}

// ListByThread returns replies oldest first, joined with author names.
func (r *ReplyRepo) ListByThread(ctx context.Context, threadID uuid.UUID) ([]model.Reply, error) {
	const q = `
SELECT r.id, r.thread_id, r.body, r.author_id, p.name, r.votes, r.created_at
FROM replies r
JOIN profiles p ON p.id = r.author_id
WHERE r.thread_id=$1
ORDER BY r.created_at ASC`
	rows, err := r.db.Pool.Query(ctx, q, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Reply{}
	for rows.Next() {
		var rp model.Reply
		if err = rows.Scan(&rp.ID, &rp.ThreadID, &rp.Body, &rp.AuthorID, &rp.AuthorName, &rp.Votes, &rp.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rp)
	}
	return out, rows.Err()
}

// SetVotes overwrites the votes counter. Last write wins.
func (r *ReplyRepo) SetVotes(ctx context.Context, id uuid.UUID, votes int64) error {
	const q = `UPDATE replies SET votes=$2 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, votes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
