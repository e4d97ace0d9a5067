package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/obrolin/forum/internal/errs"
	"github.com/obrolin/forum/internal/model"
)

// ThreadRepo implements ThreadRepository using PostgreSQL.
type ThreadRepo struct{ db *DB }

// NewThreadRepo constructs a thread repository.
func NewThreadRepo(db *DB) *ThreadRepo { return &ThreadRepo{db: db} }

// Create inserts a new thread with zero votes.
func (r *ThreadRepo) Create(ctx context.Context, t *model.Thread) error {
	const q = `
INSERT INTO threads (id, title, body, category, media_url, author_id, votes)
VALUES ($1, $2, $3, $4, $5, $6, 0)`
	_, err := r.db.Pool.Exec(ctx, q, t.ID, t.Title, t.Body, t.Category, t.MediaURL, t.AuthorID)
	switch {
	case isUniqueViolation(err):
		return errs.ErrAlreadyExists
	case isForeignKeyViolation(err):
		// author profile missing
		return errs.ErrNotFound
	}
	return err
}

// GetByID returns a single thread joined with its author's name.
func (r *ThreadRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Thread, error) {
	const q = `
SELECT t.id, t.title, t.body, t.category, t.media_url, t.author_id, p.name, t.votes, t.created_at
FROM threads t
JOIN profiles p ON p.id = t.author_id
WHERE t.id=$1`
	row := r.db.Pool.QueryRow(ctx, q, id)
	var t model.Thread
	err := row.Scan(&t.ID, &t.Title, &t.Body, &t.Category, &t.MediaURL, &t.AuthorID, &t.AuthorName, &t.Votes, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns threads newest first, optionally constrained to one category.
func (r *ThreadRepo) List(ctx context.Context, category string) ([]model.Thread, error) {
	const qAll = `
SELECT t.id, t.title, t.body, t.category, t.media_url, t.author_id, p.name, t.votes, t.created_at
FROM threads t
JOIN profiles p ON p.id = t.author_id
ORDER BY t.created_at DESC`
	const qCat = `
SELECT t.id, t.title, t.body, t.category, t.media_url, t.author_id, p.name, t.votes, t.created_at
FROM threads t
JOIN profiles p ON p.id = t.author_id
WHERE t.category=$1
ORDER BY t.created_at DESC`

	var (
		rows pgx.Rows
		err  error
	)
	if category == "" {
		rows, err = r.db.Pool.Query(ctx, qAll)
	} else {
		rows, err = r.db.Pool.Query(ctx, qCat, category)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Thread{}
	for rows.Next() {
		var t model.Thread
		if err = rows.Scan(&t.ID, &t.Title, &t.Body, &t.Category, &t.MediaURL, &t.AuthorID, &t.AuthorName, &t.Votes, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// SetVotes overwrites the votes counter. Last write wins.
func (r *ThreadRepo) SetVotes(ctx context.Context, id uuid.UUID, votes int64) error {
	const q = `UPDATE threads SET votes=$2 WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id, votes)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
