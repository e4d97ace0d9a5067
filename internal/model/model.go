// Package model defines domain entities shared by the client core and the hosted store.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// CategoryAll is the synthetic "all categories" filter value. It is only
// used for filtering and is never stored on a thread.
const CategoryAll = "Semua"

// Categories is the fixed, ordered set of categories threads are created under.
var Categories = []string{"Teknologi", "Lifestyle", "Edukasi", "Hiburan", "Umum"}

// ValidCategory reports whether c is a storable thread category.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Session is the client's read-only copy of an issued session. The token is
// opaque to the client; only the auth service interprets it.
type Session struct {
	AccessToken string
	UserID      uuid.UUID
	ExpiresAt   time.Time
}

// Profile is the public identity of a forum user.
type Profile struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

// Thread is a top-level forum post. Title, body, category and media URL are
// immutable after creation; only Votes changes.
type Thread struct {
	ID         uuid.UUID
	Title      string
	Body       string
	Category   string
	MediaURL   string
	AuthorID   uuid.UUID
	AuthorName string // denormalized from profiles at query time
	Votes      int64
	CreatedAt  time.Time
}

// Reply belongs to exactly one thread. Replies are ordered oldest first,
// unlike the thread list which is newest first.
type Reply struct {
	ID         uuid.UUID
	ThreadID   uuid.UUID
	Body       string
	AuthorID   uuid.UUID
	AuthorName string
	Votes      int64
	CreatedAt  time.Time
}

// User is an account held by the hosted auth service. Credentials never
// reach the client.
type User struct {
	ID          uuid.UUID // shared with the matching profile row
	Email       string    // unique
	PwdHash     []byte    // Argon2id(password, SaltAuth)
	SaltAuth    []byte    // per-user salt
	Verified    bool      // email confirmed
	VerifyToken string    // empty once verified
	CreatedAt   time.Time
}

// VoteKind selects which record family a vote mutation targets.
type VoteKind string

const (
	VoteThread VoteKind = "thread"
	VoteReply  VoteKind = "reply"
)
