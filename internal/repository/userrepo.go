// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/obrolin/forum/internal/model"
)

// UserRepository provides access to auth accounts.
type UserRepository interface {
	// Create inserts a new account.
	Create(ctx context.Context, u *model.User) error
	// GetByEmail loads an account by email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// MarkVerified confirms the account holding the verification token and
	// returns its user ID.
	MarkVerified(ctx context.Context, token string) (uuid.UUID, error)
}

// ProfileRepository provides access to public user profiles.
type ProfileRepository interface {
	// Create inserts a new profile.
	Create(ctx context.Context, p *model.Profile) error
	// GetByID loads a profile by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Profile, error)
}
