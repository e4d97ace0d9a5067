// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service/client layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrRateLimited indicates a temporary sign-in lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmailNotVerified indicates sign-in before the account email was confirmed.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrSignInRequired indicates a write attempted without a signed-in viewer.
	// The UI maps it to an authentication prompt, not a failure message.
	ErrSignInRequired = errors.New("sign in required")

	// ErrInvalidCategory indicates a category outside the configured set.
	ErrInvalidCategory = errors.New("invalid category")
)
