// Package service contains the hosted-side application services for
// authentication and forum data access.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	pkgcrypto "github.com/obrolin/forum/internal/crypto"
	"github.com/obrolin/forum/internal/errs"
	"github.com/obrolin/forum/internal/limiter"
	"github.com/obrolin/forum/internal/model"
	"github.com/obrolin/forum/internal/repository"
)

// AuthService defines the authentication surface consumed by clients.
type AuthService interface {
	// GetSession returns the current session, or nil when signed out or expired.
	GetSession(ctx context.Context) (*model.Session, error)
	// SignUp creates an unverified account plus its public profile.
	// A session only exists after email confirmation and sign-in.
	SignUp(ctx context.Context, name, email, password string) error
	// SignInWithPassword authenticates and establishes the current session.
	SignInWithPassword(ctx context.Context, email, password string) error
	// ConfirmEmail verifies the account holding the token.
	ConfirmEmail(ctx context.Context, token string) error
	// SignOut drops the current session.
	SignOut(ctx context.Context) error
	// Resume restores a previously issued access token as the current session.
	Resume(token string) error
	// Subscribe registers a session-change callback and returns a cancel func.
	// The callback receives the new session, or nil on sign-out.
	Subscribe(fn func(*model.Session)) func()
}

type AuthServiceImpl struct {
	users     repository.UserRepository
	profiles  repository.ProfileRepository
	lim       limiter.Limiter
	signKey   []byte
	accessTTL time.Duration
	origin    string // limiter key for this client origin
	log       *zap.Logger

	mu      sync.Mutex
	cur     *model.Session
	subs    map[int]func(*model.Session)
	nextSub int
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, profiles repository.ProfileRepository,
	lim limiter.Limiter, signKey []byte, accessTTL time.Duration, origin string, log *zap.Logger,
) *AuthServiceImpl {
	if log == nil {
		log = zap.NewNop()
	}
	if origin == "" {
		origin = "local"
	}
	return &AuthServiceImpl{
		users:     users,
		profiles:  profiles,
		lim:       lim,
		signKey:   signKey,
		accessTTL: accessTTL,
		origin:    origin,
		log:       log,
		subs:      map[int]func(*model.Session){},
	}
}

// GetSession returns a copy of the current session, or nil when none is held
// or the held one has expired.
func (s *AuthServiceImpl) GetSession(ctx context.Context) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil || time.Now().After(s.cur.ExpiresAt) {
		return nil, nil
	}
	cp := *s.cur
	return &cp, nil
}

// SignUp creates an account with a per-user salt and a verification token.
// The token would normally be delivered by email; here it is logged so the
// operator can relay it.
func (s *AuthServiceImpl) SignUp(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return errors.New("validation: name, email and password are required")
	}
	uid, err := uuid.NewV4()
	if err != nil {
		return err
	}
	salt, err := pkgcrypto.RandBytes(16)
	if err != nil {
		return err
	}
	token, err := pkgcrypto.NewToken()
	if err != nil {
		return err
	}

	u := &model.User{
		ID:          uid,
		Email:       email,
		PwdHash:     pkgcrypto.HashPassword([]byte(password), salt),
		SaltAuth:    salt,
		VerifyToken: token,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return err
	}
	if err := s.profiles.Create(ctx, &model.Profile{ID: uid, Name: name, Email: email}); err != nil {
		return err
	}

	s.log.Info("account created, awaiting email verification",
		zap.String("email", email),
		zap.String("verify_token", token),
	)
	return nil
}

// ConfirmEmail verifies the account holding the token.
func (s *AuthServiceImpl) ConfirmEmail(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("validation: empty token")
	}
	uid, err := s.users.MarkVerified(ctx, token)
	if err != nil {
		return err
	}
	s.log.Info("email verified", zap.String("user_id", uid.String()))
	return nil
}

// SignInWithPassword authenticates with per-(email, origin) rate limiting,
// issues an access token and notifies subscribers.
func (s *AuthServiceImpl) SignInWithPassword(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return errors.New("validation: email and password are required")
	}
	ipHash := limiter.HashIP(s.origin)

	allowed, _, err := s.lim.Allow(ctx, email, ipHash)
	if err != nil {
		return err
	}
	if !allowed {
		return errs.ErrRateLimited
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.SaltAuth, u.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, email, ipHash); ferr == nil && blocked {
			return errs.ErrRateLimited
		}
		// hide whether the account exists
		return errs.ErrUnauthorized
	}
	if !u.Verified {
		return errs.ErrEmailNotVerified
	}

	_ = s.lim.Success(ctx, email, ipHash)

	sess, err := s.issueSession(u.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cur = sess
	s.mu.Unlock()
	s.notify(sess)

	s.log.Info("signed in", zap.String("user_id", u.ID.String()))
	return nil
}

// SignOut drops the current session and notifies subscribers with nil.
func (s *AuthServiceImpl) SignOut(ctx context.Context) error {
	s.mu.Lock()
	s.cur = nil
	s.mu.Unlock()
	s.notify(nil)
	return nil
}

// Resume restores a previously issued token (e.g. from the client's token
// cache) as the current session without notifying subscribers.
func (s *AuthServiceImpl) Resume(token string) error {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) { return s.signKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return errs.ErrUnauthorized
	}
	uid, err := uuid.FromString(claims.Subject)
	if err != nil {
		return errs.ErrUnauthorized
	}
	exp := time.Now().Add(s.accessTTL)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	s.mu.Lock()
	s.cur = &model.Session{AccessToken: token, UserID: uid, ExpiresAt: exp}
	s.mu.Unlock()
	return nil
}

// Subscribe registers a session-change callback and returns its cancel func.
func (s *AuthServiceImpl) Subscribe(fn func(*model.Session)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *AuthServiceImpl) notify(sess *model.Session) {
	s.mu.Lock()
	fns := make([]func(*model.Session), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		var cp *model.Session
		if sess != nil {
			c := *sess
			cp = &c
		}
		fn(cp)
	}
}

// issueSession creates a signed HS256 JWT for the given subject.
func (s *AuthServiceImpl) issueSession(userID uuid.UUID) (*model.Session, error) {
	now := time.Now()
	exp := now.Add(s.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	if err != nil {
		return nil, err
	}
	return &model.Session{AccessToken: signed, UserID: userID, ExpiresAt: exp}, nil
}
