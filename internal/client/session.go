package client

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/obrolin/forum/internal/model"
)

// SessionManager owns the current authentication identity: the cached
// session and the viewer profile. All other components ask it who the
// viewer is instead of holding their own copy.
type SessionManager struct {
	auth  Auth
	store Store
	log   *zap.Logger

	mu      sync.Mutex
	session *model.Session
	viewer  *model.Profile

	unsub func()
}

// NewSessionManager constructs a session manager and subscribes it to
// session-change notifications. Call Close to unsubscribe.
func NewSessionManager(auth Auth, store Store, log *zap.Logger) *SessionManager {
	if log == nil {
		log = zap.NewNop()
	}
	m := &SessionManager{auth: auth, store: store, log: log}
	m.unsub = auth.Subscribe(m.onAuthChange)
	return m
}

// Close cancels the session-change subscription.
func (m *SessionManager) Close() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
}

// Restore queries the service for an existing session and, when present,
// fetches the matching viewer profile. It fails open: any lookup error
// leaves the manager in the signed-out state and never blocks the caller.
func (m *SessionManager) Restore(ctx context.Context) {
	sess, err := m.auth.GetSession(ctx)
	if err != nil || sess == nil {
		if err != nil {
			m.log.Warn("session lookup failed, continuing signed out", zap.Error(err))
		}
		m.set(nil, nil)
		return
	}

	viewer, err := m.store.GetProfile(ctx, sess.UserID)
	if err != nil {
		m.log.Warn("profile lookup failed, continuing without viewer", zap.Error(err))
		m.set(sess, nil)
		return
	}
	m.set(sess, viewer)
}

// SignUp delegates account creation. No session exists on success: the user
// must verify their email out of band before signing in.
func (m *SessionManager) SignUp(ctx context.Context, name, email, password string) error {
	if name == "" || email == "" || password == "" {
		return errors.New("name, email and password are required")
	}
	return m.auth.SignUp(ctx, name, email, password)
}

// SignIn authenticates and, on success, re-runs the full restore sequence.
// On failure the held session state is left untouched.
func (m *SessionManager) SignIn(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return errors.New("email and password are required")
	}
	if err := m.auth.SignInWithPassword(ctx, email, password); err != nil {
		return err
	}
	m.Restore(ctx)
	return nil
}

// SignOut clears the local viewer and session unconditionally, regardless of
// the remote call outcome. Local state must never retain stale authority
// after a user-initiated logout.
func (m *SessionManager) SignOut(ctx context.Context) error {
	err := m.auth.SignOut(ctx)
	m.set(nil, nil)
	if err != nil {
		m.log.Warn("remote sign-out failed, local session cleared anyway", zap.Error(err))
	}
	return err
}

// Viewer returns the current viewer profile, or nil when unauthenticated.
func (m *SessionManager) Viewer() *model.Profile {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.viewer == nil {
		return nil
	}
	cp := *m.viewer
	return &cp
}

// Session returns the current session, or nil when signed out.
func (m *SessionManager) Session() *model.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	cp := *m.session
	return &cp
}

// onAuthChange re-runs the restore sequence when the incoming token differs
// from the held one. Notifications carrying an identical token are dropped
// to avoid redundant profile re-fetches.
func (m *SessionManager) onAuthChange(sess *model.Session) {
	m.mu.Lock()
	held := ""
	if m.session != nil {
		held = m.session.AccessToken
	}
	incoming := ""
	if sess != nil {
		incoming = sess.AccessToken
	}
	m.mu.Unlock()

	if held == incoming {
		return
	}
	m.log.Debug("session changed, restoring", zap.Bool("signed_in", sess != nil))
	m.Restore(context.Background())
}

func (m *SessionManager) set(sess *model.Session, viewer *model.Profile) {
	m.mu.Lock()
	m.session = sess
	m.viewer = viewer
	m.mu.Unlock()
}
