package client

import (
	"context"
	"sync"
	"testing"

	"github.com/gofrs/uuid/v5"

	"github.com/obrolin/forum/internal/errs"
	"github.com/obrolin/forum/internal/model"
)

type fakeAuth struct {
	mu      sync.Mutex
	session *model.Session
	subs    []func(*model.Session)

	getErr     error
	signUpErr  error
	signInErr  error
	signOutErr error

	// session established by a successful SignInWithPassword
	signInSession *model.Session

	getCalls    int
	signUpCalls int
	signInCalls int
}

var _ Auth = (*fakeAuth)(nil)

func (f *fakeAuth) GetSession(context.Context) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.session == nil {
		return nil, nil
	}
	cp := *f.session
	return &cp, nil
}

func (f *fakeAuth) SignUp(_ context.Context, name, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signUpCalls++
	return f.signUpErr
}

func (f *fakeAuth) SignInWithPassword(_ context.Context, email, password string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signInCalls++
	if f.signInErr != nil {
		return f.signInErr
	}
	f.session = f.signInSession
	return nil
}

func (f *fakeAuth) SignOut(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signOutErr != nil {
		// remote failure: the service keeps its session
		return f.signOutErr
	}
	f.session = nil
	return nil
}

func (f *fakeAuth) Subscribe(fn func(*model.Session)) func() {
	f.mu.Lock()
	f.subs = append(f.subs, fn)
	f.mu.Unlock()
	return func() {}
}

// fire emulates an asynchronous session-change notification.
func (f *fakeAuth) fire(sess *model.Session) {
	f.mu.Lock()
	fns := append([]func(*model.Session){}, f.subs...)
	f.mu.Unlock()
	for _, fn := range fns {
		fn(sess)
	}
}

type fakeStore struct {
	mu sync.Mutex

	profiles     map[uuid.UUID]*model.Profile
	profileErr   error
	profileCalls int

	listOut     []model.Thread
	listErr     error
	listCalls   int
	lastListCat string

	getThreadOut   *model.Thread
	getThreadErr   error
	getThreadCalls int

	listRepliesOut  []model.Reply
	listRepliesErr  error
	listRepliesHook func() // runs before returning, for interleaving tests

	createdThreads  []*model.Thread
	createThreadErr error
	createdReplies  []*model.Reply
	createReplyErr  error

	votes         map[uuid.UUID]int64 // last written value per id
	lastVoteKind  model.VoteKind
	setVotesErr   error
	setVotesCalls int
}

var _ Store = (*fakeStore)(nil)

func (f *fakeStore) GetProfile(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profileCalls++
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p, ok := f.profiles[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) ListThreads(_ context.Context, category string) ([]model.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.lastListCat = category
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Thread(nil), f.listOut...), nil
}

func (f *fakeStore) GetThread(_ context.Context, id uuid.UUID) (*model.Thread, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getThreadCalls++
	if f.getThreadErr != nil {
		return nil, f.getThreadErr
	}
	if f.getThreadOut == nil {
		return nil, errs.ErrNotFound
	}
	cp := *f.getThreadOut
	return &cp, nil
}

func (f *fakeStore) CreateThread(_ context.Context, t *model.Thread) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createThreadErr != nil {
		return f.createThreadErr
	}
	f.createdThreads = append(f.createdThreads, t)
	return nil
}

func (f *fakeStore) ListReplies(_ context.Context, threadID uuid.UUID) ([]model.Reply, error) {
	f.mu.Lock()
	hook := f.listRepliesHook
	out := append([]model.Reply(nil), f.listRepliesOut...)
	err := f.listRepliesErr
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (f *fakeStore) CreateReply(_ context.Context, r *model.Reply) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createReplyErr != nil {
		return f.createReplyErr
	}
	f.createdReplies = append(f.createdReplies, r)
	return nil
}

func (f *fakeStore) SetVotes(_ context.Context, kind model.VoteKind, id uuid.UUID, votes int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setVotesCalls++
	if f.setVotesErr != nil {
		return f.setVotesErr
	}
	if f.votes == nil {
		f.votes = map[uuid.UUID]int64{}
	}
	f.votes[id] = votes
	f.lastVoteKind = kind
	return nil
}

// signedIn builds a session manager holding an authenticated viewer.
func signedIn(t *testing.T, auth *fakeAuth, store *fakeStore) (*SessionManager, *model.Profile) {
	t.Helper()
	uid := uuid.Must(uuid.NewV4())
	viewer := &model.Profile{ID: uid, Name: "Ana", Email: "ana@b.c"}
	if store.profiles == nil {
		store.profiles = map[uuid.UUID]*model.Profile{}
	}
	store.profiles[uid] = viewer
	auth.session = &model.Session{AccessToken: "tok-1", UserID: uid}

	m := NewSessionManager(auth, store, nil)
	m.Restore(context.Background())
	if m.Viewer() == nil {
		t.Fatalf("setup: viewer not restored")
	}
	return m, viewer
}

// signedOut builds a session manager with no session.
func signedOut(t *testing.T, auth *fakeAuth, store *fakeStore) *SessionManager {
	t.Helper()
	m := NewSessionManager(auth, store, nil)
	m.Restore(context.Background())
	if m.Viewer() != nil {
		t.Fatalf("setup: expected no viewer")
	}
	return m
}
