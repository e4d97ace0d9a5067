package client

import (
	"context"
	"errors"
	"testing"

	"github.com/gofrs/uuid/v5"

	"github.com/obrolin/forum/internal/errs"
	"github.com/obrolin/forum/internal/model"
)

func newVoteHarness(t *testing.T, store *fakeStore, authenticated bool) *VoteCoordinator {
	t.Helper()
	var m *SessionManager
	if authenticated {
		m, _ = signedIn(t, &fakeAuth{}, store)
	} else {
		m = signedOut(t, &fakeAuth{}, store)
	}
	filter := NewCategoryFilter()
	threads := NewThreadStore(store, nil)
	return NewVoteCoordinator(store, m, threads, filter, nil)
}

func TestVote_UnauthenticatedPromptsWithoutMutation(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	v := newVoteHarness(t, store, false)

	err := v.Vote(context.Background(), model.VoteThread, uuid.Must(uuid.NewV4()), 5, 1)
	if !errors.Is(err, errs.ErrSignInRequired) {
		t.Fatalf("want ErrSignInRequired, got %v", err)
	}
	if store.setVotesCalls != 0 {
		t.Fatalf("no remote mutation may happen for an unauthenticated vote")
	}
}

func TestVote_DirectionValidation(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	v := newVoteHarness(t, store, true)

	if err := v.Vote(context.Background(), model.VoteThread, uuid.Must(uuid.NewV4()), 5, 0); err == nil {
		t.Fatalf("want error for direction 0")
	}
	if store.setVotesCalls != 0 {
		t.Fatalf("invalid direction must not reach the store")
	}
}

func TestVote_UpThenDownRestoresCount(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := &fakeStore{}
	v := newVoteHarness(t, store, true)
	id := uuid.Must(uuid.NewV4())

	if err := v.Vote(ctx, model.VoteThread, id, 5, 1); err != nil {
		t.Fatalf("up-vote: %v", err)
	}
	if store.votes[id] != 6 {
		t.Fatalf("after up-vote want 6, got %d", store.votes[id])
	}
	if err := v.Vote(ctx, model.VoteThread, id, 6, -1); err != nil {
		t.Fatalf("down-vote: %v", err)
	}
	if store.votes[id] != 5 {
		t.Fatalf("serial up then down must restore the count, got %d", store.votes[id])
	}
}

func TestVote_Scenario_5_6_4(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := &fakeStore{}
	v := newVoteHarness(t, store, true)
	id := uuid.Must(uuid.NewV4())

	// votes=5, up-vote -> 6
	if err := v.Vote(ctx, model.VoteThread, id, 5, 1); err != nil {
		t.Fatalf("vote: %v", err)
	}
	// down-vote twice in sequence from 6, each reading the refreshed count
	if err := v.Vote(ctx, model.VoteThread, id, 6, -1); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if err := v.Vote(ctx, model.VoteThread, id, store.votes[id], -1); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if store.votes[id] != 4 {
		t.Fatalf("want 4 after 5 -> +1 -> -1 -> -1, got %d", store.votes[id])
	}
}

func TestVote_ConcurrentVotersLoseOneUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := &fakeStore{}
	v := newVoteHarness(t, store, true)
	id := uuid.Must(uuid.NewV4())

	// Both voters observed votes=5 before either write landed. The second
	// write overwrites the first: exactly one delta survives. This is the
	// documented lost-update behavior, asserted on purpose.
	if err := v.Vote(ctx, model.VoteThread, id, 5, 1); err != nil {
		t.Fatalf("vote A: %v", err)
	}
	if err := v.Vote(ctx, model.VoteThread, id, 5, -1); err != nil {
		t.Fatalf("vote B: %v", err)
	}
	if store.votes[id] != 4 {
		t.Fatalf("later write must win with 5-1=4, got %d", store.votes[id])
	}
}

func TestVote_SuccessReloadsThreadList(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	v := newVoteHarness(t, store, true)
	_ = v.filter.SetActive("Teknologi")

	if err := v.Vote(context.Background(), model.VoteReply, uuid.Must(uuid.NewV4()), 0, 1); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if store.listCalls != 1 || store.lastListCat != "Teknologi" {
		t.Fatalf("vote must reload the visible list for the active filter: calls=%d cat=%q",
			store.listCalls, store.lastListCat)
	}
	if store.lastVoteKind != model.VoteReply {
		t.Fatalf("vote kind not passed through")
	}
}

func TestVote_StoreErrorSkipsReload(t *testing.T) {
	t.Parallel()

	store := &fakeStore{setVotesErr: errors.New("update failed")}
	v := newVoteHarness(t, store, true)

	if err := v.Vote(context.Background(), model.VoteThread, uuid.Must(uuid.NewV4()), 5, 1); err == nil {
		t.Fatalf("want store error surfaced")
	}
	if store.listCalls != 0 {
		t.Fatalf("failed vote must not trigger a reload")
	}
}
