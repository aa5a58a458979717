package lobby

import (
	"context"
	"errors"
	"testing"

	"bossjack/blackjack"
	"bossjack/blackjack/boss"
	"bossjack/store"
	"bossjack/table"
	"bossjack/tape"
)

func newTestLobby(t *testing.T) (*Lobby, *store.Store) {
	t.Helper()
	reg, err := boss.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry err: %v", err)
	}
	st := store.NewMemory("default")
	return New(reg, st, blackjack.Config{StartingBalance: 100, DiscardTokens: 1, Seed: 5}), st
}

func TestJoin_OneTablePerProfile(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLobby(t)

	a, err := l.Join(ctx, "alice")
	if err != nil {
		t.Fatalf("Join alice err: %v", err)
	}
	if _, err := l.Join(ctx, " alice "); !errors.Is(err, ErrProfileInUse) {
		t.Fatalf("expected ErrProfileInUse, got %v", err)
	}
	b, err := l.Join(ctx, "")
	if err != nil {
		t.Fatalf("Join default err: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("expected distinct tables, both %s", a.ID)
	}
	if got := l.ListProfiles(); len(got) != 2 || got[0] != "alice" || got[1] != store.DefaultProfile {
		t.Fatalf("unexpected profiles: %v", got)
	}

	l.Leave("alice")
	if !a.IsClosed() || l.GetTable("alice") != nil {
		t.Fatalf("expected alice's table closed and removed")
	}
	if _, err := l.Join(ctx, "alice"); err != nil {
		t.Fatalf("rejoin err: %v", err)
	}
}

func TestJoin_RestoresProfileSlot(t *testing.T) {
	ctx := context.Background()
	l, st := newTestLobby(t)
	if err := st.WithProfile("bob").Set(ctx, boss.KeyBalance, "42"); err != nil {
		t.Fatalf("seed save err: %v", err)
	}

	bob, err := l.Join(ctx, "bob")
	if err != nil {
		t.Fatalf("Join err: %v", err)
	}
	if got := bob.Snapshot().Game.Balance; got != 42 {
		t.Fatalf("expected restored balance 42, got %d", got)
	}
	carol, err := l.Join(ctx, "carol")
	if err != nil {
		t.Fatalf("Join err: %v", err)
	}
	if got := carol.Snapshot().Game.Balance; got != 100 {
		t.Fatalf("expected fresh balance 100, got %d", got)
	}
}

func TestAddHandEndHook_SeesProfile(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLobby(t)
	var seen []string
	l.AddHandEndHook(func(profile string, info table.HandEndInfo) {
		seen = append(seen, profile)
	})

	tbl, err := l.Join(ctx, "dave")
	if err != nil {
		t.Fatalf("Join err: %v", err)
	}
	res, err := tbl.Bet(ctx, 10)
	if err != nil {
		t.Fatalf("Bet err: %v", err)
	}
	if res == nil {
		if _, err := tbl.Stand(ctx); err != nil {
			t.Fatalf("Stand err: %v", err)
		}
	}
	if len(seen) != 1 || seen[0] != "dave" {
		t.Fatalf("expected one hook call for dave, got %v", seen)
	}
}

func TestReplay_UsesCatalog(t *testing.T) {
	l, _ := newTestLobby(t)
	_, err := l.Replay(context.Background(), tape.RunSpec{Seed: 2, Balance: 50, Boss: "nobody"})
	var re *tape.ReplayError
	if !errors.As(err, &re) || re.Reason != "boss" {
		t.Fatalf("expected boss replay error, got %v", err)
	}
}
