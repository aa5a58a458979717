package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"bossjack/blackjack"
	"bossjack/blackjack/boss"
	"bossjack/card"
	"bossjack/store"
	"bossjack/table"
)

func newTestSession(t *testing.T, deck ...card.Card) (*session, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	tbl, err := table.New(context.Background(), "cli-test", table.Options{
		Game: blackjack.Config{
			StartingBalance: 100,
			DiscardTokens:   1,
			DeckOverride:    deck,
			Unshuffled:      len(deck) > 0,
			Seed:            7,
		},
		Store: store.NewMemory("cli"),
	})
	if err != nil {
		t.Fatalf("table.New err: %v", err)
	}
	var out bytes.Buffer
	return newSession(tbl, &out), &out
}

func TestExec_ScriptedWin(t *testing.T) {
	ctx := context.Background()
	s, out := newTestSession(t,
		card.CardSpadeT, card.CardHeartT, card.CardDiamond6, card.CardClub7, card.CardHeart5)

	if _, err := s.exec(ctx, "bet 10"); err != nil {
		t.Fatalf("bet err: %v", err)
	}
	if _, err := s.exec(ctx, "odds"); err != nil {
		t.Fatalf("odds err: %v", err)
	}
	if _, err := s.exec(ctx, "h"); err != nil {
		t.Fatalf("hit err: %v", err)
	}
	text := out.String()
	for _, want := range []string{"round 1, bet 10", "player draws [T", "next card:", "you win +20 (balance 120)"} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q:\n%s", want, text)
		}
	}
	if s.rec.Len() == 0 {
		t.Fatalf("expected recorded events")
	}
}

func TestExec_Errors(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestSession(t)

	if _, err := s.exec(ctx, "bet"); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if _, err := s.exec(ctx, "bet ten"); err == nil {
		t.Fatalf("expected bad amount error")
	}
	if _, err := s.exec(ctx, "hit"); !errors.Is(err, blackjack.ErrRoundNotActive) {
		t.Fatalf("expected ErrRoundNotActive, got %v", err)
	}
	if _, err := s.exec(ctx, "odds"); !errors.Is(err, blackjack.ErrRoundNotActive) {
		t.Fatalf("expected ErrRoundNotActive for odds, got %v", err)
	}
	if _, err := s.exec(ctx, "boss house"); !errors.Is(err, boss.ErrBossLocked) {
		t.Fatalf("expected locked boss, got %v", err)
	}
	if quit, err := s.exec(ctx, "QUIT"); !quit || err != nil {
		t.Fatalf("expected quit, got %v %v", quit, err)
	}
}

func TestLoop_ReadsUntilQuit(t *testing.T) {
	s, out := newTestSession(t)
	in := bufio.NewReader(strings.NewReader("bosses\nboss pickpocket\nstate\nquit\nbet 10\n"))
	s.loop(context.Background(), in)

	text := out.String()
	if !strings.Contains(text, "pickpocket") || !strings.Contains(text, "open") {
		t.Fatalf("expected boss list, got:\n%s", text)
	}
	if !strings.Contains(text, "The Pickpocket steps up (3 hp)") {
		t.Fatalf("expected boss selection line, got:\n%s", text)
	}
	if strings.Contains(text, "round 1") {
		t.Fatalf("commands after quit must not run:\n%s", text)
	}
}

func TestAutoPlay_PlaysRounds(t *testing.T) {
	s, out := newTestSession(t)
	s.autoPlay(context.Background(), 5)
	if got := strings.Count(out.String(), "-- round "); got == 0 {
		t.Fatalf("expected rounds played, output:\n%s", out.String())
	}
	if s.t.Snapshot().Game.Active {
		t.Fatalf("auto play left a round open")
	}
}
