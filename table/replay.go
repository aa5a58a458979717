package table

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bossjack/blackjack"
	"bossjack/blackjack/boss"
	"bossjack/card"
	"bossjack/store"
	"bossjack/tape"
)

// Replay plays a scripted run on a fresh in-memory table and returns its
// tape. The same RunSpec always yields the same events.
func Replay(ctx context.Context, spec tape.RunSpec, reg *boss.Registry) (*tape.Tape, error) {
	deck, err := card.ParseList(spec.Deck)
	if err != nil {
		return nil, &tape.ReplayError{RoundIndex: -1, StepIndex: -1, Reason: "invalid_deck", Message: err.Error()}
	}
	if len(deck) == 0 {
		deck = nil
	}
	seed := spec.Seed
	if seed == 0 {
		seed = 1
	}

	t, err := New(ctx, "replay", Options{
		Game: blackjack.Config{
			StartingBalance: spec.Balance,
			DiscardTokens:   spec.DiscardTokens,
			DeckOverride:    deck,
			Unshuffled:      spec.Unshuffled,
			Seed:            seed,
		},
		Registry: reg,
		Store:    store.NewMemory("replay"),
	})
	if err != nil {
		return nil, &tape.ReplayError{RoundIndex: -1, StepIndex: -1, Reason: "invalid_setup", Message: err.Error()}
	}
	defer t.Close()

	rec := tape.NewRecorder()
	t.AddSink(rec)

	if spec.Boss != "" {
		if err := unlockForReplay(ctx, t, spec.Boss); err != nil {
			return nil, &tape.ReplayError{RoundIndex: -1, StepIndex: -1, Reason: "boss", Message: err.Error()}
		}
		rec.SetBoss(spec.Boss)
	}

	for ri, round := range spec.Rounds {
		res, err := t.Bet(ctx, round.Bet)
		if err != nil {
			return nil, replayError(ri, -1, err)
		}
		for si, a := range round.Actions {
			if res != nil {
				return nil, &tape.ReplayError{RoundIndex: ri, StepIndex: si, Reason: "round_not_active", Message: "round already settled"}
			}
			switch strings.ToLower(a.Type) {
			case "hit":
				res, err = t.Hit(ctx)
			case "stand":
				res, err = t.Stand(ctx)
			case "discard":
				res, err = t.Discard(ctx, a.Index)
			default:
				return nil, &tape.ReplayError{RoundIndex: ri, StepIndex: si, Reason: "unknown_action", Message: fmt.Sprintf("unknown action %q", a.Type)}
			}
			if err != nil {
				return nil, replayError(ri, si, err)
			}
		}
		if res == nil {
			// unfinished rounds stand
			if _, err := t.Stand(ctx); err != nil {
				return nil, replayError(ri, len(round.Actions), err)
			}
		}
	}
	return rec.Tape(), nil
}

// unlockForReplay selects id, marking it unlocked first: replays script any
// boss regardless of saved progress.
func unlockForReplay(ctx context.Context, t *Table, id string) error {
	if _, err := t.registry.Lookup(id); err != nil {
		return err
	}
	if err := t.store.Set(ctx, boss.KeyUnlocked, id); err != nil {
		return err
	}
	t.mu.Lock()
	_, err := t.progress.Load(ctx)
	t.mu.Unlock()
	if err != nil {
		return err
	}
	return t.SelectBoss(ctx, id)
}

func replayError(round, step int, err error) *tape.ReplayError {
	reason := "rejected"
	switch {
	case errors.Is(err, blackjack.ErrInvalidBet):
		reason = "invalid_bet"
	case errors.Is(err, blackjack.ErrInsufficientBalance):
		reason = "insufficient_balance"
	case errors.Is(err, blackjack.ErrRoundNotActive):
		reason = "round_not_active"
	case errors.Is(err, blackjack.ErrNoDiscardToken):
		reason = "no_discard_token"
	case errors.Is(err, blackjack.ErrInvalidSelection):
		reason = "invalid_selection"
	}
	return &tape.ReplayError{RoundIndex: round, StepIndex: step, Reason: reason, Message: err.Error()}
}
