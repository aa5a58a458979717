package boss

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bossjack/blackjack"
	"bossjack/card"
)

func TestSelectTheft_NeverPicksABustingCard(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	deck := card.Standard()
	for trial := 0; trial < 5000; trial++ {
		total := 2 + rng.Intn(20)
		n := 1 + rng.Intn(5)
		var candidates []*blackjack.Card
		for i := 0; i < n; i++ {
			candidates = append(candidates, mk(deck[rng.Intn(len(deck))]))
		}
		for _, p := range []theftProfile{baseTheft, aggressiveTheft} {
			c := selectTheft(rng, candidates, total, p)
			if c == nil {
				assert.Empty(t, safeCards(candidates, total))
				continue
			}
			require.LessOrEqual(t, total+theftValue(c, total), 21, "trial %d total %d picked %s", trial, total, c)
		}
	}
}

func TestSelectTheft_Profiles(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	two, four, ace := mk(card.CardSpade2), mk(card.CardHeart4), mk(card.CardClubA)
	candidates := []*blackjack.Card{four, two, ace}

	// high total: lowest safe value (the Ace can only count 1 here)
	got := selectTheft(rng, candidates, 18, baseTheft)
	assert.Same(t, ace, got)

	// low total: highest, Ace counted as 11
	got = selectTheft(rng, candidates, 8, baseTheft)
	assert.Same(t, ace, got)

	// 17 is conservative for the base profile but mid band for the aggressive one
	got = selectTheft(rng, []*blackjack.Card{four, two}, 17, baseTheft)
	assert.Same(t, two, got)
	seen := map[*blackjack.Card]bool{}
	for i := 0; i < 200; i++ {
		seen[selectTheft(rng, []*blackjack.Card{four, two}, 17, aggressiveTheft)] = true
	}
	assert.Len(t, seen, 2)

	assert.Nil(t, selectTheft(rng, []*blackjack.Card{mk(card.CardSpadeK)}, 12, baseTheft))
}

func TestSteal_KeepsDealerAtOrBelow21(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	deck := card.Standard()
	for trial := 0; trial < 500; trial++ {
		d := NewDispatcher(int64(trial+1), nil, nil)
		d.boss = &Definition{ID: "thief"}

		var player, dealer []card.Card
		for i := 0; i < 2+rng.Intn(3); i++ {
			player = append(player, deck[rng.Intn(len(deck))])
		}
		for i := 0; i < 1+rng.Intn(2); i++ {
			dealer = append(dealer, deck[rng.Intn(len(deck))])
		}
		st, _ := newTestState(player, dealer)
		before := st.Dealer.ComputePoints()
		if before > 21 {
			continue
		}
		d.steal(Mechanic{Type: MechanicCardTheft, Value: 3}, st, baseTheft, false)
		require.LessOrEqual(t, st.Dealer.ComputePoints(), 21, "trial %d", trial)
		assert.Equal(t, len(player)+len(dealer), st.Player.Len()+st.Dealer.Len())
	}
}

func TestSteal_NoSafeCardIsInformational(t *testing.T) {
	d := NewDispatcher(1, nil, nil)
	d.boss = &Definition{ID: "thief"}
	st, log := newTestState(
		[]card.Card{card.CardSpadeK, card.CardHeartQ},
		[]card.Card{card.CardClub9, card.CardClub5})

	d.steal(Mechanic{Type: MechanicCardTheft, Value: 1}, st, baseTheft, false)
	events := log.Drain()
	assert.Equal(t, 2, st.Player.Len())
	assert.Zero(t, countEvents(events, blackjack.EventCardStolen))
	assert.Equal(t, 1, countEvents(events, blackjack.EventMechanicTriggered))
}

func TestPermanentDestruction_DestroysOnlyOnLoss(t *testing.T) {
	for _, tc := range []struct {
		outcome blackjack.Outcome
		want    int
	}{
		{blackjack.OutcomeDealerWins, 1},
		{blackjack.OutcomePlayerWins, 0},
		{blackjack.OutcomeDraw, 0},
	} {
		d := NewDispatcher(1, nil, nil)
		d.boss = &Definition{ID: "shade"}
		st, log := newTestState(
			[]card.Card{card.CardSpade3},
			[]card.Card{card.CardClub9})
		stolen := st.Player.At(0)

		d.steal(Mechanic{Type: MechanicPermanentDestruction, Value: 1}, st, baseTheft, true)
		require.True(t, st.Dealer.Contains(stolen))

		d.OnRoundEnd(st, tc.outcome)
		assert.Len(t, d.Destroyed(), tc.want, tc.outcome.String())
		if tc.want > 0 {
			assert.Equal(t, []int{stolen.Index}, d.Destroyed())
			assert.Equal(t, 1, countEvents(log.Drain(), blackjack.EventCardDestroyed))
		}
		assert.Empty(t, d.marked)
	}
}
