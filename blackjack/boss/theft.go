package boss

import (
	"log"
	"math/rand"

	"bossjack/blackjack"
)

const bustLimit = 21

// theftValue is what c would add to a dealer hand at total: a soft Ace
// counts 11 when that fits, else its value.
func theftValue(c *blackjack.Card, total int) int {
	if c.SoftAce() && total+11 <= bustLimit {
		return 11
	}
	return c.Value
}

// rankValue orders candidates for the aggressive pick, Aces high.
func rankValue(c *blackjack.Card) int {
	if c.SoftAce() {
		return 11
	}
	return c.Value
}

// safeCards returns the candidates the dealer can take without busting.
func safeCards(candidates []*blackjack.Card, total int) []*blackjack.Card {
	var out []*blackjack.Card
	for _, c := range candidates {
		if c != nil && total+theftValue(c, total) <= bustLimit {
			out = append(out, c)
		}
	}
	return out
}

// selectTheft picks the card to steal for a dealer at total, or nil when no
// candidate is safe.
func selectTheft(rng *rand.Rand, candidates []*blackjack.Card, total int, p theftProfile) *blackjack.Card {
	safe := safeCards(candidates, total)
	if len(safe) == 0 {
		return nil
	}

	switch {
	case total >= p.High:
		best := safe[0]
		for _, c := range safe[1:] {
			if theftValue(c, total) < theftValue(best, total) {
				best = c
			}
		}
		return best
	case total >= p.MidLow:
		return safe[rng.Intn(len(safe))]
	default:
		best := safe[0]
		for _, c := range safe[1:] {
			if rankValue(c) > rankValue(best) {
				best = c
			}
		}
		return best
	}
}

// steal moves up to Value player cards into the dealer hand, one at a time,
// re-evaluating the safe set after each. With mark set the stolen cards are
// destroyed if the player loses the hand.
func (d *Dispatcher) steal(m Mechanic, st *blackjack.State, p theftProfile, mark bool) {
	count := m.valueOr(1)
	stolen := 0
	for i := 0; i < count; i++ {
		c := selectTheft(d.rng, st.Player.Cards(), st.Dealer.ComputePoints(), p)
		if c == nil {
			break
		}
		if !st.Transfer(c, blackjack.SidePlayer) {
			break
		}
		stolen++
		st.Emit(st.CardEvent(blackjack.EventCardStolen, blackjack.SideDealer, c, m.Message))
		if mark {
			d.marked = append(d.marked, c)
		}
	}

	if stolen == 0 {
		log.Printf("[Boss] %s: %s found no safe card (dealer %d)", d.bossID(), m.Type, st.Dealer.Points())
		d.triggered(st, m, "nothing worth taking")
		return
	}
	log.Printf("[Boss] %s: %s took %d card(s), dealer now %d", d.bossID(), m.Type, stolen, st.Dealer.Points())
	d.triggered(st, m, "")
}

// resolveMarked destroys the marked cards when the dealer won the hand and
// releases them otherwise.
func (d *Dispatcher) resolveMarked(st *blackjack.State, outcome blackjack.Outcome) {
	if len(d.marked) == 0 {
		return
	}
	marked := d.marked
	d.marked = nil

	if outcome != blackjack.OutcomeDealerWins {
		log.Printf("[Boss] %s: released %d marked card(s)", d.bossID(), len(marked))
		return
	}
	for _, c := range marked {
		if c.Index < 0 {
			continue
		}
		d.destroyed[c.Index] = struct{}{}
		if st != nil {
			st.Emit(st.CardEvent(blackjack.EventCardDestroyed, blackjack.SideDealer, c, "destroyed"))
		}
		log.Printf("[Boss] %s: destroyed %s (deck index %d)", d.bossID(), c, c.Index)
	}
}
