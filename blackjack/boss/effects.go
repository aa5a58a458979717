package boss

import (
	"log"

	"bossjack/blackjack"
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// corruptValue shifts c's value by a random signed magnitude in
// [1, bound], clamped to [1, 11].
func corruptValue(d *Dispatcher, m Mechanic, st *blackjack.State, c *blackjack.Card) {
	if c == nil {
		log.Printf("[Boss] %s: corruption without a card", d.bossID())
		return
	}
	bound := m.valueOr(defaultCorruptionBound)
	if bound < 1 {
		bound = 1
	}
	magnitude := 1 + d.rng.Intn(bound)
	if d.rng.Intn(2) == 0 {
		magnitude = -magnitude
	}
	next := clamp(c.Value+magnitude, minCardValue, maxCorruptValue)
	if next == c.Value {
		return
	}
	if st.SetValue(c, next, m.Message) {
		d.triggered(st, m, "")
	}
}

// peekAndAct works on the next two undealt cards: 40% take one, 30% shift
// both values by ±Value in the same direction, 20% swap them, 10% nothing.
func peekAndAct(d *Dispatcher, m Mechanic, st *blackjack.State) {
	next := st.Supply.Peek(2)
	if len(next) < 2 {
		log.Printf("[Boss] %s: peek with %d card(s) left", d.bossID(), len(next))
		return
	}

	roll := d.rng.Intn(100)
	switch {
	case roll < 40:
		offset := d.rng.Intn(2)
		c, ok := st.Supply.RemoveAt(offset)
		if !ok {
			return
		}
		log.Printf("[Boss] %s: peek removed %s, %d left", d.bossID(), c, st.Supply.RemainingCount())
		st.Emit(blackjack.Event{Type: blackjack.EventCardRemoved, Side: blackjack.SideDealer, BossID: d.bossID(), Message: "a card vanished from the deck"})
		d.triggered(st, m, "")
	case roll < 70:
		delta := m.valueOr(defaultPeekDelta)
		if d.rng.Intn(2) == 0 {
			delta = -delta
		}
		for _, c := range next {
			before := c.Value
			c.Value = clamp(c.Value+delta, minCardValue, maxPeekValue)
			if c.Value == before {
				continue
			}
			// undealt: no card view
			st.Emit(blackjack.Event{Type: blackjack.EventCardValueChanged, Side: blackjack.SideDealer, BossID: d.bossID(), Delta: int64(c.Value - before)})
		}
		d.triggered(st, m, "the next cards feel different")
	case roll < 90:
		st.Supply.Swap(0, 1)
		st.Emit(blackjack.Event{Type: blackjack.EventSupplyReordered, Side: blackjack.SideDealer, BossID: d.bossID()})
		d.triggered(st, m, "the deck shifts")
	}
}

func matchesTag(c *blackjack.Card, tags []string) bool {
	rank := c.Face.RankLetter()
	for _, t := range tags {
		if t == rank {
			return true
		}
	}
	return false
}

// interceptFace claims a tagged face card for the dealer and rewrites its
// value. The plain rule aims one above the player (capped at 21 unless the
// player is bust); the optimizing rule picks 10 unless 10 would bust.
func interceptFace(d *Dispatcher, m Mechanic, st *blackjack.State, c *blackjack.Card, to blackjack.Side, tags []string, optimize bool) {
	if c == nil || !matchesTag(c, tags) {
		return
	}
	if to == blackjack.SidePlayer {
		if !st.Transfer(c, blackjack.SidePlayer) {
			return
		}
		st.Emit(st.CardEvent(blackjack.EventCardStolen, blackjack.SideDealer, c, "intercepted"))
	} else if !st.Dealer.Contains(c) {
		return
	}

	base := st.Dealer.PointsWithout(c)
	var value int
	if optimize {
		value = 10
		if base+10 > bustLimit {
			value = 1
		}
	} else {
		player := st.Player.ComputePoints()
		target := player + 1
		if player <= bustLimit && target > bustLimit {
			target = bustLimit
		}
		value = clamp(target-base, minCardValue, maxInterceptValue)
	}
	st.SetValue(c, value, m.Message)
	d.triggered(st, m, "")
}

func healOnLoss(d *Dispatcher, m Mechanic, st *blackjack.State, outcome blackjack.Outcome) {
	if outcome != blackjack.OutcomeDealerWins {
		return
	}
	amount := m.valueOr(1)
	if amount < 1 {
		amount = 1
	}
	d.pendingHeal += amount
	d.triggered(st, m, "")
}

// hideCard holds a player card out of the hand until the round ends.
func (d *Dispatcher) hideCard(m Mechanic, st *blackjack.State, c *blackjack.Card, to blackjack.Side) {
	if c == nil || to != blackjack.SidePlayer {
		return
	}
	slot := st.Player.IndexOf(c)
	if slot < 0 {
		return
	}
	st.Player.Remove(c)
	d.hidden = append(d.hidden, hiddenCard{card: c, slot: slot})
	st.Emit(st.CardEvent(blackjack.EventCardHidden, blackjack.SidePlayer, c, m.Message))
	st.RefreshPoints(blackjack.SidePlayer)
	d.triggered(st, m, "")
}

// returnHiddenCards puts hidden cards back in their slots, newest first.
func (d *Dispatcher) returnHiddenCards(st *blackjack.State) {
	if len(d.hidden) == 0 {
		return
	}
	for i := len(d.hidden) - 1; i >= 0; i-- {
		h := d.hidden[i]
		if st != nil {
			st.Player.InsertAt(h.slot, h.card)
			st.Emit(st.CardEvent(blackjack.EventCardReturned, blackjack.SidePlayer, h.card, ""))
		}
	}
	d.hidden = nil
	if st != nil {
		st.RefreshPoints(blackjack.SidePlayer)
	}
}

// hideConsumable deactivates one random active consumable until the boss
// changes or is defeated.
func (d *Dispatcher) hideConsumable(m Mechanic, st *blackjack.State) {
	if d.inv == nil {
		log.Printf("[Boss] %s: no inventory to hide from", d.bossID())
		return
	}
	active := d.inv.ActiveConsumables()
	if len(active) == 0 {
		return
	}
	id := active[d.rng.Intn(len(active))]
	d.inv.SetConsumableActive(id, false)
	d.hiddenItems = append(d.hiddenItems, id)
	st.Emit(blackjack.Event{Type: blackjack.EventCardHidden, Side: blackjack.SidePlayer, BossID: d.bossID(), Message: "consumable " + id})
	d.triggered(st, m, "")
}
