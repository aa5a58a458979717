package blackjack

// Mechanics intercepts a round at the trigger hooks. The boss dispatcher is
// the only implementation outside tests; it is also the only code allowed to
// move cards between hands.
type Mechanics interface {
	OnCardDealt(st *State, c *Card, to Side)
	OnPlayerAction(st *State, action Action)
	OnRoundEnd(st *State, outcome Outcome)
}

// State is the mutable core of a round handed to Mechanics: the supply,
// both hands and the event log. Effects run to completion on it before
// control returns to the state machine.
type State struct {
	Supply *Supply
	Player *Hand
	Dealer *Hand

	// DealerHidden is true until the player stands.
	DealerHidden bool
	// hole is the first card dealt to the dealer, face down while
	// DealerHidden. Cards moved into the dealer hand by mechanics never
	// take its place.
	hole *Card

	log *EventLog
}

// NewState builds a detached state, used by effect tests and simulations.
func NewState(supply *Supply, log *EventLog) *State {
	if supply == nil {
		supply = &Supply{}
	}
	if log == nil {
		log = &EventLog{}
	}
	return &State{
		Supply:       supply,
		Player:       NewHand(false),
		Dealer:       NewHand(true),
		DealerHidden: true,
		log:          log,
	}
}

func (st *State) Emit(e Event) {
	if st.log != nil {
		st.log.Emit(e)
	}
}

func (st *State) Hand(side Side) *Hand {
	if side == SideDealer {
		return st.Dealer
	}
	return st.Player
}

// Transfer moves c from one hand to the other, recomputing both totals.
func (st *State) Transfer(c *Card, from Side) bool {
	src, dst := st.Hand(from), st.Hand(from.Opponent())
	if !src.Remove(c) {
		return false
	}
	dst.Push(c)
	st.emitPoints(SidePlayer)
	st.emitPoints(SideDealer)
	return true
}

// SetValue rewrites a card's value and refreshes the holder's total.
func (st *State) SetValue(c *Card, value int, msg string) bool {
	if c == nil || c.Value == value {
		return false
	}
	c.Value = value
	side := SidePlayer
	if st.Dealer.Contains(c) {
		side = SideDealer
	}
	st.Emit(st.CardEvent(EventCardValueChanged, side, c, msg))
	if st.Player.Contains(c) || st.Dealer.Contains(c) {
		st.Hand(side).ComputePoints()
		st.emitPoints(side)
	}
	return true
}

// HoleCard returns the dealer's face-down card, or nil once revealed or
// if it has left the dealer's hand.
func (st *State) HoleCard() *Card {
	if !st.DealerHidden || st.hole == nil || !st.Dealer.Contains(st.hole) {
		return nil
	}
	return st.hole
}

// IsHidden reports whether c is the dealer's face-down card.
func (st *State) IsHidden(c *Card) bool {
	return c != nil && st.HoleCard() == c
}

// CardEvent builds a card event, masking the card while it is face down.
func (st *State) CardEvent(t EventType, side Side, c *Card, msg string) Event {
	ev := CardEvent(t, side, c, msg)
	if st.IsHidden(c) {
		hv := hiddenView()
		ev.Card = &hv
	}
	return ev
}

// Odds estimates the next-card percentages for the current hands.
func (st *State) Odds() Odds {
	return EstimateOdds(
		st.Supply.Remaining(),
		st.Player.Points(),
		st.Dealer.VisiblePoints(st.HoleCard()),
	)
}

// RefreshPoints recomputes a hand's total and reports it.
func (st *State) RefreshPoints(side Side) int {
	points := st.Hand(side).ComputePoints()
	st.emitPoints(side)
	return points
}

func (st *State) emitPoints(side Side) {
	h := st.Hand(side)
	points := h.Points()
	if side == SideDealer {
		points = h.VisiblePoints(st.HoleCard())
	}
	st.Emit(Event{Type: EventPointsChanged, Side: side, Points: points})
}

func (st *State) dealTo(side Side, mech Mechanics) (*Card, error) {
	c, err := st.Supply.Deal()
	if err != nil {
		return nil, err
	}
	h := st.Hand(side)
	h.Push(c)

	if side == SideDealer && st.DealerHidden && st.hole == nil {
		st.hole = c
	}
	st.Emit(st.CardEvent(EventCardDealt, side, c, ""))

	if mech != nil {
		mech.OnCardDealt(st, c, side)
	}
	st.Player.ComputePoints()
	st.Dealer.ComputePoints()
	st.emitPoints(side)
	return c, nil
}
