package blackjack

type Snapshot struct {
	Round  uint32
	Phase  Phase
	Active bool

	Balance       uint64
	Bet           uint64
	DiscardTokens int

	PlayerCards  []CardView
	DealerCards  []CardView
	PlayerPoints int
	DealerPoints int // visible total while the first card is face down
	DealerHidden bool

	Remaining   int
	Odds        Odds
	LastOutcome Outcome
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := g.state
	var hole *Card
	if g.active {
		hole = st.HoleCard()
	}
	s := Snapshot{
		Round:         g.round,
		Phase:         g.phase,
		Active:        g.active,
		Balance:       g.balance,
		Bet:           g.bet,
		DiscardTokens: g.discardTokens,
		PlayerCards:   st.Player.views(nil),
		DealerCards:   st.Dealer.views(hole),
		PlayerPoints:  st.Player.Points(),
		DealerPoints:  st.Dealer.VisiblePoints(hole),
		DealerHidden:  hole != nil,
		Remaining:     st.Supply.RemainingCount(),
		LastOutcome:   g.lastOutcome,
	}
	if g.active {
		s.Odds = st.Odds()
	}
	return s
}
