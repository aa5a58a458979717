package blackjack

import "log"

// SettlementResult describes a finished round.
type SettlementResult struct {
	Round         uint32
	Outcome       Outcome
	Bet           uint64
	Delta         int64
	Balance       uint64
	PlayerPoints  int
	DealerPoints  int
	PlayerCards   []CardView
	DealerCards   []CardView
	DiscardTokens int
}

// finishLocked runs the on-round-end hook, then settles the balance:
// a loss costs the bet, a win pays 2x bet (scaled by the payout multiplier)
// and grants a discard token, a draw changes nothing.
// Reported totals are the ones that decided the outcome, taken before the
// hook returns hidden cards to their owners.
func (g *Game) finishLocked(outcome Outcome) *SettlementResult {
	g.phase = PhaseSettlement
	playerPoints := g.state.Player.ComputePoints()
	dealerPoints := g.state.Dealer.ComputePoints()
	if g.mech != nil {
		g.mech.OnRoundEnd(g.state, outcome)
	}

	var delta int64
	switch outcome {
	case OutcomePlayerWins:
		delta = int64(float64(2*g.bet) * g.payout)
		g.balance += uint64(delta)
		g.discardTokens++
	case OutcomeDealerWins:
		loss := g.bet
		if loss > g.balance {
			loss = g.balance
		}
		g.balance -= loss
		delta = -int64(loss)
	}

	res := &SettlementResult{
		Round:         g.round,
		Outcome:       outcome,
		Bet:           g.bet,
		Delta:         delta,
		Balance:       g.balance,
		PlayerPoints:  playerPoints,
		DealerPoints:  dealerPoints,
		PlayerCards:   g.state.Player.views(nil),
		DealerCards:   g.state.Dealer.views(nil),
		DiscardTokens: g.discardTokens,
	}

	g.bet = 0
	g.active = false
	g.lastOutcome = outcome
	g.lastSettlement = res
	g.phase = PhaseIdle

	g.log.Emit(Event{
		Type:    EventRoundSettled,
		Outcome: outcome,
		Balance: g.balance,
		Delta:   delta,
		Points:  res.PlayerPoints,
	})
	if g.balance == 0 {
		log.Printf("[Game] round %d: balance depleted", g.round)
		g.log.Emit(Event{Type: EventBalanceDepleted})
	}
	return res
}

// LastSettlement returns the result of the most recent round, if any.
func (g *Game) LastSettlement() *SettlementResult {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastSettlement
}
