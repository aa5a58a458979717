package blackjack

import (
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"bossjack/card"
)

// Game is the single-player round state machine:
// Dealing -> PlayerTurn -> DealerTurn -> Settlement -> Idle.
// Every transition runs synchronously; state changes are appended to the
// event log for a presentation layer to replay.
type Game struct {
	cfg Config
	rng *rand.Rand

	mu sync.Mutex

	mech      Mechanics
	deck      card.CardList
	destroyed map[int]struct{}
	payout    float64

	// run state
	balance       uint64
	bet           uint64
	discardTokens int

	// round state
	round       uint32
	phase       Phase
	active      bool
	state       *State
	lastOutcome Outcome

	log EventLog

	lastSettlement *SettlementResult
}

func NewGame(cfg Config) (*Game, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Game{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(seed)),
		deck:          card.Standard(),
		destroyed:     make(map[int]struct{}),
		payout:        1,
		balance:       cfg.StartingBalance,
		discardTokens: cfg.DiscardTokens,
		phase:         PhaseIdle,
	}
	if len(cfg.DeckOverride) > 0 {
		g.deck = append(card.CardList(nil), cfg.DeckOverride...)
	}
	g.state = NewState(NewSupply(nil, nil), &g.log)
	return g, nil
}

// SetMechanics installs the hook receiver. nil removes it.
func (g *Game) SetMechanics(m Mechanics) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mech = m
}

// SetDeck replaces the supply composition for the following rounds. An empty
// deck restores the configured one.
func (g *Game) SetDeck(deck []card.Card) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(deck) == 0 {
		g.deck = card.Standard()
		if len(g.cfg.DeckOverride) > 0 {
			g.deck = append(card.CardList(nil), g.cfg.DeckOverride...)
		}
		return nil
	}
	if err := card.CardList(deck).Validate(); err != nil {
		return fmt.Errorf("deck: %w", err)
	}
	g.deck = append(card.CardList(nil), deck...)
	return nil
}

// ExcludeCards removes original-deck indices from every future supply.
func (g *Game) ExcludeCards(indices ...int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, i := range indices {
		g.destroyed[i] = struct{}{}
	}
}

// SetPayoutMultiplier scales the win payout (values <= 0 reset it to 1).
func (g *Game) SetPayoutMultiplier(m float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if m <= 0 {
		m = 1
	}
	g.payout = m
}

// RestoreWallet sets balance and discard tokens from persisted values.
// Rejected while a round is active.
func (g *Game) RestoreWallet(balance uint64, discardTokens int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.active {
		return ErrRoundInProgress
	}
	if discardTokens < 0 {
		discardTokens = 0
	}
	g.balance = balance
	g.discardTokens = discardTokens
	return nil
}

// AddBalance credits the wallet (reward grants).
func (g *Game) AddBalance(amount uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.balance += amount
}

func (g *Game) Balance() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.balance
}

func (g *Game) DiscardTokens() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.discardTokens
}

// Emit appends an event produced outside a round transition (boss progress).
func (g *Game) Emit(e Event) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.log.Emit(e)
}

// Drain returns the events produced since the last call.
func (g *Game) Drain() []Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.log.Drain()
}

// StartRound places bet, reshuffles a fresh supply and deals two cards to
// each side. A result is returned when the deal itself settles the round.
func (g *Game) StartRound(bet uint64) (*SettlementResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.active {
		return nil, ErrRoundInProgress
	}
	if bet == 0 {
		return nil, ErrInvalidBet
	}
	if bet > g.balance {
		return nil, ErrInsufficientBalance
	}

	g.round++
	g.log.round = g.round
	g.bet = bet
	g.active = true
	g.lastOutcome = OutcomeNone
	g.lastSettlement = nil
	g.phase = PhaseDealing

	g.state = NewState(NewSupply(g.deck, g.destroyed), &g.log)
	if !g.cfg.Unshuffled {
		g.state.Supply.Shuffle(g.rng)
	}
	g.log.Emit(Event{Type: EventRoundStarted, Balance: g.balance, Delta: int64(bet)})

	// player, dealer, player, dealer; the dealer's first card stays face down
	for i := 0; i < 2; i++ {
		for _, side := range []Side{SidePlayer, SideDealer} {
			if _, err := g.state.dealTo(side, g.mech); err != nil {
				g.supplyExhaustedLocked(side)
			}
		}
	}

	player, dealer := g.state.Player, g.state.Dealer
	switch {
	case player.IsBlackjack() && dealer.IsBlackjack():
		return g.finishLocked(OutcomeDraw), nil
	case player.IsBlackjack():
		return g.finishLocked(OutcomePlayerWins), nil
	case dealer.IsBlackjack():
		return g.finishLocked(OutcomeDealerWins), nil
	case player.IsBust():
		// only reachable through value-rewriting mechanics
		return g.finishLocked(OutcomeDealerWins), nil
	}

	g.phase = PhasePlayerTurn
	return nil, nil
}

// Hit deals one card to the player.
func (g *Game) Hit() (*SettlementResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active || g.phase != PhasePlayerTurn {
		return nil, ErrRoundNotActive
	}

	if _, err := g.state.dealTo(SidePlayer, g.mech); err != nil {
		// nothing left to draw: the hand stands as it is
		g.supplyExhaustedLocked(SidePlayer)
		return g.standLocked(), nil
	}
	if g.mech != nil {
		g.mech.OnPlayerAction(g.state, ActionHit)
	}
	return g.afterPlayerCardLocked(), nil
}

// Stand reveals the dealer's hidden card and plays the dealer turn.
func (g *Game) Stand() (*SettlementResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active || g.phase != PhasePlayerTurn {
		return nil, ErrRoundNotActive
	}
	if g.mech != nil {
		g.mech.OnPlayerAction(g.state, ActionStand)
		if g.state.Player.ComputePoints() > blackjackTotal {
			return g.finishLocked(OutcomeDealerWins), nil
		}
	}
	return g.standLocked(), nil
}

// Discard removes the selected player card, consuming one discard token.
// selection holds hand positions; exactly one is required.
func (g *Game) Discard(selection []int) (*SettlementResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.active || g.phase != PhasePlayerTurn {
		return nil, ErrRoundNotActive
	}
	if g.discardTokens < 1 {
		return nil, ErrNoDiscardToken
	}
	if len(selection) != 1 {
		return nil, ErrInvalidSelection
	}
	c := g.state.Player.At(selection[0])
	if c == nil {
		return nil, ErrInvalidSelection
	}

	g.state.Player.Remove(c)
	g.discardTokens--
	ev := CardEvent(EventDiscard, SidePlayer, c, "")
	ev.Delta = int64(g.discardTokens)
	g.log.Emit(ev)
	g.state.emitPoints(SidePlayer)
	if g.mech != nil {
		g.mech.OnPlayerAction(g.state, ActionDiscard)
	}
	return g.afterPlayerCardLocked(), nil
}

func (g *Game) afterPlayerCardLocked() *SettlementResult {
	p := g.state.Player.ComputePoints()
	switch {
	case p > blackjackTotal:
		return g.finishLocked(OutcomeDealerWins)
	case p == blackjackTotal:
		return g.finishLocked(OutcomePlayerWins)
	}
	return nil
}

func (g *Game) standLocked() *SettlementResult {
	g.phase = PhaseDealerTurn
	if g.state.DealerHidden {
		hole := g.state.HoleCard()
		g.state.DealerHidden = false
		g.state.hole = nil
		if hole != nil {
			g.log.Emit(CardEvent(EventDealerRevealed, SideDealer, hole, ""))
		}
		g.state.emitPoints(SideDealer)
	}

	standOn := g.cfg.dealerStandsOn()
	for g.state.Dealer.ComputePoints() < standOn {
		if _, err := g.state.dealTo(SideDealer, g.mech); err != nil {
			// exhausted supply: the dealer stands on its current total
			g.supplyExhaustedLocked(SideDealer)
			break
		}
	}

	player := g.state.Player.ComputePoints()
	dealer := g.state.Dealer.ComputePoints()
	switch {
	case player > blackjackTotal:
		return g.finishLocked(OutcomeDealerWins)
	case dealer > blackjackTotal || dealer < player:
		return g.finishLocked(OutcomePlayerWins)
	case player < dealer:
		return g.finishLocked(OutcomeDealerWins)
	default:
		return g.finishLocked(OutcomeDraw)
	}
}

func (g *Game) supplyExhaustedLocked(side Side) {
	log.Printf("[Game] round %d: supply exhausted while dealing to %s", g.round, side)
	g.log.Emit(Event{Type: EventSupplyExhausted, Side: side})
}
