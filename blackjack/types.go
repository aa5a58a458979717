package blackjack

import (
	"fmt"

	"bossjack/card"
)

// Side identifies a hand owner.
type Side byte

const (
	SidePlayer Side = 0
	SideDealer Side = 1
)

func (s Side) String() string {
	if s == SideDealer {
		return "dealer"
	}
	return "player"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SideDealer {
		return SidePlayer
	}
	return SideDealer
}

// Phase is the round state machine position.
type Phase byte

const (
	PhaseIdle       Phase = 0
	PhaseDealing    Phase = 1
	PhasePlayerTurn Phase = 2
	PhaseDealerTurn Phase = 3
	PhaseSettlement Phase = 4
)

var PhaseDictionary = map[Phase]string{
	PhaseIdle:       "idle",
	PhaseDealing:    "dealing",
	PhasePlayerTurn: "player_turn",
	PhaseDealerTurn: "dealer_turn",
	PhaseSettlement: "settlement",
}

func (p Phase) String() string { return PhaseDictionary[p] }

// Outcome of a settled round.
type Outcome byte

const (
	OutcomeNone       Outcome = 0
	OutcomePlayerWins Outcome = 1
	OutcomeDealerWins Outcome = 2
	OutcomeDraw       Outcome = 3
)

var OutcomeDictionary = map[Outcome]string{
	OutcomeNone:       "none",
	OutcomePlayerWins: "player_wins",
	OutcomeDealerWins: "dealer_wins",
	OutcomeDraw:       "draw",
}

func (o Outcome) String() string { return OutcomeDictionary[o] }

// Action is a player action that fires the on-player-action hook.
type Action byte

const (
	ActionNone    Action = 0
	ActionHit     Action = 1
	ActionStand   Action = 2
	ActionDiscard Action = 3
)

var ActionDictionary = map[Action]string{
	ActionNone:    "NONE",
	ActionHit:     "HIT",
	ActionStand:   "STAND",
	ActionDiscard: "DISCARD",
}

func (a Action) String() string { return ActionDictionary[a] }

const (
	blackjackTotal        = 21
	defaultDealerStandsOn = 17
	aceHighBonus          = 10
)

// Card is one physical card in play. Value starts at the identity's base
// value and may be rewritten by boss mechanics; Index is the position of the
// identity in card.Standard() and survives every ownership transfer.
type Card struct {
	Face  card.Card
	Value int
	Index int
}

func (c *Card) String() string {
	if c == nil {
		return "<nil>"
	}
	if c.Value != c.Face.Value() {
		return fmt.Sprintf("%s(%d)", c.Face, c.Value)
	}
	return c.Face.String()
}

// SoftAce reports whether the card takes part in the soft-ace rule: an Ace
// whose value no mechanic has rewritten.
func (c *Card) SoftAce() bool {
	return c != nil && c.Face.IsAce() && c.Value == 1
}

// CardView is the read-only projection of a Card used in events and snapshots.
type CardView struct {
	Code   string `json:"code"`
	Value  int    `json:"value"`
	Index  int    `json:"index"`
	Hidden bool   `json:"hidden,omitempty"`
}

func viewOf(c *Card) CardView {
	if c == nil {
		return CardView{Index: -1}
	}
	return CardView{Code: c.Face.String(), Value: c.Value, Index: c.Index}
}

func hiddenView() CardView {
	return CardView{Code: card.CardRear.String(), Index: -1, Hidden: true}
}
