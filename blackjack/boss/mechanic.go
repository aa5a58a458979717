package boss

import (
	"log"
	"strings"
)

// MechanicType selects the effect routine a mechanic runs.
type MechanicType byte

const (
	MechanicNone MechanicType = iota
	MechanicCardTheft
	MechanicAggressiveTheft
	MechanicPermanentDestruction
	MechanicValueCorruption
	MechanicPeekAndAct
	MechanicKingIntercept
	MechanicKingJackIntercept
	MechanicFaceOptimize
	MechanicHideCards
	MechanicHideConsumables
	MechanicHealOnLoss
	MechanicDisableTarot
	MechanicSpecialDeck
	MechanicPayoutMultiplier
)

var MechanicTypeDictionary = map[MechanicType]string{
	MechanicNone:                 "none",
	MechanicCardTheft:            "card_theft",
	MechanicAggressiveTheft:      "aggressive_theft",
	MechanicPermanentDestruction: "permanent_destruction",
	MechanicValueCorruption:      "value_corruption",
	MechanicPeekAndAct:           "peek_and_act",
	MechanicKingIntercept:        "king_intercept",
	MechanicKingJackIntercept:    "king_jack_intercept",
	MechanicFaceOptimize:         "face_optimize",
	MechanicHideCards:            "hide_cards",
	MechanicHideConsumables:      "hide_consumables",
	MechanicHealOnLoss:           "heal_on_loss",
	MechanicDisableTarot:         "disable_tarot",
	MechanicSpecialDeck:          "special_deck",
	MechanicPayoutMultiplier:     "payout_multiplier",
}

func (t MechanicType) String() string {
	if s, ok := MechanicTypeDictionary[t]; ok {
		return s
	}
	return "unknown"
}

func (t MechanicType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts the dictionary names. Unknown names decode to
// MechanicNone so catalogs written for newer builds still load.
func (t *MechanicType) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for k, v := range MechanicTypeDictionary {
		if v == name {
			*t = k
			return nil
		}
	}
	log.Printf("[Boss] unknown mechanic type %q ignored", name)
	*t = MechanicNone
	return nil
}

// Mechanic is one declarative boss ability. Only the dispatcher interprets
// Type.
type Mechanic struct {
	Type MechanicType `json:"type" yaml:"type"`

	OnCardDealt    bool `json:"on_card_dealt,omitempty" yaml:"on_card_dealt,omitempty"`
	OnPlayerAction bool `json:"on_player_action,omitempty" yaml:"on_player_action,omitempty"`
	OnRoundEnd     bool `json:"on_round_end,omitempty" yaml:"on_round_end,omitempty"`
	Passive        bool `json:"passive,omitempty" yaml:"passive,omitempty"`

	Chance     float64  `json:"chance" yaml:"chance"` // 0.0–1.0
	Value      int      `json:"value,omitempty" yaml:"value,omitempty"`
	Multiplier float64  `json:"multiplier,omitempty" yaml:"multiplier,omitempty"`
	Tags       []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Message    string   `json:"message,omitempty" yaml:"message,omitempty"`
}

// IsPassive reports whether the mechanic is applied once at activation.
func (m Mechanic) IsPassive() bool {
	switch m.Type {
	case MechanicDisableTarot, MechanicSpecialDeck, MechanicPayoutMultiplier:
		return true
	}
	return m.Passive
}

// valueOr returns Value, or def when unset.
func (m Mechanic) valueOr(def int) int {
	if m.Value == 0 {
		return def
	}
	return m.Value
}

// tagsOr returns the upper-cased tags, or def when none are configured.
func (m Mechanic) tagsOr(def ...string) []string {
	if len(m.Tags) == 0 {
		return def
	}
	out := make([]string, 0, len(m.Tags))
	for _, t := range m.Tags {
		out = append(out, strings.ToUpper(strings.TrimSpace(t)))
	}
	return out
}

// theftProfile picks a card by dealer total: at or above High the lowest
// safe card, within [MidLow, High) a random one, below MidLow the highest.
type theftProfile struct {
	High   int
	MidLow int
}

var (
	baseTheft       = theftProfile{High: 17, MidLow: 12}
	aggressiveTheft = theftProfile{High: 19, MidLow: 15}
)

const (
	defaultCorruptionBound = 3
	defaultPeekDelta       = 1
	minCardValue           = 1
	maxCorruptValue        = 11
	maxPeekValue           = 10
	maxInterceptValue      = 21
)
