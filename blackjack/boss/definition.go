package boss

import "bossjack/card"

// RewardKind names the inventory grant a reward requests.
type RewardKind string

const (
	RewardConsumable RewardKind = "consumable"
	RewardUpgrade    RewardKind = "upgrade"
	RewardBalance    RewardKind = "balance"
)

type Reward struct {
	Kind   RewardKind `json:"kind" yaml:"kind"`
	ID     string     `json:"id,omitempty" yaml:"id,omitempty"`
	Amount uint64     `json:"amount,omitempty" yaml:"amount,omitempty"`
}

// Definition is an immutable boss record. Health is the number of player
// wins required to defeat it.
type Definition struct {
	ID            string     `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	Tagline       string     `json:"tagline,omitempty" yaml:"tagline,omitempty"`
	Health        int        `json:"health" yaml:"health"`
	HandsPerRound int        `json:"hands_per_round,omitempty" yaml:"hands_per_round,omitempty"`
	UnlockOrder   int        `json:"unlock_order" yaml:"unlock_order"`
	Mechanics     []Mechanic `json:"mechanics,omitempty" yaml:"mechanics,omitempty"`
	Rewards       []Reward   `json:"rewards,omitempty" yaml:"rewards,omitempty"`

	DisablesTarot   bool     `json:"disables_tarot,omitempty" yaml:"disables_tarot,omitempty"`
	UsesSpecialDeck bool     `json:"uses_special_deck,omitempty" yaml:"uses_special_deck,omitempty"`
	SpecialDeck     []string `json:"special_deck,omitempty" yaml:"special_deck,omitempty"`
	FinalBoss       bool     `json:"final_boss,omitempty" yaml:"final_boss,omitempty"`
}

// MaxHealth is Health floored at 1.
func (d *Definition) MaxHealth() int {
	if d.Health < 1 {
		return 1
	}
	return d.Health
}

// Hands returns the hands played per encounter visit (0 means unbounded).
func (d *Definition) Hands() int {
	if d.HandsPerRound < 0 {
		return 0
	}
	return d.HandsPerRound
}

// Has reports whether the boss carries a mechanic of type t.
func (d *Definition) Has(t MechanicType) bool {
	for _, m := range d.Mechanics {
		if m.Type == t {
			return true
		}
	}
	return false
}

func (d *Definition) validate() error {
	if d.SpecialDeck != nil {
		deck, err := card.ParseList(d.SpecialDeck)
		if err != nil {
			return err
		}
		if err := deck.Validate(); err != nil {
			return err
		}
	}
	for _, m := range d.Mechanics {
		if m.Chance < 0 || m.Chance > 1 {
			return errChance(d.ID, m)
		}
		if m.Type == MechanicSpecialDeck && len(m.Tags) > 0 {
			deck, err := card.ParseList(m.Tags)
			if err != nil {
				return err
			}
			if err := deck.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
