package blackjack

import (
	"fmt"

	"bossjack/card"
)

type Config struct {
	// Dealer draws while below this total (0 => 17).
	DealerStandsOn int

	StartingBalance uint64
	DiscardTokens   int

	// Optional deck composition replacing card.Standard().
	DeckOverride []card.Card
	// Deal the deck in the given order (replays and scripted scenarios).
	Unshuffled bool

	// RNG seed (0 => time-based)
	Seed int64
}

func (c Config) validate() error {
	if c.DealerStandsOn < 0 || c.DealerStandsOn > blackjackTotal {
		return fmt.Errorf("DealerStandsOn must be within [0, %d]", blackjackTotal)
	}
	if c.DiscardTokens < 0 {
		return fmt.Errorf("DiscardTokens must be >= 0")
	}
	if len(c.DeckOverride) > 0 {
		if err := card.CardList(c.DeckOverride).Validate(); err != nil {
			return fmt.Errorf("deck override: %w", err)
		}
	}
	return nil
}

func (c Config) dealerStandsOn() int {
	if c.DealerStandsOn == 0 {
		return defaultDealerStandsOn
	}
	return c.DealerStandsOn
}
