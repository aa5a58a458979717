package card

import (
	"fmt"
	"strings"
)

type CardList []Card

// Standard returns the 52 identities ordered suit by suit (clubs, diamonds,
// hearts, spades), ranks A..K. A card's position in this list is its
// original-deck index.
func Standard() CardList {
	out := make(CardList, 0, 52)
	for _, s := range Suits {
		for r := RankAce; r <= RankKing; r++ {
			out = append(out, New(s, r))
		}
	}
	return out
}

// Count returns the number of cards.
func (ds CardList) Count() int {
	return len(ds)
}

func (ds CardList) Contains(c Card) bool {
	for _, cc := range ds {
		if cc == c {
			return true
		}
	}
	return false
}

// ValueHistogram counts cards per blackjack base value (index 1..10).
func (ds CardList) ValueHistogram() [11]int {
	var h [11]int
	for _, c := range ds {
		if v := c.Value(); v > 0 {
			h[v]++
		}
	}
	return h
}

// Validate rejects invalid and duplicate identities.
func (ds CardList) Validate() error {
	seen := make(map[Card]struct{}, len(ds))
	for i, c := range ds {
		if !c.Valid() {
			return fmt.Errorf("invalid card at %d: 0x%02x", i, byte(c))
		}
		if _, ok := seen[c]; ok {
			return fmt.Errorf("duplicate card %s at %d", c, i)
		}
		seen[c] = struct{}{}
	}
	return nil
}

func (ds CardList) String() string {
	parts := make([]string, 0, len(ds))
	for _, c := range ds {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}

// ParseList parses card codes such as ["As", "Kd"].
func ParseList(codes []string) (CardList, error) {
	out := make(CardList, 0, len(codes))
	for _, code := range codes {
		c, err := Parse(code)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
