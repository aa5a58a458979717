package blackjack

import (
	"math/rand"

	"bossjack/card"
)

// Supply is the ordered card supply of one round. Cards before the cursor
// have been dealt; cards at and after it are undealt.
type Supply struct {
	cards  []*Card
	cursor int
}

// NewSupply builds an unshuffled supply from faces, skipping any card whose
// original-deck index is in excluded. Indices follow card.Standard(); faces
// outside the standard list (never the case for validated decks) get -1.
func NewSupply(faces []card.Card, excluded map[int]struct{}) *Supply {
	s := &Supply{}
	s.Initialize(faces, excluded)
	return s
}

// Initialize resets the supply to faces in order with base values.
func (s *Supply) Initialize(faces []card.Card, excluded map[int]struct{}) {
	if len(faces) == 0 {
		faces = card.Standard()
	}
	s.cards = make([]*Card, 0, len(faces))
	s.cursor = 0
	for _, f := range faces {
		idx := standardIndex(f)
		if _, gone := excluded[idx]; gone && idx >= 0 {
			continue
		}
		s.cards = append(s.cards, &Card{Face: f, Value: f.Value(), Index: idx})
	}
}

// Shuffle permutes the undealt cards in place (Fisher–Yates: for i from the
// cursor to n-1, swap i with a uniform pick in [i, n-1]).
func (s *Supply) Shuffle(rng *rand.Rand) {
	n := len(s.cards)
	for i := s.cursor; i < n; i++ {
		j := i + rng.Intn(n-i)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}
}

// Deal returns the card at the cursor and advances it.
func (s *Supply) Deal() (*Card, error) {
	if s.Exhausted() {
		return nil, ErrSupplyExhausted
	}
	c := s.cards[s.cursor]
	s.cursor++
	return c, nil
}

// Len is the total number of cards, dealt or not.
func (s *Supply) Len() int { return len(s.cards) }

// Cursor is the index of the next undealt card.
func (s *Supply) Cursor() int { return s.cursor }

// RemainingCount is the number of undealt cards.
func (s *Supply) RemainingCount() int { return len(s.cards) - s.cursor }

func (s *Supply) Exhausted() bool { return s.cursor >= len(s.cards) }

// Remaining returns the undealt cards. The slice is a copy; the cards are not.
func (s *Supply) Remaining() []*Card {
	return append([]*Card(nil), s.cards[s.cursor:]...)
}

// Peek returns up to n undealt cards without dealing them.
func (s *Supply) Peek(n int) []*Card {
	if n > s.RemainingCount() {
		n = s.RemainingCount()
	}
	if n <= 0 {
		return nil
	}
	return append([]*Card(nil), s.cards[s.cursor:s.cursor+n]...)
}

// RemoveAt removes the undealt card at offset from the cursor and compacts
// the supply. Dealt slots are untouched, so the cursor stays valid.
func (s *Supply) RemoveAt(offset int) (*Card, bool) {
	i := s.cursor + offset
	if offset < 0 || i >= len(s.cards) {
		return nil, false
	}
	c := s.cards[i]
	s.cards = append(s.cards[:i], s.cards[i+1:]...)
	return c, true
}

// Swap exchanges two undealt cards addressed by offset from the cursor.
func (s *Supply) Swap(a, b int) bool {
	i, j := s.cursor+a, s.cursor+b
	if a < 0 || b < 0 || i >= len(s.cards) || j >= len(s.cards) {
		return false
	}
	s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	return true
}

// Faces returns every identity in supply order.
func (s *Supply) Faces() card.CardList {
	out := make(card.CardList, len(s.cards))
	for i, c := range s.cards {
		out[i] = c.Face
	}
	return out
}

var standardIndexes = func() map[card.Card]int {
	m := make(map[card.Card]int, 52)
	for i, c := range card.Standard() {
		m[c] = i
	}
	return m
}()

func standardIndex(c card.Card) int {
	if i, ok := standardIndexes[c]; ok {
		return i
	}
	return -1
}
