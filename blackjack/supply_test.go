package blackjack

import (
	"math/rand"
	"testing"

	"bossjack/card"
)

func TestShuffle_PreservesValueHistogram(t *testing.T) {
	want := card.Standard().ValueHistogram()
	for seed := int64(1); seed <= 50; seed++ {
		s := NewSupply(nil, nil)
		s.Shuffle(rand.New(rand.NewSource(seed)))
		if s.Len() != 52 {
			t.Fatalf("seed %d: expected 52 cards, got %d", seed, s.Len())
		}
		if err := s.Faces().Validate(); err != nil {
			t.Fatalf("seed %d: shuffle produced invalid deck: %v", seed, err)
		}
		if got := s.Faces().ValueHistogram(); got != want {
			t.Fatalf("seed %d: histogram changed: %v != %v", seed, got, want)
		}
	}
}

func TestShuffle_IsDeterministicPerSeed(t *testing.T) {
	a := NewSupply(nil, nil)
	b := NewSupply(nil, nil)
	a.Shuffle(rand.New(rand.NewSource(7)))
	b.Shuffle(rand.New(rand.NewSource(7)))
	if a.Faces().String() != b.Faces().String() {
		t.Fatalf("expected identical order for identical seeds")
	}
}

func TestDeal_AdvancesCursorAndExhausts(t *testing.T) {
	s := NewSupply([]card.Card{card.CardSpadeA, card.CardHeart2}, nil)
	c, err := s.Deal()
	if err != nil || c.Face != card.CardSpadeA {
		t.Fatalf("unexpected first deal: %v err=%v", c, err)
	}
	if _, err := s.Deal(); err != nil {
		t.Fatalf("unexpected error on second deal: %v", err)
	}
	if _, err := s.Deal(); err != ErrSupplyExhausted {
		t.Fatalf("expected ErrSupplyExhausted, got %v", err)
	}
	if !s.Exhausted() || s.RemainingCount() != 0 {
		t.Fatalf("expected exhausted supply")
	}
}

func TestRemoveAt_NeverRedealsConsumedSlot(t *testing.T) {
	s := NewSupply([]card.Card{card.CardSpade2, card.CardSpade3, card.CardSpade4, card.CardSpade5}, nil)
	first, _ := s.Deal()

	removed, ok := s.RemoveAt(0)
	if !ok || removed.Face != card.CardSpade3 {
		t.Fatalf("expected to remove 3s, got %v", removed)
	}
	if s.Cursor() != 1 || s.Len() != 3 {
		t.Fatalf("unexpected cursor=%d len=%d", s.Cursor(), s.Len())
	}
	next, _ := s.Deal()
	if next == first || next.Face != card.CardSpade4 {
		t.Fatalf("expected 4s after removal, got %v", next)
	}
	if _, ok := s.RemoveAt(5); ok {
		t.Fatalf("out-of-range removal must fail")
	}
}

func TestSwap_IsRelativeToCursor(t *testing.T) {
	s := NewSupply([]card.Card{card.CardClub2, card.CardClub3, card.CardClub4}, nil)
	_, _ = s.Deal()
	if !s.Swap(0, 1) {
		t.Fatalf("swap failed")
	}
	peek := s.Peek(2)
	if peek[0].Face != card.CardClub4 || peek[1].Face != card.CardClub3 {
		t.Fatalf("unexpected order after swap: %v %v", peek[0], peek[1])
	}
	if s.Swap(0, 2) {
		t.Fatalf("swap past the end must fail")
	}
}

func TestNewSupply_SkipsDestroyedIndexes(t *testing.T) {
	excluded := map[int]struct{}{0: {}, 51: {}}
	s := NewSupply(nil, excluded)
	if s.Len() != 50 {
		t.Fatalf("expected 50 cards, got %d", s.Len())
	}
	for _, c := range s.Remaining() {
		if c.Index == 0 || c.Index == 51 {
			t.Fatalf("destroyed card %v still present", c)
		}
	}
}
