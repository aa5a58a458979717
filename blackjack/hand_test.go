package blackjack

import (
	"testing"

	"bossjack/card"
)

func cardsOf(faces ...card.Card) []*Card {
	out := make([]*Card, 0, len(faces))
	for _, f := range faces {
		out = append(out, &Card{Face: f, Value: f.Value(), Index: standardIndex(f)})
	}
	return out
}

func handOf(dealer bool, faces ...card.Card) *Hand {
	h := NewHand(dealer)
	for _, c := range cardsOf(faces...) {
		h.Push(c)
	}
	return h
}

func TestComputePoints_BoundaryHands(t *testing.T) {
	cases := []struct {
		name  string
		faces []card.Card
		want  int
	}{
		{"two aces", []card.Card{card.CardSpadeA, card.CardHeartA}, 12},
		{"ace ten", []card.Card{card.CardSpadeA, card.CardHeartT}, 21},
		{"ace ace nine", []card.Card{card.CardSpadeA, card.CardHeartA, card.CardClub9}, 21},
		{"ten ten five", []card.Card{card.CardSpadeT, card.CardHeartT, card.CardClub5}, 25},
		{"ten ace ace", []card.Card{card.CardSpadeT, card.CardHeartA, card.CardClubA}, 12},
		{"ace six", []card.Card{card.CardDiamondA, card.CardClub6}, 17},
		{"king queen", []card.Card{card.CardDiamondK, card.CardClubQ}, 20},
		{"empty", nil, 0},
	}
	for _, tc := range cases {
		h := handOf(false, tc.faces...)
		if got := h.ComputePoints(); got != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, got)
		}
		if h.Points() != tc.want {
			t.Fatalf("%s: cached total %d != %d", tc.name, h.Points(), tc.want)
		}
	}
}

func TestComputePoints_OrderIndependent(t *testing.T) {
	a := handOf(false, card.CardSpadeA, card.CardHeart9, card.CardClubA)
	b := handOf(false, card.CardClubA, card.CardSpadeA, card.CardHeart9)
	if a.Points() != b.Points() {
		t.Fatalf("expected same total regardless of order: %d vs %d", a.Points(), b.Points())
	}
}

func TestComputePoints_RewrittenAceIsNotSoft(t *testing.T) {
	h := handOf(false, card.CardSpadeA, card.CardHeart5)
	h.At(0).Value = 4
	if got := h.ComputePoints(); got != 9 {
		t.Fatalf("expected rewritten ace to count at face value, got %d", got)
	}
}

func TestIsBlackjack(t *testing.T) {
	if !handOf(false, card.CardSpadeA, card.CardHeartK).IsBlackjack() {
		t.Fatalf("A+K must be blackjack")
	}
	if handOf(false, card.CardSpade7, card.CardHeart7, card.CardClub7).IsBlackjack() {
		t.Fatalf("three-card 21 is not blackjack")
	}
	if handOf(false, card.CardSpadeA, card.CardHeart9).IsBlackjack() {
		t.Fatalf("A+9 is not blackjack")
	}

	// a rewritten card reaching 21 by direct sum still counts
	h := handOf(false, card.CardSpadeK, card.CardHeart5)
	h.At(1).Value = 11
	if !h.IsBlackjack() {
		t.Fatalf("expected direct-sum 21 to be blackjack")
	}
}

func TestVisiblePoints_HidesFaceDownCard(t *testing.T) {
	h := handOf(true, card.CardSpadeK, card.CardHeart6)
	if got := h.VisiblePoints(h.At(0)); got != 6 {
		t.Fatalf("expected visible 6, got %d", got)
	}
	if got := h.VisiblePoints(h.At(1)); got != 10 {
		t.Fatalf("expected visible 10 with the six face down, got %d", got)
	}
	if got := h.VisiblePoints(nil); got != 16 {
		t.Fatalf("expected revealed 16, got %d", got)
	}

	p := handOf(false, card.CardSpadeK, card.CardHeart6)
	if got := p.VisiblePoints(p.At(0)); got != 16 {
		t.Fatalf("player hand has nothing hidden, got %d", got)
	}
}

func TestComputePoints_TenAndTwoAces(t *testing.T) {
	// first ace would bust as 11 with the second still to count
	h := handOf(false, card.CardSpadeK, card.CardHeartA, card.CardClubA)
	if got := h.ComputePoints(); got != 12 {
		t.Fatalf("expected K,A,A = 12, got %d", got)
	}
	h = handOf(false, card.CardHeartA, card.CardClubA)
	if got := h.ComputePoints(); got != 12 {
		t.Fatalf("expected A,A = 12, got %d", got)
	}
}

func TestHand_RemoveAndInsertKeepTotals(t *testing.T) {
	h := handOf(false, card.CardSpade9, card.CardHeart5, card.CardClub3)
	c := h.At(1)
	if h.PointsWithout(c) != 12 {
		t.Fatalf("expected 12 without the five, got %d", h.PointsWithout(c))
	}
	if !h.Remove(c) || h.Points() != 12 {
		t.Fatalf("remove failed: len=%d points=%d", h.Len(), h.Points())
	}
	if h.Remove(c) {
		t.Fatalf("second remove must report false")
	}
	h.InsertAt(1, c)
	if h.At(1) != c || h.Points() != 17 {
		t.Fatalf("insert failed: points=%d", h.Points())
	}
}
