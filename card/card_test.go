package card

import "testing"

func TestStandard_Has52UniqueCardsWithBlackjackValues(t *testing.T) {
	deck := Standard()
	if deck.Count() != 52 {
		t.Fatalf("expected 52 cards, got %d", deck.Count())
	}
	if err := deck.Validate(); err != nil {
		t.Fatalf("standard deck invalid: %v", err)
	}

	h := deck.ValueHistogram()
	if h[1] != 4 {
		t.Fatalf("expected 4 aces valued 1, got %d", h[1])
	}
	for v := 2; v <= 9; v++ {
		if h[v] != 4 {
			t.Fatalf("expected 4 cards of value %d, got %d", v, h[v])
		}
	}
	// T, J, Q, K collapse to 10.
	if h[10] != 16 {
		t.Fatalf("expected 16 ten-valued cards, got %d", h[10])
	}
}

func TestParse_RoundTripsString(t *testing.T) {
	for _, c := range Standard() {
		got, err := Parse(c.String())
		if err != nil {
			t.Fatalf("parse %s: %v", c, err)
		}
		if got != c {
			t.Fatalf("parse %s: got %s", c, got)
		}
	}

	c, err := Parse("10h")
	if err != nil || c != CardHeartT {
		t.Fatalf("expected 10h to parse as Th, got %v err=%v", c, err)
	}
	if _, err := Parse("Zx"); err == nil {
		t.Fatalf("expected error for invalid code")
	}
}

func TestCard_FaceHelpers(t *testing.T) {
	if !CardClubK.IsKing() || !CardClubK.IsFace() || CardClubK.Value() != 10 {
		t.Fatalf("king helpers broken: %v", CardClubK)
	}
	if !CardDiamondA.IsAce() || CardDiamondA.Value() != 1 {
		t.Fatalf("ace helpers broken")
	}
	if CardSpadeT.IsFace() {
		t.Fatalf("ten is not a face card")
	}
	if CardRear.Valid() || CardInvalid.Valid() {
		t.Fatalf("sentinel cards must be invalid")
	}
	if CardHeartQ.RankLetter() != "Q" {
		t.Fatalf("unexpected rank letter %q", CardHeartQ.RankLetter())
	}
}

func TestValidate_RejectsDuplicates(t *testing.T) {
	list := CardList{CardSpadeA, CardHeartK, CardSpadeA}
	if err := list.Validate(); err == nil {
		t.Fatalf("expected duplicate error")
	}
}
