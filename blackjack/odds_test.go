package blackjack

import (
	"testing"

	"bossjack/card"
)

func TestEstimateOdds_DoubleCountsAces(t *testing.T) {
	remaining := cardsOf(card.CardSpadeA, card.CardHeart5, card.CardClubT)
	odds := EstimateOdds(remaining, 15, 10)

	// outcomes: A as 1, A as 11, 5, 10 -> denominator 4
	if odds.DealerHigher != 50 {
		t.Fatalf("expected dealer-higher 50, got %v", odds.DealerHigher)
	}
	if odds.PlayerInRange != 25 {
		t.Fatalf("expected in-range 25, got %v", odds.PlayerInRange)
	}
	if odds.PlayerBust != 50 {
		t.Fatalf("expected bust 50, got %v", odds.PlayerBust)
	}
}

func TestEstimateOdds_RoundsToTwoDecimals(t *testing.T) {
	remaining := cardsOf(card.CardSpade2, card.CardHeart3, card.CardClub9)
	odds := EstimateOdds(remaining, 12, 2)
	// only the 9 takes the player into [17,21]: 1/3
	if odds.PlayerInRange != 33.33 {
		t.Fatalf("expected 33.33, got %v", odds.PlayerInRange)
	}
}

func TestEstimateOdds_EmptySupply(t *testing.T) {
	if odds := EstimateOdds(nil, 12, 10); odds != (Odds{}) {
		t.Fatalf("expected zero odds, got %+v", odds)
	}
}
