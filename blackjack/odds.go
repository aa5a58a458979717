package blackjack

// oddsPrecision is the number of decimals kept on each percentage.
const oddsPrecision = 2

// Odds are percentages (0-100) derived from the undealt supply.
type Odds struct {
	DealerHigher  float64 `json:"dealer_higher"`
	PlayerInRange float64 `json:"player_in_range"`
	PlayerBust    float64 `json:"player_bust"`
}

// EstimateOdds evaluates every undealt card as the next draw. An unmodified
// Ace contributes two outcomes (as 1 and as 11), so the denominator is the
// remaining count plus the remaining Ace count.
func EstimateOdds(remaining []*Card, playerTotal, dealerVisible int) Odds {
	outcomes := 0
	dealerHigher, inRange, bust := 0, 0, 0

	for _, c := range remaining {
		if c == nil {
			continue
		}
		values := []int{c.Value}
		if c.SoftAce() {
			values = []int{1, 11}
		}
		for _, v := range values {
			outcomes++
			d := dealerVisible + v
			if d < blackjackTotal+1 && d > playerTotal {
				dealerHigher++
			}
			p := playerTotal + v
			if p >= defaultDealerStandsOn && p <= blackjackTotal {
				inRange++
			}
			if p > blackjackTotal {
				bust++
			}
		}
	}
	if outcomes == 0 {
		return Odds{}
	}
	pct := func(n int) float64 {
		return roundTo(float64(n)*100/float64(outcomes), oddsPrecision)
	}
	return Odds{
		DealerHigher:  pct(dealerHigher),
		PlayerInRange: pct(inRange),
		PlayerBust:    pct(bust),
	}
}
