package blackjack

// Hand is the ordered set of cards one side holds. points caches the last
// ComputePoints result.
type Hand struct {
	cards  []*Card
	dealer bool
	points int
}

func NewHand(dealer bool) *Hand {
	return &Hand{cards: make([]*Card, 0, 4), dealer: dealer}
}

func (h *Hand) IsDealer() bool { return h.dealer }

func (h *Hand) Side() Side {
	if h.dealer {
		return SideDealer
	}
	return SidePlayer
}

// Cards returns the hand in order. The slice is a copy; the cards are not.
func (h *Hand) Cards() []*Card { return append([]*Card(nil), h.cards...) }

func (h *Hand) Len() int { return len(h.cards) }

// At returns the card at position i or nil.
func (h *Hand) At(i int) *Card {
	if i < 0 || i >= len(h.cards) {
		return nil
	}
	return h.cards[i]
}

func (h *Hand) IndexOf(c *Card) int {
	for i, cc := range h.cards {
		if cc == c {
			return i
		}
	}
	return -1
}

func (h *Hand) Contains(c *Card) bool { return h.IndexOf(c) >= 0 }

// Push appends c and refreshes the cached total.
func (h *Hand) Push(c *Card) {
	if c == nil {
		return
	}
	h.cards = append(h.cards, c)
	h.ComputePoints()
}

// InsertAt puts c at position i (clamped) and refreshes the cached total.
func (h *Hand) InsertAt(i int, c *Card) {
	if c == nil {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(h.cards) {
		i = len(h.cards)
	}
	h.cards = append(h.cards, nil)
	copy(h.cards[i+1:], h.cards[i:])
	h.cards[i] = c
	h.ComputePoints()
}

// Remove takes c out of the hand. It reports false when c is not held.
func (h *Hand) Remove(c *Card) bool {
	i := h.IndexOf(c)
	if i < 0 {
		return false
	}
	h.cards = append(h.cards[:i], h.cards[i+1:]...)
	h.ComputePoints()
	return true
}

func (h *Hand) Clear() {
	h.cards = h.cards[:0]
	h.points = 0
}

// Points returns the cached total.
func (h *Hand) Points() int { return h.points }

// ComputePoints recomputes and caches the total: non-Ace values are summed,
// then each soft Ace, in hand order, counts 11 if that keeps the running
// total (with 1 reserved for every Ace still to come) at or below 21, else 1.
func (h *Hand) ComputePoints() int {
	h.points = scorePoints(h.cards, nil)
	return h.points
}

// PointsWithout is the total the hand would have without c.
func (h *Hand) PointsWithout(c *Card) int {
	return scorePoints(h.cards, c)
}

// VisiblePoints excludes the dealer's face-down card, if any.
func (h *Hand) VisiblePoints(hidden *Card) int {
	if !h.dealer || hidden == nil || !h.Contains(hidden) {
		return h.points
	}
	return scorePoints(h.cards, hidden)
}

func (h *Hand) IsBust() bool { return h.points > blackjackTotal }

// IsBlackjack is true for a two-card 21, counting one Ace as 11.
func (h *Hand) IsBlackjack() bool {
	if len(h.cards) != 2 {
		return false
	}
	sum := 0
	hasAce := false
	for _, c := range h.cards {
		sum += c.Value
		if c.SoftAce() {
			hasAce = true
		}
	}
	if sum == blackjackTotal {
		return true
	}
	return hasAce && sum+aceHighBonus == blackjackTotal
}

func (h *Hand) views(hidden *Card) []CardView {
	out := make([]CardView, 0, len(h.cards))
	for _, c := range h.cards {
		if hidden != nil && c == hidden {
			out = append(out, hiddenView())
			continue
		}
		out = append(out, viewOf(c))
	}
	return out
}

func scorePoints(cards []*Card, skip *Card) int {
	total := 0
	aces := 0
	for _, c := range cards {
		if c == skip {
			continue
		}
		if c.SoftAce() {
			aces++
			continue
		}
		total += c.Value
	}
	// An ace counts 11 only if the aces still to come fit at 1 each,
	// so {T,A,A} is 12 and never 22.
	for aces > 0 {
		aces--
		if total+11+aces <= blackjackTotal {
			total += 11
		} else {
			total++
		}
	}
	return total
}
