package boss

import (
	"log"
	"math/rand"
	"sort"
	"time"

	"bossjack/blackjack"
	"bossjack/card"
)

// PassiveResult is what an activated boss asks of the round engine.
type PassiveResult struct {
	DisableTarot bool
	Deck         []card.Card // nil keeps the standard deck
	Multiplier   float64     // payout multiplier, 1 when unset
}

// Dispatcher evaluates the active boss's mechanics at the round hooks and
// runs the matching effect routine. It implements blackjack.Mechanics.
//
// A Dispatcher is not safe for concurrent use; the game calls hooks under
// its own lock and the table serializes everything else.
type Dispatcher struct {
	rng  *rand.Rand
	inv  Inventory
	emit blackjack.Emitter

	boss *Definition

	// cards stolen by destruction mechanics this round
	marked []*blackjack.Card
	// original-deck indices removed for good
	destroyed map[int]struct{}
	// player cards held out of the hand until round end
	hidden []hiddenCard
	// consumables deactivated until boss change or defeat
	hiddenItems []string

	pendingHeal int
}

type hiddenCard struct {
	card *blackjack.Card
	slot int
}

var _ blackjack.Mechanics = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher. seed 0 means time-based; inv and emit
// may be nil.
func NewDispatcher(seed int64, inv Inventory, emit blackjack.Emitter) *Dispatcher {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Dispatcher{
		rng:       rand.New(rand.NewSource(seed)),
		inv:       inv,
		emit:      emit,
		destroyed: make(map[int]struct{}),
	}
}

// Boss returns the active definition, or nil.
func (d *Dispatcher) Boss() *Definition { return d.boss }

// Activate makes def the active boss and applies its passive mechanics.
// The previous boss's temporary effects are released first.
func (d *Dispatcher) Activate(def *Definition) PassiveResult {
	d.Release()
	d.boss = def

	res := PassiveResult{Multiplier: 1}
	if def == nil {
		return res
	}
	if def.DisablesTarot {
		res.DisableTarot = true
	}
	if def.UsesSpecialDeck {
		res.Deck = parseDeck(def.ID, def.SpecialDeck)
	}
	for _, m := range def.Mechanics {
		if !m.IsPassive() {
			continue
		}
		switch m.Type {
		case MechanicDisableTarot:
			res.DisableTarot = true
		case MechanicSpecialDeck:
			codes := m.Tags
			if len(codes) == 0 {
				codes = def.SpecialDeck
			}
			res.Deck = parseDeck(def.ID, codes)
		case MechanicPayoutMultiplier:
			if m.Multiplier > 0 {
				res.Multiplier = m.Multiplier
			}
		default:
			log.Printf("[Boss] %s: passive %s has no effect", def.ID, m.Type)
		}
	}

	if res.DisableTarot && d.inv != nil {
		d.inv.SetTarotEnabled(false)
	}
	d.notify(blackjack.Event{Type: blackjack.EventBossSelected, BossID: def.ID, Health: def.MaxHealth(), Message: def.Name})
	log.Printf("[Boss] activated %s (tarot disabled=%v, special deck=%v, payout x%.2f)",
		def.ID, res.DisableTarot, res.Deck != nil, res.Multiplier)
	return res
}

// Release restores everything the active boss took temporarily: hidden
// consumables and tarot. Stolen-card tracking is cleared without
// destruction.
func (d *Dispatcher) Release() {
	if d.inv != nil {
		for _, id := range d.hiddenItems {
			d.inv.SetConsumableActive(id, true)
			d.notify(blackjack.Event{Type: blackjack.EventCardReturned, Message: "consumable " + id})
		}
		if d.boss != nil {
			d.inv.SetTarotEnabled(true)
		}
	}
	d.hiddenItems = nil
	d.marked = nil
	d.pendingHeal = 0
	d.boss = nil
}

// TakeHeal returns and clears the health the boss earned back this round.
func (d *Dispatcher) TakeHeal() int {
	h := d.pendingHeal
	d.pendingHeal = 0
	return h
}

// Destroyed returns the permanently destroyed original-deck indices.
func (d *Dispatcher) Destroyed() []int {
	out := make([]int, 0, len(d.destroyed))
	for i := range d.destroyed {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// RestoreDestroyed seeds the destroyed set from saved progress.
func (d *Dispatcher) RestoreDestroyed(indices []int) {
	for _, i := range indices {
		d.destroyed[i] = struct{}{}
	}
}

// OnCardDealt runs the card-dealt mechanics against the card just dealt.
func (d *Dispatcher) OnCardDealt(st *blackjack.State, c *blackjack.Card, to blackjack.Side) {
	if d.boss == nil {
		return
	}
	for _, m := range d.boss.Mechanics {
		if !m.OnCardDealt || m.IsPassive() || !d.fires(m) {
			continue
		}
		d.apply(m, st, c, to)
	}
}

// OnPlayerAction runs the player-action mechanics. Effects that need a card
// work on the player's newest card.
func (d *Dispatcher) OnPlayerAction(st *blackjack.State, action blackjack.Action) {
	if d.boss == nil {
		return
	}
	for _, m := range d.boss.Mechanics {
		if !m.OnPlayerAction || m.IsPassive() || !d.fires(m) {
			continue
		}
		var last *blackjack.Card
		if n := st.Player.Len(); n > 0 {
			last = st.Player.At(n - 1)
		}
		d.apply(m, st, last, blackjack.SidePlayer)
	}
}

// OnRoundEnd returns hidden cards, resolves cards marked for destruction,
// then runs the round-end mechanics.
func (d *Dispatcher) OnRoundEnd(st *blackjack.State, outcome blackjack.Outcome) {
	d.returnHiddenCards(st)
	d.resolveMarked(st, outcome)
	if d.boss == nil {
		return
	}
	for _, m := range d.boss.Mechanics {
		if !m.OnRoundEnd || m.IsPassive() || !d.fires(m) {
			continue
		}
		switch m.Type {
		case MechanicHealOnLoss:
			healOnLoss(d, m, st, outcome)
		default:
			d.apply(m, st, nil, blackjack.SidePlayer)
		}
	}
}

// fires applies chance gating: always at chance >= 1, otherwise a uniform
// draw at or below chance.
func (d *Dispatcher) fires(m Mechanic) bool {
	if m.Chance >= 1 {
		return true
	}
	return d.rng.Float64() <= m.Chance
}

// apply is the single place a mechanic type selects its effect routine.
func (d *Dispatcher) apply(m Mechanic, st *blackjack.State, c *blackjack.Card, to blackjack.Side) {
	if st == nil {
		log.Printf("[Boss] %s: no round state for %s", d.bossID(), m.Type)
		return
	}
	switch m.Type {
	case MechanicCardTheft:
		d.steal(m, st, baseTheft, false)
	case MechanicAggressiveTheft:
		d.steal(m, st, aggressiveTheft, false)
	case MechanicPermanentDestruction:
		d.steal(m, st, baseTheft, true)
	case MechanicValueCorruption:
		corruptValue(d, m, st, c)
	case MechanicPeekAndAct:
		peekAndAct(d, m, st)
	case MechanicKingIntercept:
		interceptFace(d, m, st, c, to, m.tagsOr("K"), false)
	case MechanicKingJackIntercept:
		interceptFace(d, m, st, c, to, m.tagsOr("K", "J"), false)
	case MechanicFaceOptimize:
		interceptFace(d, m, st, c, to, m.tagsOr("K", "Q", "J"), true)
	case MechanicHideCards:
		d.hideCard(m, st, c, to)
	case MechanicHideConsumables:
		d.hideConsumable(m, st)
	case MechanicHealOnLoss:
		// only meaningful at round end
	default:
		// unknown or passive types are no-ops
	}
}

func (d *Dispatcher) bossID() string {
	if d.boss == nil {
		return "-"
	}
	return d.boss.ID
}

// triggered reports a mechanic firing to the presentation layer.
func (d *Dispatcher) triggered(st *blackjack.State, m Mechanic, msg string) {
	if msg == "" {
		msg = m.Message
	}
	if msg == "" {
		msg = m.Type.String()
	}
	st.Emit(blackjack.Event{Type: blackjack.EventMechanicTriggered, Side: blackjack.SideDealer, BossID: d.bossID(), Message: msg})
}

func (d *Dispatcher) notify(e blackjack.Event) {
	if d.emit != nil {
		d.emit.Emit(e)
	}
}

func parseDeck(bossID string, codes []string) []card.Card {
	if len(codes) == 0 {
		return nil
	}
	deck, err := card.ParseList(codes)
	if err != nil {
		log.Printf("[Boss] %s: special deck ignored: %v", bossID, err)
		return nil
	}
	return deck
}
