package boss

import (
	"context"
	"sort"

	"bossjack/blackjack"
	"bossjack/card"
)

type memPersistence struct {
	values map[string]string
}

func newMemPersistence() *memPersistence {
	return &memPersistence{values: make(map[string]string)}
}

func (m *memPersistence) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memPersistence) Set(_ context.Context, key, value string) error {
	m.values[key] = value
	return nil
}

type fakeInventory struct {
	consumables map[string]bool
	tarot       bool
	granted     []string
	upgrades    []string
	balance     uint64
}

func newFakeInventory(active ...string) *fakeInventory {
	inv := &fakeInventory{consumables: make(map[string]bool), tarot: true}
	for _, id := range active {
		inv.consumables[id] = true
	}
	return inv
}

func (f *fakeInventory) ActiveConsumables() []string {
	var out []string
	for id, on := range f.consumables {
		if on {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

func (f *fakeInventory) SetConsumableActive(id string, active bool) { f.consumables[id] = active }
func (f *fakeInventory) SetTarotEnabled(enabled bool)              { f.tarot = enabled }
func (f *fakeInventory) GrantConsumable(id string)                 { f.granted = append(f.granted, id) }
func (f *fakeInventory) GrantUpgrade(id string)                    { f.upgrades = append(f.upgrades, id) }
func (f *fakeInventory) GrantBalance(amount uint64)                { f.balance += amount }

type recorder struct {
	events []blackjack.Event
}

func (r *recorder) Emit(e blackjack.Event) { r.events = append(r.events, e) }

func (r *recorder) count(t blackjack.EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

var nextIndex = 100

func mk(face card.Card) *blackjack.Card {
	nextIndex++
	return &blackjack.Card{Face: face, Value: face.Value(), Index: nextIndex}
}

// newTestState builds a detached round with the given hands and supply.
func newTestState(player, dealer []card.Card, supply ...card.Card) (*blackjack.State, *blackjack.EventLog) {
	log := &blackjack.EventLog{}
	var s *blackjack.Supply
	if len(supply) > 0 {
		s = blackjack.NewSupply(supply, nil)
	}
	st := blackjack.NewState(s, log)
	for _, f := range player {
		st.Player.Push(mk(f))
	}
	for _, f := range dealer {
		st.Dealer.Push(mk(f))
	}
	st.DealerHidden = false
	return st, log
}

func countEvents(events []blackjack.Event, t blackjack.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == t {
			n++
		}
	}
	return n
}
