package table

import (
	"log"
	"sort"
	"sync"

	"bossjack/blackjack"
)

// Inventory is the run's consumables, upgrades and tarot switch. Balance
// grants go straight to the game wallet.
type Inventory struct {
	mu          sync.Mutex
	game        *blackjack.Game
	consumables map[string]bool // id -> active
	upgrades    []string
	tarot       bool
}

func NewInventory(game *blackjack.Game) *Inventory {
	return &Inventory{
		game:        game,
		consumables: make(map[string]bool),
		tarot:       true,
	}
}

func (inv *Inventory) ActiveConsumables() []string {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	var out []string
	for id, active := range inv.consumables {
		if active {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Consumables returns every owned consumable with its active flag.
func (inv *Inventory) Consumables() map[string]bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	out := make(map[string]bool, len(inv.consumables))
	for id, active := range inv.consumables {
		out[id] = active
	}
	return out
}

func (inv *Inventory) SetConsumableActive(id string, active bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	if _, ok := inv.consumables[id]; ok {
		inv.consumables[id] = active
	}
}

func (inv *Inventory) SetTarotEnabled(enabled bool) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.tarot = enabled
}

func (inv *Inventory) TarotEnabled() bool {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.tarot
}

func (inv *Inventory) GrantConsumable(id string) {
	if id == "" {
		return
	}
	inv.mu.Lock()
	inv.consumables[id] = true
	inv.mu.Unlock()
	log.Printf("[Inventory] granted consumable %s", id)
}

func (inv *Inventory) GrantUpgrade(id string) {
	if id == "" {
		return
	}
	inv.mu.Lock()
	inv.upgrades = append(inv.upgrades, id)
	inv.mu.Unlock()
	log.Printf("[Inventory] granted upgrade %s", id)
}

func (inv *Inventory) Upgrades() []string {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return append([]string(nil), inv.upgrades...)
}

func (inv *Inventory) GrantBalance(amount uint64) {
	if amount == 0 || inv.game == nil {
		return
	}
	inv.game.AddBalance(amount)
	log.Printf("[Inventory] granted %d balance", amount)
}
