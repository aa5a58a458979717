package boss

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"

	"bossjack/blackjack"
)

// Progression tracks the boss encounter: the active boss, its health, the
// hand index within the visit, and which bosses are defeated or unlocked.
type Progression struct {
	mu sync.Mutex

	registry   *Registry
	store      Persistence
	inv        Inventory
	dispatcher *Dispatcher
	emit       blackjack.Emitter

	current       *Definition
	health        int
	hand          int
	defeated      map[string]bool
	unlocked      map[string]bool
	totalDefeated int
}

// NewProgression wires a progression. store, inv and emit may be nil.
func NewProgression(reg *Registry, store Persistence, inv Inventory, d *Dispatcher, emit blackjack.Emitter) *Progression {
	p := &Progression{
		registry:   reg,
		store:      store,
		inv:        inv,
		dispatcher: d,
		emit:       emit,
		defeated:   make(map[string]bool),
		unlocked:   make(map[string]bool),
	}
	if first := reg.First(); first != nil {
		p.unlocked[first.ID] = true
	}
	return p
}

// Load restores saved progress. The selected boss is re-activated at full
// health unless a saved health is present.
func (p *Progression) Load(ctx context.Context) (PassiveResult, error) {
	if p.store == nil {
		return PassiveResult{Multiplier: 1}, nil
	}

	var (
		selected, health, defeated, unlocked, total string
	)
	for key, dst := range map[string]*string{
		KeySelected:      &selected,
		KeyHealth:        &health,
		KeyDefeated:      &defeated,
		KeyUnlocked:      &unlocked,
		KeyTotalDefeated: &total,
	} {
		v, _, err := p.store.Get(ctx, key)
		if err != nil {
			return PassiveResult{Multiplier: 1}, fmt.Errorf("load %s: %w", key, err)
		}
		*dst = v
	}

	p.mu.Lock()
	for _, id := range splitIDs(defeated) {
		p.defeated[id] = true
	}
	for _, id := range splitIDs(unlocked) {
		p.unlocked[id] = true
	}
	if n, err := strconv.Atoi(total); err == nil && n >= 0 {
		p.totalDefeated = n
	}
	p.mu.Unlock()

	if selected == "" {
		return PassiveResult{Multiplier: 1}, nil
	}
	res, err := p.Select(ctx, selected)
	if err != nil {
		log.Printf("[Boss] saved selection %q dropped: %v", selected, err)
		return PassiveResult{Multiplier: 1}, nil
	}
	if h, err := strconv.Atoi(health); err == nil {
		p.mu.Lock()
		if p.current != nil {
			p.health = clamp(h, 1, p.current.MaxHealth())
		}
		p.mu.Unlock()
		// Select above saved full health; put the restored value back
		if err := p.save(ctx); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Select makes id the active boss and activates its passives.
func (p *Progression) Select(ctx context.Context, id string) (PassiveResult, error) {
	def, err := p.registry.Lookup(id)
	if err != nil {
		log.Printf("[Boss] select: %v", err)
		return PassiveResult{Multiplier: 1}, err
	}

	p.mu.Lock()
	if !p.unlocked[id] {
		p.mu.Unlock()
		return PassiveResult{Multiplier: 1}, fmt.Errorf("%w: %q", ErrBossLocked, id)
	}
	p.current = def
	p.health = def.MaxHealth()
	p.hand = 0
	p.mu.Unlock()

	res := PassiveResult{Multiplier: 1}
	if p.dispatcher != nil {
		res = p.dispatcher.Activate(def)
	}
	log.Printf("[Boss] selected %s (%s), health %d", def.ID, def.Name, def.MaxHealth())
	return res, p.save(ctx)
}

// Leave ends the encounter without a result. The boss keeps no health and
// everything it took temporarily is restored.
func (p *Progression) Leave(ctx context.Context) error {
	p.mu.Lock()
	def := p.current
	p.current = nil
	p.health = 0
	p.hand = 0
	p.mu.Unlock()
	if def == nil {
		return nil
	}
	if p.dispatcher != nil {
		p.dispatcher.Release()
	}
	log.Printf("[Boss] left %s", def.ID)
	return p.save(ctx)
}

// Current returns the active boss, or nil.
func (p *Progression) Current() *Definition {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Health returns the current and maximum health of the active boss.
func (p *Progression) Health() (current, max int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return 0, 0
	}
	return p.health, p.current.MaxHealth()
}

// HandIndex returns the zero-based hand within the current visit.
func (p *Progression) HandIndex() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hand
}

// AdvanceHand counts a finished hand. It reports true when the visit's
// hands are used up; the index then wraps for the next visit.
func (p *Progression) AdvanceHand() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return false
	}
	p.hand++
	limit := p.current.Hands()
	if limit > 0 && p.hand >= limit {
		p.hand = 0
		return true
	}
	return false
}

// OnPlayerWin costs the boss one health. At zero the boss is defeated:
// rewards are granted, the next boss unlocked and tracking reset.
func (p *Progression) OnPlayerWin(ctx context.Context) (defeated bool, err error) {
	p.mu.Lock()
	def := p.current
	if def == nil {
		p.mu.Unlock()
		return false, ErrNoActiveBoss
	}
	if p.health > 0 {
		p.health--
	}
	health := p.health
	p.mu.Unlock()

	p.notify(blackjack.Event{Type: blackjack.EventBossHealthChanged, BossID: def.ID, Health: health, Delta: -1})
	if health > 0 {
		return false, p.save(ctx)
	}
	return true, p.defeat(ctx, def)
}

// OnPlayerLose restores heal health, capped at the boss's maximum.
func (p *Progression) OnPlayerLose(ctx context.Context, heal int) error {
	if heal <= 0 {
		return nil
	}
	p.mu.Lock()
	def := p.current
	if def == nil {
		p.mu.Unlock()
		return nil
	}
	before := p.health
	p.health = clamp(p.health+heal, 0, def.MaxHealth())
	health := p.health
	p.mu.Unlock()

	if health == before {
		return nil
	}
	p.notify(blackjack.Event{Type: blackjack.EventBossHealthChanged, BossID: def.ID, Health: health, Delta: int64(health - before)})
	return p.save(ctx)
}

func (p *Progression) defeat(ctx context.Context, def *Definition) error {
	if p.inv != nil {
		for _, r := range def.Rewards {
			switch r.Kind {
			case RewardConsumable:
				p.inv.GrantConsumable(r.ID)
			case RewardUpgrade:
				p.inv.GrantUpgrade(r.ID)
			case RewardBalance:
				p.inv.GrantBalance(r.Amount)
			default:
				log.Printf("[Boss] %s: unknown reward kind %q", def.ID, r.Kind)
			}
		}
	}

	p.mu.Lock()
	p.defeated[def.ID] = true
	p.totalDefeated++
	var next *Definition
	if !def.FinalBoss {
		next = p.registry.Next(def.ID)
		if next != nil {
			p.unlocked[next.ID] = true
		}
	}
	p.current = nil
	p.health = 0
	p.hand = 0
	p.mu.Unlock()

	if p.dispatcher != nil {
		p.dispatcher.Release()
	}
	msg := def.Name
	if next != nil {
		msg = def.Name + "; unlocked " + next.Name
	}
	p.notify(blackjack.Event{Type: blackjack.EventBossDefeated, BossID: def.ID, Message: msg})
	log.Printf("[Boss] %s defeated (total %d)", def.ID, p.TotalDefeated())
	return p.save(ctx)
}

// IsDefeated reports whether id was defeated at least once.
func (p *Progression) IsDefeated(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.defeated[id]
}

// IsUnlocked reports whether id may be selected.
func (p *Progression) IsUnlocked(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unlocked[id]
}

func (p *Progression) TotalDefeated() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalDefeated
}

func (p *Progression) save(ctx context.Context) error {
	if p.store == nil {
		return nil
	}
	p.mu.Lock()
	selected := ""
	if p.current != nil {
		selected = p.current.ID
	}
	values := map[string]string{
		KeySelected:      selected,
		KeyHealth:        strconv.Itoa(p.health),
		KeyDefeated:      joinIDs(p.defeated),
		KeyUnlocked:      joinIDs(p.unlocked),
		KeyTotalDefeated: strconv.Itoa(p.totalDefeated),
	}
	p.mu.Unlock()

	for k, v := range values {
		if err := p.store.Set(ctx, k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return nil
}

func (p *Progression) notify(e blackjack.Event) {
	if p.emit != nil {
		p.emit.Emit(e)
	}
}

func joinIDs(set map[string]bool) string {
	ids := make([]string, 0, len(set))
	for id, ok := range set {
		if ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return strings.Join(ids, ",")
}

func splitIDs(s string) []string {
	var out []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
