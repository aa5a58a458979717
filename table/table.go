// Package table runs one single-player session: the round engine, the boss
// dispatcher and progression, the save slot and the event sinks.
package table

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"

	"bossjack/blackjack"
	"bossjack/blackjack/boss"
)

// Sink receives drained engine events in order. Sinks run under the table
// lock and must not call back into the table.
type Sink interface {
	Record(events []blackjack.Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(events []blackjack.Event)

func (f SinkFunc) Record(events []blackjack.Event) { f(events) }

// HandEndInfo is passed to hooks after a round settles.
type HandEndInfo struct {
	TableID  string
	Result   *blackjack.SettlementResult
	BossID   string
	Defeated bool
	Snapshot Snapshot
}

type HandEndHook func(info HandEndInfo)

var ErrTableClosed = errors.New("table closed")

type Options struct {
	Game     blackjack.Config
	Registry *boss.Registry
	Store    boss.Persistence // nil keeps progress in memory only
	Seed     int64            // dispatcher seed; 0 derives from Game.Seed
}

// Table is one player's session.
type Table struct {
	ID string

	mu     sync.Mutex
	closed bool

	game       *blackjack.Game
	registry   *boss.Registry
	dispatcher *boss.Dispatcher
	progress   *boss.Progression
	inv        *Inventory
	store      boss.Persistence
	startCfg   blackjack.Config

	sinks        []Sink
	handEndHooks []HandEndHook
}

// New builds a table and restores saved progress from opts.Store.
func New(ctx context.Context, id string, opts Options) (*Table, error) {
	if opts.Registry == nil {
		reg, err := boss.DefaultRegistry()
		if err != nil {
			return nil, err
		}
		opts.Registry = reg
	}
	game, err := blackjack.NewGame(opts.Game)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}

	seed := opts.Seed
	if seed == 0 && opts.Game.Seed != 0 {
		seed = opts.Game.Seed + 1
	}
	inv := NewInventory(game)
	d := boss.NewDispatcher(seed, inv, game)
	t := &Table{
		ID:         id,
		game:       game,
		registry:   opts.Registry,
		dispatcher: d,
		progress:   boss.NewProgression(opts.Registry, opts.Store, inv, d, game),
		inv:        inv,
		store:      opts.Store,
		startCfg:   opts.Game,
	}
	game.SetMechanics(d)

	if err := t.load(ctx); err != nil {
		return nil, err
	}
	log.Printf("[Table %s] Created (balance=%d, boss=%s)", id, game.Balance(), t.bossIDLocked())
	return t, nil
}

func (t *Table) load(ctx context.Context) error {
	if t.store == nil {
		return nil
	}
	balance := t.startCfg.StartingBalance
	tokens := t.startCfg.DiscardTokens
	if v, ok, err := t.store.Get(ctx, boss.KeyBalance); err != nil {
		return fmt.Errorf("load balance: %w", err)
	} else if ok {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			balance = n
		} else {
			log.Printf("[Table %s] saved balance %q ignored, starting fresh", t.ID, v)
		}
	}
	if v, ok, err := t.store.Get(ctx, boss.KeyDiscardTokens); err != nil {
		return fmt.Errorf("load discard tokens: %w", err)
	} else if ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			tokens = n
		}
	}
	if err := t.game.RestoreWallet(balance, tokens); err != nil {
		return err
	}

	if v, ok, err := t.store.Get(ctx, boss.KeyDestroyed); err != nil {
		return fmt.Errorf("load destroyed cards: %w", err)
	} else if ok {
		indices := parseInts(v)
		t.dispatcher.RestoreDestroyed(indices)
		t.game.ExcludeCards(indices...)
	}

	res, err := t.progress.Load(ctx)
	if err != nil {
		return err
	}
	t.applyPassiveLocked(res)
	t.flushLocked()
	return nil
}

// AddSink registers an event consumer.
func (t *Table) AddSink(s Sink) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sinks = append(t.sinks, s)
}

// AddHandEndHook registers a post-settlement callback.
func (t *Table) AddHandEndHook(hook HandEndHook) {
	if hook == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handEndHooks = append(t.handEndHooks, hook)
}

// SelectBoss starts an encounter. Rejected while a round is in progress.
func (t *Table) SelectBoss(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrTableClosed
	}
	if t.game.Snapshot().Active {
		return blackjack.ErrRoundInProgress
	}
	res, err := t.progress.Select(ctx, id)
	if err != nil {
		t.flushLocked()
		return err
	}
	t.applyPassiveLocked(res)
	t.flushLocked()
	return nil
}

// LeaveBoss ends the encounter without a result, restoring anything the
// boss took.
func (t *Table) LeaveBoss(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.game.Snapshot().Active {
		return blackjack.ErrRoundInProgress
	}
	err := t.progress.Leave(ctx)
	t.applyPassiveLocked(boss.PassiveResult{Multiplier: 1})
	t.flushLocked()
	return err
}

// Bet starts a round.
func (t *Table) Bet(ctx context.Context, amount uint64) (*blackjack.SettlementResult, error) {
	return t.act(ctx, func() (*blackjack.SettlementResult, error) { return t.game.StartRound(amount) })
}

func (t *Table) Hit(ctx context.Context) (*blackjack.SettlementResult, error) {
	return t.act(ctx, t.game.Hit)
}

func (t *Table) Stand(ctx context.Context) (*blackjack.SettlementResult, error) {
	return t.act(ctx, t.game.Stand)
}

// Discard spends a token on the card at hand position index.
func (t *Table) Discard(ctx context.Context, index int) (*blackjack.SettlementResult, error) {
	return t.act(ctx, func() (*blackjack.SettlementResult, error) { return t.game.Discard([]int{index}) })
}

func (t *Table) act(ctx context.Context, fn func() (*blackjack.SettlementResult, error)) (*blackjack.SettlementResult, error) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil, ErrTableClosed
	}
	res, err := fn()
	if err != nil {
		t.flushLocked()
		t.mu.Unlock()
		return nil, err
	}
	if res == nil {
		t.flushLocked()
		t.mu.Unlock()
		return nil, nil
	}

	info, saveErr := t.afterRoundLocked(ctx, res)
	t.flushLocked()
	hooks := append([]HandEndHook(nil), t.handEndHooks...)
	t.mu.Unlock()

	t.dispatchHandEndHooks(hooks, info)
	if saveErr != nil {
		log.Printf("[Table %s] save after round %d failed: %v", t.ID, res.Round, saveErr)
	}
	return res, nil
}

// afterRoundLocked feeds the outcome to the boss encounter and saves.
func (t *Table) afterRoundLocked(ctx context.Context, res *blackjack.SettlementResult) (HandEndInfo, error) {
	info := HandEndInfo{TableID: t.ID, Result: res}
	var errs []error

	if def := t.progress.Current(); def != nil {
		info.BossID = def.ID
		heal := t.dispatcher.TakeHeal()
		switch res.Outcome {
		case blackjack.OutcomePlayerWins:
			defeated, err := t.progress.OnPlayerWin(ctx)
			if err != nil {
				errs = append(errs, err)
			}
			if defeated {
				info.Defeated = true
				t.applyPassiveLocked(boss.PassiveResult{Multiplier: 1})
			}
		case blackjack.OutcomeDealerWins:
			if err := t.progress.OnPlayerLose(ctx, heal); err != nil {
				errs = append(errs, err)
			}
		}
		if !info.Defeated && t.progress.AdvanceHand() {
			log.Printf("[Table %s] %s: hands for this visit used up", t.ID, def.ID)
		}
	}

	destroyed := t.dispatcher.Destroyed()
	t.game.ExcludeCards(destroyed...)
	if err := t.saveLocked(ctx, destroyed); err != nil {
		errs = append(errs, err)
	}
	info.Snapshot = t.snapshotLocked()
	return info, errors.Join(errs...)
}

func (t *Table) saveLocked(ctx context.Context, destroyed []int) error {
	if t.store == nil {
		return nil
	}
	values := map[string]string{
		boss.KeyBalance:       strconv.FormatUint(t.game.Balance(), 10),
		boss.KeyDiscardTokens: strconv.Itoa(t.game.DiscardTokens()),
		boss.KeyDestroyed:     joinInts(destroyed),
	}
	for k, v := range values {
		if err := t.store.Set(ctx, k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return nil
}

func (t *Table) applyPassiveLocked(res boss.PassiveResult) {
	if err := t.game.SetDeck(res.Deck); err != nil {
		log.Printf("[Table %s] boss deck rejected: %v", t.ID, err)
		_ = t.game.SetDeck(nil)
	}
	t.game.SetPayoutMultiplier(res.Multiplier)
}

func (t *Table) flushLocked() {
	events := t.game.Drain()
	if len(events) == 0 {
		return
	}
	for _, s := range t.sinks {
		s.Record(events)
	}
}

func (t *Table) dispatchHandEndHooks(hooks []HandEndHook, info HandEndInfo) {
	for _, hook := range hooks {
		func(cb HandEndHook) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[Table %s] hand end hook panic: %v", t.ID, r)
				}
			}()
			cb(info)
		}(hook)
	}
}

// Close stops accepting actions.
func (t *Table) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true
	log.Printf("[Table %s] Closed", t.ID)
}

func (t *Table) IsClosed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

func (t *Table) bossIDLocked() string {
	if def := t.progress.Current(); def != nil {
		return def.ID
	}
	return "-"
}

// Registry returns the boss catalog the table plays with.
func (t *Table) Registry() *boss.Registry { return t.registry }

func (t *Table) Inventory() *Inventory { return t.inv }

func joinInts(v []int) string {
	parts := make([]string, 0, len(v))
	for _, n := range v {
		parts = append(parts, strconv.Itoa(n))
	}
	return strings.Join(parts, ",")
}

func parseInts(s string) []int {
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			continue
		}
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
