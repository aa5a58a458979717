package lobby

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"bossjack/blackjack"
	"bossjack/blackjack/boss"
	"bossjack/store"
	"bossjack/table"
	"bossjack/tape"
)

var ErrProfileInUse = errors.New("profile already has an open table")

// Lobby manages one table per save profile.
type Lobby struct {
	mu     sync.RWMutex
	tables map[string]*table.Table // profile -> table
	nextID uint64

	registry *boss.Registry
	store    *store.Store
	gameCfg  blackjack.Config

	hooks []HandEndHook
}

// HandEndHook observes settled hands on every table the lobby opens.
type HandEndHook func(profile string, info table.HandEndInfo)

// New creates a lobby. st may be nil to keep progress in memory only.
func New(reg *boss.Registry, st *store.Store, gameCfg blackjack.Config) *Lobby {
	return &Lobby{
		tables:   make(map[string]*table.Table),
		registry: reg,
		store:    st,
		gameCfg:  gameCfg,
	}
}

// AddHandEndHook registers a hook for tables opened after the call.
func (l *Lobby) AddHandEndHook(hook HandEndHook) {
	if hook == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hooks = append(l.hooks, hook)
}

// Join opens the table for profile, restoring its save slot.
func (l *Lobby) Join(ctx context.Context, profile string) (*table.Table, error) {
	profile = normalizeProfile(profile)

	l.mu.Lock()
	defer l.mu.Unlock()

	if t, ok := l.tables[profile]; ok && !t.IsClosed() {
		return nil, fmt.Errorf("%w: %s", ErrProfileInUse, profile)
	}

	l.nextID++
	tableID := fmt.Sprintf("table_%d", l.nextID)
	opts := table.Options{Game: l.gameCfg, Registry: l.registry}
	if l.store != nil {
		opts.Store = l.store.WithProfile(profile)
	}
	t, err := table.New(ctx, tableID, opts)
	if err != nil {
		return nil, fmt.Errorf("create table for %s: %w", profile, err)
	}
	for _, hook := range l.hooks {
		h := hook
		t.AddHandEndHook(func(info table.HandEndInfo) { h(profile, info) })
	}
	l.tables[profile] = t

	log.Printf("[Lobby] profile %s opened table %s", profile, tableID)
	return t, nil
}

// Leave closes the profile's table. Progress stays in the save slot.
func (l *Lobby) Leave(profile string) {
	profile = normalizeProfile(profile)

	l.mu.Lock()
	t, ok := l.tables[profile]
	delete(l.tables, profile)
	l.mu.Unlock()

	if ok {
		t.Close()
		log.Printf("[Lobby] profile %s left table %s", profile, t.ID)
	}
}

// GetTable returns the open table for profile, if any.
func (l *Lobby) GetTable(profile string) *table.Table {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tables[normalizeProfile(profile)]
}

// ListProfiles returns the profiles with open tables.
func (l *Lobby) ListProfiles() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	ids := make([]string, 0, len(l.tables))
	for id := range l.tables {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (l *Lobby) Registry() *boss.Registry { return l.registry }

// Replay plays a scripted run against the lobby's boss catalog.
func (l *Lobby) Replay(ctx context.Context, spec tape.RunSpec) (*tape.Tape, error) {
	return table.Replay(ctx, spec, l.registry)
}

func normalizeProfile(profile string) string {
	profile = strings.TrimSpace(profile)
	if profile == "" {
		return store.DefaultProfile
	}
	return profile
}
