// Package ledger keeps recent hand history per profile and the tapes of
// scripted replays, for the audit endpoints.
package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"bossjack/table"
	"bossjack/tape"
)

const (
	defaultRecentLimit = 200
	defaultReplayLimit = 50
)

type Source string

const (
	SourceLive   Source = "live"
	SourceReplay Source = "replay"
)

var ErrNotFound = errors.New("not found")

type HistoryItem struct {
	HandID   string    `json:"hand_id"`
	Source   Source    `json:"source"`
	Profile  string    `json:"profile"`
	PlayedAt time.Time `json:"played_at"`

	Outcome      string `json:"outcome"`
	Bet          uint64 `json:"bet"`
	Delta        int64  `json:"delta"`
	Balance      uint64 `json:"balance"`
	PlayerPoints int    `json:"player_points"`
	DealerPoints int    `json:"dealer_points"`

	BossID      string `json:"boss_id,omitempty"`
	BossHealth  int    `json:"boss_health,omitempty"`
	Defeated    bool   `json:"defeated,omitempty"`
	EventsCount int    `json:"events_count,omitempty"`
}

// Ledger is an in-memory history, bounded per profile.
type Ledger struct {
	mu          sync.RWMutex
	recent      map[string][]HistoryItem // profile -> newest last
	replays     map[string]*tape.Tape    // run id -> tape
	replayOrder []string
	recentLimit int
	replayLimit int
	now         func() time.Time
}

func New() *Ledger {
	return &Ledger{
		recent:      make(map[string][]HistoryItem),
		replays:     make(map[string]*tape.Tape),
		recentLimit: defaultRecentLimit,
		replayLimit: defaultReplayLimit,
		now:         time.Now,
	}
}

// RecordHand stores a settled live hand. It matches the lobby's hand-end
// hook signature.
func (l *Ledger) RecordHand(profile string, info table.HandEndInfo) {
	if info.Result == nil {
		return
	}
	res := info.Result
	item := HistoryItem{
		HandID:       fmt.Sprintf("%s-r%d", info.TableID, res.Round),
		Source:       SourceLive,
		Profile:      profile,
		PlayedAt:     l.now(),
		Outcome:      res.Outcome.String(),
		Bet:          res.Bet,
		Delta:        res.Delta,
		Balance:      res.Balance,
		PlayerPoints: res.PlayerPoints,
		DealerPoints: res.DealerPoints,
		BossID:       info.BossID,
		BossHealth:   info.Snapshot.Health,
		Defeated:     info.Defeated,
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	items := append(l.recent[profile], item)
	if len(items) > l.recentLimit {
		items = items[len(items)-l.recentLimit:]
	}
	l.recent[profile] = items
}

// RecordReplay keeps a replay tape, evicting the oldest past the limit.
func (l *Ledger) RecordReplay(t *tape.Tape) HistoryItem {
	item := HistoryItem{
		HandID:      t.RunID,
		Source:      SourceReplay,
		PlayedAt:    l.now(),
		BossID:      t.BossID,
		EventsCount: len(t.Events),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.replays[t.RunID]; !ok {
		l.replayOrder = append(l.replayOrder, t.RunID)
	}
	l.replays[t.RunID] = t
	for len(l.replayOrder) > l.replayLimit {
		delete(l.replays, l.replayOrder[0])
		l.replayOrder = l.replayOrder[1:]
	}
	return item
}

// ListRecent returns up to limit hands for profile, newest first.
func (l *Ledger) ListRecent(profile string, limit int) []HistoryItem {
	l.mu.RLock()
	defer l.mu.RUnlock()
	items := l.recent[profile]
	if limit <= 0 || limit > len(items) {
		limit = len(items)
	}
	out := make([]HistoryItem, 0, limit)
	for i := len(items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, items[i])
	}
	return out
}

func (l *Ledger) GetReplay(runID string) (*tape.Tape, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.replays[runID]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}
