package table

import "bossjack/blackjack"

// Snapshot is the table view a presentation layer renders between events.
type Snapshot struct {
	Game blackjack.Snapshot `json:"game"`

	BossID        string `json:"boss_id,omitempty"`
	BossName      string `json:"boss_name,omitempty"`
	Health        int    `json:"health"`
	MaxHealth     int    `json:"max_health"`
	HandIndex     int    `json:"hand_index"`
	HandsPerVisit int    `json:"hands_per_visit"`
	TotalDefeated int    `json:"total_defeated"`

	TarotEnabled bool     `json:"tarot_enabled"`
	Consumables  []string `json:"consumables,omitempty"` // active only
	Upgrades     []string `json:"upgrades,omitempty"`
}

// BossStatus is one catalog entry with the player's progress on it.
type BossStatus struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tagline     string `json:"tagline,omitempty"`
	Health      int    `json:"health"`
	UnlockOrder int    `json:"unlock_order"`
	Unlocked    bool   `json:"unlocked"`
	Defeated    bool   `json:"defeated"`
	FinalBoss   bool   `json:"final_boss,omitempty"`
}

func (t *Table) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Table) snapshotLocked() Snapshot {
	s := Snapshot{
		Game:          t.game.Snapshot(),
		TotalDefeated: t.progress.TotalDefeated(),
		TarotEnabled:  t.inv.TarotEnabled(),
		Consumables:   t.inv.ActiveConsumables(),
		Upgrades:      t.inv.Upgrades(),
	}
	if def := t.progress.Current(); def != nil {
		s.BossID = def.ID
		s.BossName = def.Name
		s.Health, s.MaxHealth = t.progress.Health()
		s.HandIndex = t.progress.HandIndex()
		s.HandsPerVisit = def.Hands()
	}
	return s
}

// Bosses lists the catalog by unlock order.
func (t *Table) Bosses() []BossStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	defs := t.registry.All()
	out := make([]BossStatus, 0, len(defs))
	for _, d := range defs {
		out = append(out, BossStatus{
			ID:          d.ID,
			Name:        d.Name,
			Tagline:     d.Tagline,
			Health:      d.MaxHealth(),
			UnlockOrder: d.UnlockOrder,
			Unlocked:    t.progress.IsUnlocked(d.ID),
			Defeated:    t.progress.IsDefeated(d.ID),
			FinalBoss:   d.FinalBoss,
		})
	}
	return out
}
