package boss

import "context"

// Persistence is a key/value save slot. Get reports ok=false for a missing
// key.
type Persistence interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Inventory holds the player's items and receives reward grants.
type Inventory interface {
	ActiveConsumables() []string
	SetConsumableActive(id string, active bool)
	SetTarotEnabled(enabled bool)

	GrantConsumable(id string)
	GrantUpgrade(id string)
	GrantBalance(amount uint64)
}

// Persisted keys.
const (
	KeySelected      = "boss.selected"
	KeyHealth        = "boss.health"
	KeyDefeated      = "boss.defeated"
	KeyUnlocked      = "boss.unlocked"
	KeyTotalDefeated = "boss.total_defeated"
	KeyBalance       = "player.balance"
	KeyDiscardTokens = "player.discard_tokens"
	KeyDestroyed     = "deck.destroyed"
)
