package boss

import (
	"errors"
	"fmt"
)

var (
	ErrBossNotFound = errors.New("boss not found")
	ErrBossLocked   = errors.New("boss locked")
	ErrNoActiveBoss = errors.New("no active boss")
)

func errChance(id string, m Mechanic) error {
	return fmt.Errorf("boss %s: mechanic %s chance %.2f outside [0, 1]", id, m.Type, m.Chance)
}
