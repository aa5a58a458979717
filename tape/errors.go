package tape

import (
	"errors"
	"fmt"
)

var ErrBadEnvelope = errors.New("bad envelope")

// ReplayError reports the scripted step a run could not play.
type ReplayError struct {
	RoundIndex int    `json:"round_index"`
	StepIndex  int    `json:"step_index"`
	Reason     string `json:"reason"`
	Message    string `json:"message"`
}

func (e *ReplayError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("replay error(round=%d step=%d reason=%s): %s", e.RoundIndex, e.StepIndex, e.Reason, e.Message)
}
