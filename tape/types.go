// Package tape records a run's engine events as protobuf envelopes so a
// presentation layer can replay them at its own pace.
package tape

import "google.golang.org/protobuf/types/known/structpb"

const TapeVersion = 1

// RunSpec scripts a deterministic run: seed, wallet, optional boss, and the
// rounds to play.
type RunSpec struct {
	Seed          int64       `json:"seed"`
	Balance       uint64      `json:"balance"`
	DiscardTokens int         `json:"discard_tokens"`
	Boss          string      `json:"boss,omitempty"`
	Deck          []string    `json:"deck,omitempty"`
	Unshuffled    bool        `json:"unshuffled,omitempty"`
	Rounds        []RoundSpec `json:"rounds"`
}

type RoundSpec struct {
	Bet     uint64       `json:"bet"`
	Actions []ActionSpec `json:"actions"`
}

// ActionSpec is one player action: "hit", "stand" or "discard" (with the
// hand position in Index).
type ActionSpec struct {
	Type  string `json:"type"`
	Index int    `json:"index,omitempty"`
}

type Tape struct {
	TapeVersion int     `json:"tape_version"`
	RunID       string  `json:"run_id"`
	BossID      string  `json:"boss_id,omitempty"`
	Events      []Event `json:"events"`
}

type Event struct {
	Type        string           `json:"type"`
	Seq         uint64           `json:"seq"`
	Round       uint32           `json:"round"`
	Value       *structpb.Struct `json:"value,omitempty"`
	EnvelopeB64 string           `json:"envelope_b64,omitempty"`
}
