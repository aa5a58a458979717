package tape

// WireTape is the JSON shape served to clients.
type WireTape struct {
	TapeVersion int         `json:"tapeVersion"`
	RunID       string      `json:"runId"`
	BossID      string      `json:"bossId,omitempty"`
	Events      []WireEvent `json:"events"`
}

type WireEvent struct {
	Type        string `json:"type"`
	Seq         uint64 `json:"seq"`
	Round       uint32 `json:"round"`
	EnvelopeB64 string `json:"envelopeB64"`
}

func ToWireTape(tape *Tape) *WireTape {
	if tape == nil {
		return nil
	}
	out := &WireTape{
		TapeVersion: tape.TapeVersion,
		RunID:       tape.RunID,
		BossID:      tape.BossID,
		Events:      make([]WireEvent, 0, len(tape.Events)),
	}
	for _, e := range tape.Events {
		out.Events = append(out.Events, WireEvent{
			Type:        e.Type,
			Seq:         e.Seq,
			Round:       e.Round,
			EnvelopeB64: e.EnvelopeB64,
		})
	}
	return out
}
