package tape

import (
	"encoding/base64"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"bossjack/blackjack"
)

// Recorder accumulates a run's events as base64 envelopes.
type Recorder struct {
	mu     sync.Mutex
	runID  string
	bossID string
	events []Event
	now    func() time.Time
}

// NewRecorder starts a tape with a fresh run id.
func NewRecorder() *Recorder {
	return &Recorder{runID: uuid.NewString(), now: time.Now}
}

func (r *Recorder) RunID() string { return r.runID }

// SetBoss labels the tape with the boss being fought.
func (r *Recorder) SetBoss(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bossID = id
}

// Record appends events. Events that cannot be encoded are logged and
// skipped.
func (r *Recorder) Record(events []blackjack.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	at := r.now()
	for _, e := range events {
		data, err := Encode(r.runID, e, at)
		if err != nil {
			log.Printf("[Tape %s] skip event %d: %v", r.runID, e.Seq, err)
			continue
		}
		r.events = append(r.events, Event{
			Type:        e.Type.String(),
			Seq:         e.Seq,
			Round:       e.Round,
			EnvelopeB64: base64.StdEncoding.EncodeToString(data),
		})
	}
}

func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Tape returns a copy of the recorded tape.
func (r *Recorder) Tape() *Tape {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &Tape{
		TapeVersion: TapeVersion,
		RunID:       r.runID,
		BossID:      r.bossID,
		Events:      append([]Event(nil), r.events...),
	}
}

// Expand decodes every envelope into Value.
func (t *Tape) Expand() error {
	for i := range t.Events {
		data, err := base64.StdEncoding.DecodeString(t.Events[i].EnvelopeB64)
		if err != nil {
			return err
		}
		e, runID, at, err := Decode(data)
		if err != nil {
			return err
		}
		s, err := ToStruct(runID, e, at)
		if err != nil {
			return err
		}
		t.Events[i].Value = s
	}
	return nil
}
