package tape

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"bossjack/blackjack"
)

func TestEncodeDecode_PreservesEventFields(t *testing.T) {
	at := time.UnixMilli(1_700_000_000_123)
	in := blackjack.Event{
		Seq:     7,
		Round:   2,
		Type:    blackjack.EventCardStolen,
		Side:    blackjack.SideDealer,
		Card:    &blackjack.CardView{Code: "Kd", Value: 7, Index: 51},
		Balance: 120,
		Delta:   -10,
		BossID:  "king",
		Message: "The King claims his likeness.",
	}
	data, err := Encode("run-1", in, at)
	if err != nil {
		t.Fatalf("Encode err: %v", err)
	}
	out, runID, gotAt, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode err: %v", err)
	}
	if runID != "run-1" || !gotAt.Equal(at) {
		t.Fatalf("unexpected run/time: %s %v", runID, gotAt)
	}
	if out.Seq != 7 || out.Round != 2 || out.Type != in.Type || out.Side != in.Side {
		t.Fatalf("header mismatch: %+v", out)
	}
	if out.Card == nil || *out.Card != *in.Card {
		t.Fatalf("card mismatch: %+v", out.Card)
	}
	if out.Delta != -10 || out.Balance != 120 || out.BossID != "king" || out.Message != in.Message {
		t.Fatalf("payload mismatch: %+v", out)
	}
}

func TestDecode_RejectsGarbage(t *testing.T) {
	if _, _, _, err := Decode([]byte{0xff, 0x01}); err == nil {
		t.Fatalf("expected error for garbage bytes")
	}
	if _, _, _, err := DecodeB64("***"); err == nil {
		t.Fatalf("expected error for bad base64")
	}
}

func TestRecorder_TapeAndWire(t *testing.T) {
	r := NewRecorder()
	if _, err := uuid.Parse(r.RunID()); err != nil {
		t.Fatalf("run id is not a uuid: %v", err)
	}
	r.SetBoss("oracle")
	r.Record([]blackjack.Event{
		{Seq: 1, Round: 1, Type: blackjack.EventRoundStarted, Delta: 10},
		{Seq: 2, Round: 1, Type: blackjack.EventRoundSettled, Outcome: blackjack.OutcomeDraw},
	})
	if r.Len() != 2 {
		t.Fatalf("expected 2 events, got %d", r.Len())
	}

	tp := r.Tape()
	if err := tp.Expand(); err != nil {
		t.Fatalf("Expand err: %v", err)
	}
	if got := tp.Events[1].Value.GetFields()["outcome"].GetStringValue(); got != "draw" {
		t.Fatalf("expected expanded outcome draw, got %q", got)
	}

	wire := ToWireTape(tp)
	raw, err := json.Marshal(wire)
	if err != nil {
		t.Fatalf("marshal wire: %v", err)
	}
	var back WireTape
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal wire: %v", err)
	}
	if back.BossID != "oracle" || len(back.Events) != 2 || back.Events[0].Type != "roundStarted" {
		t.Fatalf("unexpected wire tape: %+v", back)
	}
	e, _, _, err := DecodeB64(back.Events[0].EnvelopeB64)
	if err != nil || e.Delta != 10 {
		t.Fatalf("decode wire event: %+v %v", e, err)
	}
}
