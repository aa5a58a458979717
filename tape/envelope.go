package tape

import (
	"encoding/base64"
	"fmt"
	"time"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"bossjack/blackjack"
)

// ToStruct converts an engine event into its envelope form.
func ToStruct(runID string, e blackjack.Event, at time.Time) (*structpb.Struct, error) {
	fields := map[string]any{
		"run_id": runID,
		"seq":    e.Seq,
		"round":  uint64(e.Round),
		"type":   e.Type.String(),
		"side":   e.Side.String(),
		"ts_ms":  at.UnixMilli(),
	}
	if e.Card != nil {
		fields["card"] = map[string]any{
			"code":   e.Card.Code,
			"value":  e.Card.Value,
			"index":  e.Card.Index,
			"hidden": e.Card.Hidden,
		}
	}
	if e.Points != 0 || e.Type == blackjack.EventPointsChanged {
		fields["points"] = e.Points
	}
	if e.Outcome != blackjack.OutcomeNone {
		fields["outcome"] = e.Outcome.String()
	}
	if e.Balance != 0 {
		fields["balance"] = e.Balance
	}
	if e.Delta != 0 {
		fields["delta"] = e.Delta
	}
	if e.BossID != "" {
		fields["boss_id"] = e.BossID
	}
	if e.Health != 0 || e.Type == blackjack.EventBossHealthChanged {
		fields["health"] = e.Health
	}
	if e.Message != "" {
		fields["message"] = e.Message
	}
	return structpb.NewStruct(fields)
}

// Encode marshals an event envelope to protobuf bytes.
func Encode(runID string, e blackjack.Event, at time.Time) ([]byte, error) {
	s, err := ToStruct(runID, e, at)
	if err != nil {
		return nil, fmt.Errorf("build envelope: %w", err)
	}
	return proto.Marshal(s)
}

// Decode is the inverse of Encode. It returns the event, the run id and the
// recording time.
func Decode(data []byte) (blackjack.Event, string, time.Time, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(data, &s); err != nil {
		return blackjack.Event{}, "", time.Time{}, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	return FromStruct(&s)
}

// DecodeB64 decodes a base64 envelope as stored on a tape.
func DecodeB64(s string) (blackjack.Event, string, time.Time, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return blackjack.Event{}, "", time.Time{}, fmt.Errorf("%w: %v", ErrBadEnvelope, err)
	}
	return Decode(data)
}

func FromStruct(s *structpb.Struct) (blackjack.Event, string, time.Time, error) {
	f := s.GetFields()
	typ, ok := blackjack.ParseEventType(f["type"].GetStringValue())
	if !ok {
		return blackjack.Event{}, "", time.Time{}, fmt.Errorf("%w: unknown type %q", ErrBadEnvelope, f["type"].GetStringValue())
	}

	e := blackjack.Event{
		Seq:     uint64(f["seq"].GetNumberValue()),
		Round:   uint32(f["round"].GetNumberValue()),
		Type:    typ,
		Points:  int(f["points"].GetNumberValue()),
		Balance: uint64(f["balance"].GetNumberValue()),
		Delta:   int64(f["delta"].GetNumberValue()),
		BossID:  f["boss_id"].GetStringValue(),
		Health:  int(f["health"].GetNumberValue()),
		Message: f["message"].GetStringValue(),
	}
	if f["side"].GetStringValue() == blackjack.SideDealer.String() {
		e.Side = blackjack.SideDealer
	}
	if name := f["outcome"].GetStringValue(); name != "" {
		for o, n := range blackjack.OutcomeDictionary {
			if n == name {
				e.Outcome = o
			}
		}
	}
	if c := f["card"].GetStructValue(); c != nil {
		cf := c.GetFields()
		e.Card = &blackjack.CardView{
			Code:   cf["code"].GetStringValue(),
			Value:  int(cf["value"].GetNumberValue()),
			Index:  int(cf["index"].GetNumberValue()),
			Hidden: cf["hidden"].GetBoolValue(),
		}
	}
	at := time.UnixMilli(int64(f["ts_ms"].GetNumberValue()))
	return e, f["run_id"].GetStringValue(), at, nil
}
