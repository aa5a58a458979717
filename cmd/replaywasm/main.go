//go:build js && wasm

package main

import (
	"context"
	"encoding/json"
	"errors"
	"syscall/js"

	"bossjack/blackjack/boss"
	"bossjack/table"
	"bossjack/tape"
)

type initRequest struct {
	Spec tape.RunSpec `json:"spec"`
	// Optional catalog override, JSON encoded boss definitions.
	Catalog json.RawMessage `json:"catalog,omitempty"`
}

type initResponse struct {
	OK    bool              `json:"ok"`
	Tape  *tape.WireTape    `json:"tape,omitempty"`
	Error *tape.ReplayError `json:"error,omitempty"`
}

func main() {
	js.Global().Set("__replayInit", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return mustJSON(initResponse{
				OK:    false,
				Error: &tape.ReplayError{RoundIndex: -1, StepIndex: -1, Reason: "invalid_request", Message: "missing request payload"},
			})
		}
		raw := args[0].String()
		resp := handleInit(raw)
		return mustJSON(resp)
	}))

	select {}
}

func handleInit(raw string) initResponse {
	var req initRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return initResponse{
			OK:    false,
			Error: &tape.ReplayError{RoundIndex: -1, StepIndex: -1, Reason: "invalid_json", Message: err.Error()},
		}
	}

	reg, err := registryFor(req.Catalog)
	if err != nil {
		return initResponse{
			OK:    false,
			Error: &tape.ReplayError{RoundIndex: -1, StepIndex: -1, Reason: "invalid_catalog", Message: err.Error()},
		}
	}

	t, err := table.Replay(context.Background(), req.Spec, reg)
	if err != nil {
		var replayErr *tape.ReplayError
		if errors.As(err, &replayErr) {
			return initResponse{OK: false, Error: replayErr}
		}
		return initResponse{
			OK:    false,
			Error: &tape.ReplayError{RoundIndex: -1, StepIndex: -1, Reason: "replay_generation_failed", Message: err.Error()},
		}
	}
	return initResponse{
		OK:   true,
		Tape: tape.ToWireTape(t),
	}
}

func registryFor(catalog json.RawMessage) (*boss.Registry, error) {
	if len(catalog) == 0 {
		return boss.DefaultRegistry()
	}
	reg := boss.NewRegistry()
	if err := reg.LoadFromJSON(catalog); err != nil {
		return nil, err
	}
	return reg, nil
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		fallback := initResponse{
			OK:    false,
			Error: &tape.ReplayError{RoundIndex: -1, StepIndex: -1, Reason: "marshal_failed", Message: err.Error()},
		}
		b2, _ := json.Marshal(fallback)
		return string(b2)
	}
	return string(b)
}
