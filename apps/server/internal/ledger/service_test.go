package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bossjack/blackjack"
	"bossjack/blackjack/boss"
	"bossjack/table"
	"bossjack/tape"
)

func TestRecordHand_NewestFirstAndBounded(t *testing.T) {
	l := New()
	l.recentLimit = 3
	for round := uint32(1); round <= 5; round++ {
		l.RecordHand("alice", table.HandEndInfo{
			TableID: "table_1",
			Result:  &blackjack.SettlementResult{Round: round, Outcome: blackjack.OutcomePlayerWins, Bet: 10, Delta: 20},
			BossID:  "forger",
		})
	}
	l.RecordHand("alice", table.HandEndInfo{TableID: "table_1"})

	items := l.ListRecent("alice", 10)
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].HandID != "table_1-r5" || items[2].HandID != "table_1-r3" {
		t.Fatalf("unexpected order: %s .. %s", items[0].HandID, items[2].HandID)
	}
	if items[0].Outcome != "player_wins" || items[0].BossID != "forger" {
		t.Fatalf("unexpected item: %+v", items[0])
	}
	if got := l.ListRecent("bob", 10); len(got) != 0 {
		t.Fatalf("expected no items for bob, got %d", len(got))
	}
}

func TestRecordReplay_EvictsOldest(t *testing.T) {
	l := New()
	l.replayLimit = 2
	for _, id := range []string{"a", "b", "c"} {
		l.RecordReplay(&tape.Tape{RunID: id})
	}
	if _, err := l.GetReplay("a"); err != ErrNotFound {
		t.Fatalf("expected oldest evicted, got %v", err)
	}
	if _, err := l.GetReplay("c"); err != nil {
		t.Fatalf("expected newest kept, got %v", err)
	}
}

type testReplayer struct{ reg *boss.Registry }

func (r testReplayer) Replay(ctx context.Context, spec tape.RunSpec) (*tape.Tape, error) {
	return table.Replay(ctx, spec, r.reg)
}

func (r testReplayer) Registry() *boss.Registry { return r.reg }

func newTestMux(t *testing.T) (*http.ServeMux, *Ledger) {
	t.Helper()
	reg, err := boss.DefaultRegistry()
	if err != nil {
		t.Fatalf("DefaultRegistry err: %v", err)
	}
	l := New()
	mux := http.NewServeMux()
	NewHTTPHandler(l, testReplayer{reg: reg}).RegisterRoutes(mux)
	return mux, l
}

func TestHTTP_ReplayStoresTape(t *testing.T) {
	mux, _ := newTestMux(t)
	body, _ := json.Marshal(tape.RunSpec{
		Seed:    4,
		Balance: 100,
		Rounds:  []tape.RoundSpec{{Bet: 10}},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/replay", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Item HistoryItem    `json:"item"`
		Tape *tape.WireTape `json:"tape"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if resp.Tape == nil || len(resp.Tape.Events) == 0 || resp.Item.EventsCount != len(resp.Tape.Events) {
		t.Fatalf("unexpected replay response: %+v", resp)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/replay/"+resp.Tape.RunID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected stored tape, got %d", rec.Code)
	}
}

func TestHTTP_ReplayErrors(t *testing.T) {
	mux, _ := newTestMux(t)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/replay", bytes.NewReader([]byte(`{"bogus":1}`))))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	body, _ := json.Marshal(tape.RunSpec{Seed: 1, Balance: 5, Rounds: []tape.RoundSpec{{Bet: 50}}})
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/replay", bytes.NewReader(body)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/replay/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHTTP_BossesAndRecent(t *testing.T) {
	mux, l := newTestMux(t)
	l.RecordHand("default", table.HandEndInfo{
		TableID: "table_1",
		Result:  &blackjack.SettlementResult{Round: 1, Outcome: blackjack.OutcomeDraw},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bosses", nil))
	var bosses struct {
		Items []bossItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &bosses); err != nil || len(bosses.Items) == 0 {
		t.Fatalf("unexpected bosses response: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/hands/recent", nil))
	var recent struct {
		Profile string        `json:"profile"`
		Items   []HistoryItem `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &recent); err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if recent.Profile != "default" || len(recent.Items) != 1 || recent.Items[0].Outcome != "draw" {
		t.Fatalf("unexpected recent response: %+v", recent)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bosses", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
