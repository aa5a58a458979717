package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"bossjack/blackjack/boss"
	"bossjack/store"
	"bossjack/tape"
)

// Replayer plays scripted runs.
type Replayer interface {
	Replay(ctx context.Context, spec tape.RunSpec) (*tape.Tape, error)
	Registry() *boss.Registry
}

type HTTPHandler struct {
	ledger   *Ledger
	replayer Replayer
}

type errorResponse struct {
	Error string `json:"error"`
}

type bossItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tagline     string `json:"tagline,omitempty"`
	Health      int    `json:"health"`
	Hands       int    `json:"hands_per_round"`
	UnlockOrder int    `json:"unlock_order"`
	FinalBoss   bool   `json:"final_boss,omitempty"`
}

func NewHTTPHandler(l *Ledger, r Replayer) *HTTPHandler {
	return &HTTPHandler{ledger: l, replayer: r}
}

func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/hands/recent", h.handleRecent)
	mux.HandleFunc("/api/bosses", h.handleBosses)
	mux.HandleFunc("/api/replay", h.handleReplay)
	mux.HandleFunc("/api/replay/", h.handleGetReplay)
}

func (h *HTTPHandler) handleRecent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	profile := strings.TrimSpace(r.URL.Query().Get("profile"))
	if profile == "" {
		profile = store.DefaultProfile
	}
	limit := parseLimit(r.URL.Query().Get("limit"))
	writeJSON(w, http.StatusOK, map[string]any{
		"profile": profile,
		"items":   h.ledger.ListRecent(profile, limit),
	})
}

func (h *HTTPHandler) handleBosses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	defs := h.replayer.Registry().All()
	items := make([]bossItem, 0, len(defs))
	for _, d := range defs {
		items = append(items, bossItem{
			ID:          d.ID,
			Name:        d.Name,
			Tagline:     d.Tagline,
			Health:      d.MaxHealth(),
			Hands:       d.Hands(),
			UnlockOrder: d.UnlockOrder,
			FinalBoss:   d.FinalBoss,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// handleReplay plays a posted RunSpec and returns its wire tape.
func (h *HTTPHandler) handleReplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var spec tape.RunSpec
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()
	t, err := h.replayer.Replay(ctx, spec)
	if err != nil {
		var re *tape.ReplayError
		if errors.As(err, &re) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"error": re})
			return
		}
		writeError(w, http.StatusInternalServerError, "replay failed")
		return
	}
	item := h.ledger.RecordReplay(t)
	writeJSON(w, http.StatusOK, map[string]any{
		"item": item,
		"tape": tape.ToWireTape(t),
	})
}

func (h *HTTPHandler) handleGetReplay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	runID := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/api/replay/"))
	if runID == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	t, err := h.ledger.GetReplay(runID)
	if err != nil {
		writeError(w, http.StatusNotFound, "replay not found")
		return
	}
	writeJSON(w, http.StatusOK, tape.ToWireTape(t))
}

func parseLimit(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 20
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 20
	}
	if n > 100 {
		return 100
	}
	return n
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
