package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"bossjack/apps/server/internal/gateway"
	"bossjack/apps/server/internal/ledger"
	"bossjack/apps/server/internal/lobby"
	"bossjack/blackjack/boss"
	"bossjack/config"
	"bossjack/store"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("[Server] Invalid config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := store.Open(ctx, cfg.StoreOptions())
	cancel()
	if err != nil {
		log.Fatalf("[Server] Failed to open %s store: %v", cfg.Store, err)
	}
	defer st.Close()

	reg, err := loadRegistry(cfg.Catalog)
	if err != nil {
		log.Fatalf("[Server] Failed to load boss catalog: %v", err)
	}

	hands := ledger.New()
	lby := lobby.New(reg, st, cfg.GameConfig())
	lby.AddHandEndHook(hands.RecordHand)
	gw := gateway.New(lby, cfg.Pace, cfg.AllowedOrigins)
	auditHTTP := ledger.NewHTTPHandler(hands, lby)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	auditHTTP.RegisterRoutes(mux)

	log.Printf("[Server] Store: %s", st.Kind())
	log.Printf("[Server] Bosses: %d", reg.Count())
	log.Printf("[Server] Starting WebSocket server on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("[Server] Failed to start: %v", err)
	}
}

func loadRegistry(path string) (*boss.Registry, error) {
	if path == "" {
		return boss.DefaultRegistry()
	}
	reg := boss.NewRegistry()
	if err := reg.LoadFromFile(path); err != nil {
		return nil, err
	}
	return reg, nil
}
