// Command bossjack plays boss blackjack in the terminal.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/fatih/color"

	"bossjack/blackjack/boss"
	"bossjack/config"
	"bossjack/store"
	"bossjack/table"
	"bossjack/tape"
)

func main() {
	auto := flag.Int("auto", 0, "auto-play this many rounds and exit")
	tapePath := flag.String("tape", "", "write the session tape as JSON to this file on exit")
	bossID := flag.String("boss", "", "select this boss before the first round")
	verbose := flag.Bool("v", false, "keep engine logs on stderr")
	flag.Parse()

	if !*verbose {
		log.SetOutput(discard{})
	}

	cfg, err := config.FromEnv()
	if err != nil {
		color.Red("config: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	st, err := store.Open(openCtx, cfg.StoreOptions())
	cancel()
	if err != nil {
		color.Red("open %s store: %v", cfg.Store, err)
		os.Exit(1)
	}
	defer st.Close()

	reg, err := loadRegistry(cfg.Catalog)
	if err != nil {
		color.Red("boss catalog: %v", err)
		os.Exit(1)
	}

	t, err := table.New(ctx, "cli", table.Options{Game: cfg.GameConfig(), Registry: reg, Store: st})
	if err != nil {
		color.Red("start table: %v", err)
		os.Exit(1)
	}
	defer t.Close()

	s := newSession(t, os.Stdout)
	color.Green("bossjack: store=%s profile=%s balance=%d", st.Kind(), st.Profile(), t.Snapshot().Game.Balance)

	if *bossID != "" {
		if _, err := s.exec(ctx, "boss "+*bossID); err != nil {
			color.Red("%v", err)
		}
	}

	if *auto > 0 {
		s.autoPlay(ctx, *auto)
	} else {
		s.loop(ctx, bufio.NewReader(os.Stdin))
	}

	if *tapePath != "" {
		if err := writeTape(*tapePath, s.rec.Tape()); err != nil {
			color.Red("write tape: %v", err)
			os.Exit(1)
		}
		color.Cyan("tape written to %s (%d events)", *tapePath, s.rec.Len())
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

func writeTape(path string, t *tape.Tape) error {
	data, err := json.MarshalIndent(tape.ToWireTape(t), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
