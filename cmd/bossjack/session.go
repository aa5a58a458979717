package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"bossjack/blackjack"
	"bossjack/table"
	"bossjack/tape"
)

var errUsage = errors.New("usage: bet N | hit | stand | discard I | boss ID | leave | bosses | odds | state | help | quit")

type session struct {
	t   *table.Table
	out io.Writer
	rec *tape.Recorder
}

func newSession(t *table.Table, out io.Writer) *session {
	s := &session{t: t, out: out, rec: tape.NewRecorder()}
	t.AddSink(s.rec)
	t.AddSink(table.SinkFunc(func(events []blackjack.Event) {
		for _, e := range events {
			if line := renderEvent(e); line != "" {
				fmt.Fprintln(s.out, line)
			}
		}
	}))
	return s
}

func (s *session) loop(ctx context.Context, in *bufio.Reader) {
	fmt.Fprintln(s.out, renderState(s.t.Snapshot()))
	for {
		fmt.Fprint(s.out, color.New(color.Bold).Sprint("> "))
		line, err := in.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			quit, cmdErr := s.exec(ctx, line)
			if cmdErr != nil {
				fmt.Fprintln(s.out, color.RedString("%v", cmdErr))
			}
			if quit {
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// exec runs one command line. quit reports a request to leave.
func (s *session) exec(ctx context.Context, line string) (quit bool, err error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}
	var res *blackjack.SettlementResult
	switch fields[0] {
	case "bet", "b":
		if len(fields) < 2 {
			return false, errUsage
		}
		amount, perr := strconv.ParseUint(fields[1], 10, 64)
		if perr != nil {
			return false, fmt.Errorf("bad amount %q", fields[1])
		}
		res, err = s.t.Bet(ctx, amount)
	case "hit", "h":
		res, err = s.t.Hit(ctx)
	case "stand", "s":
		res, err = s.t.Stand(ctx)
	case "discard", "d":
		if len(fields) < 2 {
			return false, errUsage
		}
		idx, perr := strconv.Atoi(fields[1])
		if perr != nil {
			return false, fmt.Errorf("bad index %q", fields[1])
		}
		res, err = s.t.Discard(ctx, idx)
	case "boss":
		if len(fields) < 2 {
			return false, errUsage
		}
		err = s.t.SelectBoss(ctx, fields[1])
	case "leave":
		err = s.t.LeaveBoss(ctx)
	case "bosses":
		fmt.Fprintln(s.out, renderBosses(s.t.Bosses()))
		return false, nil
	case "odds":
		snap := s.t.Snapshot()
		if !snap.Game.Active {
			return false, blackjack.ErrRoundNotActive
		}
		fmt.Fprintln(s.out, renderOdds(snap.Game.Odds))
		return false, nil
	case "state":
		fmt.Fprintln(s.out, renderState(s.t.Snapshot()))
		return false, nil
	case "help", "?":
		fmt.Fprintln(s.out, errUsage.Error()[len("usage: "):])
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, errUsage
	}
	if err != nil {
		return false, err
	}
	if res != nil {
		fmt.Fprintln(s.out, renderState(s.t.Snapshot()))
	}
	return false, nil
}

const autoBet = 10

// autoPlay bets a flat amount and hits while a bust is less likely than not.
func (s *session) autoPlay(ctx context.Context, rounds int) {
	for i := 0; i < rounds; i++ {
		snap := s.t.Snapshot()
		if snap.Game.Balance == 0 {
			fmt.Fprintln(s.out, color.RedString("out of money after %d rounds", i))
			return
		}
		bet := uint64(autoBet)
		if bet > snap.Game.Balance {
			bet = snap.Game.Balance
		}
		res, err := s.t.Bet(ctx, bet)
		for err == nil && res == nil {
			snap = s.t.Snapshot()
			if snap.Game.PlayerPoints < 17 && snap.Game.Odds.PlayerBust < 0.5 {
				res, err = s.t.Hit(ctx)
			} else {
				res, err = s.t.Stand(ctx)
			}
		}
		if err != nil {
			fmt.Fprintln(s.out, color.RedString("round %d: %v", i+1, err))
			return
		}
	}
	fmt.Fprintln(s.out, renderState(s.t.Snapshot()))
}
