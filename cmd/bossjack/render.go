package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"bossjack/blackjack"
	"bossjack/table"
)

var (
	dim    = color.New(color.Faint).SprintFunc()
	good   = color.New(color.FgGreen, color.Bold).SprintFunc()
	bad    = color.New(color.FgRed, color.Bold).SprintFunc()
	bossFx = color.New(color.FgMagenta).SprintFunc()
	info   = color.New(color.FgCyan).SprintFunc()
)

func renderCard(v *blackjack.CardView) string {
	if v == nil {
		return "??"
	}
	if v.Hidden {
		return "[??]"
	}
	return fmt.Sprintf("[%s=%d]", v.Code, v.Value)
}

func renderCards(cards []blackjack.CardView) string {
	parts := make([]string, 0, len(cards))
	for i := range cards {
		parts = append(parts, renderCard(&cards[i]))
	}
	return strings.Join(parts, " ")
}

// renderEvent returns one line per event, or "" for events not worth a line.
func renderEvent(e blackjack.Event) string {
	switch e.Type {
	case blackjack.EventRoundStarted:
		return info(fmt.Sprintf("-- round %d, bet %d --", e.Round, e.Delta))
	case blackjack.EventCardDealt:
		return fmt.Sprintf("%s draws %s", e.Side, renderCard(e.Card))
	case blackjack.EventPointsChanged:
		return dim(fmt.Sprintf("  %s total %d", e.Side, e.Points))
	case blackjack.EventDealerRevealed:
		return fmt.Sprintf("dealer reveals %s", renderCard(e.Card))
	case blackjack.EventDiscard:
		return fmt.Sprintf("discarded %s (%d tokens left)", renderCard(e.Card), e.Delta)
	case blackjack.EventSupplyExhausted:
		return dim("the deck is empty")
	case blackjack.EventCardStolen, blackjack.EventCardValueChanged, blackjack.EventCardRemoved,
		blackjack.EventCardHidden, blackjack.EventCardReturned, blackjack.EventCardDestroyed:
		msg := e.Message
		if msg == "" {
			msg = e.Type.String()
		}
		if e.Card != nil {
			msg += " " + renderCard(e.Card)
		}
		return bossFx(msg)
	case blackjack.EventMechanicTriggered:
		if e.Message == "" {
			return ""
		}
		return bossFx(e.Message)
	case blackjack.EventSupplyReordered:
		return bossFx("the deck shifts")
	case blackjack.EventRoundSettled:
		switch e.Outcome {
		case blackjack.OutcomePlayerWins:
			return good(fmt.Sprintf("you win +%d (balance %d)", e.Delta, e.Balance))
		case blackjack.OutcomeDealerWins:
			return bad(fmt.Sprintf("dealer wins %d (balance %d)", e.Delta, e.Balance))
		default:
			return fmt.Sprintf("push (balance %d)", e.Balance)
		}
	case blackjack.EventBalanceDepleted:
		return bad("balance depleted")
	case blackjack.EventBossSelected:
		return bossFx(fmt.Sprintf("%s steps up (%d hp)", e.Message, e.Health))
	case blackjack.EventBossHealthChanged:
		return bossFx(fmt.Sprintf("%s health %d", e.BossID, e.Health))
	case blackjack.EventBossDefeated:
		return good(fmt.Sprintf("%s defeated!", e.BossID))
	}
	return ""
}

func renderState(s table.Snapshot) string {
	var b strings.Builder
	g := s.Game
	fmt.Fprintf(&b, "balance %d  tokens %d  deck %d", g.Balance, g.DiscardTokens, g.Remaining)
	if s.BossID != "" {
		fmt.Fprintf(&b, "  boss %s %d/%d hp  hand %d/%d",
			bossFx(s.BossName), s.Health, s.MaxHealth, s.HandIndex+1, s.HandsPerVisit)
	}
	if !s.TarotEnabled {
		b.WriteString(dim("  tarot sealed"))
	}
	if g.Active {
		fmt.Fprintf(&b, "\n  you    %s = %d", renderCards(g.PlayerCards), g.PlayerPoints)
		fmt.Fprintf(&b, "\n  dealer %s = %d", renderCards(g.DealerCards), g.DealerPoints)
	}
	return b.String()
}

func renderOdds(o blackjack.Odds) string {
	return fmt.Sprintf("next card: dealer ahead %.0f%%, safe %.0f%%, bust %.0f%%",
		o.DealerHigher*100, o.PlayerInRange*100, o.PlayerBust*100)
}

func renderBosses(list []table.BossStatus) string {
	var b strings.Builder
	for i, st := range list {
		if i > 0 {
			b.WriteByte('\n')
		}
		mark := dim("locked")
		switch {
		case st.Defeated:
			mark = good("defeated")
		case st.Unlocked:
			mark = info("open")
		}
		fmt.Fprintf(&b, "%-12s %-18s %2d hp  %s", st.ID, st.Name, st.Health, mark)
		if st.FinalBoss {
			b.WriteString(bad("  final"))
		}
	}
	return b.String()
}
