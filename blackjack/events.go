package blackjack

// EventType tags an entry of the game's change log.
type EventType byte

const (
	EventRoundStarted      EventType = 1
	EventCardDealt         EventType = 2
	EventPointsChanged     EventType = 3
	EventDealerRevealed    EventType = 4
	EventCardStolen        EventType = 5
	EventCardValueChanged  EventType = 6
	EventCardRemoved       EventType = 7
	EventCardHidden        EventType = 8
	EventCardReturned      EventType = 9
	EventCardDestroyed     EventType = 10
	EventDiscard           EventType = 11
	EventSupplyExhausted   EventType = 12
	EventRoundSettled      EventType = 13
	EventBalanceDepleted   EventType = 14
	EventMechanicTriggered EventType = 15
	EventBossHealthChanged EventType = 16
	EventBossDefeated      EventType = 17
	EventBossSelected      EventType = 18
	EventSupplyReordered   EventType = 19
)

var EventTypeDictionary = map[EventType]string{
	EventRoundStarted:      "roundStarted",
	EventCardDealt:         "cardDealt",
	EventPointsChanged:     "pointsChanged",
	EventDealerRevealed:    "dealerRevealed",
	EventCardStolen:        "cardStolen",
	EventCardValueChanged:  "cardValueChanged",
	EventCardRemoved:       "cardRemoved",
	EventCardHidden:        "cardHidden",
	EventCardReturned:      "cardReturned",
	EventCardDestroyed:     "cardDestroyed",
	EventDiscard:           "discard",
	EventSupplyExhausted:   "supplyExhausted",
	EventRoundSettled:      "roundSettled",
	EventBalanceDepleted:   "balanceDepleted",
	EventMechanicTriggered: "mechanicTriggered",
	EventBossHealthChanged: "bossHealthChanged",
	EventBossDefeated:      "bossDefeated",
	EventBossSelected:      "bossSelected",
	EventSupplyReordered:   "supplyReordered",
}

func (t EventType) String() string { return EventTypeDictionary[t] }

// ParseEventType is the inverse of EventType.String.
func ParseEventType(s string) (EventType, bool) {
	for t, name := range EventTypeDictionary {
		if name == s {
			return t, true
		}
	}
	return 0, false
}

// Event is one entry of the change log a presentation layer replays at its
// own pace. Only the fields relevant to Type are set.
type Event struct {
	Seq     uint64    `json:"seq"`
	Round   uint32    `json:"round"`
	Type    EventType `json:"type"`
	Side    Side      `json:"side"`
	Card    *CardView `json:"card,omitempty"`
	Points  int       `json:"points,omitempty"`
	Outcome Outcome   `json:"outcome,omitempty"`
	Balance uint64    `json:"balance,omitempty"`
	Delta   int64     `json:"delta,omitempty"`
	BossID  string    `json:"boss_id,omitempty"`
	Health  int       `json:"health,omitempty"`
	Message string    `json:"message,omitempty"`
}

// Emitter accepts events. The game log and the test recorders implement it.
type Emitter interface {
	Emit(e Event)
}

// EventLog is an append-only queue of events with monotonically increasing
// sequence numbers.
type EventLog struct {
	nextSeq uint64
	round   uint32
	pending []Event
}

func (l *EventLog) Emit(e Event) {
	l.nextSeq++
	e.Seq = l.nextSeq
	if e.Round == 0 {
		e.Round = l.round
	}
	l.pending = append(l.pending, e)
}

// Drain returns and clears the pending events.
func (l *EventLog) Drain() []Event {
	out := l.pending
	l.pending = nil
	return out
}

func (l *EventLog) Len() int { return len(l.pending) }

// CardEvent builds an event carrying a card view.
func CardEvent(t EventType, side Side, c *Card, msg string) Event {
	v := viewOf(c)
	return Event{Type: t, Side: side, Card: &v, Message: msg}
}
