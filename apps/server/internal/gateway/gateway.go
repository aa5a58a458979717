package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"bossjack/apps/server/internal/lobby"
	"bossjack/blackjack"
	"bossjack/table"
	"bossjack/tape"
)

const (
	errCodeBadMessage = 1
	errCodeJoin       = 2
	errCodeNoTable    = 3
	errCodeRejected   = 4
	errCodeUnknown    = 5
)

// Command is a client request, sent as a JSON text frame.
type Command struct {
	Type    string `json:"type"` // join, bet, hit, stand, discard, boss, leave_boss, state, bosses
	Profile string `json:"profile,omitempty"`
	Amount  uint64 `json:"amount,omitempty"`
	Index   int    `json:"index,omitempty"`
	BossID  string `json:"boss_id,omitempty"`
}

// Message is a server reply, sent as a JSON text frame. Engine events go
// out as binary tape envelopes instead.
type Message struct {
	Type     string                      `json:"type"` // joined, snapshot, settled, bosses, error
	TableID  string                      `json:"table_id,omitempty"`
	Snapshot *table.Snapshot             `json:"snapshot,omitempty"`
	Result   *blackjack.SettlementResult `json:"result,omitempty"`
	Bosses   []table.BossStatus          `json:"bosses,omitempty"`
	Code     int32                       `json:"code,omitempty"`
	Error    string                      `json:"error,omitempty"`
}

type frame struct {
	binary bool
	data   []byte
}

// Connection represents a WebSocket client connection
type Connection struct {
	ID       string
	Profile  string
	Conn     *websocket.Conn
	Send     chan frame
	Gateway  *Gateway
	LastPing time.Time

	// event and snapshot frames, written in order at the gateway pace
	paced  chan frame
	ctx    context.Context
	cancel context.CancelFunc

	Table *table.Table
}

// Gateway manages WebSocket connections
type Gateway struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	nextConnID  uint64
	lobby       *lobby.Lobby
	pace        time.Duration
	origins     map[string]bool
	upgrader    websocket.Upgrader
}

// New creates a new Gateway instance. pace spaces consecutive event frames
// so clients can animate them. origins lists the browser origins allowed
// to connect; an empty list or "*" accepts any origin.
func New(lby *lobby.Lobby, pace time.Duration, origins []string) *Gateway {
	g := &Gateway{
		connections: make(map[string]*Connection),
		lobby:       lby,
		pace:        pace,
	}
	for _, o := range origins {
		o = strings.ToLower(strings.TrimSpace(o))
		if o == "" {
			continue
		}
		if g.origins == nil {
			g.origins = make(map[string]bool)
		}
		g.origins[o] = true
	}
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     g.checkOrigin,
	}
	return g
}

func (g *Gateway) checkOrigin(r *http.Request) bool {
	if g.origins == nil || g.origins["*"] {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		// not a browser
		return true
	}
	if g.origins[strings.ToLower(origin)] {
		return true
	}
	log.Printf("[Gateway] Rejected origin %q", origin)
	return false
}

// HandleWebSocket handles WebSocket upgrade and connection
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Gateway] Upgrade error: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	g.mu.Lock()
	g.nextConnID++
	c := &Connection{
		ID:       fmt.Sprintf("conn_%d", g.nextConnID),
		Conn:     conn,
		Send:     make(chan frame, 256),
		paced:    make(chan frame, 1024),
		Gateway:  g,
		LastPing: time.Now(),
		ctx:      ctx,
		cancel:   cancel,
	}
	g.connections[c.ID] = c
	total := len(g.connections)
	g.mu.Unlock()

	log.Printf("[Gateway] Client connected: %s, total: %d", c.ID, total)

	go c.readPump()
	go c.writePump()
	go c.pacePump()
}

func (c *Connection) readPump() {
	defer func() {
		c.Gateway.removeConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(65536)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		c.LastPing = time.Now()
		return nil
	})

	for {
		messageType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Gateway] Read error: %v", err)
			}
			break
		}

		if messageType == websocket.TextMessage {
			c.handleMessage(message)
		}
	}
}

func (c *Connection) handleMessage(data []byte) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		log.Printf("[Gateway] Failed to unmarshal: %v", err)
		c.sendError(errCodeBadMessage, "invalid message format")
		return
	}

	switch strings.ToLower(cmd.Type) {
	case "join":
		c.handleJoin(cmd.Profile)
	case "bosses":
		c.sendNow(Message{Type: "bosses", Bosses: c.bosses()})
	case "state":
		if c.Table == nil {
			c.sendError(errCodeNoTable, "not in a table")
			return
		}
		c.sendPacedSnapshot()
	case "bet":
		c.handleAction(func(t *table.Table) (*blackjack.SettlementResult, error) { return t.Bet(c.ctx, cmd.Amount) })
	case "hit":
		c.handleAction(func(t *table.Table) (*blackjack.SettlementResult, error) { return t.Hit(c.ctx) })
	case "stand":
		c.handleAction(func(t *table.Table) (*blackjack.SettlementResult, error) { return t.Stand(c.ctx) })
	case "discard":
		c.handleAction(func(t *table.Table) (*blackjack.SettlementResult, error) { return t.Discard(c.ctx, cmd.Index) })
	case "boss":
		c.handleAction(func(t *table.Table) (*blackjack.SettlementResult, error) { return nil, t.SelectBoss(c.ctx, cmd.BossID) })
	case "leave_boss":
		c.handleAction(func(t *table.Table) (*blackjack.SettlementResult, error) { return nil, t.LeaveBoss(c.ctx) })
	default:
		log.Printf("[Gateway] Unknown command from %s: %q", c.ID, cmd.Type)
		c.sendError(errCodeUnknown, fmt.Sprintf("unknown command %q", cmd.Type))
	}
}

func (c *Connection) handleJoin(profile string) {
	if c.Table != nil {
		c.sendError(errCodeJoin, "already in a table")
		return
	}
	t, err := c.Gateway.lobby.Join(c.ctx, profile)
	if err != nil {
		c.sendError(errCodeJoin, err.Error())
		return
	}
	c.Table = t
	c.Profile = profile
	t.AddSink(table.SinkFunc(c.recordEvents))

	snap := t.Snapshot()
	c.sendNow(Message{Type: "joined", TableID: t.ID, Snapshot: &snap})
	log.Printf("[Gateway] %s joined table %s", c.ID, t.ID)
}

func (c *Connection) handleAction(fn func(t *table.Table) (*blackjack.SettlementResult, error)) {
	if c.Table == nil {
		c.sendError(errCodeNoTable, "not in a table")
		return
	}
	res, err := fn(c.Table)
	if err != nil {
		c.sendError(errCodeRejected, err.Error())
		return
	}
	if res != nil {
		c.queue(Message{Type: "settled", TableID: c.Table.ID, Result: res})
	}
	c.sendPacedSnapshot()
}

// recordEvents runs under the table lock and must not block.
func (c *Connection) recordEvents(events []blackjack.Event) {
	now := time.Now()
	for _, e := range events {
		data, err := tape.Encode(c.ID, e, now)
		if err != nil {
			log.Printf("[Gateway] %s: encode event %d: %v", c.ID, e.Seq, err)
			continue
		}
		select {
		case c.paced <- frame{binary: true, data: data}:
		default:
			log.Printf("[Gateway] %s: event queue full, dropped %s", c.ID, e.Type)
		}
	}
}

func (c *Connection) sendPacedSnapshot() {
	snap := c.Table.Snapshot()
	c.queue(Message{Type: "snapshot", TableID: c.Table.ID, Snapshot: &snap})
}

func (c *Connection) bosses() []table.BossStatus {
	if c.Table != nil {
		return c.Table.Bosses()
	}
	defs := c.Gateway.lobby.Registry().All()
	out := make([]table.BossStatus, 0, len(defs))
	for _, d := range defs {
		out = append(out, table.BossStatus{
			ID:          d.ID,
			Name:        d.Name,
			Tagline:     d.Tagline,
			Health:      d.MaxHealth(),
			UnlockOrder: d.UnlockOrder,
			FinalBoss:   d.FinalBoss,
		})
	}
	return out
}

// queue appends a message behind any pending event frames.
func (c *Connection) queue(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[Gateway] marshal %s: %v", msg.Type, err)
		return
	}
	select {
	case c.paced <- frame{data: data}:
	case <-c.ctx.Done():
	}
}

func (c *Connection) sendNow(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("[Gateway] marshal %s: %v", msg.Type, err)
		return
	}
	select {
	case c.Send <- frame{data: data}:
	case <-c.ctx.Done():
	}
}

func (c *Connection) sendError(code int32, msg string) {
	c.sendNow(Message{Type: "error", Code: code, Error: msg})
}

// pacePump forwards queued frames to the writer, spacing event frames.
func (c *Connection) pacePump() {
	pace := c.Gateway.pace
	for {
		select {
		case <-c.ctx.Done():
			return
		case f := <-c.paced:
			select {
			case c.Send <- f:
			case <-c.ctx.Done():
				return
			}
			if f.binary && pace > 0 {
				timer := time.NewTimer(pace)
				select {
				case <-timer.C:
				case <-c.ctx.Done():
					timer.Stop()
					return
				}
			}
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			c.Conn.SetWriteDeadline(time.Now().Add(time.Second))
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case f := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			kind := websocket.TextMessage
			if f.binary {
				kind = websocket.BinaryMessage
			}
			if err := c.Conn.WriteMessage(kind, f.data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) removeConnection(c *Connection) {
	c.cancel()
	if c.Table != nil {
		g.lobby.Leave(c.Profile)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.connections, c.ID)
	log.Printf("[Gateway] Client disconnected: %s, total: %d", c.ID, len(g.connections))
}

// ConnectionCount returns the number of live connections.
func (g *Gateway) ConnectionCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.connections)
}
