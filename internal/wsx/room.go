// path: internal/wsx/room.go
package wsx

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"portal_chess/internal/game"
)

const (
	tickInterval       = 250 * time.Millisecond
	defaultTimeMinutes = 10
	msPerMinute        = 60_000
)

// Room is the per-match state machine: waiting (host present) until a
// second player locks it, then active with a running clock, then
// terminal. All handlers and the ticker serialize on mu.
type Room struct {
	mu       sync.Mutex
	id       string
	hub      *Hub
	host     *Client
	clients  []*Client
	colors   map[*Client]game.Color
	position *game.Position
	locked   bool
	terminal bool
	clocks   [2]int64 // remaining ms per color
	lastTick time.Time
	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
}

func newRoom(hub *Hub, id string, host *Client, timeMinutes float64) *Room {
	if timeMinutes <= 0 {
		timeMinutes = 1
	}
	budget := int64(timeMinutes * msPerMinute)
	return &Room{
		id:       id,
		hub:      hub,
		host:     host,
		clients:  []*Client{host},
		colors:   make(map[*Client]game.Color, 2),
		position: game.NewDefaultPosition(),
		clocks:   [2]int64{budget, budget},
		done:     make(chan struct{}),
	}
}

func (r *Room) clocksLocked() clocksPayload {
	return clocksPayload{W: r.clocks[game.White.Index()], B: r.clocks[game.Black.Index()]}
}

func (r *Room) broadcastLocked(event string, data any) {
	for _, c := range r.clients {
		c.emit(event, nil, data)
	}
}

// join adds a socket. The second participant locks the room, assigns
// colors (host gets White) and starts the clock.
func (r *Room) join(c *Client) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.locked || r.terminal {
		return errRoomLocked
	}
	for _, cl := range r.clients {
		if cl == c {
			return errRoomLocked
		}
	}
	if r.host != nil && r.host != c {
		r.host.emit(evPlayerJoined, nil, socketPayload{SocketID: c.id})
	}
	if r.host == nil {
		r.host = c
	}
	r.clients = append(r.clients, c)
	if len(r.clients) < 2 {
		return ""
	}

	r.locked = true
	r.colors[r.host] = game.White
	for _, cl := range r.clients {
		if cl != r.host {
			r.colors[cl] = game.Black
		}
	}
	state := r.position.State()
	clocks := r.clocksLocked()
	for _, cl := range r.clients {
		cl.emit(evGameStart, nil, gameStartPayload{
			RoomID: r.id,
			Color:  r.colors[cl].Short(),
			State:  state,
			Clocks: clocks,
		})
	}
	r.lastTick = time.Now()
	r.startTickerLocked()
	return ""
}

// startTickerLocked starts the room's single ticker goroutine; a room
// that unlocked and re-locked keeps the one it already has.
func (r *Room) startTickerLocked() {
	if r.ticker != nil {
		return
	}
	ticker := time.NewTicker(tickInterval)
	r.ticker = ticker
	go func() {
		for {
			select {
			case <-r.done:
				return
			case <-ticker.C:
				r.tick()
			}
		}
	}()
}

// stop halts the ticker. Safe to call more than once and from within a
// tick.
func (r *Room) stop() {
	r.stopOnce.Do(func() {
		close(r.done)
		if r.ticker != nil {
			r.ticker.Stop()
		}
	})
}

// tick advances the side-to-move's clock and broadcasts a snapshot.
// Internal failures are swallowed to preserve room liveness.
func (r *Room) tick() {
	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("room %s: tick panic: %v", r.id, rec)
		}
	}()

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.locked || r.terminal {
		return
	}
	r.advanceClockLocked(time.Now())
	r.broadcastClockLocked()
	if r.clocks[r.position.Turn().Index()] <= 0 {
		r.flagFallLocked()
	}
}

func (r *Room) advanceClockLocked(now time.Time) {
	delta := now.Sub(r.lastTick).Milliseconds()
	if delta < 0 {
		delta = 0
	}
	idx := r.position.Turn().Index()
	r.clocks[idx] -= delta
	if r.clocks[idx] < 0 {
		r.clocks[idx] = 0
	}
	r.lastTick = now
}

func (r *Room) broadcastClockLocked() {
	r.broadcastLocked(evClock, clockPayload{
		Clocks: r.clocksLocked(),
		Turn:   r.position.Turn().Short(),
		TS:     time.Now().UnixMilli(),
	})
}

// flagFallLocked is the only time-driven terminal transition.
func (r *Room) flagFallLocked() {
	r.terminal = true
	winner := r.position.Turn().Opposite()
	r.broadcastLocked(evGameEnd, gameEndPayload{Result: resultTimeout, Winner: winner.String()})
	r.stop()
}

// makeMove validates the client's resolved move by re-deriving the legal
// outcome set from the authoritative position. The acknowledgement, the
// moveMade broadcast and the clock snapshot go out in that order.
func (r *Room) makeMove(c *Client, ackID *int64, payload *game.MoveState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.locked {
		c.ackError(ackID, errNotReady)
		return
	}
	if r.terminal {
		c.ackError(ackID, errGameOver)
		return
	}
	resolved, err := game.ParseResolvedMove(*payload)
	if err != nil {
		c.ackError(ackID, errInvalidPayload)
		return
	}
	if color, ok := r.colors[c]; !ok || color != r.position.Turn() {
		c.ackError(ackID, errIllegalMove)
		return
	}

	var matched *game.ResolvedMove
	for _, legal := range r.position.LegalMovesFrom(resolved.From) {
		if legal.Matches(resolved) {
			m := legal
			matched = &m
			break
		}
	}
	if matched == nil {
		c.ackError(ackID, errIllegalMove)
		return
	}

	// a final pre-apply tick charges the mover's remaining think time
	now := time.Now()
	r.advanceClockLocked(now)
	if r.clocks[r.position.Turn().Index()] <= 0 {
		c.ackError(ackID, errGameOver)
		r.flagFallLocked()
		return
	}

	next, err := r.position.Apply(*matched)
	if err != nil {
		log.Errorf("room %s: apply rejected matched move: %v", r.id, err)
		c.ackError(ackID, errServerError)
		return
	}
	r.position = next
	r.lastTick = now

	c.ack(ackID, okAck{OK: true})
	r.broadcastLocked(evMoveMade, moveMadePayload{
		Resolved: matched.State(),
		State:    next.State(),
		Clocks:   r.clocksLocked(),
	})
	r.broadcastClockLocked()

	if result := next.Result(); result.Status != game.Ongoing {
		r.terminal = true
		end := gameEndPayload{Result: result.Status.String()}
		if result.HasWinner {
			end.Winner = result.Winner.String()
		}
		r.broadcastLocked(evGameEnd, end)
		r.stop()
	}
}

// leave removes a socket and reports whether the room is now empty. A
// non-empty room unlocks so another player may join.
func (r *Room) leave(c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	found := false
	kept := r.clients[:0]
	for _, cl := range r.clients {
		if cl == c {
			found = true
			continue
		}
		kept = append(kept, cl)
	}
	r.clients = kept
	if !found {
		return len(r.clients) == 0
	}
	delete(r.colors, c)

	if len(r.clients) == 0 {
		r.stop()
		return true
	}
	r.broadcastLocked(evPlayerLeft, socketPayload{SocketID: c.id})
	if !r.terminal {
		r.locked = false
	}
	r.host = r.clients[0]
	return false
}
