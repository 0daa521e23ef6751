// path: internal/wsx/hub.go
package wsx

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Hub owns the rooms table, the only process-wide mutable structure. It
// is touched on connect, disconnect, create and join; room internals are
// guarded by the rooms themselves.
type Hub struct {
	mu         sync.Mutex
	rooms      map[string]*Room
	membership map[*Client]*Room
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		membership: make(map[*Client]*Room),
	}
}

// newRoomID allocates 5 hex chars from cryptographic randomness.
func newRoomID() string {
	var b [3]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])[:5]
}

func newSocketID() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

func (h *Hub) dispatch(c *Client, env envelope) {
	switch env.Event {
	case evCreateRoom:
		h.createRoom(c, env)
	case evJoinRoom:
		h.joinRoom(c, env)
	case evMakeMove:
		h.makeMove(c, env)
	default:
		log.Debugf("socket %s: unknown event %q", c.id, env.Event)
	}
}

func (h *Hub) createRoom(c *Client, env envelope) {
	minutes := float64(defaultTimeMinutes)
	if len(env.Data) > 0 {
		var payload createRoomPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			c.ackError(env.Ack, errInvalidPayload)
			return
		}
		if payload.TimeMinutes != nil {
			minutes = *payload.TimeMinutes
		}
	}

	h.mu.Lock()
	id := newRoomID()
	for h.rooms[id] != nil {
		id = newRoomID()
	}
	room := newRoom(h, id, c, minutes)
	h.rooms[id] = room
	h.membership[c] = room
	h.mu.Unlock()

	log.Infof("room %s created by %s", id, c.id)
	c.ack(env.Ack, roomIDAck{RoomID: id})
}

func (h *Hub) joinRoom(c *Client, env envelope) {
	roomID := parseJoinPayload(env.Data)
	if roomID == "" {
		c.ackError(env.Ack, errMissingRoomID)
		return
	}

	h.mu.Lock()
	room, ok := h.rooms[roomID]
	h.mu.Unlock()
	if !ok {
		c.ackError(env.Ack, errNotFound)
		return
	}

	if code := room.join(c); code != "" {
		c.ackError(env.Ack, code)
		return
	}

	h.mu.Lock()
	h.membership[c] = room
	h.mu.Unlock()
	c.ack(env.Ack, okAck{OK: true})
}

func (h *Hub) makeMove(c *Client, env envelope) {
	var payload makeMovePayload
	if err := json.Unmarshal(env.Data, &payload); err != nil || payload.Resolved == nil {
		c.ackError(env.Ack, errInvalidPayload)
		return
	}

	h.mu.Lock()
	room, ok := h.rooms[payload.RoomID]
	h.mu.Unlock()
	if !ok {
		c.ackError(env.Ack, errNotFound)
		return
	}
	room.makeMove(c, env.Ack, payload.Resolved)
}

// disconnect removes the socket from its room; an emptied room is
// destroyed with its ticker.
func (h *Hub) disconnect(c *Client) {
	h.mu.Lock()
	room := h.membership[c]
	delete(h.membership, c)
	h.mu.Unlock()

	if room != nil {
		if empty := room.leave(c); empty {
			h.mu.Lock()
			delete(h.rooms, room.id)
			h.mu.Unlock()
			room.stop()
			log.Infof("room %s destroyed", room.id)
		}
	}
	close(c.send)
}

// RoomCount reports the number of live rooms; tests use it.
func (h *Hub) RoomCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}
