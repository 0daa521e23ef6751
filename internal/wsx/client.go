// path: internal/wsx/client.go
package wsx

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	sendBuffer   = 32
	writeTimeout = 10 * time.Second
)

// Client is one connected socket: a read pump feeding the hub and a
// buffered write pump draining outbound events.
type Client struct {
	id   string
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

func newClient(id string, hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		id:   id,
		hub:  hub,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
}

func (c *Client) ID() string { return c.id }

// emit marshals and queues one event. A full buffer drops the frame;
// clients recover from the authoritative state on the next moveMade.
func (c *Client) emit(event string, ack *int64, data any) {
	frame, err := json.Marshal(outbound{Event: event, Ack: ack, Data: data})
	if err != nil {
		log.Warnf("marshal %s: %v", event, err)
		return
	}
	select {
	case c.send <- frame:
	default:
		log.Warnf("dropping %s to %s: send buffer full", event, c.id)
	}
}

func (c *Client) ack(id *int64, data any) {
	if id == nil {
		return
	}
	c.emit(evAck, id, data)
}

func (c *Client) ackError(id *int64, code string) {
	c.ack(id, errorAck{Error: code})
}

// readPump blocks until the socket dies, handing each frame to the hub.
func (c *Client) readPump() {
	defer c.hub.disconnect(c)
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debugf("socket %s read: %v", c.id, err)
			}
			return
		}
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Debugf("socket %s sent malformed frame", c.id)
			continue
		}
		c.hub.dispatch(c, env)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for frame := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
