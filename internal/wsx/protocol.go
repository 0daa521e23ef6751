// path: internal/wsx/protocol.go
package wsx

import (
	"encoding/json"

	"portal_chess/internal/game"
)

// Client -> server events.
const (
	evCreateRoom = "createRoom"
	evJoinRoom   = "joinRoom"
	evMakeMove   = "makeMove"
)

// Server -> client events.
const (
	evAck          = "ack"
	evGameStart    = "gameStart"
	evPlayerJoined = "playerJoined"
	evPlayerLeft   = "playerLeft"
	evMoveMade     = "moveMade"
	evClock        = "clock"
	evGameEnd      = "gameEnd"
)

// Acknowledgement error codes. Each names a single contract violation;
// none of them terminates the connection.
const (
	errMissingRoomID  = "missing-room-id"
	errNotFound       = "not-found"
	errRoomLocked     = "room-locked"
	errInvalidPayload = "invalid-payload"
	errNotReady       = "not-ready"
	errGameOver       = "game-over"
	errIllegalMove    = "illegal-move"
	errServerError    = "server-error"
)

// envelope is the wire frame: client messages carry an ack id that the
// server echoes on the matching acknowledgement.
type envelope struct {
	Event string          `json:"event"`
	Ack   *int64          `json:"ack,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type outbound struct {
	Event string `json:"event"`
	Ack   *int64 `json:"ack,omitempty"`
	Data  any    `json:"data,omitempty"`
}

type createRoomPayload struct {
	TimeMinutes *float64 `json:"timeMinutes"`
}

type joinRoomPayload struct {
	RoomID string `json:"roomId"`
}

type makeMovePayload struct {
	RoomID   string          `json:"roomId"`
	Resolved *game.MoveState `json:"resolved"`
}

type clocksPayload struct {
	W int64 `json:"w"`
	B int64 `json:"b"`
}

type roomIDAck struct {
	RoomID string `json:"roomId"`
}

type okAck struct {
	OK bool `json:"ok"`
}

type errorAck struct {
	Error string `json:"error"`
}

type gameStartPayload struct {
	RoomID string             `json:"roomId"`
	Color  string             `json:"color"`
	State  game.PositionState `json:"state"`
	Clocks clocksPayload      `json:"clocks"`
}

type socketPayload struct {
	SocketID string `json:"socketId"`
}

type moveMadePayload struct {
	Resolved game.MoveState     `json:"resolved"`
	State    game.PositionState `json:"state"`
	Clocks   clocksPayload      `json:"clocks"`
}

type clockPayload struct {
	Clocks clocksPayload `json:"clocks"`
	Turn   string        `json:"turn"`
	TS     int64         `json:"ts"`
}

type gameEndPayload struct {
	Result string `json:"result"`
	Winner string `json:"winner,omitempty"`
}

const resultTimeout = "timeout"

// parseJoinPayload accepts either {"roomId": "..."} or a bare string.
func parseJoinPayload(raw json.RawMessage) string {
	var bare string
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare
	}
	var obj joinRoomPayload
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.RoomID
	}
	return ""
}
