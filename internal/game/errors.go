// path: internal/game/errors.go
package game

import "errors"

var (
	ErrInvalidSquare = errors.New("invalid square label")
	ErrInvalidMove   = errors.New("invalid move")
	ErrNoPiece       = errors.New("no piece at source square")
	ErrWrongColor    = errors.New("piece does not belong to side to move")
)
