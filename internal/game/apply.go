// path: internal/game/apply.go
package game

import "fmt"

const (
	sqA1 = Square(0)
	sqH1 = Square(7)
	sqA8 = Square(56)
	sqH8 = Square(63)
)

// rookRightAt maps a rook's original square to the castle right it backs.
func rookRightAt(sq Square) CastlingRights {
	switch sq {
	case sqA1:
		return CastlingWhiteQueenside
	case sqH1:
		return CastlingWhiteKingside
	case sqA8:
		return CastlingBlackQueenside
	case sqH8:
		return CastlingBlackKingside
	default:
		return CastlingNone
	}
}

// Apply advances the position by one resolved move and returns the
// successor. The receiver is never mutated. Unmatchable moves fail fast;
// callers translate the error into their own rejection code.
func (p *Position) Apply(m ResolvedMove) (*Position, error) {
	mover := p.board[m.From]
	if mover == nil {
		return nil, ErrNoPiece
	}
	if mover.Color != p.turn {
		return nil, ErrWrongColor
	}

	next := p.clone()
	moverColor := mover.Color
	pc := next.board[m.From]

	next.enPassant = NoEnPassantTarget()

	captured := false
	switch m.Kind {
	case MoveCastle:
		if pc.Type != King {
			return nil, fmt.Errorf("%w: castle without king", ErrInvalidMove)
		}
		rank := m.From.Rank()
		rookFrom, rookTo := 7, 5
		if m.Castle == CastleQueenside {
			rookFrom, rookTo = 0, 3
		}
		rookSq, _ := SquareFromCoords(rank, rookFrom)
		rook := next.board[rookSq]
		if rook == nil || rook.Type != Rook || rook.Color != moverColor {
			return nil, fmt.Errorf("%w: castle without rook", ErrInvalidMove)
		}
		destSq, _ := SquareFromCoords(rank, rookTo)
		next.board[m.From] = nil
		next.board[m.ToFinal] = pc
		next.board[rookSq] = nil
		next.board[destSq] = rook
		next.castling = next.castling.WithoutColor(moverColor)
		pc.HasMoved = true
		rook.HasMoved = true

	case MovePromotion:
		if target := next.board[m.To]; target != nil {
			if target.Color == moverColor {
				return nil, fmt.Errorf("%w: promotion onto own piece", ErrInvalidMove)
			}
			if target.Type == Rook {
				next.castling = next.castling.Without(rookRightAt(m.To))
			}
			captured = true
		}
		next.board[m.From] = nil
		next.board[m.To] = &Piece{Type: m.Promotion, Color: moverColor, HasMoved: true}

	default:
		if m.Kind == MoveCapture || m.Kind == MoveEnPassant {
			target := next.board[m.To]
			if target == nil || target.Color == moverColor {
				return nil, fmt.Errorf("%w: capture without victim", ErrInvalidMove)
			}
			if target.Type == Rook {
				next.castling = next.castling.Without(rookRightAt(m.To))
			}
			next.board[m.To] = nil
			captured = true
		}
		next.board[m.From] = nil
		if m.Via != nil && m.Via.Swapped {
			displaced := next.board[m.ToFinal]
			if displaced == nil || displaced.Color == moverColor {
				return nil, fmt.Errorf("%w: swap without victim", ErrInvalidMove)
			}
			next.board[m.ToFinal] = pc
			next.board[m.Via.Entry] = displaced
			displaced.HasMoved = true
			if displaced.Type == Rook {
				next.castling = next.castling.Without(rookRightAt(m.ToFinal))
			}
		} else {
			if next.board[m.ToFinal] != nil {
				return nil, fmt.Errorf("%w: destination occupied", ErrInvalidMove)
			}
			next.board[m.ToFinal] = pc
		}
		pc.HasMoved = true
	}

	if pc.Type == King {
		next.castling = next.castling.WithoutColor(moverColor)
	}
	if pc.Type == Rook {
		next.castling = next.castling.Without(rookRightAt(m.From))
	}

	if mover.Type == Pawn || captured {
		next.halfmove = 0
	} else {
		next.halfmove++
	}

	if m.Via != nil && m.Via.Network == NetworkNeutral && m.Via.Swapped {
		next.neutralCooldown[moverColor.Opposite().Index()] = true
	}
	if m.Via != nil && m.Via.Network == NetworkExclusive && !m.Via.Stay {
		idx := moverColor.Index()
		if next.pendingNoReturn[idx] == nil {
			next.pendingNoReturn[idx] = make(map[Square]Square, 1)
		}
		// the portal entry is the origin even when the piece moved onto
		// the portal this same turn
		next.pendingNoReturn[idx][m.ToFinal] = m.Via.Entry
	}

	// moving at all consumes the mover's one-turn restrictions
	next.neutralCooldown[moverColor.Index()] = false
	next.noReturn[moverColor.Index()] = nil

	next.turn = moverColor.Opposite()
	if next.turn == White {
		next.moveNumber++
	}
	next.history = append(next.history, m)

	if pending := next.pendingNoReturn[next.turn.Index()]; len(pending) > 0 {
		next.noReturn[next.turn.Index()] = pending
		next.pendingNoReturn[next.turn.Index()] = nil
	}

	return next, nil
}
