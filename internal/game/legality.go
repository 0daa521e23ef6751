// path: internal/game/legality.go
package game

// InCheck reports whether color's king can be reached by any opponent
// resolved move. Unlike the attack oracle this definition runs the full
// generator and expander; it is used for final move legality, never for
// castling path tests.
func (p *Position) InCheck(color Color) bool {
	kingSq, ok := p.kingSquare(color)
	if !ok {
		return false
	}
	enemy := color.Opposite()
	for idx, pc := range p.board {
		if pc == nil || pc.Color != enemy {
			continue
		}
		for _, bm := range p.movesForPiece(Square(idx)) {
			for _, rm := range p.Expand(bm) {
				if rm.ToFinal == kingSq {
					return true
				}
			}
		}
	}
	return false
}

// LegalMovesFrom expands every pseudo-legal base move from the square
// and keeps the outcomes that do not leave the mover in check.
func (p *Position) LegalMovesFrom(from Square) []ResolvedMove {
	pc := p.board[from]
	if pc == nil || pc.Color != p.turn {
		return nil
	}
	mover := p.turn
	var legal []ResolvedMove
	for _, bm := range p.MovesFrom(from) {
		for _, rm := range p.Expand(bm) {
			next, err := p.Apply(rm)
			if err != nil {
				continue
			}
			if !next.InCheck(mover) {
				legal = append(legal, rm)
			}
		}
	}
	return legal
}

// AllLegalMoves enumerates the side to move's legal resolved moves
// across all its pieces.
func (p *Position) AllLegalMoves() []ResolvedMove {
	var legal []ResolvedMove
	for idx, pc := range p.board {
		if pc == nil || pc.Color != p.turn {
			continue
		}
		legal = append(legal, p.LegalMovesFrom(Square(idx))...)
	}
	return legal
}

// HasLegalMove short-circuits the full enumeration; the result evaluator
// only needs existence.
func (p *Position) HasLegalMove() bool {
	for idx, pc := range p.board {
		if pc == nil || pc.Color != p.turn {
			continue
		}
		if len(p.LegalMovesFrom(Square(idx))) > 0 {
			return true
		}
	}
	return false
}
