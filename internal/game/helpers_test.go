package game

import "testing"

func mustSq(t *testing.T, coord string) Square {
	t.Helper()
	sq, ok := ParseSquare(coord)
	if !ok {
		t.Fatalf("invalid coordinate %s", coord)
	}
	return sq
}

func wpc(pt PieceType) Piece { return Piece{Type: pt, Color: White} }
func bpc(pt PieceType) Piece { return Piece{Type: pt, Color: Black} }

// testPosition builds a position with the reference portal configuration.
func testPosition(t *testing.T, turn Color, pieces map[string]Piece) *Position {
	t.Helper()
	placed := make(map[Square]Piece, len(pieces))
	for coord, pc := range pieces {
		placed[mustSq(t, coord)] = pc
	}
	return NewPositionFromPieces(DefaultPortalConfig(), turn, placed)
}

func findMove(moves []BaseMove, kind MoveKind, to Square) (BaseMove, bool) {
	for _, m := range moves {
		if m.Kind == kind && m.To == to {
			return m, true
		}
	}
	return BaseMove{}, false
}

func hasActivationTo(moves []BaseMove, to Square) bool {
	_, ok := findMove(moves, MovePortalActivation, to)
	return ok
}

func findOutcome(outcomes []ResolvedMove, toFinal Square) (ResolvedMove, bool) {
	for _, m := range outcomes {
		if m.ToFinal == toFinal {
			return m, true
		}
	}
	return ResolvedMove{}, false
}

func applyMove(t *testing.T, p *Position, m ResolvedMove) *Position {
	t.Helper()
	next, err := p.Apply(m)
	if err != nil {
		t.Fatalf("apply %s: %v", m, err)
	}
	return next
}

// anyLegalMove picks the first legal move, used when the test only needs
// the side to move to do something.
func anyLegalMove(t *testing.T, p *Position) ResolvedMove {
	t.Helper()
	moves := p.AllLegalMoves()
	if len(moves) == 0 {
		t.Fatalf("no legal move for %s", p.Turn())
	}
	return moves[0]
}
