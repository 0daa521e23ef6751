package game

import "testing"

func TestPinnedPieceCannotLeaveTheFile(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{
		"E1": wpc(King),
		"E2": wpc(Rook),
		"E8": bpc(Rook),
	})
	for _, m := range pos.LegalMovesFrom(mustSq(t, "E2")) {
		if m.ToFinal.File() != mustSq(t, "E1").File() {
			t.Fatalf("pinned rook escaped the file: %v", m)
		}
	}
}

func TestEveryLegalMoveLeavesKingSafe(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{
		"E1": wpc(King),
		"D2": wpc(Queen),
		"E8": bpc(Rook),
		"A8": bpc(King),
	})
	moves := pos.AllLegalMoves()
	if len(moves) == 0 {
		t.Fatalf("expected legal moves")
	}
	for _, m := range moves {
		next, err := pos.Apply(m)
		if err != nil {
			t.Fatalf("apply %s: %v", m, err)
		}
		if next.InCheck(White) {
			t.Fatalf("filter kept %s which leaves white in check", m)
		}
	}
}

func TestResultCheckmate(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{
		"A1": wpc(King),
		"B2": bpc(Queen),
		"B3": bpc(King),
	})
	result := pos.Result()
	if result.Status != Checkmate {
		t.Fatalf("expected checkmate, got %s", result.Status)
	}
	if !result.HasWinner || result.Winner != Black {
		t.Fatalf("expected black to win, got %+v", result)
	}
}

func TestResultStalemate(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{
		"A1": wpc(King),
		"C2": bpc(Queen),
		"E5": bpc(King),
	})
	result := pos.Result()
	if result.Status != Stalemate {
		t.Fatalf("expected stalemate, got %s", result.Status)
	}
	if result.HasWinner {
		t.Fatalf("stalemate has no winner")
	}
}

func TestResultOngoingFromInitialPosition(t *testing.T) {
	pos := NewDefaultPosition()
	if result := pos.Result(); result.Status != Ongoing {
		t.Fatalf("expected ongoing, got %s", result.Status)
	}
}

func TestResultCountsPortalActivationsAsMoves(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{
		"A1": wpc(King),
		"D5": wpc(Knight),
		"C8": bpc(Rook),
		"H8": bpc(King),
	})
	if result := pos.Result(); result.Status != Ongoing {
		t.Fatalf("expected ongoing, got %s", result.Status)
	}
	moves := pos.MovesFrom(mustSq(t, "D5"))
	if !hasActivationTo(moves, mustSq(t, "F5")) {
		t.Fatalf("expected the knight to offer portal activations")
	}
}

func TestMovesWhileInCheckAreFilteredNotForbidden(t *testing.T) {
	// activations while in check go through the same filter as every
	// other outcome
	pos := testPosition(t, White, map[string]Piece{
		"A1": wpc(King),
		"D5": wpc(Knight),
		"A8": bpc(Rook),
		"H8": bpc(King),
	})
	if !pos.InCheck(White) {
		t.Fatalf("expected white in check")
	}
	for _, m := range pos.AllLegalMoves() {
		next, err := pos.Apply(m)
		if err != nil {
			t.Fatalf("apply %s: %v", m, err)
		}
		if next.InCheck(White) {
			t.Fatalf("kept %s leaving white in check", m)
		}
	}
}
