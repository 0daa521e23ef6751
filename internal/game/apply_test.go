package game

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplierIsPure(t *testing.T) {
	pos := NewDefaultPosition()
	base, ok := findMove(pos.MovesFrom(mustSq(t, "E2")), MoveQuiet, mustSq(t, "E4"))
	if !ok {
		t.Fatalf("missing E2-E4")
	}
	rm := pos.Expand(base)[0]

	before := pos.State()
	first := applyMove(t, pos, rm)
	second := applyMove(t, pos, rm)

	if !reflect.DeepEqual(before, pos.State()) {
		t.Fatalf("applier mutated its input position")
	}
	if !reflect.DeepEqual(first.State(), second.State()) {
		t.Fatalf("applying the same move twice produced different positions")
	}
}

func TestNeutralSwapSetsVictimCooldown(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{
		"B5": wpc(Knight),
		"G4": bpc(Bishop),
		"A7": bpc(Pawn),
	})
	base, ok := findMove(pos.MovesFrom(mustSq(t, "B5")), MovePortalActivation, mustSq(t, "G4"))
	require.True(t, ok, "expected neutral activation B5-G4")

	outcomes := pos.Expand(base)
	require.Len(t, outcomes, 1)
	require.True(t, outcomes[0].Via.Swapped)

	next := applyMove(t, pos, outcomes[0])

	knight, ok := next.PieceAt(mustSq(t, "G4"))
	require.True(t, ok)
	require.Equal(t, White, knight.Color)
	require.Equal(t, Knight, knight.Type)
	require.True(t, knight.HasMoved)

	bishop, ok := next.PieceAt(mustSq(t, "B5"))
	require.True(t, ok)
	require.Equal(t, Black, bishop.Color)
	require.True(t, bishop.HasMoved)

	require.True(t, next.NeutralSwapCooldown(Black), "victim must be on cooldown")
	require.False(t, next.NeutralSwapCooldown(White))

	// the victim's generator must not offer any neutral activation
	for _, from := range []string{"B5", "G4"} {
		for _, m := range next.MovesFrom(mustSq(t, from)) {
			if m.Kind == MovePortalActivation {
				t.Fatalf("expected no neutral activation from %s under cooldown, got %v", from, m)
			}
		}
	}

	// any move by the victim consumes the cooldown
	after := applyMove(t, next, anyLegalMove(t, next))
	require.False(t, after.NeutralSwapCooldown(Black))
}

func TestPersonalNoReturnLifecycle(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{
		"D5": wpc(Knight),
		"H2": wpc(Pawn),
		"A7": bpc(Pawn),
	})
	d5 := mustSq(t, "D5")
	f5 := mustSq(t, "F5")

	base, ok := findMove(pos.MovesFrom(d5), MovePortalActivation, f5)
	require.True(t, ok)
	afterJump := applyMove(t, pos, pos.Expand(base)[0])

	// restriction is pending until white's next turn starts
	origin, pending := afterJump.PendingNoReturn(White, f5)
	require.True(t, pending)
	require.Equal(t, d5, origin)
	_, active := afterJump.NoReturn(White, f5)
	require.False(t, active)

	afterBlack := applyMove(t, afterJump, anyLegalMove(t, afterJump))
	origin, active = afterBlack.NoReturn(White, f5)
	require.True(t, active)
	require.Equal(t, d5, origin)

	moves := afterBlack.MovesFrom(f5)
	require.False(t, hasActivationTo(moves, d5), "F5-D5 must be forbidden on the turn after the jump")
	require.True(t, hasActivationTo(moves, mustSq(t, "E3")))
	require.True(t, hasActivationTo(moves, mustSq(t, "B3")))

	// white moves elsewhere; after black replies the restriction is gone
	pawn, ok := findMove(afterBlack.MovesFrom(mustSq(t, "H2")), MoveQuiet, mustSq(t, "H3"))
	require.True(t, ok)
	afterPawn := applyMove(t, afterBlack, afterBlack.Expand(pawn)[0])
	afterBlackAgain := applyMove(t, afterPawn, anyLegalMove(t, afterPawn))

	require.True(t, hasActivationTo(afterBlackAgain.MovesFrom(f5), d5),
		"no-return must expire after one full turn")
}

func TestNoReturnOriginIsPortalEntryAfterLandingTeleport(t *testing.T) {
	// rook moves onto D5 and teleports to B3: the entry D5 is the origin
	pos := testPosition(t, White, map[string]Piece{
		"A5": wpc(Rook),
		"A7": bpc(Pawn),
	})
	base := BaseMove{From: mustSq(t, "A5"), To: mustSq(t, "D5"), Kind: MoveQuiet}
	out, ok := findOutcome(pos.Expand(base), mustSq(t, "B3"))
	require.True(t, ok)

	next := applyMove(t, pos, out)
	origin, pending := next.PendingNoReturn(White, mustSq(t, "B3"))
	require.True(t, pending)
	require.Equal(t, mustSq(t, "D5"), origin)
}

func TestStayOutcomeSchedulesNothing(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{"A5": wpc(Rook)})
	base := BaseMove{From: mustSq(t, "A5"), To: mustSq(t, "D5"), Kind: MoveQuiet}
	outcomes := pos.Expand(base)
	require.True(t, outcomes[0].Via.Stay)

	next := applyMove(t, pos, outcomes[0])
	_, pending := next.PendingNoReturn(White, mustSq(t, "D5"))
	require.False(t, pending)
}

func TestCastleRelocatesRookAndClearsRights(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{
		"E1": wpc(King),
		"H1": wpc(Rook),
		"A1": wpc(Rook),
		"E8": {Type: King, Color: Black, HasMoved: true},
	})
	base, ok := findMove(pos.MovesFrom(mustSq(t, "E1")), MoveCastle, mustSq(t, "G1"))
	require.True(t, ok)
	next := applyMove(t, pos, pos.Expand(base)[0])

	king, ok := next.PieceAt(mustSq(t, "G1"))
	require.True(t, ok)
	require.Equal(t, King, king.Type)
	require.True(t, king.HasMoved)

	rook, ok := next.PieceAt(mustSq(t, "F1"))
	require.True(t, ok)
	require.Equal(t, Rook, rook.Type)
	require.True(t, rook.HasMoved)

	_, stillThere := next.PieceAt(mustSq(t, "H1"))
	require.False(t, stillThere)

	require.False(t, next.Castling().HasSide(White, CastleKingside))
	require.False(t, next.Castling().HasSide(White, CastleQueenside))
}

func TestPromotionCaptureClearsRookRight(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{
		"G7": wpc(Pawn),
		"H8": bpc(Rook),
		"E8": bpc(King),
		"E1": wpc(King),
	})
	require.True(t, pos.Castling().HasSide(Black, CastleKingside))

	var queenPromo BaseMove
	found := false
	for _, m := range pos.MovesFrom(mustSq(t, "G7")) {
		if m.Kind == MovePromotion && m.To == mustSq(t, "H8") && m.Promotion == Queen {
			queenPromo = m
			found = true
		}
	}
	require.True(t, found, "expected capture-promotion G7xH8=Q")
	next := applyMove(t, pos, pos.Expand(queenPromo)[0])

	queen, ok := next.PieceAt(mustSq(t, "H8"))
	require.True(t, ok)
	require.Equal(t, Queen, queen.Type)
	require.Equal(t, White, queen.Color)
	require.True(t, queen.HasMoved)
	require.False(t, next.Castling().HasSide(Black, CastleKingside))
	require.Equal(t, 0, next.HalfmoveClock())
}

func TestHalfmoveClockResetsOnPawnMoveAndCapture(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{
		"B1": wpc(Knight),
		"C4": bpc(Pawn),
		"A7": bpc(Pawn),
		"E1": {Type: King, Color: White, HasMoved: true},
		"E8": {Type: King, Color: Black, HasMoved: true},
	})

	// quiet knight move increments
	base, ok := findMove(pos.MovesFrom(mustSq(t, "B1")), MoveQuiet, mustSq(t, "A3"))
	require.True(t, ok)
	next := applyMove(t, pos, pos.Expand(base)[0])
	require.Equal(t, 1, next.HalfmoveClock())

	// pawn move resets
	pawn, ok := findMove(next.MovesFrom(mustSq(t, "A7")), MoveQuiet, mustSq(t, "A6"))
	require.True(t, ok)
	next = applyMove(t, next, next.Expand(pawn)[0])
	require.Equal(t, 0, next.HalfmoveClock())

	// knight capture resets as well
	capture, ok := findMove(next.MovesFrom(mustSq(t, "A3")), MoveCapture, mustSq(t, "C4"))
	require.True(t, ok)
	next = applyMove(t, next, next.Expand(capture)[0])
	require.Equal(t, 0, next.HalfmoveClock())
}

func TestMoveNumberIncrementsWhenWhiteToMoveAgain(t *testing.T) {
	pos := NewDefaultPosition()
	require.Equal(t, 1, pos.MoveNumber())

	next := applyMove(t, pos, anyLegalMove(t, pos))
	require.Equal(t, 1, next.MoveNumber())

	next = applyMove(t, next, anyLegalMove(t, next))
	require.Equal(t, 2, next.MoveNumber())
	require.Len(t, next.History(), 2)
}
