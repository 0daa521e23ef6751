package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLandingOnExclusivePortalBranches(t *testing.T) {
	// rook slides A5-D5 onto the white exclusive network
	pos := testPosition(t, White, map[string]Piece{"A5": wpc(Rook)})
	base := BaseMove{From: mustSq(t, "A5"), To: mustSq(t, "D5"), Kind: MoveQuiet}

	outcomes := pos.Expand(base)
	require.Len(t, outcomes, 4)

	stay := outcomes[0]
	require.NotNil(t, stay.Via)
	require.True(t, stay.Via.Stay, "STAY outcome must come first")
	require.Equal(t, mustSq(t, "D5"), stay.ToFinal)
	require.Equal(t, NetworkExclusive, stay.Via.Network)

	// remaining outcomes follow network declaration order
	wantOrder := []string{"F5", "E3", "B3"}
	for i, coord := range wantOrder {
		out := outcomes[i+1]
		require.Equal(t, mustSq(t, coord), out.ToFinal)
		require.False(t, out.Via.Stay)
		require.False(t, out.Via.Swapped)
		require.Equal(t, mustSq(t, "D5"), out.Via.Entry)
	}
}

func TestLandingBranchMarksEnemyDestinationsAsSwaps(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{
		"A5": wpc(Rook),
		"F5": bpc(Knight),
		"E3": wpc(Pawn),
	})
	base := BaseMove{From: mustSq(t, "A5"), To: mustSq(t, "D5"), Kind: MoveQuiet}

	outcomes := pos.Expand(base)
	// STAY, swap onto F5, teleport to B3; own pawn on E3 is skipped
	require.Len(t, outcomes, 3)

	swap, ok := findOutcome(outcomes, mustSq(t, "F5"))
	require.True(t, ok)
	require.True(t, swap.Via.Swapped)

	_, ok = findOutcome(outcomes, mustSq(t, "E3"))
	require.False(t, ok, "own-piece destination must be skipped")
}

func TestLandingOnNeutralPortal(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{"A3": wpc(Knight)})
	base := BaseMove{From: mustSq(t, "A3"), To: mustSq(t, "B5"), Kind: MoveQuiet}

	outcomes := pos.Expand(base)
	require.Len(t, outcomes, 2)
	require.True(t, outcomes[0].Via.Stay)
	require.Equal(t, NetworkNeutral, outcomes[0].Via.Network)
	require.Equal(t, mustSq(t, "G4"), outcomes[1].ToFinal)
}

func TestLandingOnForeignExclusivePortalDoesNotBranch(t *testing.T) {
	// E4 belongs to the black exclusive network; a white mover cannot use it
	pos := testPosition(t, White, map[string]Piece{"E3": wpc(Rook)})
	base := BaseMove{From: mustSq(t, "E3"), To: mustSq(t, "E4"), Kind: MoveQuiet}

	outcomes := pos.Expand(base)
	require.Len(t, outcomes, 1)
	require.Nil(t, outcomes[0].Via)
	require.Equal(t, mustSq(t, "E4"), outcomes[0].ToFinal)
}

func TestCaptureOntoPortalDoesNotActivate(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{
		"D1": wpc(Queen),
		"D5": bpc(Bishop),
	})
	moves := pos.MovesFrom(mustSq(t, "D1"))
	base, ok := findMove(moves, MoveCapture, mustSq(t, "D5"))
	require.True(t, ok, "expected capture D1xD5")

	outcomes := pos.Expand(base)
	require.Len(t, outcomes, 1)
	require.Nil(t, outcomes[0].Via)
	require.Equal(t, mustSq(t, "D5"), outcomes[0].ToFinal)
}

func TestPromotionNeverBranchesOnPortal(t *testing.T) {
	// alternate configuration where the promotion square is a portal
	cfg := PortalConfig{
		WhiteExclusive: mustSquares("D8", "F5", "E3", "B3"),
		BlackExclusive: mustSquares("C4", "E4", "D6", "G6"),
		NeutralPairs:   [][2]Square{{mustSquare("B5"), mustSquare("G4")}},
	}
	pos := NewPositionFromPieces(cfg, White, map[Square]Piece{
		mustSq(t, "D7"): wpc(Pawn),
		mustSq(t, "A1"): {Type: King, Color: White, HasMoved: true},
		mustSq(t, "H8"): {Type: King, Color: Black, HasMoved: true},
	})

	moves := pos.MovesFrom(mustSq(t, "D7"))
	require.Len(t, moves, 4)
	for _, base := range moves {
		require.Equal(t, MovePromotion, base.Kind)
		outcomes := pos.Expand(base)
		require.Len(t, outcomes, 1, "promotion must expand to exactly one outcome")
		require.Nil(t, outcomes[0].Via)
	}
}

func TestActivationExpandsToSingleOutcome(t *testing.T) {
	pos := testPosition(t, White, map[string]Piece{
		"D5": wpc(Knight),
		"F5": bpc(Pawn),
	})
	base, ok := findMove(pos.MovesFrom(mustSq(t, "D5")), MovePortalActivation, mustSq(t, "F5"))
	require.True(t, ok)

	outcomes := pos.Expand(base)
	require.Len(t, outcomes, 1)
	out := outcomes[0]
	require.NotNil(t, out.Via)
	require.False(t, out.Via.Stay)
	require.True(t, out.Via.Swapped)
	require.Equal(t, mustSq(t, "D5"), out.Via.Entry)
	require.Equal(t, mustSq(t, "F5"), out.ToFinal)
}
