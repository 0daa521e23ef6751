// path: internal/game/generator.go
package game

type moveDelta struct {
	dr int
	df int
}

var (
	rookDirections = [...]moveDelta{
		{dr: 1, df: 0},
		{dr: -1, df: 0},
		{dr: 0, df: 1},
		{dr: 0, df: -1},
	}
	bishopDirections = [...]moveDelta{
		{dr: 1, df: 1},
		{dr: 1, df: -1},
		{dr: -1, df: 1},
		{dr: -1, df: -1},
	}
	knightOffsets = [...]moveDelta{
		{dr: 2, df: 1},
		{dr: 1, df: 2},
		{dr: -1, df: 2},
		{dr: -2, df: 1},
		{dr: -2, df: -1},
		{dr: -1, df: -2},
		{dr: 1, df: -2},
		{dr: 2, df: -1},
	}
	kingOffsets = [...]moveDelta{
		{dr: 1, df: 0}, {dr: 1, df: 1}, {dr: 0, df: 1}, {dr: -1, df: 1},
		{dr: -1, df: 0}, {dr: -1, df: -1}, {dr: 0, df: -1}, {dr: 1, df: -1},
	}
	promotionOrder = [...]PieceType{Queen, Rook, Bishop, Knight}
)

// MovesFrom enumerates pseudo-legal base moves for the piece on from.
// Empty unless that piece is owned by the side to move.
func (p *Position) MovesFrom(from Square) []BaseMove {
	pc := p.board[from]
	if pc == nil || pc.Color != p.turn {
		return nil
	}
	return p.movesForPiece(from)
}

// movesForPiece generates regardless of whose turn it is; the in-check
// query needs opponent moves from an unswitched position.
func (p *Position) movesForPiece(from Square) []BaseMove {
	pc := p.board[from]
	if pc == nil {
		return nil
	}

	var moves []BaseMove
	switch pc.Type {
	case Pawn:
		moves = p.pawnMoves(from, *pc)
	case Knight:
		moves = p.stepperMoves(from, *pc, knightOffsets[:])
	case Bishop:
		moves = p.sliderMoves(from, *pc, bishopDirections[:])
	case Rook:
		moves = p.sliderMoves(from, *pc, rookDirections[:])
	case Queen:
		moves = p.sliderMoves(from, *pc, rookDirections[:])
		moves = append(moves, p.sliderMoves(from, *pc, bishopDirections[:])...)
	case King:
		moves = p.kingMoves(from, *pc)
	}

	moves = append(moves, p.portalActivationMoves(from, *pc)...)
	return moves
}

func promotionRank(color Color) int {
	if color == White {
		return 7
	}
	return 0
}

func (p *Position) pawnMoves(from Square, pc Piece) []BaseMove {
	var moves []BaseMove
	rank := from.Rank()
	file := from.File()
	dir := 1
	startRank := 1
	if pc.Color == Black {
		dir = -1
		startRank = 6
	}
	lastRank := promotionRank(pc.Color)

	emit := func(to Square, kind MoveKind) {
		if to.Rank() == lastRank {
			for _, promo := range promotionOrder {
				moves = append(moves, BaseMove{From: from, To: to, Kind: MovePromotion, Promotion: promo})
			}
			return
		}
		moves = append(moves, BaseMove{From: from, To: to, Kind: kind})
	}

	if target, ok := SquareFromCoords(rank+dir, file); ok && p.board[target] == nil {
		emit(target, MoveQuiet)
		if rank == startRank {
			if double, ok := SquareFromCoords(rank+2*dir, file); ok && p.board[double] == nil {
				emit(double, MoveQuiet)
			}
		}
	}

	for _, df := range []int{-1, 1} {
		if target, ok := SquareFromCoords(rank+dir, file+df); ok {
			if victim := p.board[target]; victim != nil && victim.Color != pc.Color {
				emit(target, MoveCapture)
			}
		}
	}
	return moves
}

func (p *Position) stepperMoves(from Square, pc Piece, offsets []moveDelta) []BaseMove {
	var moves []BaseMove
	rank := from.Rank()
	file := from.File()
	for _, delta := range offsets {
		target, ok := SquareFromCoords(rank+delta.dr, file+delta.df)
		if !ok {
			continue
		}
		occupant := p.board[target]
		switch {
		case occupant == nil:
			moves = append(moves, BaseMove{From: from, To: target, Kind: MoveQuiet})
		case occupant.Color != pc.Color:
			moves = append(moves, BaseMove{From: from, To: target, Kind: MoveCapture})
		}
	}
	return moves
}

func (p *Position) sliderMoves(from Square, pc Piece, directions []moveDelta) []BaseMove {
	var moves []BaseMove
	startRank := from.Rank()
	startFile := from.File()
	for _, delta := range directions {
		rank := startRank + delta.dr
		file := startFile + delta.df
		for {
			target, ok := SquareFromCoords(rank, file)
			if !ok {
				break
			}
			occupant := p.board[target]
			if occupant == nil {
				moves = append(moves, BaseMove{From: from, To: target, Kind: MoveQuiet})
				rank += delta.dr
				file += delta.df
				continue
			}
			if occupant.Color != pc.Color {
				moves = append(moves, BaseMove{From: from, To: target, Kind: MoveCapture})
			}
			break
		}
	}
	return moves
}

func (p *Position) kingMoves(from Square, pc Piece) []BaseMove {
	moves := p.stepperMoves(from, pc, kingOffsets[:])
	for _, side := range []CastlingSide{CastleKingside, CastleQueenside} {
		if dest, ok := p.castleDestination(from, pc, side); ok {
			moves = append(moves, BaseMove{From: from, To: dest, Kind: MoveCastle, Castle: side})
		}
	}
	return moves
}

// castleDestination validates castling for the king on from: rights and
// hasMoved flags intact, intermediate squares empty, and none of origin,
// pass-through or destination attacked per the attack oracle.
func (p *Position) castleDestination(from Square, pc Piece, side CastlingSide) (Square, bool) {
	if pc.Type != King || pc.HasMoved {
		return 0, false
	}
	if !p.castling.HasSide(pc.Color, side) {
		return 0, false
	}
	rank := from.Rank()
	file := from.File()
	enemy := pc.Color.Opposite()

	var rookFile, destFile int
	var emptyFiles, travelFiles []int
	switch side {
	case CastleKingside:
		rookFile = 7
		emptyFiles = []int{file + 1, file + 2}
		travelFiles = []int{file + 1, file + 2}
		destFile = file + 2
	case CastleQueenside:
		rookFile = 0
		emptyFiles = []int{file - 1, file - 2, file - 3}
		travelFiles = []int{file - 1, file - 2}
		destFile = file - 2
	default:
		return 0, false
	}

	rookSq, ok := SquareFromCoords(rank, rookFile)
	if !ok {
		return 0, false
	}
	rook := p.board[rookSq]
	if rook == nil || rook.Color != pc.Color || rook.Type != Rook || rook.HasMoved {
		return 0, false
	}

	for _, f := range emptyFiles {
		sq, ok := SquareFromCoords(rank, f)
		if !ok || p.board[sq] != nil {
			return 0, false
		}
	}

	if p.IsSquareAttacked(from, enemy) {
		return 0, false
	}
	for _, f := range travelFiles {
		sq, ok := SquareFromCoords(rank, f)
		if !ok {
			return 0, false
		}
		if p.IsSquareAttacked(sq, enemy) {
			return 0, false
		}
	}

	dest, ok := SquareFromCoords(rank, destFile)
	if !ok {
		return 0, false
	}
	return dest, true
}

// portalActivationMoves emits one activation per currently valid teleport
// destination for a piece standing on a portal of a network it may use.
// Kings never use portals.
func (p *Position) portalActivationMoves(from Square, pc Piece) []BaseMove {
	var moves []BaseMove
	for _, dest := range p.portalActivationTargets(from, pc) {
		moves = append(moves, BaseMove{From: from, To: dest, Kind: MovePortalActivation})
	}
	return moves
}

// portalActivationTargets enumerates teleport destinations in network
// declaration order, honoring the per-color temporal restrictions:
// active personal no-return on the exclusive network, and the neutral
// swap cooldown which suppresses every neutral activation for the color.
func (p *Position) portalActivationTargets(from Square, pc Piece) []Square {
	if pc.Type == King {
		return nil
	}
	var targets []Square

	if network := p.portals.ExclusiveFor(pc.Color); p.portals.IsExclusiveFor(from, pc.Color) {
		forbidden, hasForbidden := p.noReturn[pc.Color.Index()][from]
		for _, dest := range network {
			if dest == from {
				continue
			}
			if occupant := p.board[dest]; occupant != nil && occupant.Color == pc.Color {
				continue
			}
			if hasForbidden && dest == forbidden {
				continue
			}
			targets = append(targets, dest)
		}
	}

	if mate, ok := p.portals.NeutralMate(from); ok && !p.neutralCooldown[pc.Color.Index()] {
		if occupant := p.board[mate]; occupant == nil || occupant.Color != pc.Color {
			targets = append(targets, mate)
		}
	}
	return targets
}

// landingNetwork reports the network a piece landing on sq may teleport
// through, if any.
func (p *Position) landingNetwork(sq Square, pc Piece) (PortalNetworkKind, bool) {
	if pc.Type == King {
		return 0, false
	}
	if p.portals.IsExclusiveFor(sq, pc.Color) {
		return NetworkExclusive, true
	}
	if _, ok := p.portals.NeutralMate(sq); ok {
		return NetworkNeutral, true
	}
	return 0, false
}
