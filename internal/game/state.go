// path: internal/game/state.go
package game

// PieceState is the wire shape of one piece.
type PieceState struct {
	Square   string `json:"square"`
	Kind     string `json:"kind"`
	Color    string `json:"color"`
	HasMoved bool   `json:"hasMoved"`
}

// PortalConfigState is the wire shape of the portal networks.
type PortalConfigState struct {
	WhiteExclusive []string   `json:"whiteExclusive"`
	BlackExclusive []string   `json:"blackExclusive"`
	NeutralPairs   [][]string `json:"neutralPairs"`
}

// PositionState is the serializable snapshot broadcast to clients. All
// square labels are uppercase.
type PositionState struct {
	Pieces          []PieceState                 `json:"pieces"`
	Turn            string                       `json:"turn"`
	MoveNumber      int                          `json:"moveNumber"`
	HalfmoveClock   int                          `json:"halfmoveClock"`
	Castling        string                       `json:"castling"`
	EnPassant       string                       `json:"enPassant"`
	Portals         PortalConfigState            `json:"portals"`
	NeutralCooldown map[string]bool              `json:"neutralSwapCooldown"`
	NoReturn        map[string]map[string]string `json:"personalNoReturn"`
	PendingNoReturn map[string]map[string]string `json:"pendingNoReturn"`
	History         []MoveState                  `json:"history"`
}

// State renders the position for the wire.
func (p *Position) State() PositionState {
	st := PositionState{
		Pieces:          make([]PieceState, 0, 32),
		Turn:            p.turn.Short(),
		MoveNumber:      p.moveNumber,
		HalfmoveClock:   p.halfmove,
		Castling:        p.castling.String(),
		EnPassant:       p.enPassant.String(),
		NeutralCooldown: map[string]bool{},
		NoReturn:        map[string]map[string]string{},
		PendingNoReturn: map[string]map[string]string{},
		History:         make([]MoveState, 0, len(p.history)),
	}
	for idx, pc := range p.board {
		if pc == nil {
			continue
		}
		st.Pieces = append(st.Pieces, PieceState{
			Square:   Square(idx).String(),
			Kind:     pc.Type.String(),
			Color:    pc.Color.Short(),
			HasMoved: pc.HasMoved,
		})
	}
	st.Portals = PortalConfigState{
		WhiteExclusive: squareLabels(p.portals.WhiteExclusive),
		BlackExclusive: squareLabels(p.portals.BlackExclusive),
	}
	for _, pair := range p.portals.NeutralPairs {
		st.Portals.NeutralPairs = append(st.Portals.NeutralPairs, []string{pair[0].String(), pair[1].String()})
	}
	for _, color := range []Color{White, Black} {
		st.NeutralCooldown[color.Short()] = p.neutralCooldown[color.Index()]
		st.NoReturn[color.Short()] = squareMapLabels(p.noReturn[color.Index()])
		st.PendingNoReturn[color.Short()] = squareMapLabels(p.pendingNoReturn[color.Index()])
	}
	for _, m := range p.history {
		st.History = append(st.History, m.State())
	}
	return st
}

func squareLabels(squares []Square) []string {
	out := make([]string, len(squares))
	for i, sq := range squares {
		out[i] = sq.String()
	}
	return out
}

func squareMapLabels(m map[Square]Square) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k.String()] = v.String()
	}
	return out
}

// NewPositionFromPieces builds an arbitrary position for tooling and
// tests. Castling rights are granted only where a never-moved king and
// rook still stand on their original squares.
func NewPositionFromPieces(cfg PortalConfig, turn Color, pieces map[Square]Piece) *Position {
	p := &Position{
		turn:       turn,
		moveNumber: 1,
		enPassant:  NoEnPassantTarget(),
		portals:    cfg.Clone(),
	}
	for sq, pc := range pieces {
		cp := pc
		p.board[sq] = &cp
	}
	p.castling = deriveCastlingRights(p)
	return p
}

func deriveCastlingRights(p *Position) CastlingRights {
	rights := CastlingNone
	check := func(kingSq, rookSq Square, color Color, side CastlingSide) {
		king := p.board[kingSq]
		rook := p.board[rookSq]
		if king != nil && king.Type == King && king.Color == color && !king.HasMoved &&
			rook != nil && rook.Type == Rook && rook.Color == color && !rook.HasMoved {
			rights |= CastlingRight(color, side)
		}
	}
	kingE1, _ := ParseSquare("E1")
	kingE8, _ := ParseSquare("E8")
	check(kingE1, sqH1, White, CastleKingside)
	check(kingE1, sqA1, White, CastleQueenside)
	check(kingE8, sqH8, Black, CastleKingside)
	check(kingE8, sqA8, Black, CastleQueenside)
	return rights
}
