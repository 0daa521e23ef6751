// path: internal/game/expander.go
package game

// Expand fans a base move out into its resolved outcomes. A non-capture
// move landing on a usable portal branches into STAY plus one outcome per
// network destination; captures and castles never activate a portal, and
// promotions never branch. Physically impossible moves expand to nothing.
func (p *Position) Expand(m BaseMove) []ResolvedMove {
	pc := p.board[m.From]
	if pc == nil {
		return nil
	}

	switch m.Kind {
	case MovePromotion:
		return []ResolvedMove{{BaseMove: m, ToFinal: m.To}}

	case MovePortalActivation:
		return p.expandActivation(m, *pc)

	case MoveCapture, MoveEnPassant, MoveCastle:
		return []ResolvedMove{{BaseMove: m, ToFinal: m.To}}

	case MoveQuiet:
		return p.expandLanding(m, *pc)

	default:
		return nil
	}
}

func (p *Position) expandActivation(m BaseMove, pc Piece) []ResolvedMove {
	occupant := p.board[m.To]
	if occupant != nil && occupant.Color == pc.Color {
		return nil
	}
	var network PortalNetworkKind
	switch {
	case p.portals.IsExclusiveFor(m.From, pc.Color) && p.portals.IsExclusiveFor(m.To, pc.Color):
		network = NetworkExclusive
	default:
		mate, ok := p.portals.NeutralMate(m.From)
		if !ok || mate != m.To {
			return nil
		}
		network = NetworkNeutral
	}
	return []ResolvedMove{{
		BaseMove: m,
		ToFinal:  m.To,
		Via: &PortalTransit{
			Entry:   m.From,
			Network: network,
			Choice:  m.To,
			Swapped: occupant != nil,
		},
	}}
}

// expandLanding resolves a quiet move onto a portal square: the STAY
// outcome always comes first, then teleports in network declaration
// order. Quiet moves elsewhere resolve to the single obvious outcome.
func (p *Position) expandLanding(m BaseMove, pc Piece) []ResolvedMove {
	if p.board[m.To] != nil {
		return nil
	}
	network, usable := p.landingNetwork(m.To, pc)
	if !usable {
		return []ResolvedMove{{BaseMove: m, ToFinal: m.To}}
	}

	out := []ResolvedMove{{
		BaseMove: m,
		ToFinal:  m.To,
		Via: &PortalTransit{
			Entry:   m.To,
			Network: network,
			Choice:  m.To,
			Stay:    true,
		},
	}}

	appendDest := func(dest Square) {
		occupant := p.board[dest]
		if occupant != nil && occupant.Color == pc.Color {
			return
		}
		out = append(out, ResolvedMove{
			BaseMove: m,
			ToFinal:  dest,
			Via: &PortalTransit{
				Entry:   m.To,
				Network: network,
				Choice:  dest,
				Swapped: occupant != nil,
			},
		})
	}

	switch network {
	case NetworkExclusive:
		for _, dest := range p.portals.ExclusiveFor(pc.Color) {
			if dest != m.To {
				appendDest(dest)
			}
		}
	case NetworkNeutral:
		if mate, ok := p.portals.NeutralMate(m.To); ok {
			appendDest(mate)
		}
	}
	return out
}
