// path: internal/game/move.go
package game

import "fmt"

type MoveKind uint8

const (
	MoveQuiet MoveKind = iota
	MoveCapture
	MovePortalActivation
	MoveCastle
	MovePromotion
	MoveEnPassant
)

func (k MoveKind) String() string {
	switch k {
	case MoveQuiet:
		return "move"
	case MoveCapture:
		return "capture"
	case MovePortalActivation:
		return "portal-activation"
	case MoveCastle:
		return "castle"
	case MovePromotion:
		return "promotion"
	case MoveEnPassant:
		return "enpassant"
	default:
		return "?"
	}
}

func ParseMoveKind(s string) (MoveKind, bool) {
	switch s {
	case "move":
		return MoveQuiet, true
	case "capture":
		return MoveCapture, true
	case "portal-activation":
		return MovePortalActivation, true
	case "castle":
		return MoveCastle, true
	case "promotion":
		return MovePromotion, true
	case "enpassant":
		return MoveEnPassant, true
	default:
		return 0, false
	}
}

// BaseMove is the generator's output: a move before portal resolution.
// Castle carries the side, Promotion the chosen piece.
type BaseMove struct {
	From      Square
	To        Square
	Kind      MoveKind
	Castle    CastlingSide
	Promotion PieceType
}

// PortalTransit records a portal decision inside a resolved move. Stay is
// only meaningful on landing outcomes; activation moves always teleport.
type PortalTransit struct {
	Entry   Square
	Network PortalNetworkKind
	Choice  Square
	Stay    bool
	Swapped bool
}

// ResolvedMove is a fully disambiguated move ready for the applier:
// the base move plus the final landing square and any portal decision.
type ResolvedMove struct {
	BaseMove
	ToFinal Square
	Via     *PortalTransit
}

// Matches reports wire-level equality on the validation tuple: final
// square, kind, promotion choice if any, portal choice (or STAY) if any.
// Any other client-supplied field is ignored.
func (m ResolvedMove) Matches(other ResolvedMove) bool {
	if m.Kind != other.Kind || m.ToFinal != other.ToFinal {
		return false
	}
	if m.Kind == MovePromotion && m.Promotion != other.Promotion {
		return false
	}
	if (m.Via == nil) != (other.Via == nil) {
		return false
	}
	if m.Via != nil {
		if m.Via.Stay != other.Via.Stay {
			return false
		}
		if !m.Via.Stay && m.Via.Choice != other.Via.Choice {
			return false
		}
	}
	return true
}

func (m ResolvedMove) String() string {
	s := fmt.Sprintf("%s %s-%s", m.Kind, m.From, m.ToFinal)
	if m.Kind == MovePromotion {
		s += "=" + m.Promotion.String()
	}
	if m.Via != nil {
		if m.Via.Stay {
			s += " (stay)"
		} else if m.Via.Swapped {
			s += fmt.Sprintf(" (swap via %s)", m.Via.Entry)
		} else {
			s += fmt.Sprintf(" (via %s)", m.Via.Entry)
		}
	}
	return s
}

const stayChoice = "STAY"

// PortalTransitState is the wire shape of a portal decision.
type PortalTransitState struct {
	Entry   string `json:"entry"`
	Network string `json:"network"`
	Choice  string `json:"choice"`
	Swapped bool   `json:"swapped"`
}

// MoveState is the wire shape of a resolved move. Squares are uppercase
// two-character labels; Choice is a square label or "STAY".
type MoveState struct {
	From    string              `json:"from"`
	To      string              `json:"to"`
	Kind    string              `json:"kind"`
	ToFinal string              `json:"toFinal"`
	Castle  string              `json:"castle,omitempty"`
	Promo   string              `json:"promo,omitempty"`
	Via     *PortalTransitState `json:"viaPortal,omitempty"`
}

// State converts a resolved move to its wire shape.
func (m ResolvedMove) State() MoveState {
	out := MoveState{
		From:    m.From.String(),
		To:      m.To.String(),
		Kind:    m.Kind.String(),
		ToFinal: m.ToFinal.String(),
	}
	if m.Kind == MoveCastle {
		out.Castle = m.Castle.String()
	}
	if m.Kind == MovePromotion {
		out.Promo = m.Promotion.String()
	}
	if m.Via != nil {
		choice := m.Via.Choice.String()
		if m.Via.Stay {
			choice = stayChoice
		}
		out.Via = &PortalTransitState{
			Entry:   m.Via.Entry.String(),
			Network: m.Via.Network.String(),
			Choice:  choice,
			Swapped: m.Via.Swapped,
		}
	}
	return out
}

// ParseResolvedMove decodes a client-supplied move. Square labels are
// normalized to uppercase; unknown kinds and malformed labels fail.
func ParseResolvedMove(st MoveState) (ResolvedMove, error) {
	var m ResolvedMove
	var ok bool
	if m.From, ok = ParseSquare(st.From); !ok {
		return m, fmt.Errorf("%w: from %q", ErrInvalidSquare, st.From)
	}
	if m.To, ok = ParseSquare(st.To); !ok {
		return m, fmt.Errorf("%w: to %q", ErrInvalidSquare, st.To)
	}
	if m.Kind, ok = ParseMoveKind(st.Kind); !ok {
		return m, fmt.Errorf("%w: kind %q", ErrInvalidMove, st.Kind)
	}
	if m.ToFinal, ok = ParseSquare(st.ToFinal); !ok {
		return m, fmt.Errorf("%w: toFinal %q", ErrInvalidSquare, st.ToFinal)
	}
	if m.Kind == MoveCastle {
		if m.Castle, ok = ParseCastlingSide(st.Castle); !ok {
			return m, fmt.Errorf("%w: castle %q", ErrInvalidMove, st.Castle)
		}
	}
	if m.Kind == MovePromotion {
		if m.Promotion, ok = ParsePromotionPiece(st.Promo); !ok {
			return m, fmt.Errorf("%w: promo %q", ErrInvalidMove, st.Promo)
		}
	}
	if st.Via != nil {
		via := PortalTransit{Swapped: st.Via.Swapped}
		if via.Entry, ok = ParseSquare(st.Via.Entry); !ok {
			return m, fmt.Errorf("%w: entry %q", ErrInvalidSquare, st.Via.Entry)
		}
		if via.Network, ok = ParsePortalNetworkKind(st.Via.Network); !ok {
			return m, fmt.Errorf("%w: network %q", ErrInvalidMove, st.Via.Network)
		}
		if st.Via.Choice == stayChoice {
			via.Stay = true
			via.Choice = via.Entry
		} else if via.Choice, ok = ParseSquare(st.Via.Choice); !ok {
			return m, fmt.Errorf("%w: choice %q", ErrInvalidSquare, st.Via.Choice)
		}
		m.Via = &via
	}
	return m, nil
}
