// path: internal/game/portals.go
package game

import "golang.org/x/exp/slices"

type PortalNetworkKind uint8

const (
	NetworkExclusive PortalNetworkKind = iota
	NetworkNeutral
)

func (k PortalNetworkKind) String() string {
	if k == NetworkNeutral {
		return "neutral"
	}
	return "exclusive"
}

func ParsePortalNetworkKind(s string) (PortalNetworkKind, bool) {
	switch s {
	case "exclusive", "Exclusive":
		return NetworkExclusive, true
	case "neutral", "Neutral":
		return NetworkNeutral, true
	default:
		return 0, false
	}
}

// PortalConfig holds the three disjoint networks. Exclusive networks are
// fully connected for the owning color; each neutral pair is a symmetric
// two-node network usable by either color. Declaration order of the
// square slices is the tie-break order for expansion.
type PortalConfig struct {
	WhiteExclusive []Square
	BlackExclusive []Square
	NeutralPairs   [][2]Square
}

// DefaultPortalConfig returns the reference configuration.
func DefaultPortalConfig() PortalConfig {
	return PortalConfig{
		WhiteExclusive: mustSquares("D5", "F5", "E3", "B3"),
		BlackExclusive: mustSquares("C4", "E4", "D6", "G6"),
		NeutralPairs:   [][2]Square{{mustSquare("B5"), mustSquare("G4")}},
	}
}

func (c PortalConfig) Clone() PortalConfig {
	out := PortalConfig{
		WhiteExclusive: slices.Clone(c.WhiteExclusive),
		BlackExclusive: slices.Clone(c.BlackExclusive),
	}
	if len(c.NeutralPairs) > 0 {
		out.NeutralPairs = make([][2]Square, len(c.NeutralPairs))
		copy(out.NeutralPairs, c.NeutralPairs)
	}
	return out
}

// ExclusiveFor returns the exclusive network owned by color.
func (c PortalConfig) ExclusiveFor(color Color) []Square {
	if color == White {
		return c.WhiteExclusive
	}
	return c.BlackExclusive
}

func (c PortalConfig) IsExclusiveFor(sq Square, color Color) bool {
	return slices.Contains(c.ExclusiveFor(color), sq)
}

// NeutralMate returns the other square of the neutral pair containing sq.
func (c PortalConfig) NeutralMate(sq Square) (Square, bool) {
	for _, pair := range c.NeutralPairs {
		if pair[0] == sq {
			return pair[1], true
		}
		if pair[1] == sq {
			return pair[0], true
		}
	}
	return 0, false
}

// IsPortal reports whether sq belongs to any network.
func (c PortalConfig) IsPortal(sq Square) bool {
	if slices.Contains(c.WhiteExclusive, sq) || slices.Contains(c.BlackExclusive, sq) {
		return true
	}
	_, ok := c.NeutralMate(sq)
	return ok
}

// PortalSquares lists every portal square once, exclusive networks first,
// then neutral pairs, in declaration order.
func (c PortalConfig) PortalSquares() []Square {
	out := make([]Square, 0, len(c.WhiteExclusive)+len(c.BlackExclusive)+2*len(c.NeutralPairs))
	out = append(out, c.WhiteExclusive...)
	out = append(out, c.BlackExclusive...)
	for _, pair := range c.NeutralPairs {
		out = append(out, pair[0], pair[1])
	}
	return out
}

func mustSquare(coord string) Square {
	sq, ok := ParseSquare(coord)
	if !ok {
		panic("invalid portal square " + coord)
	}
	return sq
}

func mustSquares(coords ...string) []Square {
	out := make([]Square, len(coords))
	for i, c := range coords {
		out[i] = mustSquare(c)
	}
	return out
}
