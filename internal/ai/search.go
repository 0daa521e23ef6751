// path: internal/ai/search.go
// Package ai picks moves for self-play. It consumes only the engine's
// legal-move API and never reaches into position internals.
package ai

import (
	"math"
	"math/rand"

	"golang.org/x/exp/slices"

	"portal_chess/internal/game"
)

const mateScore = 100_000

var pieceValue = map[game.PieceType]float64{
	game.Pawn:   100,
	game.Knight: 320,
	game.Bishop: 330,
	game.Rook:   500,
	game.Queen:  900,
	game.King:   0,
}

// Config holds the stochastic selection knobs of the simulator.
type Config struct {
	RandomProb      float64
	TopK            int
	SoftmaxT        float64
	OpeningPlyLimit int
}

type ScoredMove struct {
	Move  game.ResolvedMove
	Score float64
}

// BestMove returns the highest-scoring legal move for color, or false
// when color is not to move or has no legal move.
func BestMove(pos *game.Position, depth int, color game.Color) (game.ResolvedMove, bool) {
	if pos.Turn() != color {
		return game.ResolvedMove{}, false
	}
	scored := ScoreMoves(pos, depth)
	if len(scored) == 0 {
		return game.ResolvedMove{}, false
	}
	return scored[0].Move, true
}

// ScoreMoves scores every legal move for the side to move at the given
// depth, best first.
func ScoreMoves(pos *game.Position, depth int) []ScoredMove {
	moves := pos.AllLegalMoves()
	scored := make([]ScoredMove, 0, len(moves))
	for _, m := range moves {
		child, err := pos.Apply(m)
		if err != nil {
			continue
		}
		score := -negamax(child, depth-1, -math.MaxFloat64, math.MaxFloat64)
		scored = append(scored, ScoredMove{Move: m, Score: score})
	}
	slices.SortStableFunc(scored, func(a, b ScoredMove) bool {
		return a.Score > b.Score
	})
	return scored
}

// PickMove applies the stochastic selection policy on top of the search:
// uniform random with probability RandomProb, top-K softmax sampling
// inside the opening window, the best move otherwise.
func PickMove(pos *game.Position, depth, ply int, cfg Config, rng *rand.Rand) (game.ResolvedMove, bool) {
	scored := ScoreMoves(pos, depth)
	if len(scored) == 0 {
		return game.ResolvedMove{}, false
	}
	if cfg.RandomProb > 0 && rng.Float64() < cfg.RandomProb {
		return scored[rng.Intn(len(scored))].Move, true
	}
	if cfg.TopK > 0 && ply < cfg.OpeningPlyLimit {
		return sampleTopK(scored, cfg, rng), true
	}
	return scored[0].Move, true
}

func sampleTopK(scored []ScoredMove, cfg Config, rng *rand.Rand) game.ResolvedMove {
	k := cfg.TopK
	if k > len(scored) {
		k = len(scored)
	}
	temp := cfg.SoftmaxT
	if temp <= 0 {
		temp = 1.0
	}
	// scores are centipawn-ish; scale before exponentiation
	weights := make([]float64, k)
	var sum float64
	for i := 0; i < k; i++ {
		w := math.Exp(scored[i].Score / (100 * temp))
		weights[i] = w
		sum += w
	}
	if sum <= 0 || math.IsInf(sum, 1) || math.IsNaN(sum) {
		return scored[0].Move
	}
	roll := rng.Float64() * sum
	for i := 0; i < k; i++ {
		roll -= weights[i]
		if roll <= 0 {
			return scored[i].Move
		}
	}
	return scored[k-1].Move
}

func negamax(pos *game.Position, depth int, alpha, beta float64) float64 {
	moves := pos.AllLegalMoves()
	if len(moves) == 0 {
		if pos.InCheck(pos.Turn()) {
			// prefer shallower mates
			return -mateScore - float64(depth)
		}
		return 0
	}
	if depth <= 0 {
		return evaluate(pos)
	}
	best := -math.MaxFloat64
	for _, m := range moves {
		child, err := pos.Apply(m)
		if err != nil {
			continue
		}
		score := -negamax(child, depth-1, -beta, -alpha)
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// evaluate is material plus a small advancement term for pawns, from the
// perspective of the side to move.
func evaluate(pos *game.Position) float64 {
	var score float64
	turn := pos.Turn()
	for idx := 0; idx < 64; idx++ {
		sq := game.Square(idx)
		pc, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		v := pieceValue[pc.Type]
		if pc.Type == game.Pawn {
			if pc.Color == game.White {
				v += float64(sq.Rank()-1) * 4
			} else {
				v += float64(6-sq.Rank()) * 4
			}
		}
		if pc.Color == turn {
			score += v
		} else {
			score -= v
		}
	}
	return score
}
