// path: cmd/simulate/main.go
// Self-play simulation harness. Positional args:
//
//	simulate [games [depth [openingsLogPath [randomProb [topK [openingPlyLimit [softmaxT]]]]]]]
//
// with environment fallbacks GAMES_TO_RUN, AI_DEPTH, OPENINGS_LOG,
// RANDOM_MOVE_PROB, TOP_K, OPENING_PLY_LIMIT, SOFTMAX_T.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"portal_chess/internal/ai"
	"portal_chess/internal/game"
)

const (
	maxPlies          = 400
	suspiciousMateLog = "suspicious_mates.log"
	// checkmates earlier than this move number get a debug log entry
	suspiciousMoveNumber = 12
)

type config struct {
	games    int
	depth    int
	openings string
	ai       ai.Config
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		log.Errorf("bad configuration: %v", err)
		os.Exit(2)
	}

	openings, err := os.Create(cfg.openings)
	if err != nil {
		log.Errorf("open openings log: %v", err)
		os.Exit(2)
	}
	defer openings.Close()
	w := bufio.NewWriter(openings)
	defer w.Flush()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var whiteWins, blackWins, stalemates, aborted, suspicious int

	for i := 0; i < cfg.games; i++ {
		result, history := playGame(cfg, rng)
		if _, err := fmt.Fprintln(w, openingLine(history, cfg.ai.OpeningPlyLimit)); err != nil {
			log.Errorf("write openings log: %v", err)
			os.Exit(2)
		}

		switch {
		case result.Status == game.Checkmate && result.Winner == game.White:
			whiteWins++
		case result.Status == game.Checkmate:
			blackWins++
		case result.Status == game.Stalemate:
			stalemates++
		default:
			aborted++
		}
		if result.Status == game.Checkmate && len(history) < 2*suspiciousMoveNumber-1 {
			suspicious++
			logSuspiciousMate(result, history)
		}
		if (i+1)%100 == 0 {
			log.Infof("played %d/%d games", i+1, cfg.games)
		}
	}

	log.Infof("done: %d games, white %d, black %d, stalemate %d, aborted %d, suspicious mates %d",
		cfg.games, whiteWins, blackWins, stalemates, aborted, suspicious)
}

func playGame(cfg config, rng *rand.Rand) (game.GameResult, []game.ResolvedMove) {
	pos := game.NewDefaultPosition()
	for ply := 0; ply < maxPlies; ply++ {
		move, ok := ai.PickMove(pos, cfg.depth, ply, cfg.ai, rng)
		if !ok {
			return pos.Result(), pos.History()
		}
		next, err := pos.Apply(move)
		if err != nil {
			log.Errorf("apply picked move %s: %v", move, err)
			os.Exit(2)
		}
		pos = next
	}
	return game.GameResult{Status: game.Ongoing}, pos.History()
}

func openingLine(history []game.ResolvedMove, plyLimit int) string {
	if plyLimit <= 0 || plyLimit > len(history) {
		plyLimit = len(history)
	}
	parts := make([]string, 0, plyLimit)
	for _, m := range history[:plyLimit] {
		parts = append(parts, fmt.Sprintf("%s%s", m.From, m.ToFinal))
	}
	return strings.Join(parts, " ")
}

func logSuspiciousMate(result game.GameResult, history []game.ResolvedMove) {
	f, err := os.OpenFile(suspiciousMateLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Warnf("open %s: %v", suspiciousMateLog, err)
		return
	}
	defer f.Close()
	lines := make([]string, 0, len(history)+1)
	lines = append(lines, fmt.Sprintf("checkmate for %s in %d plies", result.Winner, len(history)))
	for i, m := range history {
		lines = append(lines, fmt.Sprintf("  %3d. %s", i+1, m))
	}
	if _, err := fmt.Fprintln(f, strings.Join(lines, "\n")); err != nil {
		log.Warnf("write %s: %v", suspiciousMateLog, err)
	}
}

func loadConfig(args []string) (config, error) {
	cfg := config{
		games:    1000,
		depth:    3,
		openings: "openings.log",
		ai:       ai.Config{RandomProb: 0, TopK: 0, OpeningPlyLimit: 8, SoftmaxT: 1.0},
	}

	var err error
	if cfg.games, err = intSetting(args, 0, "GAMES_TO_RUN", cfg.games); err != nil {
		return cfg, err
	}
	if cfg.depth, err = intSetting(args, 1, "AI_DEPTH", cfg.depth); err != nil {
		return cfg, err
	}
	cfg.openings = stringSetting(args, 2, "OPENINGS_LOG", cfg.openings)
	if cfg.ai.RandomProb, err = floatSetting(args, 3, "RANDOM_MOVE_PROB", cfg.ai.RandomProb); err != nil {
		return cfg, err
	}
	if cfg.ai.TopK, err = intSetting(args, 4, "TOP_K", cfg.ai.TopK); err != nil {
		return cfg, err
	}
	if cfg.ai.OpeningPlyLimit, err = intSetting(args, 5, "OPENING_PLY_LIMIT", cfg.ai.OpeningPlyLimit); err != nil {
		return cfg, err
	}
	if cfg.ai.SoftmaxT, err = floatSetting(args, 6, "SOFTMAX_T", cfg.ai.SoftmaxT); err != nil {
		return cfg, err
	}

	if cfg.games <= 0 {
		return cfg, fmt.Errorf("games must be positive, got %d", cfg.games)
	}
	if cfg.depth <= 0 {
		return cfg, fmt.Errorf("depth must be positive, got %d", cfg.depth)
	}
	return cfg, nil
}

func rawSetting(args []string, idx int, envKey string) string {
	if idx < len(args) && strings.TrimSpace(args[idx]) != "" {
		return strings.TrimSpace(args[idx])
	}
	return strings.TrimSpace(os.Getenv(envKey))
}

func stringSetting(args []string, idx int, envKey, def string) string {
	if v := rawSetting(args, idx, envKey); v != "" {
		return v
	}
	return def
}

func intSetting(args []string, idx int, envKey string, def int) (int, error) {
	v := rawSetting(args, idx, envKey)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", envKey, err)
	}
	return n, nil
}

func floatSetting(args []string, idx int, envKey string, def float64) (float64, error) {
	v := rawSetting(args, idx, envKey)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", envKey, err)
	}
	return f, nil
}
