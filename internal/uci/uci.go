// Package uci drives the engine over the Universal Chess Interface line
// protocol.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
)

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine   *engine.Engine
	position *board.Position
	out      io.Writer

	// defaultDepth is restored on ucinewgame and used by "go" without depth.
	defaultDepth int
}

// New creates a new UCI protocol handler writing to out.
func New(eng *engine.Engine, out io.Writer) *UCI {
	return &UCI{
		engine:       eng,
		position:     board.NewPosition(),
		out:          out,
		defaultDepth: eng.Depth(),
	}
}

// Position returns the current position.
func (u *UCI) Position() *board.Position {
	return u.position
}

// Run reads commands from in until "quit" or end of input.
func (u *UCI) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !u.Handle(line) {
			return nil
		}
	}
	return scanner.Err()
}

// Handle executes one command line. It returns false on "quit".
func (u *UCI) Handle(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return true
	}
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "uci":
		u.handleUCI()
	case "isready":
		fmt.Fprintln(u.out, "readyok")
	case "ucinewgame":
		u.handleNewGame()
	case "position":
		if board.DebugMoveValidation {
			u.infoString("DEBUG: position %s", strings.Join(args, " "))
		}
		u.handlePosition(args)
	case "go":
		u.handleGo(args)
	case "setoption":
		u.handleSetOption(args)
	case "quit":
		return false
	// Debug commands
	case "d":
		fmt.Fprintln(u.out, u.position.String())
		fmt.Fprintf(u.out, "Fen: %s\n", u.position.ToFEN())
	case "perft":
		u.handlePerft(args)
	case "divide":
		u.handleDivide(args)
	case "eval":
		score := u.engine.Evaluate(u.position)
		fmt.Fprintf(u.out, "Static score: %d (%s)\n", score, engine.ScoreToString(score))
	case "legal":
		u.handleLegal()
	default:
		u.infoString("Unknown command: %s", cmd)
	}
	return true
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	fmt.Fprintln(u.out, "id name ChessCore")
	fmt.Fprintln(u.out, "id author ChessCore Team")
	fmt.Fprintln(u.out)
	fmt.Fprintf(u.out, "option name Depth type spin default %d min 1 max 8\n", u.defaultDepth)
	fmt.Fprintln(u.out, "option name Difficulty type combo default medium var easy var medium var hard")
	fmt.Fprintln(u.out, "option name Debug type check default false")
	fmt.Fprintln(u.out, "uciok")
}

// handleNewGame resets the position and the search depth.
func (u *UCI) handleNewGame() {
	u.position = board.NewPosition()
	u.engine.SetDepth(u.defaultDepth)
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := len(args)
	for i, arg := range args {
		if arg == "moves" {
			movesAt = i
			break
		}
	}

	var pos *board.Position
	switch args[0] {
	case "startpos":
		pos = board.NewPosition()
	case "fen":
		p, err := board.ParseFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			u.infoString("Invalid FEN: %v", err)
			return
		}
		pos = p
	default:
		u.infoString("Invalid position command: %s", args[0])
		return
	}

	// Apply moves
	if movesAt < len(args) {
		for _, moveStr := range args[movesAt+1:] {
			move, err := board.ParseMove(moveStr, pos)
			if err != nil || !pos.IsLegalMove(move) {
				u.infoString("Invalid move: %s", moveStr)
				return
			}
			next, _ := pos.Apply(move)
			pos = &next
		}
	}

	u.position = pos
}

// handleGo runs a fixed-depth search and reports the best move.
// Only "depth" is honoured; clock fields are accepted and ignored.
func (u *UCI) handleGo(args []string) {
	depth := u.engine.Depth()
	for i := 0; i < len(args); i++ {
		if args[i] == "depth" && i+1 < len(args) {
			if d, err := strconv.Atoi(args[i+1]); err == nil && d > 0 {
				depth = d
			}
			i++
		}
	}

	saved := u.engine.Depth()
	u.engine.SetDepth(depth)
	defer u.engine.SetDepth(saved)

	u.engine.OnInfo = u.sendInfo
	defer func() { u.engine.OnInfo = nil }()

	best, _ := u.engine.Search(u.position)
	if best == board.NoMove {
		// Only sent for checkmate/stalemate (no legal moves)
		fmt.Fprintln(u.out, "bestmove 0000")
		return
	}
	fmt.Fprintf(u.out, "bestmove %s\n", best)
}

// sendInfo prints an "info" line. Scores are converted to the side to move.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	score := info.Score
	if u.position.SideToMove == board.Black {
		score = -score
	}
	switch {
	case score > engine.MateThreshold:
		parts = append(parts, fmt.Sprintf("score mate %d", mateDistance(u.position, info.PV, true)))
	case score < -engine.MateThreshold:
		parts = append(parts, fmt.Sprintf("score mate -%d", mateDistance(u.position, info.PV, false)))
	default:
		parts = append(parts, fmt.Sprintf("score cp %d", score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Leaves))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	// NPS
	if info.Time > 0 {
		nps := uint64(float64(info.Leaves) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}

	// PV: stop at the first move that is not legal, a king capture ends it
	if len(info.PV) > 0 {
		valid := make([]string, 0, len(info.PV))
		testPos := *u.position
		for _, move := range info.PV {
			if !testPos.IsLegalMove(move) {
				break
			}
			valid = append(valid, move.String())
			testPos, _ = testPos.Apply(move)
		}
		if len(valid) > 0 {
			parts = append(parts, "pv "+strings.Join(valid, " "))
		}
	}

	fmt.Fprintf(u.out, "info %s\n", strings.Join(parts, " "))
}

// mateDistance converts a winning line to the number of moves the mating
// side needs. A closing king capture is not part of the mate. The side to
// move plays the even plies, so it mates in ceil(n/2) and is mated in
// floor(n/2).
func mateDistance(pos *board.Position, pv []board.Move, winning bool) int {
	n := len(pv)
	if n > 0 && capturesKing(pos, pv) {
		n--
	}
	moves := n / 2
	if winning {
		moves = (n + 1) / 2
	}
	if moves < 1 {
		moves = 1
	}
	return moves
}

// capturesKing reports whether the last move of pv, played from pos, takes
// a king.
func capturesKing(pos *board.Position, pv []board.Move) bool {
	p := *pos
	for _, m := range pv[:len(pv)-1] {
		if p.PieceAt(m.From()) == board.NoPiece {
			return false
		}
		p, _ = p.Apply(m)
	}
	return p.PieceAt(pv[len(pv)-1].To()).Type() == board.King
}

// handleSetOption processes "setoption" commands.
func (u *UCI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	switch strings.ToLower(name) {
	case "depth":
		depth, err := strconv.Atoi(value)
		if err != nil || depth < 1 {
			u.infoString("Invalid depth: %s", value)
			return
		}
		u.defaultDepth = depth
		u.engine.SetDepth(depth)
	case "difficulty":
		d, err := engine.ParseDifficulty(strings.ToLower(value))
		if err != nil {
			u.infoString("%v", err)
			return
		}
		u.engine.SetDifficulty(d)
		u.defaultDepth = u.engine.Depth()
	case "debug":
		enabled := strings.ToLower(value) == "true"
		board.DebugMoveValidation = enabled
		if enabled {
			u.infoString("Debug mode enabled")
		}
	default:
		u.infoString("Unknown option: %s", name)
	}
}

// handlePerft runs a perft test.
func (u *UCI) handlePerft(args []string) {
	depth := 4
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil {
			depth = d
		}
	}

	start := time.Now()
	nodes := u.engine.Perft(u.position, depth)
	elapsed := time.Since(start)

	fmt.Fprintf(u.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(u.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(u.out, "NPS: %.0f\n", nps)
	}
}

// handleDivide prints the perft count below each root move.
func (u *UCI) handleDivide(args []string) {
	depth := 2
	if len(args) > 0 {
		if d, err := strconv.Atoi(args[0]); err == nil {
			depth = d
		}
	}

	counts := u.engine.Divide(u.position, depth)
	lines := make([]string, 0, len(counts))
	var total uint64
	for m, n := range counts {
		lines = append(lines, fmt.Sprintf("%s: %d", m, n))
		total += n
	}
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(u.out, l)
	}
	fmt.Fprintf(u.out, "Nodes: %d\n", total)
}

// handleLegal lists the legal moves in move text and UCI form.
func (u *UCI) handleLegal() {
	moves := u.position.GenerateLegalMoves()
	texts := make([]string, 0, moves.Len())
	for _, m := range moves.Slice() {
		texts = append(texts, fmt.Sprintf("%s(%s)", board.MoveText(u.position, m), m))
	}
	fmt.Fprintf(u.out, "Legal moves (%d): %s\n", moves.Len(), strings.Join(texts, " "))
}

func (u *UCI) infoString(format string, args ...any) {
	fmt.Fprintf(u.out, "info string "+format+"\n", args...)
}
