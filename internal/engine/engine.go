package engine

import (
	"fmt"
	"time"

	"github.com/hailam/chesscore/internal/board"
)

// SearchInfo contains information about a finished search.
type SearchInfo struct {
	Depth  int
	Score  int
	Leaves uint64
	Time   time.Duration
	PV     []board.Move
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// String returns the difficulty name.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return "unknown"
	}
}

// DifficultyDepth maps difficulty to search depth.
var DifficultyDepth = map[Difficulty]int{
	Easy:   2,
	Medium: 3,
	Hard:   4,
}

// ParseDifficulty parses "easy", "medium" or "hard".
func ParseDifficulty(s string) (Difficulty, error) {
	for d := Easy; d <= Hard; d++ {
		if d.String() == s {
			return d, nil
		}
	}
	return Medium, fmt.Errorf("unknown difficulty: %q", s)
}

// Engine is the chess AI engine.
type Engine struct {
	eval     *Evaluator
	searcher *Searcher
	depth    int

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine with the default weights at Medium difficulty.
func NewEngine() *Engine {
	return NewEngineWithWeights(DefaultWeights())
}

// NewEngineWithWeights creates an engine with custom evaluation weights.
func NewEngineWithWeights(w Weights) *Engine {
	eval := NewEvaluator(w)
	return &Engine{
		eval:     eval,
		searcher: NewSearcher(eval),
		depth:    DifficultyDepth[Medium],
	}
}

// SetDifficulty sets the search depth from a difficulty level.
func (e *Engine) SetDifficulty(d Difficulty) {
	if depth, ok := DifficultyDepth[d]; ok {
		e.depth = depth
	}
}

// SetDepth sets the search depth in plies. Depths below 1 are raised to 1.
func (e *Engine) SetDepth(depth int) {
	if depth < 1 {
		depth = 1
	}
	e.depth = depth
}

// Depth returns the search depth in plies.
func (e *Engine) Depth() int {
	return e.depth
}

// SetReduction sets the depth reduction policy of the searcher.
func (e *Engine) SetReduction(p ReductionPolicy) {
	e.searcher.SetReduction(p)
}

// Leaves returns the leaf count of the last search.
func (e *Engine) Leaves() uint64 {
	return e.searcher.Leaves()
}

// Search finds the best move for the given position. It returns NoMove
// when the side to move has no legal move.
func (e *Engine) Search(pos *board.Position) (board.Move, Result) {
	e.searcher.Reset()
	startTime := time.Now()

	if !pos.HasLegalMoves() {
		return board.NoMove, Result{Score: e.eval.StaticScore(pos)}
	}

	result := e.searcher.Search(pos, e.depth)
	best := result.Best()

	// A shallow pseudo-legal search cannot see its own king being taken.
	// The replacement is scored one ply deep.
	if !pos.IsLegalMove(best) {
		var score int
		best, score = e.fallbackMove(pos)
		result = Result{Score: score, Line: []PVEntry{{Move: best, Score: score}}}
	}

	if e.OnInfo != nil {
		e.OnInfo(SearchInfo{
			Depth:  e.depth,
			Score:  result.Score,
			Leaves: e.searcher.Leaves(),
			Time:   time.Since(startTime),
			PV:     result.Moves(),
		})
	}

	return best, result
}

// fallbackMove returns the legal move with the best one-ply delta and the
// static score after it.
func (e *Engine) fallbackMove(pos *board.Position) (board.Move, int) {
	maximize := pos.Turn() == board.White
	root := e.eval.StaticScore(pos)
	queue := orderMoves(e.eval, pos, pos.GenerateLegalMoves(), maximize)
	if c := queue.next(); c != nil {
		return c.move, root + c.delta
	}
	return board.NoMove, root
}

// Perft counts the leaf nodes of the legal move tree (for debugging move
// generation).
func (e *Engine) Perft(pos *board.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 {
		return uint64(moves.Len())
	}

	var nodes uint64
	for i := 0; i < moves.Len(); i++ {
		next, _ := pos.Apply(moves.Get(i))
		nodes += e.Perft(&next, depth-1)
	}

	return nodes
}

// Divide returns the perft count below each root move.
func (e *Engine) Divide(pos *board.Position, depth int) map[board.Move]uint64 {
	out := make(map[board.Move]uint64)
	if depth < 1 {
		return out
	}
	moves := pos.GenerateLegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		next, _ := pos.Apply(m)
		out[m] = e.Perft(&next, depth-1)
	}
	return out
}

// Evaluate returns the static material score of a position.
func (e *Engine) Evaluate(pos *board.Position) int {
	return e.eval.StaticScore(pos)
}

// MateThreshold separates king-capture and no-move scores from material
// scores.
const MateThreshold = KingValue / 2

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if score > MateThreshold {
		return "White wins"
	}
	if score < -MateThreshold {
		return "Black wins"
	}

	// Convert centipawns to pawns
	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return fmt.Sprintf("%s%d.%02d", sign, score/100, score%100)
}
