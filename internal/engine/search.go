package engine

import (
	"github.com/hailam/chesscore/internal/board"
)

// Infinity bounds every reachable score. A side with no pseudo-legal moves
// is scored as -Infinity for White or +Infinity for Black.
const Infinity = 100_000_000

// PVEntry is one ply of a principal line with the score backed up to it.
type PVEntry struct {
	Move  board.Move
	Score int
}

// Result is the outcome of a search.
type Result struct {
	// Score is from White's point of view.
	Score int

	// Line is the principal line, root move first. It is shorter than the
	// search depth when the line ends early (king capture or no moves).
	Line []PVEntry
}

// Best returns the root move of the principal line, or NoMove.
func (r Result) Best() board.Move {
	if len(r.Line) == 0 {
		return board.NoMove
	}
	return r.Line[0].Move
}

// Moves returns the moves of the principal line.
func (r Result) Moves() []board.Move {
	moves := make([]board.Move, len(r.Line))
	for i, e := range r.Line {
		moves[i] = e.Move
	}
	return moves
}

// Searcher performs a fixed-depth alpha-beta search.
//
// Moves are generated pseudo-legally: a line that leaves a king en prise is
// refuted by the capture of that king one ply later, which the search scores
// as a terminal instead of recursing.
type Searcher struct {
	eval      *Evaluator
	reduction ReductionPolicy
	leaves    uint64
}

// NewSearcher creates a searcher using eval and no depth reduction.
func NewSearcher(eval *Evaluator) *Searcher {
	return &Searcher{
		eval:      eval,
		reduction: NoReduction{},
	}
}

// SetReduction sets the depth reduction policy. nil restores NoReduction.
func (s *Searcher) SetReduction(p ReductionPolicy) {
	if p == nil {
		p = NoReduction{}
	}
	s.reduction = p
}

// Reset clears the leaf counter.
func (s *Searcher) Reset() {
	s.leaves = 0
}

// Leaves returns the number of leaf evaluations since the last Reset.
func (s *Searcher) Leaves() uint64 {
	return s.leaves
}

// Search searches pos to the given depth. White maximizes and Black
// minimizes; the side to move decides which one the root is.
func (s *Searcher) Search(pos *board.Position, depth int) Result {
	score := s.eval.StaticScore(pos)
	maximize := pos.Turn() == board.White
	best, line := s.alphaBeta(pos, score, -Infinity, Infinity, maximize, depth)
	return Result{Score: best, Line: line}
}

// alphaBeta returns the backed-up score of pos and the line leading to it.
// score is the running evaluation of pos.
func (s *Searcher) alphaBeta(pos *board.Position, score, alpha, beta int, maximize bool, depth int) (int, []PVEntry) {
	if depth <= 0 {
		s.leaves++
		return score, nil
	}

	moves := pos.GeneratePseudoLegalMoves()
	if moves.Len() == 0 {
		if maximize {
			return -Infinity, nil
		}
		return Infinity, nil
	}

	queue := orderMoves(s.eval, pos, moves, maximize)

	var (
		best     int
		bestLine []PVEntry
		found    bool
	)
	for rank := 0; ; rank++ {
		c := queue.next()
		if c == nil {
			break
		}

		var value int
		var line []PVEntry
		if c.eff.Removed != board.NoPiece && c.eff.Removed.Type() == board.King {
			value = -s.eval.PieceValue(c.eff.Removed)
		} else {
			childDepth := s.reduction.ChildDepth(depth, rank)
			value, line = s.alphaBeta(&c.next, score+c.delta, alpha, beta, !maximize, childDepth)
		}

		// The first candidate is always adopted; later ones must be strictly better.
		if !found || (maximize && value > best) || (!maximize && value < best) {
			found = true
			best = value
			bestLine = append([]PVEntry{{Move: c.move, Score: value}}, line...)
		}

		if maximize {
			if best > alpha {
				alpha = best
			}
			if best > beta {
				break
			}
		} else {
			if best < beta {
				beta = best
			}
			if best < alpha {
				break
			}
		}
	}

	return best, bestLine
}
