package engine

import (
	"fmt"
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

// minimax is the unpruned full-width reference for alphaBeta.
func minimax(eval *Evaluator, pos *board.Position, score int, maximize bool, depth int) int {
	if depth == 0 {
		return score
	}
	moves := pos.GeneratePseudoLegalMoves()
	if moves.Len() == 0 {
		if maximize {
			return -Infinity
		}
		return Infinity
	}

	best := Infinity
	if maximize {
		best = -Infinity
	}
	for _, m := range moves.Slice() {
		next, eff := pos.Apply(m)
		var value int
		if eff.Removed != board.NoPiece && eff.Removed.Type() == board.King {
			value = -eval.PieceValue(eff.Removed)
		} else {
			value = minimax(eval, &next, score+eval.ScoreDelta(&next, eff, m), !maximize, depth-1)
		}
		if maximize && value > best || !maximize && value < best {
			best = value
		}
	}
	return best
}

var searchFENs = []string{
	board.StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"r1b1kbnr/ppp3p1/2n5/1B1qppPp/3P3N/2N1B3/PPP2P1P/R2QK2R w Kq h6 1 38",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 b - - 0 1",
	"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1",
	"4k3/8/8/8/8/8/3q4/3QK3 w - - 0 1",
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	eval := NewEvaluator(DefaultWeights())
	for _, fen := range searchFENs {
		pos := mustFEN(t, fen)
		maxDepth := 3
		if testing.Short() {
			maxDepth = 2
		}
		for depth := 1; depth <= maxDepth; depth++ {
			t.Run(fmt.Sprintf("%s/depth%d", fen, depth), func(t *testing.T) {
				s := NewSearcher(eval)
				got := s.Search(pos, depth)
				want := minimax(eval, pos, eval.StaticScore(pos), pos.SideToMove == board.White, depth)
				if got.Score != want {
					t.Errorf("alpha-beta = %d, minimax = %d", got.Score, want)
				}
				t.Logf("score %d, leaves %d, line %v", got.Score, s.Leaves(), got.Moves())
			})
		}
	}
}

func TestPrincipalLine(t *testing.T) {
	eval := NewEvaluator(DefaultWeights())
	for _, fen := range searchFENs {
		pos := mustFEN(t, fen)
		res := NewSearcher(eval).Search(pos, 3)
		if len(res.Line) == 0 || len(res.Line) > 3 {
			t.Fatalf("%s: line length %d", fen, len(res.Line))
		}

		// The line is playable from the root and every entry carries the
		// backed-up score.
		cur := *pos
		for i, e := range res.Line {
			if !cur.GeneratePseudoLegalMoves().Contains(e.Move) {
				t.Fatalf("%s: line move %d (%s) is not playable", fen, i, e.Move)
			}
			if e.Score != res.Score {
				t.Errorf("%s: line entry %d score %d, root score %d", fen, i, e.Score, res.Score)
			}
			cur, _ = cur.Apply(e.Move)
		}
	}
}

func TestSearchCapturesHangingQueen(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/8/8/8/3q4/3QK3 w - - 0 1")
	res := NewSearcher(NewEvaluator(DefaultWeights())).Search(pos, 2)
	if best := res.Best(); best.To() != board.D2 {
		t.Errorf("best move %s, want a capture on d2", best)
	}
	if res.Score < QueenValue/2 {
		t.Errorf("score %d should reflect the won queen", res.Score)
	}
}

func TestSearchFindsMateByKingCapture(t *testing.T) {
	pos := mustFEN(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	res := NewSearcher(NewEvaluator(DefaultWeights())).Search(pos, 3)
	if best := res.Best(); best != board.NewMove(board.A1, board.A8) {
		t.Errorf("best move %s, want a1a8", best)
	}
	if res.Score != KingValue {
		t.Errorf("score %d, want %d", res.Score, KingValue)
	}
	if ScoreToString(res.Score) != "White wins" {
		t.Errorf("ScoreToString(%d) = %q", res.Score, ScoreToString(res.Score))
	}
}

func TestLeafCounter(t *testing.T) {
	s := NewSearcher(NewEvaluator(DefaultWeights()))
	pos := board.NewPosition()

	res := s.Search(pos, 0)
	if s.Leaves() != 1 || len(res.Line) != 0 {
		t.Errorf("depth 0: leaves %d, line %v", s.Leaves(), res.Line)
	}

	s.Reset()
	s.Search(pos, 1)
	if s.Leaves() != 20 {
		t.Errorf("depth 1: leaves %d, want 20", s.Leaves())
	}

	s.Search(pos, 1)
	if s.Leaves() != 40 {
		t.Errorf("counter should accumulate until Reset, got %d", s.Leaves())
	}
}

func TestSearchWithoutMoves(t *testing.T) {
	s := NewSearcher(NewEvaluator(DefaultWeights()))

	res := s.Search(mustFEN(t, "8/8/8/8/8/8/8/7k w - - 0 1"), 2)
	if res.Score != -Infinity || len(res.Line) != 0 {
		t.Errorf("white without moves: score %d, line %v", res.Score, res.Line)
	}

	res = s.Search(mustFEN(t, "8/8/8/8/8/8/8/7K b - - 0 1"), 2)
	if res.Score != Infinity || len(res.Line) != 0 {
		t.Errorf("black without moves: score %d, line %v", res.Score, res.Line)
	}
}

func TestReductionPolicy(t *testing.T) {
	lmr := LateMoveReduction{After: 3, Amount: 1, MinDepth: 3}
	tests := []struct {
		depth, rank, want int
	}{
		{4, 0, 3},
		{4, 2, 3},
		{4, 3, 2},
		{4, 10, 2},
		{2, 10, 1},
		{3, 5, 1},
	}
	for _, tc := range tests {
		if got := lmr.ChildDepth(tc.depth, tc.rank); got != tc.want {
			t.Errorf("ChildDepth(%d, %d) = %d, want %d", tc.depth, tc.rank, got, tc.want)
		}
	}

	deep := LateMoveReduction{After: 0, Amount: 5, MinDepth: 1}
	if got := deep.ChildDepth(2, 0); got != 0 {
		t.Errorf("reduced depth should clamp at 0, got %d", got)
	}
	if got := (NoReduction{}).ChildDepth(5, 40); got != 4 {
		t.Errorf("NoReduction.ChildDepth = %d, want 4", got)
	}
}

func TestSearchWithReduction(t *testing.T) {
	eval := NewEvaluator(DefaultWeights())
	pos := board.NewPosition()

	plain := NewSearcher(eval)
	want := plain.Search(pos, 3)

	// A reduction of zero plies changes nothing.
	s := NewSearcher(eval)
	s.SetReduction(LateMoveReduction{After: 0, Amount: 0, MinDepth: 0})
	if got := s.Search(pos, 3); got.Score != want.Score || got.Best() != want.Best() {
		t.Errorf("zero reduction: %d %s, want %d %s", got.Score, got.Best(), want.Score, want.Best())
	}

	s = NewSearcher(eval)
	s.SetReduction(LateMoveReduction{After: 4, Amount: 1, MinDepth: 3})
	got := s.Search(pos, 3)
	if got.Best() == board.NoMove {
		t.Fatal("reduced search returned no move")
	}
	t.Logf("reduced: %s score %d leaves %d (full: %d leaves)", got.Best(), got.Score, s.Leaves(), plain.Leaves())

	s.SetReduction(nil)
	s.Reset()
	if got := s.Search(pos, 3); got.Score != want.Score {
		t.Errorf("nil policy should restore full search: %d, want %d", got.Score, want.Score)
	}
}
