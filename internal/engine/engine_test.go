package engine

import (
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func TestSearchBasic(t *testing.T) {
	pos := board.NewPosition()
	eng := NewEngine()
	eng.SetDifficulty(Easy)

	var infos []SearchInfo
	eng.OnInfo = func(info SearchInfo) { infos = append(infos, info) }

	move, res := eng.Search(pos)
	if move == board.NoMove {
		t.Fatal("Search returned NoMove for starting position")
	}
	if !pos.IsLegalMove(move) {
		t.Errorf("Search returned illegal move %s", move)
	}
	if len(infos) != 1 {
		t.Fatalf("OnInfo called %d times, want 1", len(infos))
	}
	if infos[0].Depth != 2 || infos[0].Leaves != eng.Leaves() || infos[0].Score != res.Score {
		t.Errorf("info = %+v", infos[0])
	}
	if len(infos[0].PV) == 0 || infos[0].PV[0] != move {
		t.Errorf("info PV %v should start with %s", infos[0].PV, move)
	}
	t.Logf("Best move: %s (%s), leaves %d", move, ScoreToString(res.Score), eng.Leaves())
}

func TestDifficulty(t *testing.T) {
	eng := NewEngine()
	if eng.Depth() != 3 {
		t.Errorf("default depth %d, want 3", eng.Depth())
	}
	for d, want := range DifficultyDepth {
		eng.SetDifficulty(d)
		if eng.Depth() != want {
			t.Errorf("%v: depth %d, want %d", d, eng.Depth(), want)
		}
	}
	eng.SetDepth(0)
	if eng.Depth() != 1 {
		t.Errorf("SetDepth(0) gave %d, want 1", eng.Depth())
	}

	d, err := ParseDifficulty("hard")
	if err != nil || d != Hard {
		t.Errorf("ParseDifficulty(hard) = %v, %v", d, err)
	}
	if _, err := ParseDifficulty("impossible"); err == nil {
		t.Error("ParseDifficulty should reject unknown names")
	}
}

func TestSearchCheckmated(t *testing.T) {
	// Fool's mate.
	pos := mustFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	move, _ := NewEngine().Search(pos)
	if move != board.NoMove {
		t.Errorf("checkmated side got move %s", move)
	}
}

func TestShallowSearchStaysLegal(t *testing.T) {
	// Kxd2 wins the queen on one ply but walks into the rook.
	pos := mustFEN(t, "3r3k/8/8/8/8/8/3q3P/4K3 w - - 0 1")
	eng := NewEngine()
	eng.SetDepth(1)
	var reported int
	eng.OnInfo = func(info SearchInfo) { reported = info.Score }
	move, res := eng.Search(pos)
	if !pos.IsLegalMove(move) {
		t.Fatalf("depth 1 search returned illegal move %s", move)
	}
	if move != board.NewMove(board.E1, board.F1) {
		t.Errorf("played %s, want the only legal move e1f1", move)
	}
	if len(res.Line) != 1 || res.Line[0].Move != move {
		t.Fatalf("line %v should hold only %s", res.Line, move)
	}

	// The replacement is scored one ply deep.
	next, eff := pos.Apply(move)
	want := eng.Evaluate(pos) + NewEvaluator(DefaultWeights()).ScoreDelta(&next, eff, move)
	if res.Score != want || res.Line[0].Score != want || reported != want {
		t.Errorf("score %d, line score %d, reported %d; want %d", res.Score, res.Line[0].Score, reported, want)
	}
	t.Logf("fallback %s scored %d", move, want)
}

func TestPerft(t *testing.T) {
	eng := NewEngine()
	pos := board.NewPosition()
	if got := eng.Perft(pos, 3); got != 8902 {
		t.Errorf("perft(3) = %d, want 8902", got)
	}

	var total uint64
	for _, n := range eng.Divide(pos, 2) {
		total += n
	}
	if total != 400 {
		t.Errorf("divide(2) sums to %d, want 400", total)
	}
}

func TestScoreToString(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "0.00"},
		{125, "1.25"},
		{-5, "-0.05"},
		{-300, "-3.00"},
		{KingValue, "White wins"},
		{-KingValue, "Black wins"},
	}
	for _, tc := range tests {
		if got := ScoreToString(tc.score); got != tc.want {
			t.Errorf("ScoreToString(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestEvaluate(t *testing.T) {
	eng := NewEngine()
	if got := eng.Evaluate(board.NewPosition()); got != 0 {
		t.Errorf("Evaluate(start) = %d, want 0", got)
	}
}
