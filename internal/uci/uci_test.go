package uci

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
)

func run(t *testing.T, script string) (*UCI, string) {
	t.Helper()
	var out bytes.Buffer
	eng := engine.NewEngine()
	eng.SetDepth(2)
	u := New(eng, &out)
	if err := u.Run(strings.NewReader(script)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return u, out.String()
}

func TestHandshake(t *testing.T) {
	_, out := run(t, "uci\nisready\nquit\n")
	for _, want := range []string{"id name ChessCore", "option name Depth", "uciok", "readyok"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPositionCommands(t *testing.T) {
	tests := []struct {
		name   string
		script string
		fen    string
	}{
		{
			"startpos",
			"position startpos\n",
			board.StartFEN,
		},
		{
			"startpos moves",
			"position startpos moves e2e4 e7e5 g1f3\n",
			"rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2",
		},
		{
			"fen moves",
			"position fen r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1 moves e1g1\n",
			"r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1",
		},
		{
			"illegal move keeps previous position",
			"position startpos moves e2e4\nposition startpos moves e2e5\n",
			"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
		},
		{
			"bad fen keeps previous position",
			"position fen 8/8 w - - 0 1\n",
			board.StartFEN,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u, out := run(t, tc.script)
			if got := u.Position().ToFEN(); got != tc.fen {
				t.Errorf("position = %q, want %q\noutput:\n%s", got, tc.fen, out)
			}
		})
	}
}

func TestGo(t *testing.T) {
	_, out := run(t, "position fen 6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1\ngo depth 3\n")
	if !strings.Contains(out, "bestmove a1a8") {
		t.Errorf("expected bestmove a1a8:\n%s", out)
	}
	if !strings.Contains(out, "info depth 3 score mate 1") {
		t.Errorf("expected a mate score:\n%s", out)
	}
	t.Logf("output:\n%s", out)
}

func TestGoBlackScoreIsSideRelative(t *testing.T) {
	// Black to move and up a queen.
	_, out := run(t, "position fen 3qk3/8/8/8/8/8/8/4K3 b - - 0 1\ngo depth 1\n")
	if !strings.Contains(out, "score cp 9") {
		t.Errorf("black's winning score should be positive:\n%s", out)
	}
}

func TestGoWithoutMoves(t *testing.T) {
	_, out := run(t, "position fen rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3\ngo\n")
	if !strings.Contains(out, "bestmove 0000") {
		t.Errorf("mated side should report bestmove 0000:\n%s", out)
	}
}

func TestDebugCommands(t *testing.T) {
	_, out := run(t, "perft 2\ndivide 1\neval\nlegal\nd\n")
	for _, want := range []string{"Nodes: 400", "Nodes: 20", "Static score: 0", "Legal moves (20)", "Pe2-e4(e2e4)", "Fen: " + board.StartFEN} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSetOption(t *testing.T) {
	u, _ := run(t, "setoption name Depth value 4\n")
	if u.engine.Depth() != 4 {
		t.Errorf("depth = %d, want 4", u.engine.Depth())
	}

	u, _ = run(t, "setoption name Difficulty value Easy\nucinewgame\n")
	if u.engine.Depth() != 2 {
		t.Errorf("depth = %d, want 2", u.engine.Depth())
	}

	_, out := run(t, "setoption name Depth value zero\nfoo\n")
	if !strings.Contains(out, "info string Invalid depth") || !strings.Contains(out, "info string Unknown command: foo") {
		t.Errorf("expected diagnostics:\n%s", out)
	}
}

func TestQuitStopsReading(t *testing.T) {
	_, out := run(t, "quit\nisready\n")
	if strings.Contains(out, "readyok") {
		t.Error("commands after quit should be ignored")
	}
}

func TestMateDistance(t *testing.T) {
	backRank := "6k1/5ppp/8/8/8/8/8/R5K1"
	tests := []struct {
		name    string
		fen     string
		pv      []string
		winning bool
		want    int
	}{
		{"mates in one", backRank + " w - - 0 1", []string{"a1a8", "g8h8", "a8h8"}, true, 1},
		{"mated in one", backRank + " b - - 0 1", []string{"g8h8", "a1a8", "h7h6", "a8h8"}, false, 1},
		{"line without king capture", backRank + " w - - 0 1", []string{"a1a8", "g8h8"}, true, 1},
		{"mates in two", "7k/8/8/8/8/8/1R6/R5K1 w - - 0 1", []string{"a1a7", "h8g8", "b2b8", "g8h8", "b8h8"}, true, 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := board.ParseFEN(tc.fen)
			if err != nil {
				t.Fatal(err)
			}
			var pv []board.Move
			p := *pos
			for _, text := range tc.pv {
				m, err := board.ParseMove(text, &p)
				if err != nil {
					t.Fatalf("ParseMove(%q): %v", text, err)
				}
				pv = append(pv, m)
				p, _ = p.Apply(m)
			}
			if got := mateDistance(pos, pv, tc.winning); got != tc.want {
				t.Errorf("mateDistance = %d, want %d", got, tc.want)
			}
		})
	}
}
