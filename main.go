// ChessCore - play chess against the engine in a terminal.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
	"github.com/hailam/chesscore/internal/play"
)

var (
	fen        = flag.String("fen", board.StartFEN, "starting position")
	depth      = flag.Int("depth", 0, "search depth in plies (overrides -difficulty)")
	difficulty = flag.String("difficulty", "medium", "easy, medium or hard")
	color      = flag.String("color", "white", "side you play: white, black or none")
	debug      = flag.Bool("debug", false, "log move validation details")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()
	board.DebugMoveValidation = *debug

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", *cpuprofile)
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatal(err)
	}
	if err := pos.Validate(); err != nil {
		log.Fatal("invalid starting position: ", err)
	}

	var human board.Color
	switch strings.ToLower(*color) {
	case "white", "w":
		human = board.White
	case "black", "b":
		human = board.Black
	case "none":
		human = board.NoColor
	default:
		log.Fatalf("unknown color %q", *color)
	}

	eng := engine.NewEngine()
	d, err := engine.ParseDifficulty(strings.ToLower(*difficulty))
	if err != nil {
		log.Fatal(err)
	}
	eng.SetDifficulty(d)
	if *depth > 0 {
		eng.SetDepth(*depth)
	}

	session := play.NewSession(pos, eng, human, os.Stdout)
	if err := session.Run(os.Stdin); err != nil {
		log.Fatal(err)
	}
}
