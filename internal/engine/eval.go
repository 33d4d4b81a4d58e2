// Package engine implements static evaluation and the alpha-beta search.
package engine

import (
	"github.com/hailam/chesscore/internal/board"
)

// Evaluation constants, in centipawns.
const (
	PawnValue   = 100
	KnightValue = 300
	BishopValue = 300
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 100000

	CastleBonus = 30
)

// Weights holds the tunable evaluation parameters.
type Weights struct {
	// Material value per piece type, indexed by board.PieceType.
	Material [6]int

	// Castle is added for the side that castles.
	Castle int

	// PawnRank is the bonus of a pawn by rank, seen from its own side
	// (index 0 is the owner's back rank).
	PawnRank [8]int

	// Centre is the bonus of any other piece by file and by rank; the
	// positional value is the average of the two lookups.
	Centre [8]int
}

// DefaultWeights returns the hand-tuned weights.
func DefaultWeights() Weights {
	return Weights{
		Material: [6]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue},
		Castle:   CastleBonus,
		PawnRank: [8]int{0, 0, 5, 10, 10, 30, 100, 0},
		Centre:   [8]int{-5, 0, 10, 20, 20, 10, 0, -5},
	}
}

// Evaluator scores positions with a fixed set of weights. Scores are from
// White's point of view: positive favours White.
type Evaluator struct {
	w Weights
}

// NewEvaluator creates an evaluator with the given weights.
func NewEvaluator(w Weights) *Evaluator {
	return &Evaluator{w: w}
}

// Weights returns the evaluator's weights.
func (e *Evaluator) Weights() Weights {
	return e.w
}

// sign returns +1 for White and -1 for Black.
func sign(c board.Color) int {
	if c == board.White {
		return 1
	}
	return -1
}

// PieceValue returns the signed material value of a piece. NoPiece is 0.
func (e *Evaluator) PieceValue(p board.Piece) int {
	if p == board.NoPiece {
		return 0
	}
	return sign(p.Color()) * e.w.Material[p.Type()]
}

// PositionValue returns the signed positional bonus of piece p standing on sq.
func (e *Evaluator) PositionValue(p board.Piece, sq board.Square) int {
	switch p {
	case board.NoPiece:
		return 0
	case board.WhitePawn:
		return e.w.PawnRank[sq.Rank()]
	case board.BlackPawn:
		return -e.w.PawnRank[7-sq.Rank()]
	}
	return sign(p.Color()) * (e.w.Centre[sq.File()] + e.w.Centre[sq.Rank()]) / 2
}

// StaticScore sums the signed material on the board. It is computed once
// per search; the search tracks everything else incrementally.
func (e *Evaluator) StaticScore(pos *board.Position) int {
	score := 0
	for _, p := range pos.Board {
		score += e.PieceValue(p)
	}
	return score
}

// ScoreDelta returns the score change caused by m, given the position after
// the move and the move's effect. The moved piece is read from its
// destination, so a promotion is valued as the promoted piece on both
// squares.
func (e *Evaluator) ScoreDelta(next *board.Position, eff board.Effect, m board.Move) int {
	piece := next.PieceAt(m.To())
	delta := e.PositionValue(piece, m.To()) - e.PositionValue(piece, m.From())
	delta += e.PieceValue(eff.Placed) - e.PieceValue(eff.Removed)
	if m.IsCastling() {
		delta += sign(piece.Color()) * e.w.Castle
	}
	return delta
}
