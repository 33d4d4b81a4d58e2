package board

// Direction offsets as (file, rank) steps.
var (
	knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	straightDirs  = [4][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	diagonalDirs  = [4][2]int{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
)

// pawnDir returns the rank step of a pawn of the given color.
func pawnDir(c Color) int {
	if c == White {
		return 1
	}
	return -1
}

// IsSquareAttacked returns true if the square is attacked by the given color.
// NoSquare is never attacked.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	if !sq.IsValid() {
		return false
	}
	return p.isPawnAttacking(sq, byColor) ||
		p.isLeaperAttacking(sq, byColor, Knight, &knightOffsets) ||
		p.isLeaperAttacking(sq, byColor, King, &kingOffsets) ||
		p.isSlidingAttacking(sq, byColor, &straightDirs, Rook) ||
		p.isSlidingAttacking(sq, byColor, &diagonalDirs, Bishop)
}

// isPawnAttacking checks the two squares a pawn of byColor would attack sq from.
func (p *Position) isPawnAttacking(sq Square, byColor Color) bool {
	pawn := NewPiece(Pawn, byColor)
	dr := -pawnDir(byColor)
	for _, df := range [2]int{-1, 1} {
		if from, ok := sq.Offset(df, dr); ok && p.Board[from] == pawn {
			return true
		}
	}
	return false
}

func (p *Position) isLeaperAttacking(sq Square, byColor Color, pt PieceType, offsets *[8][2]int) bool {
	attacker := NewPiece(pt, byColor)
	for _, o := range offsets {
		if piece, ok := p.At(sq.File()+o[0], sq.Rank()+o[1]); ok && piece == attacker {
			return true
		}
	}
	return false
}

// isSlidingAttacking walks each ray to the first occupied square and checks
// for a slider of byColor matching the ray geometry (or a queen).
func (p *Position) isSlidingAttacking(sq Square, byColor Color, dirs *[4][2]int, slider PieceType) bool {
	attacker := NewPiece(slider, byColor)
	queen := NewPiece(Queen, byColor)
	for _, d := range dirs {
		f, r := sq.File()+d[0], sq.Rank()+d[1]
		for {
			piece, ok := p.At(f, r)
			if !ok {
				break
			}
			if piece != NoPiece {
				if piece == attacker || piece == queen {
					return true
				}
				break
			}
			f, r = f+d[0], r+d[1]
		}
	}
	return false
}

// KingSquare returns the square of the given side's king, or NoSquare if
// the board has none.
func (p *Position) KingSquare(c Color) Square {
	king := NewPiece(King, c)
	for sq, piece := range p.Board {
		if piece == king {
			return Square(sq)
		}
	}
	return NoSquare
}

// InCheck returns true if the given side's king is attacked. A side without
// a king is never in check.
func (p *Position) InCheck(c Color) bool {
	return p.IsSquareAttacked(p.KingSquare(c), c.Other())
}

// SideInCheck returns true if the side to move is in check.
func (p *Position) SideInCheck() bool {
	return p.InCheck(p.SideToMove)
}
