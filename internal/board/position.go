package board

import (
	"fmt"
	"log"
	"strings"
)

// DebugMoveValidation enables extra logging around move generation and
// application.
var DebugMoveValidation = false

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castleRight(c, kingSide) != 0
}

func castleRight(c Color, kingSide bool) CastlingRights {
	if c == White {
		if kingSide {
			return WhiteKingSideCastle
		}
		return WhiteQueenSideCastle
	}
	if kingSide {
		return BlackKingSideCastle
	}
	return BlackQueenSideCastle
}

// Position represents a complete chess position.
//
// It is a fixed-size value: copying a Position yields an independent board,
// which is how the search keeps sibling branches apart.
type Position struct {
	// Board holds one piece per square, rank-major (A1=0 ... H8=63).
	Board [64]Piece

	// Game state
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Moves since last pawn move or capture (for 50-move rule)
	FullMoveNumber int    // Full move counter, starts at 1
}

// NewPosition creates the starting position.
func NewPosition() *Position {
	pos, _ := ParseFEN(StartFEN)
	return pos
}

// EmptyPosition returns a board with no pieces, white to move.
func EmptyPosition() *Position {
	p := &Position{}
	p.Clear()
	return p
}

// Copy creates a deep copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// PieceAt returns the piece at the given square without a bounds check.
func (p *Position) PieceAt(sq Square) Piece {
	return p.Board[sq]
}

// At returns the piece at file/rank, and false when the coordinates are
// off the board.
func (p *Position) At(file, rank int) (Piece, bool) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoPiece, false
	}
	return p.Board[NewSquare(file, rank)], true
}

// SetPiece writes a piece (or NoPiece) to a square.
func (p *Position) SetPiece(sq Square, piece Piece) {
	p.Board[sq] = piece
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.Board[sq] == NoPiece
}

// HasCastlingRight reports whether the given right bit is set.
func (p *Position) HasCastlingRight(cr CastlingRights) bool {
	return p.CastlingRights&cr != 0
}

// Turn returns the side to move.
func (p *Position) Turn() Color {
	return p.SideToMove
}

// String returns a visual representation of the position, rank 8 at the
// top and file a on the left.
func (p *Position) String() string {
	var sb strings.Builder
	sb.WriteString("\n")
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Side to move: %s\n", p.SideToMove)
	fmt.Fprintf(&sb, "Castling: %s\n", p.CastlingRights)
	fmt.Fprintf(&sb, "En passant: %s\n", p.EnPassant)
	fmt.Fprintf(&sb, "Half-move clock: %d\n", p.HalfMoveClock)
	fmt.Fprintf(&sb, "Full move: %d\n", p.FullMoveNumber)
	return sb.String()
}

// Clear resets the position to an empty board.
func (p *Position) Clear() {
	*p = Position{
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	for sq := range p.Board {
		p.Board[sq] = NoPiece
	}
}

// Validate checks if the position is valid.
func (p *Position) Validate() error {
	var kings [2]int
	for sq, piece := range p.Board {
		if piece == NoPiece {
			continue
		}
		if piece.Type() == King {
			kings[piece.Color()]++
		}
		if piece.Type() == Pawn {
			if r := Square(sq).Rank(); r == 0 || r == 7 {
				return fmt.Errorf("pawns cannot be on rank 1 or 8")
			}
		}
	}

	// Check that each side has exactly one king
	if kings[White] != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if kings[Black] != 1 {
		return fmt.Errorf("black must have exactly one king")
	}

	// The side that just moved must not be in check
	if p.InCheck(p.SideToMove.Other()) {
		return fmt.Errorf("%s king is in check with %s to move", p.SideToMove.Other(), p.SideToMove)
	}

	return nil
}

func debugf(format string, args ...any) {
	if DebugMoveValidation {
		log.Printf(format, args...)
	}
}
