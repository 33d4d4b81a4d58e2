package board

import "fmt"

// castleRightsLostFrom maps a home square to the rights that die when a
// piece leaves it.
var castleRightsLostFrom = [64]CastlingRights{
	E1: WhiteKingSideCastle | WhiteQueenSideCastle,
	H1: WhiteKingSideCastle,
	A1: WhiteQueenSideCastle,
	E8: BlackKingSideCastle | BlackQueenSideCastle,
	H8: BlackKingSideCastle,
	A8: BlackQueenSideCastle,
}

// rookHomeRights holds the right that dies when a rook is captured at home.
var rookHomeRights = [64]CastlingRights{
	H1: WhiteKingSideCastle,
	A1: WhiteQueenSideCastle,
	H8: BlackKingSideCastle,
	A8: BlackQueenSideCastle,
}

// Apply returns the position after m together with the material effect of
// the move. The receiver is not modified.
//
// Apply does not check legality: m must come from the move generator or be
// validated with IsLegalMove first. Applying a move from an empty square, or
// a castle whose king is not on its home square, panics.
func (p *Position) Apply(m Move) (Position, Effect) {
	next := *p
	eff := next.applyInPlace(m)
	return next, eff
}

// applyInPlace performs m on p.
func (p *Position) applyInPlace(m Move) Effect {
	from, to := m.From(), m.To()
	piece := p.Board[from]
	if piece == NoPiece {
		panic(fmt.Sprintf("board: apply %s: no piece on %s", m, from))
	}
	if DebugMoveValidation && piece.Color() != p.SideToMove {
		debugf("APPLY: moving %v piece with %v to move: %v", piece.Color(), p.SideToMove, m)
	}

	eff := Effect{Removed: NoPiece, Placed: NoPiece}

	switch m.Kind() {
	case EnPassant:
		// The captured pawn sits behind the destination, seen from the mover.
		capSq := NewSquare(to.File(), to.Rank()-pawnDir(piece.Color()))
		eff.Removed = p.Board[capSq]
		p.Board[capSq] = NoPiece
		p.movePiece(from, to, &eff)

	case CastleKingSide, CastleQueenSide:
		us := piece.Color()
		if piece.Type() != King || from != kingHome[us] {
			panic(fmt.Sprintf("board: apply %s: castle from %s is not a king home square", m, from))
		}
		p.movePiece(from, to, &eff)
		rookFrom, rookTo := kingSideRook[us], NewSquare(5, from.Rank())
		if m.Kind() == CastleQueenSide {
			rookFrom, rookTo = queenSideRook[us], NewSquare(3, from.Rank())
		}
		p.Board[rookTo] = p.Board[rookFrom]
		p.Board[rookFrom] = NoPiece
		// Castling never captures.
		eff.Removed = NoPiece

	case Promotion:
		p.movePiece(from, to, &eff)
		eff.Placed = NewPiece(m.Promotion(), piece.Color())
		p.Board[to] = eff.Placed

	default:
		p.movePiece(from, to, &eff)
	}

	// Set en passant square for double pawn push
	p.EnPassant = NoSquare
	if piece.Type() == Pawn && abs(to.Rank()-from.Rank()) == 2 {
		p.EnPassant = NewSquare(from.File(), (from.Rank()+to.Rank())/2)
	}

	// Castling rights die with the home square the move started from, and
	// with a rook captured on its home square.
	p.CastlingRights &^= castleRightsLostFrom[from]
	if eff.Removed != NoPiece && eff.Removed.Type() == Rook {
		p.CastlingRights &^= rookHomeRights[to]
	}

	// Update half-move clock
	if piece.Type() == Pawn || eff.Removed != NoPiece {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}

	// Update full-move number
	if p.SideToMove == Black {
		p.FullMoveNumber++
	}

	// Switch side to move
	p.SideToMove = p.SideToMove.Other()

	return eff
}

// movePiece moves the piece on from to to, recording any captured piece.
func (p *Position) movePiece(from, to Square, eff *Effect) {
	if captured := p.Board[to]; captured != NoPiece {
		eff.Removed = captured
	}
	p.Board[to] = p.Board[from]
	p.Board[from] = NoPiece
}
