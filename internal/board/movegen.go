package board

// Home squares used by castling.
var (
	kingHome      = [2]Square{E1, E8}
	kingSideRook  = [2]Square{H1, H8}
	queenSideRook = [2]Square{A1, A8}
)

// GeneratePseudoLegalMoves generates all pseudo-legal moves (may leave king
// in check) for the side to move.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	us := p.SideToMove
	for sq, piece := range p.Board {
		if piece != NoPiece && piece.Color() == us {
			p.addMovesFrom(ml, Square(sq))
		}
	}
	return ml
}

// PseudoLegalMovesFrom generates the pseudo-legal moves of whatever piece
// stands on sq. An empty square yields an empty list.
func (p *Position) PseudoLegalMovesFrom(sq Square) *MoveList {
	ml := NewMoveList()
	if sq.IsValid() {
		p.addMovesFrom(ml, sq)
	}
	return ml
}

// GenerateLegalMoves generates all legal moves for the position.
func (p *Position) GenerateLegalMoves() *MoveList {
	return p.filterLegalMoves(p.GeneratePseudoLegalMoves())
}

// LegalMovesFrom returns the legal moves of the piece on sq.
func (p *Position) LegalMovesFrom(sq Square) *MoveList {
	return p.filterLegalMoves(p.PseudoLegalMovesFrom(sq))
}

// IsLegalMove returns true if the moving piece belongs to the side to move
// and the move is among the legal moves from its origin.
func (p *Position) IsLegalMove(m Move) bool {
	from := m.From()
	piece := p.PieceAt(from)
	if piece == NoPiece || piece.Color() != p.SideToMove {
		return false
	}
	return p.LegalMovesFrom(from).Contains(m)
}

// IsLegal returns true if applying the pseudo-legal move m does not leave
// the mover's king attacked.
func (p *Position) IsLegal(m Move) bool {
	us := p.PieceAt(m.From()).Color()
	next, _ := p.Apply(m)
	return !next.InCheck(us)
}

// filterLegalMoves keeps the moves that do not leave the mover's king attacked.
func (p *Position) filterLegalMoves(ml *MoveList) *MoveList {
	result := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.IsLegal(m) {
			result.Add(m)
		}
	}
	return result
}

// addMovesFrom dispatches on the piece type standing on from.
func (p *Position) addMovesFrom(ml *MoveList, from Square) {
	piece := p.Board[from]
	if piece == NoPiece {
		return
	}
	us := piece.Color()

	switch piece.Type() {
	case Pawn:
		p.generatePawnMoves(ml, from, us)
	case Knight:
		p.generateLeaperMoves(ml, from, us, &knightOffsets)
	case Bishop:
		p.generateSliderMoves(ml, from, us, diagonalDirs[:])
	case Rook:
		p.generateSliderMoves(ml, from, us, straightDirs[:])
	case Queen:
		p.generateSliderMoves(ml, from, us, straightDirs[:])
		p.generateSliderMoves(ml, from, us, diagonalDirs[:])
	case King:
		p.generateLeaperMoves(ml, from, us, &kingOffsets)
		p.generateCastlingMoves(ml, from, us)
	}
}

// generateSliderMoves walks each ray, adding quiet moves up to the first
// occupied square and a capture if that square holds an enemy piece.
func (p *Position) generateSliderMoves(ml *MoveList, from Square, us Color, dirs [][2]int) {
	for _, d := range dirs {
		cur := from
		for {
			to, ok := cur.Offset(d[0], d[1])
			if !ok {
				break
			}
			target := p.Board[to]
			if target == NoPiece {
				ml.Add(NewMove(from, to))
				cur = to
				continue
			}
			if target.Color() != us {
				ml.Add(NewMove(from, to))
			}
			break
		}
	}
}

// generateLeaperMoves adds a move for each fixed offset that lands on the
// board and not on a friendly piece.
func (p *Position) generateLeaperMoves(ml *MoveList, from Square, us Color, offsets *[8][2]int) {
	for _, o := range offsets {
		to, ok := from.Offset(o[0], o[1])
		if !ok {
			continue
		}
		if target := p.Board[to]; target == NoPiece || target.Color() != us {
			ml.Add(NewMove(from, to))
		}
	}
}

// generatePawnMoves generates pushes, captures, en passant and promotions.
func (p *Position) generatePawnMoves(ml *MoveList, from Square, us Color) {
	dir := pawnDir(us)

	// Pushes
	if one, ok := from.Offset(0, dir); ok && p.IsEmpty(one) {
		addPawnMove(ml, from, one, us)
		if from.RelativeRank(us) == 1 {
			if two, ok := from.Offset(0, 2*dir); ok && p.IsEmpty(two) {
				ml.Add(NewMove(from, two))
			}
		}
	}

	// Captures
	for _, df := range [2]int{-1, 1} {
		to, ok := from.Offset(df, dir)
		if !ok {
			continue
		}
		if target := p.Board[to]; target != NoPiece && target.Color() != us {
			addPawnMove(ml, from, to, us)
		}
	}

	// En passant, only against an enemy pawn standing behind the target
	ep := p.EnPassant
	if ep.IsValid() && ep.Rank()-from.Rank() == dir && abs(ep.File()-from.File()) == 1 && p.IsEmpty(ep) {
		if behind, _ := p.At(ep.File(), ep.Rank()-dir); behind == NewPiece(Pawn, us.Other()) {
			ml.Add(NewEnPassant(from, ep))
		}
	}
}

// addPawnMove adds a pawn move, expanded into one move per promotion choice
// when it reaches the farthest rank.
func addPawnMove(ml *MoveList, from, to Square, us Color) {
	if to.RelativeRank(us) != 7 {
		ml.Add(NewMove(from, to))
		return
	}
	for _, pt := range promotionTypes {
		ml.Add(NewPromotion(from, to, pt))
	}
}

// generateCastlingMoves generates castling moves for a king on its home square.
func (p *Position) generateCastlingMoves(ml *MoveList, from Square, us Color) {
	if from != kingHome[us] {
		return
	}
	them := us.Other()
	rook := NewPiece(Rook, us)
	rank := from.Rank()

	// Kingside (O-O): f and g empty, e and f not attacked
	if p.CastlingRights.CanCastle(us, true) && p.Board[kingSideRook[us]] == rook {
		f, g := NewSquare(5, rank), NewSquare(6, rank)
		if p.IsEmpty(f) && p.IsEmpty(g) &&
			!p.IsSquareAttacked(from, them) && !p.IsSquareAttacked(f, them) {
			ml.Add(NewCastling(from, g))
		}
	}

	// Queenside (O-O-O): b, c and d empty, e and d not attacked
	if p.CastlingRights.CanCastle(us, false) && p.Board[queenSideRook[us]] == rook {
		b, c, d := NewSquare(1, rank), NewSquare(2, rank), NewSquare(3, rank)
		if p.IsEmpty(b) && p.IsEmpty(c) && p.IsEmpty(d) &&
			!p.IsSquareAttacked(from, them) && !p.IsSquareAttacked(d, them) {
			ml.Add(NewCastling(from, c))
		}
	}
}

// HasLegalMoves returns true if the side to move has any legal moves.
func (p *Position) HasLegalMoves() bool {
	ml := p.GeneratePseudoLegalMoves()
	for i := 0; i < ml.Len(); i++ {
		if p.IsLegal(ml.Get(i)) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the position is checkmate.
func (p *Position) IsCheckmate() bool {
	return p.SideInCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the position is stalemate.
func (p *Position) IsStalemate() bool {
	return !p.SideInCheck() && !p.HasLegalMoves()
}

// IsFiftyMoveDraw returns true once a hundred half-moves have passed
// without a pawn move or capture.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.HalfMoveClock >= 100
}

// IsDraw returns true if the position is a draw (stalemate, 50-move, insufficient material).
func (p *Position) IsDraw() bool {
	if p.IsStalemate() {
		return true
	}
	if p.IsFiftyMoveDraw() {
		return true
	}
	return p.IsInsufficientMaterial()
}

// IsInsufficientMaterial returns true if neither side can checkmate.
func (p *Position) IsInsufficientMaterial() bool {
	var minors [2]int
	for _, piece := range p.Board {
		if piece == NoPiece {
			continue
		}
		switch piece.Type() {
		case Pawn, Rook, Queen:
			// If there are any pawns, rooks, or queens, sufficient material
			return false
		case Knight, Bishop:
			minors[piece.Color()]++
		}
	}

	// K vs K, K+minor vs K
	if minors[White] <= 1 && minors[Black] == 0 {
		return true
	}
	if minors[Black] <= 1 && minors[White] == 0 {
		return true
	}

	return false
}
