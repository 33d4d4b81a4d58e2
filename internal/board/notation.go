package board

import (
	"fmt"
	"strings"
)

// MoveText formats a move in the short text form used by the interactive
// player: piece letter, origin, "-", destination ("Pe2-e4"), with a trailing
// "e" for en passant, the promoted piece letter for promotions ("Pb7-b8Q"),
// and "0-0"/"0-0-0" for castling.
func MoveText(pos *Position, m Move) string {
	switch m.Kind() {
	case CastleKingSide:
		return "0-0"
	case CastleQueenSide:
		return "0-0-0"
	}

	piece := pos.PieceAt(m.From())
	var sb strings.Builder
	sb.WriteString(strings.ToUpper(piece.String()))
	sb.WriteString(m.From().String())
	sb.WriteByte('-')
	sb.WriteString(m.To().String())

	switch m.Kind() {
	case EnPassant:
		sb.WriteByte('e')
	case Promotion:
		sb.WriteString(NewPiece(m.Promotion(), piece.Color()).String())
	}
	return sb.String()
}

// ParseMoveText parses the text form produced by MoveText. The leading
// piece letter is optional ("e2-e4" and "Pe2-e4" are equivalent) and the
// promotion letter is case-insensitive. Castling text needs pos to locate
// the king of the side to move; other forms only read the text.
func ParseMoveText(s string, pos *Position) (Move, error) {
	text := strings.TrimSpace(s)
	switch text {
	case "0-0", "O-O":
		return castleFromText(pos, true)
	case "0-0-0", "O-O-O":
		return castleFromText(pos, false)
	}

	// Optional piece letter
	if len(text) > 1 && PieceFromChar(text[0]) != NoPiece && text[1] >= 'a' && text[1] <= 'h' {
		text = text[1:]
	}
	if len(text) < 5 || text[2] != '-' {
		return NoMove, fmt.Errorf("invalid move text: %q", s)
	}

	from, err := ParseSquare(text[0:2])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move text %q: %w", s, err)
	}
	to, err := ParseSquare(text[3:5])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move text %q: %w", s, err)
	}

	suffix := text[5:]
	switch {
	case suffix == "":
		return NewMove(from, to), nil
	case suffix == "e":
		return NewEnPassant(from, to), nil
	case len(suffix) == 1:
		promo := PieceFromChar(suffix[0])
		switch promo.Type() {
		case Knight, Bishop, Rook, Queen:
			return NewPromotion(from, to, promo.Type()), nil
		}
	}
	return NoMove, fmt.Errorf("invalid move text %q: bad suffix %q", s, suffix)
}

// castleFromText builds the castle move of the side to move.
func castleFromText(pos *Position, kingSide bool) (Move, error) {
	if pos == nil {
		return NoMove, fmt.Errorf("castling text needs a position")
	}
	from := kingHome[pos.SideToMove]
	to := NewSquare(2, from.Rank())
	if kingSide {
		to = NewSquare(6, from.Rank())
	}
	return NewCastling(from, to), nil
}
