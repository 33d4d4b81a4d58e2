package board

import (
	"fmt"
	"strings"
)

// SAN formats m in Standard Algebraic Notation ("Nf3", "exd5", "e8=Q+",
// "O-O"). m must be legal in pos.
func SAN(pos *Position, m Move) string {
	if m == NoMove {
		return "-"
	}
	piece := pos.PieceAt(m.From())
	if piece == NoPiece {
		return m.String()
	}
	return sanBody(pos, m, piece, sanDisambiguation(pos, m, piece)) + checkSuffix(pos, m)
}

// SANLine formats a sequence of moves played from pos.
func SANLine(pos *Position, moves []Move) []string {
	out := make([]string, 0, len(moves))
	p := *pos
	for _, m := range moves {
		out = append(out, SAN(&p, m))
		p, _ = p.Apply(m)
	}
	return out
}

// ParseSAN finds the legal move written as s. Check marks, annotation marks,
// the capture "x" and the promotion "=" are optional, castling may use
// zeros, and a piece move may carry more disambiguation than it needs.
func ParseSAN(s string, pos *Position) (Move, error) {
	want := normalizeSAN(s)
	if want == "" {
		return NoMove, fmt.Errorf("invalid SAN: %q", s)
	}

	found := NoMove
	for _, m := range pos.GenerateLegalMoves().Slice() {
		if !sanMatches(pos, m, want) {
			continue
		}
		if found != NoMove {
			return NoMove, fmt.Errorf("ambiguous SAN %q", s)
		}
		found = m
	}
	if found == NoMove {
		return NoMove, fmt.Errorf("no legal move matches SAN %q", s)
	}
	return found, nil
}

// sanBody is the SAN text without the check suffix.
func sanBody(pos *Position, m Move, piece Piece, disambiguation string) string {
	switch m.Kind() {
	case CastleKingSide:
		return "O-O"
	case CastleQueenSide:
		return "O-O-O"
	}

	var sb strings.Builder
	if piece.Type() == Pawn {
		if m.IsCapture(pos) {
			sb.WriteString(m.From().String()[:1])
			sb.WriteByte('x')
		}
	} else {
		sb.WriteString(pieceLetter(piece.Type()))
		sb.WriteString(disambiguation)
		if m.IsCapture(pos) {
			sb.WriteByte('x')
		}
	}
	sb.WriteString(m.To().String())
	if m.IsPromotion() {
		sb.WriteByte('=')
		sb.WriteString(pieceLetter(m.Promotion()))
	}
	return sb.String()
}

// sanDisambiguation names as little of the origin as separates it from the
// other pieces of the same kind that can also reach the destination.
func sanDisambiguation(pos *Position, m Move, piece Piece) string {
	if piece.Type() == Pawn || piece.Type() == King {
		return ""
	}
	from, to := m.From(), m.To()
	rivals, sameFile, sameRank := 0, false, false
	for i, other := range pos.Board {
		sq := Square(i)
		if other != piece || sq == from || !reaches(pos, sq, to) {
			continue
		}
		rivals++
		sameFile = sameFile || sq.File() == from.File()
		sameRank = sameRank || sq.Rank() == from.Rank()
	}
	name := from.String()
	switch {
	case rivals == 0:
		return ""
	case !sameFile:
		return name[:1]
	case !sameRank:
		return name[1:]
	}
	return name
}

// reaches reports whether the piece on from has a legal move to to.
func reaches(pos *Position, from, to Square) bool {
	for _, m := range pos.LegalMovesFrom(from).Slice() {
		if m.To() == to {
			return true
		}
	}
	return false
}

// checkSuffix is "#" when m mates, "+" when it checks, and empty otherwise.
func checkSuffix(pos *Position, m Move) string {
	next, _ := pos.Apply(m)
	switch {
	case !next.SideInCheck():
		return ""
	case next.HasLegalMoves():
		return "+"
	}
	return "#"
}

// sanMatches compares m against normalized input, trying each amount of
// disambiguation a writer might have used.
func sanMatches(pos *Position, m Move, want string) bool {
	piece := pos.PieceAt(m.From())
	name := m.From().String()
	for _, d := range [4]string{"", name[:1], name[1:], name} {
		if normalizeSAN(sanBody(pos, m, piece, d)) == want {
			return true
		}
	}
	return false
}

// normalizeSAN strips the optional marks so equivalent spellings compare
// equal.
func normalizeSAN(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")
	switch s {
	case "0-0":
		return "O-O"
	case "0-0-0":
		return "O-O-O"
	}
	return strings.NewReplacer("x", "", "=", "").Replace(s)
}

// pieceLetter is the upper-case SAN letter of a piece kind.
func pieceLetter(pt PieceType) string {
	return NewPiece(pt, White).String()
}
