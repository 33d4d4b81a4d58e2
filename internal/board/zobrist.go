package board

// Zobrist keys for position identity. The keys come from a fixed seed, so
// hashes are stable across runs.
var (
	zobristPiece      [12][64]uint64 // indexed by Piece, then Square
	zobristEnPassant  [8]uint64      // one per file
	zobristCastling   [16]uint64     // one per rights combination
	zobristSideToMove uint64         // mixed in when black is to move
)

func init() {
	rng := xorshift{state: 0x98F107A2BEEF1234}
	for pc := range zobristPiece {
		for sq := range zobristPiece[pc] {
			zobristPiece[pc][sq] = rng.next()
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for cr := range zobristCastling {
		zobristCastling[cr] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// xorshift is the xorshift64* generator.
type xorshift struct {
	state uint64
}

func (x *xorshift) next() uint64 {
	x.state ^= x.state >> 12
	x.state ^= x.state << 25
	x.state ^= x.state >> 27
	return x.state * 0x2545F4914F6CDD1D
}

// Hash returns the Zobrist hash of the placement, side to move, castling
// rights and en passant file. The move clocks are not part of it, so two
// positions that repeat hash the same.
func (p *Position) Hash() uint64 {
	var h uint64
	for sq, piece := range p.Board {
		if piece != NoPiece {
			h ^= zobristPiece[piece][sq]
		}
	}
	if p.EnPassant.IsValid() {
		h ^= zobristEnPassant[p.EnPassant.File()]
	}
	h ^= zobristCastling[p.CastlingRights&AllCastling]
	if p.SideToMove == Black {
		h ^= zobristSideToMove
	}
	return h
}
