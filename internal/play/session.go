// Package play runs a text-mode game between a human and the engine.
package play

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/engine"
)

var (
	// ErrIllegalMove is returned for move text that does not name a legal move.
	ErrIllegalMove = errors.New("illegal move")

	// ErrGameOver is returned when a move is requested after the game ended.
	ErrGameOver = errors.New("game is over")
)

// InvalidMoveReason represents why a move was rejected.
type InvalidMoveReason int

const (
	ReasonUnknown InvalidMoveReason = iota
	ReasonWouldLeaveKingInCheck
	ReasonBlockedByOwnPiece
	ReasonInvalidPieceMovement
	ReasonNotYourPiece
)

// String returns the message shown to the player.
func (r InvalidMoveReason) String() string {
	switch r {
	case ReasonWouldLeaveKingInCheck:
		return "king would be in check"
	case ReasonBlockedByOwnPiece:
		return "square occupied by your piece"
	case ReasonInvalidPieceMovement:
		return "invalid move for this piece"
	case ReasonNotYourPiece:
		return "no piece of yours on that square"
	default:
		return "invalid move"
	}
}

// Session is one game. The engine plays every side that is not human;
// with human set to NoColor it plays both.
type Session struct {
	position *board.Position
	engine   *engine.Engine
	human    board.Color
	out      io.Writer

	moveHistory []board.Move
	sanHistory  []string
	hashes      []uint64 // one per position reached, for repetition

	gameOver   bool
	gameResult string
}

// NewSession starts a game from pos. pos is copied.
func NewSession(pos *board.Position, eng *engine.Engine, human board.Color, out io.Writer) *Session {
	s := &Session{
		position: pos.Copy(),
		engine:   eng,
		human:    human,
		out:      out,
	}
	s.hashes = []uint64{s.position.Hash()}
	s.checkGameEnd()
	return s
}

// Position returns the current position.
func (s *Session) Position() *board.Position {
	return s.position
}

// MoveHistory returns the moves played so far.
func (s *Session) MoveHistory() []board.Move {
	return s.moveHistory
}

// SANHistory returns the moves played so far in SAN.
func (s *Session) SANHistory() []string {
	return s.sanHistory
}

// GameOver returns true if the game is over.
func (s *Session) GameOver() bool {
	return s.gameOver
}

// GameResult returns the game result string.
func (s *Session) GameResult() string {
	return s.gameResult
}

// EngineToMove reports whether the side to move is played by the engine.
func (s *Session) EngineToMove() bool {
	return s.position.SideToMove != s.human
}

// PlayHuman parses text, checks it against the legal moves and plays it.
// Move text ("Pe2-e4", "e2-e4", "0-0"), SAN ("Nf3") and UCI ("g1f3") are
// accepted. A rejected move leaves the game untouched.
func (s *Session) PlayHuman(text string) (board.Move, error) {
	if s.gameOver {
		return board.NoMove, ErrGameOver
	}

	m, err := s.parse(text)
	if err != nil {
		return board.NoMove, err
	}
	if !s.position.IsLegalMove(m) {
		return board.NoMove, fmt.Errorf("%w: %s (%s)", ErrIllegalMove, text, s.invalidMoveReason(m))
	}

	s.makeMove(m)
	return m, nil
}

// PlayEngine searches the current position and plays the engine's choice.
// It reports the move and the leaf count. NoMove is returned, without an
// error, when the side to move has no legal move.
func (s *Session) PlayEngine() (board.Move, error) {
	if s.gameOver {
		return board.NoMove, ErrGameOver
	}

	move, res := s.engine.Search(s.position)
	if move == board.NoMove {
		s.checkGameEnd()
		return board.NoMove, nil
	}

	fmt.Fprintf(s.out, "Engine plays %s (%s), score %s, %d leaves evaluated\n",
		board.MoveText(s.position, move), board.SAN(s.position, move),
		engine.ScoreToString(res.Score), s.engine.Leaves())
	if len(res.Line) > 1 {
		fmt.Fprintf(s.out, "Expected line: %s\n", strings.Join(board.SANLine(s.position, res.Moves()), " "))
	}

	s.makeMove(move)
	return move, nil
}

// parse tries move text first, then UCI coordinates, then SAN.
func (s *Session) parse(text string) (board.Move, error) {
	text = strings.TrimSpace(text)
	if m, err := board.ParseMoveText(text, s.position); err == nil {
		return s.resolve(m), nil
	}
	if len(text) == 4 || len(text) == 5 {
		if m, err := board.ParseMove(text, s.position); err == nil {
			return s.resolve(m), nil
		}
	}
	m, err := board.ParseSAN(text, s.position)
	if err != nil {
		return board.NoMove, fmt.Errorf("%w: cannot read %q", ErrIllegalMove, text)
	}
	return m, nil
}

// resolve maps from/to text onto the legal move it names: an en passant
// typed without its "e", a king's two-square step typed as a plain move, or
// a promotion without a piece, which promotes to a queen.
func (s *Session) resolve(m board.Move) board.Move {
	if s.position.IsLegalMove(m) {
		return m
	}
	var match board.Move
	found := 0
	for _, lm := range s.position.LegalMovesFrom(m.From()).Slice() {
		if lm.To() != m.To() {
			continue
		}
		if lm.IsPromotion() {
			if m.IsPromotion() || lm.Promotion() != board.Queen {
				continue
			}
		}
		match = lm
		found++
	}
	if found == 1 {
		return match
	}
	return m
}

// invalidMoveReason analyzes why m is not legal.
func (s *Session) invalidMoveReason(m board.Move) InvalidMoveReason {
	piece := s.position.PieceAt(m.From())
	if piece == board.NoPiece || piece.Color() != s.position.SideToMove {
		return ReasonNotYourPiece
	}

	// Check if destination has own piece
	dest := s.position.PieceAt(m.To())
	if dest != board.NoPiece && dest.Color() == piece.Color() && !m.IsCastling() {
		return ReasonBlockedByOwnPiece
	}

	// Generated but filtered as illegal - leaves king in check
	if s.position.PseudoLegalMovesFrom(m.From()).Contains(m) {
		return ReasonWouldLeaveKingInCheck
	}

	return ReasonInvalidPieceMovement
}

// makeMove applies a move to the game.
func (s *Session) makeMove(m board.Move) {
	if board.DebugMoveValidation {
		log.Printf("[MOVE] Before: SideToMove=%v, Move=%v (from=%v to=%v)",
			s.position.SideToMove, m, m.From(), m.To())
	}

	// Record SAN before making move
	s.sanHistory = append(s.sanHistory, board.SAN(s.position, m))

	next, _ := s.position.Apply(m)
	s.position = &next
	s.moveHistory = append(s.moveHistory, m)
	s.hashes = append(s.hashes, s.position.Hash())

	s.checkGameEnd()
}

// checkGameEnd checks if the game is over.
func (s *Session) checkGameEnd() {
	switch {
	case s.position.IsCheckmate():
		s.gameOver = true
		if s.position.SideToMove == board.White {
			s.gameResult = "Black wins by checkmate!"
		} else {
			s.gameResult = "White wins by checkmate!"
		}
	case s.position.IsStalemate():
		s.gameOver = true
		s.gameResult = "Draw by stalemate"
	case s.isThreefoldRepetition():
		s.gameOver = true
		s.gameResult = "Draw by threefold repetition"
	case s.position.IsFiftyMoveDraw():
		s.gameOver = true
		s.gameResult = "Draw by 50-move rule"
	case s.position.IsInsufficientMaterial():
		s.gameOver = true
		s.gameResult = "Draw by insufficient material"
	case s.position.SideInCheck():
		fmt.Fprintln(s.out, "Check!")
	}
}

// isThreefoldRepetition checks if the current position has occurred 3 times.
func (s *Session) isThreefoldRepetition() bool {
	if len(s.hashes) < 5 {
		return false
	}
	current := s.hashes[len(s.hashes)-1]
	count := 0
	for _, h := range s.hashes {
		if h == current {
			count++
		}
	}
	return count >= 3
}

// Run plays the game, reading the human's commands from in, until the game
// ends, the human quits or input runs out.
func (s *Session) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	s.printBoard()

	for !s.gameOver {
		if s.EngineToMove() {
			if _, err := s.PlayEngine(); err != nil {
				return err
			}
			s.printBoard()
			continue
		}

		fmt.Fprintf(s.out, "%s to move> ", s.position.SideToMove)
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		switch line {
		case "":
		case "quit", "exit":
			return nil
		case "board", "d":
			s.printBoard()
		case "fen":
			fmt.Fprintln(s.out, s.position.ToFEN())
		case "moves", "legal":
			s.printLegalMoves()
		case "history":
			fmt.Fprintln(s.out, strings.Join(s.sanHistory, " "))
		case "help":
			fmt.Fprintln(s.out, "Enter a move (Pe2-e4, e2-e4, 0-0, Nf3 or g1f3), or: board, fen, moves, history, quit")
		default:
			if _, err := s.PlayHuman(line); err != nil {
				fmt.Fprintln(s.out, err)
				continue
			}
			if !s.EngineToMove() {
				s.printBoard()
			}
		}
	}

	fmt.Fprintln(s.out, s.gameResult)
	return nil
}

func (s *Session) printBoard() {
	fmt.Fprint(s.out, s.position.String())
}

func (s *Session) printLegalMoves() {
	moves := s.position.GenerateLegalMoves()
	texts := make([]string, 0, moves.Len())
	for _, m := range moves.Slice() {
		texts = append(texts, board.MoveText(s.position, m))
	}
	fmt.Fprintln(s.out, strings.Join(texts, " "))
}
