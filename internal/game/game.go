// Package game tracks a played game: the current position, the per-ply
// move history the external renderer consumes, and the outcome. The
// engine core stays untouched; this layer only drives it.
package game

import (
	"fmt"

	"github.com/Haglard/chess-sub000/internal/board"
)

// Result is the outcome of a game.
type Result int

const (
	Ongoing Result = iota
	WhiteWins
	BlackWins
	Draw
)

// String returns the result in conventional notation.
func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "1-0"
	case BlackWins:
		return "0-1"
	case Draw:
		return "1/2-1/2"
	default:
		return "*"
	}
}

// Record describes one played ply: the squares, what moved, what was
// captured, the state flags after the move, and the evaluation the engine
// reported for the resulting position.
type Record struct {
	From      board.Square `json:"from"`
	To        board.Square `json:"to"`
	Moved     board.Piece  `json:"moved"`
	Captured  board.Piece  `json:"captured"`
	Check     bool         `json:"check"`
	Checkmate bool         `json:"checkmate"`
	Draw      bool         `json:"draw"`
	Castling  bool         `json:"castling"`
	EnPassant bool         `json:"en_passant"`
	Eval      int          `json:"eval"`
}

// Notation returns the record as origin-destination text with flag
// suffixes, e.g. "e1g1 (O-O)" or "d8h4#".
func (r Record) Notation() string {
	s := r.From.String() + r.To.String()
	switch {
	case r.Checkmate:
		s += "#"
	case r.Check:
		s += "+"
	}
	if r.Castling {
		s += " (O-O)"
	}
	if r.EnPassant {
		s += " (e.p.)"
	}
	return s
}

// Game is a single played game.
type Game struct {
	pos      *board.Position
	history  []Record
	captured [2][]board.Piece // captured pieces, indexed by capturing side
	result   Result
}

// New starts a game from the standard position.
func New() *Game {
	return &Game{pos: board.NewPosition()}
}

// NewFromPosition starts a game from an arbitrary position. The game owns
// a copy; the caller keeps theirs.
func NewFromPosition(pos *board.Position) *Game {
	g := &Game{pos: pos.Copy()}
	g.refreshResult()
	return g
}

// Position returns a copy of the current position.
func (g *Game) Position() *board.Position {
	return g.pos.Copy()
}

// Snapshot returns the renderer view of the current position.
func (g *Game) Snapshot() [8][8]board.Piece {
	return g.pos.Snapshot()
}

// History returns the per-ply records so far.
func (g *Game) History() []Record {
	return g.history
}

// Captured returns the pieces the given side has captured, in capture
// order.
func (g *Game) Captured(c board.Color) []board.Piece {
	return g.captured[c]
}

// Result returns the game outcome.
func (g *Game) Result() Result {
	return g.result
}

// Over reports whether the game has ended.
func (g *Game) Over() bool {
	return g.result != Ongoing
}

// Plies returns the number of plies played.
func (g *Game) Plies() int {
	return len(g.history)
}

// Play applies a move, recording its history entry. eval is the engine's
// evaluation of the resulting position (zero is fine for human moves).
func (g *Game) Play(m board.Move, eval int) error {
	if g.result != Ongoing {
		return fmt.Errorf("game: already finished %s", g.result)
	}

	us := g.pos.SideToMove
	moved := g.pos.PieceAt(m.From())

	var captured board.Piece
	switch {
	case m.IsEnPassant():
		captured = board.NewPiece(board.Pawn, us.Other())
	default:
		captured = g.pos.PieceAt(m.To())
	}

	next := g.pos.Apply(m)
	if next == nil {
		return fmt.Errorf("game: illegal move %s", m)
	}
	g.pos = next
	g.refreshResult()

	if captured != board.NoPiece {
		g.captured[us] = append(g.captured[us], captured)
	}

	rec := Record{
		From:      m.From(),
		To:        m.To(),
		Moved:     moved,
		Captured:  captured,
		Check:     next.InCheck(),
		Checkmate: g.result == WhiteWins && us == board.White || g.result == BlackWins && us == board.Black,
		Draw:      g.result == Draw,
		Castling:  m.IsCastling(),
		EnPassant: m.IsEnPassant(),
		Eval:      eval,
	}
	g.history = append(g.history, rec)

	return nil
}

// refreshResult recomputes the outcome from the current position.
func (g *Game) refreshResult() {
	switch {
	case g.pos.IsCheckmate():
		if g.pos.SideToMove == board.White {
			g.result = BlackWins
		} else {
			g.result = WhiteWins
		}
	case g.pos.IsDraw():
		g.result = Draw
	default:
		g.result = Ongoing
	}
}
