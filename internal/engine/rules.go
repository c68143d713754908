package engine

import (
	"github.com/Haglard/chess-sub000/internal/board"
)

// Rules adapts chess positions to the game-agnostic search interface.
// It is stateless; the zero value is ready to use.
type Rules struct{}

// Moves returns the pseudo-legal candidates; Apply filters the illegal
// ones during the scan.
func (Rules) Moves(p *board.Position) []board.Move {
	return p.GeneratePseudoLegalMoves().Slice()
}

// Apply plays a move, ok=false when the position rejects it.
func (Rules) Apply(p *board.Position, m board.Move) (*board.Position, bool) {
	succ := p.Apply(m)
	return succ, succ != nil
}

// Terminal reports whether the side to move has no playable move.
func (Rules) Terminal(p *board.Position) bool {
	return p.IsTerminal()
}

// Evaluate scores the position for white.
func (Rules) Evaluate(p *board.Position) int {
	return Evaluate(p)
}

// MaximizerToMove: white maximizes, black minimizes.
func (Rules) MaximizerToMove(p *board.Position) bool {
	return p.SideToMove == board.White
}

// Hash keys the transposition cache.
func (Rules) Hash(p *board.Position) uint64 {
	return p.ZobristHash()
}

// Equal is the collision fallback for cache lookups.
func (Rules) Equal(a, b *board.Position) bool {
	return a.Equal(b)
}
