package engine

import (
	"github.com/Haglard/chess-sub000/internal/board"
)

// MateScore is the terminal evaluation magnitude. It is far above any
// reachable material sum (total material on a legal board stays under
// 11,000 centipawns), so a mate can never be mistaken for a material
// swing.
const MateScore = 1_000_000

// Evaluate scores a position from white's point of view.
//
// Terminal positions: +MateScore when black's king is in check (white
// delivered mate), -MateScore when white's is, zero for stalemate.
// Otherwise the score is the signed material balance with the
// bishop-pair bonus for either side.
func Evaluate(p *board.Position) int {
	if p.IsTerminal() {
		if p.IsSquareAttacked(p.KingSquare(board.Black), board.White) {
			return MateScore
		}
		if p.IsSquareAttacked(p.KingSquare(board.White), board.Black) {
			return -MateScore
		}
		return 0
	}

	return p.Material()
}
