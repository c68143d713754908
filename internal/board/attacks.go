package board

// Pre-computed attack tables for non-sliding pieces.
var (
	knightAttacks [64]Bitboard
	kingAttacks   [64]Bitboard
	pawnAttacks   [2][64]Bitboard // [Color][Square]
)

func init() {
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		// Knight moves: 2+1 or 1+2 in any direction
		attacks := Empty

		// Up/down 2, left/right 1
		attacks |= (bb << 17) & NotFileA // NNE
		attacks |= (bb << 15) & NotFileH // NNW
		attacks |= (bb >> 17) & NotFileH // SSW
		attacks |= (bb >> 15) & NotFileA // SSE

		// Up/down 1, left/right 2
		attacks |= (bb << 10) & NotFileAB // ENE
		attacks |= (bb << 6) & NotFileGH  // WNW
		attacks |= (bb >> 10) & NotFileGH // WSW
		attacks |= (bb >> 6) & NotFileAB  // ESE

		knightAttacks[sq] = attacks
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		attacks := bb.North() | bb.South()
		attacks |= bb.East() | bb.West()
		attacks |= bb.NorthEast() | bb.NorthWest()
		attacks |= bb.SouthEast() | bb.SouthWest()

		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()
	}
}

// Ray directions as (file, rank) deltas. Stepping by file and rank keeps
// a ray from wrapping around the board edge.
var (
	bishopDirections = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	rookDirections   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
)

// rayAttacks walks from sq in the given direction, collecting squares up to
// and including the first occupied one.
func rayAttacks(sq Square, occupied Bitboard, df, dr int) Bitboard {
	attacks := Empty
	f, r := sq.File()+df, sq.Rank()+dr
	for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
		s := NewSquare(f, r)
		attacks |= SquareBB(s)
		if occupied.IsSet(s) {
			break
		}
		f += df
		r += dr
	}
	return attacks
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the pawn capture bitboard for a square and color.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// BishopAttacks returns the bishop attack bitboard for a square with the
// given occupancy, from the four diagonal rays.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	attacks := Empty
	for _, d := range bishopDirections {
		attacks |= rayAttacks(sq, occupied, d[0], d[1])
	}
	return attacks
}

// RookAttacks returns the rook attack bitboard for a square with the given
// occupancy, from the four orthogonal rays.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	attacks := Empty
	for _, d := range rookDirections {
		attacks |= rayAttacks(sq, occupied, d[0], d[1])
	}
	return attacks
}

// QueenAttacks returns the queen attack bitboard for a square with the
// given occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}

// AttackersByColor returns a bitboard of pieces of the given color
// attacking a square, given an occupancy view.
func (p *Position) AttackersByColor(sq Square, c Color, occupied Bitboard) Bitboard {
	enemy := c.Other()
	return (pawnAttacks[enemy][sq] & p.Pieces[c][Pawn]) |
		(knightAttacks[sq] & p.Pieces[c][Knight]) |
		(kingAttacks[sq] & p.Pieces[c][King]) |
		(BishopAttacks(sq, occupied) & (p.Pieces[c][Bishop] | p.Pieces[c][Queen])) |
		(RookAttacks(sq, occupied) & (p.Pieces[c][Rook] | p.Pieces[c][Queen]))
}

// IsSquareAttacked returns true if the square is attacked by the given color.
func (p *Position) IsSquareAttacked(sq Square, byColor Color) bool {
	return p.AttackersByColor(sq, byColor, p.AllOccupied) != 0
}

// InCheck returns true if the side to move is in check.
func (p *Position) InCheck() bool {
	return p.IsSquareAttacked(p.KingSquare(p.SideToMove), p.SideToMove.Other())
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
