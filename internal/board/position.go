package board

import "fmt"

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr == NoCastling {
		return "-"
	}
	s := ""
	if cr&WhiteKingSideCastle != 0 {
		s += "K"
	}
	if cr&WhiteQueenSideCastle != 0 {
		s += "Q"
	}
	if cr&BlackKingSideCastle != 0 {
		s += "k"
	}
	if cr&BlackQueenSideCastle != 0 {
		s += "q"
	}
	return s
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	if c == White {
		if kingSide {
			return cr&WhiteKingSideCastle != 0
		}
		return cr&WhiteQueenSideCastle != 0
	}
	if kingSide {
		return cr&BlackKingSideCastle != 0
	}
	return cr&BlackQueenSideCastle != 0
}

// Position represents a complete chess position. Positions are owned as
// values: Apply never mutates the receiver, it hands back a fresh copy.
type Position struct {
	// Piece bitboards: [Color][PieceType]. At most one bit per square is
	// set across all twelve masks.
	Pieces [2][6]Bitboard

	// Occupancy views, derived once per state and shared by all
	// per-piece generators.
	Occupied    [2]Bitboard // All pieces of each color
	AllOccupied Bitboard    // All pieces on the board

	// Game state
	SideToMove     Color
	CastlingRights CastlingRights
	EnPassant      Square // Target square for en passant, NoSquare if none
	HalfMoveClock  int    // Plies since last pawn move or capture (50-move rule)
	FullMoveNumber int    // Full move counter, starts at 1
}

// NewPosition creates the standard starting position.
func NewPosition() *Position {
	pos, err := ParseFEN(StartFEN)
	if err != nil {
		panic("board: start position unparseable: " + err.Error())
	}
	return pos
}

// Copy creates a deep, independently owned copy of the position.
func (p *Position) Copy() *Position {
	newPos := *p
	return &newPos
}

// Equal reports structural equality: all twelve piece bitboards plus every
// auxiliary field. Used as the collision fallback for hash lookups.
func (p *Position) Equal(o *Position) bool {
	if o == nil {
		return false
	}
	return p.Pieces == o.Pieces &&
		p.SideToMove == o.SideToMove &&
		p.CastlingRights == o.CastlingRights &&
		p.EnPassant == o.EnPassant &&
		p.HalfMoveClock == o.HalfMoveClock &&
		p.FullMoveNumber == o.FullMoveNumber
}

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p *Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)

	if p.AllOccupied&bb == 0 {
		return NoPiece
	}

	var c Color
	if p.Occupied[White]&bb != 0 {
		c = White
	} else {
		c = Black
	}

	for pt := Pawn; pt <= King; pt++ {
		if p.Pieces[c][pt]&bb != 0 {
			return NewPiece(pt, c)
		}
	}

	return NoPiece
}

// IsEmpty returns true if the square is empty.
func (p *Position) IsEmpty(sq Square) bool {
	return p.AllOccupied&SquareBB(sq) == 0
}

// KingSquare returns the square of the given side's king. A missing king
// violates the representation invariant and is a programmer error.
func (p *Position) KingSquare(c Color) Square {
	sq := p.Pieces[c][King].LSB()
	if sq == NoSquare {
		panic(fmt.Sprintf("board: %v king not found", c))
	}
	return sq
}

// Snapshot returns a read-only 8x8 view of the piece layout, indexed as
// [rank][file]. This is the interface consumed by the external renderer.
func (p *Position) Snapshot() [8][8]Piece {
	var grid [8][8]Piece
	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			grid[rank][file] = p.PieceAt(NewSquare(file, rank))
		}
	}
	return grid
}

// setPiece places a piece on a square.
func (p *Position) setPiece(piece Piece, sq Square) {
	if piece == NoPiece {
		return
	}
	c := piece.Color()
	pt := piece.Type()
	bb := SquareBB(sq)

	p.Pieces[c][pt] |= bb
	p.Occupied[c] |= bb
	p.AllOccupied |= bb
}

// removePiece removes a piece from a square, returning what was there.
func (p *Position) removePiece(sq Square) Piece {
	piece := p.PieceAt(sq)
	if piece == NoPiece {
		return NoPiece
	}

	c := piece.Color()
	pt := piece.Type()
	bb := SquareBB(sq)

	p.Pieces[c][pt] &^= bb
	p.Occupied[c] &^= bb
	p.AllOccupied &^= bb

	return piece
}

// movePiece moves a piece from one square to another.
func (p *Position) movePiece(from, to Square) {
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return
	}

	c := piece.Color()
	pt := piece.Type()
	moveBB := SquareBB(from) | SquareBB(to)

	p.Pieces[c][pt] ^= moveBB
	p.Occupied[c] ^= moveBB
	p.AllOccupied ^= moveBB
}

// updateOccupied recalculates occupancy bitboards from piece bitboards.
func (p *Position) updateOccupied() {
	p.Occupied[White] = Empty
	p.Occupied[Black] = Empty

	for pt := Pawn; pt <= King; pt++ {
		p.Occupied[White] |= p.Pieces[White][pt]
		p.Occupied[Black] |= p.Pieces[Black][pt]
	}

	p.AllOccupied = p.Occupied[White] | p.Occupied[Black]
}

// Material returns the material balance in centipawns (positive favors
// white), including the bishop-pair bonus for either side.
func (p *Position) Material() int {
	score := 0
	for pt := Pawn; pt < King; pt++ {
		score += p.Pieces[White][pt].PopCount() * PieceValue[pt]
		score -= p.Pieces[Black][pt].PopCount() * PieceValue[pt]
	}
	if p.Pieces[White][Bishop].PopCount() >= 2 {
		score += BishopPairBonus
	}
	if p.Pieces[Black][Bishop].PopCount() >= 2 {
		score -= BishopPairBonus
	}
	return score
}

// BishopPairBonus is the evaluation bonus for a side holding both bishops.
const BishopPairBonus = 30

// Validate checks the representation invariants of the position.
func (p *Position) Validate() error {
	if p.Pieces[White][King].PopCount() != 1 {
		return fmt.Errorf("white must have exactly one king")
	}
	if p.Pieces[Black][King].PopCount() != 1 {
		return fmt.Errorf("black must have exactly one king")
	}

	if (p.Pieces[White][Pawn]|p.Pieces[Black][Pawn])&(Rank1|Rank8) != 0 {
		return fmt.Errorf("pawns cannot be on rank 1 or 8")
	}

	var all Bitboard
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			if all&p.Pieces[c][pt] != 0 {
				return fmt.Errorf("two pieces share a square")
			}
			all |= p.Pieces[c][pt]
		}
	}

	return nil
}

// String returns a visual representation of the position.
func (p *Position) String() string {
	s := "\n"
	for rank := 7; rank >= 0; rank-- {
		s += fmt.Sprintf("%d  ", rank+1)
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == NoPiece {
				s += ". "
			} else {
				s += piece.String() + " "
			}
		}
		s += "\n"
	}
	s += "\n   a b c d e f g h\n\n"
	s += fmt.Sprintf("Side to move: %s\n", p.SideToMove)
	s += fmt.Sprintf("Castling: %s\n", p.CastlingRights)
	s += fmt.Sprintf("En passant: %s\n", p.EnPassant)
	s += fmt.Sprintf("Half-move clock: %d\n", p.HalfMoveClock)
	s += fmt.Sprintf("Full move: %d\n", p.FullMoveNumber)
	return s
}
