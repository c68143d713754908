package board

import "sync"

// Zobrist hash keys for position hashing. The table is generated from a
// fixed-seed PRNG on first use and is read-only afterwards, so concurrent
// hashing is safe once initialized.
var (
	zobristOnce       sync.Once
	zobristPiece      [2][6][64]uint64 // [Color][PieceType][Square]
	zobristEnPassant  [64]uint64       // One per target square
	zobristCastling   [16]uint64       // All 16 castling-rights combinations
	zobristSideToMove uint64           // XOR when black to move
)

// xorshift64* with a fixed seed, for reproducible keys.
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x9E3779B97F4A7C15)

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for sq := A1; sq <= H8; sq++ {
				zobristPiece[c][pt][sq] = rng.next()
			}
		}
	}

	for sq := A1; sq <= H8; sq++ {
		zobristEnPassant[sq] = rng.next()
	}

	for i := 0; i < 16; i++ {
		zobristCastling[i] = rng.next()
	}

	zobristSideToMove = rng.next()
}

func ensureZobrist() {
	zobristOnce.Do(initZobrist)
}

// ZobristHash computes the Zobrist hash of the position from scratch.
// It is a pure function of the state content: structurally equal
// positions always hash identically.
func (p *Position) ZobristHash() uint64 {
	ensureZobrist()

	var hash uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			bb := p.Pieces[c][pt]
			for bb != 0 {
				sq := bb.PopLSB()
				hash ^= zobristPiece[c][pt][sq]
			}
		}
	}

	hash ^= zobristCastling[p.CastlingRights]

	if p.EnPassant != NoSquare {
		hash ^= zobristEnPassant[p.EnPassant]
	}

	if p.SideToMove == Black {
		hash ^= zobristSideToMove
	}

	return hash
}
