package game

import (
	"testing"

	"github.com/Haglard/chess-sub000/internal/board"
)

func playUCI(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, s := range moves {
		m, err := board.ParseMove(s, g.Position())
		if err != nil {
			t.Fatalf("Failed to parse move %s: %v", s, err)
		}
		if err := g.Play(m, 0); err != nil {
			t.Fatalf("Failed to play %s: %v", s, err)
		}
	}
}

func TestNewGame(t *testing.T) {
	g := New()

	if g.Result() != Ongoing {
		t.Errorf("Result() = %v, want Ongoing", g.Result())
	}
	if g.Over() {
		t.Error("fresh game reports over")
	}
	if g.Plies() != 0 {
		t.Errorf("Plies() = %d, want 0", g.Plies())
	}
	if got := g.Position().ToFEN(); got != board.StartFEN {
		t.Errorf("position = %q, want the starting position", got)
	}
}

func TestPlayRecordsHistory(t *testing.T) {
	g := New()
	playUCI(t, g, "e2e4", "e7e5", "g1f3")

	if g.Plies() != 3 {
		t.Fatalf("Plies() = %d, want 3", g.Plies())
	}

	h := g.History()
	first := h[0]
	if first.From != board.E2 || first.To != board.E4 {
		t.Errorf("first record = %s, want e2 to e4", first.Notation())
	}
	if first.Moved != board.WhitePawn {
		t.Errorf("first record moved = %v, want white pawn", first.Moved)
	}
	if first.Captured != board.NoPiece {
		t.Errorf("first record captured = %v, want none", first.Captured)
	}
	if first.Check || first.Checkmate || first.Draw {
		t.Error("quiet opening move carries state flags")
	}
}

func TestPlayRejectsIllegalMove(t *testing.T) {
	g := New()

	// The king has no move in the starting position.
	if err := g.Play(board.NewMove(board.E1, board.E2), 0); err == nil {
		t.Error("illegal move accepted")
	}
	if g.Plies() != 0 {
		t.Error("rejected move left a history entry")
	}
}

func TestPlayTracksCaptures(t *testing.T) {
	g := New()
	playUCI(t, g, "e2e4", "d7d5", "e4d5", "d8d5")

	if got := g.Captured(board.White); len(got) != 1 || got[0] != board.BlackPawn {
		t.Errorf("white captures = %v, want one black pawn", got)
	}
	if got := g.Captured(board.Black); len(got) != 1 || got[0] != board.WhitePawn {
		t.Errorf("black captures = %v, want one white pawn", got)
	}

	h := g.History()
	if h[2].Captured != board.BlackPawn {
		t.Errorf("third record captured = %v, want black pawn", h[2].Captured)
	}
}

func TestFoolsMate(t *testing.T) {
	g := New()
	playUCI(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	if !g.Over() {
		t.Fatal("game not over after mate")
	}
	if g.Result() != BlackWins {
		t.Errorf("Result() = %v, want BlackWins", g.Result())
	}
	if g.Result().String() != "0-1" {
		t.Errorf("Result().String() = %q, want 0-1", g.Result())
	}

	last := g.History()[g.Plies()-1]
	if !last.Check || !last.Checkmate {
		t.Error("mating record lacks check/checkmate flags")
	}

	// No further moves once the game is decided.
	m, err := board.ParseMove("e2e4", g.Position())
	if err != nil {
		t.Fatalf("Failed to parse move: %v", err)
	}
	if err := g.Play(m, 0); err == nil {
		t.Error("move accepted after the game ended")
	}
}

func TestStalemateEndsGame(t *testing.T) {
	pos, err := board.ParseFEN("7k/8/6K1/8/8/5Q2/8/8 w - - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	g := NewFromPosition(pos)

	// Qf7 stalemates the black king in the corner.
	m, err := board.ParseMove("f3f7", g.Position())
	if err != nil {
		t.Fatalf("Failed to parse move: %v", err)
	}
	if err := g.Play(m, 0); err != nil {
		t.Fatalf("Failed to play: %v", err)
	}

	if g.Result() != Draw {
		t.Errorf("Result() = %v, want Draw", g.Result())
	}
	if got := g.History()[0]; !got.Draw || got.Checkmate {
		t.Error("stalemating record flags wrong")
	}
}

func TestCastlingRecord(t *testing.T) {
	pos, err := board.ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	if err != nil {
		t.Fatalf("Failed to parse FEN: %v", err)
	}
	g := NewFromPosition(pos)

	m, err := board.ParseMove("e1g1", g.Position())
	if err != nil {
		t.Fatalf("Failed to parse move: %v", err)
	}
	if err := g.Play(m, 0); err != nil {
		t.Fatalf("Failed to castle: %v", err)
	}

	rec := g.History()[0]
	if !rec.Castling {
		t.Error("castling record lacks the castling flag")
	}
	if g.Position().PieceAt(board.G1) != board.WhiteKing {
		t.Error("king not on g1 after castling")
	}
}

func TestPositionIsACopy(t *testing.T) {
	g := New()
	pos := g.Position()
	pos.SideToMove = board.Black

	if g.Position().SideToMove != board.White {
		t.Error("mutating the returned position changed the game")
	}
}

func TestSnapshot(t *testing.T) {
	g := New()
	snap := g.Snapshot()

	if snap[0][4] != board.WhiteKing {
		t.Errorf("snapshot[0][4] = %v, want white king", snap[0][4])
	}
	if snap[7][4] != board.BlackKing {
		t.Errorf("snapshot[7][4] = %v, want black king", snap[7][4])
	}
	if snap[3][3] != board.NoPiece {
		t.Errorf("snapshot[3][3] = %v, want empty", snap[3][3])
	}
}
