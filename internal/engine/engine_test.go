package engine

import (
	"testing"

	"github.com/Haglard/chess-sub000/internal/board"
)

func mustParseFEN(t *testing.T, fen string) *board.Position {
	t.Helper()
	pos, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("Failed to parse FEN %q: %v", fen, err)
	}
	return pos
}

func newEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := New(opts...)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return e
}

func TestEvaluateStartingPosition(t *testing.T) {
	if got := Evaluate(board.NewPosition()); got != 0 {
		t.Errorf("Evaluate(start) = %d, want 0", got)
	}
}

func TestEvaluateMaterialBalance(t *testing.T) {
	tests := []struct {
		fen  string
		want int
	}{
		// Extra white knight.
		{"4k3/8/8/8/8/8/8/3NK3 w - - 0 1", 320},
		// Extra black rook.
		{"3rk3/8/8/8/8/8/8/4K3 w - - 0 1", -500},
		// Two white bishops carry the pair bonus.
		{"4k3/8/8/8/8/8/8/2B1KB2 w - - 0 1", 690},
		// One bishop each, no bonus for either side.
		{"2b1k3/8/8/8/8/8/8/2B1K3 w - - 0 1", 0},
	}

	for _, tc := range tests {
		pos := mustParseFEN(t, tc.fen)
		if got := Evaluate(pos); got != tc.want {
			t.Errorf("Evaluate(%q) = %d, want %d", tc.fen, got, tc.want)
		}
	}
}

func TestEvaluateCheckmate(t *testing.T) {
	// Back-rank mate delivered by white.
	pos := mustParseFEN(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if got := Evaluate(pos); got != MateScore {
		t.Errorf("Evaluate(mated black) = %d, want %d", got, MateScore)
	}

	// The mirror, delivered by black.
	pos = mustParseFEN(t, "k7/8/8/8/8/8/6PP/r6K w - - 0 1")
	if got := Evaluate(pos); got != -MateScore {
		t.Errorf("Evaluate(mated white) = %d, want %d", got, -MateScore)
	}
}

func TestEvaluateStalemate(t *testing.T) {
	pos := mustParseFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if got := Evaluate(pos); got != 0 {
		t.Errorf("Evaluate(stalemate) = %d, want 0", got)
	}
}

func TestBestMoveKingsOnly(t *testing.T) {
	e := newEngine(t)
	pos := mustParseFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")

	move, value, ok := e.BestMoveAtDepth(pos, 1)
	if !ok {
		t.Fatal("BestMove reported no playable move")
	}
	if move == board.NoMove {
		t.Error("best move is the null move")
	}
	if value != 0 {
		t.Errorf("value = %d, want 0 with bare kings", value)
	}
}

func TestBestMoveStartingPosition(t *testing.T) {
	e := newEngine(t, WithDepth(2))
	pos := board.NewPosition()

	move, _, ok := e.BestMove(pos)
	if !ok {
		t.Fatal("BestMove reported no playable move")
	}
	if !pos.GenerateLegalMoves().Contains(move) {
		t.Errorf("best move %s is not legal in the starting position", move)
	}
}

func TestBestMoveTerminalPosition(t *testing.T) {
	e := newEngine(t)
	pos := mustParseFEN(t, "R6k/6pp/8/8/8/8/8/K7 b - - 0 1")

	if _, _, ok := e.BestMoveAtDepth(pos, 2); ok {
		t.Error("BestMove on a checkmate reported a move")
	}
}

func TestBestMoveFindsMateInOne(t *testing.T) {
	// Rook to h8 is the only mate.
	e := newEngine(t)
	pos := mustParseFEN(t, "6k1/8/6K1/8/8/8/8/7R w - - 0 1")

	move, value, ok := e.BestMoveAtDepth(pos, 2)
	if !ok {
		t.Fatal("BestMove reported no playable move")
	}
	if move.String() != "h1h8" {
		t.Errorf("best move = %s, want h1h8", move)
	}
	if value != MateScore {
		t.Errorf("value = %d, want %d", value, MateScore)
	}
}

func TestBestMoveGrabsHangingQueen(t *testing.T) {
	// The black queen on d5 sits on the d1 rook's file with nothing
	// defending it.
	e := newEngine(t)
	pos := mustParseFEN(t, "4k3/8/8/3q4/8/8/8/3RK3 w - - 0 1")

	move, value, ok := e.BestMoveAtDepth(pos, 2)
	if !ok {
		t.Fatal("BestMove reported no playable move")
	}
	if move.String() != "d1d5" {
		t.Errorf("best move = %s, want d1d5", move)
	}
	if value <= 0 {
		t.Errorf("value = %d, want a winning material swing", value)
	}
}

func TestEngineOptions(t *testing.T) {
	e := newEngine(t, WithDepth(3))
	if e.Depth() != 3 {
		t.Errorf("Depth() = %d, want 3", e.Depth())
	}

	e = newEngine(t, WithDepth(0))
	if e.Depth() != DefaultDepth {
		t.Errorf("Depth() = %d, want the default %d", e.Depth(), DefaultDepth)
	}

	e = newEngine(t, WithCacheBuckets(128))
	if _, _, ok := e.BestMoveAtDepth(board.NewPosition(), 1); !ok {
		t.Error("engine with a small cache failed to search")
	}
}

func TestClearCache(t *testing.T) {
	e := newEngine(t)
	pos := board.NewPosition()

	first, _, _ := e.BestMoveAtDepth(pos, 2)
	e.ClearCache()
	second, _, _ := e.BestMoveAtDepth(pos, 2)
	if first != second {
		t.Errorf("search changed after ClearCache: %s vs %s", first, second)
	}
}
