package search

import (
	"math/bits"
	"testing"
)

// treeRules describes a complete binary game tree over integer node ids.
// The root is node 1, node n has children 2n and 2n+1, and nodes at
// leafStart and beyond are terminal with fixed values. The maximizer moves
// on even levels.
type treeRules struct {
	leafStart int
	leaves    []int
}

func (r treeRules) Moves(s int) []int {
	if r.Terminal(s) {
		return nil
	}
	return []int{0, 1}
}

func (r treeRules) Apply(s, m int) (int, bool) {
	return 2*s + m, true
}

func (r treeRules) Terminal(s int) bool {
	return s >= r.leafStart
}

func (r treeRules) Evaluate(s int) int {
	if r.Terminal(s) {
		return r.leaves[s-r.leafStart]
	}
	return 0
}

func (r treeRules) MaximizerToMove(s int) bool {
	level := bits.Len(uint(s)) - 1
	return level%2 == 0
}

func (r treeRules) Hash(s int) uint64   { return uint64(s) * 0x9E3779B97F4A7C15 }
func (r treeRules) Equal(a, b int) bool { return a == b }

// rejectRight wraps treeRules and refuses every right-child move, so the
// engine only ever sees the leftmost line.
type rejectRight struct {
	treeRules
}

func (r rejectRight) Apply(s, m int) (int, bool) {
	if m == 1 {
		return 0, false
	}
	return 2*s + m, true
}

func newTreeEngine(t *testing.T, rules Rules[int, int]) *Engine[int, int] {
	t.Helper()
	e, err := New(rules, 64)
	if err != nil {
		t.Fatalf("Failed to create engine: %v", err)
	}
	return e
}

func TestSearchMinimaxValue(t *testing.T) {
	// Max at the root, min below, max above the leaves.
	rules := treeRules{leafStart: 8, leaves: []int{3, 17, 2, 12, 15, 25, 0, 2}}
	e := newTreeEngine(t, rules)

	if got := e.Search(1, 3); got != 12 {
		t.Errorf("Search(root, 3) = %d, want 12", got)
	}
}

func TestBestMovePicksOptimalLine(t *testing.T) {
	rules := treeRules{leafStart: 8, leaves: []int{3, 17, 2, 12, 15, 25, 0, 2}}
	e := newTreeEngine(t, rules)

	move, value, ok := e.BestMove(1, 3)
	if !ok {
		t.Fatal("BestMove reported no playable move")
	}
	if move != 0 {
		t.Errorf("best move = %d, want 0 (the left subtree)", move)
	}
	if value != 12 {
		t.Errorf("best value = %d, want 12", value)
	}
}

func TestBestMoveTerminalState(t *testing.T) {
	rules := treeRules{leafStart: 8, leaves: []int{3, 17, 2, 12, 15, 25, 0, 2}}
	e := newTreeEngine(t, rules)

	if _, _, ok := e.BestMove(8, 3); ok {
		t.Error("BestMove on a terminal state reported a move")
	}
	if _, _, ok := e.BestMove(1, 0); ok {
		t.Error("BestMove at depth 0 reported a move")
	}
}

func TestAlphaBetaPrunes(t *testing.T) {
	// After the left min-subtree settles on 5, the first right leaf 4
	// drives the right subtree's bound below alpha and its second leaf is
	// never visited.
	rules := treeRules{leafStart: 4, leaves: []int{5, 6, 4, 9}}
	e := newTreeEngine(t, rules)

	if got := e.Search(1, 2); got != 5 {
		t.Errorf("Search(root, 2) = %d, want 5", got)
	}
	if got := e.Nodes(); got != 6 {
		t.Errorf("visited %d nodes, want 6 (one leaf pruned)", got)
	}
}

func TestCacheAnswersRepeatSearch(t *testing.T) {
	rules := treeRules{leafStart: 8, leaves: []int{3, 17, 2, 12, 15, 25, 0, 2}}
	e := newTreeEngine(t, rules)

	first := e.Search(1, 3)
	if e.CacheLen() == 0 {
		t.Fatal("cache is empty after a search")
	}

	e.ResetNodes()
	second := e.Search(1, 3)
	if second != first {
		t.Errorf("repeat search = %d, want %d", second, first)
	}
	if got := e.Nodes(); got != 1 {
		t.Errorf("repeat search visited %d nodes, want 1 (cache hit at the root)", got)
	}
}

func TestCacheDeeperEntrySatisfiesShallowerSearch(t *testing.T) {
	rules := treeRules{leafStart: 8, leaves: []int{3, 17, 2, 12, 15, 25, 0, 2}}

	// A fresh depth-2 search bottoms out on interior nodes, which evaluate
	// to zero.
	fresh := newTreeEngine(t, rules)
	if got := fresh.Search(1, 2); got != 0 {
		t.Fatalf("fresh Search(root, 2) = %d, want 0", got)
	}

	// With a depth-3 entry cached, the shallower search reuses it.
	e := newTreeEngine(t, rules)
	if got := e.Search(1, 3); got != 12 {
		t.Fatalf("Search(root, 3) = %d, want 12", got)
	}
	e.ResetNodes()
	if got := e.Search(1, 2); got != 12 {
		t.Errorf("Search(root, 2) after deeper search = %d, want the cached 12", got)
	}
	if got := e.Nodes(); got != 1 {
		t.Errorf("visited %d nodes, want 1", got)
	}
}

func TestClearCache(t *testing.T) {
	rules := treeRules{leafStart: 8, leaves: []int{3, 17, 2, 12, 15, 25, 0, 2}}
	e := newTreeEngine(t, rules)

	e.Search(1, 3)
	e.ClearCache()
	if e.CacheLen() != 0 {
		t.Errorf("cache has %d entries after ClearCache", e.CacheLen())
	}
	if got := e.Search(1, 3); got != 12 {
		t.Errorf("Search after ClearCache = %d, want 12", got)
	}
}

func TestRejectedMovesAreSkipped(t *testing.T) {
	rules := rejectRight{treeRules{leafStart: 8, leaves: []int{3, 17, 2, 12, 15, 25, 0, 2}}}
	e := newTreeEngine(t, rules)

	// Only the leftmost line survives, ending at the first leaf.
	if got := e.Search(1, 3); got != 3 {
		t.Errorf("Search(root, 3) = %d, want 3", got)
	}

	move, value, ok := e.BestMove(1, 3)
	if !ok {
		t.Fatal("BestMove reported no playable move")
	}
	if move != 0 || value != 3 {
		t.Errorf("BestMove = (%d, %d), want (0, 3)", move, value)
	}
}
