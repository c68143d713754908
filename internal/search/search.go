// Package search implements depth-limited minimax with alpha-beta pruning
// and a transposition cache. It is game-agnostic: the engine sees states
// and moves only through the Rules interface and never depends on chess
// types.
package search

import (
	"github.com/Haglard/chess-sub000/internal/hashmap"
)

// Rules describes a two-player zero-sum game to the search engine.
// S is the state type, M the move type. States handed to Apply are never
// mutated; Apply returns a fresh successor or ok=false when the move is
// rejected (a generated move need not be playable).
type Rules[S, M any] interface {
	// Moves returns the candidate moves for the side to move.
	Moves(S) []M
	// Apply plays a move, returning the successor state. ok=false means
	// the move was rejected and no state was produced.
	Apply(S, M) (succ S, ok bool)
	// Terminal reports whether the side to move has no playable move.
	Terminal(S) bool
	// Evaluate scores a state from the maximizer's point of view.
	Evaluate(S) int
	// MaximizerToMove reports whether the side to move maximizes.
	MaximizerToMove(S) bool
	// Hash and Equal key the transposition cache. Equal is the fallback
	// for hash collisions.
	Hash(S) uint64
	Equal(S, S) bool
}

// Flag classifies a cached value against the window it was computed in.
type Flag uint8

const (
	// FlagExact marks a true minimax value.
	FlagExact Flag = iota
	// FlagLower marks a lower bound (the scan failed high).
	FlagLower
	// FlagUpper marks an upper bound (the scan failed low).
	FlagUpper
)

// Entry is a memoized search result.
type Entry struct {
	Value int
	Depth int
	Flag  Flag
}

// Window bounds for the root search. They only need to exceed any value
// Evaluate can produce.
const (
	Infinity = 1 << 30
)

// Engine performs the search. It is single-threaded; the cache is mutated
// only by the searching goroutine.
type Engine[S, M any] struct {
	rules Rules[S, M]
	cache *hashmap.Map[S, Entry]
	nodes uint64
}

// New creates a search engine over the given rules, with a transposition
// cache of the given bucket count (<=0 for the default).
func New[S, M any](rules Rules[S, M], cacheBuckets int) (*Engine[S, M], error) {
	cache, err := hashmap.New[S, Entry](cacheBuckets, rules.Hash, rules.Equal)
	if err != nil {
		return nil, err
	}
	return &Engine[S, M]{rules: rules, cache: cache}, nil
}

// Nodes returns the number of states visited since the last reset.
func (e *Engine[S, M]) Nodes() uint64 {
	return e.nodes
}

// ResetNodes clears the node counter.
func (e *Engine[S, M]) ResetNodes() {
	e.nodes = 0
}

// CacheLen returns the number of memoized entries.
func (e *Engine[S, M]) CacheLen() int {
	return e.cache.Len()
}

// ClearCache drops all memoized entries.
func (e *Engine[S, M]) ClearCache() {
	e.cache.Clear()
}

// Search returns the minimax value of the state at the given depth.
func (e *Engine[S, M]) Search(state S, depth int) int {
	return e.minimax(state, depth, -Infinity, Infinity)
}

// BestMove runs the root traversal and returns the move that produced the
// best value. ok=false means the position is terminal or no candidate was
// playable.
func (e *Engine[S, M]) BestMove(state S, depth int) (best M, value int, ok bool) {
	var zero M
	if depth <= 0 || e.rules.Terminal(state) {
		return zero, 0, false
	}

	maximizing := e.rules.MaximizerToMove(state)
	alpha, beta := -Infinity, Infinity
	if maximizing {
		value = -Infinity
	} else {
		value = Infinity
	}

	for _, m := range e.rules.Moves(state) {
		succ, applied := e.rules.Apply(state, m)
		if !applied {
			continue
		}
		score := e.minimax(succ, depth-1, alpha, beta)
		if maximizing {
			if !ok || score > value {
				best, value, ok = m, score, true
			}
			if value > alpha {
				alpha = value
			}
		} else {
			if !ok || score < value {
				best, value, ok = m, score, true
			}
			if value < beta {
				beta = value
			}
		}
		if alpha >= beta {
			break
		}
	}

	if !ok {
		return zero, 0, false
	}
	return best, value, true
}

// minimax is the recursive alpha-beta search with cache-assisted cutoffs.
func (e *Engine[S, M]) minimax(state S, depth, alpha, beta int) int {
	e.nodes++

	origAlpha, origBeta := alpha, beta

	// Cached results from equal or deeper searches can answer or tighten
	// the window.
	if entry, hit := e.cache.Lookup(state); hit && entry.Depth >= depth {
		switch entry.Flag {
		case FlagExact:
			return entry.Value
		case FlagLower:
			if entry.Value > alpha {
				alpha = entry.Value
			}
		case FlagUpper:
			if entry.Value < beta {
				beta = entry.Value
			}
		}
		if alpha >= beta {
			return entry.Value
		}
	}

	if depth == 0 || e.rules.Terminal(state) {
		value := e.rules.Evaluate(state)
		e.cache.Store(state, Entry{Value: value, Depth: depth, Flag: FlagExact})
		return value
	}

	maximizing := e.rules.MaximizerToMove(state)
	var value int
	if maximizing {
		value = -Infinity
	} else {
		value = Infinity
	}

	for _, m := range e.rules.Moves(state) {
		succ, applied := e.rules.Apply(state, m)
		if !applied {
			continue
		}
		score := e.minimax(succ, depth-1, alpha, beta)
		if maximizing {
			if score > value {
				value = score
			}
			if value > alpha {
				alpha = value
			}
		} else {
			if score < value {
				value = score
			}
			if value < beta {
				beta = value
			}
		}
		if alpha >= beta {
			break
		}
	}

	flag := FlagExact
	if value <= origAlpha {
		flag = FlagUpper
	} else if value >= origBeta {
		flag = FlagLower
	}
	e.cache.Store(state, Entry{Value: value, Depth: depth, Flag: flag})

	return value
}
