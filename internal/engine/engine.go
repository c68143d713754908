// Package engine exposes the chess engine facade: a fixed-depth
// alpha-beta searcher over the board package, with a transposition cache
// and optional structured diagnostics.
package engine

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/Haglard/chess-sub000/internal/board"
	"github.com/Haglard/chess-sub000/internal/search"
)

// DefaultDepth is the search depth used when none is configured.
const DefaultDepth = 4

// Engine is the chess AI engine. It is not safe for concurrent use; the
// cache is mutated by the searching goroutine only.
type Engine struct {
	searcher     *search.Engine[*board.Position, board.Move]
	depth        int
	cacheBuckets int
	log          zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithDepth sets the fixed search depth.
func WithDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.depth = depth
		}
	}
}

// WithLogger installs a diagnostics sink. Logging never affects the
// search.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithCacheBuckets sets the transposition cache bucket count.
func WithCacheBuckets(buckets int) Option {
	return func(e *Engine) {
		e.cacheBuckets = buckets
	}
}

// New creates an engine.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		depth: DefaultDepth,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	searcher, err := search.New[*board.Position, board.Move](Rules{}, e.cacheBuckets)
	if err != nil {
		return nil, err
	}
	e.searcher = searcher
	return e, nil
}

// Depth returns the configured search depth.
func (e *Engine) Depth() int {
	return e.depth
}

// BestMove searches the position at the configured depth. ok=false means
// the position is terminal (no legal move exists).
func (e *Engine) BestMove(pos *board.Position) (board.Move, int, bool) {
	return e.BestMoveAtDepth(pos, e.depth)
}

// BestMoveAtDepth searches the position at an explicit depth.
func (e *Engine) BestMoveAtDepth(pos *board.Position, depth int) (board.Move, int, bool) {
	start := time.Now()
	e.searcher.ResetNodes()

	move, value, ok := e.searcher.BestMove(pos, depth)

	e.log.Debug().
		Int("depth", depth).
		Uint64("nodes", e.searcher.Nodes()).
		Int("cache_entries", e.searcher.CacheLen()).
		Dur("elapsed", time.Since(start)).
		Str("move", move.String()).
		Int("value", value).
		Bool("playable", ok).
		Msg("search finished")

	return move, value, ok
}

// Evaluate scores the position without searching.
func (e *Engine) Evaluate(pos *board.Position) int {
	return Evaluate(pos)
}

// ClearCache drops every memoized search result.
func (e *Engine) ClearCache() {
	e.searcher.ClearCache()
}

// Nodes reports the node count of the last search.
func (e *Engine) Nodes() uint64 {
	return e.searcher.Nodes()
}
