// Command perft counts legal move-tree leaves for a position, the
// standard way to validate move generation. Root moves are fanned out
// over a worker pool.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Haglard/chess-sub000/internal/board"
)

var (
	fen   = flag.String("fen", board.StartFEN, "position to count from")
	depth = flag.Int("depth", 5, "tree depth")
	jobs  = flag.Int("jobs", runtime.NumCPU(), "concurrent root-move workers")
	split = flag.Bool("divide", false, "print per-root-move counts")
)

func main() {
	flag.Parse()

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad position: %v\n", err)
		os.Exit(1)
	}

	start := time.Now()
	total := parallelPerft(pos, *depth, *jobs, *split)
	elapsed := time.Since(start)

	fmt.Printf("perft(%d) = %d in %v (%.0f leaves/s)\n",
		*depth, total, elapsed, float64(total)/elapsed.Seconds())
}

// parallelPerft splits the root moves across an errgroup-bounded pool.
// Each worker owns its subtree's positions outright, so no locking is
// needed beyond the shared counter.
func parallelPerft(pos *board.Position, depth, jobs int, divide bool) int64 {
	if depth <= 0 {
		return 1
	}

	moves := pos.GenerateLegalMoves()
	if depth == 1 && !divide {
		return int64(moves.Len())
	}

	var total atomic.Int64
	var g errgroup.Group
	g.SetLimit(jobs)

	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		g.Go(func() error {
			succ := pos.Apply(m)
			if succ == nil {
				return nil
			}
			n := perft(succ, depth-1)
			total.Add(n)
			if divide {
				fmt.Printf("%s: %d\n", m, n)
			}
			return nil
		})
	}

	// Workers never return errors; Wait is just the join point.
	_ = g.Wait()

	return total.Load()
}

func perft(pos *board.Position, depth int) int64 {
	if depth == 0 {
		return 1
	}

	moves := pos.GeneratePseudoLegalMoves()
	var nodes int64
	for i := 0; i < moves.Len(); i++ {
		succ := pos.Apply(moves.Get(i))
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
