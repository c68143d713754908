// Command chessmate analyzes a chess position or plays the engine against
// itself, optionally recording finished games.
package main

import (
	"flag"
	"os"
	"runtime/pprof"

	"github.com/rs/zerolog"

	"github.com/Haglard/chess-sub000/internal/board"
	"github.com/Haglard/chess-sub000/internal/engine"
	"github.com/Haglard/chess-sub000/internal/game"
	"github.com/Haglard/chess-sub000/internal/storage"
)

var (
	fen        = flag.String("fen", board.StartFEN, "position to analyze")
	depth      = flag.Int("depth", 0, "search depth (0 = saved/default setting)")
	selfplay   = flag.Int("selfplay", 0, "play N engine-vs-engine plies instead of analyzing")
	record     = flag.Bool("record", false, "record finished self-play games")
	verbose    = flag.Bool("v", false, "debug diagnostics")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if *verbose {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	searchDepth := *depth
	var store *storage.Storage
	if *record || searchDepth == 0 {
		var err error
		store, err = storage.OpenDefault()
		if err != nil {
			log.Warn().Err(err).Msg("storage unavailable, using defaults")
		} else {
			defer store.Close()
		}
	}
	if searchDepth == 0 {
		searchDepth = engine.DefaultDepth
		if store != nil {
			if settings, err := store.LoadSettings(); err == nil {
				searchDepth = settings.SearchDepth
			}
		}
	}

	eng, err := engine.New(engine.WithDepth(searchDepth), engine.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("engine construction failed")
	}

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatal().Err(err).Str("fen", *fen).Msg("bad position")
	}
	if err := pos.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid position")
	}

	if *selfplay > 0 {
		runSelfplay(log, eng, pos, *selfplay, store)
		return
	}

	move, value, ok := eng.BestMove(pos)
	if !ok {
		log.Info().Bool("checkmate", pos.IsCheckmate()).Bool("stalemate", pos.IsStalemate()).
			Msg("no legal move")
		return
	}
	log.Info().Str("move", move.String()).Int("eval", value).Int("depth", searchDepth).
		Msg("best move")
}

func runSelfplay(log zerolog.Logger, eng *engine.Engine, pos *board.Position, plies int, store *storage.Storage) {
	g := game.NewFromPosition(pos)

	for ply := 0; ply < plies && !g.Over(); ply++ {
		cur := g.Position()
		move, value, ok := eng.BestMove(cur)
		if !ok {
			break
		}
		if err := g.Play(move, value); err != nil {
			log.Error().Err(err).Str("move", move.String()).Msg("engine played an illegal move")
			return
		}
		log.Info().Int("ply", g.Plies()).Str("move", move.String()).Int("eval", value).
			Str("side", cur.SideToMove.String()).Msg("played")
	}

	log.Info().Str("result", g.Result().String()).Int("plies", g.Plies()).Msg("game over")

	if store != nil && g.Over() {
		if err := store.RecordGame(g); err != nil {
			log.Error().Err(err).Msg("recording game failed")
		} else {
			log.Info().Msg("game recorded")
		}
	}
}
