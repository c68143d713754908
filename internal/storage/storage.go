package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/Haglard/chess-sub000/internal/game"
)

// Storage keys
const (
	keySettings = "settings"
	keyStats    = "stats"
	keyGameSeq  = "game_seq"
	gameKeyPat  = "game:%08d"
)

// Settings holds the persisted engine configuration.
type Settings struct {
	SearchDepth  int       `json:"search_depth"`
	CacheBuckets int       `json:"cache_buckets"`
	LastUsed     time.Time `json:"last_used"`
}

// DefaultSettings returns the settings used before anything is saved.
func DefaultSettings() *Settings {
	return &Settings{
		SearchDepth:  4,
		CacheBuckets: 1 << 16,
	}
}

// Stats aggregates results over all recorded games.
type Stats struct {
	GamesPlayed int `json:"games_played"`
	WhiteWins   int `json:"white_wins"`
	BlackWins   int `json:"black_wins"`
	Draws       int `json:"draws"`
	TotalPlies  int `json:"total_plies"`
}

// GameRecord is one completed game: the outcome plus the full per-ply
// history log.
type GameRecord struct {
	Result   string        `json:"result"`
	Plies    int           `json:"plies"`
	Moves    []game.Record `json:"moves"`
	Finished time.Time     `json:"finished"`
}

// Storage wraps BadgerDB for persistent storage.
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the store rooted at dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Badger's own logging is noise here

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Storage{db: db}, nil
}

// OpenDefault opens the store in the platform data directory.
func OpenDefault() (*Storage, error) {
	dbDir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Close closes the database.
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSettings persists the engine settings.
func (s *Storage) SaveSettings(settings *Settings) error {
	settings.LastUsed = time.Now()

	data, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keySettings), data)
	})
}

// LoadSettings loads the engine settings, returning defaults if nothing
// was saved yet.
func (s *Storage) LoadSettings() (*Settings, error) {
	settings := DefaultSettings()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keySettings))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, settings)
		})
	})

	return settings, err
}

// LoadStats loads the aggregate statistics, empty if none recorded.
func (s *Storage) LoadStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordGame appends a finished game and folds it into the statistics.
func (s *Storage) RecordGame(g *game.Game) error {
	if !g.Over() {
		return fmt.Errorf("storage: game still in progress")
	}

	rec := GameRecord{
		Result:   g.Result().String(),
		Plies:    g.Plies(),
		Moves:    g.History(),
		Finished: time.Now(),
	}
	recData, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	stats.GamesPlayed++
	stats.TotalPlies += rec.Plies
	switch g.Result() {
	case game.WhiteWins:
		stats.WhiteWins++
	case game.BlackWins:
		stats.BlackWins++
	case game.Draw:
		stats.Draws++
	}
	statsData, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		seq := 0
		item, err := txn.Get([]byte(keyGameSeq))
		if err == nil {
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &seq)
			}); err != nil {
				return err
			}
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		seq++

		seqData, err := json.Marshal(seq)
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(keyGameSeq), seqData); err != nil {
			return err
		}
		key := fmt.Sprintf(gameKeyPat, seq)
		if err := txn.Set([]byte(key), recData); err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), statsData)
	})
}

// Games returns all recorded games in the order they finished.
func (s *Storage) Games() ([]GameRecord, error) {
	var games []GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte("game:")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec GameRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			games = append(games, rec)
		}
		return nil
	})

	return games, err
}
