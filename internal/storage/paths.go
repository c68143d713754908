// Package storage persists engine settings, aggregate play statistics and
// completed game records in a BadgerDB key-value store. The engine core
// never touches disk; the CLI layer drives this package.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessmate"

// DataDir returns the platform-specific data directory for the
// application, creating it if needed.
//   - macOS: ~/Library/Application Support/chessmate/
//   - Linux: $XDG_DATA_HOME/chessmate/ or ~/.local/share/chessmate/
//   - Windows: %APPDATA%/chessmate/
func DataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}

// DatabaseDir returns the directory holding the BadgerDB files.
func DatabaseDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}

	return dbDir, nil
}
