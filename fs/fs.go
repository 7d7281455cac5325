// Package fs resolves the local directories grantview writes to.
package fs

import (
	"os"
	"path/filepath"
)

const appName = "grantview"

// DefaultCacheDir returns the default cache directory for grantview.
// Uses XDG_CACHE_HOME if set, otherwise falls back to ~/.cache/grantview,
// or system temp directory if home is unavailable.
func DefaultCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}

// DefaultDataDir returns where exported evaluations are kept.
// Uses XDG_DATA_HOME if set, otherwise ~/.local/share/grantview.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultLogPath is the log file used while the terminal UI owns the screen.
func DefaultLogPath() string {
	return filepath.Join(DefaultCacheDir(), appName+".log")
}

// DefaultArchivePath is the JSONL archive used by export and view.
func DefaultArchivePath() string {
	return filepath.Join(DefaultDataDir(), "evaluations.jsonl")
}
