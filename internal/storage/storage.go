// Package storage persists upgrade progress and high scores.
// Three backends share one contract: SQLite via the pure-Go modernc.org/sqlite
// driver (the default), PostgreSQL via lib/pq for shared servers, and a
// plain JSON file for portable single-user setups.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vovakirdan/drilldown/internal/upgrade"
)

// DefaultProfile is the progress profile used by local play.
const DefaultProfile = "local"

// DefaultRetain is the number of high scores kept per game.
const DefaultRetain = 5

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	RunID     string
	GameID    string
	Player    string
	Score     int
	Money     int
	CreatedAt time.Time
}

// Backend is a persistence backend for progress and scores.
type Backend interface {
	// LoadProgress returns the saved economy of a profile. A profile that
	// was never saved yields the zero state and no error.
	LoadProgress(profile string) (upgrade.State, error)
	// SaveProgress replaces the saved economy of a profile.
	SaveProgress(profile string, st upgrade.State) error

	// SaveScore inserts a score and drops everything below the retained
	// top scores of that game.
	SaveScore(e ScoreEntry) error
	// HighScores returns the retained scores of a game, best first.
	HighScores(gameID string) ([]int, error)
	// TopScores returns up to limit entries of a game, best first.
	TopScores(gameID string, limit int) ([]ScoreEntry, error)
	// HighScore returns the best score of a game, 0 if none.
	HighScore(gameID string) (int, error)
	// ClearScores deletes all scores of a game.
	ClearScores(gameID string) error

	Close() error
}

// Open picks a backend from the DSN: postgres:// and postgresql:// URLs
// open PostgreSQL, paths ending in .json open a JSON file, anything else
// is a SQLite database path. A leading ~ expands to the home directory.
func Open(dsn string, retain int) (Backend, error) {
	if retain <= 0 {
		retain = DefaultRetain
	}
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return OpenPostgres(dsn, retain)
	case strings.HasSuffix(strings.ToLower(dsn), ".json"):
		return OpenJSON(dsn, retain)
	default:
		return OpenSQLite(dsn, retain)
	}
}

// ProgressStore adapts one profile of a Backend to upgrade.Store.
type ProgressStore struct {
	backend Backend
	profile string
}

// Progress returns the upgrade.Store of a profile.
func Progress(b Backend, profile string) *ProgressStore {
	if profile == "" {
		profile = DefaultProfile
	}
	return &ProgressStore{backend: b, profile: profile}
}

// Profile returns the profile name.
func (p *ProgressStore) Profile() string { return p.profile }

// Load implements upgrade.Store.
func (p *ProgressStore) Load() (upgrade.State, error) {
	return p.backend.LoadProgress(p.profile)
}

// Save implements upgrade.Store.
func (p *ProgressStore) Save(st upgrade.State) error {
	return p.backend.SaveProgress(p.profile, st)
}

var _ upgrade.Store = (*ProgressStore)(nil)

// preparePath expands ~ and creates the parent directories of a file path.
func preparePath(path string) (string, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}
	return path, nil
}

// parseTime normalizes a scanned timestamp. SQLite may hand back strings.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
