package storage

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/drilldown/internal/upgrade"
)

type dialect int

const (
	dialectSQLite dialect = iota
	dialectPostgres
)

// SQLStore is a Backend on database/sql, shared by SQLite and PostgreSQL.
// Queries are written with ? placeholders and rebound per dialect.
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	retain  int
}

// OpenSQLite creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string, retain int) (*SQLStore, error) {
	dbPath, err := preparePath(dbPath)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	return newSQLStore(db, dialectSQLite, retain)
}

func newSQLStore(db *sql.DB, d dialect, retain int) (*SQLStore, error) {
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	if retain <= 0 {
		retain = DefaultRetain
	}
	store := &SQLStore{db: db, dialect: d, retain: retain}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *SQLStore) migrate() error {
	idCol := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	tsType := "DATETIME"
	if s.dialect == dialectPostgres {
		idCol = "id BIGSERIAL PRIMARY KEY"
		tsType = "TIMESTAMPTZ"
	}

	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			profile TEXT PRIMARY KEY,
			money INTEGER NOT NULL DEFAULT 0,
			updated_at ` + tsType + ` DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS upgrade_levels (
			profile TEXT NOT NULL,
			kind TEXT NOT NULL,
			level INTEGER NOT NULL,
			PRIMARY KEY (profile, kind)
		);

		CREATE TABLE IF NOT EXISTS scores (
			` + idCol + `,
			run_id TEXT NOT NULL DEFAULT '',
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			money INTEGER NOT NULL DEFAULT 0,
			created_at ` + tsType + ` DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != dialectPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadProgress implements Backend.
func (s *SQLStore) LoadProgress(profile string) (upgrade.State, error) {
	st := upgrade.State{Levels: make(map[upgrade.Kind]int)}

	err := s.db.QueryRow(
		s.rebind("SELECT money FROM progress WHERE profile = ?"),
		profile,
	).Scan(&st.Money)
	if err == sql.ErrNoRows {
		return st, nil
	}
	if err != nil {
		return st, fmt.Errorf("storage: cannot load progress: %w", err)
	}

	rows, err := s.db.Query(
		s.rebind("SELECT kind, level FROM upgrade_levels WHERE profile = ?"),
		profile,
	)
	if err != nil {
		return st, fmt.Errorf("storage: cannot load upgrade levels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind string
		var level int
		if err := rows.Scan(&kind, &level); err != nil {
			return st, fmt.Errorf("storage: cannot scan upgrade level: %w", err)
		}
		st.Levels[upgrade.Kind(kind)] = level
	}
	if err := rows.Err(); err != nil {
		return st, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return st, nil
}

// SaveProgress implements Backend.
func (s *SQLStore) SaveProgress(profile string, st upgrade.State) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.Exec(
		s.rebind(`INSERT INTO progress (profile, money, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (profile) DO UPDATE SET money = excluded.money, updated_at = CURRENT_TIMESTAMP`),
		profile, st.Money,
	); err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}

	if _, err := tx.Exec(s.rebind("DELETE FROM upgrade_levels WHERE profile = ?"), profile); err != nil {
		return fmt.Errorf("storage: cannot reset upgrade levels: %w", err)
	}
	for kind, level := range st.Levels {
		if level <= 0 {
			continue
		}
		if _, err := tx.Exec(
			s.rebind("INSERT INTO upgrade_levels (profile, kind, level) VALUES (?, ?, ?)"),
			profile, string(kind), level,
		); err != nil {
			return fmt.Errorf("storage: cannot save upgrade level: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit progress: %w", err)
	}
	return nil
}

// SaveScore implements Backend.
func (s *SQLStore) SaveScore(e ScoreEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	if _, err := tx.Exec(
		s.rebind("INSERT INTO scores (run_id, game_id, player, score, money) VALUES (?, ?, ?, ?, ?)"),
		e.RunID, e.GameID, e.Player, e.Score, e.Money,
	); err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}

	if _, err := tx.Exec(
		s.rebind(`DELETE FROM scores WHERE game_id = ? AND id NOT IN (
			SELECT id FROM scores WHERE game_id = ? ORDER BY score DESC, id ASC LIMIT ?
		)`),
		e.GameID, e.GameID, s.retain,
	); err != nil {
		return fmt.Errorf("storage: cannot trim scores: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit score: %w", err)
	}
	return nil
}

// HighScores implements Backend.
func (s *SQLStore) HighScores(gameID string) ([]int, error) {
	entries, err := s.TopScores(gameID, s.retain)
	if err != nil {
		return nil, err
	}
	scores := make([]int, len(entries))
	for i, e := range entries {
		scores[i] = e.Score
	}
	return scores, nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *SQLStore) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		s.rebind(`SELECT id, run_id, game_id, player, score, money, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`),
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.GameID, &e.Player, &e.Score, &e.Money, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *SQLStore) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		s.rebind("SELECT MAX(score) FROM scores WHERE game_id = ?"),
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *SQLStore) ClearScores(gameID string) error {
	_, err := s.db.Exec(s.rebind("DELETE FROM scores WHERE game_id = ?"), gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

var _ Backend = (*SQLStore)(nil)
