package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/drilldown/internal/upgrade"
)

// JSONStore is a Backend kept in a single JSON file. The whole document is
// rewritten on every save.
type JSONStore struct {
	path   string
	retain int

	mu   sync.Mutex
	data jsonData
}

type jsonData struct {
	Profiles map[string]jsonProgress `json:"profiles"`
	Scores   []jsonScore             `json:"scores"`
	NextID   int64                   `json:"next_id"`
}

type jsonProgress struct {
	Money  int            `json:"money"`
	Levels map[string]int `json:"levels"`
}

type jsonScore struct {
	ID        int64     `json:"id"`
	RunID     string    `json:"run_id"`
	GameID    string    `json:"game_id"`
	Player    string    `json:"player"`
	Score     int       `json:"score"`
	Money     int       `json:"money"`
	CreatedAt time.Time `json:"created_at"`
}

// OpenJSON opens the JSON file at path, creating it if missing. A file that
// cannot be decoded is moved aside to path+".corrupt" and the store starts
// empty.
func OpenJSON(path string, retain int) (*JSONStore, error) {
	path, err := preparePath(path)
	if err != nil {
		return nil, err
	}
	if retain <= 0 {
		retain = DefaultRetain
	}

	s := &JSONStore{path: path, retain: retain, data: emptyJSONData()}

	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := s.flush(); err != nil {
			return nil, err
		}
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("storage: cannot read %s: %w", path, err)
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		if err := os.Rename(path, path+".corrupt"); err != nil {
			return nil, fmt.Errorf("storage: cannot move corrupt file aside: %w", err)
		}
		s.data = emptyJSONData()
		if err := s.flush(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if s.data.Profiles == nil {
		s.data.Profiles = make(map[string]jsonProgress)
	}
	return s, nil
}

func emptyJSONData() jsonData {
	return jsonData{Profiles: make(map[string]jsonProgress)}
}

// flush writes the document through a temp file so a crash never leaves
// a half-written file. Must be called with mu held or before s is shared.
func (s *JSONStore) flush() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: cannot encode %s: %w", s.path, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("storage: cannot replace %s: %w", s.path, err)
	}
	return nil
}

// Close implements Backend. Every save is already on disk.
func (s *JSONStore) Close() error { return nil }

// LoadProgress implements Backend.
func (s *JSONStore) LoadProgress(profile string) (upgrade.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := upgrade.State{Levels: make(map[upgrade.Kind]int)}
	p, ok := s.data.Profiles[profile]
	if !ok {
		return st, nil
	}
	st.Money = p.Money
	for k, v := range p.Levels {
		st.Levels[upgrade.Kind(k)] = v
	}
	return st, nil
}

// SaveProgress implements Backend.
func (s *JSONStore) SaveProgress(profile string, st upgrade.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := jsonProgress{Money: st.Money, Levels: make(map[string]int, len(st.Levels))}
	for k, v := range st.Levels {
		if v > 0 {
			p.Levels[string(k)] = v
		}
	}
	s.data.Profiles[profile] = p
	return s.flush()
}

// SaveScore implements Backend.
func (s *JSONStore) SaveScore(e ScoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.NextID++
	s.data.Scores = append(s.data.Scores, jsonScore{
		ID:        s.data.NextID,
		RunID:     e.RunID,
		GameID:    e.GameID,
		Player:    e.Player,
		Score:     e.Score,
		Money:     e.Money,
		CreatedAt: time.Now().UTC(),
	})

	game := s.sorted(e.GameID)
	keep := make(map[int64]bool, s.retain)
	for i := 0; i < len(game) && i < s.retain; i++ {
		keep[game[i].ID] = true
	}
	kept := s.data.Scores[:0]
	for _, sc := range s.data.Scores {
		if sc.GameID != e.GameID || keep[sc.ID] {
			kept = append(kept, sc)
		}
	}
	s.data.Scores = kept

	return s.flush()
}

// sorted returns the scores of a game, best first, oldest first on ties.
// Must be called with mu held.
func (s *JSONStore) sorted(gameID string) []jsonScore {
	var out []jsonScore
	for _, sc := range s.data.Scores {
		if sc.GameID == gameID {
			out = append(out, sc)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// HighScores implements Backend.
func (s *JSONStore) HighScores(gameID string) ([]int, error) {
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

// TopScores implements Backend.
func (s *JSONStore) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.sorted(gameID)
	if len(game) > limit {
		game = game[:limit]
	}
	entries := make([]ScoreEntry, len(game))
	for i, sc := range game {
		entries[i] = ScoreEntry{
			ID:        sc.ID,
			RunID:     sc.RunID,
			GameID:    sc.GameID,
			Player:    sc.Player,
			Score:     sc.Score,
			Money:     sc.Money,
			CreatedAt: sc.CreatedAt,
		}
	}
	return entries, nil
}

// HighScore implements Backend.
func (s *JSONStore) HighScore(gameID string) (int, error) {
	top, err := s.TopScores(gameID, 1)
	if err != nil || len(top) == 0 {
		return 0, err
	}
	return top[0].Score, nil
}

// ClearScores implements Backend.
func (s *JSONStore) ClearScores(gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.data.Scores[:0]
	for _, sc := range s.data.Scores {
		if sc.GameID != gameID {
			kept = append(kept, sc)
		}
	}
	s.data.Scores = kept
	return s.flush()
}

var _ Backend = (*JSONStore)(nil)
