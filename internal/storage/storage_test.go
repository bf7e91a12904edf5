package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/drilldown/internal/upgrade"
)

// backendCases returns the backends under test. PostgreSQL runs only when
// DRILLDOWN_TEST_POSTGRES_DSN points at a scratch database.
func backendCases(t *testing.T) map[string]func(t *testing.T, retain int) Backend {
	t.Helper()
	cases := map[string]func(t *testing.T, retain int) Backend{
		"sqlite": func(t *testing.T, retain int) Backend {
			s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), retain)
			if err != nil {
				t.Fatalf("OpenSQLite() failed: %v", err)
			}
			return s
		},
		"json": func(t *testing.T, retain int) Backend {
			s, err := OpenJSON(filepath.Join(t.TempDir(), "test.json"), retain)
			if err != nil {
				t.Fatalf("OpenJSON() failed: %v", err)
			}
			return s
		},
	}
	if dsn := os.Getenv("DRILLDOWN_TEST_POSTGRES_DSN"); dsn != "" {
		cases["postgres"] = func(t *testing.T, retain int) Backend {
			s, err := OpenPostgres(dsn, retain)
			if err != nil {
				t.Fatalf("OpenPostgres() failed: %v", err)
			}
			for _, g := range []string{"drill", "drill_daily"} {
				if err := s.ClearScores(g); err != nil {
					t.Fatalf("ClearScores() failed: %v", err)
				}
			}
			return s
		}
	}
	return cases
}

func TestBackendProgressRoundTrip(t *testing.T) {
	for name, open := range backendCases(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t, 5)
			defer b.Close()
			profile := "test-" + name

			st, err := b.LoadProgress(profile)
			if err != nil {
				t.Fatalf("LoadProgress() on a fresh profile failed: %v", err)
			}
			if st.Money != 0 || len(st.Levels) != 0 {
				t.Errorf("fresh profile = %+v, want zero state", st)
			}

			want := upgrade.State{Money: 42, Levels: map[upgrade.Kind]int{
				upgrade.DrillSpeed: 2,
				upgrade.Magnet:     1,
			}}
			if err := b.SaveProgress(profile, want); err != nil {
				t.Fatalf("SaveProgress() failed: %v", err)
			}

			// Overwrite drops levels that are no longer present.
			want.Levels = map[upgrade.Kind]int{upgrade.DrillSpeed: 3}
			want.Money = 7
			if err := b.SaveProgress(profile, want); err != nil {
				t.Fatalf("SaveProgress() failed: %v", err)
			}

			got, err := b.LoadProgress(profile)
			if err != nil {
				t.Fatalf("LoadProgress() failed: %v", err)
			}
			if got.Money != 7 {
				t.Errorf("Money = %d, want 7", got.Money)
			}
			if len(got.Levels) != 1 || got.Levels[upgrade.DrillSpeed] != 3 {
				t.Errorf("Levels = %v, want DRILL_SPEED:3 only", got.Levels)
			}

			other, err := b.LoadProgress(profile + "-other")
			if err != nil || other.Money != 0 {
				t.Errorf("profiles should be isolated, got %+v (%v)", other, err)
			}
		})
	}
}

func TestBackendHighScoresRetained(t *testing.T) {
	for name, open := range backendCases(t) {
		t.Run(name, func(t *testing.T) {
			b := open(t, 3)
			defer b.Close()

			for _, s := range []int{40, 10, 90, 25, 60} {
				if err := b.SaveScore(ScoreEntry{GameID: "drill", Score: s, Money: s / 2, Player: "ann"}); err != nil {
					t.Fatalf("SaveScore(%d) failed: %v", s, err)
				}
			}
			if err := b.SaveScore(ScoreEntry{GameID: "drill_daily", Score: 5, RunID: "run-1"}); err != nil {
				t.Fatalf("SaveScore() failed: %v", err)
			}

			scores, err := b.HighScores("drill")
			if err != nil {
				t.Fatalf("HighScores() failed: %v", err)
			}
			want := []int{90, 60, 40}
			if len(scores) != len(want) {
				t.Fatalf("HighScores = %v, want %v", scores, want)
			}
			for i := range want {
				if scores[i] != want[i] {
					t.Errorf("HighScores[%d] = %d, want %d", i, scores[i], want[i])
				}
			}

			// Trimmed rows are gone, not just hidden.
			all, err := b.TopScores("drill", 100)
			if err != nil {
				t.Fatalf("TopScores() failed: %v", err)
			}
			if len(all) != 3 {
				t.Errorf("TopScores returned %d entries, want 3", len(all))
			}
			if all[0].Player != "ann" || all[0].Money != 45 {
				t.Errorf("top entry = %+v", all[0])
			}

			daily, err := b.TopScores("drill_daily", 10)
			if err != nil || len(daily) != 1 || daily[0].RunID != "run-1" {
				t.Errorf("daily scores = %+v (%v)", daily, err)
			}

			high, err := b.HighScore("drill")
			if err != nil || high != 90 {
				t.Errorf("HighScore = %d (%v), want 90", high, err)
			}

			if err := b.ClearScores("drill"); err != nil {
				t.Fatalf("ClearScores() failed: %v", err)
			}
			high, err = b.HighScore("drill")
			if err != nil || high != 0 {
				t.Errorf("HighScore after clear = %d (%v), want 0", high, err)
			}
			if daily, _ := b.HighScores("drill_daily"); len(daily) != 1 {
				t.Error("ClearScores removed another game's scores")
			}
		})
	}
}

func TestOpenPicksBackend(t *testing.T) {
	dir := t.TempDir()

	b, err := Open(filepath.Join(dir, "progress.json"), 0)
	if err != nil {
		t.Fatalf("Open(json) failed: %v", err)
	}
	if _, ok := b.(*JSONStore); !ok {
		t.Errorf("Open(.json) = %T, want *JSONStore", b)
	}
	b.Close()

	b, err = Open(filepath.Join(dir, "nested", "scores.db"), 0)
	if err != nil {
		t.Fatalf("Open(sqlite) failed: %v", err)
	}
	if _, ok := b.(*SQLStore); !ok {
		t.Errorf("Open(.db) = %T, want *SQLStore", b)
	}
	b.Close()

	if _, err := os.Stat(filepath.Join(dir, "nested", "scores.db")); err != nil {
		t.Errorf("database file not created: %v", err)
	}
}

func TestJSONCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := OpenJSON(path, 5)
	if err != nil {
		t.Fatalf("OpenJSON() on a corrupt file failed: %v", err)
	}
	st, err := s.LoadProgress(DefaultProfile)
	if err != nil || st.Money != 0 || len(st.Levels) != 0 {
		t.Errorf("LoadProgress = %+v (%v), want zero state", st, err)
	}
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Errorf("corrupt file not kept aside: %v", err)
	}
}

func TestJSONPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")

	s, err := OpenJSON(path, 5)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveProgress(DefaultProfile, upgrade.State{Money: 12}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveScore(ScoreEntry{GameID: "drill", Score: 33}); err != nil {
		t.Fatal(err)
	}

	s2, err := OpenJSON(path, 5)
	if err != nil {
		t.Fatal(err)
	}
	st, _ := s2.LoadProgress(DefaultProfile)
	if st.Money != 12 {
		t.Errorf("Money = %d, want 12", st.Money)
	}
	if high, _ := s2.HighScore("drill"); high != 33 {
		t.Errorf("HighScore = %d, want 33", high)
	}
}

func TestProgressStoreFeedsEconomy(t *testing.T) {
	b, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"), 5)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	specs := map[upgrade.Kind]upgrade.Spec{upgrade.MaxHP: {BaseCost: 10, Factor: 2, MaxLevel: 2}}

	econ := upgrade.New(specs, Progress(b, "alice"), nil)
	econ.AddMoney(15)
	if !econ.Buy(upgrade.MaxHP) {
		t.Fatal("Buy failed")
	}

	reloaded := upgrade.New(specs, Progress(b, "alice"), nil)
	if reloaded.Money() != 5 || reloaded.Level(upgrade.MaxHP) != 1 {
		t.Errorf("reloaded economy: money %d level %d, want 5 and 1", reloaded.Money(), reloaded.Level(upgrade.MaxHP))
	}

	fresh := upgrade.New(specs, Progress(b, ""), nil)
	if fresh.Money() != 0 {
		t.Errorf("default profile should be separate, money = %d", fresh.Money())
	}
	if Progress(b, "").Profile() != DefaultProfile {
		t.Error("empty profile should map to the default profile")
	}
}

func TestParseTime(t *testing.T) {
	if got := parseTime("2026-03-04 05:06:07"); got.Year() != 2026 || got.Second() != 7 {
		t.Errorf("parseTime(sqlite string) = %v", got)
	}
	if got := parseTime(42); !got.IsZero() {
		t.Errorf("parseTime(int) = %v, want zero", got)
	}
}
