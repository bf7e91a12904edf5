package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/drilldown/internal/core"
	"github.com/vovakirdan/drilldown/internal/games/drill"
	"github.com/vovakirdan/drilldown/internal/storage"
)

// fakeGame ends after endAt steps with a fixed result.
type fakeGame struct {
	endAt     int
	steps     int
	resets    int
	seeds     []int64
	state     core.GameState
	high      []int
	lastFrame core.InputFrame
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.seeds = append(g.seeds, cfg.Seed)
	g.steps = 0
	g.state = core.GameState{}
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastFrame = in.Clone()
	if g.steps >= g.endAt {
		g.state = core.GameState{Score: 42, Currency: 5, GameOver: true}
	}
	return core.StepResult{State: g.state}
}

func (g *fakeGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "fake shaft") }
func (g *fakeGame) State() core.GameState   { return g.state }
func (g *fakeGame) SetHighScores(s []int)   { g.high = append([]int(nil), s...) }

func (g *fakeGame) Result() (drill.RunResult, bool) {
	if !g.state.GameOver {
		return drill.RunResult{}, false
	}
	return drill.RunResult{ID: "run-1", GameID: "fake", Score: 42, Money: 5, Bonus: 4}, true
}

func openTestBackend(t *testing.T) storage.Backend {
	t.Helper()
	b, err := storage.OpenJSON(filepath.Join(t.TempDir(), "scores.json"), 5)
	if err != nil {
		t.Fatalf("OpenJSON: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func tickGame(m GameModel, n int) GameModel {
	for range n {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(GameModel)
	}
	return m
}

func pressGame(m GameModel, key string) GameModel {
	next, _ := m.Update(keyRunes(key))
	return next.(GameModel)
}

func TestGameModelSavesScoreOnce(t *testing.T) {
	b := openTestBackend(t)
	g := &fakeGame{endAt: 3}
	m := NewGameModel(g, Session{Backend: b, Player: "ann"}, testRuntime())
	m.Init()

	m = tickGame(m, 10)
	if !m.State().GameOver {
		t.Fatal("game should be over")
	}

	entries, err := b.TopScores("fake", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("saved %d scores, want 1", len(entries))
	}
	e := entries[0]
	if e.Score != 42 || e.Money != 9 || e.RunID != "run-1" || e.Player != "ann" {
		t.Errorf("saved entry = %+v", e)
	}
	if len(g.high) != 1 || g.high[0] != 42 {
		t.Errorf("high scores handed to game = %v, want [42]", g.high)
	}
}

func TestGameModelWithoutBackend(t *testing.T) {
	g := &fakeGame{endAt: 1}
	m := NewGameModel(g, Session{}, testRuntime())
	m.Init()
	m = tickGame(m, 2)
	if !m.State().GameOver {
		t.Error("game should run without storage")
	}
}

func TestGameModelRestartKeepsFixedSeed(t *testing.T) {
	g := &fakeGame{endAt: 1}
	m := NewGameModel(g, Session{}, testRuntime())
	m.Init()
	m = tickGame(m, 1)

	m = pressGame(m, "r")
	m = tickGame(m, 1)

	if g.resets != 2 {
		t.Fatalf("resets = %d, want 2", g.resets)
	}
	if g.seeds[0] != 7 || g.seeds[1] != 7 {
		t.Errorf("seeds = %v, want both 7", g.seeds)
	}
	if m.State().GameOver {
		t.Error("restart should clear game over")
	}
}

func TestGameModelSteeringReachesGame(t *testing.T) {
	g := &fakeGame{endAt: 100}
	m := NewGameModel(g, Session{}, testRuntime())
	m.Init()

	m = pressGame(m, "a")
	m = tickGame(m, 1)
	if !g.lastFrame.Has(core.ActionLeft) {
		t.Error("left should reach the game")
	}

	m = pressGame(m, "r")
	tickGame(m, 1)
	if g.resets != 1 {
		t.Error("restart should be ignored while playing")
	}
}

func TestGameModelGameOverKeys(t *testing.T) {
	tests := []struct {
		key   string
		shop  bool
		menu  bool
		quits bool
	}{
		{"u", true, false, false},
		{"b", false, true, false},
		{"q", false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			g := &fakeGame{endAt: 1}
			m := NewGameModel(g, Session{}, testRuntime())
			m.Init()
			m = tickGame(m, 1)
			m = pressGame(m, tt.key)

			if m.WantsShop() != tt.shop || m.BackToMenu() != tt.menu || m.IsQuitting() != tt.quits {
				t.Errorf("shop=%v menu=%v quit=%v", m.WantsShop(), m.BackToMenu(), m.IsQuitting())
			}
		})
	}
}

func TestGameModelShopIgnoredWhilePlaying(t *testing.T) {
	g := &fakeGame{endAt: 100}
	m := NewGameModel(g, Session{}, testRuntime())
	m.Init()
	m = tickGame(m, 1)
	m = pressGame(m, "u")
	if m.WantsShop() {
		t.Error("shop should only open after game over")
	}
}

func TestGameModelView(t *testing.T) {
	g := &fakeGame{endAt: 100}
	m := NewGameModel(g, Session{}, testRuntime())
	if !strings.Contains(m.View(), "fake shaft") {
		t.Error("view should contain the rendered game")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColored(0, 0, "dirt", core.ColorBrown)
	s.DrawTextColored(5, 0, "gem", core.ColorPurple)
	s.DrawText(0, 1, "plain")

	out := RenderScreen(s)
	for _, want := range []string{"dirt", "gem", "plain"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered output missing %q", want)
		}
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("rendered %d line breaks, want 1", got)
	}
}
