package drill

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/drilldown/internal/config"
	"github.com/vovakirdan/drilldown/internal/core"
	"github.com/vovakirdan/drilldown/internal/registry"
	"github.com/vovakirdan/drilldown/internal/upgrade"
)

func newTestEconomy(t *testing.T, st upgrade.State) (*upgrade.Economy, *upgrade.MemoryStore) {
	t.Helper()
	store := upgrade.NewMemoryStore()
	if err := store.Save(st); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	specs := upgrade.SpecsFromConfig(config.DefaultDrillConfig().Economy)
	return upgrade.New(specs, store, nil), store
}

func newTestGame(econ *upgrade.Economy, seed int64) *Game {
	g := New(registry.Services{Economy: econ})
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: seed})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegisteredModes(t *testing.T) {
	for _, id := range []string{"drill", "drill_daily"} {
		g, err := registry.Create(id, registry.Services{})
		if err != nil {
			t.Fatalf("Create(%q): %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID = %q, want %q", g.ID(), id)
		}
	}
}

func TestDeterministicRun(t *testing.T) {
	inputs := func(tick int) core.InputFrame {
		switch {
		case tick%50 < 10:
			return frame(core.ActionLeft, core.ActionDown)
		case tick%50 < 20:
			return frame(core.ActionRight)
		case tick == 120:
			return frame(core.ActionPrimary)
		default:
			return frame()
		}
	}

	run := func() Snapshot {
		g := newTestGame(nil, 1234)
		for i := 0; i < 600 && !g.State().GameOver; i++ {
			g.Step(inputs(i))
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if a != b {
		t.Errorf("same seed and inputs diverged:\n%+v\n%+v", a, b)
	}
	if a.Tick == 0 || a.ScrollY <= 0 {
		t.Errorf("run did not advance: %+v", a)
	}
}

func TestScrollAndScore(t *testing.T) {
	g := newTestGame(nil, 1)
	for i := 0; i < 64; i++ {
		g.Step(frame())
	}
	if g.ScrollY() < 64 {
		t.Errorf("ScrollY = %v, want at least 64 after 64 ticks", g.ScrollY())
	}
	if g.State().Score < 1 {
		t.Errorf("Score = %d, want at least 1", g.State().Score)
	}

	before := g.ScrollY()
	g.Step(frame(core.ActionDown))
	if step := g.ScrollY() - before; step < 2 {
		t.Errorf("boosted scroll step = %v, want doubled speed", step)
	}
}

func TestUpgradesParameterizeRun(t *testing.T) {
	econ, _ := newTestEconomy(t, upgrade.State{Levels: map[upgrade.Kind]int{
		upgrade.MaxHP:   2,
		upgrade.BombMax: 1,
		upgrade.Magnet:  1,
	}})
	g := newTestGame(econ, 1)

	if g.Player().MaxHP != 5 || g.Player().HP != 5 {
		t.Errorf("MaxHP = %d HP = %d, want 5", g.Player().MaxHP, g.Player().HP)
	}
	if g.Player().MaxBombs != 4 {
		t.Errorf("MaxBombs = %d, want 4", g.Player().MaxBombs)
	}
	g.Step(frame())
	if g.stats.MagnetDetect != 64 {
		t.Errorf("MagnetDetect = %v, want 64", g.stats.MagnetDetect)
	}
}

func TestFeverMilestoneProtectsPlayer(t *testing.T) {
	g := newTestGame(nil, 1)
	g.scrollY = 32 * 100

	// The player is far above the viewport, which would normally cost a life.
	g.Step(frame())

	if !g.Fever().Active || !g.Player().Fever {
		t.Fatal("fever should start at depth 100")
	}
	if g.Fever().Remaining != 300 {
		t.Errorf("Remaining = %d, want 300", g.Fever().Remaining)
	}
	if g.Player().HP != 3 {
		t.Errorf("HP = %d, want 3 during fever", g.Player().HP)
	}
}

func TestFeverDurationUpgrade(t *testing.T) {
	econ, _ := newTestEconomy(t, upgrade.State{Levels: map[upgrade.Kind]int{upgrade.FeverTime: 2}})
	g := newTestGame(econ, 1)
	g.scrollY = 32 * 100
	g.Step(frame())
	if g.Fever().Remaining != 420 {
		t.Errorf("Remaining = %d, want 420", g.Fever().Remaining)
	}
}

func TestGameOverSettlesOnce(t *testing.T) {
	econ, store := newTestEconomy(t, upgrade.State{Money: 3})
	g := newTestGame(econ, 1)
	g.score = 57
	g.Player().HP = 1
	g.Player().Money = 20
	g.Player().Y = -1000

	res := g.Step(frame())
	if !res.State.GameOver {
		t.Fatal("expected game over after falling off with one life")
	}

	r, ok := g.Result()
	if !ok {
		t.Fatal("Result not available after game over")
	}
	if r.Score != 57 || r.Money != 20 || r.Bonus != 5 {
		t.Errorf("result = %+v, want score 57, money 20, bonus 5", r)
	}
	if r.ID == "" {
		t.Error("result should carry a run ID")
	}
	if econ.Money() != 3+25 {
		t.Errorf("wallet = %d, want 28", econ.Money())
	}
	if res.State.Currency != 25 {
		t.Errorf("State.Currency = %d, want 25", res.State.Currency)
	}

	saves := store.Saves()
	g.Step(frame())
	g.Step(frame())
	if econ.Money() != 28 || store.Saves() != saves {
		t.Error("run was credited more than once")
	}
}

func TestRespawnKeepsRunGoing(t *testing.T) {
	g := newTestGame(nil, 1)
	g.Player().Y = -1000

	g.Step(frame())

	if g.State().GameOver {
		t.Fatal("losing one of three lives should not end the run")
	}
	if g.Player().HP != 2 {
		t.Errorf("HP = %d, want 2", g.Player().HP)
	}
	if g.Player().Y < g.ScrollY() {
		t.Errorf("player Y = %v above viewport top %v after respawn", g.Player().Y, g.ScrollY())
	}
}

func TestPauseFreezesSimulation(t *testing.T) {
	g := newTestGame(nil, 1)
	g.Step(frame())
	before := g.Snapshot()

	st := g.Step(frame(core.ActionPause))
	if !st.State.Paused {
		t.Fatal("expected paused state")
	}
	g.Step(frame())
	if g.Snapshot() != before {
		t.Error("simulation advanced while paused")
	}

	// The unpausing tick runs the simulation.
	g.Step(frame(core.ActionPause))
	if g.Snapshot().Tick != before.Tick+1 {
		t.Errorf("Tick = %d, want %d after unpausing", g.Snapshot().Tick, before.Tick+1)
	}
}

func TestResetRebuildsRun(t *testing.T) {
	g := newTestGame(nil, 9)
	for i := 0; i < 100; i++ {
		g.Step(frame(core.ActionDown))
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 9})

	s := g.Snapshot()
	if s.Tick != 0 || s.ScrollY != 0 || s.Score != 0 || s.HP != 3 {
		t.Errorf("Reset left state behind: %+v", s)
	}
}

func TestDailySeedIgnoresRuntimeSeed(t *testing.T) {
	day := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	newDaily := func(seed int64) *Game {
		g := NewDaily(registry.Services{})
		g.now = func() time.Time { return day }
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: seed})
		return g
	}

	a, b := newDaily(1), newDaily(2)
	if a.Seed() != b.Seed() || a.Seed() != registry.DailySeed(day) {
		t.Errorf("daily seeds = %d, %d, want %d", a.Seed(), b.Seed(), registry.DailySeed(day))
	}
}

func TestRenderDrawsShaftAndHUD(t *testing.T) {
	g := newTestGame(nil, 1)
	g.Step(frame())

	scr := core.NewScreen(80, 30)
	g.Render(scr)

	out := scr.String()
	for _, want := range []string{"Drilldown", "Depth", "Bombs 1/3", "▼▼", "0/? help"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	small := core.NewScreen(10, 5)
	g.Render(small)
	if !strings.Contains(small.String(), "too") {
		t.Error("expected a too-small notice on tiny screens")
	}
}
