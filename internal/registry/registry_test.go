package registry

import (
	"testing"
	"time"

	"github.com/vovakirdan/drilldown/internal/core"
)

type stubGame struct{ id string }

func (s *stubGame) ID() string                           { return s.id }
func (s *stubGame) Title() string                        { return "Stub " + s.id }
func (s *stubGame) Reset(core.RuntimeConfig)             {}
func (s *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubGame) Render(*core.Screen)                  {}
func (s *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_a", func(Services) Game { return &stubGame{id: "stub_a"} })

	if !Exists("stub_a") {
		t.Fatal("Expected stub_a to exist")
	}
	g, err := Create("stub_a", Services{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "stub_a" {
		t.Errorf("ID = %q, want stub_a", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "stub_a" {
			found = true
			if info.Title != "Stub stub_a" {
				t.Errorf("Title = %q", info.Title)
			}
		}
	}
	if !found {
		t.Error("stub_a missing from List")
	}

	if _, err := Create("nope", Services{}); err == nil {
		t.Error("Expected error for unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("stub_dup", func(Services) Game { return &stubGame{id: "stub_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()
	Register("stub_dup", func(Services) Game { return &stubGame{id: "stub_dup"} })
}

func TestDailySeed(t *testing.T) {
	morning := time.Date(2026, 3, 4, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 4, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 5, 0, 0, 1, 0, time.UTC)

	if DailySeed(morning) != DailySeed(evening) {
		t.Error("Same UTC day should give the same seed")
	}
	if DailySeed(morning) == DailySeed(nextDay) {
		t.Error("Different days should give different seeds")
	}
	if DailySeed(morning) < 0 {
		t.Error("Seed should be non-negative")
	}
}
