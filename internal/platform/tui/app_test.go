package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func updateApp(m AppModel, msg tea.Msg) AppModel {
	next, _ := m.Update(msg)
	return next.(AppModel)
}

func testSession(t *testing.T) Session {
	return Session{
		Economy: testEconomy(0),
		Backend: openTestBackend(t),
		Player:  "tester",
	}
}

func TestAppStartRoutes(t *testing.T) {
	tests := []struct {
		start Route
		want  Route
	}{
		{RouteMenu, RouteMenu},
		{RouteGame, RouteGame},
		{RouteShop, RouteShop},
		{RouteScores, RouteScores},
	}
	for _, tt := range tests {
		t.Run(tt.start.String(), func(t *testing.T) {
			m := NewAppModel(testSession(t), testRuntime(), tt.start, "")
			if m.Route() != tt.want {
				t.Errorf("route = %v, want %v", m.Route(), tt.want)
			}
		})
	}
}

func TestAppUnknownGameFallsBackToMenu(t *testing.T) {
	m := NewAppModel(testSession(t), testRuntime(), RouteGame, "nope")
	if m.Route() != RouteMenu {
		t.Errorf("route = %v, want menu", m.Route())
	}
	if m.Err() == nil {
		t.Error("expected an error for an unknown mode")
	}
}

func TestAppMenuToGame(t *testing.T) {
	m := NewAppModel(testSession(t), testRuntime(), RouteMenu, "")
	m = updateApp(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Route() != RouteGame {
		t.Fatalf("route = %v, want game", m.Route())
	}
	if m.game == nil || m.game.GameID() != "drill" {
		t.Error("first menu entry should start the classic mode")
	}
}

func TestAppMenuToScoresAndBack(t *testing.T) {
	m := NewAppModel(testSession(t), testRuntime(), RouteMenu, "")
	m = updateApp(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Route() != RouteScores {
		t.Fatalf("route = %v, want scores", m.Route())
	}
	m = updateApp(m, tea.KeyMsg{Type: tea.KeyEscape})
	if m.Route() != RouteMenu {
		t.Errorf("route = %v, want menu", m.Route())
	}
}

func TestAppShopToGame(t *testing.T) {
	m := NewAppModel(testSession(t), testRuntime(), RouteShop, "drill_daily")
	m = updateApp(m, keyRunes("p"))
	if m.Route() != RouteGame {
		t.Fatalf("route = %v, want game", m.Route())
	}
	if m.game.GameID() != "drill_daily" {
		t.Errorf("game = %q, want drill_daily", m.game.GameID())
	}

	m = updateApp(m, keyRunes("q"))
	if !m.quitting {
		t.Error("q should quit the app")
	}
	if m.View() != "" {
		t.Error("quitting app should render nothing")
	}
}

func TestAppShopBackToMenu(t *testing.T) {
	m := NewAppModel(testSession(t), testRuntime(), RouteShop, "")
	m = updateApp(m, keyRunes("b"))
	if m.Route() != RouteMenu {
		t.Errorf("route = %v, want menu", m.Route())
	}
}

func TestAppResizeReachesScreens(t *testing.T) {
	m := NewAppModel(testSession(t), testRuntime(), RouteMenu, "")
	m = updateApp(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.config.ScreenW != 120 || m.config.ScreenH != 40 {
		t.Errorf("config = %dx%d, want 120x40", m.config.ScreenW, m.config.ScreenH)
	}
	if m.menu.width != 120 {
		t.Errorf("menu width = %d, want 120", m.menu.width)
	}
}

func TestMenuListsModesShopAndScores(t *testing.T) {
	m := NewMenuModel(testEconomy(17), 80, 24)
	if len(m.items) != 4 {
		t.Fatalf("menu has %d items, want 2 modes plus shop and scores", len(m.items))
	}
	view := m.View()
	for _, want := range []string{"Drilldown (Daily)", "Upgrade shop", "Gems: 17", "A fresh world every run"} {
		if !strings.Contains(view, want) {
			t.Errorf("menu view missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if sel := m.Selected(); sel == nil || sel.GameID != "drill_daily" {
		t.Errorf("selected = %+v, want drill_daily", sel)
	}
}
