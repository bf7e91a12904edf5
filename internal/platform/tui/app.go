package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/drilldown/internal/core"
	"github.com/vovakirdan/drilldown/internal/registry"
)

// DefaultGameID is the mode started from the shop when nothing was played yet.
const DefaultGameID = "drill"

// Route names a screen of the app.
type Route int

const (
	RouteMenu Route = iota
	RouteGame
	RouteShop
	RouteScores
)

// String returns the route name.
func (r Route) String() string {
	switch r {
	case RouteMenu:
		return "menu"
	case RouteGame:
		return "game"
	case RouteShop:
		return "shop"
	case RouteScores:
		return "scores"
	default:
		return "unknown"
	}
}

// AppModel manages the full session flow between menu, game, shop and
// scoreboard. It is the top-level model both locally and over SSH.
type AppModel struct {
	session  Session
	config   core.RuntimeConfig
	route    Route
	gameID   string
	menu     MenuModel
	game     *GameModel
	shop     ShopModel
	scores   ScoreboardModel
	quitting bool
	err      error
}

// NewAppModel creates an app that opens on the given route. gameID picks
// the mode for RouteGame and for runs started from the shop.
func NewAppModel(session Session, cfg core.RuntimeConfig, start Route, gameID string) AppModel {
	if gameID == "" {
		gameID = DefaultGameID
	}
	m := AppModel{
		session: session,
		config:  cfg,
		route:   start,
		gameID:  gameID,
	}
	switch start {
	case RouteGame:
		if err := m.newGame(); err != nil {
			m.err = err
			m.route = RouteMenu
			m.menu = NewMenuModel(session.Economy, cfg.ScreenW, cfg.ScreenH)
		}
	case RouteShop:
		m.shop = NewShopModel(session.Economy, cfg.ScreenW, cfg.ScreenH)
	case RouteScores:
		m.scores = NewScoreboardModel(session.Backend, cfg.ScreenW, cfg.ScreenH)
		m.scores.SelectGame(gameID)
	default:
		m.route = RouteMenu
		m.menu = NewMenuModel(session.Economy, cfg.ScreenW, cfg.ScreenH)
	}
	return m
}

// newGame creates the game model for m.gameID.
func (m *AppModel) newGame() error {
	game, err := registry.Create(m.gameID, m.session.Services())
	if err != nil {
		return err
	}
	gm := NewGameModel(game, m.session, m.config)
	m.game = &gm
	return nil
}

// Init initializes the current screen.
func (m AppModel) Init() tea.Cmd {
	if m.route == RouteGame && m.game != nil {
		return m.game.Init()
	}
	return nil
}

// Update handles messages for the current screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.route {
	case RouteGame:
		return m.updateGame(msg)
	case RouteShop:
		return m.updateShop(msg)
	case RouteScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.menu.Selected(); selected != nil {
		switch selected.Target {
		case TargetGame:
			m.gameID = selected.GameID
			return m.goGame()
		case TargetShop:
			return m.goShop()
		case TargetScores:
			return m.goScores()
		}
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.game == nil {
		return m.goMenu()
	}

	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = &gameModel
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.WantsShop():
		return m.goShop()
	case m.game.BackToMenu():
		return m.goMenu()
	}
	return m, cmd
}

func (m AppModel) updateShop(msg tea.Msg) (tea.Model, tea.Cmd) {
	newShop, cmd := m.shop.Update(msg)
	if shopModel, ok := newShop.(ShopModel); ok {
		m.shop = shopModel
	}

	switch {
	case m.shop.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.shop.WantsPlay():
		return m.goGame()
	case m.shop.IsGoingBack():
		return m.goMenu()
	}
	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if scoresModel, ok := newScores.(ScoreboardModel); ok {
		m.scores = scoresModel
	}

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.goMenu()
	}
	return m, cmd
}

func (m AppModel) goMenu() (tea.Model, tea.Cmd) {
	m.route = RouteMenu
	m.game = nil
	m.menu = NewMenuModel(m.session.Economy, m.config.ScreenW, m.config.ScreenH)
	return m, m.menu.Init()
}

func (m AppModel) goShop() (tea.Model, tea.Cmd) {
	m.route = RouteShop
	m.game = nil
	m.shop = NewShopModel(m.session.Economy, m.config.ScreenW, m.config.ScreenH)
	return m, m.shop.Init()
}

func (m AppModel) goScores() (tea.Model, tea.Cmd) {
	m.route = RouteScores
	m.scores = NewScoreboardModel(m.session.Backend, m.config.ScreenW, m.config.ScreenH)
	m.scores.SelectGame(m.gameID)
	return m, m.scores.Init()
}

func (m AppModel) goGame() (tea.Model, tea.Cmd) {
	if err := m.newGame(); err != nil {
		m.err = err
		m.session.logger().Error("could not start game", "game", m.gameID, "error", err)
		return m.goMenu()
	}
	m.route = RouteGame
	return m, m.game.Init()
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.route {
	case RouteGame:
		if m.game != nil {
			return m.game.View()
		}
	case RouteShop:
		return m.shop.View()
	case RouteScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// Route returns the current screen.
func (m AppModel) Route() Route {
	return m.route
}

// Err returns the last error that sent the app back to the menu.
func (m AppModel) Err() error {
	return m.err
}

// Run starts a Bubble Tea program on the terminal.
func Run(session Session, cfg core.RuntimeConfig, start Route, gameID string) error {
	model := NewAppModel(session, cfg, start, gameID)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
