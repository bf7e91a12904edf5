package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/drilldown/internal/config"
	"github.com/vovakirdan/drilldown/internal/core"
	"github.com/vovakirdan/drilldown/internal/games/drill"
	"github.com/vovakirdan/drilldown/internal/registry"
	"github.com/vovakirdan/drilldown/internal/storage"
	"github.com/vovakirdan/drilldown/internal/upgrade"
)

// Session carries what every screen of one player shares.
type Session struct {
	Config  *config.DrillConfig
	Economy *upgrade.Economy
	Backend storage.Backend // nil plays without score history
	Player  string
	Logger  *log.Logger
	Sinks   []core.EffectSink
}

// Services returns the collaborators handed to new games.
func (s Session) Services() registry.Services {
	return registry.Services{
		Config:  s.Config,
		Economy: s.Economy,
		Logger:  s.Logger,
		Sinks:   s.Sinks,
	}
}

func (s Session) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

func (s Session) player() string {
	if s.Player == "" {
		return storage.DefaultProfile
	}
	return s.Player
}

// runReporter is implemented by games that settle a run on game over.
type runReporter interface {
	Result() (drill.RunResult, bool)
}

// scoreBoard is implemented by games that list high scores on game over.
type scoreBoard interface {
	SetHighScores(scores []int)
}

// GameModel runs one game mode at a fixed tick rate.
type GameModel struct {
	game       registry.Game
	session    Session
	screen     *core.Screen
	config     core.RuntimeConfig
	fixedSeed  bool
	input      *Input
	keyMapper  *KeyMapper
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	openShop   bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a game model. A zero seed picks a time-based seed
// for every run; any other seed is reused on restart.
func NewGameModel(game registry.Game, session Session, cfg core.RuntimeConfig) GameModel {
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:      game,
		session:   session,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:    cfg,
		fixedSeed: fixed,
		input:     NewInput(DefaultHoldTicks),
		keyMapper: NewKeyMapper(),
	}
}

// Init starts the run and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.refreshHighScores()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The shaft has a fixed size; only the screen buffer follows the window.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, nil
	}

	if m.gameState.GameOver {
		switch action {
		case core.ActionRestart:
			m.input.Press(core.ActionRestart)
		case core.ActionShop:
			m.openShop = true
		case core.ActionBack, core.ActionPause:
			m.backToMenu = true
		}
		return m, nil
	}

	if action == core.ActionBack && m.gameState.Paused {
		m.backToMenu = true
		return m, nil
	}
	m.input.Press(action)
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu || m.openShop {
		return m, nil
	}

	frame := m.input.Frame()

	if frame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.restart()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(frame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
	}

	return m, tickCmd(m.config.TickRate)
}

// restart starts a new run with the current upgrade levels.
func (m *GameModel) restart() {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.scoreSaved = false
	m.input.Reset()
	m.refreshHighScores()
}

// saveScore records the finished run once.
func (m *GameModel) saveScore() {
	m.scoreSaved = true
	b := m.session.Backend
	if b == nil || m.gameState.Score <= 0 {
		return
	}

	entry := storage.ScoreEntry{
		GameID: m.game.ID(),
		Player: m.session.player(),
		Score:  m.gameState.Score,
		Money:  m.gameState.Currency,
	}
	if r, ok := m.game.(runReporter); ok {
		if res, ok := r.Result(); ok {
			entry.RunID = res.ID
			entry.Money = res.Credit()
		}
	}
	if err := b.SaveScore(entry); err != nil {
		m.session.logger().Warn("could not save score", "game", entry.GameID, "error", err)
	}
	m.refreshHighScores()
}

// refreshHighScores hands the stored scores of this mode to the game.
func (m GameModel) refreshHighScores() {
	sb, ok := m.game.(scoreBoard)
	if !ok || m.session.Backend == nil {
		return
	}
	scores, err := m.session.Backend.HighScores(m.game.ID())
	if err != nil {
		m.session.logger().Warn("could not load high scores", "game", m.game.ID(), "error", err)
		return
	}
	sb.SetHighScores(scores)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".drilldown", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.session.logger().Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.session.logger().Warn("could not save screenshot", "error", err)
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// WantsShop returns true if user asked for the shop after game over.
func (m GameModel) WantsShop() bool {
	return m.openShop
}

// GameID returns the mode being played.
func (m GameModel) GameID() string {
	return m.game.ID()
}
