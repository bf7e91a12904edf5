package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/drilldown/internal/registry"
	"github.com/vovakirdan/drilldown/internal/upgrade"
)

// MenuTarget is where a menu entry leads.
type MenuTarget int

const (
	TargetGame MenuTarget = iota
	TargetShop
	TargetScores
)

// MenuItem represents a selectable entry in the menu.
type MenuItem struct {
	Target MenuTarget
	GameID string // Set for TargetGame
	Title  string
	Hint   string
}

// modeHints describes the registered modes in the menu.
var modeHints = map[string]string{
	"drill":       "A fresh world every run",
	"drill_daily": "Everyone digs the same world today",
}

// MenuModel is the Bubble Tea model for the title menu.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	econ      *upgrade.Economy
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
}

// NewMenuModel creates a menu listing every registered mode followed by
// the shop and the scoreboard.
func NewMenuModel(econ *upgrade.Economy, width, height int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games)+2)
	for _, g := range games {
		items = append(items, MenuItem{Target: TargetGame, GameID: g.ID, Title: g.Title, Hint: modeHints[g.ID]})
	}
	items = append(items,
		MenuItem{Target: TargetShop, Title: "Upgrade shop", Hint: "Spend gems on drill upgrades"},
		MenuItem{Target: TargetScores, Title: "High scores", Hint: "Deepest runs per mode"},
	)

	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		econ:      econ,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.selected = &MenuItem{Target: TargetScores, Title: "High scores"}
	}
	return m, nil
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("130"))
	menuWalletStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("135"))
	menuItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	menuActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuHintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		"",
		menuTitleStyle.Render("D R I L L D O W N"),
		"",
	}
	if m.econ != nil {
		lines = append(lines, menuWalletStyle.Render(fmt.Sprintf("Gems: %d", m.econ.Money())), "")
	}

	for i, item := range m.items {
		if i == m.cursor {
			lines = append(lines, menuActiveStyle.Render("> "+item.Title+" <"))
		} else {
			lines = append(lines, menuItemStyle.Render(item.Title))
		}
	}
	if len(m.items) > 0 && m.items[m.cursor].Hint != "" {
		lines = append(lines, "", menuHintStyle.Render(m.items[m.cursor].Hint))
	}
	lines = append(lines, "", "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit")

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
