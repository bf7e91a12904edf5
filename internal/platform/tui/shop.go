package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/drilldown/internal/upgrade"
)

// ShopKeyMap defines the key bindings for the upgrade shop.
type ShopKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Buy  key.Binding
	Play key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ShopKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Buy, k.Play, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ShopKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Buy},
		{k.Play, k.Back, k.Quit},
	}
}

// DefaultShopKeyMap returns default key bindings.
func DefaultShopKeyMap() ShopKeyMap {
	return ShopKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "move down"),
		),
		Buy: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "buy"),
		),
		Play: key.NewBinding(
			key.WithKeys("p", "r"),
			key.WithHelp("p", "dig"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	shopTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	shopWalletStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	shopCursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	shopBuyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	shopPoorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	shopMaxedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	shopDescStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	shopMessageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	shopHelpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ShopModel is the Bubble Tea model for the upgrade shop.
type ShopModel struct {
	econ     *upgrade.Economy
	rows     []upgrade.Summary
	cursor   int
	keys     ShopKeyMap
	help     help.Model
	width    int
	height   int
	message  string
	play     bool
	back     bool
	quitting bool
}

// NewShopModel creates a shop over an economy.
func NewShopModel(econ *upgrade.Economy, width, height int) ShopModel {
	h := help.New()
	h.Width = width
	m := ShopModel{
		econ:   econ,
		keys:   DefaultShopKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.refresh()
	return m
}

func (m *ShopModel) refresh() {
	if m.econ == nil {
		m.rows = nil
		return
	}
	m.rows = m.econ.Summaries()
	if m.cursor >= len(m.rows) {
		m.cursor = max(len(m.rows)-1, 0)
	}
}

// Init initializes the shop model.
func (m ShopModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the shop.
func (m ShopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
		case key.Matches(msg, m.keys.Back):
			m.back = true
		case key.Matches(msg, m.keys.Play):
			m.play = true
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Buy):
			m.buy()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// buy purchases the selected upgrade and reports the outcome.
func (m *ShopModel) buy() {
	if len(m.rows) == 0 {
		return
	}
	row := m.rows[m.cursor]
	err := m.econ.TryBuy(row.Kind)
	switch {
	case err == nil:
		m.message = fmt.Sprintf("%s upgraded to level %d", row.Spec.Label, m.econ.Level(row.Kind))
	case errors.Is(err, upgrade.ErrMaxLevel):
		m.message = fmt.Sprintf("%s is already at max level", row.Spec.Label)
	case errors.Is(err, upgrade.ErrInsufficientFunds):
		m.message = fmt.Sprintf("Need %d more gems for %s", row.Cost-m.econ.Money(), row.Spec.Label)
	default:
		m.message = err.Error()
	}
	m.refresh()
}

// View renders the shop.
func (m ShopModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(shopTitleStyle.Render("U P G R A D E   S H O P"), m.width))
	b.WriteString("\n\n")

	money := 0
	if m.econ != nil {
		money = m.econ.Money()
	}
	b.WriteString(centerText(shopWalletStyle.Render(fmt.Sprintf("Gems: %d", money)), m.width))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(centerText(shopDescStyle.Render("No upgrades available."), m.width))
		b.WriteString("\n")
	}

	for i, row := range m.rows {
		line := fmt.Sprintf("%-16s Lv %2d/%-2d  %s", row.Spec.Label, row.Level, row.Spec.MaxLevel, priceTag(row))
		switch {
		case i == m.cursor:
			line = shopCursorStyle.Render("> " + line + " ")
		case row.Maxed:
			line = shopMaxedStyle.Render("  " + line + " ")
		case row.CanAfford:
			line = shopBuyStyle.Render("  " + line + " ")
		default:
			line = shopPoorStyle.Render("  " + line + " ")
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.rows) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(shopDescStyle.Render(m.rows[m.cursor].Spec.Description), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(centerText(shopMessageStyle.Render(m.message), m.width))
	}
	b.WriteString("\n\n")
	b.WriteString(shopHelpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func priceTag(row upgrade.Summary) string {
	if row.Maxed {
		return "MAX"
	}
	return fmt.Sprintf("%d gems", row.Cost)
}

// Message returns the outcome of the last purchase attempt.
func (m ShopModel) Message() string {
	return m.message
}

// WantsPlay returns true if user asked to start a run.
func (m ShopModel) WantsPlay() bool {
	return m.play
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ShopModel) IsGoingBack() bool {
	return m.back
}

// IsQuitting returns true if user wants to quit entirely.
func (m ShopModel) IsQuitting() bool {
	return m.quitting
}
