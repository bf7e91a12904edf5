package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/drilldown/internal/core"
)

// DefaultHoldTicks is how many ticks a steering key stays held after its
// last press or auto-repeat. Terminals report repeats but never key-up, so
// the window has to outlast the repeat delay.
const DefaultHoldTicks = 8

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case " ", "enter":
		return core.ActionPrimary, false
	case "0", "?":
		return core.ActionHelp, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "u":
		return core.ActionShop, false
	case "b":
		return core.ActionBack, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}

// Input accumulates key presses between ticks and hands the simulation one
// frame per tick. Steering actions stay held for a few ticks after each
// press; everything else fires for exactly one tick.
type Input struct {
	holdTicks int
	held      map[core.Action]int
	pressed   core.InputFrame
}

// NewInput creates an input buffer. Non-positive holdTicks selects
// DefaultHoldTicks.
func NewInput(holdTicks int) *Input {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	return &Input{
		holdTicks: holdTicks,
		held:      make(map[core.Action]int),
		pressed:   core.NewInputFrame(),
	}
}

// holdable reports whether an action is a steering action.
func holdable(a core.Action) bool {
	return a == core.ActionLeft || a == core.ActionRight || a == core.ActionDown
}

// Press records a key press for the next frame.
func (in *Input) Press(a core.Action) {
	if a == core.ActionNone {
		return
	}
	if !holdable(a) {
		in.pressed.Set(a)
		return
	}
	// Reversing direction drops the old one at once.
	switch a {
	case core.ActionLeft:
		delete(in.held, core.ActionRight)
	case core.ActionRight:
		delete(in.held, core.ActionLeft)
	}
	in.held[a] = in.holdTicks
}

// Frame returns the input for this tick and advances the hold timers.
func (in *Input) Frame() core.InputFrame {
	frame := in.pressed.Clone()
	in.pressed.Clear()
	for a, left := range in.held {
		frame.Set(a)
		if left <= 1 {
			delete(in.held, a)
		} else {
			in.held[a] = left - 1
		}
	}
	return frame
}

// Reset drops all pending and held input.
func (in *Input) Reset() {
	in.pressed.Clear()
	clear(in.held)
}
