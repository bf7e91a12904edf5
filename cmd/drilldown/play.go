package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/drilldown/internal/platform/tui"
	"github.com/vovakirdan/drilldown/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Start digging",
	Long: `Start a run in the given mode (default: drill).

Modes:
  drill        - Random world every run (or --seed)
  drill_daily  - Same world for everyone on the same UTC day

Controls:
  A/D or Left/Right  - Steer
  S or Down          - Boost downwards
  Space/Enter        - Drop a bomb
  0                  - Toggle help
  P/Esc              - Pause
  R                  - Restart (after game over)
  U                  - Upgrade shop (after game over)
  Q/Ctrl+C           - Quit

Difficulty options:
  easy   - Extra life, gentle start
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty, no starting bomb
  fixed  - No depth-driven acceleration

Examples:
  drilldown play
  drilldown play drill_daily
  drilldown play --difficulty hard --sound
  drilldown play --seed 42 --config ./my-drill.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the title menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a run ends, press U for the shop or B to return to the menu.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runUI(tui.RouteMenu, "")
	},
}

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Spend gems on upgrades",
	Long: `Open the upgrade shop. Enter buys the selected upgrade, P starts a run.

Examples:
  drilldown shop
  drilldown shop --profile alice`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return runUI(tui.RouteShop, "")
	},
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := tui.DefaultGameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'drilldown list' to see available modes", gameID)
	}
	return runUI(tui.RouteGame, gameID)
}

// runUI opens the environment and runs the terminal UI on a route.
func runUI(route tui.Route, gameID string) error {
	e, err := openEnv(true)
	if err != nil {
		return err
	}
	defer e.Close()

	e.logger.Info("session started", "route", route, "mode", gameID, "profile", flagProfile)
	if err := tui.Run(e.session(), runtimeConfig(), route, gameID); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	e.logger.Info("session ended", "money", e.econ.Money())
	return nil
}
