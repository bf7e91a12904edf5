// drilldown is a terminal digging game: steer a drill down an endless
// shaft, collect gems, and spend them on upgrades between runs.
//
// Usage:
//
//	drilldown menu               - Title menu (modes, shop, scores)
//	drilldown play [mode]        - Start digging (drill or drill_daily)
//	drilldown shop               - Open the upgrade shop
//	drilldown upgrades           - Print the wallet and upgrade levels
//	drilldown scores [mode]      - Show high scores
//	drilldown list               - List game modes
//	drilldown serve              - Host the game over SSH
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <dsn>            - SQLite path, .json file or postgres:// URL
//	--config <path>       - Custom drill.yaml
//	--difficulty <name>   - easy, normal, hard or fixed
//	--profile <name>      - Progress profile for local play
//	--log-level <level>   - debug, info, warn or error
//	--sound               - Play effect sounds
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import modes to register them
	_ "github.com/vovakirdan/drilldown/internal/games/drill"
	"github.com/vovakirdan/drilldown/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagProfile    string
	flagLogLevel   string
	flagSound      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "drilldown",
	Short: "Drilldown - dig an endless shaft in your terminal",
	Long: `Drilldown is a terminal digging game. The view scrolls down on its own;
steer the drill through dirt and rock, grab gems, dodge moles and don't
get caught by the top of the screen.

Available commands:
  menu      - Title menu
  play      - Start digging directly
  shop      - Spend gems on upgrades
  upgrades  - Print wallet and upgrade levels
  scores    - View high scores
  list      - Show game modes
  serve     - Start SSH server for remote play

Examples:
  drilldown play
  drilldown play drill_daily --difficulty hard
  drilldown shop
  drilldown serve --ssh :2222
  drilldown scores drill`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.drilldown/drilldown.db", "SQLite path, .json file or postgres:// URL")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom drill.yaml")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", storage.DefaultProfile, "Progress profile for local play")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Play effect sounds")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(shopCmd)
	rootCmd.AddCommand(upgradesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(serveCmd)
}
