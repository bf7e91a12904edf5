package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/drilldown/internal/platform/tui"
	"github.com/vovakirdan/drilldown/internal/registry"
)

var flagClearScores bool

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the retained high scores of a mode (default: drill).

Examples:
  drilldown scores
  drilldown scores drill_daily
  drilldown scores drill --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all scores of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := tui.DefaultGameID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown mode %q, run 'drilldown list' to see available modes", gameID)
	}

	game, err := registry.Create(gameID, registry.Services{})
	if err != nil {
		return err
	}

	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()
	if e.backend == nil {
		return errors.New("no score storage available")
	}

	if flagClearScores {
		if err := e.backend.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Cleared scores for %s\n", game.Title())
		return nil
	}

	scores, err := e.backend.TopScores(gameID, e.cfg.Economy.HighScoreRetain)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'drilldown play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-6s  %-12s  %s\n", "Rank", "Depth", "Gems", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-6s  %-12s  %s\n", "----", "-----", "----", "------", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-7d  %-6d  %-12s  %s\n", i+1, entry.Score, entry.Money, entry.Player, dateStr)
	}

	fmt.Println()
	if best, err := e.backend.HighScore(gameID); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	return nil
}
