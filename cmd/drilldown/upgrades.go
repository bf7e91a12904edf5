package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/drilldown/internal/upgrade"
)

var flagBuy string

var upgradesCmd = &cobra.Command{
	Use:   "upgrades",
	Short: "Print wallet and upgrade levels",
	Long: `Print the gems of the current profile and the level and next cost of
every upgrade. --buy purchases one level without opening the shop.

Examples:
  drilldown upgrades
  drilldown upgrades --buy MAGNET
  drilldown upgrades --profile alice`,
	Args: cobra.NoArgs,
	RunE: runUpgrades,
}

func init() {
	upgradesCmd.Flags().StringVar(&flagBuy, "buy", "", "Upgrade kind to buy (e.g. DRILL_SPEED)")
}

func runUpgrades(_ *cobra.Command, _ []string) error {
	e, err := openEnv(false)
	if err != nil {
		return err
	}
	defer e.Close()

	if flagBuy != "" {
		kind := upgrade.Kind(strings.ToUpper(flagBuy))
		if err := e.econ.TryBuy(kind); err != nil {
			return fmt.Errorf("buying %s: %w", kind, err)
		}
		fmt.Printf("Bought %s, now level %d\n\n", kind, e.econ.Level(kind))
	}

	fmt.Printf("Profile: %s\n", flagProfile)
	fmt.Printf("Gems:    %d\n", e.econ.Money())
	fmt.Println()

	fmt.Printf("  %-12s  %-16s  %-7s  %s\n", "Kind", "Upgrade", "Level", "Next")
	fmt.Printf("  %-12s  %-16s  %-7s  %s\n", "----", "-------", "-----", "----")
	for _, row := range e.econ.Summaries() {
		next := "max"
		if !row.Maxed {
			next = fmt.Sprintf("%d", row.Cost)
		}
		level := fmt.Sprintf("%d/%d", row.Level, row.Spec.MaxLevel)
		fmt.Printf("  %-12s  %-16s  %-7s  %s\n", row.Kind, row.Spec.Label, level, next)
	}
	return nil
}
