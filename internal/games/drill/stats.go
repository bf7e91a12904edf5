package drill

import (
	"github.com/vovakirdan/drilldown/internal/config"
	"github.com/vovakirdan/drilldown/internal/upgrade"
)

// Stats are the upgrade-derived player parameters.
type Stats struct {
	Speed         float64 // Horizontal pixels per tick
	BoostSpeed    float64 // Extra fall pixels per tick while boosting
	MaxHP         int
	MaxBombs      int
	FeverTicks    int
	MagnetDetect  float64 // Detection radius in pixels, 0 disables the magnet
	MagnetCapture float64 // Capture radius in pixels, independent of level
}

// levels reads upgrade levels; a nil economy reads as all zeros.
type levels interface {
	Level(kind upgrade.Kind) int
}

// StatsFor derives the player parameters from config and upgrade levels.
func StatsFor(cfg config.DrillConfig, lv levels) Stats {
	level := func(k upgrade.Kind) int {
		if lv == nil {
			return 0
		}
		return lv.Level(k)
	}

	tile := float64(cfg.World.TileSize)
	mult := 1 + cfg.Player.SpeedPerTier*float64(level(upgrade.DrillSpeed))

	return Stats{
		Speed:         cfg.Player.Speed * mult,
		BoostSpeed:    cfg.Player.BoostSpeed * mult,
		MaxHP:         cfg.Player.MaxLife + level(upgrade.MaxHP),
		MaxBombs:      cfg.Player.MaxBombs + level(upgrade.BombMax),
		FeverTicks:    cfg.Fever.BaseTicks + cfg.Fever.TicksPerLevel*level(upgrade.FeverTime),
		MagnetDetect:  cfg.Magnet.DetectTilesPerLevel * tile * float64(level(upgrade.Magnet)),
		MagnetCapture: cfg.Magnet.CaptureTiles * tile,
	}
}
