package config

import "math"

// DifficultyManager scales depth-driven pressure (scroll acceleration and
// mole spawns) by a difficulty level in [0, 1].
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables depth-driven progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether depth-driven progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled
}

// Level returns the current difficulty level.
func (d *DifficultyManager) Level() float64 {
	return d.initialLevel
}

// ScrollSpeed returns the auto-scroll speed at the given depth.
// With progression disabled the scroll never accelerates.
func (d *DifficultyManager) ScrollSpeed(sc ScrollConfig, depth int) float64 {
	if !d.cfg.Enabled {
		return sc.InitialSpeed
	}
	scale := 1.0 + d.initialLevel*d.cfg.SpeedScale
	return sc.InitialSpeed + float64(depth)*sc.DepthFactor*scale
}

// SpawnChance returns the per-tick mole spawn probability at the given depth.
func (d *DifficultyManager) SpawnChance(mc MoleConfig, depth int) float64 {
	chance := mc.BaseChance + float64(depth)*mc.DepthChance
	if d.cfg.Enabled {
		chance *= 1.0 + d.initialLevel*d.cfg.SpawnScale
	}
	return clampF(chance, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
