package config

import (
	_ "embed"
)

//go:embed defaults/drill.yaml
var defaultDrillYAML []byte

// DefaultDrillConfig returns the hardcoded drill configuration. It mirrors
// defaults/drill.yaml and is used when the embedded file cannot be parsed.
func DefaultDrillConfig() DrillConfig {
	return DrillConfig{
		World: WorldConfig{
			CanvasWidth:    480,
			CanvasHeight:   640,
			TileSize:       32,
			StartClearRows: 5,
			TrailingRows:   4,
			BombChance:     0.01,
			HealChance:     0.02,
			Biomes: []Biome{
				{Name: "topsoil", MaxDepth: 100, RockChance: 0.20, OreChance: 0.05, HardChance: 0},
				{Name: "bedrock", MaxDepth: 300, RockChance: 0.30, OreChance: 0.08, HardChance: 0.15},
				{Name: "core", MaxDepth: 0, RockChance: 0.40, OreChance: 0.15, HardChance: 0.30},
			},
		},
		Player: PlayerConfig{
			SizeRatio:    0.8,
			StartRow:     2,
			Speed:        4,
			BoostSpeed:   4,
			MaxLife:      3,
			MaxBombs:     3,
			StartBombs:   1,
			RespawnRows:  3,
			SpeedPerTier: 0.15,
		},
		Scroll: ScrollConfig{
			InitialSpeed:    1.0,
			DepthFactor:     0.005,
			BoostMultiplier: 2.0,
		},
		Fever: FeverConfig{
			Interval:      100,
			BaseTicks:     300, // 5 seconds at 60fps
			TicksPerLevel: 60,
		},
		Bomb: BombConfig{
			RadiusTiles:   5,
			CooldownTicks: 30,
		},
		Magnet: MagnetConfig{
			DetectTilesPerLevel: 2,
			CaptureTiles:        1.25,
		},
		Moles: MoleConfig{
			Width:       24,
			Height:      24,
			SpeedMin:    2,
			SpeedMax:    3,
			Margin:      50,
			SpawnOffset: 50,
			BaseChance:  0.005,
			DepthChance: 0.00001,
		},
		Economy: EconomyConfig{
			AmethystValue:     5,
			DepthBonusDivisor: 10,
			HighScoreRetain:   5,
			Upgrades: map[string]UpgradeSpec{
				"DRILL_SPEED": {Label: "Drill Speed", Description: "Steer and boost faster", BaseCost: 50, Factor: 1.5, MaxLevel: 5},
				"MAX_HP":      {Label: "Battery Pack", Description: "One more life per level", BaseCost: 100, Factor: 2.0, MaxLevel: 3},
				"BOMB_MAX":    {Label: "Bomb Rack", Description: "Carry one more bomb per level", BaseCost: 80, Factor: 1.8, MaxLevel: 3},
				"FEVER_TIME":  {Label: "Fever Core", Description: "Fever lasts one second longer per level", BaseCost: 60, Factor: 1.6, MaxLevel: 5},
				"MAGNET":      {Label: "Magnet", Description: "Pull in nearby items", BaseCost: 120, Factor: 1.7, MaxLevel: 3},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			SpeedScale:   1.0,
			SpawnScale:   1.0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultDrillYAML
}
