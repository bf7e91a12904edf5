// Package config provides YAML-based game configuration loading and
// difficulty management for drilldown.
package config

// DrillConfig contains all configuration for the digging game.
type DrillConfig struct {
	World      WorldConfig      `yaml:"world"`
	Player     PlayerConfig     `yaml:"player"`
	Scroll     ScrollConfig     `yaml:"scroll"`
	Fever      FeverConfig      `yaml:"fever"`
	Bomb       BombConfig       `yaml:"bomb"`
	Magnet     MagnetConfig     `yaml:"magnet"`
	Moles      MoleConfig       `yaml:"moles"`
	Economy    EconomyConfig    `yaml:"economy"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig defines the tile grid and the row generator.
type WorldConfig struct {
	CanvasWidth    int     `yaml:"canvas_width"`     // Logical playfield width in pixels
	CanvasHeight   int     `yaml:"canvas_height"`    // Logical playfield height in pixels
	TileSize       int     `yaml:"tile_size"`        // Pixels per tile edge
	StartClearRows int     `yaml:"start_clear_rows"` // Rows emptied at the top of a new world
	TrailingRows   int     `yaml:"trailing_rows"`    // Rows kept above the viewport before eviction
	Biomes         []Biome `yaml:"biomes"`
	BombChance     float64 `yaml:"bomb_chance"`
	HealChance     float64 `yaml:"heal_chance"`
}

// Biome is one depth band of the generator. Bands are matched in order;
// the first band whose MaxDepth is >= the row depth wins, and a MaxDepth
// of 0 matches everything.
type Biome struct {
	Name       string  `yaml:"name"`
	MaxDepth   int     `yaml:"max_depth"`
	RockChance float64 `yaml:"rock_chance"`
	OreChance  float64 `yaml:"ore_chance"`  // Share of rock rolls that become amethyst
	HardChance float64 `yaml:"hard_chance"` // Share of remaining rock rolls that become hard rock
}

// PlayerConfig defines drill parameters before upgrades.
type PlayerConfig struct {
	SizeRatio    float64 `yaml:"size_ratio"`     // Hitbox edge as a fraction of the tile size
	StartRow     float64 `yaml:"start_row"`      // Spawn height in tiles
	Speed        float64 `yaml:"speed"`          // Horizontal pixels per tick
	BoostSpeed   float64 `yaml:"boost_speed"`    // Extra fall pixels per tick while boosting
	MaxLife      int     `yaml:"max_life"`       // Base HP cap
	MaxBombs     int     `yaml:"max_bombs"`      // Base bomb cap
	StartBombs   int     `yaml:"start_bombs"`    // Bombs at the start of a run
	RespawnRows  float64 `yaml:"respawn_rows"`   // Respawn depth below the viewport top, in tiles
	SpeedPerTier float64 `yaml:"speed_per_tier"` // Speed multiplier gained per drill upgrade level
}

// ScrollConfig defines the auto-scroll curve.
type ScrollConfig struct {
	InitialSpeed    float64 `yaml:"initial_speed"`    // Pixels per tick at depth 0
	DepthFactor     float64 `yaml:"depth_factor"`     // Extra pixels per tick per row of depth
	BoostMultiplier float64 `yaml:"boost_multiplier"` // Scroll multiplier while boosting
}

// FeverConfig defines the depth-milestone invincibility window.
type FeverConfig struct {
	Interval      int `yaml:"interval"`        // Depth rows between milestones
	BaseTicks     int `yaml:"base_ticks"`      // Duration before upgrades
	TicksPerLevel int `yaml:"ticks_per_level"` // Duration added per fever upgrade level
}

// BombConfig defines the bomb ability.
type BombConfig struct {
	RadiusTiles   float64 `yaml:"radius_tiles"`
	CooldownTicks int     `yaml:"cooldown_ticks"`
}

// MagnetConfig defines the passive magnet.
type MagnetConfig struct {
	DetectTilesPerLevel float64 `yaml:"detect_tiles_per_level"` // Detection radius per magnet level
	CaptureTiles        float64 `yaml:"capture_tiles"`          // Fixed capture radius
}

// MoleConfig defines the enemy pool.
type MoleConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	SpeedMin    float64 `yaml:"speed_min"`
	SpeedMax    float64 `yaml:"speed_max"`
	Margin      float64 `yaml:"margin"`       // Despawn margin past the screen edges and viewport top
	SpawnOffset float64 `yaml:"spawn_offset"` // Distance above the viewport bottom where moles appear
	BaseChance  float64 `yaml:"base_chance"`  // Spawn probability per tick at depth 0
	DepthChance float64 `yaml:"depth_chance"` // Added spawn probability per row of depth
}

// EconomyConfig defines the persistent upgrade economy.
type EconomyConfig struct {
	AmethystValue     int                    `yaml:"amethyst_value"`
	DepthBonusDivisor int                    `yaml:"depth_bonus_divisor"` // Currency credited per this many rows of depth
	HighScoreRetain   int                    `yaml:"high_score_retain"`
	Upgrades          map[string]UpgradeSpec `yaml:"upgrades"`
}

// UpgradeSpec is the cost curve of one upgrade kind.
type UpgradeSpec struct {
	Label       string  `yaml:"label"`
	Description string  `yaml:"description"`
	BaseCost    int     `yaml:"base_cost"`
	Factor      float64 `yaml:"factor"`
	MaxLevel    int     `yaml:"max_level"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	// SpeedScale multiplies the depth-driven scroll acceleration at level 1.0.
	SpeedScale float64 `yaml:"speed_scale"`
	// SpawnScale multiplies the mole spawn chance at level 1.0.
	SpawnScale float64 `yaml:"spawn_scale"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
