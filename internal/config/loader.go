package config

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the file name searched in the user and local config dirs.
const ConfigFile = "drill.yaml"

// LoadDrill loads the drill configuration.
// Search order: customPath -> ~/.drilldown/configs/drill.yaml -> ./configs/drill.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
// A user or local file that cannot be used is logged and skipped.
func LoadDrill(customPath string) (DrillConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultDrillConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultDrillConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath(ConfigFile); userCfgPath != "" {
		if cfg, ok := loadOptional(userCfgPath); ok {
			return cfg, nil
		}
	}

	if cfg, ok := loadOptional(filepath.Join("configs", ConfigFile)); ok {
		return cfg, nil
	}

	cfg, err := parse(defaultDrillYAML)
	if err != nil {
		return DefaultDrillConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// loadOptional loads a config file that may be absent. Anything other
// than absence is logged before the caller moves on.
func loadOptional(path string) (DrillConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warn("skipping unreadable config", "path", path, "error", err)
		}
		return DrillConfig{}, false
	}
	cfg, err := parse(data)
	if err != nil {
		log.Warn("skipping invalid config", "path", path, "error", err)
		return DrillConfig{}, false
	}
	return cfg, true
}

// overlay holds the raw entries of the collections that merge entry by
// entry instead of being replaced wholesale.
type overlay struct {
	World struct {
		Biomes []yaml.Node `yaml:"biomes"`
	} `yaml:"world"`
	Economy struct {
		Upgrades map[string]yaml.Node `yaml:"upgrades"`
	} `yaml:"economy"`
}

// parse decodes YAML over the hardcoded defaults and validates the result.
// Biomes and upgrades are merged field by field into the default entries.
func parse(data []byte) (DrillConfig, error) {
	cfg := DefaultDrillConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	var ov overlay
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return cfg, err
	}
	def := DefaultDrillConfig()
	if ov.World.Biomes != nil {
		biomes, err := mergeBiomes(def.World.Biomes, ov.World.Biomes)
		if err != nil {
			return cfg, err
		}
		cfg.World.Biomes = biomes
	}
	if ov.Economy.Upgrades != nil {
		upgrades, err := mergeUpgrades(def.Economy.Upgrades, ov.Economy.Upgrades)
		if err != nil {
			return cfg, err
		}
		cfg.Economy.Upgrades = upgrades
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// mergeBiomes applies biome entries to the default bands. A named entry
// updates the band of that name, an unnamed one the band at its position;
// anything else adds a band. Bands are then ordered by depth with the
// catch-all last.
func mergeBiomes(base []Biome, nodes []yaml.Node) ([]Biome, error) {
	out := slices.Clone(base)
	for i := range nodes {
		var id struct {
			Name string `yaml:"name"`
		}
		if err := nodes[i].Decode(&id); err != nil {
			return nil, fmt.Errorf("world.biomes[%d]: %w", i, err)
		}

		idx := -1
		switch {
		case id.Name != "":
			idx = slices.IndexFunc(out, func(b Biome) bool { return b.Name == id.Name })
		case i < len(base):
			idx = i
		}

		var b Biome
		if idx >= 0 {
			b = out[idx]
		}
		if err := nodes[i].Decode(&b); err != nil {
			return nil, fmt.Errorf("world.biomes[%d]: %w", i, err)
		}
		if idx >= 0 {
			out[idx] = b
		} else {
			out = append(out, b)
		}
	}

	slices.SortStableFunc(out, func(a, b Biome) int {
		return cmp.Compare(biomeOrder(a), biomeOrder(b))
	})
	return out, nil
}

func biomeOrder(b Biome) int {
	if b.MaxDepth == 0 {
		return math.MaxInt
	}
	return b.MaxDepth
}

// mergeUpgrades applies upgrade entries over the default curves of the
// same kind. Unknown kinds start from zero values.
func mergeUpgrades(base map[string]UpgradeSpec, nodes map[string]yaml.Node) (map[string]UpgradeSpec, error) {
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]UpgradeSpec, len(nodes))
	}
	for kind, node := range nodes {
		u := out[kind]
		if err := node.Decode(&u); err != nil {
			return nil, fmt.Errorf("economy.upgrades.%s: %w", kind, err)
		}
		out[kind] = u
	}
	return out, nil
}

// Validate reports settings the simulation cannot run with.
func (c DrillConfig) Validate() error {
	var errs []error
	if c.World.TileSize <= 0 {
		errs = append(errs, errors.New("world.tile_size must be positive"))
	}
	if c.World.CanvasWidth < c.World.TileSize || c.World.CanvasHeight < c.World.TileSize {
		errs = append(errs, errors.New("world canvas must be at least one tile"))
	}
	errs = append(errs, validateBiomes(c.World.Biomes)...)
	if c.Player.SizeRatio <= 0 || c.Player.SizeRatio > 1 {
		errs = append(errs, errors.New("player.size_ratio must be in (0, 1]"))
	}
	if c.Player.MaxLife < 1 {
		errs = append(errs, errors.New("player.max_life must be at least 1"))
	}
	if c.Fever.Interval <= 0 {
		errs = append(errs, errors.New("fever.interval must be positive"))
	}
	if c.Moles.SpeedMax < c.Moles.SpeedMin {
		errs = append(errs, errors.New("moles.speed_max must not be below speed_min"))
	}
	for kind, u := range c.Economy.Upgrades {
		if u.BaseCost < 0 || u.Factor <= 0 || u.MaxLevel < 0 {
			errs = append(errs, fmt.Errorf("economy.upgrades.%s has an invalid cost curve", kind))
		}
	}
	return errors.Join(errs...)
}

// validateBiomes checks that max depths strictly increase and that exactly
// one catch-all band (max_depth 0) closes the table.
func validateBiomes(biomes []Biome) []error {
	if len(biomes) == 0 {
		return []error{errors.New("world.biomes must not be empty")}
	}
	var errs []error
	last := len(biomes) - 1
	for i, b := range biomes {
		switch {
		case b.MaxDepth < 0:
			errs = append(errs, fmt.Errorf("world.biomes[%d].max_depth must not be negative", i))
		case b.MaxDepth == 0 && i != last:
			errs = append(errs, fmt.Errorf("world.biomes[%d] is a catch-all before the last band", i))
		case i > 0 && b.MaxDepth != 0 && b.MaxDepth <= biomes[i-1].MaxDepth:
			errs = append(errs, fmt.Errorf("world.biomes[%d].max_depth must exceed the previous band", i))
		}
	}
	if biomes[last].MaxDepth != 0 {
		errs = append(errs, errors.New("world.biomes must end with a catch-all band (max_depth 0)"))
	}
	return errs
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".drilldown", "configs", filename)
}

// ApplyDrillPreset modifies the config based on a difficulty preset.
func ApplyDrillPreset(cfg *DrillConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxLife++
	case DifficultyHard:
		cfg.Player.StartBombs = 0
	}
}
