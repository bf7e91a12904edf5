package world

import (
	"math/rand"

	"github.com/vovakirdan/drilldown/internal/config"
)

// generator produces rows from a seeded source. Each row depends only on
// its index and the RNG stream, never on neighboring rows.
type generator struct {
	cfg  config.WorldConfig
	cols int
	rng  *rand.Rand
}

func newGenerator(cfg config.WorldConfig, cols int, seed int64) *generator {
	return &generator{
		cfg:  cfg,
		cols: cols,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// biome returns the band for the given row depth.
func (g *generator) biome(depth int) config.Biome {
	for _, b := range g.cfg.Biomes {
		if b.MaxDepth == 0 || depth <= b.MaxDepth {
			return b
		}
	}
	return g.cfg.Biomes[len(g.cfg.Biomes)-1]
}

// row generates the row at the given depth.
func (g *generator) row(depth int) []Tile {
	b := g.biome(depth)
	row := make([]Tile, g.cols)
	hasPath := false

	for c := range row {
		if g.rng.Float64() < b.RockChance {
			switch {
			case g.rng.Float64() < b.OreChance:
				row[c] = ItemAmethyst
				hasPath = true
			case g.rng.Float64() < b.HardChance:
				row[c] = HardRock
			default:
				row[c] = Rock
			}
			continue
		}

		switch r := g.rng.Float64(); {
		case r < g.cfg.BombChance:
			row[c] = ItemBomb
		case r < g.cfg.BombChance+g.cfg.HealChance:
			row[c] = ItemHeal
		default:
			row[c] = Dirt
		}
		hasPath = true
	}

	if !hasPath {
		row[g.rng.Intn(g.cols)] = Dirt
	}
	return row
}
