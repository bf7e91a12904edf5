package drill

import (
	"github.com/vovakirdan/drilldown/internal/config"
	"github.com/vovakirdan/drilldown/internal/core"
	"github.com/vovakirdan/drilldown/internal/world"
)

type effect struct {
	x, y float64
	tag  core.EffectTag
}

// recorder collects effects for assertions.
type recorder struct {
	events []effect
}

func (r *recorder) OnEffect(x, y float64, tag core.EffectTag) {
	r.events = append(r.events, effect{x, y, tag})
}

func (r *recorder) count(tag core.EffectTag) int {
	n := 0
	for _, e := range r.events {
		if e.tag == tag {
			n++
		}
	}
	return n
}

// emptyWorld returns a default world with every retained cell emptied.
func emptyWorld() (config.DrillConfig, *world.World) {
	cfg := config.DefaultDrillConfig()
	w := world.New(cfg.World, 1)
	for r := w.Offset(); r < w.RowCount(); r++ {
		for c := 0; c < w.Cols(); c++ {
			w.SetCell(c, r, world.Empty)
		}
	}
	return cfg, w
}

// centeredPlayer returns a player whose center sits on the center of cell (col, row).
func centeredPlayer(cfg config.DrillConfig, w *world.World, col, row int) *Player {
	p := NewPlayer(cfg, 3, 3)
	cx, cy := w.CellCenter(col, row)
	p.X = cx - p.W/2
	p.Y = cy - p.H/2
	return p
}
