package drill

import (
	"github.com/vovakirdan/drilldown/internal/config"
	"github.com/vovakirdan/drilldown/internal/core"
	"github.com/vovakirdan/drilldown/internal/world"
)

// Player is the drill.
type Player struct {
	X, Y float64 // Top-left corner in world pixels
	W, H float64

	HP, MaxHP       int
	Bombs, MaxBombs int
	Money           int // Collected this run
	Dead            bool
	Fever           bool

	bombCooldown int

	canvasW       float64
	tile          float64
	respawnRows   float64
	amethystValue int
}

// NewPlayer creates a player at the start position with full HP.
// HP and bomb caps are fixed for the lifetime of the player.
func NewPlayer(cfg config.DrillConfig, maxHP, maxBombs int) *Player {
	tile := float64(cfg.World.TileSize)
	size := tile * cfg.Player.SizeRatio
	canvasW := float64(cfg.World.CanvasWidth)

	bombs := cfg.Player.StartBombs
	if bombs > maxBombs {
		bombs = maxBombs
	}

	return &Player{
		X:             canvasW/2 - size/2,
		Y:             tile * cfg.Player.StartRow,
		W:             size,
		H:             size,
		HP:            maxHP,
		MaxHP:         maxHP,
		Bombs:         bombs,
		MaxBombs:      maxBombs,
		canvasW:       canvasW,
		tile:          tile,
		respawnRows:   cfg.Player.RespawnRows,
		amethystValue: cfg.Economy.AmethystValue,
	}
}

// Bounds returns the hitbox.
func (p *Player) Bounds() core.RectF {
	return core.NewRectF(p.X, p.Y, p.W, p.H)
}

// Center returns the hitbox center.
func (p *Player) Center() (float64, float64) {
	return p.Bounds().Center()
}

// Move tries to shift the player by (dx, dy). The four corners of the
// candidate hitbox are sampled in order TL, TR, BL, BR:
//
//   - solid tiles block the whole move outside fever. Sampling stops at the
//     first blocking corner, so later corners neither dig nor pick up.
//     Hard rock is degraded to rock even though it still blocks.
//   - in fever, solid tiles are dug and do not block.
//   - dirt marks the move as digging.
//   - items are remembered; the last one sampled is collected.
//
// On success the item is collected, every dirt corner is dug and the
// position is committed and clamped to the canvas. Move reports whether
// the position changed.
func (p *Player) Move(dx, dy float64, w *world.World, sink core.EffectSink) bool {
	nx, ny := p.X+dx, p.Y+dy
	corners := core.NewRectF(nx, ny, p.W, p.H).Corners()

	blocked := false
	digging := false
	var item world.Tile
	var itemX, itemY float64

	for _, c := range corners {
		t := w.TileAt(c[0], c[1])
		switch {
		case t.IsSolid() && p.Fever:
			// Walls are outside the grid and cannot be dug.
			if w.Dig(c[0], c[1]) {
				p.emitCell(w, c[0], c[1], core.EffectRock, sink)
			}
		case t.IsSolid():
			if t == world.HardRock && w.Degrade(c[0], c[1]) {
				p.emitCell(w, c[0], c[1], core.EffectSpark, sink)
			}
			blocked = true
		case t == world.Dirt:
			digging = true
		case t.IsItem():
			item, itemX, itemY = t, c[0], c[1]
		}
		if blocked {
			break
		}
	}

	if blocked {
		return false
	}

	if item != world.Empty {
		p.collect(w, itemX, itemY, item, sink)
	}

	if digging {
		for _, c := range corners {
			if w.TileAt(c[0], c[1]) == world.Dirt {
				w.Dig(c[0], c[1])
				p.emitCell(w, c[0], c[1], core.EffectDirt, sink)
			}
		}
	}

	p.X, p.Y = nx, ny
	p.X = core.ClampF(p.X, 0, p.canvasW-p.W)
	return true
}

// collect consumes an item tile and applies its effect within caps.
// The tile is removed even when the cap is already reached.
func (p *Player) collect(w *world.World, x, y float64, t world.Tile, sink core.EffectSink) {
	w.Dig(x, y)

	var tag core.EffectTag
	switch t {
	case world.ItemHeal:
		if p.HP < p.MaxHP {
			p.HP++
		}
		tag = core.EffectHeal
	case world.ItemBomb:
		if p.Bombs < p.MaxBombs {
			p.Bombs++
		}
		tag = core.EffectBomb
	case world.ItemAmethyst:
		p.Money += p.amethystValue
		tag = core.EffectAmethyst
	default:
		return
	}
	p.emitCell(w, x, y, tag, sink)
}

// emitCell reports an effect at the center of the cell containing (x, y).
func (p *Player) emitCell(w *world.World, x, y float64, tag core.EffectTag, sink core.EffectSink) {
	if sink == nil {
		return
	}
	col, row := w.CellOf(x, y)
	cx, cy := w.CellCenter(col, row)
	sink.OnEffect(cx, cy, tag)
}

// FellOff reports whether the player scrolled out past the viewport top.
func (p *Player) FellOff(scrollY float64) bool {
	return p.Y < scrollY-p.H
}

// HandleDeath spends a life. Fever makes the player immune. With more than
// one life left the player respawns, otherwise the run ends. It reports
// whether a life was lost.
func (p *Player) HandleDeath(w *world.World, scrollY float64) bool {
	if p.Fever || p.Dead {
		return false
	}
	if p.HP > 1 {
		p.HP--
		p.Respawn(w, scrollY)
		return true
	}
	p.HP = 0
	p.Dead = true
	return true
}

// TakeDamage applies a hazard hit.
func (p *Player) TakeDamage(w *world.World, scrollY float64) bool {
	if p.Fever {
		return false
	}
	return p.HandleDeath(w, scrollY)
}

// Respawn places the player centered a few tiles below the viewport top and
// clears the 3x3 block around its center.
func (p *Player) Respawn(w *world.World, scrollY float64) {
	p.X = p.canvasW/2 - p.W/2
	p.Y = scrollY + p.tile*p.respawnRows

	cx, cy := p.Center()
	for r := -1; r <= 1; r++ {
		for c := -1; c <= 1; c++ {
			w.Dig(cx+float64(c)*p.tile, cy+float64(r)*p.tile)
		}
	}
}
