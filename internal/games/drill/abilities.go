package drill

import (
	"github.com/vovakirdan/drilldown/internal/core"
	"github.com/vovakirdan/drilldown/internal/world"
)

// Bomb holds the blast parameters in pixels and ticks.
type Bomb struct {
	Radius   float64
	Cooldown int
}

// UseBomb spends a charge and clears every dirt, rock and hard rock cell
// whose center lies within the Euclidean blast radius of the player center.
// It is a no-op without charges or while the cooldown runs.
func (p *Player) UseBomb(b Bomb, w *world.World, sink core.EffectSink) bool {
	if p.Bombs <= 0 || p.bombCooldown > 0 {
		return false
	}
	p.Bombs--
	p.bombCooldown = b.Cooldown

	cx, cy := p.Center()
	w.ForEachInRadius(cx, cy, b.Radius, func(col, row int, t world.Tile) {
		if !t.IsDestructible() {
			return
		}
		if w.DigCell(col, row) && sink != nil {
			x, y := w.CellCenter(col, row)
			sink.OnEffect(x, y, core.EffectExplosion)
		}
	})
	return true
}

// BombCooldown returns the ticks left before the next bomb.
func (p *Player) BombCooldown() int {
	return p.bombCooldown
}

// TickCooldown advances ability cooldowns by one tick.
func (p *Player) TickCooldown() {
	if p.bombCooldown > 0 {
		p.bombCooldown--
	}
}

// ApplyMagnet pulls items toward the player. Items within detect are
// counted; those also within capture are collected as if touched. The two
// radii are independent: only detect grows with the upgrade level.
func (p *Player) ApplyMagnet(w *world.World, detect, capture float64, sink core.EffectSink) (detected, captured int) {
	if detect <= 0 {
		return 0, 0
	}
	cx, cy := p.Center()
	w.ForEachInRadius(cx, cy, detect, func(col, row int, t world.Tile) {
		if !t.IsItem() {
			return
		}
		detected++
		x, y := w.CellCenter(col, row)
		if core.Dist(cx, cy, x, y) <= capture {
			p.collect(w, x, y, t, sink)
			captured++
		}
	})
	return detected, captured
}
