package drill

import (
	"math/rand"

	"github.com/vovakirdan/drilldown/internal/config"
	"github.com/vovakirdan/drilldown/internal/core"
	"github.com/vovakirdan/drilldown/internal/world"
)

// Mole is a hazard patrolling horizontally across the shaft.
type Mole struct {
	X, Y float64
	W, H float64
	VX   float64
	Dead bool
}

// Bounds returns the hitbox.
func (m *Mole) Bounds() core.RectF {
	return core.NewRectF(m.X, m.Y, m.W, m.H)
}

// MolePool owns live moles and their spawn RNG.
type MolePool struct {
	cfg     config.MoleConfig
	canvasW float64
	canvasH float64
	rng     *rand.Rand
	moles   []*Mole
}

// NewMolePool creates an empty pool.
func NewMolePool(cfg config.MoleConfig, canvasW, canvasH float64, seed int64) *MolePool {
	return &MolePool{
		cfg:     cfg,
		canvasW: canvasW,
		canvasH: canvasH,
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// Moles returns the live moles.
func (mp *MolePool) Moles() []*Mole {
	return mp.moles
}

// Spawn adds a mole just below the viewport. The side is a coin flip; a
// mole from the left walks right and vice versa.
func (mp *MolePool) Spawn(scrollY float64) *Mole {
	m := &Mole{
		Y: scrollY + mp.canvasH - mp.cfg.SpawnOffset,
		W: mp.cfg.Width,
		H: mp.cfg.Height,
	}
	speed := mp.cfg.SpeedMin + mp.rng.Float64()*(mp.cfg.SpeedMax-mp.cfg.SpeedMin)
	if mp.rng.Float64() < 0.5 {
		m.X = -m.W
		m.VX = speed
	} else {
		m.X = mp.canvasW
		m.VX = -speed
	}
	mp.moles = append(mp.moles, m)
	return m
}

// MaybeSpawn rolls chance once and spawns on success.
func (mp *MolePool) MaybeSpawn(chance, scrollY float64) bool {
	if mp.rng.Float64() >= chance {
		return false
	}
	mp.Spawn(scrollY)
	return true
}

// Update moves every mole, marks those past the far edge or scrolled
// above the viewport as dead, and drops dead moles.
func (mp *MolePool) Update(scrollY float64) {
	for _, m := range mp.moles {
		m.X += m.VX
		if m.VX > 0 && m.X > mp.canvasW+mp.cfg.Margin {
			m.Dead = true
		}
		if m.VX < 0 && m.X < -mp.cfg.Margin {
			m.Dead = true
		}
		if m.Y < scrollY-mp.cfg.Margin {
			m.Dead = true
		}
	}
	mp.compact()
}

// Resolve checks every mole against the player. Outside fever a touching
// mole hurts the player and is removed; in fever it is destroyed with a
// reward effect. It returns the number of moles destroyed by fever.
func (mp *MolePool) Resolve(p *Player, w *world.World, scrollY float64, sink core.EffectSink) (kills int) {
	if p.Dead {
		return 0
	}
	pb := p.Bounds()
	for _, m := range mp.moles {
		if m.Dead || !pb.Intersects(m.Bounds()) {
			continue
		}
		m.Dead = true
		cx, cy := m.Bounds().Center()
		if p.Fever {
			kills++
			if sink != nil {
				sink.OnEffect(cx, cy, core.EffectReward)
			}
			continue
		}
		if sink != nil {
			sink.OnEffect(cx, cy, core.EffectDamage)
		}
		p.TakeDamage(w, scrollY)
		pb = p.Bounds()
	}
	mp.compact()
	return kills
}

// Clear removes all moles.
func (mp *MolePool) Clear() {
	mp.moles = mp.moles[:0]
}

func (mp *MolePool) compact() {
	live := mp.moles[:0]
	for _, m := range mp.moles {
		if !m.Dead {
			live = append(live, m)
		}
	}
	for i := len(live); i < len(mp.moles); i++ {
		mp.moles[i] = nil
	}
	mp.moles = live
}
