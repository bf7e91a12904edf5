package drill

import (
	"math/rand"

	"github.com/vovakirdan/drilldown/internal/core"
)

// Cosmetic particle tuning.
const (
	ParticlesPerEffect = 5
	ParticleGravity    = 0.2
	particleMinLife    = 30
	particleLifeSpread = 20
)

// Particle is a short-lived debris fleck. It has no effect on gameplay.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Life   int
	Tag    core.EffectTag
}

// Particles is an EffectSink that spawns debris for every effect.
type Particles struct {
	rng   *rand.Rand
	items []Particle
}

// NewParticles creates a particle system with its own RNG stream.
func NewParticles(seed int64) *Particles {
	return &Particles{rng: rand.New(rand.NewSource(seed))}
}

// OnEffect spawns a burst at (x, y).
func (ps *Particles) OnEffect(x, y float64, tag core.EffectTag) {
	for i := 0; i < ParticlesPerEffect; i++ {
		ps.items = append(ps.items, Particle{
			X:    x,
			Y:    y,
			VX:   (ps.rng.Float64() - 0.5) * 4,
			VY:   (ps.rng.Float64()-0.5)*4 - 2, // upward bias
			Life: particleMinLife + ps.rng.Intn(particleLifeSpread+1),
			Tag:  tag,
		})
	}
}

// Update advances and expires particles.
func (ps *Particles) Update() {
	live := ps.items[:0]
	for _, p := range ps.items {
		p.X += p.VX
		p.Y += p.VY
		p.VY += ParticleGravity
		p.Life--
		if p.Life > 0 {
			live = append(live, p)
		}
	}
	ps.items = live
}

// Items returns the live particles.
func (ps *Particles) Items() []Particle {
	return ps.items
}

// Clear removes all particles.
func (ps *Particles) Clear() {
	ps.items = ps.items[:0]
}
