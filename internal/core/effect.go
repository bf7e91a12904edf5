package core

// EffectTag is the semantic color of a simulation effect.
type EffectTag uint8

const (
	EffectDirt EffectTag = iota
	EffectRock
	EffectSpark
	EffectHeal
	EffectBomb
	EffectAmethyst
	EffectExplosion
	EffectReward
	EffectDamage
)

// String returns the tag name.
func (t EffectTag) String() string {
	switch t {
	case EffectDirt:
		return "dirt"
	case EffectRock:
		return "rock"
	case EffectSpark:
		return "spark"
	case EffectHeal:
		return "heal"
	case EffectBomb:
		return "bomb"
	case EffectAmethyst:
		return "amethyst"
	case EffectExplosion:
		return "explosion"
	case EffectReward:
		return "reward"
	case EffectDamage:
		return "damage"
	default:
		return "unknown"
	}
}

// Color returns the screen color used for the tag.
func (t EffectTag) Color() Color {
	switch t {
	case EffectDirt:
		return ColorBrown
	case EffectRock, EffectSpark:
		return ColorWhite
	case EffectHeal, EffectDamage:
		return ColorRed
	case EffectBomb, EffectExplosion:
		return ColorYellow
	case EffectAmethyst:
		return ColorPurple
	case EffectReward:
		return ColorGreen
	default:
		return ColorDefault
	}
}

// EffectSink receives effects at world pixel coordinates whenever the
// simulation consumes a tile, collects an item or deals damage.
type EffectSink interface {
	OnEffect(x, y float64, tag EffectTag)
}

// EffectFunc adapts a function to EffectSink.
type EffectFunc func(x, y float64, tag EffectTag)

// OnEffect calls f.
func (f EffectFunc) OnEffect(x, y float64, tag EffectTag) { f(x, y, tag) }

// MultiSink fans an effect out to every sink in order. Nil entries are skipped.
type MultiSink []EffectSink

// OnEffect forwards to each sink.
func (m MultiSink) OnEffect(x, y float64, tag EffectTag) {
	for _, s := range m {
		if s != nil {
			s.OnEffect(x, y, tag)
		}
	}
}

// NopSink discards effects.
type NopSink struct{}

// OnEffect does nothing.
func (NopSink) OnEffect(float64, float64, EffectTag) {}
