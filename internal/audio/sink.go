package audio

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/drilldown/internal/core"
)

// SampleRate is the speaker rate.
const SampleRate = beep.SampleRate(44100)

// MinGap is the shortest interval between two sounds of the same tag.
// Digging and blasts emit many effects per tick; one sound covers them.
const MinGap = 60 * time.Millisecond

// Sound returns the sound of an effect tag, or nil for silent tags.
func Sound(tag core.EffectTag, rate beep.SampleRate) beep.Streamer {
	ms := time.Millisecond
	switch tag {
	case core.EffectDirt:
		return note(180, 30*ms, WaveNoise, 0.12, rate)
	case core.EffectRock:
		return note(90, 70*ms, WaveNoise, 0.3, rate)
	case core.EffectSpark:
		return note(1800, 40*ms, WaveSquare, 0.15, rate)
	case core.EffectHeal:
		return beep.Seq(note(660, 70*ms, WaveSine, 0.4, rate), note(880, 110*ms, WaveSine, 0.4, rate))
	case core.EffectBomb:
		return note(520, 90*ms, WaveSine, 0.4, rate)
	case core.EffectAmethyst:
		return beep.Seq(note(988, 60*ms, WaveSquare, 0.25, rate), note(1319, 160*ms, WaveSquare, 0.25, rate))
	case core.EffectExplosion:
		return beep.Mix(
			note(60, 300*ms, WaveSaw, 0.4, rate),
			note(200, 250*ms, WaveNoise, 0.5, rate),
		)
	case core.EffectReward:
		return note(880, 80*ms, WaveSquare, 0.25, rate)
	case core.EffectDamage:
		return note(110, 160*ms, WaveSaw, 0.45, rate)
	default:
		return nil
	}
}

// Sink is a core.EffectSink that plays a sound per effect. Until Init
// succeeds it drops everything, so a machine without audio still runs.
type Sink struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	mixer  *beep.Mixer
	play   func(beep.Streamer)
	last   map[core.EffectTag]time.Time
	now    func() time.Time
	logger *log.Logger
}

// NewSink creates a silent sink. logger may be nil.
func NewSink(logger *log.Logger) *Sink {
	return &Sink{
		rate:   SampleRate,
		mixer:  &beep.Mixer{},
		last:   make(map[core.EffectTag]time.Time),
		now:    time.Now,
		logger: logger,
	}
}

// Init opens the speaker. On failure the sink stays silent.
func (s *Sink) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.play != nil {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(50*time.Millisecond)); err != nil {
		if s.logger != nil {
			s.logger.Warn("audio disabled", "err", err)
		}
		return err
	}
	speaker.Play(s.mixer)
	s.play = func(st beep.Streamer) {
		speaker.Lock()
		s.mixer.Add(st)
		speaker.Unlock()
	}
	return nil
}

// OnEffect implements core.EffectSink.
func (s *Sink) OnEffect(_, _ float64, tag core.EffectTag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.play == nil {
		return
	}
	now := s.now()
	if last, ok := s.last[tag]; ok && now.Sub(last) < MinGap {
		return
	}
	snd := Sound(tag, s.rate)
	if snd == nil {
		return
	}
	s.last[tag] = now
	s.play(snd)
}

// Close stops playback.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.play != nil {
		speaker.Clear()
		s.play = nil
	}
}

var _ core.EffectSink = (*Sink)(nil)
