// Package drill implements the digging game: a drill falls through an
// endless shaft of dirt and rock while the view scrolls after it. Depth is
// the score; gems collected on the way fund upgrades between runs.
package drill

import (
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/drilldown/internal/config"
	"github.com/vovakirdan/drilldown/internal/core"
	"github.com/vovakirdan/drilldown/internal/registry"
	"github.com/vovakirdan/drilldown/internal/upgrade"
	"github.com/vovakirdan/drilldown/internal/world"
)

// Mode selects how the world seed is chosen.
type Mode int

const (
	ModeClassic Mode = iota // Seed from the runtime config
	ModeDaily               // Seed from the UTC date
)

// RunResult is handed over when a run ends.
type RunResult struct {
	ID     string
	GameID string
	Seed   int64
	Score  int // Depth reached
	Money  int // Gems collected during the run
	Bonus  int // Depth bonus credited on top
	Ticks  int
}

// Credit is the amount added to the wallet.
func (r RunResult) Credit() int {
	return r.Money + r.Bonus
}

// Snapshot captures state for determinism checks and debugging.
type Snapshot struct {
	Tick    int
	Score   int
	ScrollY float64
	PlayerX float64
	PlayerY float64
	HP      int
	Bombs   int
	Money   int
	Fever   bool
	Moles   int
	Rows    int
}

// Game implements the drill game logic.
type Game struct {
	mode Mode
	svc  registry.Services
	now  func() time.Time
	log  *log.Logger

	cfg        config.DrillConfig
	runtime    core.RuntimeConfig
	difficulty *config.DifficultyManager
	seed       int64

	world     *world.World
	player    *Player
	moles     *MolePool
	fever     *Fever
	particles *Particles
	sink      core.EffectSink
	bomb      Bomb
	stats     Stats

	scrollY     float64
	scrollSpeed float64
	score       int
	tickCount   int
	kills       int
	magnetSeen  int

	paused   bool
	showHelp bool
	gameOver bool
	result   *RunResult

	highScores []int
}

// New creates a classic mode game.
func New(svc registry.Services) *Game {
	return newGame(ModeClassic, svc)
}

// NewDaily creates a daily mode game.
func NewDaily(svc registry.Services) *Game {
	return newGame(ModeDaily, svc)
}

func newGame(mode Mode, svc registry.Services) *Game {
	g := &Game{mode: mode, svc: svc, now: time.Now, log: svc.Logger}
	if g.log == nil {
		g.log = log.New(io.Discard)
	}
	return g
}

// ID returns the unique identifier for this mode.
func (g *Game) ID() string {
	if g.mode == ModeDaily {
		return "drill_daily"
	}
	return "drill"
}

// Title returns the display name for this mode.
func (g *Game) Title() string {
	if g.mode == ModeDaily {
		return "Drilldown (Daily)"
	}
	return "Drilldown"
}

// Reset builds a fresh run from the seed and the current upgrade levels.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if g.svc.Config != nil {
		g.cfg = *g.svc.Config
	} else {
		g.cfg = config.DefaultDrillConfig()
	}
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	g.seed = runtime.Seed
	if g.mode == ModeDaily {
		g.seed = registry.DailySeed(g.now())
	}

	g.stats = StatsFor(g.cfg, g.levels())
	g.world = world.New(g.cfg.World, g.seed)
	g.player = NewPlayer(g.cfg, g.stats.MaxHP, g.stats.MaxBombs)
	g.moles = NewMolePool(g.cfg.Moles, g.world.Width(), g.world.Height(), g.seed+1)
	g.fever = NewFever(g.cfg.Fever.Interval)
	g.particles = NewParticles(g.seed + 2)
	g.bomb = Bomb{
		Radius:   g.cfg.Bomb.RadiusTiles * g.world.TileSize(),
		Cooldown: g.cfg.Bomb.CooldownTicks,
	}

	sinks := make(core.MultiSink, 0, len(g.svc.Sinks)+1)
	sinks = append(sinks, g.particles)
	sinks = append(sinks, g.svc.Sinks...)
	g.sink = sinks

	g.scrollY = 0
	g.scrollSpeed = g.cfg.Scroll.InitialSpeed
	g.score = 0
	g.tickCount = 0
	g.kills = 0
	g.magnetSeen = 0
	g.paused = false
	g.gameOver = false
	g.result = nil

	g.log.Debug("run started", "mode", g.ID(), "seed", g.seed, "hp", g.player.MaxHP, "bombs", g.player.MaxBombs)
}

// levels returns the economy as a level source, or nil without one.
func (g *Game) levels() levels {
	if g.svc.Economy == nil {
		return nil
	}
	return g.svc.Economy
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionHelp) {
		g.showHelp = !g.showHelp
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	tile := g.world.TileSize()

	depth := int(math.Floor(g.scrollY / tile))
	if depth > g.score {
		g.score = depth
	}

	// Speed, fever length and magnet reach follow purchases made mid-session.
	g.stats = StatsFor(g.cfg, g.levels())

	boosting := in.Has(core.ActionDown)
	speed := g.difficulty.ScrollSpeed(g.cfg.Scroll, depth)
	if boosting {
		speed *= g.cfg.Scroll.BoostMultiplier
	}
	g.scrollSpeed = speed
	g.scrollY += speed

	g.updateFever()

	g.moles.MaybeSpawn(g.difficulty.SpawnChance(g.cfg.Moles, g.score), g.scrollY)

	g.world.EnsureGenerated(g.scrollY)

	g.updatePlayer(in, boosting)

	g.moles.Update(g.scrollY)
	hpBefore := g.player.HP
	g.kills += g.moles.Resolve(g.player, g.world, g.scrollY, g.sink)
	g.logLifeLost(hpBefore, "mole")

	g.particles.Update()

	if g.player.Dead {
		g.finish()
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) updateFever() {
	if g.fever.Active {
		if g.fever.Tick() {
			g.log.Debug("fever ended", "depth", g.score)
		}
	} else if g.fever.MaybeTrigger(g.score, g.stats.FeverTicks) {
		g.log.Debug("fever started", "depth", g.score, "ticks", g.fever.Remaining)
	}
	g.player.Fever = g.fever.Active
}

func (g *Game) updatePlayer(in core.InputFrame, boosting bool) {
	p := g.player
	if p.Dead {
		return
	}

	if in.Has(core.ActionLeft) {
		p.Move(-g.stats.Speed, 0, g.world, g.sink)
	}
	if in.Has(core.ActionRight) {
		p.Move(g.stats.Speed, 0, g.world, g.sink)
	}

	fall := g.scrollSpeed
	if boosting {
		fall += g.stats.BoostSpeed
	}
	p.Move(0, fall, g.world, g.sink)

	p.TickCooldown()
	if in.Has(core.ActionPrimary) {
		p.UseBomb(g.bomb, g.world, g.sink)
	}

	g.magnetSeen, _ = p.ApplyMagnet(g.world, g.stats.MagnetDetect, g.stats.MagnetCapture, g.sink)

	if p.FellOff(g.scrollY) {
		hpBefore := p.HP
		p.HandleDeath(g.world, g.scrollY)
		g.logLifeLost(hpBefore, "fell")
	}
}

func (g *Game) logLifeLost(hpBefore int, cause string) {
	if g.player.HP >= hpBefore {
		return
	}
	if g.player.Dead {
		g.log.Debug("drill destroyed", "cause", cause, "depth", g.score)
		return
	}
	g.log.Debug("respawned", "cause", cause, "lives", g.player.HP)
}

// finish settles the run exactly once: the wallet is credited with the
// gems collected plus the depth bonus.
func (g *Game) finish() {
	if g.result != nil {
		return
	}
	bonus := 0
	if d := g.cfg.Economy.DepthBonusDivisor; d > 0 {
		bonus = g.score / d
	}
	res := RunResult{
		ID:     uuid.NewString(),
		GameID: g.ID(),
		Seed:   g.seed,
		Score:  g.score,
		Money:  g.player.Money,
		Bonus:  bonus,
		Ticks:  g.tickCount,
	}
	if g.svc.Economy != nil {
		g.svc.Economy.AddMoney(res.Credit())
	}
	g.result = &res
	g.gameOver = true
	g.log.Debug("game over", "score", res.Score, "money", res.Money, "bonus", res.Bonus, "run", res.ID)
}

// Result returns the settled run once the game is over.
func (g *Game) Result() (RunResult, bool) {
	if g.result == nil {
		return RunResult{}, false
	}
	return *g.result, true
}

// SetHighScores sets the scores listed on the game over screen.
func (g *Game) SetHighScores(scores []int) {
	g.highScores = append(g.highScores[:0], scores...)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	money := 0
	if g.result != nil {
		money = g.result.Credit()
	} else if g.player != nil {
		money = g.player.Money
	}
	return core.GameState{
		Score:    g.score,
		Currency: money,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Snapshot returns a copy of the observable state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:    g.tickCount,
		Score:   g.score,
		ScrollY: g.scrollY,
		PlayerX: g.player.X,
		PlayerY: g.player.Y,
		HP:      g.player.HP,
		Bombs:   g.player.Bombs,
		Money:   g.player.Money,
		Fever:   g.fever.Active,
		Moles:   len(g.moles.Moles()),
		Rows:    g.world.RowCount(),
	}
}

// World returns the tile grid.
func (g *Game) World() *world.World { return g.world }

// Player returns the drill.
func (g *Game) Player() *Player { return g.player }

// Moles returns the mole pool.
func (g *Game) Moles() *MolePool { return g.moles }

// Fever returns the fever tracker.
func (g *Game) Fever() *Fever { return g.fever }

// ScrollY returns the world pixel Y of the viewport top.
func (g *Game) ScrollY() float64 { return g.scrollY }

// Seed returns the seed of the current run.
func (g *Game) Seed() int64 { return g.seed }

// Upgrades returns the economy, which may be nil.
func (g *Game) Upgrades() *upgrade.Economy { return g.svc.Economy }

// Register the modes with the registry
func init() {
	registry.Register("drill", func(svc registry.Services) registry.Game {
		return New(svc)
	})
	registry.Register("drill_daily", func(svc registry.Services) registry.Game {
		return NewDaily(svc)
	})
}
