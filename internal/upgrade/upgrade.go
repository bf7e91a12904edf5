// Package upgrade implements the persistent upgrade economy: a wallet and a
// set of leveled upgrades with geometric cost curves. The economy only keeps
// books; the simulation reads levels where it needs them.
package upgrade

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/drilldown/internal/config"
)

// Kind identifies an upgrade. The string value is the persisted key.
type Kind string

const (
	DrillSpeed Kind = "DRILL_SPEED"
	MaxHP      Kind = "MAX_HP"
	BombMax    Kind = "BOMB_MAX"
	FeverTime  Kind = "FEVER_TIME"
	Magnet     Kind = "MAGNET"
)

// Kinds returns all upgrade kinds in shop order.
func Kinds() []Kind {
	return []Kind{DrillSpeed, MaxHP, BombMax, FeverTime, Magnet}
}

var (
	ErrUnknownKind       = errors.New("upgrade: unknown kind")
	ErrMaxLevel          = errors.New("upgrade: already at max level")
	ErrInsufficientFunds = errors.New("upgrade: insufficient funds")
)

// Spec is the cost curve of one upgrade kind.
type Spec struct {
	Label       string
	Description string
	BaseCost    int
	Factor      float64
	MaxLevel    int
}

// SpecsFromConfig builds the spec table from the economy config.
// Entries with keys that are not known kinds are ignored.
func SpecsFromConfig(cfg config.EconomyConfig) map[Kind]Spec {
	specs := make(map[Kind]Spec, len(cfg.Upgrades))
	for _, k := range Kinds() {
		u, ok := cfg.Upgrades[string(k)]
		if !ok {
			continue
		}
		specs[k] = Spec{
			Label:       u.Label,
			Description: u.Description,
			BaseCost:    u.BaseCost,
			Factor:      u.Factor,
			MaxLevel:    u.MaxLevel,
		}
	}
	return specs
}

// State is the persisted part of the economy.
type State struct {
	Money  int
	Levels map[Kind]int
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	levels := make(map[Kind]int, len(s.Levels))
	for k, v := range s.Levels {
		levels[k] = v
	}
	return State{Money: s.Money, Levels: levels}
}

// Store loads and saves economy state.
type Store interface {
	Load() (State, error)
	Save(State) error
}

// Economy is the wallet plus upgrade levels. It is safe for concurrent use.
type Economy struct {
	mu     sync.Mutex
	specs  map[Kind]Spec
	state  State
	store  Store
	logger *log.Logger
}

// New creates an economy backed by store and loads its saved state.
// A failing or corrupt store yields the zero state. logger may be nil.
func New(specs map[Kind]Spec, store Store, logger *log.Logger) *Economy {
	if store == nil {
		store = NewMemoryStore()
	}
	e := &Economy{
		specs:  specs,
		store:  store,
		logger: logger,
		state:  State{Levels: make(map[Kind]int)},
	}
	e.Reload()
	return e
}

// Reload replaces the in-memory state with the store's contents.
func (e *Economy) Reload() {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := e.store.Load()
	if err != nil {
		e.warn("failed to load progress, starting fresh", "err", err)
		e.state = State{Levels: make(map[Kind]int)}
		return
	}
	e.state = e.sanitize(st)
}

// sanitize keeps known kinds only and clamps values into range.
func (e *Economy) sanitize(st State) State {
	out := State{Money: st.Money, Levels: make(map[Kind]int)}
	if out.Money < 0 {
		out.Money = 0
	}
	for k, lvl := range st.Levels {
		spec, ok := e.specs[k]
		if !ok {
			continue
		}
		if lvl < 0 {
			lvl = 0
		}
		if lvl > spec.MaxLevel {
			lvl = spec.MaxLevel
		}
		if lvl > 0 {
			out.Levels[k] = lvl
		}
	}
	return out
}

// Spec returns the cost curve for kind.
func (e *Economy) Spec(kind Kind) (Spec, bool) {
	s, ok := e.specs[kind]
	return s, ok
}

// Money returns the current wallet balance.
func (e *Economy) Money() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Money
}

// Level returns the current level of kind, 0 if unknown.
func (e *Economy) Level(kind Kind) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Levels[kind]
}

// Snapshot returns a copy of the current state.
func (e *Economy) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Cost returns the price of the next level of kind.
// ok is false when the upgrade is maxed or unknown (the cost is infinite).
func (e *Economy) Cost(kind Kind) (cost int, ok bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cost(kind)
}

func (e *Economy) cost(kind Kind) (int, bool) {
	spec, known := e.specs[kind]
	if !known {
		return 0, false
	}
	lvl := e.state.Levels[kind]
	if lvl >= spec.MaxLevel {
		return 0, false
	}
	return int(math.Floor(float64(spec.BaseCost) * math.Pow(spec.Factor, float64(lvl)))), true
}

// CanBuy reports whether the next level of kind is affordable.
func (e *Economy) CanBuy(kind Kind) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	cost, ok := e.cost(kind)
	return ok && e.state.Money >= cost
}

// TryBuy purchases the next level of kind, or reports why it could not.
// On failure the state is unchanged.
func (e *Economy) TryBuy(kind Kind) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, known := e.specs[kind]; !known {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	cost, ok := e.cost(kind)
	if !ok {
		return ErrMaxLevel
	}
	if e.state.Money < cost {
		return ErrInsufficientFunds
	}

	e.state.Money -= cost
	e.state.Levels[kind]++
	e.persist()
	return nil
}

// Buy purchases the next level of kind. It returns false and changes
// nothing when funds are short or the level is maxed.
func (e *Economy) Buy(kind Kind) bool {
	return e.TryBuy(kind) == nil
}

// AddMoney credits amount to the wallet. Non-positive amounts are ignored.
func (e *Economy) AddMoney(amount int) {
	if amount <= 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Money += amount
	e.persist()
}

// persist saves the state. Must be called with mu held.
func (e *Economy) persist() {
	if err := e.store.Save(e.state.Clone()); err != nil {
		e.warn("failed to save progress", "err", err)
	}
}

func (e *Economy) warn(msg string, keyvals ...interface{}) {
	if e.logger != nil {
		e.logger.Warn(msg, keyvals...)
	}
}

// Summary is a display row for one upgrade.
type Summary struct {
	Kind      Kind
	Spec      Spec
	Level     int
	Cost      int
	Maxed     bool
	CanAfford bool
}

// Summaries returns one row per configured kind in shop order.
func (e *Economy) Summaries() []Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Summary, 0, len(e.specs))
	for _, k := range Kinds() {
		spec, ok := e.specs[k]
		if !ok {
			continue
		}
		cost, buyable := e.cost(k)
		out = append(out, Summary{
			Kind:      k,
			Spec:      spec,
			Level:     e.state.Levels[k],
			Cost:      cost,
			Maxed:     !buyable,
			CanAfford: buyable && e.state.Money >= cost,
		})
	}
	return out
}
