package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/drilldown/internal/audio"
	"github.com/vovakirdan/drilldown/internal/config"
	"github.com/vovakirdan/drilldown/internal/core"
	"github.com/vovakirdan/drilldown/internal/platform/tui"
	"github.com/vovakirdan/drilldown/internal/storage"
	"github.com/vovakirdan/drilldown/internal/upgrade"
)

// env holds what every command opens from the global flags.
type env struct {
	cfg     config.DrillConfig
	logger  *log.Logger
	backend storage.Backend // nil when storage could not be opened
	econ    *upgrade.Economy
	sinks   []core.EffectSink
	closers []func()
}

// openEnv loads config, logging and storage. Interactive commands log to
// ~/.drilldown/drilldown.log because the terminal belongs to the UI.
func openEnv(interactive bool) (*env, error) {
	e := &env{}

	logger, err := newLogger(interactive, e)
	if err != nil {
		return nil, err
	}
	e.logger = logger

	cfg, err := loadConfig()
	if err != nil {
		e.Close()
		return nil, err
	}
	e.cfg = cfg

	backend, err := storage.Open(flagDBPath, cfg.Economy.HighScoreRetain)
	var store upgrade.Store
	if err != nil {
		// Continue without storage - progress lives for this process only
		e.logger.Warn("could not open storage", "db", flagDBPath, "error", err)
		if !interactive {
			fmt.Fprintf(os.Stderr, "Warning: could not open storage: %v\n", err)
		}
		store = upgrade.NewMemoryStore()
	} else {
		e.backend = backend
		e.closers = append(e.closers, func() {
			if err := backend.Close(); err != nil {
				e.logger.Warn("could not close storage", "error", err)
			}
		})
		store = storage.Progress(backend, flagProfile)
	}
	e.econ = upgrade.New(upgrade.SpecsFromConfig(cfg.Economy), store, e.logger)

	if interactive && flagSound {
		sink := audio.NewSink(e.logger)
		if err := sink.Init(); err == nil {
			e.sinks = append(e.sinks, sink)
			e.closers = append(e.closers, sink.Close)
		}
	}

	return e, nil
}

func newLogger(interactive bool, e *env) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var w io.Writer = os.Stderr
	if interactive {
		w = io.Discard
		if f, ferr := openLogFile(); ferr == nil {
			w = f
			e.closers = append(e.closers, func() { f.Close() })
		}
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "drilldown",
		Level:           level,
	}), nil
}

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".drilldown")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "drilldown.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

func loadConfig() (config.DrillConfig, error) {
	cfg, err := config.LoadDrill(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyDrillPreset(&cfg, preset)
	}
	return cfg, nil
}

// session returns the UI session of the local profile.
func (e *env) session() tui.Session {
	cfg := e.cfg
	return tui.Session{
		Config:  &cfg,
		Economy: e.econ,
		Backend: e.backend,
		Player:  flagProfile,
		Logger:  e.logger,
		Sinks:   e.sinks,
	}
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// Close releases everything in reverse order of opening.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}
