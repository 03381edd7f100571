package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/engine"
	"github.com/vovakirdan/tui-flappy/internal/render"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// newLogger builds the logger for a command. Logs go to --log-file when set,
// otherwise to fallback. Full-screen commands pass io.Discard so log lines
// never land on the alt screen.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "flappy",
	})
	return logger, closeFn, nil
}

// overrides collects the physics flags. Zero flags are left to the config.
func overrides() config.Overrides {
	return config.Overrides{
		Gravity:     flagGravity,
		FlapImpulse: flagFlap,
		Speed:       flagSpeed,
		Gap:         flagGap,
	}
}

// preset validates --difficulty.
func preset() (config.DifficultyPreset, error) {
	p := config.DifficultyPreset(flagDifficulty)
	if !p.Valid() {
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	return p, nil
}

// board names the leaderboard the current flags play on.
func board() (string, error) {
	p, err := preset()
	if err != nil {
		return "", err
	}
	return storage.BoardFor(p, !overrides().IsZero()), nil
}

// loadConfig merges file, preset, flag overrides and audio switches, then
// sanitizes the result. Every repaired value is logged.
func loadConfig(logger *log.Logger) (config.Config, error) {
	p, err := preset()
	if err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	config.ApplyPreset(&cfg, p)
	config.ApplyOverrides(&cfg, overrides())
	if flagMute {
		cfg.Audio.Muted = true
	}
	if flagNoAudio {
		cfg.Audio.Enabled = false
	}

	cfg, notes := config.Sanitize(cfg)
	for _, n := range notes {
		logger.Warn("config adjusted", "change", n)
	}
	return cfg, nil
}

// openScores returns a keeper for the current board. A database that cannot
// be opened degrades to an in-memory keeper so the game still runs.
func openScores(logger *log.Logger) (engine.ScoreKeeper, func(), error) {
	name, err := board()
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores kept in memory", "err", err)
		return storage.NewMemoryKeeper(), func() {}, nil
	}
	return storage.NewKeeper(store, name), func() { store.Close() }, nil
}

// session is everything a local frontend needs to run one game.
type session struct {
	machine *engine.Machine
	images  render.Images
	logger  *log.Logger
	closers []func()
}

// newSession wires config, assets, audio and scores into a machine.
func newSession(logger *log.Logger) (*session, error) {
	cfg, err := loadConfig(logger)
	if err != nil {
		return nil, err
	}

	s := &session{logger: logger}

	scores, closeScores, err := openScores(logger)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, closeScores)

	var (
		loader assets.AudioLoader
		unlock func() error
	)
	if cfg.Audio.Enabled {
		backend := audio.NewBeepBackend(cfg.Audio.Volume, logger)
		if err := backend.Init(); err != nil {
			// Stay silent until the player asks for an unlock.
			logger.Warn("audio unavailable", "err", err)
		}
		loader, unlock = backend, backend.Init
		s.closers = append(s.closers, backend.Close)
	}

	reg := assets.Load(cfg.Assets, loader, logger)
	s.images = render.Images{
		Background: reg.Image(assets.SlotBackground),
		Player:     reg.Image(assets.SlotPlayer),
		Pipe:       reg.Image(assets.SlotPipe),
	}

	opts := []engine.Option{
		engine.WithScoreKeeper(scores),
		engine.WithLogger(logger),
		engine.WithSeed(flagSeed),
		engine.WithGameOverHook(func(score int, newBest bool) {
			logger.Info("run over", "score", score, "new_best", newBest)
		}),
	}
	if cfg.Audio.Enabled {
		opts = append(opts, engine.WithAudio(audio.NewCoordinator(
			reg.Tracks(),
			reg.Effects(),
			audio.WithLogger(logger),
			audio.WithMuted(cfg.Audio.Muted),
			audio.WithUnlocker(unlock),
		)))
	}

	s.machine = engine.NewMachine(cfg, opts...)
	return s, nil
}

// Close releases audio and storage in reverse order.
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}
