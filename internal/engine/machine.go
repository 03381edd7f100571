package engine

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/difficulty"
)

// Phase is the single authoritative game phase.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseCountdown
	PhaseRunning
	PhasePaused
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "MENU"
	case PhaseCountdown:
		return "COUNTDOWN"
	case PhaseRunning:
		return "RUNNING"
	case PhasePaused:
		return "PAUSED"
	case PhaseGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// ScoreKeeper persists scores across runs. The engine only reads the best
// score and records finished runs; how they are stored is up to the host.
type ScoreKeeper interface {
	BestScore() (int, error)
	RecordScore(score int) error
}

// Machine owns the engine state and drives it through the game phases.
// It is not safe for concurrent use: the host calls Update and the input
// methods from one goroutine.
type Machine struct {
	cfg    config.Config
	world  World
	stager difficulty.Stager
	sched  *Scheduler
	rng    *rand.Rand

	audio  *audio.Coordinator
	scores ScoreKeeper
	logger *log.Logger
	onOver func(score int, newBest bool)

	phase   Phase
	state   EngineState
	stage   difficulty.Stage
	flap    bool // pending flap intent, consumed by the next frame
	best    int
	newBest bool
	left    int // countdown steps remaining

	countdownTask TaskID
	frameTask     TaskID
}

// Option configures a Machine.
type Option func(*Machine)

// WithAudio attaches an audio coordinator. Without one the game is silent.
func WithAudio(c *audio.Coordinator) Option {
	return func(m *Machine) {
		m.audio = c
	}
}

// WithScoreKeeper attaches score persistence.
func WithScoreKeeper(k ScoreKeeper) Option {
	return func(m *Machine) {
		m.scores = k
	}
}

// WithLogger sets the logger for transitions and best-effort failures.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithSeed fixes the obstacle RNG seed. Zero means time based.
func WithSeed(seed int64) Option {
	return func(m *Machine) {
		if seed != 0 {
			m.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithGameOverHook registers a callback run once per GAME_OVER entry, after
// the score was recorded.
func WithGameOverHook(fn func(score int, newBest bool)) Option {
	return func(m *Machine) {
		m.onOver = fn
	}
}

// NewMachine creates a machine in MENU. cfg should already be sanitized.
func NewMachine(cfg config.Config, opts ...Option) *Machine {
	m := &Machine{
		cfg:    cfg,
		world:  WorldFrom(cfg),
		stager: difficulty.NewStager(cfg.Difficulty),
		sched:  NewScheduler(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	m.state = NewEngineState(m.world, m.stager.Initial())
	m.refreshBest()
	m.audio.SetChannel(audio.ChannelMenu)
	return m
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Score returns the live score of the current or last run.
func (m *Machine) Score() int {
	return m.state.Score
}

// Best returns the best score known to the machine.
func (m *Machine) Best() int {
	return m.best
}

// World returns the run geometry.
func (m *Machine) World() World {
	return m.world
}

// State returns a copy of the engine state.
func (m *Machine) State() EngineState {
	return m.state.Clone()
}

// Update advances the scheduler, and with it the countdown or the physics
// loop, by dtMs.
func (m *Machine) Update(dtMs float64) {
	m.sched.Advance(dtMs)
}

// Handle applies a routed action. It reports whether anything changed.
// ActionQuit is left to the host.
func (m *Machine) Handle(a core.Action) bool {
	switch a {
	case core.ActionFlap:
		return m.Flap()
	case core.ActionConfirm:
		switch m.phase {
		case PhaseMenu:
			return m.Start()
		case PhaseGameOver:
			return m.Restart()
		case PhasePaused:
			return m.TogglePause()
		}
	case core.ActionPause:
		return m.TogglePause()
	case core.ActionRestart:
		return m.Restart()
	case core.ActionMenu:
		return m.ReturnToMenu()
	case core.ActionMute:
		m.ToggleMute()
		return true
	case core.ActionUnlock:
		m.audio.Unlock()
		return true
	}
	return false
}

// Start leaves MENU for COUNTDOWN.
func (m *Machine) Start() bool {
	if m.phase != PhaseMenu {
		return false
	}
	m.enterCountdown()
	return true
}

// Flap queues one flap for the next frame. Several flaps before that frame
// coalesce into one. Outside RUNNING it does nothing.
func (m *Machine) Flap() bool {
	if m.phase != PhaseRunning {
		return false
	}
	m.flap = true
	return true
}

// TogglePause switches between RUNNING and PAUSED.
func (m *Machine) TogglePause() bool {
	switch m.phase {
	case PhaseRunning:
		m.stopFrames()
		m.flap = false
		m.setPhase(PhasePaused)
		m.audio.Suspend()
		return true
	case PhasePaused:
		m.setPhase(PhaseRunning)
		m.audio.Resume()
		m.startFrames()
		return true
	}
	return false
}

// Restart begins a new run from GAME_OVER, through the countdown unless
// the config disables it.
func (m *Machine) Restart() bool {
	if m.phase != PhaseGameOver {
		return false
	}
	if m.cfg.Game.RestartCountdown {
		m.enterCountdown()
		return true
	}
	m.resetRun()
	m.enterRunning()
	return true
}

// ReturnToMenu abandons whatever is in progress. Pending countdown and
// frame tasks are cancelled so none can fire into MENU.
func (m *Machine) ReturnToMenu() bool {
	if m.phase == PhaseMenu {
		return false
	}
	m.sched.CancelAll()
	m.countdownTask, m.frameTask = 0, 0
	m.flap = false
	m.setPhase(PhaseMenu)
	m.refreshBest()
	m.audio.SetChannel(audio.ChannelMenu)
	return true
}

// ToggleMute flips the mute state without touching the phase.
func (m *Machine) ToggleMute() bool {
	muted := m.audio.ToggleMute()
	m.logger.Debug("mute", "muted", muted)
	return muted
}

func (m *Machine) setPhase(p Phase) {
	if p != m.phase {
		m.logger.Debug("phase", "from", m.phase, "to", p)
	}
	m.phase = p
}

func (m *Machine) resetRun() {
	m.state = NewEngineState(m.world, m.stager.Initial())
	m.stage = difficulty.StageInitial
	m.flap = false
	m.newBest = false
}

func (m *Machine) enterCountdown() {
	m.resetRun()
	m.setPhase(PhaseCountdown)
	m.audio.SetChannel(audio.ChannelNone)

	m.left = m.cfg.Game.CountdownSteps
	if m.left <= 0 {
		m.enterRunning()
		return
	}
	m.audio.PlayEffect(audio.EffectTick)
	m.countdownTask = m.sched.Every(m.cfg.Game.CountdownStepMs, m.countdownStep)
}

func (m *Machine) countdownStep() {
	if m.phase != PhaseCountdown {
		return
	}
	m.left--
	if m.left > 0 {
		m.audio.PlayEffect(audio.EffectTick)
		return
	}
	m.enterRunning()
}

func (m *Machine) enterRunning() {
	m.sched.Cancel(m.countdownTask)
	m.countdownTask = 0
	m.left = 0
	m.setPhase(PhaseRunning)
	m.audio.SetChannel(audio.ChannelInGame)
	m.audio.PlayEffect(audio.EffectStart)
	m.startFrames()
}

func (m *Machine) startFrames() {
	m.stopFrames()
	m.frameTask = m.sched.EveryFrame(m.frame)
}

func (m *Machine) stopFrames() {
	if m.frameTask != 0 {
		m.sched.Cancel(m.frameTask)
		m.frameTask = 0
	}
}

// frame is one RUNNING tick: ease the tuning toward the stage target, then
// step the physics.
func (m *Machine) frame(dtMs float64) {
	if m.phase != PhaseRunning {
		return
	}

	m.state.Tuning, m.stage = m.stager.Tick(m.state.Tuning, m.state.Score, m.state.ElapsedMs)

	flap := m.flap
	m.flap = false
	if flap {
		m.audio.PlayEffect(audio.EffectFlap)
	}

	next, res := Step(m.state, m.world, dtMs, flap, m.rng)
	m.state = next
	if res.Scored > 0 {
		m.audio.PlayEffect(audio.EffectScore)
	}
	if res.Dead {
		m.enterGameOver()
	}
}

// enterGameOver freezes the run and settles the score exactly once.
func (m *Machine) enterGameOver() {
	m.stopFrames()
	m.setPhase(PhaseGameOver)

	score := m.state.Score
	m.newBest = score > m.best
	if m.scores != nil {
		if err := m.scores.RecordScore(score); err != nil {
			m.logger.Warn("failed to record score", "score", score, "err", err)
		}
	}
	if m.newBest {
		m.best = score
	}
	m.logger.Debug("run over", "score", score, "best", m.best, "new_best", m.newBest)

	m.audio.SetChannel(audio.ChannelGameOver)
	m.audio.PlayEffect(audio.EffectHit)
	if m.newBest {
		m.audio.PlayEffect(audio.EffectHighScore)
	}
	if m.onOver != nil {
		m.onOver(score, m.newBest)
	}
}

func (m *Machine) refreshBest() {
	if m.scores == nil {
		return
	}
	best, err := m.scores.BestScore()
	if err != nil {
		m.logger.Warn("failed to read best score", "err", err)
		return
	}
	m.best = best
}
