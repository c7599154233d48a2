package app

import (
	"fmt"
	"io"
	"math"
	"time"

	"forestfire/internal/core"
	"forestfire/internal/report"

	"github.com/charmbracelet/log"
)

// Phase is the run state shown to the user.
type Phase int

const (
	Idle Phase = iota
	Running
	Paused
	Completed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "ready"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

type defaultsRestorer interface {
	RestoreDefaults()
}

type cycleCounter interface {
	Cycles() int
}

type erring interface {
	Err() error
}

// Session drives a simulation on a fixed cadence for an interactive shell.
// It owns the pause/step/reset state so the GUI and the terminal front end
// behave the same.
type Session struct {
	sim    core.Sim
	timer  *core.FixedStep
	logger *log.Logger

	seed   int64
	phase  Phase
	notice string
}

// NewSession resets sim with seed and returns a session waiting for Start.
func NewSession(sim core.Sim, interval time.Duration, seed int64, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Session{
		sim:    sim,
		timer:  core.NewFixedStep(interval),
		logger: logger,
		seed:   seed,
	}
	s.sim.Reset(seed)
	return s
}

// Sim returns the driven simulation.
func (s *Session) Sim() core.Sim { return s.sim }

// Timer exposes the cadence controller.
func (s *Session) Timer() *core.FixedStep { return s.timer }

// Phase reports the current run state.
func (s *Session) Phase() Phase { return s.phase }

// Notice returns the completion message, or "" while the fire is alive.
func (s *Session) Notice() string { return s.notice }

// Seed returns the seed used by the last reset.
func (s *Session) Seed() int64 { return s.seed }

// Start begins or resumes stepping. A finished run must be reset first.
func (s *Session) Start() {
	switch s.phase {
	case Idle:
		s.logger.Info("simulation started", "sim", s.sim.Name(), "seed", s.seed)
	case Paused:
		s.logger.Debug("simulation resumed")
	default:
		return
	}
	s.phase = Running
}

// TogglePause flips between running and paused. It starts an idle session.
func (s *Session) TogglePause() {
	switch s.phase {
	case Running:
		s.phase = Paused
		s.timer.Pause()
		s.logger.Debug("simulation paused", "ticks", s.ticks())
	case Paused, Idle:
		s.Start()
	}
}

// StepOnce advances a single tick regardless of the cadence. A running
// session is paused first.
func (s *Session) StepOnce() bool {
	if s.phase == Completed {
		return false
	}
	if s.phase == Running {
		s.timer.Pause()
	}
	s.phase = Paused
	s.advance()
	return true
}

// Reset clears the grid, the cycle count and the notice. When
// restoreDefaults is set the simulation's adjustable settings return to
// their defaults.
func (s *Session) Reset(restoreDefaults bool) {
	if restoreDefaults {
		if r, ok := s.sim.(defaultsRestorer); ok {
			r.RestoreDefaults()
		}
	}
	s.sim.Reset(s.seed)
	s.timer.Pause()
	s.phase = Idle
	s.notice = ""
	s.logger.Info("simulation reset", "seed", s.seed, "defaults", restoreDefaults)
}

// Reseed resets with a new seed, keeping the current settings.
func (s *Session) Reseed(seed int64) {
	s.seed = seed
	s.Reset(false)
}

// Tick polls the cadence and steps when due. It reports whether a step ran.
func (s *Session) Tick() bool {
	if s.phase != Running {
		return false
	}
	if !s.timer.ShouldStep() {
		return false
	}
	s.advance()
	return true
}

// Countdown is the time left until the next scheduled step. It is zero
// unless the session is running.
func (s *Session) Countdown() time.Duration {
	if s.phase != Running {
		return 0
	}
	return s.timer.Remaining()
}

// Status returns the lines shown under the controls.
func (s *Session) Status() []string {
	lines := []string{fmt.Sprintf("State: %s", s.phase)}
	if s.phase == Running {
		secs := int(math.Ceil(s.Countdown().Seconds()))
		lines = append(lines, fmt.Sprintf("Next cycle in %ds", secs))
	}
	if e, ok := s.sim.(erring); ok && e.Err() != nil {
		lines = append(lines, "Error: "+e.Err().Error())
	}
	return lines
}

// Nudge moves the adjustable control named key by direction steps. Choice
// controls wrap; numeric controls clamp to their bounds.
func (s *Session) Nudge(key string, direction int) bool {
	return core.Nudge(s.sim, key, direction)
}

func (s *Session) advance() {
	s.sim.Step()
	s.logger.Debug("tick", "ticks", s.ticks())
	f, ok := s.sim.(core.Finisher)
	if !ok || !f.Done() {
		return
	}
	if e, ok := s.sim.(erring); ok && e.Err() != nil {
		s.phase = Completed
		s.notice = "The simulation stopped: " + e.Err().Error()
		s.logger.Error("simulation failed", "err", e.Err())
		return
	}
	cycles := s.ticks() + 1
	if c, ok := s.sim.(cycleCounter); ok {
		cycles = c.Cycles()
	}
	s.phase = Completed
	s.notice = report.Completion(cycles)
	s.logger.Info("simulation completed", "cycles", cycles, "steps", s.ticks())
}

func (s *Session) ticks() int {
	if f, ok := s.sim.(core.Finisher); ok {
		return f.Ticks()
	}
	return 0
}
