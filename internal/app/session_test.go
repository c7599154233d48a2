package app

import (
	"math"
	"strings"
	"testing"
	"time"

	"forestfire/internal/report"
	"forestfire/internal/sims/forestfire"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestSession(t *testing.T, cfg forestfire.Config) (*Session, *forestfire.Sim, *fakeClock) {
	t.Helper()
	sim, err := forestfire.NewSim(cfg)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	clock := &fakeClock{now: time.Unix(1000, 0)}
	s := NewSession(sim, 5*time.Second, cfg.Seed, nil)
	s.Timer().WithClock(clock.Now)
	return s, sim, clock
}

func TestSessionIdleUntilStarted(t *testing.T) {
	s, sim, _ := newTestSession(t, forestfire.DefaultConfig())
	if s.Phase() != Idle {
		t.Fatalf("expected idle session, got %v", s.Phase())
	}
	if s.Tick() {
		t.Fatalf("expected no step before Start")
	}
	if sim.Ticks() != 0 {
		t.Fatalf("expected 0 ticks, got %d", sim.Ticks())
	}
	if s.Countdown() != 0 {
		t.Fatalf("expected no countdown while idle, got %v", s.Countdown())
	}
}

func TestSessionCadence(t *testing.T) {
	s, sim, clock := newTestSession(t, forestfire.DefaultConfig())
	s.Start()
	if !s.Tick() {
		t.Fatalf("expected the first poll after Start to step")
	}
	if got := s.Status(); len(got) < 2 || got[1] != "Next cycle in 5s" {
		t.Fatalf("expected countdown status, got %q", got)
	}
	clock.Advance(time.Second)
	if s.Tick() {
		t.Fatalf("expected no step one second in")
	}
	if got := s.Countdown(); got != 4*time.Second {
		t.Fatalf("expected 4s countdown, got %v", got)
	}
	clock.Advance(4 * time.Second)
	if !s.Tick() {
		t.Fatalf("expected a step after a full interval")
	}
	if sim.Ticks() != 2 {
		t.Fatalf("expected 2 ticks, got %d", sim.Ticks())
	}
}

func TestSessionPauseStopsCadence(t *testing.T) {
	s, sim, clock := newTestSession(t, forestfire.DefaultConfig())
	s.Start()
	s.Tick()
	s.TogglePause()
	if s.Phase() != Paused {
		t.Fatalf("expected paused, got %v", s.Phase())
	}
	clock.Advance(time.Minute)
	if s.Tick() {
		t.Fatalf("expected no step while paused")
	}
	if s.Countdown() != 0 {
		t.Fatalf("expected no countdown while paused")
	}
	s.TogglePause()
	if s.Phase() != Running {
		t.Fatalf("expected running after resume, got %v", s.Phase())
	}
	clock.Advance(time.Second)
	if s.Tick() {
		t.Fatalf("expected a resumed run to wait a full interval")
	}
	if sim.Ticks() != 1 {
		t.Fatalf("expected 1 tick, got %d", sim.Ticks())
	}
}

func TestSessionCompletionNotice(t *testing.T) {
	cfg := forestfire.DefaultConfig()
	cfg.Size = 3
	cfg.Probability = 1
	s, sim, _ := newTestSession(t, cfg)
	for i := 0; i < 10 && s.Phase() != Completed; i++ {
		if !s.StepOnce() {
			t.Fatalf("expected StepOnce to run at step %d", i)
		}
	}
	if s.Phase() != Completed {
		t.Fatalf("expected the fire to go out")
	}
	if sim.Ticks() != 4 {
		t.Fatalf("expected 4 steps on a 3x3 grid at p=1, got %d", sim.Ticks())
	}
	if want := report.Completion(5); s.Notice() != want {
		t.Fatalf("expected notice %q, got %q", want, s.Notice())
	}
	if s.StepOnce() {
		t.Fatalf("expected StepOnce to refuse a completed run")
	}
	s.Start()
	if s.Phase() != Completed {
		t.Fatalf("expected Start to leave a completed run alone")
	}
}

func TestSessionResetRestoresDefaults(t *testing.T) {
	s, sim, _ := newTestSession(t, forestfire.DefaultConfig())
	if !s.Nudge("probability", 1) {
		t.Fatalf("expected probability nudge to apply")
	}
	if !s.Nudge("wind", 2) {
		t.Fatalf("expected wind nudge to apply")
	}
	s.StepOnce()
	s.Reset(true)
	cfg := sim.Config()
	if cfg.Probability != forestfire.DefaultProbability || cfg.Wind != forestfire.North {
		t.Fatalf("expected defaults after reset, got %+v", cfg)
	}
	if s.Phase() != Idle || s.Notice() != "" {
		t.Fatalf("expected idle session without notice, got %v %q", s.Phase(), s.Notice())
	}
	if sim.Ticks() != 0 || sim.Cycles() != 1 {
		t.Fatalf("expected a fresh ignition, got ticks=%d cycles=%d", sim.Ticks(), sim.Cycles())
	}
}

func TestSessionReseedKeepsSettings(t *testing.T) {
	s, sim, _ := newTestSession(t, forestfire.DefaultConfig())
	s.Nudge("wind", 1)
	s.Reseed(7)
	if s.Seed() != 7 {
		t.Fatalf("expected seed 7, got %d", s.Seed())
	}
	if sim.Config().Wind != forestfire.South {
		t.Fatalf("expected wind to survive a reseed, got %v", sim.Config().Wind)
	}
}

func TestSessionNudge(t *testing.T) {
	s, sim, _ := newTestSession(t, forestfire.DefaultConfig())
	if !s.Nudge("wind", -1) {
		t.Fatalf("expected wind to wrap")
	}
	if sim.Config().Wind != forestfire.West {
		t.Fatalf("expected North-1 to wrap to West, got %v", sim.Config().Wind)
	}
	if !s.Nudge("probability", 1) {
		t.Fatalf("expected probability step")
	}
	if got := sim.Config().Probability; math.Abs(got-0.31) > 1e-9 {
		t.Fatalf("expected 0.31, got %v", got)
	}
	sim.SetFloatParameter("probability", 1)
	if s.Nudge("probability", 1) {
		t.Fatalf("expected nudge past the maximum to be refused")
	}
	if s.Nudge("humidity", 1) {
		t.Fatalf("expected unknown control to be refused")
	}
}

func TestSessionStatusReportsPhase(t *testing.T) {
	s, _, _ := newTestSession(t, forestfire.DefaultConfig())
	if got := s.Status(); len(got) == 0 || !strings.HasSuffix(got[0], "ready") {
		t.Fatalf("expected ready status, got %q", got)
	}
}
