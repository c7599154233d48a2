package forestfire

import (
	"math"
	"testing"

	"forestfire/internal/core"
)

func TestSimRegistered(t *testing.T) {
	factory, ok := core.Sims()["forestfire"]
	if !ok {
		t.Fatal("forestfire not registered")
	}
	sim, err := factory(map[string]string{"size": "7"})
	if err != nil {
		t.Fatal(err)
	}
	if got := sim.Size(); got != (core.Size{W: 7, H: 7}) {
		t.Fatalf("expected 7x7 grid, got %+v", got)
	}
	if _, err := factory(map[string]string{"wind": "sideways"}); err == nil {
		t.Fatal("expected factory to reject unknown wind")
	}
}

func TestSimRunsToCompletion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Probability = 1
	sim, err := NewSim(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if sim.Cycles() != 0 {
		t.Fatalf("expected 0 cycles before the first run, got %d", sim.Cycles())
	}
	sim.Reset(0)

	cells := sim.Cells()
	center := 5*11 + 5
	if State(cells[center]) != Burning {
		t.Fatalf("expected centre burning after Reset, display value %d", cells[center])
	}
	if sim.Done() || sim.Cycles() != 1 {
		t.Fatalf("expected active run at cycle 1, done=%v cycles=%d", sim.Done(), sim.Cycles())
	}

	for i := 0; i < 100 && !sim.Done(); i++ {
		sim.Step()
	}
	if !sim.Done() {
		t.Fatal("run did not finish")
	}
	// Manhattan radius 10 from the centre, plus two steps to burn out.
	if sim.Ticks() != 12 {
		t.Fatalf("expected 12 steps at probability 1, got %d", sim.Ticks())
	}
	if sim.Cycles() != sim.Ticks()+1 {
		t.Fatalf("expected cycles = ticks+1, got %d/%d", sim.Cycles(), sim.Ticks())
	}
	for i, v := range sim.Cells() {
		if State(v) != Scorched {
			t.Fatalf("cell %d shows %v after full burn", i, State(v))
		}
	}

	ticks := sim.Ticks()
	sim.Step()
	if sim.Ticks() != ticks {
		t.Fatal("Step after completion must not count ticks")
	}
}

func TestSimParameterSetters(t *testing.T) {
	sim, err := NewSim(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if !sim.SetFloatParameter("probability", 0.72) {
		t.Fatal("expected probability to be adjustable")
	}
	if got := sim.Config().Probability; math.Abs(got-0.72) > 1e-9 {
		t.Fatalf("expected 0.72, got %v", got)
	}
	if !sim.SetFloatParameter("probability", 5) {
		t.Fatal("expected setter to clamp values above max")
	}
	if got := sim.Config().Probability; math.Abs(got-1) > 1e-9 {
		t.Fatalf("expected probability clamped to 1, got %v", got)
	}
	sim.SetFloatParameter("probability", 0)
	if got := sim.Config().Probability; math.Abs(got-MinProbability) > 1e-9 {
		t.Fatalf("expected probability clamped to %v, got %v", MinProbability, got)
	}
	if sim.SetFloatParameter("wind", 1) || sim.SetFloatParameter("probability", math.NaN()) {
		t.Fatal("unexpected float setter acceptance")
	}

	if !sim.SetIntParameter("wind", int(East)) || sim.Config().Wind != East {
		t.Fatalf("expected wind East, got %v", sim.Config().Wind)
	}
	if sim.SetIntParameter("wind", 4) || sim.SetIntParameter("wind", -1) || sim.SetIntParameter("probability", 1) {
		t.Fatal("unexpected int setter acceptance")
	}

	sim.RestoreDefaults()
	if c := sim.Config(); c.Probability != DefaultProbability || c.Wind != North {
		t.Fatalf("RestoreDefaults left %+v", c)
	}
}

func TestSimParametersSnapshot(t *testing.T) {
	sim, err := NewSim(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	sim.Reset(0)
	snap := sim.Parameters()
	wind, ok := snap.Lookup("wind")
	if !ok || wind.Type != core.ParamTypeChoice || wind.Value != "0" {
		t.Fatalf("unexpected wind parameter %+v", wind)
	}
	if burning, ok := snap.Lookup("burning"); !ok || burning.Value != "1" {
		t.Fatalf("expected one burning cell, got %+v", burning)
	}
	controls := sim.ParameterControls()
	if len(controls) != 2 || len(controls[1].Choices) != 4 || controls[1].Choices[int(West)] != "W" {
		t.Fatalf("unexpected controls %+v", controls)
	}
}

func TestPaletteCoversStates(t *testing.T) {
	p := Palette()
	if len(p) != 3 || len(Glyphs) != 3 {
		t.Fatalf("expected 3 palette entries and glyphs, got %d/%d", len(p), len(Glyphs))
	}
	if p[Untouched] == p[Burning] || p[Burning] == p[Scorched] {
		t.Fatal("states must render in distinct colors")
	}
}

func TestSimWindVector(t *testing.T) {
	s, err := NewSim(DefaultConfig())
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	cases := map[Direction][2]float64{
		North: {0, -1},
		South: {0, 1},
		East:  {1, 0},
		West:  {-1, 0},
	}
	for d, want := range cases {
		if !s.SetIntParameter("wind", int(d)) {
			t.Fatalf("expected wind %v to be accepted", d)
		}
		dx, dy := s.WindVector()
		if dx != want[0] || dy != want[1] {
			t.Fatalf("wind %v: expected (%v,%v), got (%v,%v)", d, want[0], want[1], dx, dy)
		}
	}
}
