package forestfire

import "forestfire/internal/core"

// Sim adapts a Forest to core.Sim so the GUI and terminal shells can drive
// it. Reset starts a run by igniting the centre; Step advances it with the
// configured probability and wind until no cell is burning.
type Sim struct {
	cfg     Config
	seed    int64
	forest  *Forest
	display *core.ByteGrid
	ticks   int
	err     error
}

// NewSim builds a simulation from cfg. The first run is not started until
// Reset is called.
func NewSim(cfg Config) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	forest, err := New(cfg.Size, cfg.Seed)
	if err != nil {
		return nil, err
	}
	return &Sim{
		cfg:     cfg,
		seed:    cfg.Seed,
		forest:  forest,
		display: core.NewByteGrid(cfg.Size, cfg.Size),
	}, nil
}

// Name returns the simulation identifier.
func (s *Sim) Name() string { return "forestfire" }

// Size reports the grid dimensions.
func (s *Sim) Size() core.Size { return core.Size{W: s.cfg.Size, H: s.cfg.Size} }

// Cells exposes the display buffer; each value is a State.
func (s *Sim) Cells() []uint8 { return s.display.Cells() }

// Palette returns the colors for the display buffer values.
func (s *Sim) Palette() []core.Color { return Palette() }

// Config returns the current settings, including live control changes.
func (s *Sim) Config() Config { return s.cfg }

// WindVector returns the screen-space direction the wind blows toward.
func (s *Sim) WindVector() (dx, dy float64) {
	dr, dc := s.cfg.Wind.Offset()
	return float64(dc), float64(dr)
}

// Err returns the error that halted the run, if any.
func (s *Sim) Err() error { return s.err }

// Reset clears the forest and ignites its centre. A zero seed reuses the
// configured one.
func (s *Sim) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.seed = seed
	s.forest.Reset(seed)
	s.ticks = 0
	s.err = nil
	if err := s.forest.IgniteCenter(); err != nil {
		s.err = err
	}
	s.rebuildDisplay()
}

// RestoreDefaults puts probability and wind back to their defaults.
func (s *Sim) RestoreDefaults() {
	def := DefaultConfig()
	s.cfg.Probability = def.Probability
	s.cfg.Wind = def.Wind
}

// Step advances the fire once. It is a no-op once the run is done.
func (s *Sim) Step() {
	if s.err != nil || !s.forest.HasActiveFire() {
		return
	}
	if err := s.forest.Step(s.cfg.Probability, s.cfg.Wind); err != nil {
		s.err = err
		return
	}
	s.ticks++
	s.rebuildDisplay()
}

// Done reports whether the fire has gone out (or the run failed).
func (s *Sim) Done() bool { return s.err != nil || !s.forest.HasActiveFire() }

// Ticks returns the number of steps taken since ignition.
func (s *Sim) Ticks() int { return s.ticks }

// Cycles counts ignition as the first cycle, then one per step.
func (s *Sim) Cycles() int {
	if s.forest.Counts().Untouched == s.cfg.Size*s.cfg.Size {
		return 0
	}
	return s.ticks + 1
}

func init() {
	core.Register("forestfire", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return NewSim(c)
	})
}
