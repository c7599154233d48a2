package run

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"forestfire/internal/sims/forestfire"
)

// ErrStepLimit is returned when a run exceeds its step budget.
var ErrStepLimit = errors.New("step limit reached")

// Sample is the state tally after one step. Step 0 is the ignition.
type Sample struct {
	Step      int
	Untouched int
	Burning   int
	Scorched  int
}

// Result summarizes a finished run.
type Result struct {
	Config    forestfire.Config
	Steps     int
	Cycles    int
	Untouched int
	Scorched  int
	History   []Sample
}

// ScorchedFraction is the share of the grid that burned.
func (r Result) ScorchedFraction() float64 {
	total := r.Config.Size * r.Config.Size
	if total == 0 {
		return 0
	}
	return float64(r.Scorched) / float64(total)
}

// Observer is called after ignition and after every step.
type Observer func(step int, f *forestfire.Forest) error

// Driver ignites the centre of a fresh forest and steps it until no cell is
// burning. The engine has no notion of time; the driver owns cancellation.
type Driver struct {
	Logger   *log.Logger
	MaxSteps int
	Observe  Observer
}

// NewDriver returns a driver logging to logger. A nil logger discards output.
func NewDriver(logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Driver{Logger: logger}
}

// StepLimit is the default step budget for an n×n grid. A correct engine
// always finishes well within it.
func StepLimit(n int) int { return 4*n*n + 4 }

// Run executes one complete simulation.
func (d *Driver) Run(ctx context.Context, cfg forestfire.Config) (Result, error) {
	logger := d.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	forest, err := forestfire.New(cfg.Size, cfg.Seed)
	if err != nil {
		return Result{}, err
	}
	if err := forest.IgniteCenter(); err != nil {
		return Result{}, err
	}
	limit := d.MaxSteps
	if limit <= 0 {
		limit = StepLimit(cfg.Size)
	}

	logger.Info("run started", "size", cfg.Size, "probability", cfg.Probability, "wind", cfg.Wind, "seed", cfg.Seed)

	res := Result{Config: cfg}
	res.History = append(res.History, sample(0, forest))
	if err := d.observe(0, forest); err != nil {
		return res, err
	}

	for forest.HasActiveFire() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if res.Steps >= limit {
			return res, fmt.Errorf("%w: %d steps", ErrStepLimit, limit)
		}
		if err := forest.Step(cfg.Probability, cfg.Wind); err != nil {
			return res, err
		}
		res.Steps++
		s := sample(res.Steps, forest)
		res.History = append(res.History, s)
		logger.Debug("step", "n", res.Steps, "burning", s.Burning, "scorched", s.Scorched)
		if err := d.observe(res.Steps, forest); err != nil {
			return res, err
		}
	}

	last := res.History[len(res.History)-1]
	res.Cycles = res.Steps + 1
	res.Untouched = last.Untouched
	res.Scorched = last.Scorched
	logger.Info("run finished", "steps", res.Steps, "cycles", res.Cycles, "scorched", res.Scorched)
	return res, nil
}

func (d *Driver) observe(step int, f *forestfire.Forest) error {
	if d.Observe == nil {
		return nil
	}
	return d.Observe(step, f)
}

func sample(step int, f *forestfire.Forest) Sample {
	c := f.Counts()
	return Sample{Step: step, Untouched: c.Untouched, Burning: c.Burning, Scorched: c.Scorched}
}
