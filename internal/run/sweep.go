package run

import (
	"context"
	"fmt"
	"io"
	"math"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"forestfire/internal/core"
	"forestfire/internal/sims/forestfire"
)

// SweepSpec describes a grid of (probability, wind) settings, each run Runs
// times with distinct derived seeds.
type SweepSpec struct {
	Base          forestfire.Config
	Probabilities []float64
	Winds         []forestfire.Direction
	Runs          int
	Workers       int
}

// SweepPoint aggregates the runs for one setting.
type SweepPoint struct {
	Probability  float64
	Wind         forestfire.Direction
	Runs         int
	MeanSteps    float64
	MinSteps     int
	MaxSteps     int
	MeanScorched float64
}

func (p SweepPoint) String() string {
	return fmt.Sprintf("p=%.2f wind=%s runs=%d steps=%.2f [%d..%d] scorched=%.1f%%",
		p.Probability, p.Wind.Short(), p.Runs, p.MeanSteps, p.MinSteps, p.MaxSteps, 100*p.MeanScorched)
}

type sweepJob struct {
	point int
	seed  int64
	cfg   forestfire.Config
}

// Sweep runs every setting in spec across a bounded worker pool. Points are
// returned in probability-major, wind-minor order regardless of scheduling.
func Sweep(ctx context.Context, spec SweepSpec, logger *log.Logger) ([]SweepPoint, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if spec.Runs <= 0 {
		spec.Runs = 1
	}
	if spec.Workers <= 0 {
		spec.Workers = runtime.NumCPU()
	}
	if len(spec.Winds) == 0 {
		spec.Winds = forestfire.Directions()
	}
	if len(spec.Probabilities) == 0 {
		spec.Probabilities = []float64{spec.Base.Probability}
	}

	points := make([]SweepPoint, 0, len(spec.Probabilities)*len(spec.Winds))
	var jobs []sweepJob
	for _, p := range spec.Probabilities {
		for _, wind := range spec.Winds {
			cfg := spec.Base
			cfg.Probability = p
			cfg.Wind = wind
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			idx := len(points)
			points = append(points, SweepPoint{Probability: p, Wind: wind, MinSteps: math.MaxInt})
			for r := 0; r < spec.Runs; r++ {
				jobs = append(jobs, sweepJob{point: idx, seed: core.DeriveSeed(spec.Base.Seed, len(jobs)), cfg: cfg})
			}
		}
	}

	logger.Info("sweep started", "settings", len(points), "runs", len(jobs), "workers", spec.Workers)

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(spec.Workers)
	driver := &Driver{Logger: logger.WithPrefix("run")}
	driver.Logger.SetLevel(log.WarnLevel)
	for i := range jobs {
		job := jobs[i]
		g.Go(func() error {
			cfg := job.cfg
			cfg.Seed = job.seed
			res, err := driver.Run(gctx, cfg)
			if err != nil {
				return fmt.Errorf("probability %.2f wind %s: %w", cfg.Probability, cfg.Wind.Short(), err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, job := range jobs {
		res := results[i]
		pt := &points[job.point]
		pt.Runs++
		pt.MeanSteps += float64(res.Steps)
		pt.MeanScorched += res.ScorchedFraction()
		pt.MinSteps = min(pt.MinSteps, res.Steps)
		pt.MaxSteps = max(pt.MaxSteps, res.Steps)
	}
	for i := range points {
		if points[i].Runs > 0 {
			points[i].MeanSteps /= float64(points[i].Runs)
			points[i].MeanScorched /= float64(points[i].Runs)
		}
	}
	logger.Info("sweep finished", "settings", len(points))
	return points, nil
}
