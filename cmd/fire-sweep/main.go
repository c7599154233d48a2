package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/charmbracelet/log"

	"forestfire/internal/report"
	"forestfire/internal/run"
	"forestfire/internal/sims/forestfire"
)

type options struct {
	size      int
	seed      int64
	probs     string
	winds     string
	runs      int
	workers   int
	chart     string
	history   string
	video     string
	frame     string
	scale     int
	fps       int
	ascii     bool
	logLevel  string
	overrides kvList
}

func newOptions() *options {
	def := forestfire.DefaultConfig()
	return &options{
		size:     def.Size,
		seed:     def.Seed,
		probs:    "0.1:0.9:0.2",
		winds:    "N,S,E,W",
		runs:     50,
		workers:  runtime.NumCPU(),
		scale:    16,
		fps:      2,
		logLevel: "info",
	}
}

// Bind attaches the options to fs.
func (o *options) Bind(fs *flag.FlagSet) {
	fs.IntVar(&o.size, "size", o.size, "grid edge length")
	fs.Int64Var(&o.seed, "seed", o.seed, "base seed; each run derives its own")
	fs.StringVar(&o.probs, "probabilities", o.probs, "comma list or from:to:step range of spread probabilities")
	fs.StringVar(&o.winds, "winds", o.winds, "comma list of wind directions")
	fs.IntVar(&o.runs, "runs", o.runs, "runs per (probability, wind) setting")
	fs.IntVar(&o.workers, "workers", o.workers, "number of worker goroutines")
	fs.StringVar(&o.chart, "chart", o.chart, "write a chart PNG of mean % scorched against probability, one line per wind, to this path")
	fs.StringVar(&o.history, "history", o.history, "write the exemplar run's state chart PNG to this path")
	fs.StringVar(&o.video, "video", o.video, "record the exemplar run as an MJPEG AVI at this path")
	fs.StringVar(&o.frame, "frame", o.frame, "write the exemplar run's final grid PNG to this path")
	fs.IntVar(&o.scale, "scale", o.scale, "pixels per cell for video and frame output")
	fs.IntVar(&o.fps, "fps", o.fps, "frames per second for video output")
	fs.BoolVar(&o.ascii, "ascii", o.ascii, "print the exemplar run's final grid as text")
	fs.StringVar(&o.logLevel, "log-level", o.logLevel, "log level: debug, info, warn, error")
	fs.Var(&o.overrides, "set", "exemplar/base override in key=value form (repeatable)")
}

func main() {
	opts := newOptions()
	opts.Bind(flag.CommandLine)
	flag.Parse()

	level, err := log.ParseLevel(opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fire-sweep: %v\n", err)
		os.Exit(2)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level, ReportTimestamp: true, Prefix: "fire-sweep"})

	base := forestfire.DefaultConfig()
	base.Size = opts.size
	base.Seed = opts.seed
	base, err = applyOverrides(base, opts.overrides)
	if err != nil {
		logger.Fatal("bad override", "err", err)
	}
	probabilities, err := parseProbabilities(opts.probs)
	if err != nil {
		logger.Fatal("bad probabilities", "err", err)
	}
	directions, err := parseWinds(opts.winds)
	if err != nil {
		logger.Fatal("bad winds", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	spec := run.SweepSpec{
		Base:          base,
		Probabilities: probabilities,
		Winds:         directions,
		Runs:          opts.runs,
		Workers:       opts.workers,
	}
	logger.Info("sweeping", "settings", len(probabilities)*len(directions), "runs", opts.runs, "workers", opts.workers, "size", base.Size)
	start := time.Now()
	points, err := run.Sweep(ctx, spec, logger)
	if err != nil {
		logger.Fatal("sweep failed", "err", err)
	}
	logger.Info("sweep finished", "elapsed", time.Since(start).Round(time.Millisecond))

	if err := report.WriteSweepTable(os.Stdout, points); err != nil {
		logger.Fatal("write table", "err", err)
	}
	if opts.chart != "" {
		if err := writeFile(opts.chart, func(f *os.File) error { return report.WriteSweepChart(f, points) }); err != nil {
			logger.Error("sweep chart", "path", opts.chart, "err", err)
		} else {
			logger.Info("wrote sweep chart", "path", opts.chart)
		}
	}

	if opts.history == "" && opts.video == "" && opts.frame == "" && !opts.ascii {
		return
	}
	if err := exemplar(ctx, logger, base, exemplarOutputs{
		history: opts.history,
		video:   opts.video,
		frame:   opts.frame,
		ascii:   opts.ascii,
		scale:   opts.scale,
		fps:     opts.fps,
	}); err != nil {
		logger.Fatal("exemplar run", "err", err)
	}
}

type exemplarOutputs struct {
	history string
	video   string
	frame   string
	ascii   bool
	scale   int
	fps     int
}

// exemplar runs the base setting once with the full history and writes the
// requested artefacts.
func exemplar(ctx context.Context, logger *log.Logger, cfg forestfire.Config, out exemplarOutputs) error {
	driver := run.NewDriver(logger.WithPrefix("exemplar"))
	var last *forestfire.Forest
	var rec *report.Recorder
	if out.video != "" {
		var err error
		rec, err = report.NewRecorder(out.video, cfg.Size, out.scale, out.fps)
		if err != nil {
			return err
		}
	}
	driver.Observe = func(step int, f *forestfire.Forest) error {
		last = f
		if rec != nil {
			return rec.Observe(step, f)
		}
		return nil
	}

	res, err := driver.Run(ctx, cfg)
	if rec != nil {
		if cerr := rec.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return err
	}
	if rec != nil {
		logger.Info("wrote video", "path", out.video, "frames", rec.Frames())
	}
	if err := report.WriteSummary(os.Stdout, res); err != nil {
		return err
	}
	if out.ascii && last != nil {
		if err := report.WriteASCII(os.Stdout, last); err != nil {
			return err
		}
	}
	if out.history != "" {
		if err := writeFile(out.history, func(f *os.File) error { return report.WriteHistoryChart(f, res) }); err != nil {
			return err
		}
		logger.Info("wrote history chart", "path", out.history)
	}
	if out.frame != "" && last != nil {
		if err := writeFile(out.frame, func(f *os.File) error { return report.WriteFramePNG(f, last, out.scale) }); err != nil {
			return err
		}
		logger.Info("wrote frame", "path", out.frame)
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
