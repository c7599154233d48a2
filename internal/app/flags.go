package app

import (
	"flag"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"forestfire/internal/sims/forestfire"
)

var logOutput = func() io.Writer { return os.Stderr }

// Config represents the command-line parameters shared by the interactive
// shells.
type Config struct {
	Sim         string
	Scale       int
	Interval    time.Duration
	Seed        int64
	Size        int
	Probability float64
	Wind        string
	LogLevel    string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	def := forestfire.DefaultConfig()
	return &Config{
		Sim:         "forestfire",
		Scale:       40,
		Interval:    5 * time.Second,
		Seed:        def.Seed,
		Size:        def.Size,
		Probability: def.Probability,
		Wind:        def.Wind.Short(),
		LogLevel:    "info",
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per cell")
	fs.DurationVar(&c.Interval, "interval", c.Interval, "time between simulation cycles")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Size, "size", c.Size, "grid edge length")
	fs.Float64Var(&c.Probability, "probability", c.Probability, "base spread probability (0.01-1)")
	fs.StringVar(&c.Wind, "wind", c.Wind, "wind direction: N, S, E or W")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn, error")
}

// SimConfig renders the simulation settings in factory map form.
func (c *Config) SimConfig() map[string]string {
	return map[string]string{
		"size":        strconv.Itoa(c.Size),
		"seed":        strconv.FormatInt(c.Seed, 10),
		"probability": strconv.FormatFloat(c.Probability, 'f', -1, 64),
		"wind":        c.Wind,
	}
}

// Logger builds the shell logger at the configured level.
func (c *Config) Logger() (*log.Logger, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return log.NewWithOptions(logOutput(), log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          c.Sim,
	}), nil
}
