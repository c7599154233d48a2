package forestfire

import (
	"fmt"
	"strconv"
)

const (
	// DefaultSize is the grid edge used when none is configured.
	DefaultSize = 11
	// MaxSize is the largest grid edge accepted.
	MaxSize = 1024
	// DefaultProbability is the base spread probability a new run starts with.
	DefaultProbability = 0.3
	// MinProbability and MaxProbability bound the interactive control.
	MinProbability = 0.01
	MaxProbability = 1.0
	// ProbabilityStep is the control increment.
	ProbabilityStep = 0.01
)

// Config controls the forest fire simulation.
type Config struct {
	Size        int
	Seed        int64
	Probability float64
	Wind        Direction
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Size:        DefaultSize,
		Seed:        42,
		Probability: DefaultProbability,
		Wind:        North,
	}
}

// Validate checks every field and wraps ErrInvalidArgument on failure.
func (c Config) Validate() error {
	if err := checkSize(c.Size); err != nil {
		return err
	}
	if err := checkProbability(c.Probability); err != nil {
		return err
	}
	if !c.Wind.Valid() {
		return fmt.Errorf("%w: wind direction %v", ErrInvalidArgument, c.Wind)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value
// pairs). Unknown keys are ignored; malformed values are errors.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	if v, ok := cfg["size"]; ok {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return c, fmt.Errorf("%w: size %q", ErrInvalidArgument, v)
		}
		if err := checkSize(parsed); err != nil {
			return c, err
		}
		c.Size = parsed
	}
	if v, ok := cfg["seed"]; ok {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c, fmt.Errorf("%w: seed %q", ErrInvalidArgument, v)
		}
		c.Seed = parsed
	}
	if v, ok := cfg["probability"]; ok {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return c, fmt.Errorf("%w: probability %q", ErrInvalidArgument, v)
		}
		c.Probability = parsed
	}
	if v, ok := cfg["wind"]; ok {
		dir, err := ParseDirection(v)
		if err != nil {
			return c, err
		}
		c.Wind = dir
	}
	return c, c.Validate()
}

// Map renders the config back into FromMap form.
func (c Config) Map() map[string]string {
	return map[string]string{
		"size":        strconv.Itoa(c.Size),
		"seed":        strconv.FormatInt(c.Seed, 10),
		"probability": strconv.FormatFloat(c.Probability, 'f', -1, 64),
		"wind":        c.Wind.Short(),
	}
}

func checkSize(size int) error {
	if size <= 0 || size > MaxSize {
		return fmt.Errorf("%w: grid size %d outside 1..%d", ErrInvalidArgument, size, MaxSize)
	}
	return nil
}
