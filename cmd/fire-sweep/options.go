package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"forestfire/internal/sims/forestfire"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// applyOverrides layers key=value pairs over base using the simulation's
// own config parser.
func applyOverrides(base forestfire.Config, overrides []string) (forestfire.Config, error) {
	if len(overrides) == 0 {
		return base, nil
	}
	m := base.Map()
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return base, fmt.Errorf("override %q: expected key=value", kv)
		}
		if _, known := m[key]; !known {
			return base, fmt.Errorf("override %q: unknown key %q", kv, key)
		}
		m[key] = strings.TrimSpace(value)
	}
	return forestfire.FromMap(m)
}

// maxRangePoints caps how many probabilities a from:to:step range expands to.
const maxRangePoints = 1000

// parseProbabilities accepts a comma list ("0.1,0.5") or an inclusive
// range "from:to:step".
func parseProbabilities(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("no probabilities given")
	}
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("range %q: expected from:to:step", s)
		}
		var v [3]float64
		for i, p := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("range %q: %w", s, err)
			}
			v[i] = f
		}
		from, to, step := v[0], v[1], v[2]
		if step <= 0 || to < from {
			return nil, fmt.Errorf("range %q: step must be positive and to >= from", s)
		}
		count := math.Floor((to-from)/step+1e-9) + 1
		if math.IsNaN(count) || count > maxRangePoints {
			return nil, fmt.Errorf("range %q: more than %d points", s, maxRangePoints)
		}
		n := int(count)
		out := make([]float64, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, math.Round((from+float64(i)*step)*1e6)/1e6)
		}
		return out, nil
	}
	var out []float64
	for _, p := range strings.Split(s, ",") {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("probability %q: %w", p, err)
		}
		out = append(out, f)
	}
	return out, nil
}

func parseWinds(s string) ([]forestfire.Direction, error) {
	var out []forestfire.Direction
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		d, err := forestfire.ParseDirection(tok)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no wind directions given")
	}
	return out, nil
}
