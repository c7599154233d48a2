package core

import (
	"math"
	"strconv"
)

// Next returns the value one direction step away from value, which is the
// control's current value in Parameter form. Choice controls wrap around
// their Choices; numeric controls clamp to their bounds. ok is false when
// the value would not change or cannot be parsed.
func (c ParameterControl) Next(value string, direction int) (next float64, ok bool) {
	if direction == 0 {
		return 0, false
	}
	switch c.Type {
	case ParamTypeChoice:
		n := len(c.Choices)
		cur, err := strconv.Atoi(value)
		if n == 0 || err != nil {
			return 0, false
		}
		idx := ((cur+direction)%n + n) % n
		return float64(idx), idx != cur
	case ParamTypeInt:
		cur, err := strconv.Atoi(value)
		if err != nil {
			return 0, false
		}
		step := math.Max(1, math.Round(c.Step))
		return c.clamp(float64(cur), float64(direction)*step)
	case ParamTypeFloat:
		cur, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, false
		}
		step := c.Step
		if step <= 0 {
			step = 0.05
		}
		return c.clamp(cur, float64(direction)*step)
	}
	return 0, false
}

func (c ParameterControl) clamp(current, delta float64) (float64, bool) {
	target := current + delta
	if c.HasMin && target < c.Min {
		target = c.Min
	}
	if c.HasMax && target > c.Max {
		target = c.Max
	}
	if math.Abs(target-current) < 1e-9 {
		return 0, false
	}
	return target, true
}

// Nudge moves the control named key on sim by direction steps through the
// sim's parameter setters. It reports whether the value changed.
func Nudge(sim Sim, key string, direction int) bool {
	controls, ok := sim.(ParameterControlsProvider)
	if !ok {
		return false
	}
	params, ok := sim.(ParameterProvider)
	if !ok {
		return false
	}
	for _, ctrl := range controls.ParameterControls() {
		if ctrl.Key != key {
			continue
		}
		param, ok := params.Parameters().Lookup(key)
		if !ok {
			return false
		}
		next, ok := ctrl.Next(param.Value, direction)
		if !ok {
			return false
		}
		switch ctrl.Type {
		case ParamTypeInt, ParamTypeChoice:
			setter, ok := sim.(IntParameterSetter)
			return ok && setter.SetIntParameter(key, int(math.Round(next)))
		case ParamTypeFloat:
			setter, ok := sim.(FloatParameterSetter)
			return ok && setter.SetFloatParameter(key, next)
		}
		return false
	}
	return false
}
