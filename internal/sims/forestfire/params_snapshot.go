package forestfire

import (
	"math"
	"strconv"

	"forestfire/internal/core"
)

const (
	keyProbability = "probability"
	keyWind        = "wind"
)

// Parameters reports the live run settings for HUD display.
func (s *Sim) Parameters() core.ParameterSnapshot {
	counts := s.forest.Counts()
	groups := []core.ParameterGroup{
		{
			Name: "Fire",
			Params: []core.Parameter{
				floatParam(keyProbability, "Probability", s.cfg.Probability),
				{Key: keyWind, Label: "Wind", Type: core.ParamTypeChoice, Value: strconv.Itoa(int(s.cfg.Wind))},
			},
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				intParam("size", "Grid size", s.cfg.Size),
				int64Param("seed", "Seed", s.seed),
				intParam("cycles", "Cycles", s.Cycles()),
				intParam("burning", "Burning", counts.Burning),
				intParam("scorched", "Scorched", counts.Scorched),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the two run settings a shell can change.
func (s *Sim) ParameterControls() []core.ParameterControl {
	choices := make([]string, len(directionNames))
	for i := range directionNames {
		choices[i] = Direction(i).Short()
	}
	return []core.ParameterControl{
		{
			Key: keyProbability, Label: "Probability", Type: core.ParamTypeFloat,
			Step: ProbabilityStep,
			Min:  MinProbability, HasMin: true,
			Max: MaxProbability, HasMax: true,
		},
		{
			Key: keyWind, Label: "Wind", Type: core.ParamTypeChoice,
			Step: 1, Min: 0, HasMin: true, Max: float64(West), HasMax: true,
			Choices: choices,
		},
	}
}

// SetFloatParameter updates the spread probability, clamped to the control
// bounds. Values take effect on the next step.
func (s *Sim) SetFloatParameter(key string, value float64) bool {
	if key != keyProbability || math.IsNaN(value) {
		return false
	}
	value = math.Max(MinProbability, math.Min(MaxProbability, value))
	s.cfg.Probability = math.Round(value/ProbabilityStep) / math.Round(1/ProbabilityStep)
	return true
}

// SetIntParameter selects the wind direction by index.
func (s *Sim) SetIntParameter(key string, value int) bool {
	if key != keyWind {
		return false
	}
	d := Direction(value)
	if value < 0 || !d.Valid() {
		return false
	}
	s.cfg.Wind = d
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}
