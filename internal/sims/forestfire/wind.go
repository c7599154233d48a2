package forestfire

import (
	"fmt"
	"math"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Direction is one of the four orthogonal compass directions. It names both
// the global wind (the way fire is blown toward) and the way fire spreads
// from a burning cell to a neighbor.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// WindShift is the probability added downwind and removed upwind.
const WindShift = 0.1

var directionNames = [...]string{North: "NORTH", South: "SOUTH", East: "EAST", West: "WEST"}

// spreadOrder is the fixed order neighbors are tested in. Keeping it fixed
// makes seeded runs reproducible.
var spreadOrder = [...]Direction{North, South, West, East}

// Directions returns the four directions in spread evaluation order.
func Directions() []Direction {
	out := make([]Direction, len(spreadOrder))
	copy(out, spreadOrder[:])
	return out
}

// Valid reports whether d is one of the four defined directions.
func (d Direction) Valid() bool { return d <= West }

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Short returns the single-letter token for d.
func (d Direction) Short() string {
	if !d.Valid() {
		return "?"
	}
	return directionNames[d][:1]
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Offset returns the row and column delta one step toward d. North is up,
// i.e. toward row 0.
func (d Direction) Offset() (dRow, dCol int) {
	switch d {
	case North:
		return -1, 0
	case South:
		return 1, 0
	case East:
		return 0, 1
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}

// ParseDirection converts a token such as "N", "north" or "WEST" into a
// Direction. Unknown tokens are rejected; there is no default.
func ParseDirection(token string) (Direction, error) {
	norm := strings.ToUpper(strings.TrimSpace(token))
	for i, name := range directionNames {
		if norm == name || (norm != "" && norm == name[:1]) {
			return Direction(i), nil
		}
	}
	if hint := suggestDirection(norm); hint != "" {
		return 0, fmt.Errorf("%w: unknown direction %q (did you mean %s?)", ErrInvalidArgument, token, hint)
	}
	return 0, fmt.Errorf("%w: unknown direction %q (want N, S, E or W)", ErrInvalidArgument, token)
}

func suggestDirection(token string) string {
	if len(token) < 2 {
		return ""
	}
	best, bestDist := "", math.MaxInt
	for _, name := range directionNames {
		dist := levenshtein.ComputeDistance(token, name)
		if dist > levenshteinLimit(len(name)) {
			continue
		}
		if dist < bestDist {
			best, bestDist = name, dist
		}
	}
	return best
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	default:
		return 2
	}
}

// Adjust biases the base spread probability for one spread direction under
// the given wind: +WindShift downwind, -WindShift upwind, unchanged
// crosswind. The result is clamped to [0, 1].
func Adjust(p float64, wind, spread Direction) (float64, error) {
	if err := checkProbability(p); err != nil {
		return 0, err
	}
	if !wind.Valid() {
		return 0, fmt.Errorf("%w: wind direction %v", ErrInvalidArgument, wind)
	}
	if !spread.Valid() {
		return 0, fmt.Errorf("%w: spread direction %v", ErrInvalidArgument, spread)
	}
	return adjust(p, wind, spread), nil
}

func adjust(p float64, wind, spread Direction) float64 {
	switch spread {
	case wind:
		return math.Min(p+WindShift, 1)
	case wind.Opposite():
		return math.Max(p-WindShift, 0)
	default:
		return p
	}
}

func checkProbability(p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: probability %v outside [0, 1]", ErrInvalidArgument, p)
	}
	return nil
}
