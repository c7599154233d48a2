package forestfire

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"forestfire/internal/core"
)

// ErrInvalidArgument is wrapped by every error the engine returns for bad
// coordinates, probabilities or directions.
var ErrInvalidArgument = errors.New("invalid argument")

// Counts tallies cells by state.
type Counts struct {
	Untouched int
	Burning   int
	Scorched  int
}

// Forest is an N×N grid of cells and the fire-spread engine that advances it.
// A Forest is not safe for concurrent use; each instance owns its generator.
type Forest struct {
	size    int
	cells   []Cell
	burning []int
	rng     *rand.Rand
}

// New returns an untouched forest of the given size seeded with seed.
func New(size int, seed int64) (*Forest, error) {
	return NewWithRand(size, core.NewRNG(seed).Source())
}

// NewWithRand returns an untouched forest drawing from r.
func NewWithRand(size int, r *rand.Rand) (*Forest, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidArgument)
	}
	return &Forest{
		size:    size,
		cells:   make([]Cell, size*size),
		burning: make([]int, 0, size),
		rng:     r,
	}, nil
}

// Size returns N.
func (f *Forest) Size() int { return f.size }

// Reset returns every cell to untouched and replaces the generator with a
// fresh PCG seeded with seed. A source passed to NewWithRand does not survive
// a Reset.
func (f *Forest) Reset(seed int64) {
	for i := range f.cells {
		f.cells[i] = Cell{}
	}
	f.burning = f.burning[:0]
	f.rng = core.NewRNG(seed).Source()
}

// Ignite sets the cell at (row, col) on fire if it is untouched. Igniting a
// burning or scorched cell has no effect.
func (f *Forest) Ignite(row, col int) error {
	idx, err := f.index(row, col)
	if err != nil {
		return err
	}
	f.cells[idx].Ignite()
	return nil
}

// Center returns the coordinate fires are started from.
func (f *Forest) Center() (row, col int) { return f.size / 2, f.size / 2 }

// IgniteCenter ignites the centre cell.
func (f *Forest) IgniteCenter() error {
	return f.Ignite(f.Center())
}

// Step advances the fire by one tick. Every cell burning at entry tests each
// untouched orthogonal neighbor against the wind-adjusted probability, then
// burns for one more step. Cells ignited during this step do not spread or
// age until the next one. Invalid arguments are rejected before any cell
// changes.
func (f *Forest) Step(p float64, wind Direction) error {
	if err := checkProbability(p); err != nil {
		return err
	}
	if !wind.Valid() {
		return fmt.Errorf("%w: wind direction %v", ErrInvalidArgument, wind)
	}

	f.burning = f.burning[:0]
	for i := range f.cells {
		if f.cells[i].IsBurning() {
			f.burning = append(f.burning, i)
		}
	}

	for _, idx := range f.burning {
		row, col := idx/f.size, idx%f.size
		for _, dir := range spreadOrder {
			dr, dc := dir.Offset()
			nr, nc := row+dr, col+dc
			if !f.inBounds(nr, nc) {
				continue
			}
			n := &f.cells[nr*f.size+nc]
			if n.State() != Untouched {
				continue
			}
			if f.rng.Float64() < spreadChance(p, wind, dir) {
				n.Ignite()
			}
		}
		f.cells[idx].Advance()
	}
	return nil
}

// spreadChance is the per-neighbor ignition chance used by Step. A base
// probability of exactly 0 or 1 is absolute; wind only biases the values in
// between.
func spreadChance(p float64, wind, dir Direction) float64 {
	if p <= 0 || p >= 1 {
		return p
	}
	return adjust(p, wind, dir)
}

// HasActiveFire reports whether any cell is still burning.
func (f *Forest) HasActiveFire() bool {
	for i := range f.cells {
		if f.cells[i].IsBurning() {
			return true
		}
	}
	return false
}

// Cell returns a copy of the cell at (row, col).
func (f *Forest) Cell(row, col int) (Cell, error) {
	idx, err := f.index(row, col)
	if err != nil {
		return Cell{}, err
	}
	return f.cells[idx], nil
}

// State returns the burn state at (row, col).
func (f *Forest) State(row, col int) (State, error) {
	c, err := f.Cell(row, col)
	return c.State(), err
}

// IsBurned reports whether the cell at (row, col) is scorched.
func (f *Forest) IsBurned(row, col int) (bool, error) {
	c, err := f.Cell(row, col)
	return c.IsBurned(), err
}

// BurnDuration returns the burn counter at (row, col).
func (f *Forest) BurnDuration(row, col int) (int, error) {
	c, err := f.Cell(row, col)
	return c.BurnDuration(), err
}

// States copies every cell state into dst in row-major order and returns it.
func (f *Forest) States(dst []State) []State {
	dst = dst[:0]
	for i := range f.cells {
		dst = append(dst, f.cells[i].State())
	}
	return dst
}

// Values writes each cell's State as a display byte into dst in row-major
// order and returns it.
func (f *Forest) Values(dst []uint8) []uint8 {
	dst = dst[:0]
	for i := range f.cells {
		dst = append(dst, uint8(f.cells[i].State()))
	}
	return dst
}

// Counts tallies the grid by state.
func (f *Forest) Counts() Counts {
	var c Counts
	for i := range f.cells {
		switch f.cells[i].State() {
		case Untouched:
			c.Untouched++
		case Burning:
			c.Burning++
		case Scorched:
			c.Scorched++
		}
	}
	return c
}

func (f *Forest) inBounds(row, col int) bool {
	return row >= 0 && row < f.size && col >= 0 && col < f.size
}

func (f *Forest) index(row, col int) (int, error) {
	if !f.inBounds(row, col) {
		return 0, fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", ErrInvalidArgument, row, col, f.size, f.size)
	}
	return row*f.size + col, nil
}
