package forestfire

import (
	"errors"
	"math"
	"math/rand/v2"
	"slices"
	"testing"
)

func mustForest(t *testing.T, size int, seed int64) *Forest {
	t.Helper()
	f, err := New(size, seed)
	if err != nil {
		t.Fatalf("New(%d): %v", size, err)
	}
	return f
}

func mustStep(t *testing.T, f *Forest, p float64, wind Direction) {
	t.Helper()
	if err := f.Step(p, wind); err != nil {
		t.Fatalf("Step(%v, %v): %v", p, wind, err)
	}
}

func expectCell(t *testing.T, f *Forest, row, col int, state State, duration int) {
	t.Helper()
	c, err := f.Cell(row, col)
	if err != nil {
		t.Fatal(err)
	}
	if c.State() != state || c.BurnDuration() != duration {
		t.Fatalf("cell (%d,%d) = %v/%d, expected %v/%d", row, col, c.State(), c.BurnDuration(), state, duration)
	}
}

func TestNewAllUntouched(t *testing.T) {
	for _, size := range []int{1, 3, 11, 40} {
		f := mustForest(t, size, 1)
		for row := 0; row < size; row++ {
			for col := 0; col < size; col++ {
				expectCell(t, f, row, col, Untouched, 0)
			}
		}
		if f.HasActiveFire() {
			t.Fatalf("fresh %dx%d forest reports active fire", size, size)
		}
	}
}

func TestNewRejectsInvalidArguments(t *testing.T) {
	for _, size := range []int{0, -3, MaxSize + 1, 1 << 30} {
		if _, err := New(size, 1); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("New(%d): expected ErrInvalidArgument, got %v", size, err)
		}
	}
	if _, err := NewWithRand(5, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("NewWithRand(nil): expected ErrInvalidArgument, got %v", err)
	}
}

func TestIgniteIsIdempotent(t *testing.T) {
	f := mustForest(t, 5, 1)
	if err := f.Ignite(2, 3); err != nil {
		t.Fatal(err)
	}
	expectCell(t, f, 2, 3, Burning, 0)
	mustStep(t, f, 0, North)
	expectCell(t, f, 2, 3, Burning, 1)

	if err := f.Ignite(2, 3); err != nil {
		t.Fatal(err)
	}
	expectCell(t, f, 2, 3, Burning, 1)

	mustStep(t, f, 0, North)
	if err := f.Ignite(2, 3); err != nil {
		t.Fatal(err)
	}
	expectCell(t, f, 2, 3, Scorched, 2)
}

func TestCoordinatesOutOfBounds(t *testing.T) {
	f := mustForest(t, 4, 1)
	bad := [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {10, 10}}
	for _, rc := range bad {
		if err := f.Ignite(rc[0], rc[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("Ignite(%d,%d): expected ErrInvalidArgument, got %v", rc[0], rc[1], err)
		}
		if _, err := f.State(rc[0], rc[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("State(%d,%d): expected ErrInvalidArgument, got %v", rc[0], rc[1], err)
		}
		if _, err := f.IsBurned(rc[0], rc[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("IsBurned(%d,%d): expected ErrInvalidArgument, got %v", rc[0], rc[1], err)
		}
		if _, err := f.BurnDuration(rc[0], rc[1]); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("BurnDuration(%d,%d): expected ErrInvalidArgument, got %v", rc[0], rc[1], err)
		}
	}
	if c := f.Counts(); c.Untouched != 16 {
		t.Fatalf("rejected calls mutated the grid: %+v", c)
	}
}

func TestStepRejectsInvalidArgumentsWithoutMutation(t *testing.T) {
	f := mustForest(t, 5, 3)
	if err := f.IgniteCenter(); err != nil {
		t.Fatal(err)
	}
	mustStep(t, f, 0.5, East)
	before := f.States(nil)
	beforeDur, _ := f.BurnDuration(2, 2)

	cases := []struct {
		p    float64
		wind Direction
	}{
		{-0.1, North},
		{1.5, North},
		{math.NaN(), North},
		{0.5, Direction(4)},
	}
	for _, tc := range cases {
		if err := f.Step(tc.p, tc.wind); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("Step(%v, %v): expected ErrInvalidArgument, got %v", tc.p, tc.wind, err)
		}
	}
	if !slices.Equal(before, f.States(nil)) {
		t.Fatal("rejected step mutated cell states")
	}
	if got, _ := f.BurnDuration(2, 2); got != beforeDur {
		t.Fatalf("rejected step changed burn duration from %d to %d", beforeDur, got)
	}
}

func TestFireNeverSpreadsDiagonally(t *testing.T) {
	allowed := map[[2]int]bool{{5, 5}: true, {4, 5}: true, {6, 5}: true, {5, 4}: true, {5, 6}: true}
	for seed := int64(0); seed < 40; seed++ {
		for _, p := range []float64{0.3, 0.7, 1} {
			f := mustForest(t, 11, seed)
			if err := f.Ignite(5, 5); err != nil {
				t.Fatal(err)
			}
			mustStep(t, f, p, Direction(seed%4))
			for row := 0; row < 11; row++ {
				for col := 0; col < 11; col++ {
					st, _ := f.State(row, col)
					if st != Untouched && !allowed[[2]int{row, col}] {
						t.Fatalf("seed %d p %v: cell (%d,%d) is %v after one step", seed, p, row, col, st)
					}
				}
			}
		}
	}
}

func TestStepUsesSnapshotOfBurningCells(t *testing.T) {
	f := mustForest(t, 11, 7)
	if err := f.Ignite(5, 5); err != nil {
		t.Fatal(err)
	}
	mustStep(t, f, 1, South)

	for _, rc := range [][2]int{{4, 5}, {6, 5}, {5, 4}, {5, 6}} {
		expectCell(t, f, rc[0], rc[1], Burning, 0)
	}
	for _, rc := range [][2]int{{3, 5}, {7, 5}, {5, 3}, {5, 7}} {
		expectCell(t, f, rc[0], rc[1], Untouched, 0)
	}
	expectCell(t, f, 5, 5, Burning, 1)
}

func TestDeterministicThreeByThree(t *testing.T) {
	f := mustForest(t, 3, 11)
	if err := f.Ignite(1, 1); err != nil {
		t.Fatal(err)
	}
	cross := [][2]int{{0, 1}, {2, 1}, {1, 0}, {1, 2}}
	corners := [][2]int{{0, 0}, {0, 2}, {2, 0}, {2, 2}}

	mustStep(t, f, 1, North)
	expectCell(t, f, 1, 1, Burning, 1)
	for _, rc := range cross {
		expectCell(t, f, rc[0], rc[1], Burning, 0)
	}
	for _, rc := range corners {
		expectCell(t, f, rc[0], rc[1], Untouched, 0)
	}

	mustStep(t, f, 1, North)
	expectCell(t, f, 1, 1, Scorched, 2)
	for _, rc := range cross {
		expectCell(t, f, rc[0], rc[1], Burning, 1)
	}
	// Corners are orthogonal neighbors of the edge cells, never of the centre.
	for _, rc := range corners {
		expectCell(t, f, rc[0], rc[1], Burning, 0)
	}

	mustStep(t, f, 1, North)
	for _, rc := range cross {
		expectCell(t, f, rc[0], rc[1], Scorched, 2)
	}
	for _, rc := range corners {
		expectCell(t, f, rc[0], rc[1], Burning, 1)
	}

	mustStep(t, f, 1, North)
	if f.HasActiveFire() {
		t.Fatal("expected fire out after four steps")
	}
	if c := f.Counts(); c.Scorched != 9 {
		t.Fatalf("expected every cell scorched, got %+v", c)
	}
}

func TestZeroProbabilityBurnsOnlyIgnitedCell(t *testing.T) {
	for _, wind := range Directions() {
		f := mustForest(t, 11, 5)
		if err := f.IgniteCenter(); err != nil {
			t.Fatal(err)
		}
		mustStep(t, f, 0, wind)
		if !f.HasActiveFire() {
			t.Fatalf("wind %v: fire out after one step", wind)
		}
		expectCell(t, f, 5, 5, Burning, 1)

		mustStep(t, f, 0, wind)
		if f.HasActiveFire() {
			t.Fatalf("wind %v: fire still active after two steps", wind)
		}
		expectCell(t, f, 5, 5, Scorched, 2)
		if c := f.Counts(); c.Scorched != 1 || c.Untouched != 120 {
			t.Fatalf("wind %v: expected only centre scorched, got %+v", wind, c)
		}
	}
}

func TestScorchedCellsNeverChange(t *testing.T) {
	f := mustForest(t, 9, 21)
	if err := f.IgniteCenter(); err != nil {
		t.Fatal(err)
	}
	scorched := map[int]bool{}
	for step := 0; step < 200 && f.HasActiveFire(); step++ {
		states := f.States(nil)
		for idx := range scorched {
			if states[idx] != Scorched {
				t.Fatalf("step %d: scorched cell %d became %v", step, idx, states[idx])
			}
		}
		for idx, st := range states {
			if st == Scorched {
				scorched[idx] = true
			}
		}
		mustStep(t, f, 0.6, West)
	}
	final := f.States(nil)
	for i := 0; i < 5; i++ {
		mustStep(t, f, 1, West)
	}
	if !slices.Equal(final, f.States(nil)) {
		t.Fatal("steps after the fire went out changed the grid")
	}
}

func TestEveryRunTerminates(t *testing.T) {
	const size = 11
	limit := 4*size*size + 4
	for _, p := range []float64{0.01, 0.3, 0.7, 0.99, 1} {
		for _, wind := range Directions() {
			for seed := int64(0); seed < 5; seed++ {
				f := mustForest(t, size, seed)
				if err := f.IgniteCenter(); err != nil {
					t.Fatal(err)
				}
				steps := 0
				for f.HasActiveFire() {
					if steps >= limit {
						t.Fatalf("p %v wind %v seed %d: fire still burning after %d steps", p, wind, seed, steps)
					}
					mustStep(t, f, p, wind)
					steps++
				}
				c := f.Counts()
				if c.Burning != 0 || c.Untouched+c.Scorched != size*size {
					t.Fatalf("unexpected final counts %+v", c)
				}
			}
		}
	}
}

func TestSeededRunsAreReproducible(t *testing.T) {
	run := func(f *Forest) [][]State {
		var frames [][]State
		if err := f.IgniteCenter(); err != nil {
			t.Fatal(err)
		}
		for f.HasActiveFire() {
			mustStep(t, f, 0.45, East)
			frames = append(frames, f.States(nil))
		}
		return frames
	}

	a := run(mustForest(t, 15, 99))
	b := run(mustForest(t, 15, 99))
	if len(a) != len(b) {
		t.Fatalf("runs with equal seeds took %d and %d steps", len(a), len(b))
	}
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			t.Fatalf("runs with equal seeds diverged at step %d", i+1)
		}
	}

	f := mustForest(t, 15, 1)
	run(f)
	f.Reset(99)
	if c := f.Counts(); c.Untouched != 15*15 {
		t.Fatalf("Reset left cells touched: %+v", c)
	}
	c := run(f)
	if len(c) != len(a) || !slices.Equal(c[len(c)-1], a[len(a)-1]) {
		t.Fatal("Reset with the same seed did not reproduce the run")
	}
}

func TestResetReplacesCustomSource(t *testing.T) {
	custom, err := NewWithRand(9, rand.New(rand.NewPCG(5, 5)))
	if err != nil {
		t.Fatal(err)
	}
	custom.Reset(21)
	seeded := mustForest(t, 9, 21)
	for _, f := range []*Forest{custom, seeded} {
		if err := f.IgniteCenter(); err != nil {
			t.Fatal(err)
		}
	}
	for seeded.HasActiveFire() {
		mustStep(t, custom, 0.5, West)
		mustStep(t, seeded, 0.5, West)
		if !slices.Equal(custom.States(nil), seeded.States(nil)) {
			t.Fatal("expected Reset to draw from a fresh seeded generator")
		}
	}
	if custom.HasActiveFire() {
		t.Fatal("expected both forests to finish together")
	}
}

func TestWindBiasesSpread(t *testing.T) {
	downwind, upwind := 0, 0
	for seed := int64(0); seed < 2000; seed++ {
		f := mustForest(t, 3, seed)
		if err := f.IgniteCenter(); err != nil {
			t.Fatal(err)
		}
		mustStep(t, f, 0.5, East)
		if st, _ := f.State(1, 2); st == Burning {
			downwind++
		}
		if st, _ := f.State(1, 0); st == Burning {
			upwind++
		}
	}
	if downwind <= upwind+200 {
		t.Fatalf("expected east wind to favor eastward spread: east %d, west %d", downwind, upwind)
	}
}

type countingSource struct {
	src   rand.Source
	draws int
}

func (c *countingSource) Uint64() uint64 {
	c.draws++
	return c.src.Uint64()
}

func TestDrawsOnlyForUntouchedNeighbors(t *testing.T) {
	for _, p := range []float64{0, 0.5, 1} {
		src := &countingSource{src: rand.NewPCG(1, 2)}
		f, err := NewWithRand(3, rand.New(src))
		if err != nil {
			t.Fatal(err)
		}
		if err := f.IgniteCenter(); err != nil {
			t.Fatal(err)
		}
		mustStep(t, f, p, North)
		if src.draws != 4 {
			t.Fatalf("p %v: expected 4 draws for the centre cell, got %d", p, src.draws)
		}
	}

	src := &countingSource{src: rand.NewPCG(3, 4)}
	f, err := NewWithRand(3, rand.New(src))
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Ignite(0, 0); err != nil {
		t.Fatal(err)
	}
	if err := f.Ignite(0, 1); err != nil {
		t.Fatal(err)
	}
	mustStep(t, f, 0.5, North)
	if src.draws != 3 {
		t.Fatalf("expected 3 draws for two adjacent corner/edge fires, got %d", src.draws)
	}
}
