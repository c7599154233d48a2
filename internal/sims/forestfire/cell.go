package forestfire

// State enumerates the burn states of a forest cell.
type State uint8

const (
	Untouched State = iota
	Burning
	Scorched
)

// ScorchAfter is the number of step increments a cell burns before it is
// scorched.
const ScorchAfter = 2

func (s State) String() string {
	switch s {
	case Untouched:
		return "untouched"
	case Burning:
		return "burning"
	case Scorched:
		return "scorched"
	default:
		return "unknown"
	}
}

// Cell is a single forest unit. The zero value is an untouched cell.
type Cell struct {
	state        State
	burnDuration uint8
}

// State returns the current burn state.
func (c Cell) State() State { return c.state }

// BurnDuration returns how many steps the cell has burned for.
func (c Cell) BurnDuration() int { return int(c.burnDuration) }

// IsBurning reports whether the cell is on fire right now.
func (c Cell) IsBurning() bool { return c.state == Burning }

// IsBurned reports whether the cell has burned out.
func (c Cell) IsBurned() bool { return c.state == Scorched }

// Ignite sets an untouched cell on fire and reports whether it did.
func (c *Cell) Ignite() bool {
	if c.state != Untouched {
		return false
	}
	c.state = Burning
	c.burnDuration = 0
	return true
}

// Advance counts one step of burning. A cell that reaches ScorchAfter is
// scorched and never changes again.
func (c *Cell) Advance() {
	if c.state != Burning {
		return
	}
	c.burnDuration++
	if c.burnDuration >= ScorchAfter {
		c.state = Scorched
	}
}
