package core

import "time"

// FixedStep paces simulation ticks at a steady interval. Shells use it to
// step the engine on a cadence and to show a countdown to the next tick.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller firing once per interval.
// The first call to ShouldStep fires immediately.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetInterval(interval)
	fs.accumulator = fs.step
	return fs
}

// SetInterval changes the tick interval. It is safe to call from the main loop.
func (f *FixedStep) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = time.Second
	}
	f.step = interval
}

// Interval returns the configured tick interval.
func (f *FixedStep) Interval() time.Duration { return f.step }

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		if f.accumulator >= f.step {
			f.accumulator = 0
		}
		return true
	}
	return false
}

// Remaining reports the time left until the next tick as of the last poll.
func (f *FixedStep) Remaining() time.Duration {
	left := f.step - f.accumulator
	if left < 0 {
		return 0
	}
	return left
}

// Pause drops elapsed time so a resumed run waits a full interval.
func (f *FixedStep) Pause() {
	f.last = time.Time{}
	f.accumulator = 0
}

// WithClock replaces the time source and returns f.
func (f *FixedStep) WithClock(now func() time.Time) *FixedStep {
	if now != nil {
		f.now = now
	}
	return f
}
