package core

import "time"

// FixedStep paces the headless tick loop at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{now: time.Now, sleep: time.Sleep}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step reports the configured tick duration.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the loop should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Wait blocks until the next tick is due.
func (f *FixedStep) Wait() {
	for !f.ShouldStep() {
		f.sleep(f.step - f.accumulator)
	}
}
