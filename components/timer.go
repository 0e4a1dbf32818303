package components

// TimerMode selects whether a timer stops or restarts when it elapses.
type TimerMode uint8

const (
	Once TimerMode = iota
	Repeating
)

// Timer counts elapsed seconds towards a duration. It is advanced exactly
// once per tick by the system that owns it.
type Timer struct {
	Duration float32
	Elapsed  float32
	Mode     TimerMode

	finished     bool
	justFinished bool
}

// NewTimer returns a running timer.
func NewTimer(duration float32, mode TimerMode) Timer {
	return Timer{Duration: duration, Mode: mode}
}

// FinishedTimer returns a once-timer that has already elapsed.
func FinishedTimer(duration float32) Timer {
	return Timer{Duration: duration, Elapsed: duration, Mode: Once, finished: true}
}

// Tick advances the timer by dt seconds.
func (t *Timer) Tick(dt float32) {
	t.justFinished = false
	if t.Mode == Once && t.finished {
		return
	}

	t.Elapsed += dt
	if t.Elapsed < t.Duration {
		return
	}

	t.justFinished = true
	switch t.Mode {
	case Repeating:
		if t.Duration > 0 {
			for t.Elapsed >= t.Duration {
				t.Elapsed -= t.Duration
			}
		} else {
			t.Elapsed = 0
		}
	default:
		t.finished = true
		t.Elapsed = t.Duration
	}
}

// Reset restarts the timer from zero, keeping its duration and mode.
func (t *Timer) Reset() {
	t.Elapsed = 0
	t.finished = false
	t.justFinished = false
}

// Restart sets a new duration and resets the timer.
func (t *Timer) Restart(duration float32) {
	t.Duration = duration
	t.Reset()
}

// Finished reports whether a once-timer has elapsed, or whether a repeating
// timer elapsed on the last tick.
func (t *Timer) Finished() bool {
	if t.Mode == Repeating {
		return t.justFinished
	}
	return t.finished
}

// JustFinished reports whether the last Tick crossed the duration.
func (t *Timer) JustFinished() bool { return t.justFinished }

// Fraction returns elapsed/duration in [0, 1].
func (t *Timer) Fraction() float32 {
	if t.Duration <= 0 {
		return 1
	}
	f := t.Elapsed / t.Duration
	if f > 1 {
		return 1
	}
	return f
}

// Remaining returns the seconds left until the timer elapses.
func (t *Timer) Remaining() float32 {
	r := t.Duration - t.Elapsed
	if r < 0 {
		return 0
	}
	return r
}
