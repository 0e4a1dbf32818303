package components

import "testing"

func TestTimerOnce(t *testing.T) {
	tm := NewTimer(0.3, Once)

	tm.Tick(0.1)
	if tm.Finished() || tm.JustFinished() {
		t.Fatal("timer finished too early")
	}
	tm.Tick(0.25)
	if !tm.JustFinished() || !tm.Finished() {
		t.Fatal("timer should finish on the tick that crosses its duration")
	}
	tm.Tick(0.1)
	if tm.JustFinished() {
		t.Error("JustFinished must only be reported once")
	}
	if !tm.Finished() {
		t.Error("once-timer stays finished until reset")
	}

	tm.Reset()
	if tm.Finished() || tm.Elapsed != 0 {
		t.Error("Reset should clear elapsed and finished")
	}
}

func TestTimerRepeating(t *testing.T) {
	tm := NewTimer(0.5, Repeating)

	fired := 0
	for i := 0; i < 8; i++ {
		tm.Tick(0.25)
		if tm.JustFinished() {
			fired++
		}
	}
	// 2.0 seconds at a 0.5s period.
	if fired != 4 {
		t.Errorf("fired %d times, want 4", fired)
	}
	if tm.Elapsed < 0 || tm.Elapsed >= tm.Duration {
		t.Errorf("elapsed %v outside [0, duration)", tm.Elapsed)
	}
}

func TestFinishedTimer(t *testing.T) {
	tm := FinishedTimer(2)
	if !tm.Finished() {
		t.Fatal("FinishedTimer should start finished")
	}
	tm.Tick(0.1)
	if tm.JustFinished() {
		t.Error("an already finished timer must not report JustFinished again")
	}

	tm.Restart(0.05)
	tm.Tick(0.1)
	if !tm.JustFinished() {
		t.Error("restarted timer should fire")
	}
}

func TestTimerFraction(t *testing.T) {
	tm := NewTimer(2, Once)
	tm.Tick(0.5)
	if got := tm.Fraction(); got != 0.25 {
		t.Errorf("Fraction = %v, want 0.25", got)
	}
	if got := tm.Remaining(); got != 1.5 {
		t.Errorf("Remaining = %v, want 1.5", got)
	}
}
