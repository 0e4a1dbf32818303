package game

// maxFrameTime caps how much wall time one frame may feed the accumulator.
const maxFrameTime = 0.25

// FixedStep converts variable frame times into whole simulation ticks. A
// bleat press is held until a tick consumes it, so a press on a frame that
// runs no tick still reaches the next one.
type FixedStep struct {
	dt           float32
	acc          float32
	pendingBleat bool
}

// NewFixedStep creates a stepper with tick length dt.
func NewFixedStep(dt float32) *FixedStep {
	return &FixedStep{dt: dt}
}

// Advance adds frameTime to the accumulator and calls step once per whole
// tick. Only the first tick carries the bleat. It returns the ticks run.
func (s *FixedStep) Advance(frameTime float32, in Input, step func(Input)) int {
	s.acc += min(frameTime, maxFrameTime)
	s.pendingBleat = s.pendingBleat || in.Bleat

	n := 0
	for s.acc >= s.dt {
		in.Bleat = s.pendingBleat
		step(in)
		s.pendingBleat = false
		s.acc -= s.dt
		n++
	}
	return n
}

// Reset drops accumulated time and any pending press.
func (s *FixedStep) Reset() {
	s.acc = 0
	s.pendingBleat = false
}
