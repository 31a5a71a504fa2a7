// Package loop provides the fixed-timestep accumulator that decouples the
// simulation rate from the render rate.
package loop

import "time"

// Stepper converts elapsed wall time into a number of fixed simulation steps.
// At most MaxSteps are returned per call; backlog beyond that is dropped so a
// stalled frame never triggers a burst of catch-up ticks.
type Stepper struct {
	step     time.Duration
	maxSteps int
	acc      time.Duration
	total    int
}

// NewStepper creates a stepper for tickRate steps per second.
// Non-positive arguments fall back to 30 Hz and 5 steps.
func NewStepper(tickRate, maxSteps int) *Stepper {
	if tickRate <= 0 {
		tickRate = 30
	}
	if maxSteps <= 0 {
		maxSteps = 5
	}
	return &Stepper{
		step:     time.Second / time.Duration(tickRate),
		maxSteps: maxSteps,
	}
}

// Step returns the duration of one simulation step.
func (s *Stepper) Step() time.Duration {
	return s.step
}

// Advance adds elapsed to the accumulator and returns how many steps to run.
func (s *Stepper) Advance(elapsed time.Duration) int {
	if elapsed < 0 {
		elapsed = 0
	}
	s.acc += elapsed

	n := int(s.acc / s.step)
	if n > s.maxSteps {
		n = s.maxSteps
		s.acc = 0
	} else {
		s.acc -= time.Duration(n) * s.step
	}
	s.total += n
	return n
}

// Pending returns the accumulated time not yet consumed by a step.
func (s *Stepper) Pending() time.Duration {
	return s.acc
}

// Total returns the number of steps issued since the last Reset.
func (s *Stepper) Total() int {
	return s.total
}

// Reset discards accumulated time and the step count.
func (s *Stepper) Reset() {
	s.acc = 0
	s.total = 0
}
