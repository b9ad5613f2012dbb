package physics

import (
	"errors"
	"fmt"
)

// DefaultBatch is the number of sub-steps run per rendered frame when the
// caller does not override it.
const DefaultBatch = 1000

const (
	// stabilityCoeff relates particle size and stiffness to the largest
	// stable sub-step: dtStable = stabilityCoeff * r^2 / kn.
	stabilityCoeff = 7.5e3
	// substepRefine divides the stable step a further tenfold.
	substepRefine = 10
)

// ErrFrameTooCoarse reports a frame interval shorter than one stable
// sub-step, leaving no valid sub-step count.
var ErrFrameTooCoarse = errors.New("physics: frame interval below one stable sub-step")

// SubstepsPerFrame returns the divisor S that splits a 1/fps frame interval
// into stable sub-steps for particle radius r and stiffness kn. S fixes the
// sub-step size dt = (1/fps)/S and nothing else; how many sub-steps actually
// run per frame is the batch size.
func SubstepsPerFrame(fps, radius, kn float64) int {
	stable := stabilityCoeff * radius * radius / kn
	return int((1.0/fps)/stable) * substepRefine
}

// Stepper drives a world in fixed batches of sub-steps, one batch per
// rendered frame.
type Stepper struct {
	world *World
	dt    float64
	batch int
	step  int
	time  float64
}

// NewStepper derives the sub-step size from the display rate, the scene
// particle radius and the world stiffness, and fixes batch sub-steps per
// frame.
func NewStepper(w *World, fps, radius float64, batch int) (*Stepper, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("physics: fps must be positive, got %g", fps)
	}
	if radius <= 0 {
		return nil, fmt.Errorf("physics: radius must be positive, got %g", radius)
	}
	if w.Kn <= 0 {
		return nil, fmt.Errorf("physics: stiffness must be positive, got %g", w.Kn)
	}
	if batch <= 0 {
		return nil, fmt.Errorf("physics: batch must be positive, got %d", batch)
	}
	s := SubstepsPerFrame(fps, radius, w.Kn)
	if s < 1 {
		return nil, ErrFrameTooCoarse
	}
	return &Stepper{
		world: w,
		dt:    (1.0 / fps) / float64(s),
		batch: batch,
	}, nil
}

func (s *Stepper) Dt() float64   { return s.dt }
func (s *Stepper) Batch() int    { return s.batch }
func (s *Stepper) Time() float64 { return s.time }
func (s *Stepper) Step() int     { return s.step }
func (s *Stepper) World() *World { return s.world }

// Frame advances the world by one batch of sub-steps.
func (s *Stepper) Frame() {
	for i := 0; i < s.batch; i++ {
		s.world.Substep(s.dt)
		s.step++
		s.time += s.dt
	}
}

// Snapshot bundles the render-facing particle state with the sub-step clock.
type Snapshot struct {
	Time      float64
	Step      int
	Particles []ParticleView
}

// Snapshot copies the current render-facing state. Safe to hand to a
// renderer while the stepper keeps running afterward.
func (s *Stepper) Snapshot() *Snapshot {
	return &Snapshot{
		Time:      s.time,
		Step:      s.step,
		Particles: s.world.View(),
	}
}
