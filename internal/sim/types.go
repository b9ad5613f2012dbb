package sim

import (
	"errors"
	"fmt"

	"github.com/entropylost/fracture2d/internal/physics"
)

// Domain errors for runner operations.
var (
	// ErrInvalidFrames indicates a non-positive frame count.
	ErrInvalidFrames = errors.New("sim: frames must be positive")

	// ErrDiverged indicates particle state that stopped being finite.
	ErrDiverged = errors.New("sim: particle state diverged (NaN or Inf)")
)

// Metric reduces per-frame observations of the world to a single value.
type Metric interface {
	Name() string
	Observe(w *physics.World, t float64)
	Value() float64
	Reset()
}

// Result holds the per-frame series of a run and the final metric values.
// Index 0 of each series is the state before the first frame.
type Result struct {
	Times   []float64
	Damage  []float64
	Broken  []int
	Kinetic []float64
	Frames  int
	Metrics map[string]float64
	Errors  []error
}

// Diverged reports whether the run was cut short by invalid state.
func (r *Result) Diverged() bool {
	return len(r.Errors) > 0
}

// FinalDamage is the broken bond fraction at the last recorded frame.
func (r *Result) FinalDamage() float64 {
	if len(r.Damage) == 0 {
		return 0
	}
	return r.Damage[len(r.Damage)-1]
}

// SimError ties a runner error to the frame where it surfaced.
type SimError struct {
	Frame   int
	Time    float64
	Wrapped error
}

func (e SimError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %v", e.Frame, e.Time, e.Wrapped)
}

func (e SimError) Unwrap() error {
	return e.Wrapped
}
