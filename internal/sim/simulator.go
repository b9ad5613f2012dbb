package sim

import (
	"context"
	"fmt"

	"github.com/entropylost/fracture2d/internal/physics"
)

// Runner drives a stepper frame by frame, recording the scalar series and
// feeding every registered metric.
type Runner struct {
	stepper *physics.Stepper
	metrics []Metric
}

func New(st *physics.Stepper) *Runner {
	return &Runner{
		stepper: st,
		metrics: make([]Metric, 0),
	}
}

func (r *Runner) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

func (r *Runner) Stepper() *physics.Stepper { return r.stepper }

// Run advances the world by the given number of frames, checking the
// context between frames. Divergence is recorded in the result and ends the
// run early; it is not returned as an error.
func (r *Runner) Run(ctx context.Context, frames int) (*Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidFrames, frames)
	}

	w := r.stepper.World()
	result := &Result{
		Times:   make([]float64, 0, frames+1),
		Damage:  make([]float64, 0, frames+1),
		Broken:  make([]int, 0, frames+1),
		Kinetic: make([]float64, 0, frames+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	result.record(w, r.stepper.Time())

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.stepper.Frame()
		t := r.stepper.Time()

		if !w.IsValid() {
			result.Errors = append(result.Errors, SimError{
				Frame:   i,
				Time:    t,
				Wrapped: ErrDiverged,
			})
			break
		}

		for _, m := range r.metrics {
			m.Observe(w, t)
		}
		result.record(w, t)
		result.Frames++
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunFrames steps and hands each frame's snapshot to the callback.
// Returning false stops the run. The snapshot is the callback's to keep.
func (r *Runner) RunFrames(ctx context.Context, frames int, fn func(*physics.Snapshot) bool) error {
	if frames <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidFrames, frames)
	}

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.stepper.Frame()

		if !r.stepper.World().IsValid() {
			return SimError{
				Frame:   i,
				Time:    r.stepper.Time(),
				Wrapped: ErrDiverged,
			}
		}
		if !fn(r.stepper.Snapshot()) {
			return nil
		}
	}
	return nil
}

func (res *Result) record(w *physics.World, t float64) {
	res.Times = append(res.Times, t)
	res.Damage = append(res.Damage, w.Damage())
	res.Broken = append(res.Broken, w.BrokenBondCount())
	res.Kinetic = append(res.Kinetic, w.KineticEnergy())
}
