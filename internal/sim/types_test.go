package sim

import (
	"errors"
	"testing"
)

func TestSimError(t *testing.T) {
	err := SimError{Frame: 150, Time: 1.5, Wrapped: ErrDiverged}
	expected := "frame 150 (t=1.5000): sim: particle state diverged (NaN or Inf)"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrDiverged) {
		t.Error("SimError should unwrap to ErrDiverged")
	}
}

func TestResultHelpers(t *testing.T) {
	r := &Result{}
	if r.Diverged() {
		t.Error("empty result should not be diverged")
	}
	if r.FinalDamage() != 0 {
		t.Error("empty result should report zero damage")
	}

	r.Damage = []float64{0, 0.25, 0.75}
	if r.FinalDamage() != 0.75 {
		t.Errorf("expected damage 0.75, got %g", r.FinalDamage())
	}
}
