package physics

import (
	"math"
	"testing"
)

func TestWrapAngleRange(t *testing.T) {
	angles := []float64{
		0, 1, -1, math.Pi, -math.Pi, 2 * math.Pi, -2 * math.Pi,
		3 * math.Pi, -3 * math.Pi, 100, -100, 1e6, -1e6, 12345.678,
	}
	for _, a := range angles {
		w := WrapAngle(a)
		if !(w > -math.Pi && w <= math.Pi) {
			t.Errorf("WrapAngle(%g) = %g, outside (-pi, pi]", a, w)
		}
	}
}

func TestWrapAngleIdempotent(t *testing.T) {
	for a := -25.0; a <= 25.0; a += 0.0137 {
		once := WrapAngle(a)
		twice := WrapAngle(once)
		if once != twice {
			t.Fatalf("WrapAngle not idempotent at %g: %g then %g", a, once, twice)
		}
	}
	for _, a := range []float64{math.Pi, -math.Pi, 2 * math.Pi, -2 * math.Pi} {
		once := WrapAngle(a)
		if WrapAngle(once) != once {
			t.Errorf("WrapAngle not idempotent at boundary %g", a)
		}
	}
}

func TestWrapAngleValues(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"zero", 0, 0},
		{"small positive", 0.5, 0.5},
		{"small negative", -0.5, -0.5},
		{"pi stays pi", math.Pi, math.Pi},
		{"minus pi flips to pi", -math.Pi, math.Pi},
		{"full turn", 2 * math.Pi, 0},
		{"turn and a half", 3 * math.Pi, math.Pi},
		{"negative turn and a half", -3 * math.Pi, math.Pi},
		{"quarter past half", 0.75 * math.Pi, 0.75 * math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WrapAngle(tt.in)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("WrapAngle(%g) = %g, want %g", tt.in, got, tt.want)
			}
		})
	}
}
