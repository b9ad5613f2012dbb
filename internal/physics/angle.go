package physics

import "math"

// WrapAngle maps a to the half-open interval (-pi, pi]. Values already in
// the interval pass through unchanged, so wrapping is idempotent.
func WrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a > math.Pi {
		a -= 2 * math.Pi
	} else if a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
