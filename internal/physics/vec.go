package physics

import "math"

// Vec2 is a plain 2D vector with value semantics.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Length() float64   { return math.Sqrt(v.X*v.X + v.Y*v.Y) }
func (v Vec2) LengthSq() float64 { return v.X*v.X + v.Y*v.Y }

// Normalize returns v scaled to unit length. Zero vectors produce NaNs;
// callers skip degenerate pairs before normalizing.
func (v Vec2) Normalize() Vec2 { return v.Scale(1 / v.Length()) }

// Perp rotates v by +90 degrees.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Heading returns the direction of v as an angle from the +X axis.
func (v Vec2) Heading() float64 { return math.Atan2(v.Y, v.X) }

func (v Vec2) IsValid() bool { return finite(v.X) && finite(v.Y) }

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
