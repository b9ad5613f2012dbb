package physics

import "math"

// Overlaps below this epsilon count as separation.
const contactEps = 1e-12

// contactForce returns the penalty force on p from an overlapping q, or zero
// when the pair is separated. Each owner computes its own side; the reaction
// on q arises when q is the owner, by antisymmetry of the formula.
func contactForce(p, q *Particle, kn float64) Vec2 {
	d := p.Position.Sub(q.Position)
	overlap := p.Radius + q.Radius - d.Length()
	if overlap < contactEps {
		return Vec2{}
	}
	n := d.Normalize()
	damping := 1.4 * math.Sqrt(kn/(p.InverseMass+q.InverseMass))
	closing := q.Velocity.Sub(p.Velocity).Dot(n)
	return n.Scale(kn*overlap + damping*closing)
}
