package physics

import "math"

// bondForce evaluates one directed bond owned by p toward q and reports
// whether it breaks this sub-step. A breaking bond carries no force.
//
// ti and tj measure how far each end has rotated away from the bond frame
// since formation; their sum shears the bond, their difference twists it.
func bondForce(p, q *Particle, b *Bond, kn float64) (force Vec2, torque float64, broken bool) {
	l := q.Position.Sub(p.Position)
	dist := l.Length()
	n := l.Scale(1 / dist)
	dl := dist - b.RestLength

	qb := b.InitialDirection.Heading() - n.Heading()
	ti := WrapAngle(qb + p.Angle)
	tj := WrapAngle(qb + q.Angle)

	r2 := p.Radius * p.Radius
	fn := n.Scale(kn * dl)
	ft := n.Perp().Scale(-kn / 3 * r2 / dist * (ti + tj))
	torque = kn / 6 * r2 * (tj - 3*ti)

	// Stress thresholds are per unit of bond cross section, one diameter in 2D.
	diameter := 2 * p.Radius
	if dl > 0 && fn.Length()/diameter+math.Abs(kn/2*(tj-ti)) > b.MaxNormalForce {
		return Vec2{}, 0, true
	}
	if ft.Length()/diameter > b.MaxTangentForce {
		return Vec2{}, 0, true
	}
	return fn.Add(ft), torque, false
}
