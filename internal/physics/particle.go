package physics

// ImmovableEps is the inverse mass at or below which a particle counts as a
// fixed boundary. Fixed particles never accelerate or drift but still repel
// movable neighbors through contact.
const ImmovableEps = 1e-6

// Particle is one circular element of the solid. Particles are identified by
// index into the world slice and are never removed.
type Particle struct {
	Position    Vec2
	Velocity    Vec2 // synchronized with Position
	VelocityMid Vec2 // staggered half a sub-step ahead

	Angle     float64 // kept in (-pi, pi]
	AngVel    float64
	AngVelMid float64

	InverseMass   float64 // zero marks a fixed boundary particle
	InverseMoment float64
	Radius        float64

	// Accumulators, cleared at the start of every sub-step.
	Force  Vec2
	Torque float64

	Bonds []Bond
}

// Movable reports whether integration applies to p.
func (p *Particle) Movable() bool { return p.InverseMass > ImmovableEps }

// Bond is a directed elastic link from its owner particle to Endpoint. The
// mirrored bond owned by the endpoint is a separate record with its own
// breaking state.
type Bond struct {
	Endpoint         int
	Broken           bool // set once, never cleared
	RestLength       float64
	InitialDirection Vec2 // unit owner-to-endpoint direction at formation
	MaxNormalForce   float64
	MaxTangentForce  float64
}

// Material fixes the per-particle constants of a uniform solid.
type Material struct {
	Radius         float64
	Stiffness      float64 // contact and bond normal stiffness kn
	StrengthFactor float64 // bond strength as a fraction of kn
}

func DefaultMaterial() Material {
	return Material{
		Radius:         0.02,
		Stiffness:      1e7,
		StrengthFactor: 0.07,
	}
}

// InverseMass returns the inverse mass given to movable particles.
func (m Material) InverseMass() float64 {
	return 1.3e-4 / (m.Radius * m.Radius)
}

// InverseMoment returns the inverse moment of inertia given to movable
// particles.
func (m Material) InverseMoment() float64 {
	r2 := m.Radius * m.Radius
	return 2.6e-4 / (r2 * r2)
}

// BondStrength returns the normal and tangential breaking thresholds.
func (m Material) BondStrength() float64 {
	return m.StrengthFactor * m.Stiffness
}

// NewParticle returns a movable particle of material m, at rest at pos.
func NewParticle(pos Vec2, m Material) Particle {
	return Particle{
		Position:      pos,
		InverseMass:   m.InverseMass(),
		InverseMoment: m.InverseMoment(),
		Radius:        m.Radius,
	}
}

// NewFixedParticle returns an immovable boundary particle at pos.
func NewFixedParticle(pos Vec2, m Material) Particle {
	return Particle{
		Position: pos,
		Radius:   m.Radius,
	}
}
