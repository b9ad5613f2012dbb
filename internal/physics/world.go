package physics

// World owns the particle slice and the global simulation constants.
// Particles and bonds are addressed by index and never deleted; breaking a
// bond only flips its flag.
type World struct {
	Particles []Particle
	Kn        float64 // contact and bond normal stiffness
	Gravity   Vec2
}

func NewWorld(kn float64, gravity Vec2) *World {
	return &World{Kn: kn, Gravity: gravity}
}

// Substep advances the world by one leapfrog sub-step. Each phase runs over
// the full slice before the next begins.
func (w *World) Substep(dt float64) {
	ps := w.Particles

	for i := range ps {
		ps[i].Force = Vec2{}
		ps[i].Torque = 0
	}

	// Drift positions and angles from the staggered mid velocities.
	for i := range ps {
		p := &ps[i]
		p.Position = p.Position.Add(p.VelocityMid.Scale(dt))
		p.Angle = WrapAngle(p.Angle + p.AngVelMid*dt)
	}

	// Accumulate forces at the drifted positions. Fixed particles never own
	// a force computation; they enter only as neighbors and endpoints.
	for i := range ps {
		if !ps[i].Movable() {
			continue
		}
		w.applyContacts(i)
		w.applyBonds(i)
	}

	// Kick both velocity representations from the accumulated forces.
	for i := range ps {
		p := &ps[i]
		if !p.Movable() {
			continue
		}
		acc := p.Force.Scale(p.InverseMass).Add(w.Gravity)
		p.Velocity = p.VelocityMid.Add(acc.Scale(0.5 * dt))
		p.VelocityMid = p.VelocityMid.Add(acc.Scale(dt))
		angAcc := p.Torque * p.InverseMoment
		p.AngVel = p.AngVelMid + 0.5*angAcc*dt
		p.AngVelMid += angAcc * dt
	}
}

// applyContacts adds penalty contact from every overlapping particle,
// bonded or not. Brute force over all pairs.
func (w *World) applyContacts(i int) {
	ps := w.Particles
	p := &ps[i]
	for j := range ps {
		if j == i {
			continue
		}
		p.Force = p.Force.Add(contactForce(p, &ps[j], w.Kn))
	}
}

// applyBonds adds elastic force and torque from each unbroken bond owned by
// particle i, breaking those past their thresholds. Breaking is permanent.
func (w *World) applyBonds(i int) {
	ps := w.Particles
	p := &ps[i]
	for k := range p.Bonds {
		b := &p.Bonds[k]
		if b.Broken {
			continue
		}
		f, torque, broke := bondForce(p, &ps[b.Endpoint], b, w.Kn)
		if broke {
			b.Broken = true
			continue
		}
		p.Force = p.Force.Add(f)
		p.Torque += torque
	}
}

// KineticEnergy sums translational and rotational energy over the movable
// particles, using the synchronized velocities.
func (w *World) KineticEnergy() float64 {
	e := 0.0
	for i := range w.Particles {
		p := &w.Particles[i]
		if !p.Movable() {
			continue
		}
		e += 0.5 * p.Velocity.LengthSq() / p.InverseMass
		e += 0.5 * p.AngVel * p.AngVel / p.InverseMoment
	}
	return e
}

// BondCount returns the number of bond records, broken included.
func (w *World) BondCount() int {
	n := 0
	for i := range w.Particles {
		n += len(w.Particles[i].Bonds)
	}
	return n
}

// BrokenBondCount returns the number of broken bond records.
func (w *World) BrokenBondCount() int {
	n := 0
	for i := range w.Particles {
		for _, b := range w.Particles[i].Bonds {
			if b.Broken {
				n++
			}
		}
	}
	return n
}

// Damage returns the broken fraction of all bond records, 0 for a world
// without bonds.
func (w *World) Damage() float64 {
	total := w.BondCount()
	if total == 0 {
		return 0
	}
	return float64(w.BrokenBondCount()) / float64(total)
}

// IsValid reports whether every particle state is finite.
func (w *World) IsValid() bool {
	for i := range w.Particles {
		p := &w.Particles[i]
		if !p.Position.IsValid() || !p.Velocity.IsValid() || !p.VelocityMid.IsValid() {
			return false
		}
		if !finite(p.Angle) || !finite(p.AngVel) || !finite(p.AngVelMid) {
			return false
		}
	}
	return true
}

// BondView is the render-facing view of one bond record.
type BondView struct {
	Endpoint int
	Broken   bool
}

// ParticleView is the render-facing view of one particle.
type ParticleView struct {
	Position Vec2
	Angle    float64
	Radius   float64
	Fixed    bool
	Bonds    []BondView
}

// View copies the render-facing state of every particle. The copy stays
// self-consistent while the caller keeps stepping the world.
func (w *World) View() []ParticleView {
	views := make([]ParticleView, len(w.Particles))
	for i := range w.Particles {
		p := &w.Particles[i]
		bonds := make([]BondView, len(p.Bonds))
		for k, b := range p.Bonds {
			bonds[k] = BondView{Endpoint: b.Endpoint, Broken: b.Broken}
		}
		views[i] = ParticleView{
			Position: p.Position,
			Angle:    p.Angle,
			Radius:   p.Radius,
			Fixed:    !p.Movable(),
			Bonds:    bonds,
		}
	}
	return views
}
