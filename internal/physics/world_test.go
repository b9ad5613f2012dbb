package physics

import (
	"math"
	"testing"
)

// mirroredPair builds a world holding two movable particles sep apart with
// the pair of directed bonds a scene initializer would form, no gravity.
func mirroredPair(sep float64) *World {
	m := DefaultMaterial()
	w := NewWorld(m.Stiffness, Vec2{})
	p := NewParticle(Vec2{0, 0}, m)
	q := NewParticle(Vec2{sep, 0}, m)
	s := m.BondStrength()
	p.Bonds = append(p.Bonds, Bond{
		Endpoint: 1, RestLength: 2 * m.Radius, InitialDirection: Vec2{1, 0},
		MaxNormalForce: s, MaxTangentForce: s,
	})
	q.Bonds = append(q.Bonds, Bond{
		Endpoint: 0, RestLength: 2 * m.Radius, InitialDirection: Vec2{-1, 0},
		MaxNormalForce: s, MaxTangentForce: s,
	})
	w.Particles = []Particle{p, q}
	return w
}

func TestRestStateStability(t *testing.T) {
	w := mirroredPair(0.04)
	before := [2]Vec2{w.Particles[0].Position, w.Particles[1].Position}

	for i := 0; i < 1000; i++ {
		w.Substep(1e-5)
	}

	for i := range w.Particles {
		p := &w.Particles[i]
		if p.Position != before[i] {
			t.Errorf("particle %d drifted from %+v to %+v", i, before[i], p.Position)
		}
		if p.Velocity != (Vec2{}) || p.VelocityMid != (Vec2{}) {
			t.Errorf("particle %d picked up velocity %+v", i, p.Velocity)
		}
		if p.Angle != 0 || p.AngVel != 0 {
			t.Errorf("particle %d picked up rotation", i)
		}
	}
	if w.BrokenBondCount() != 0 {
		t.Errorf("rest state broke %d bonds", w.BrokenBondCount())
	}
}

func TestImmovableInvariance(t *testing.T) {
	m := DefaultMaterial()
	w := NewWorld(m.Stiffness, Vec2{0, -9.8})
	wall := NewFixedParticle(Vec2{0.5, 0.5}, m)
	mover := NewParticle(Vec2{0.5, 0.53}, m) // overlapping the wall
	w.Particles = []Particle{wall, mover}

	for i := 0; i < 500; i++ {
		w.Substep(1e-5)
	}

	got := &w.Particles[0]
	if got.Position != (Vec2{0.5, 0.5}) {
		t.Errorf("fixed particle moved to %+v", got.Position)
	}
	if got.Velocity != (Vec2{}) || got.VelocityMid != (Vec2{}) {
		t.Errorf("fixed particle picked up velocity %+v", got.Velocity)
	}
	if got.Angle != 0 || got.AngVel != 0 || got.AngVelMid != 0 {
		t.Error("fixed particle picked up rotation")
	}
	if w.Particles[1].Position == (Vec2{0.5, 0.53}) {
		t.Error("movable particle should have been pushed away")
	}
}

func TestLeapfrogGravity(t *testing.T) {
	m := DefaultMaterial()
	w := NewWorld(m.Stiffness, Vec2{0, -9.8})
	w.Particles = []Particle{NewParticle(Vec2{0.5, 0.5}, m)}

	w.Substep(0.01)
	w.Substep(0.01)

	p := &w.Particles[0]
	// First kick leaves vmid = -g*dt; the second drift applies it.
	if math.Abs(p.Position.Y-(0.5-0.00098)) > 1e-12 {
		t.Errorf("expected y 0.49902, got %.10f", p.Position.Y)
	}
	if math.Abs(p.Velocity.Y-(-0.147)) > 1e-12 {
		t.Errorf("expected velocity -0.147, got %.10f", p.Velocity.Y)
	}
	if math.Abs(p.VelocityMid.Y-(-0.196)) > 1e-12 {
		t.Errorf("expected mid velocity -0.196, got %.10f", p.VelocityMid.Y)
	}
}

func TestSubstepForcesUseDriftedPositions(t *testing.T) {
	m := DefaultMaterial()
	w := NewWorld(m.Stiffness, Vec2{})
	p := NewParticle(Vec2{0, 0}, m)
	p.VelocityMid = Vec2{1, 0}
	q := NewParticle(Vec2{0.0405, 0}, m) // separated until the drift closes in
	w.Particles = []Particle{p, q}

	w.Substep(1e-3)

	// Post-drift separation 0.0395 overlaps by 0.0005.
	fx := w.Particles[0].Force.X
	if math.Abs(fx+5000) > 1e-3 {
		t.Errorf("expected contact at drifted position, force x ~ -5000, got %g", fx)
	}

	// The kick reverses the owner; next sub-step separates again and the
	// cleared accumulator stays empty.
	w.Substep(1e-3)
	if w.Particles[0].Force != (Vec2{}) {
		t.Errorf("expected cleared accumulator, got %+v", w.Particles[0].Force)
	}
}

func TestBrokenBondStaysBroken(t *testing.T) {
	w := mirroredPair(0.04)
	w.Particles[1].Position = Vec2{0.2, 0} // far past the breaking stretch

	w.Substep(1e-9)
	if !w.Particles[0].Bonds[0].Broken || !w.Particles[1].Bonds[0].Broken {
		t.Fatal("expected both directed bonds to break")
	}
	if w.Damage() != 1.0 {
		t.Errorf("expected damage 1.0, got %g", w.Damage())
	}

	// Back at rest geometry the broken bonds must stay silent forever.
	w.Particles[1].Position = Vec2{0.04, 0}
	w.Particles[1].Velocity = Vec2{}
	w.Particles[1].VelocityMid = Vec2{}
	for i := 0; i < 10; i++ {
		w.Substep(1e-9)
	}
	if !w.Particles[0].Bonds[0].Broken || !w.Particles[1].Bonds[0].Broken {
		t.Error("broken bonds must never heal")
	}
	if w.Particles[0].Force != (Vec2{}) || w.Particles[1].Force != (Vec2{}) {
		t.Errorf("broken bonds still contribute force: %+v, %+v",
			w.Particles[0].Force, w.Particles[1].Force)
	}
}

func TestDirectedBondsBreakIndependently(t *testing.T) {
	w := mirroredPair(0.04)
	w.Particles[0].Bonds[0].MaxNormalForce = 1 // weaken one direction only
	w.Particles[1].Position = Vec2{0.042, 0}

	w.Substep(1e-9)

	if !w.Particles[0].Bonds[0].Broken {
		t.Error("weak directed bond should have broken")
	}
	if w.Particles[1].Bonds[0].Broken {
		t.Error("mirrored bond carries its own state and should hold")
	}
	if w.Damage() != 0.5 {
		t.Errorf("expected damage 0.5, got %g", w.Damage())
	}
	// The intact direction still pulls its owner toward the other end.
	if w.Particles[1].Force.X >= 0 {
		t.Errorf("expected tension on the intact side, got %+v", w.Particles[1].Force)
	}
	if w.Particles[0].Force != (Vec2{}) {
		t.Errorf("broken side must receive nothing, got %+v", w.Particles[0].Force)
	}
}

func TestKineticEnergy(t *testing.T) {
	m := DefaultMaterial()
	w := NewWorld(m.Stiffness, Vec2{})
	p := NewParticle(Vec2{0.5, 0.5}, m)
	p.Velocity = Vec2{3, 4}
	p.AngVel = 2
	wall := NewFixedParticle(Vec2{0, 0}, m)
	wall.Velocity = Vec2{1, 0} // must not count
	w.Particles = []Particle{p, wall}

	want := 0.5*25/m.InverseMass() + 0.5*4/m.InverseMoment()
	if got := w.KineticEnergy(); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected kinetic energy %g, got %g", want, got)
	}
}

func TestWorldIsValid(t *testing.T) {
	w := mirroredPair(0.04)
	if !w.IsValid() {
		t.Fatal("fresh world reported invalid")
	}
	w.Particles[0].Position.X = math.NaN()
	if w.IsValid() {
		t.Error("NaN position went undetected")
	}
}

func TestOversizedStepDiverges(t *testing.T) {
	// A particle pinched between two walls, stepped far above the stable dt.
	// The core never guards against this; energy must grow without bound.
	m := DefaultMaterial()
	w := NewWorld(m.Stiffness, Vec2{})
	left := NewFixedParticle(Vec2{0, 0}, m)
	right := NewFixedParticle(Vec2{0.06, 0}, m)
	mid := NewParticle(Vec2{0.0305, 0}, m) // off center, both contacts live
	w.Particles = []Particle{left, right, mid}

	for i := 0; i < 100; i++ {
		w.Substep(1e-3)
	}

	// Either the state blew up to NaN/Inf or the particle was ejected with
	// far more energy than the initial elastic imbalance could supply.
	if w.IsValid() && w.KineticEnergy() < 1e3 {
		t.Errorf("expected divergence, kinetic energy only %g", w.KineticEnergy())
	}
}
