package scene

import (
	"math"
	"testing"

	"github.com/entropylost/fracture2d/internal/physics"
)

func TestBuildGrid(t *testing.T) {
	s, err := Build(Params{
		Blocks:   []Block{{X0: 0, Y0: 0, X1: 0.12, Y1: 0.12, Bonded: true}},
		Material: physics.DefaultMaterial(),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// 3x3 grid at 2r spacing.
	if n := len(s.World.Particles); n != 9 {
		t.Fatalf("expected 9 particles, got %d", n)
	}
	// 4-neighbors bond both ways, diagonals stay unbonded.
	if n := s.World.BondCount(); n != 24 {
		t.Errorf("expected 24 directed bonds, got %d", n)
	}
	for i, p := range s.World.Particles {
		if !p.Movable() {
			t.Errorf("particle %d should be movable", i)
		}
		for _, b := range p.Bonds {
			if b.Endpoint == i || b.Endpoint < 0 || b.Endpoint >= 9 {
				t.Fatalf("particle %d has bad endpoint %d", i, b.Endpoint)
			}
			if b.RestLength != 2*p.Radius {
				t.Errorf("expected rest length %g, got %g", 2*p.Radius, b.RestLength)
			}
			if math.Abs(b.InitialDirection.Length()-1) > 1e-12 {
				t.Errorf("initial direction not unit: %+v", b.InitialDirection)
			}
		}
	}
}

func TestBuildBeam(t *testing.T) {
	s, err := Build(Params{
		Blocks:   []Block{{X0: 0.1, Y0: 0.4, X1: 0.9, Y1: 0.45, Bonded: true}},
		Material: physics.DefaultMaterial(),
		Gravity:  physics.Vec2{Y: -9.8},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if n := len(s.World.Particles); n != 40 {
		t.Errorf("expected a 20x2 beam, got %d particles", n)
	}
	if n := s.World.BondCount(); n != 116 {
		t.Errorf("expected 116 directed bonds, got %d", n)
	}
	if s.World.Gravity != (physics.Vec2{Y: -9.8}) {
		t.Errorf("gravity not carried into the world: %+v", s.World.Gravity)
	}
}

func TestBuildLooseBlockAfterBonding(t *testing.T) {
	s, err := Build(Params{
		Blocks: []Block{
			{X0: 0, Y0: 0, X1: 0.12, Y1: 0.04, Bonded: true}, // 3x1 strip
			{X0: 0, Y0: 0.04, X1: 0.12, Y1: 0.08},            // loose strip right on top
		},
		Material: physics.DefaultMaterial(),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if n := len(s.World.Particles); n != 6 {
		t.Fatalf("expected 6 particles, got %d", n)
	}
	// Only the bonded strip links up, 2 neighbor pairs both ways. The loose
	// strip overlaps the bonded one within tolerance but arrives after bond
	// formation and must stay free.
	if n := s.World.BondCount(); n != 4 {
		t.Errorf("expected 4 directed bonds, got %d", n)
	}
	for i := 3; i < 6; i++ {
		if len(s.World.Particles[i].Bonds) != 0 {
			t.Errorf("loose particle %d acquired bonds", i)
		}
	}
}

func TestBuildGroups(t *testing.T) {
	s, err := Build(Params{
		Blocks: []Block{
			{X0: 0.2, Y0: 0.2, X1: 0.24, Y1: 0.24},               // loose single
			{X0: 0.5, Y0: 0.5, X1: 0.54, Y1: 0.54, Bonded: true}, // bonded single
		},
		Walls:    true,
		Material: physics.DefaultMaterial(),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(s.Groups) != len(s.World.Particles) {
		t.Fatalf("groups out of sync: %d groups, %d particles", len(s.Groups), len(s.World.Particles))
	}

	// Bonded blocks come first, then walls, then loose blocks.
	if s.Groups[0] != 1 {
		t.Errorf("expected bonded block group first, got %d", s.Groups[0])
	}
	last := s.Groups[len(s.Groups)-1]
	if last != 0 {
		t.Errorf("expected loose block group last, got %d", last)
	}
	walls := 0
	for i, g := range s.Groups {
		if g == WallGroup {
			walls++
			if s.World.Particles[i].Movable() {
				t.Fatalf("wall particle %d is movable", i)
			}
			if s.World.Particles[i].InverseMass != 0 || s.World.Particles[i].InverseMoment != 0 {
				t.Fatalf("wall particle %d has nonzero inverse mass", i)
			}
		}
	}
	// Four edge runs of 25 between the corners.
	if walls != 100 {
		t.Errorf("expected 100 wall particles, got %d", walls)
	}
}

func TestBuildFixedBlock(t *testing.T) {
	s, err := Build(Params{
		Blocks:   []Block{{X0: 0.3, Y0: 0.3, X1: 0.38, Y1: 0.34, Fixed: true}},
		Material: physics.DefaultMaterial(),
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	for i := range s.World.Particles {
		if s.World.Particles[i].Movable() {
			t.Errorf("particle %d of a fixed block is movable", i)
		}
	}
}

func TestBuildValidation(t *testing.T) {
	good := physics.DefaultMaterial()
	tests := []struct {
		name   string
		params Params
	}{
		{"no blocks", Params{Material: good}},
		{"zero radius", Params{
			Blocks:   []Block{{X1: 0.1, Y1: 0.1, Bonded: true}},
			Material: physics.Material{Stiffness: 1e7},
		}},
		{"zero stiffness", Params{
			Blocks:   []Block{{X1: 0.1, Y1: 0.1, Bonded: true}},
			Material: physics.Material{Radius: 0.02},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.params); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
