// Package scene composes worlds out of particle blocks and boundary walls.
package scene

import (
	"errors"
	"fmt"

	"github.com/entropylost/fracture2d/internal/physics"
)

// WallGroup marks boundary wall particles in a scene's group slice.
const WallGroup = -1

// Block is an axis-aligned rectangle filled with particles on a 2r grid.
// Ranges are half open: particles land on grid points in [X0,X1) x [Y0,Y1).
type Block struct {
	X0, Y0, X1, Y1 float64
	Fixed          bool // immovable boundary material
	Bonded         bool // participates in bond formation
}

// Params describes a scene to build.
type Params struct {
	Blocks   []Block
	Walls    bool // ring the unit box with fixed particles
	Material physics.Material
	Gravity  physics.Vec2
}

// Scene pairs a ready world with per-particle render groups. Groups index
// into the block list that built the scene, with WallGroup for walls.
type Scene struct {
	World    *physics.World
	Groups   []int
	Material physics.Material
}

// Build places bonded blocks, forms every qualifying directed bond among
// them, and only then appends walls and loose blocks. Particles added after
// bond formation never bond.
func Build(p Params) (*Scene, error) {
	if p.Material.Radius <= 0 {
		return nil, fmt.Errorf("scene: radius must be positive, got %g", p.Material.Radius)
	}
	if p.Material.Stiffness <= 0 {
		return nil, fmt.Errorf("scene: stiffness must be positive, got %g", p.Material.Stiffness)
	}
	if len(p.Blocks) == 0 {
		return nil, errors.New("scene: at least one block required")
	}

	s := &Scene{
		World:    physics.NewWorld(p.Material.Stiffness, p.Gravity),
		Material: p.Material,
	}
	for i, b := range p.Blocks {
		if b.Bonded {
			s.fill(b, i)
		}
	}
	s.bondAll()
	if p.Walls {
		s.walls()
	}
	for i, b := range p.Blocks {
		if !b.Bonded {
			s.fill(b, i)
		}
	}
	return s, nil
}

func (s *Scene) fill(b Block, group int) {
	r := s.Material.Radius
	for x := b.X0; x < b.X1; x += 2 * r {
		for y := b.Y0; y < b.Y1; y += 2 * r {
			pos := physics.Vec2{X: x, Y: y}
			var p physics.Particle
			if b.Fixed {
				p = physics.NewFixedParticle(pos, s.Material)
			} else {
				p = physics.NewParticle(pos, s.Material)
			}
			s.World.Particles = append(s.World.Particles, p)
			s.Groups = append(s.Groups, group)
		}
	}
}

// bondAll forms a directed bond for every ordered pair of already placed
// particles whose overlap is at least -0.1r, so grid neighbors qualify and
// diagonals do not. Rest length and thresholds come from the material.
func (s *Scene) bondAll() {
	ps := s.World.Particles
	strength := s.Material.BondStrength()
	for i := range ps {
		for j := range ps {
			if i == j {
				continue
			}
			l := ps[j].Position.Sub(ps[i].Position)
			overlap := ps[i].Radius + ps[j].Radius - l.Length()
			if overlap < -0.1*s.Material.Radius {
				continue
			}
			ps[i].Bonds = append(ps[i].Bonds, physics.Bond{
				Endpoint:         j,
				RestLength:       2 * s.Material.Radius,
				InitialDirection: l.Normalize(),
				MaxNormalForce:   strength,
				MaxTangentForce:  strength,
			})
		}
	}
}

// walls rings the unit box with fixed particles, skipping the corners.
func (s *Scene) walls() {
	r := s.Material.Radius
	add := func(x, y float64) {
		s.World.Particles = append(s.World.Particles,
			physics.NewFixedParticle(physics.Vec2{X: x, Y: y}, s.Material))
		s.Groups = append(s.Groups, WallGroup)
	}
	for v := r; v < 1.0; v += 2 * r {
		add(v, 0)
		add(v, 1)
		add(0, v)
		add(1, v)
	}
}
