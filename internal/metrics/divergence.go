package metrics

import (
	"github.com/entropylost/fracture2d/internal/physics"
)

// DefaultEnergyBound is far above anything a unit-box scene can reach
// under gravity alone. Crossing it means the integration blew up.
const DefaultEnergyBound = 1e6

// Divergence flags the first frame where the state stops being
// physically meaningful: non-finite values, or kinetic energy past
// the bound. Once set the flag stays set.
type Divergence struct {
	name     string
	bound    float64
	diverged bool
	at       float64
}

func NewDivergence(bound float64) *Divergence {
	return &Divergence{name: "divergence", bound: bound}
}

func (d *Divergence) Name() string { return d.name }

func (d *Divergence) Observe(w *physics.World, t float64) {
	if d.diverged {
		return
	}
	if !w.IsValid() || w.KineticEnergy() > d.bound {
		d.diverged = true
		d.at = t
	}
}

// Value is 1 when the run diverged, 0 otherwise.
func (d *Divergence) Value() float64 {
	if d.diverged {
		return 1
	}
	return 0
}

// At reports the simulation time of the first violation.
func (d *Divergence) At() float64 { return d.at }

func (d *Divergence) Reset() {
	d.diverged = false
	d.at = 0
}
