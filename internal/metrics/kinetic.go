package metrics

import (
	"github.com/entropylost/fracture2d/internal/physics"
)

type Kinetic struct {
	name    string
	total   float64
	peak    float64
	samples int
}

func NewKinetic() *Kinetic {
	return &Kinetic{name: "kinetic"}
}

func (k *Kinetic) Name() string { return k.name }

func (k *Kinetic) Observe(w *physics.World, t float64) {
	e := w.KineticEnergy()
	k.total += e
	if e > k.peak {
		k.peak = e
	}
	k.samples++
}

// Value is the mean kinetic energy over the observed frames.
func (k *Kinetic) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

// Peak is the largest single-frame kinetic energy seen.
func (k *Kinetic) Peak() float64 {
	return k.peak
}

func (k *Kinetic) Reset() {
	k.total = 0
	k.peak = 0
	k.samples = 0
}
