package metrics

import (
	"github.com/entropylost/fracture2d/internal/physics"
)

type Damage struct {
	name    string
	current float64
}

func NewDamage() *Damage {
	return &Damage{name: "damage"}
}

func (d *Damage) Name() string { return d.name }

func (d *Damage) Observe(w *physics.World, t float64) {
	d.current = w.Damage()
}

func (d *Damage) Value() float64 {
	return d.current
}

func (d *Damage) Reset() {
	d.current = 0
}
