package experiment

import (
	"context"
	"fmt"

	"github.com/entropylost/fracture2d/internal/config"
	"github.com/entropylost/fracture2d/internal/metrics"
	"github.com/entropylost/fracture2d/internal/physics"
	"github.com/entropylost/fracture2d/internal/scene"
	"github.com/entropylost/fracture2d/internal/sim"
)

// Experiment wires a config into a built scene and a runner ready to step
// it. The config is resolved once per build, so editing it between Reset
// calls takes effect on the next rebuild.
type Experiment struct {
	cfg     *config.Config
	scene   *scene.Scene
	stepper *physics.Stepper
	runner  *sim.Runner
}

func New(cfg *config.Config) (*Experiment, error) {
	e := &Experiment{cfg: cfg}
	if err := e.Reset(); err != nil {
		return nil, err
	}
	return e, nil
}

// Reset rebuilds scene, stepper and runner from the stored config,
// discarding accumulated damage and motion.
func (e *Experiment) Reset() error {
	params, err := SceneParams(e.cfg)
	if err != nil {
		return err
	}
	sc, err := scene.Build(params)
	if err != nil {
		return err
	}
	st, err := physics.NewStepper(sc.World, e.cfg.FPS, e.cfg.Material.Radius, e.cfg.Substeps)
	if err != nil {
		return err
	}
	r := sim.New(st)
	for _, m := range DefaultMetrics() {
		r.AddMetric(m)
	}
	e.scene, e.stepper, e.runner = sc, st, r
	return nil
}

// Run simulates the configured number of frames.
func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	return e.runner.Run(ctx, e.cfg.Frames)
}

func (e *Experiment) Config() *config.Config    { return e.cfg }
func (e *Experiment) Scene() *scene.Scene       { return e.scene }
func (e *Experiment) Stepper() *physics.Stepper { return e.stepper }
func (e *Experiment) Runner() *sim.Runner       { return e.runner }

// DefaultMetrics is the metric set every run records.
func DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewDamage(),
		metrics.NewKinetic(),
		metrics.NewDivergence(metrics.DefaultEnergyBound),
	}
}

// SceneParams resolves the blocks of a config, falling back to the named
// preset when no inline blocks are given.
func SceneParams(cfg *config.Config) (scene.Params, error) {
	blocks := cfg.Blocks
	walls := cfg.Walls
	if len(blocks) == 0 {
		p := config.GetPreset(cfg.Scene)
		if p == nil {
			return scene.Params{}, fmt.Errorf("experiment: unknown scene %q", cfg.Scene)
		}
		blocks = p.Blocks
		walls = p.Walls
	}

	params := scene.Params{
		Walls: walls,
		Material: physics.Material{
			Radius:         cfg.Material.Radius,
			Stiffness:      cfg.Material.Stiffness,
			StrengthFactor: cfg.Material.StrengthFactor,
		},
		Gravity: physics.Vec2{X: cfg.Gravity.X, Y: cfg.Gravity.Y},
	}
	params.Blocks = make([]scene.Block, len(blocks))
	for i, b := range blocks {
		params.Blocks[i] = scene.Block{
			X0:     b.X0,
			Y0:     b.Y0,
			X1:     b.X1,
			Y1:     b.Y1,
			Fixed:  b.Fixed,
			Bonded: b.Bonded,
		}
	}
	return params, nil
}
