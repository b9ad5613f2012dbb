package experiment

import (
	"context"
	"testing"

	"github.com/entropylost/fracture2d/internal/config"
)

func TestNewFromPreset(t *testing.T) {
	cfg := config.GetPreset("classic")
	cfg.Frames = 2
	cfg.Substeps = 5

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	w := e.Stepper().World()
	if len(w.Particles) != 240 {
		t.Errorf("expected 240 particles in classic, got %d", len(w.Particles))
	}
	if w.BondCount() != 196 {
		t.Errorf("expected 196 directed bonds, got %d", w.BondCount())
	}
}

func TestSceneParamsFallback(t *testing.T) {
	cfg := config.DefaultConfig()

	params, err := SceneParams(cfg)
	if err != nil {
		t.Fatalf("scene params failed: %v", err)
	}
	if len(params.Blocks) != 3 {
		t.Errorf("expected the classic blocks, got %d", len(params.Blocks))
	}
	if !params.Walls {
		t.Error("expected walls")
	}
	if params.Material.Stiffness != cfg.Material.Stiffness {
		t.Error("material not carried over")
	}
}

func TestSceneParamsUnknownScene(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene = "nonexistent"

	if _, err := SceneParams(cfg); err == nil {
		t.Error("expected error for unknown scene")
	}
}

func TestRunAndReset(t *testing.T) {
	cfg := config.GetPreset("beam")
	cfg.Frames = 2
	cfg.Substeps = 3

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	result, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Frames != 2 {
		t.Errorf("expected 2 frames, got %d", result.Frames)
	}
	if e.Stepper().Step() != 6 {
		t.Errorf("expected 6 sub-steps, got %d", e.Stepper().Step())
	}

	for _, name := range []string{"damage", "kinetic", "divergence"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("metric %s missing from result", name)
		}
	}

	old := e.Stepper()
	if err := e.Reset(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if e.Stepper() == old {
		t.Error("reset should rebuild the stepper")
	}
	if e.Stepper().Step() != 0 {
		t.Error("reset should zero the sub-step count")
	}
	for _, p := range e.Stepper().World().Particles {
		if p.Velocity.X != 0 || p.Velocity.Y != 0 {
			t.Fatal("reset should rebuild particles at rest")
		}
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Material.Radius = 0

	if _, err := New(cfg); err == nil {
		t.Error("expected error for zero radius")
	}
}
