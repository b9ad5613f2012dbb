package config

// Presets are the built-in scenes. Every preset leaves fps, substeps and
// material at their defaults unless it says otherwise.
var Presets = map[string]*Config{
	// The canonical fracture demo: a long beam drops onto a squat pillar
	// and snaps, while a loose slab rains down on the wreckage.
	"classic": {
		Blocks: []BlockConfig{
			{X0: 0.1, Y0: 0.4, X1: 0.9, Y1: 0.45, Bonded: true},
			{X0: 0.7, Y0: 0.1, X1: 0.9, Y1: 0.3, Bonded: true},
			{X0: 0.2, Y0: 0.5, X1: 0.8, Y1: 0.7},
		},
		Walls: true,
	},
	// A single bonded slab falling onto the floor walls.
	"beam": {
		Blocks: []BlockConfig{
			{X0: 0.1, Y0: 0.4, X1: 0.9, Y1: 0.48, Bonded: true},
		},
		Walls: true,
	},
	// A loose block dropped onto a bonded plate.
	"drop": {
		Blocks: []BlockConfig{
			{X0: 0.2, Y0: 0.2, X1: 0.8, Y1: 0.32, Bonded: true},
			{X0: 0.35, Y0: 0.6, X1: 0.65, Y1: 0.8},
		},
		Walls: true,
	},
	// A slender column settling under its own weight until it buckles.
	"pillar": {
		Blocks: []BlockConfig{
			{X0: 0.46, Y0: 0.06, X1: 0.54, Y1: 0.7, Bonded: true},
		},
		Walls: true,
	},
}

// GetPreset returns a full config for a named scene, nil if unknown.
// Preset block lists override the default scene; everything else falls back
// to the defaults.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Scene = name
	cfg.Blocks = p.Blocks
	cfg.Walls = p.Walls
	if p.FPS != 0 {
		cfg.FPS = p.FPS
	}
	if p.Substeps != 0 {
		cfg.Substeps = p.Substeps
	}
	if p.Frames != 0 {
		cfg.Frames = p.Frames
	}
	if p.Material.Radius != 0 {
		cfg.Material = p.Material
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
