package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFPS       = 60.0
	DefaultSubsteps  = 1000
	DefaultFrames    = 600
	DefaultRadius    = 0.02
	DefaultStiffness = 1e7
	DefaultStrength  = 0.07
	DefaultScale     = 500.0
)

type Config struct {
	Scene       string         `yaml:"scene"`
	Blocks      []BlockConfig  `yaml:"blocks,omitempty"`
	Walls       bool           `yaml:"walls"`
	FPS         float64        `yaml:"fps"`
	Substeps    int            `yaml:"substeps_per_frame"`
	Frames      int            `yaml:"frames"`
	Gravity     GravityConfig  `yaml:"gravity"`
	Material    MaterialConfig `yaml:"material"`
	RenderScale float64        `yaml:"render_scale"`
	Sound       bool           `yaml:"sound"`
}

type BlockConfig struct {
	X0     float64 `yaml:"x0"`
	Y0     float64 `yaml:"y0"`
	X1     float64 `yaml:"x1"`
	Y1     float64 `yaml:"y1"`
	Fixed  bool    `yaml:"fixed,omitempty"`
	Bonded bool    `yaml:"bonded,omitempty"`
}

type GravityConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type MaterialConfig struct {
	Radius         float64 `yaml:"radius"`
	Stiffness      float64 `yaml:"stiffness"`
	StrengthFactor float64 `yaml:"strength_factor"`
}

func DefaultConfig() *Config {
	return &Config{
		Scene:    "classic",
		Walls:    true,
		FPS:      DefaultFPS,
		Substeps: DefaultSubsteps,
		Frames:   DefaultFrames,
		Gravity:  GravityConfig{Y: -9.8},
		Material: MaterialConfig{
			Radius:         DefaultRadius,
			Stiffness:      DefaultStiffness,
			StrengthFactor: DefaultStrength,
		},
		RenderScale: DefaultScale,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
