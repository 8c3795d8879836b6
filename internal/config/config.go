package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/input"
	"github.com/san-kum/ballsim/internal/physics"
	"github.com/san-kum/ballsim/internal/scene"
)

const (
	DefaultFPS      = 60
	DefaultLogLevel = "info"
)

type Config struct {
	Surface SurfaceConfig `yaml:"surface"`
	FPS     int           `yaml:"fps"`
	Balls   []BallConfig  `yaml:"balls"`
	Scene   scene.Spec    `yaml:"scene"`
	Physics PhysicsConfig `yaml:"physics"`
	Input   InputConfig   `yaml:"input"`
	Log     LogConfig     `yaml:"log"`
}

type SurfaceConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type BallConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx"`
	VY     float64 `yaml:"vy"`
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"`
}

type PhysicsConfig struct {
	Restitution float64 `yaml:"restitution"`
	Stiffness   float64 `yaml:"stiffness"`
	Damping     float64 `yaml:"damping"`
}

type InputConfig struct {
	InfluenceRadius float64 `yaml:"influence_radius"`
	Gain            float64 `yaml:"gain"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

func DefaultConfig() *Config {
	tn := physics.DefaultTuning()
	return &Config{
		Surface: SurfaceConfig{Width: dynamo.DefaultWidth, Height: dynamo.DefaultHeight},
		FPS:     DefaultFPS,
		Balls:   FromBalls(scene.Default()),
		Physics: PhysicsConfig{
			Restitution: tn.Restitution,
			Stiffness:   tn.Stiffness,
			Damping:     tn.Damping,
		},
		Input: InputConfig{
			InfluenceRadius: input.DefaultInfluenceRadius,
			Gain:            input.DefaultGain,
		},
		Log: LogConfig{
			Level:      DefaultLogLevel,
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Encode writes cfg as YAML with two-space indentation.
func Encode(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func (c *Config) Bounds() dynamo.Bounds {
	return dynamo.Bounds{Width: c.Surface.Width, Height: c.Surface.Height}.OrDefault()
}

func (c *Config) Tuning() physics.Tuning {
	return physics.Tuning{
		Restitution: c.Physics.Restitution,
		Stiffness:   c.Physics.Stiffness,
		Damping:     c.Physics.Damping,
	}
}

func (c *Config) Mapper() *input.Mapper {
	m := input.NewMapper(c.Bounds())
	if c.Input.InfluenceRadius > 0 {
		m.InfluenceRadius = c.Input.InfluenceRadius
	}
	if c.Input.Gain != 0 {
		m.Gain = c.Input.Gain
	}
	return m
}

// InitBalls returns the starting population: a generated scene when one is
// configured, the explicit ball list otherwise.
func (c *Config) InitBalls() dynamo.Balls {
	if c.Scene.Count > 0 {
		return scene.Generate(c.Scene, c.Bounds())
	}
	balls := make(dynamo.Balls, len(c.Balls))
	for i, b := range c.Balls {
		balls[i] = dynamo.Ball{
			Pos:    dynamo.Vec2{X: b.X, Y: b.Y},
			Vel:    dynamo.Vec2{X: b.VX, Y: b.VY},
			Radius: b.Radius,
			Color:  dynamo.Color(b.Color),
		}
	}
	return balls
}

func (c *Config) Validate() error {
	if err := c.Bounds().Validate(); err != nil {
		return err
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps %d must be positive", c.FPS)
	}
	return c.InitBalls().Validate()
}

func FromBalls(balls dynamo.Balls) []BallConfig {
	out := make([]BallConfig, len(balls))
	for i, b := range balls {
		out[i] = BallConfig{
			X: b.Pos.X, Y: b.Pos.Y,
			VX: b.Vel.X, VY: b.Vel.Y,
			Radius: b.Radius,
			Color:  string(b.Color),
		}
	}
	return out
}
