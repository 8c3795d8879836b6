package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/scene"
)

// Presets maps a preset name to a function that adjusts a default config.
var Presets = map[string]func(*Config){
	"billiards": func(c *Config) {},
	"calm": func(c *Config) {
		for i := range c.Balls {
			c.Balls[i].VX, c.Balls[i].VY = 0, 0
		}
	},
	"cluster": func(c *Config) {
		c.Balls = []BallConfig{
			{X: 400, Y: 300, Radius: 30, Color: string(dynamo.Red)},
			{X: 430, Y: 300, Radius: 25, Color: string(dynamo.Green)},
			{X: 400, Y: 330, Radius: 25, Color: string(dynamo.Blue)},
			{X: 370, Y: 290, Radius: 20, Color: string(dynamo.Red)},
		}
	},
	"field": func(c *Config) {
		c.Scene = scene.Spec{Count: 40, MinRadius: 8, MaxRadius: 20, MaxSpeed: 2.5, Seed: 1}
	},
	"crowd": func(c *Config) {
		c.Scene = scene.Spec{Count: 120, MinRadius: 6, MaxRadius: 12, MaxSpeed: 1.5, Seed: 7}
	},
}

func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, dynamo.ErrUnknownPreset)
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
