package config

import "sort"

var presets = map[string]func(c *Config){
	"calm": func(c *Config) {
		c.Physics.Gravity = 0.2
		c.Physics.Bounce = 0.3
		c.Physics.RestlessnessGrowth = 0.01
		c.Particles.DustCount = 150
	},
	"bouncy": func(c *Config) {
		c.Physics.Bounce = 0.85
		c.Physics.Restitution = 0.95
		c.Physics.Friction = 0.995
	},
	"heavy": func(c *Config) {
		c.Physics.Gravity = 0.8
		c.Physics.Bounce = 0.2
		c.Physics.Friction = 0.96
	},
	"floaty": func(c *Config) {
		c.Physics.Gravity = 0.05
		c.Physics.Friction = 0.995
		c.Physics.RestlessnessGrowth = 0.002
		c.Particles.WakeStrength = 0.3
	},
	"narrow": func(c *Config) {
		c.Viewport.Width = 390
		c.Viewport.Height = 844
	},
}

var descriptions = map[string]string{
	"calm":   "soft gravity, quick to settle",
	"bouncy": "springy floor and elastic letters",
	"heavy":  "strong gravity, dead bounces",
	"floaty": "near weightless drift",
	"narrow": "phone-sized viewport, stacked name",
}

// Describe returns a one-line summary of a preset.
func Describe(name string) string {
	return descriptions[name]
}

// GetPreset returns the defaults with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
