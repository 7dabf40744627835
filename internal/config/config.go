package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/kinetype/internal/layout"
	"github.com/san-kum/kinetype/internal/particles"
	"github.com/san-kum/kinetype/internal/physics"
	"github.com/san-kum/kinetype/internal/session"
)

const (
	DefaultWidth  = 1280.0
	DefaultHeight = 720.0
	DefaultTicks  = 1800
	DefaultStride = 4
	DefaultTheme  = "paper"
	DefaultVolume = 0.6
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Name      layout.Name      `yaml:"name"`
	Viewport  ViewportConfig   `yaml:"viewport"`
	Fonts     FontConfig       `yaml:"fonts"`
	Seed      int64            `yaml:"seed"`
	Ticks     int              `yaml:"ticks"`
	Stride    int              `yaml:"record_stride"`
	Theme     string           `yaml:"theme"`
	Audio     AudioConfig      `yaml:"audio"`
	Physics   physics.Params   `yaml:"physics"`
	Particles particles.Params `yaml:"particles"`
}

type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FontConfig points at TTF/OTF files. Empty paths use the embedded Go Mono faces.
type FontConfig struct {
	Regular    string `yaml:"regular"`
	Emphasized string `yaml:"emphasized"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

func DefaultConfig() *Config {
	return &Config{
		Name: layout.DefaultName(),
		Viewport: ViewportConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Seed:      1,
		Ticks:     DefaultTicks,
		Stride:    DefaultStride,
		Theme:     DefaultTheme,
		Audio:     AudioConfig{Volume: DefaultVolume},
		Physics:   physics.DefaultParams(),
		Particles: particles.DefaultParams(),
	}
}

// Load reads a YAML file over the defaults, so partial files are fine.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport %gx%g", ErrInvalidConfig, c.Viewport.Width, c.Viewport.Height)
	}
	if c.Ticks < 0 {
		return fmt.Errorf("%w: ticks must not be negative, got %d", ErrInvalidConfig, c.Ticks)
	}
	if c.Stride < 1 {
		return fmt.Errorf("%w: record_stride must be at least 1, got %d", ErrInvalidConfig, c.Stride)
	}
	if c.Name.Len() == 0 {
		return fmt.Errorf("%w: name is empty", ErrInvalidConfig)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio volume %g not in [0, 1]", ErrInvalidConfig, c.Audio.Volume)
	}
	if err := c.Physics.Validate(); err != nil {
		return err
	}
	return c.Particles.Validate()
}

// Session returns the part of the configuration a session runs on.
func (c *Config) Session() session.Config {
	return session.Config{
		Name:      c.Name,
		Physics:   c.Physics,
		Particles: c.Particles,
		Seed:      c.Seed,
	}
}
