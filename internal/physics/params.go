package physics

import "fmt"

// Params holds the engine tunables. Time-valued fields are in milliseconds.
type Params struct {
	Gravity            float64 `yaml:"gravity"`
	Friction           float64 `yaml:"friction"`
	Bounce             float64 `yaml:"bounce"`
	Restitution        float64 `yaml:"restitution"`
	HomeForce          float64 `yaml:"home_force"`
	RestlessnessGrowth float64 `yaml:"restlessness_growth"`
	MaxRestlessness    float64 `yaml:"max_restlessness"`

	HoverScale float64 `yaml:"hover_scale"`
	ScaleLerp  float64 `yaml:"scale_lerp"`

	EntryStagger  float64 `yaml:"entry_stagger"`
	EntryDelay    float64 `yaml:"entry_delay"`
	EntryDuration float64 `yaml:"entry_duration"`
	EntryYOffset  float64 `yaml:"entry_y_offset"`
}

func DefaultParams() Params {
	return Params{
		Gravity:            0.3,
		Friction:           0.98,
		Bounce:             0.5,
		Restitution:        0.7,
		HomeForce:          0.008,
		RestlessnessGrowth: 0.005,
		MaxRestlessness:    1,
		HoverScale:         1.08,
		ScaleLerp:          0.15,
		EntryStagger:       80,
		EntryDelay:         300,
		EntryDuration:      400,
		EntryYOffset:       20,
	}
}

func (p Params) Validate() error {
	checks := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"gravity", p.Gravity, 0, 10},
		{"friction", p.Friction, 0.5, 1},
		{"bounce", p.Bounce, 0, 1},
		{"restitution", p.Restitution, 0, 1},
		{"home_force", p.HomeForce, 0, 1},
		{"restlessness_growth", p.RestlessnessGrowth, 1e-6, 1},
		{"max_restlessness", p.MaxRestlessness, 0.6, 1},
		{"hover_scale", p.HoverScale, 1, 2},
		{"scale_lerp", p.ScaleLerp, 0, 1},
		{"entry_stagger", p.EntryStagger, 0, 10000},
		{"entry_delay", p.EntryDelay, 0, 10000},
		{"entry_duration", p.EntryDuration, 1, 10000},
		{"entry_y_offset", p.EntryYOffset, -1000, 1000},
	}
	for _, c := range checks {
		if !(c.value >= c.min && c.value <= c.max) {
			return fmt.Errorf("%w: %s=%g not in [%g, %g]", ErrParameterBounds, c.name, c.value, c.min, c.max)
		}
	}
	return nil
}
