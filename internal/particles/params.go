package particles

import "fmt"

// Params tunes the dust field and spark bursts.
type Params struct {
	DustCount    int     `yaml:"dust_count"`
	ColoredRatio float64 `yaml:"colored_ratio"`
	ColorCount   int     `yaml:"color_count"`

	WakeRadius   float64 `yaml:"wake_radius"`
	WakeMinSpeed float64 `yaml:"wake_min_speed"`
	WakeStrength float64 `yaml:"wake_strength"`
	Damping      float64 `yaml:"damping"`
	Relaxation   float64 `yaml:"relaxation"`
	WrapMargin   float64 `yaml:"wrap_margin"`

	SparkGravity float64 `yaml:"spark_gravity"`
	SparkDecay   float64 `yaml:"spark_decay"`
}

func DefaultParams() Params {
	return Params{
		DustCount:    300,
		ColoredRatio: 0.15,
		ColorCount:   3,
		WakeRadius:   1.5,
		WakeMinSpeed: 2,
		WakeStrength: 0.15,
		Damping:      0.98,
		Relaxation:   0.01,
		WrapMargin:   10,
		SparkGravity: 0.1,
		SparkDecay:   0.03,
	}
}

func (p Params) Validate() error {
	if p.DustCount < 0 || p.DustCount > 100000 {
		return fmt.Errorf("%w: dust_count=%d", ErrParameterBounds, p.DustCount)
	}
	if p.ColorCount < 0 {
		return fmt.Errorf("%w: color_count=%d", ErrParameterBounds, p.ColorCount)
	}

	checks := []struct {
		name     string
		value    float64
		min, max float64
	}{
		{"colored_ratio", p.ColoredRatio, 0, 1},
		{"wake_radius", p.WakeRadius, 0, 100},
		{"wake_min_speed", p.WakeMinSpeed, 0, 1000},
		{"wake_strength", p.WakeStrength, 0, 10},
		{"damping", p.Damping, 0, 1},
		{"relaxation", p.Relaxation, 0, 1},
		{"wrap_margin", p.WrapMargin, 0, 1000},
		{"spark_gravity", p.SparkGravity, 0, 10},
		{"spark_decay", p.SparkDecay, 1e-6, 1},
	}
	for _, c := range checks {
		if !(c.value >= c.min && c.value <= c.max) {
			return fmt.Errorf("%w: %s=%g not in [%g, %g]", ErrParameterBounds, c.name, c.value, c.min, c.max)
		}
	}
	return nil
}
