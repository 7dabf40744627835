package particles

import "errors"

var (
	// ErrParameterBounds indicates a particle tunable is outside its valid range.
	ErrParameterBounds = errors.New("particles: parameter out of valid bounds")
)
