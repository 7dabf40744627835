package physics

import "errors"

var (
	// ErrParameterBounds indicates a tunable is outside its valid range.
	ErrParameterBounds = errors.New("physics: parameter out of valid bounds")
)
