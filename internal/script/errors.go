package script

import "errors"

var (
	// ErrEmptyScript indicates a script with no commands.
	ErrEmptyScript = errors.New("script: no commands")

	// ErrInvalidCommand indicates a command with out-of-range arguments.
	ErrInvalidCommand = errors.New("script: invalid command")
)
