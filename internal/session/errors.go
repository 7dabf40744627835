package session

import "errors"

var (
	// ErrClosed is returned by Tick after Close.
	ErrClosed = errors.New("session: closed")

	// ErrNoViewport indicates a non-positive viewport size.
	ErrNoViewport = errors.New("session: viewport has no area")
)
