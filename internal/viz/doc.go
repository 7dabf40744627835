// Package viz renders a kinetic typography session in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view that ticks a session about 60 times a second
//   - [App]: preset picker that starts a live view
//   - [Renderer]: maps viewport coordinates onto terminal cells
//   - [Canvas]: Braille-based dot canvas for dust, sparks and the ground
//
// Letters are drawn as single styled runes at their centers. Colored dust
// takes its color from the current [Theme]'s dust buckets.
//
// # Key Bindings
//
//	Mouse - Drag a letter, release to throw it
//	Space - Scatter the letters
//	R     - Send every letter home
//	V     - Show or hide the name
//	T     - Cycle color themes
//	?     - Show help overlay
//	Q     - Quit
package viz
