// Package particles implements the two decorative particle kinds.
//
// [Dust] is a fixed-size ambient field that loops around the viewport and is
// stirred by the wake of fast letters. [Spark] bursts are spawned at impact
// points and fade out over roughly 33 ticks.
//
// Both read letter state and never modify it.
package particles
