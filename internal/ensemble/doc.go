// Package ensemble runs many headless sessions concurrently, one per seed,
// and summarizes their metrics.
package ensemble
