// Package metrics summarizes a session run as a handful of numbers. A [Set]
// is registered as a session observer and each [Metric] sees every frame.
package metrics
