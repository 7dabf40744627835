// Package audio turns letter impacts into short synthesized thuds played
// through the system speaker.
package audio
