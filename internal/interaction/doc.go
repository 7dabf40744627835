// Package interaction maps grab, drag, release, scatter and hover input onto
// a letter slice. At most one letter is held at a time.
package interaction
