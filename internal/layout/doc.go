// Package layout computes the rest position of every letter of a two-word
// name for a viewport.
//
// The first word is set emphasized and the second regular. When the single
// row would take more than [StackThreshold] of the viewport width, the words
// are stacked into two independently centered rows with a larger font and
// tighter tracking:
//
//	m, _ := layout.NewFontMeasurer("", "")
//	nl := layout.Compute(1280, 720, layout.DefaultName(), m)
//
// Glyph advances come from a [Measurer]. [FontMeasurer] measures real font
// outlines; a nil Measurer degrades to an empty layout.
package layout
