package render

// MapMode selects how an iteration count becomes a palette index.
type MapMode uint8

const (
	// MapModulo cycles through the palette: index = n mod len.
	MapModulo MapMode = iota
	// MapLinear scales proportionally: index = n*len/maxIter.
	MapLinear
)

// String returns the mode name used by flags and the header.
func (m MapMode) String() string {
	if m == MapLinear {
		return "lin"
	}
	return "mod"
}

// colorRampLen is the fixed classification length for color selection,
// independent of the active glyph palette's length.
const colorRampLen = 16

// Xterm grayscale ramp used for monochrome half-block cells:
// indices 232-255, derived from the raw iteration count.
const (
	grayRampBase = 232
	grayRampLen  = 24
)

// Index classifies an iteration count against a palette of palLen
// entries. Returns -1 when n >= maxIter (never escaped, rendered as
// background). The same classification drives glyph and color lookup.
func Index(n, maxIter, palLen int, mode MapMode) int {
	if n >= maxIter {
		return -1
	}
	if mode == MapModulo {
		return n % palLen
	}
	return n * palLen / maxIter
}

// GlyphFor maps an iteration count to a palette glyph, or FillGlyph for
// in-set cells.
func GlyphFor(n, maxIter int, pal []rune, mode MapMode) rune {
	idx := Index(n, maxIter, len(pal), mode)
	if idx < 0 {
		return FillGlyph
	}
	return pal[idx]
}

// ColorFor maps an iteration count to an xterm-256 index from the
// scheme, or -1 for in-set cells (no color).
func ColorFor(n, maxIter int, scheme *ColorScheme, mode MapMode) int {
	idx := Index(n, maxIter, colorRampLen, mode)
	if idx < 0 {
		return -1
	}
	return int(scheme[idx])
}

// HalfCell composes two vertically adjacent iteration counts into one
// half-block cell, doubling effective vertical resolution. fg and bg
// are xterm-256 indices, -1 meaning none (reset).
//
// The live half-block path indexes the scheme by raw count modulo 16,
// matching the original renderer, so palette switching stays a pure
// re-presentation of the same grid. In monochrome the scheme is
// replaced by the grayscale ramp.
func HalfCell(top, bottom, maxIter int, scheme *ColorScheme, useColor bool) (glyph rune, fg, bg int) {
	inTop := top >= maxIter
	inBottom := bottom >= maxIter

	shade := func(n int) int {
		if useColor {
			return int(scheme[n%colorRampLen])
		}
		return grayRampBase + n%grayRampLen
	}

	switch {
	case inTop && inBottom:
		return FillGlyph, -1, -1
	case inTop:
		// Top is background (black), bottom carries the color.
		return '▄', shade(bottom), -1
	case inBottom:
		return '▀', shade(top), -1
	default:
		return '▀', shade(top), shade(bottom)
	}
}
