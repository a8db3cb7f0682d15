package render

import (
	"bufio"
	"bytes"
	"io"
	"strconv"

	"github.com/OSK-provenis/marcepan/fractal"
)

// ANSI SGR fragments emitted by the assembler. The exact sequence
// content and placement is part of the output contract; saved .ansi
// files must replay identically.
const (
	sgrReset = "\x1b[0m"
	sgrFg256 = "\x1b[38;5;"
	sgrBg256 = ";48;5;"
	sgrBgOff = ";49m"
)

// Options selects one presentation of an iteration grid. The grid
// itself is never touched; switching options is a pure re-render.
type Options struct {
	Palette   []rune
	Scheme    *ColorScheme
	Mode      MapMode
	Color     bool
	HalfBlock bool
}

// Assembler serializes one IterationGrid into glyph+SGR byte streams.
// The same assembler drives the live display and file export; only the
// destination sink differs.
type Assembler struct {
	Options
}

// sink is the subset of bytes.Buffer / bufio.Writer the assembler needs.
type sink interface {
	WriteString(s string) (int, error)
	WriteRune(r rune) (int, error)
	WriteByte(b byte) error
}

// Frame appends the terminal byte stream for the grid to buf: one line
// per rendered row, each terminated by a newline, color state always
// reset at line end.
func (a *Assembler) Frame(buf *bytes.Buffer, g *fractal.Grid) {
	if a.HalfBlock {
		a.halfBlockRows(buf, g)
	} else {
		a.fullRows(buf, g)
	}
}

// fullRows emits one character per grid cell. A foreground change is
// only written when it differs from the previous emitted color on the
// stream; background (fill) cells and line ends close any open color.
func (a *Assembler) fullRows(w sink, g *fractal.Grid) {
	lastColor := -1

	for row := 0; row < g.Height; row++ {
		counts := g.Row(row)

		for _, n := range counts {
			ch := GlyphFor(n, g.MaxIter, a.Palette, a.Mode)

			if a.Color && ch != FillGlyph {
				c := ColorFor(n, g.MaxIter, a.Scheme, a.Mode)
				if c != lastColor {
					writeFg(w, c)
					lastColor = c
				}
			} else if lastColor != -1 {
				w.WriteString(sgrReset)
				lastColor = -1
			}
			w.WriteRune(ch)
		}

		if lastColor != -1 {
			w.WriteString(sgrReset)
			lastColor = -1
		}
		w.WriteByte('\n')
	}
}

// halfBlockRows packs two grid rows into each rendered row. With an odd
// row count the last rendered row duplicates its top source row.
func (a *Assembler) halfBlockRows(w sink, g *fractal.Grid) {
	for y := 0; y < g.Height; y += 2 {
		top := g.Row(y)
		bottom := top
		if y+1 < g.Height {
			bottom = g.Row(y + 1)
		}

		for x := 0; x < g.Width; x++ {
			glyph, fg, bg := HalfCell(top[x], bottom[x], g.MaxIter, a.Scheme, a.Color)

			switch {
			case fg < 0:
				w.WriteString(sgrReset)
				w.WriteByte(' ')
			case bg < 0:
				w.WriteString(sgrFg256)
				writeNum(w, fg)
				w.WriteString(sgrBgOff)
				w.WriteRune(glyph)
			default:
				w.WriteString(sgrFg256)
				writeNum(w, fg)
				w.WriteString(sgrBg256)
				writeNum(w, bg)
				w.WriteByte('m')
				w.WriteRune(glyph)
			}
		}
		w.WriteString(sgrReset)
		w.WriteByte('\n')
	}
}

// PlainExport writes the glyph-only text variant. Half-block grids are
// downsampled by averaging each vertical cell pair into one glyph; this
// deliberately does not reuse the color composition, matching the
// established save format.
func (a *Assembler) PlainExport(w io.Writer, g *fractal.Grid, header string) error {
	bw := bufio.NewWriter(w)
	writeHeader(bw, header)

	if a.HalfBlock {
		for y := 0; y < g.Height; y += 2 {
			top := g.Row(y)
			bottom := top
			if y+1 < g.Height {
				bottom = g.Row(y + 1)
			}
			for x := 0; x < g.Width; x++ {
				avg := (top[x] + bottom[x]) / 2
				bw.WriteRune(GlyphFor(avg, g.MaxIter, a.Palette, a.Mode))
			}
			bw.WriteByte('\n')
		}
	} else {
		for row := 0; row < g.Height; row++ {
			for _, n := range g.Row(row) {
				bw.WriteRune(GlyphFor(n, g.MaxIter, a.Palette, a.Mode))
			}
			bw.WriteByte('\n')
		}
	}

	return bw.Flush()
}

// ColorExport writes the escape-coded text variant. The full-resolution
// stream is identical to the live frame; the half-block variant folds
// equal-color pairs into a single foreground glyph (▄ ▀ █) and only
// spends a background sequence when the halves differ.
func (a *Assembler) ColorExport(w io.Writer, g *fractal.Grid, header string) error {
	bw := bufio.NewWriter(w)
	writeHeader(bw, header)

	if !a.HalfBlock {
		// The colored variant always carries color, even when the live
		// display has it toggled off.
		forced := *a
		forced.Color = true
		forced.fullRows(bw, g)
		return bw.Flush()
	}

	for y := 0; y < g.Height; y += 2 {
		top := g.Row(y)
		bottom := top
		if y+1 < g.Height {
			bottom = g.Row(y + 1)
		}

		for x := 0; x < g.Width; x++ {
			nTop, nBot := top[x], bottom[x]
			cTop := exportColor(nTop, g.MaxIter, a.Scheme, a.Mode)
			cBot := exportColor(nBot, g.MaxIter, a.Scheme, a.Mode)

			switch {
			case nTop >= g.MaxIter && nBot >= g.MaxIter:
				bw.WriteByte(' ')
			case cTop == cBot:
				bw.WriteString(sgrFg256)
				if nTop >= g.MaxIter {
					writeNum(bw, cBot)
					bw.WriteByte('m')
					bw.WriteRune('▄')
				} else if nBot >= g.MaxIter {
					writeNum(bw, cTop)
					bw.WriteByte('m')
					bw.WriteRune('▀')
				} else {
					writeNum(bw, cTop)
					bw.WriteByte('m')
					bw.WriteRune('█')
				}
			default:
				bw.WriteString(sgrFg256)
				writeNum(bw, cTop)
				bw.WriteString(sgrBg256)
				writeNum(bw, cBot)
				bw.WriteByte('m')
				bw.WriteRune('▀')
			}
		}
		bw.WriteString(sgrReset)
		bw.WriteByte('\n')
	}

	return bw.Flush()
}

// exportColor is the mapping-aware color used by the export paths,
// with the in-set sentinel folded to index 0 as the original format did.
func exportColor(n, maxIter int, scheme *ColorScheme, mode MapMode) int {
	c := ColorFor(n, maxIter, scheme, mode)
	if c < 0 {
		return 0
	}
	return c
}

func writeHeader(w sink, header string) {
	if header == "" {
		return
	}
	w.WriteString("# ")
	w.WriteString(header)
	w.WriteByte('\n')
}

func writeFg(w sink, c int) {
	w.WriteString(sgrFg256)
	writeNum(w, c)
	w.WriteByte('m')
}

func writeNum(w sink, n int) {
	w.WriteString(strconv.Itoa(n))
}
