package render

import (
	"fmt"
	"strings"

	"github.com/OSK-provenis/marcepan/fractal"
)

// Describe builds the copy-pasteable command line that regenerates the
// current frame. It is shown as the live header and written as the
// leading comment of every export, so the flag names and value
// formatting here are a stable interface. Ordinals are 1-based.
func Describe(v fractal.Viewport, o Options, paletteOrdinal, schemeOrdinal int, custom bool) string {
	var b strings.Builder

	fmt.Fprintf(&b, "marcepan -x %.9g %.9g -y %.9g %.9g -i %d",
		v.Xmin, v.Xmax, v.Ymin, v.Ymax, v.MaxIter)

	if !o.Color {
		b.WriteString(" -nc")
	}
	if o.Mode == MapLinear {
		b.WriteString(" -m lin")
	}
	if o.HalfBlock {
		b.WriteString(" -hb")
	}
	if v.Julia {
		fmt.Fprintf(&b, " -j %.9g %.9g", v.JuliaCr, v.JuliaCi)
	}
	fmt.Fprintf(&b, " -col %d", schemeOrdinal)

	if !custom {
		// Builtin palette by ordinal, with the glyphs shown for
		// reference (the quoted part is not copy-paste safe).
		fmt.Fprintf(&b, " -pal %d | \"%s\"", paletteOrdinal, string(o.Palette))
	} else {
		b.WriteString(" --symbols '")
		for _, r := range o.Palette {
			if r == '\'' {
				b.WriteString(`'\''`)
			} else {
				b.WriteRune(r)
			}
		}
		b.WriteByte('\'')
	}

	return b.String()
}
