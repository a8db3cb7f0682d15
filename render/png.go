package render

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/OSK-provenis/marcepan/fractal"
)

// ExportPNG renders the grid as a one-pixel-per-cell PNG through the
// active color scheme, with in-set cells black. Unlike the terminal
// streams this is resolution-exact, so half-block mode needs no special
// casing: the doubled grid simply yields a taller image.
func ExportPNG(w io.Writer, g *fractal.Grid, scheme *ColorScheme, mode MapMode) error {
	img := image.NewRGBA(image.Rect(0, 0, g.Width, g.Height))

	for row := 0; row < g.Height; row++ {
		for col, n := range g.Row(row) {
			c := ColorFor(n, g.MaxIter, scheme, mode)
			if c < 0 {
				img.SetRGBA(col, row, color.RGBA{A: 0xff})
				continue
			}
			img.SetRGBA(col, row, xtermRGB(uint8(c)))
		}
	}

	return png.Encode(w, img)
}

// Xterm 256-palette color components.
//
// Cube: index = 16 + 36r + 6g + b with r,g,b in [0,5] and channel
// levels 0, 95, 135, 175, 215, 255. Grayscale ramp: indices 232-255,
// level = 8 + 10*(index-232).
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// basic16 covers indices 0-15 (standard + bright ANSI colors).
var basic16 = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

// xtermRGB returns the RGB value of an xterm 256-palette index.
func xtermRGB(index uint8) color.RGBA {
	switch {
	case index < 16:
		c := basic16[index]
		return color.RGBA{R: c[0], G: c[1], B: c[2], A: 0xff}
	case index < 232:
		n := index - 16
		return color.RGBA{
			R: cubeLevels[n/36],
			G: cubeLevels[(n%36)/6],
			B: cubeLevels[n%6],
			A: 0xff,
		}
	default:
		level := 8 + 10*(index-232)
		return color.RGBA{R: level, G: level, B: level, A: 0xff}
	}
}
