package render

import (
	"testing"

	"github.com/OSK-provenis/marcepan/fractal"
)

func TestDescribeDefaults(t *testing.T) {
	v := fractal.NewViewport()
	o := Options{Palette: testPalette, Scheme: &ColorSchemes[0], Mode: MapModulo, Color: true}

	got := Describe(v, o, 2, 1, false)
	want := `marcepan -x -2 1 -y -1 1 -i 30 -col 1 -pal 2 | ".,:;!?%$#@"`
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestDescribeAllFlags(t *testing.T) {
	v := fractal.NewViewport()
	v.Julia = true
	o := Options{
		Palette:   testPalette,
		Scheme:    &ColorSchemes[4],
		Mode:      MapLinear,
		Color:     false,
		HalfBlock: true,
	}

	got := Describe(v, o, 2, 5, false)
	want := `marcepan -x -2 1 -y -1 1 -i 30 -nc -m lin -hb -j -0.7 0.27015 -col 5 -pal 2 | ".,:;!?%$#@"`
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestDescribeCustomPaletteQuoting(t *testing.T) {
	v := fractal.NewViewport()
	o := Options{Palette: []rune("a'b"), Scheme: &ColorSchemes[0], Mode: MapModulo, Color: true}

	got := Describe(v, o, 17, 1, true)
	want := `marcepan -x -2 1 -y -1 1 -i 30 -col 1 --symbols 'a'\''b'`
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
