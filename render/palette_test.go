package render

import "testing"

func TestPaletteTableStability(t *testing.T) {
	// Ordinals are a stable interface: saved headers reference palettes
	// and schemes by 1-based index.
	if BuiltinPaletteCount != 16 {
		t.Fatalf("Expected 16 builtin palettes, got %d", BuiltinPaletteCount)
	}
	if ColorSchemeCount != 16 {
		t.Fatalf("Expected 16 color schemes, got %d", ColorSchemeCount)
	}

	p := NewPalettes()
	if got := string(p.Glyphs(0)); got != " #" {
		t.Errorf("Expected palette 1 to be \" #\", got %q", got)
	}
	if got := string(p.Glyphs(1)); got != ".,:;!?%$#@" {
		t.Errorf("Expected palette 2 to be the default ramp, got %q", got)
	}
	if got := string(p.Glyphs(15)); got != " ░▒▓█" {
		t.Errorf("Expected palette 16 to be the shade ramp, got %q", got)
	}

	if ColorSchemes[0][0] != 0x11 || ColorSchemes[0][15] != 0x2D {
		t.Errorf("Color scheme 1 endpoints changed: %#x %#x",
			ColorSchemes[0][0], ColorSchemes[0][15])
	}
	if ColorSchemes[15][15] != 0xFF {
		t.Errorf("Color scheme 16 endpoint changed: %#x", ColorSchemes[15][15])
	}
}

func TestAddCustom(t *testing.T) {
	p := NewPalettes()

	idx, err := p.AddCustom("@. ")
	if err != nil {
		t.Fatalf("AddCustom failed: %v", err)
	}
	if idx != 16 {
		t.Errorf("Expected custom palette at index 16, got %d", idx)
	}
	if p.Count() != 17 {
		t.Errorf("Expected 17 palettes, got %d", p.Count())
	}
	if !p.IsCustom(idx) {
		t.Error("Expected IsCustom for the appended palette")
	}
	if p.IsCustom(1) {
		t.Error("Expected builtin palette not to be custom")
	}

	if _, err := p.AddCustom("ab"); err == nil {
		t.Error("Expected error registering a second custom palette")
	}
}

func TestAddCustomBounds(t *testing.T) {
	tests := []struct {
		name   string
		glyphs string
		ok     bool
	}{
		{"TooShort", "x", false},
		{"Minimum", "x.", true},
		{"Empty", "", false},
		{"Unicode", "░▒", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPalettes()
			_, err := p.AddCustom(tt.glyphs)
			if tt.ok && err != nil {
				t.Errorf("Expected success, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("Expected error")
			}
		})
	}
}

func TestCycleIndex(t *testing.T) {
	tests := []struct {
		name         string
		index, delta int
		want         int
	}{
		{"Forward", 0, 1, 1},
		{"WrapForward", 15, 1, 0},
		{"Backward", 1, -1, 0},
		{"WrapBackward", 0, -1, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CycleIndex(tt.index, 16, tt.delta); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}
