package render

import "fmt"

// Glyph palette and color scheme tables. Selection is by 1-based ordinal
// at the interface (flags, reconstruction header); these tables are
// versioned: order and content must stay stable so a saved header
// regenerates the identical frame.

// FillGlyph renders never-escaped (in-set) cells.
const FillGlyph = ' '

// Custom palette length bounds (from --symbols).
const (
	MinCustomPalette = 2
	MaxCustomPalette = 256
)

// builtinPalettes, ordinal 1-16. Palette 16 is the Unicode shade ramp.
var builtinPalettes = []string{
	" #",
	".,:;!?%$#@",
	" .,:;i1tfLCG08@",
	" .'`^\",:;Il!i><~+_-?][}{1)(|\\/tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$",
	" .:-=+*#%@",
	"@%#*+=-:. ",
	" .:-=+*#",
	" .oO@*",
	" .:+*#%@",
	" ~-=oO0@",
	" .'\"*+oO#",
	" .<>^v*#@",
	" .-~=o*O@#",
	" ._-~:;!*",
	" .,;:!|I#",
	" ░▒▓█",
}

// BuiltinPaletteCount is the number of selectable builtin glyph palettes.
var BuiltinPaletteCount = len(builtinPalettes)

// Palettes holds the selectable glyph palettes: the builtins plus at
// most one custom palette appended at startup.
type Palettes struct {
	entries [][]rune
	custom  bool
}

// NewPalettes returns the builtin palette table.
func NewPalettes() *Palettes {
	p := &Palettes{entries: make([][]rune, 0, len(builtinPalettes)+1)}
	for _, s := range builtinPalettes {
		p.entries = append(p.entries, []rune(s))
	}
	return p
}

// Count returns the number of selectable palettes.
func (p *Palettes) Count() int {
	return len(p.entries)
}

// Glyphs returns the glyph sequence for a 0-based palette index.
// The index must be in range; selection layers validate ordinals.
func (p *Palettes) Glyphs(index int) []rune {
	return p.entries[index]
}

// AddCustom appends a user palette and returns its 0-based index.
// Only one custom palette may be registered.
func (p *Palettes) AddCustom(glyphs string) (int, error) {
	if p.custom {
		return 0, fmt.Errorf("custom palette already registered")
	}
	runes := []rune(glyphs)
	if len(runes) < MinCustomPalette || len(runes) > MaxCustomPalette {
		return 0, fmt.Errorf("custom palette requires %d-%d characters, got %d",
			MinCustomPalette, MaxCustomPalette, len(runes))
	}
	p.entries = append(p.entries, runes)
	p.custom = true
	return len(p.entries) - 1, nil
}

// IsCustom reports whether the 0-based index names the custom palette.
func (p *Palettes) IsCustom(index int) bool {
	return p.custom && index == len(p.entries)-1
}

// ColorScheme is a fixed 16-entry ramp of xterm-256 color indices.
type ColorScheme [16]uint8

// ColorSchemes, ordinal 1-16.
var ColorSchemes = []ColorScheme{
	{0x11, 0x12, 0x13, 0x14, 0x15, 0x1B, 0x21, 0x27, 0x2D, 0x33, 0x32, 0x31, 0x30, 0x2F, 0x2E, 0x2D},
	{0x10, 0x34, 0x58, 0x7C, 0xA0, 0xC4, 0xCA, 0xD0, 0xD6, 0xDC, 0xE2, 0xE3, 0xE4, 0xE5, 0xE6, 0xE7},
	{0x16, 0x1C, 0x22, 0x28, 0x2E, 0x2F, 0x30, 0x31, 0x32, 0x33, 0x2D, 0x27, 0x21, 0x1B, 0x15, 0x39},
	{0x16, 0x1C, 0x22, 0x40, 0x46, 0x6A, 0x8E, 0xB2, 0xB3, 0x8F, 0x6B, 0x47, 0x23, 0x1D, 0x17, 0x16},
	{0x35, 0x36, 0x37, 0x38, 0x39, 0x5D, 0x81, 0xA5, 0xC9, 0xC8, 0xC7, 0xB2, 0xD6, 0xDC, 0xDD, 0xDE},
	{0xFF, 0xFE, 0xFD, 0xFC, 0xFB, 0xC3, 0xBD, 0x99, 0x75, 0x51, 0x2D, 0x27, 0x21, 0x1B, 0x15, 0x14},
	{0xC9, 0xC8, 0xC7, 0xC6, 0xC5, 0xC4, 0xCA, 0xD0, 0xD6, 0xDC, 0xE2, 0xBE, 0x9A, 0x76, 0x52, 0x2E},
	{0xE8, 0xE9, 0xEA, 0xEB, 0xEC, 0xED, 0xEE, 0xEF, 0xF0, 0xF1, 0xF2, 0xF3, 0xF4, 0xF5, 0xF6, 0xF7},
	{0xD8, 0xD9, 0xDA, 0xDB, 0xB7, 0x93, 0x6F, 0x4B, 0x45, 0x3F, 0x39, 0x5D, 0x81, 0xA5, 0xC9, 0xCF},
	{0x10, 0x16, 0x1C, 0x22, 0x28, 0x2E, 0x52, 0x76, 0x9A, 0xBE, 0xE2, 0xE3, 0xE4, 0xE5, 0xE6, 0xE7},
	{0xDA, 0xDB, 0xB7, 0x93, 0x99, 0xBD, 0xE1, 0xE0, 0xDF, 0xDE, 0xDD, 0xD7, 0xD1, 0xCB, 0xCC, 0xD2},
	{0x5E, 0x82, 0xA6, 0xAC, 0xB2, 0xB3, 0xB4, 0xB5, 0xB6, 0xB7, 0xB8, 0xB9, 0xBA, 0xBB, 0xDF, 0xE7},
	{0x10, 0x11, 0x12, 0x13, 0x14, 0x15, 0x39, 0x5D, 0x81, 0xA5, 0xC9, 0xCF, 0xD5, 0xDB, 0xE1, 0xE7},
	{0xC4, 0xCA, 0xD0, 0xD6, 0xDC, 0xE2, 0xBE, 0x9A, 0x76, 0x52, 0x2E, 0x2F, 0x30, 0x31, 0x32, 0x33},
	{0x34, 0x58, 0x7C, 0x7D, 0x7E, 0x7F, 0xA3, 0xC7, 0xC6, 0xC5, 0xC4, 0xA0, 0x7C, 0x58, 0x34, 0x35},
	{0x11, 0x12, 0x13, 0x14, 0x15, 0x1B, 0x21, 0x27, 0x2D, 0x33, 0x57, 0x7B, 0x9F, 0xC3, 0xE7, 0xFF},
}

// ColorSchemeCount is the number of selectable color schemes.
var ColorSchemeCount = len(ColorSchemes)

// CycleIndex steps a 0-based selection index by delta with wraparound.
func CycleIndex(index, count, delta int) int {
	return ((index+delta)%count + count) % count
}
