package terminal

// Key represents a parsed input key
type Key uint16

const (
	KeyNone Key = iota
	KeyRune     // Printable character (check Event.Rune)

	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete

	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert

	KeyCtrlC
	KeyCtrlD
)

// Modifier flags
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << 0
	ModAlt   Modifier = 1 << 1
	ModCtrl  Modifier = 1 << 2
)

// escapeSequence maps the tail of an escape sequence to a key.
// A non-zero rn yields a KeyRune event, used for application-mode
// keypad codes that stand in for printable keys.
type escapeSequence struct {
	seq string
	key Key
	mod Modifier
	rn  rune
}

// CSI sequences (ESC [ ...)
var csiSequences = []escapeSequence{
	{seq: "A", key: KeyUp},
	{seq: "B", key: KeyDown},
	{seq: "C", key: KeyRight},
	{seq: "D", key: KeyLeft},

	{seq: "1;2A", key: KeyUp, mod: ModShift},
	{seq: "1;2B", key: KeyDown, mod: ModShift},
	{seq: "1;2C", key: KeyRight, mod: ModShift},
	{seq: "1;2D", key: KeyLeft, mod: ModShift},
	{seq: "1;3A", key: KeyUp, mod: ModAlt},
	{seq: "1;3B", key: KeyDown, mod: ModAlt},
	{seq: "1;3C", key: KeyRight, mod: ModAlt},
	{seq: "1;3D", key: KeyLeft, mod: ModAlt},
	{seq: "1;5A", key: KeyUp, mod: ModCtrl},
	{seq: "1;5B", key: KeyDown, mod: ModCtrl},
	{seq: "1;5C", key: KeyRight, mod: ModCtrl},
	{seq: "1;5D", key: KeyLeft, mod: ModCtrl},

	{seq: "H", key: KeyHome},
	{seq: "F", key: KeyEnd},
	{seq: "1~", key: KeyHome},
	{seq: "4~", key: KeyEnd},
	{seq: "5~", key: KeyPageUp},
	{seq: "6~", key: KeyPageDown},
	{seq: "2~", key: KeyInsert},
	{seq: "3~", key: KeyDelete},
}

// SS3 sequences (ESC O ...). The letter codes are what a NumLock-off
// numpad sends in application mode; the viewer treats them as their
// printable equivalents.
var ss3Sequences = []escapeSequence{
	{seq: "A", key: KeyUp},
	{seq: "B", key: KeyDown},
	{seq: "C", key: KeyRight},
	{seq: "D", key: KeyLeft},
	{seq: "H", key: KeyHome},
	{seq: "F", key: KeyEnd},
	{seq: "M", key: KeyEnter},

	{seq: "P", key: KeyRune, rn: '/'},
	{seq: "Q", key: KeyRune, rn: '*'},
	{seq: "R", key: KeyRune, rn: '-'},
	{seq: "S", key: KeyRune, rn: '+'},
	{seq: "o", key: KeyRune, rn: '/'},
	{seq: "j", key: KeyRune, rn: '*'},
	{seq: "k", key: KeyRune, rn: '+'},
	{seq: "m", key: KeyRune, rn: '-'},
}

var csiMap = buildSequenceMap(csiSequences)
var ss3Map = buildSequenceMap(ss3Sequences)

func buildSequenceMap(seqs []escapeSequence) map[string]escapeSequence {
	m := make(map[string]escapeSequence, len(seqs))
	for _, s := range seqs {
		m[s.seq] = s
	}
	return m
}

// lookupCSI resolves a CSI tail; the string([]byte) conversion inline
// in the map access does not allocate.
func lookupCSI(seq []byte) (escapeSequence, bool) {
	s, ok := csiMap[string(seq)]
	return s, ok
}

func lookupSS3(seq []byte) (escapeSequence, bool) {
	s, ok := ss3Map[string(seq)]
	return s, ok
}
