package terminal

import "io"

// ClearHome erases the screen and homes the cursor. Exported so frame
// builders can prepend it and push a whole frame in one write.
const ClearHome = "\x1b[2J\x1b[H"

// Pre-allocated ANSI sequence fragments
var (
	csiClear = []byte(ClearHome)
	csiReset = []byte("\x1b[0m")

	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")

	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
)

// EmergencyReset writes the minimal sequence set that returns a
// terminal to a usable state. Used from panic handlers where the
// normal Fini path may not run.
func EmergencyReset(w io.Writer) {
	w.Write(csiReset)
	w.Write(csiAltScreenExit)
	w.Write(csiCursorShow)
}
