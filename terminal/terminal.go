package terminal

import (
	"fmt"
	"sync"
)

// Terminal owns the raw-mode screen for the lifetime of the viewer.
// Init and Fini bracket a session; between them the caller drains
// PollEvent and pushes frames with Write.
type Terminal struct {
	backend *unixBackend
	input   *inputReader

	resizeCh chan Event

	mu    sync.Mutex
	ready bool
}

func New() *Terminal {
	return &Terminal{
		backend:  newBackend(),
		resizeCh: make(chan Event, 1),
	}
}

// Init switches to the alternate screen in raw mode and starts the
// input and resize goroutines.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ready {
		return fmt.Errorf("terminal already initialized")
	}

	if err := t.backend.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}

	t.backend.Write(csiAltScreenEnter)
	t.backend.Write(csiCursorHide)
	t.backend.Write(csiClear)

	t.input = newInputReader(t.backend)
	t.input.start()

	t.backend.SetResizeHandler(func(w, h int) {
		// Coalesce: only the latest size matters
		select {
		case t.resizeCh <- Event{Type: EventResize, Width: w, Height: h}:
		default:
			select {
			case <-t.resizeCh:
			default:
			}
			select {
			case t.resizeCh <- Event{Type: EventResize, Width: w, Height: h}:
			default:
			}
		}
	})

	t.ready = true
	return nil
}

// Fini restores the terminal. Safe to call more than once, and from a
// deferred panic path.
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.ready {
		return
	}
	t.ready = false

	t.input.stop()

	t.backend.Write(csiReset)
	t.backend.Write(csiAltScreenExit)
	t.backend.Write(csiCursorShow)
	t.backend.Fini()
}

// Size returns the terminal dimensions in character cells
func (t *Terminal) Size() (width, height int) {
	return t.backend.Size()
}

// PollEvent blocks until the next key, resize, or error event
func (t *Terminal) PollEvent() Event {
	select {
	case ev := <-t.input.events():
		return ev
	case ev := <-t.resizeCh:
		return ev
	}
}

// Write sends a complete pre-rendered frame to the terminal
func (t *Terminal) Write(p []byte) error {
	return t.backend.Write(p)
}

// Clear erases the screen and homes the cursor
func (t *Terminal) Clear() error {
	return t.backend.Write(csiClear)
}
