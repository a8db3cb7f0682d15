package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/OSK-provenis/marcepan/fractal"
	"github.com/OSK-provenis/marcepan/render"
	"github.com/OSK-provenis/marcepan/terminal"
)

// Grid geometry limits. Two terminal rows are reserved for the header;
// the height cap leaves room for half-block doubling.
const (
	minGridSize   = 4
	maxGridWidth  = 1000
	maxGridHeight = 2000
	headerRows    = 2
)

// View adjustment steps
const (
	panFraction  = 0.1
	zoomFraction = 0.3
)

// session holds the interactive state: the viewport, the selected
// presentation, the last computed grid, and the frame buffer reused
// across redraws.
type session struct {
	term     *terminal.Terminal
	view     fractal.Viewport
	palettes *render.Palettes

	paletteIdx int
	schemeIdx  int
	asm        render.Assembler
	workers    int

	// Shown instead of the header until the next keypress
	status string

	grid  *fractal.Grid
	frame bytes.Buffer
}

func newSession(cfg *config) (*session, error) {
	s := &session{
		term:       terminal.New(),
		view:       cfg.view,
		palettes:   render.NewPalettes(),
		paletteIdx: cfg.paletteIdx,
		schemeIdx:  cfg.schemeIdx,
		workers:    cfg.workers,
	}

	if cfg.custom != "" {
		idx, err := s.palettes.AddCustom(cfg.custom)
		if err != nil {
			return nil, err
		}
		s.paletteIdx = idx
	}

	s.asm.Options = render.Options{
		Mode:      cfg.mode,
		Color:     cfg.color,
		HalfBlock: cfg.halfBlock,
	}
	s.syncOptions()

	return s, nil
}

// syncOptions points the assembler at the currently selected palette
// and scheme
func (s *session) syncOptions() {
	s.asm.Palette = s.palettes.Glyphs(s.paletteIdx)
	s.asm.Scheme = &render.ColorSchemes[s.schemeIdx]
}

// gridSize derives the computation grid from the terminal size
func (s *session) gridSize() (int, int) {
	w, h := s.term.Size()
	h -= headerRows

	if w < minGridSize {
		w = minGridSize
	}
	if h < minGridSize {
		h = minGridSize
	}
	if w > maxGridWidth {
		w = maxGridWidth
	}
	if h > maxGridHeight {
		h = maxGridHeight
	}

	if s.asm.HalfBlock {
		h *= 2
	}
	return w, h
}

// recompute snaps the viewport to the current grid and runs the
// engine. On failure the previous grid stays on screen.
func (s *session) recompute() {
	w, h := s.gridSize()
	s.view.SnapToGrid(w, h)

	g, err := fractal.Compute(s.view, w, h, s.workers)
	if err != nil {
		return
	}
	s.grid = g
}

func (s *session) describe() string {
	return render.Describe(s.view, s.asm.Options, s.paletteIdx+1, s.schemeIdx+1,
		s.palettes.IsCustom(s.paletteIdx))
}

// draw assembles clear + header + fractal into one buffer and pushes it
// in a single write
func (s *session) draw() {
	if s.grid == nil {
		return
	}
	s.syncOptions()

	s.frame.Reset()
	s.frame.WriteString(terminal.ClearHome)
	if s.status != "" {
		s.frame.WriteString(s.status)
	} else {
		s.frame.WriteString(s.describe())
	}
	s.frame.WriteByte('\n')

	s.asm.Frame(&s.frame, s.grid)
	s.term.Write(s.frame.Bytes())
}

// batch computes one frame at the current terminal size and writes it
// to w without touching terminal modes
func (s *session) batch(w io.Writer) error {
	s.syncOptions()

	width, height := s.gridSize()
	s.view.SnapToGrid(width, height)

	g, err := fractal.Compute(s.view, width, height, s.workers)
	if err != nil {
		return err
	}
	s.grid = g

	var buf bytes.Buffer
	s.asm.Frame(&buf, g)
	_, err = w.Write(buf.Bytes())
	return err
}

// run owns the terminal for the interactive loop
func (s *session) run() error {
	defer func() {
		if r := recover(); r != nil {
			s.term.Fini()
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	if err := s.term.Init(); err != nil {
		return err
	}
	defer s.term.Fini()

	s.recompute()
	s.draw()

	for {
		ev := s.term.PollEvent()

		switch ev.Type {
		case terminal.EventKey:
			s.status = ""
			switch s.handleKey(ev) {
			case actionQuit:
				return nil
			case actionRecalc:
				s.recompute()
				s.draw()
			case actionRedraw:
				s.draw()
			}

		case terminal.EventResize:
			s.recompute()
			s.draw()

		case terminal.EventError:
			return ev.Err

		case terminal.EventClosed:
			return nil
		}
	}
}

type keyAction int

const (
	actionNone keyAction = iota
	actionQuit
	actionRecalc
	actionRedraw
)

func (s *session) handleKey(ev terminal.Event) keyAction {
	shift := ev.Modifiers&terminal.ModShift != 0

	switch ev.Key {
	case terminal.KeyCtrlC, terminal.KeyCtrlD:
		return actionQuit

	// Panning; Shift+arrow stretches or shrinks one axis instead
	case terminal.KeyUp:
		if shift {
			s.view.ZoomY(1 - zoomFraction)
		} else {
			s.view.Pan(0, panFraction)
		}
		return actionRecalc
	case terminal.KeyDown:
		if shift {
			s.view.ZoomY(1 + zoomFraction)
		} else {
			s.view.Pan(0, -panFraction)
		}
		return actionRecalc
	case terminal.KeyLeft:
		if shift {
			s.view.ZoomX(1 - zoomFraction)
		} else {
			s.view.Pan(-panFraction, 0)
		}
		return actionRecalc
	case terminal.KeyRight:
		if shift {
			s.view.ZoomX(1 + zoomFraction)
		} else {
			s.view.Pan(panFraction, 0)
		}
		return actionRecalc

	// Diagonals on the numpad corners
	case terminal.KeyHome:
		s.view.Pan(-panFraction, panFraction)
		return actionRecalc
	case terminal.KeyPageUp:
		s.view.Pan(panFraction, panFraction)
		return actionRecalc
	case terminal.KeyEnd:
		s.view.Pan(-panFraction, -panFraction)
		return actionRecalc
	case terminal.KeyPageDown:
		s.view.Pan(panFraction, -panFraction)
		return actionRecalc

	// Zoom
	case terminal.KeyInsert:
		s.view.Zoom(1 - zoomFraction)
		return actionRecalc
	case terminal.KeyEnter:
		s.view.Zoom(1 + zoomFraction)
		return actionRecalc

	case terminal.KeyEscape:
		s.view.Reset()
		return actionRecalc

	case terminal.KeyRune:
		return s.handleRune(ev.Rune)
	}

	return actionNone
}

func (s *session) handleRune(r rune) keyAction {
	switch r {
	case 'q', 'Q':
		return actionQuit

	case '+':
		if s.view.AdjustMaxIter(5) {
			return actionRecalc
		}
	case '-':
		if s.view.AdjustMaxIter(-5) {
			return actionRecalc
		}

	case '/':
		s.paletteIdx = render.CycleIndex(s.paletteIdx, s.palettes.Count(), -1)
		return actionRedraw
	case '*':
		s.paletteIdx = render.CycleIndex(s.paletteIdx, s.palettes.Count(), 1)
		return actionRedraw
	case '1':
		s.schemeIdx = render.CycleIndex(s.schemeIdx, render.ColorSchemeCount, -1)
		return actionRedraw
	case '2':
		s.schemeIdx = render.CycleIndex(s.schemeIdx, render.ColorSchemeCount, 1)
		return actionRedraw

	case 'c', 'C':
		s.asm.Color = !s.asm.Color
		return actionRedraw
	case 'm', 'M':
		if s.asm.Mode == render.MapModulo {
			s.asm.Mode = render.MapLinear
		} else {
			s.asm.Mode = render.MapModulo
		}
		return actionRedraw
	case 'j', 'J':
		s.view.ToggleJulia()
		return actionRecalc
	case 'h', 'H':
		s.asm.HalfBlock = !s.asm.HalfBlock
		return actionRecalc

	case 'p':
		s.save(".txt", func(f *os.File) error {
			return s.asm.PlainExport(f, s.grid, s.describe())
		})
		return actionRedraw
	case 'P':
		s.save(".ansi", func(f *os.File) error {
			return s.asm.ColorExport(f, s.grid, s.describe())
		})
		return actionRedraw
	case 'o', 'O':
		s.save(".png", func(f *os.File) error {
			return render.ExportPNG(f, s.grid, s.asm.Scheme, s.asm.Mode)
		})
		return actionRedraw
	}

	return actionNone
}

// save writes the current grid to a timestamped file in the working
// directory and reports the result on the status line
func (s *session) save(ext string, write func(*os.File) error) {
	if s.grid == nil {
		return
	}
	s.syncOptions()

	name := time.Now().Format("marcepan_20060102_150405") + ext
	f, err := os.Create(name)
	if err != nil {
		s.status = "Save failed: " + err.Error()
		return
	}

	werr := write(f)
	if cerr := f.Close(); werr == nil {
		werr = cerr
	}
	if werr != nil {
		s.status = "Save failed: " + werr.Error()
		return
	}
	s.status = "Saved: " + name
}
