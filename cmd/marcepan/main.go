package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/OSK-provenis/marcepan/fractal"
	"github.com/OSK-provenis/marcepan/render"
)

const maxWorkers = 256

// config is the parsed command line
type config struct {
	workers    int
	color      bool
	halfBlock  bool
	batch      bool
	mode       render.MapMode
	paletteIdx int
	schemeIdx  int
	custom     string
	view       fractal.Viewport
	showHelp   bool
}

// usageError marks parse failures that should echo the usage text
type usageError string

func (e usageError) Error() string { return string(e) }

// parseArgs parses the original's multi-valued option syntax. The
// reconstruction header printed above each frame must paste back into a
// working invocation, so -x/-y/-j take two bare values and flag-style
// parsing does not apply.
func parseArgs(args []string) (*config, error) {
	cfg := &config{
		color:      true,
		mode:       render.MapModulo,
		paletteIdx: 1,
		schemeIdx:  0,
		view:       fractal.NewViewport(),
	}

	i := 0

	take := func(name string) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", name)
		}
		i++
		return args[i], nil
	}
	takeInt := func(name string) (int, error) {
		s, err := take(name)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%s: invalid number %q", name, s)
		}
		return n, nil
	}
	takeFloat := func(name string) (float64, error) {
		s, err := take(name)
		if err != nil {
			return 0, err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: invalid number %q", name, s)
		}
		return f, nil
	}

	for ; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "-t":
			n, err := takeInt(arg)
			if err != nil {
				return nil, err
			}
			if n < 0 || n > maxWorkers {
				n = 0 // Auto-detect
			}
			cfg.workers = n

		case "-nc":
			cfg.color = false

		case "-hb":
			cfg.halfBlock = true

		case "-b", "--batch":
			cfg.batch = true

		case "-x":
			xmin, err := takeFloat(arg)
			if err != nil {
				return nil, err
			}
			xmax, err := takeFloat(arg)
			if err != nil {
				return nil, err
			}
			if xmin >= xmax {
				return nil, errors.New("xmin must be less than xmax")
			}
			cfg.view.Xmin, cfg.view.Xmax = xmin, xmax

		case "-y":
			ymin, err := takeFloat(arg)
			if err != nil {
				return nil, err
			}
			ymax, err := takeFloat(arg)
			if err != nil {
				return nil, err
			}
			if ymin >= ymax {
				return nil, errors.New("ymin must be less than ymax")
			}
			cfg.view.Ymin, cfg.view.Ymax = ymin, ymax

		case "-i":
			n, err := takeInt(arg)
			if err != nil {
				return nil, err
			}
			if n < 1 || n > fractal.MaxIterLimit {
				return nil, fmt.Errorf("iterations must be 1-%d", fractal.MaxIterLimit)
			}
			cfg.view.MaxIter = n

		case "-pal":
			n, err := takeInt(arg)
			if err != nil {
				return nil, err
			}
			if n < 1 || n > render.BuiltinPaletteCount {
				return nil, fmt.Errorf("palette must be 1-%d", render.BuiltinPaletteCount)
			}
			cfg.paletteIdx = n - 1

		case "-col":
			n, err := takeInt(arg)
			if err != nil {
				return nil, err
			}
			if n < 1 || n > render.ColorSchemeCount {
				return nil, fmt.Errorf("color must be 1-%d", render.ColorSchemeCount)
			}
			cfg.schemeIdx = n - 1

		case "-m", "--mode":
			s, err := take(arg)
			if err != nil {
				return nil, err
			}
			switch s {
			case "mod", "modulo":
				cfg.mode = render.MapModulo
			case "lin", "linear":
				cfg.mode = render.MapLinear
			default:
				return nil, errors.New("mode must be 'mod' or 'lin'")
			}

		case "-j":
			cr, err := takeFloat(arg)
			if err != nil {
				return nil, err
			}
			ci, err := takeFloat(arg)
			if err != nil {
				return nil, err
			}
			cfg.view.Julia = true
			cfg.view.JuliaCr, cfg.view.JuliaCi = cr, ci

		case "--symbols":
			s, err := take(arg)
			if err != nil {
				return nil, err
			}
			cfg.custom = s

		case "-h", "--help":
			cfg.showHelp = true
			return cfg, nil

		default:
			return nil, usageError(fmt.Sprintf("unknown option: %s", arg))
		}
	}

	return cfg, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: marcepan [OPTIONS]")
	fmt.Fprintln(w, "Interactive Mandelbrot/Julia fractal viewer")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "OPTIONS:")
	fmt.Fprintln(w, "  -t N            Worker threads (default: auto-detect)")
	fmt.Fprintln(w, "  -nc             Disable color output")
	fmt.Fprintln(w, "  -x MIN MAX      X-axis range (default: -2.0 1.0)")
	fmt.Fprintln(w, "  -y MIN MAX      Y-axis range (default: -1.0 1.0)")
	fmt.Fprintf(w, "  -i N            Max iterations (default: %d, max %d)\n", fractal.DefaultMaxIter, fractal.MaxIterLimit)
	fmt.Fprintf(w, "  -pal N          ASCII palette 1-%d (default: 2)\n", render.BuiltinPaletteCount)
	fmt.Fprintf(w, "  -col N          Color scheme 1-%d (default: 1)\n", render.ColorSchemeCount)
	fmt.Fprintln(w, "  -m, --mode M    Mapping mode: mod (default) or lin")
	fmt.Fprintln(w, "  -j CR CI        Julia mode with constant c = CR + CI*i")
	fmt.Fprintln(w, "  -hb             Enable half-block mode (2x vertical resolution)")
	fmt.Fprintf(w, "  --symbols \"S\"   Custom ASCII palette (2-%d chars)\n", render.MaxCustomPalette)
	fmt.Fprintln(w, "  -b, --batch     Render once and exit")
	fmt.Fprintln(w, "  -h, --help      Show this help")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "CONTROLS (NumLock OFF for numpad):")
	fmt.Fprintln(w, "  Numpad 8/2/4/6       Pan up/down/left/right")
	fmt.Fprintln(w, "  Numpad 7/9/1/3       Pan diagonally")
	fmt.Fprintln(w, "  Numpad 0 (Ins)       Zoom in")
	fmt.Fprintln(w, "  Numpad Enter         Zoom out")
	fmt.Fprintln(w, "  +/-                  Adjust iteration depth")
	fmt.Fprintln(w, "  Shift + Arrows       Stretch/shrink axis")
	fmt.Fprintln(w, "  ESC                  Reset to default view")
	fmt.Fprintln(w, "  / *                  Cycle ASCII palettes")
	fmt.Fprintln(w, "  1 2                  Cycle color schemes")
	fmt.Fprintln(w, "  c                    Toggle color on/off")
	fmt.Fprintln(w, "  m                    Toggle modulo/linear mode")
	fmt.Fprintln(w, "  j                    Toggle Julia/Mandelbrot mode")
	fmt.Fprintln(w, "  h                    Toggle half-block rendering")
	fmt.Fprintln(w, "  p                    Save to .txt (plain ASCII)")
	fmt.Fprintln(w, "  P (Shift+p)          Save to .ansi (with colors)")
	fmt.Fprintln(w, "  o                    Save to .png (image render)")
	fmt.Fprintln(w, "  q                    Quit")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "The header shows a command to recreate the current view.")
	fmt.Fprintln(w, "In Julia mode, the constant c is taken from the Mandelbrot center.")
}

func main() {
	cfg, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var uerr usageError
		if errors.As(err, &uerr) {
			printUsage(os.Stderr)
		}
		os.Exit(1)
	}

	if cfg.showHelp {
		printUsage(os.Stdout)
		return
	}

	s, err := newSession(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.batch {
		if err := s.batch(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := s.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
