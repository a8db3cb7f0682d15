package fractal

import "math"

// Default Mandelbrot view and iteration depth
const (
	DefaultXmin    = -2.0
	DefaultXmax    = 1.0
	DefaultYmin    = -1.0
	DefaultYmax    = 1.0
	DefaultMaxIter = 30

	// MaxIterLimit caps the iteration bound
	MaxIterLimit = 10000

	// Classic Julia point used until the user picks their own
	DefaultJuliaCr = -0.7
	DefaultJuliaCi = 0.27015
)

// Viewport is the rectangle of the complex plane currently sampled,
// plus the iteration bound and Julia state. It is owned by the session;
// the engine only reads it for the duration of one computation.
type Viewport struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
	MaxIter    int

	Julia            bool
	JuliaCr, JuliaCi float64
}

// NewViewport returns the canonical Mandelbrot viewport.
func NewViewport() Viewport {
	return Viewport{
		Xmin:    DefaultXmin,
		Xmax:    DefaultXmax,
		Ymin:    DefaultYmin,
		Ymax:    DefaultYmax,
		MaxIter: DefaultMaxIter,
		JuliaCr: DefaultJuliaCr,
		JuliaCi: DefaultJuliaCi,
	}
}

// Valid reports whether the rectangle and iteration bound satisfy the
// engine preconditions. Callers validate before computing; the engine
// does not re-check.
func (v *Viewport) Valid() bool {
	return v.Xmin < v.Xmax && v.Ymin < v.Ymax &&
		v.MaxIter >= 1 && v.MaxIter <= MaxIterLimit
}

// Pan shifts the rectangle by the given fractions of its own extent.
// No bounds limiting; float precision is the only travel limit.
func (v *Viewport) Pan(dxFrac, dyFrac float64) {
	dx := (v.Xmax - v.Xmin) * dxFrac
	dy := (v.Ymax - v.Ymin) * dyFrac
	v.Xmin += dx
	v.Xmax += dx
	v.Ymin += dy
	v.Ymax += dy
}

// Zoom rescales both axes around the rectangle center.
// factor < 1 zooms in, > 1 zooms out.
func (v *Viewport) Zoom(factor float64) {
	v.ZoomX(factor)
	v.ZoomY(factor)
}

// ZoomX rescales only the real axis around its midpoint.
func (v *Viewport) ZoomX(factor float64) {
	cx := (v.Xmin + v.Xmax) / 2
	hw := (v.Xmax - v.Xmin) * factor / 2
	v.Xmin = cx - hw
	v.Xmax = cx + hw
}

// ZoomY rescales only the imaginary axis around its midpoint.
func (v *Viewport) ZoomY(factor float64) {
	cy := (v.Ymin + v.Ymax) / 2
	hh := (v.Ymax - v.Ymin) * factor / 2
	v.Ymin = cy - hh
	v.Ymax = cy + hh
}

// Reset restores the canonical rectangle and iteration bound and leaves
// Julia mode.
func (v *Viewport) Reset() {
	v.Xmin, v.Xmax = DefaultXmin, DefaultXmax
	v.Ymin, v.Ymax = DefaultYmin, DefaultYmax
	v.MaxIter = DefaultMaxIter
	v.Julia = false
}

// AdjustMaxIter steps the iteration bound by delta, keeping it inside
// [5, MaxIterLimit-5]. Returns true if the bound changed.
func (v *Viewport) AdjustMaxIter(delta int) bool {
	next := v.MaxIter + delta
	if next < 5 || next > MaxIterLimit-5 {
		return false
	}
	v.MaxIter = next
	return true
}

// SnapToGrid floors Xmin/Ymin to whole multiples of the per-cell deltas
// induced by the given grid dimensions, shifting Xmax/Ymax by the same
// amount so width and height are preserved exactly. Keeps the sampled
// lattice stable under whole-cell pans. Must run before every
// computation with that computation's grid size.
func (v *Viewport) SnapToGrid(width, height int) {
	px := (v.Xmax - v.Xmin) / float64(width)
	py := (v.Ymax - v.Ymin) / float64(height)

	snappedXmin := math.Floor(v.Xmin/px) * px
	snappedYmin := math.Floor(v.Ymin/py) * py

	v.Xmax += snappedXmin - v.Xmin
	v.Ymax += snappedYmin - v.Ymin
	v.Xmin = snappedXmin
	v.Ymin = snappedYmin
}

// ToggleJulia switches between the Mandelbrot and Julia views.
// Entering Julia captures the current center as the constant c and
// resets to a Julia-friendly extent. Leaving re-centers the Mandelbrot
// view on the point c came from, so the user lands back where they were.
func (v *Viewport) ToggleJulia() {
	if !v.Julia {
		v.JuliaCr = (v.Xmin + v.Xmax) / 2
		v.JuliaCi = (v.Ymin + v.Ymax) / 2
		v.Julia = true
		v.Xmin, v.Xmax = -2.0, 2.0
		v.Ymin, v.Ymax = -1.5, 1.5
		return
	}

	cx, cy := v.JuliaCr, v.JuliaCi
	v.Julia = false
	const hw, hh = 1.5, 1.0
	v.Xmin, v.Xmax = cx-hw, cx+hw
	v.Ymin, v.Ymax = cy-hh, cy+hh
}
