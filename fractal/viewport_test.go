package fractal

import (
	"math"
	"testing"
)

const relTol = 1e-9

func closeEnough(a, b float64) bool {
	diff := math.Abs(a - b)
	if diff == 0 {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	if scale == 0 {
		return diff < relTol
	}
	return diff/scale < relTol
}

func TestPan(t *testing.T) {
	tests := []struct {
		name           string
		dxFrac, dyFrac float64
		wantXmin       float64
		wantYmin       float64
	}{
		{"Right", 0.1, 0, -2.0 + 0.3, -1.0},
		{"Left", -0.1, 0, -2.0 - 0.3, -1.0},
		{"Up", 0, 0.1, -2.0, -1.0 + 0.2},
		{"Diagonal", 0.1, -0.1, -2.0 + 0.3, -1.0 - 0.2},
		{"None", 0, 0, -2.0, -1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport()
			width := v.Xmax - v.Xmin
			height := v.Ymax - v.Ymin

			v.Pan(tt.dxFrac, tt.dyFrac)

			if !closeEnough(v.Xmin, tt.wantXmin) {
				t.Errorf("Expected Xmin %f, got %f", tt.wantXmin, v.Xmin)
			}
			if !closeEnough(v.Ymin, tt.wantYmin) {
				t.Errorf("Expected Ymin %f, got %f", tt.wantYmin, v.Ymin)
			}
			if !closeEnough(v.Xmax-v.Xmin, width) {
				t.Errorf("Pan changed width from %f to %f", width, v.Xmax-v.Xmin)
			}
			if !closeEnough(v.Ymax-v.Ymin, height) {
				t.Errorf("Pan changed height from %f to %f", height, v.Ymax-v.Ymin)
			}
		})
	}
}

func TestPanUnbounded(t *testing.T) {
	// Panning has no travel limit; 1000 steps must accumulate cleanly
	v := NewViewport()
	for i := 0; i < 1000; i++ {
		v.Pan(1.0, 0)
	}
	if v.Xmin <= DefaultXmax {
		t.Errorf("Expected viewport far right of origin, got Xmin %f", v.Xmin)
	}
	if !closeEnough(v.Xmax-v.Xmin, 3.0) {
		t.Errorf("Expected width 3.0 after panning, got %f", v.Xmax-v.Xmin)
	}
}

func TestZoomRoundTrip(t *testing.T) {
	factors := []float64{0.7, 1.3, 0.5, 2.0, 0.99}

	for _, f := range factors {
		v := NewViewport()
		v.Pan(0.3, -0.2) // off-center so asymmetry would show
		orig := v

		v.Zoom(f)
		v.Zoom(1 / f)

		if !closeEnough(v.Xmin, orig.Xmin) || !closeEnough(v.Xmax, orig.Xmax) ||
			!closeEnough(v.Ymin, orig.Ymin) || !closeEnough(v.Ymax, orig.Ymax) {
			t.Errorf("Zoom(%f) round trip: expected %+v, got %+v", f, orig, v)
		}
	}
}

func TestZoomKeepsCenter(t *testing.T) {
	v := NewViewport()
	cx := (v.Xmin + v.Xmax) / 2
	cy := (v.Ymin + v.Ymax) / 2

	v.Zoom(0.7)

	if !closeEnough((v.Xmin+v.Xmax)/2, cx) {
		t.Errorf("Expected center x %f, got %f", cx, (v.Xmin+v.Xmax)/2)
	}
	if !closeEnough((v.Ymin+v.Ymax)/2, cy) {
		t.Errorf("Expected center y %f, got %f", cy, (v.Ymin+v.Ymax)/2)
	}
}

func TestZoomAxis(t *testing.T) {
	v := NewViewport()
	origHeight := v.Ymax - v.Ymin

	v.ZoomX(0.5)

	if !closeEnough(v.Xmax-v.Xmin, 1.5) {
		t.Errorf("Expected width 1.5, got %f", v.Xmax-v.Xmin)
	}
	if !closeEnough(v.Ymax-v.Ymin, origHeight) {
		t.Errorf("ZoomX changed height from %f to %f", origHeight, v.Ymax-v.Ymin)
	}

	v = NewViewport()
	origWidth := v.Xmax - v.Xmin

	v.ZoomY(2.0)

	if !closeEnough(v.Ymax-v.Ymin, 4.0) {
		t.Errorf("Expected height 4.0, got %f", v.Ymax-v.Ymin)
	}
	if !closeEnough(v.Xmax-v.Xmin, origWidth) {
		t.Errorf("ZoomY changed width from %f to %f", origWidth, v.Xmax-v.Xmin)
	}
}

func TestReset(t *testing.T) {
	v := NewViewport()
	v.Pan(0.5, 0.5)
	v.Zoom(0.1)
	v.MaxIter = 500
	v.ToggleJulia()

	v.Reset()

	want := NewViewport()
	want.JuliaCr = v.JuliaCr // Reset keeps the captured constant
	want.JuliaCi = v.JuliaCi
	if v != want {
		t.Errorf("Expected %+v after reset, got %+v", want, v)
	}
	if v.Julia {
		t.Error("Expected Julia mode cleared after reset")
	}
}

func TestAdjustMaxIter(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		delta   int
		want    int
		changed bool
	}{
		{"Up", 30, 5, 35, true},
		{"Down", 30, -5, 25, true},
		{"FloorBlocked", 5, -5, 5, false},
		{"CeilingBlocked", MaxIterLimit - 5, 5, MaxIterLimit - 5, false},
		{"NearCeiling", MaxIterLimit - 10, 5, MaxIterLimit - 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport()
			v.MaxIter = tt.start
			changed := v.AdjustMaxIter(tt.delta)
			if changed != tt.changed {
				t.Errorf("Expected changed=%v, got %v", tt.changed, changed)
			}
			if v.MaxIter != tt.want {
				t.Errorf("Expected MaxIter %d, got %d", tt.want, v.MaxIter)
			}
		})
	}
}

func TestSnapToGridNoop(t *testing.T) {
	// Xmin/Ymin already on the lattice: snapping must not move anything.
	v := NewViewport()
	v.Xmin, v.Xmax = -2.0, 2.0 // px = 4/8 = 0.5, -2.0 is a multiple
	v.Ymin, v.Ymax = -1.0, 1.0 // py = 2/4 = 0.5, -1.0 is a multiple
	orig := v

	v.SnapToGrid(8, 4)

	if v != orig {
		t.Errorf("Expected snap to be a no-op, got %+v from %+v", v, orig)
	}
}

func TestSnapToGridPreservesExtent(t *testing.T) {
	v := NewViewport()
	v.Pan(0.037, -0.0213) // land off-lattice

	width := v.Xmax - v.Xmin
	height := v.Ymax - v.Ymin

	v.SnapToGrid(80, 24)

	if v.Xmax-v.Xmin != width {
		t.Errorf("Expected width preserved exactly, %v != %v", v.Xmax-v.Xmin, width)
	}
	if v.Ymax-v.Ymin != height {
		t.Errorf("Expected height preserved exactly, %v != %v", v.Ymax-v.Ymin, height)
	}

	px := (v.Xmax - v.Xmin) / 80
	py := (v.Ymax - v.Ymin) / 24
	if got := math.Floor(v.Xmin/px) * px; got != v.Xmin {
		t.Errorf("Expected Xmin on lattice, got %v (nearest %v)", v.Xmin, got)
	}
	if got := math.Floor(v.Ymin/py) * py; got != v.Ymin {
		t.Errorf("Expected Ymin on lattice, got %v (nearest %v)", v.Ymin, got)
	}
}

func TestToggleJuliaCapturesCenter(t *testing.T) {
	v := NewViewport()
	v.Pan(0.25, -0.15)
	cx := (v.Xmin + v.Xmax) / 2
	cy := (v.Ymin + v.Ymax) / 2

	v.ToggleJulia()

	if !v.Julia {
		t.Fatal("Expected Julia mode on")
	}
	if v.JuliaCr != cx || v.JuliaCi != cy {
		t.Errorf("Expected constant (%f, %f), got (%f, %f)", cx, cy, v.JuliaCr, v.JuliaCi)
	}
	if v.Xmin != -2.0 || v.Xmax != 2.0 || v.Ymin != -1.5 || v.Ymax != 1.5 {
		t.Errorf("Expected Julia extent (-2,2,-1.5,1.5), got (%f,%f,%f,%f)",
			v.Xmin, v.Xmax, v.Ymin, v.Ymax)
	}
}

func TestToggleJuliaRoundTrip(t *testing.T) {
	v := NewViewport()
	v.Pan(0.4, 0.3)
	cx := (v.Xmin + v.Xmax) / 2
	cy := (v.Ymin + v.Ymax) / 2

	v.ToggleJulia()
	v.ToggleJulia()

	if v.Julia {
		t.Fatal("Expected Julia mode off after round trip")
	}
	if !closeEnough((v.Xmin+v.Xmax)/2, cx) || !closeEnough((v.Ymin+v.Ymax)/2, cy) {
		t.Errorf("Expected center back at (%f, %f), got (%f, %f)",
			cx, cy, (v.Xmin+v.Xmax)/2, (v.Ymin+v.Ymax)/2)
	}
}

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Viewport)
		want bool
	}{
		{"Default", func(v *Viewport) {}, true},
		{"FlippedX", func(v *Viewport) { v.Xmin, v.Xmax = v.Xmax, v.Xmin }, false},
		{"FlippedY", func(v *Viewport) { v.Ymin, v.Ymax = v.Ymax, v.Ymin }, false},
		{"EmptyX", func(v *Viewport) { v.Xmax = v.Xmin }, false},
		{"ZeroIter", func(v *Viewport) { v.MaxIter = 0 }, false},
		{"IterAtLimit", func(v *Viewport) { v.MaxIter = MaxIterLimit }, true},
		{"IterOverLimit", func(v *Viewport) { v.MaxIter = MaxIterLimit + 1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViewport()
			tt.mod(&v)
			if got := v.Valid(); got != tt.want {
				t.Errorf("Expected Valid()=%v, got %v", tt.want, got)
			}
		})
	}
}
