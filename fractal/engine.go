package fractal

import (
	"fmt"
	"runtime"
	"sync"
)

// Grid holds one computation's escape iteration counts, row-major.
// A cell value >= MaxIter means the point never escaped (in-set).
// Immutable once returned by Compute; the caller owns it and must not
// release it while a render or export pass is still reading it.
type Grid struct {
	Counts  []int
	Width   int
	Height  int
	MaxIter int
}

// At returns the iteration count at (row, col). Row 0 is the top of the
// viewport (maximum imaginary part).
func (g *Grid) At(row, col int) int {
	return g.Counts[row*g.Width+col]
}

// Row returns the row-major slice for one grid row.
func (g *Grid) Row(row int) []int {
	return g.Counts[row*g.Width : (row+1)*g.Width]
}

// Compute fills a fresh Grid from the viewport, sampling
// px = xmin + col*dx, py = ymax - row*dy. The recurrence is z <- z²+c
// with z0=0, c=pixel for Mandelbrot and z0=pixel, c=constant for Julia,
// escaping when |z|² > 4.
//
// workers <= 0 selects runtime.NumCPU(). The height rows are split into
// contiguous ranges, one goroutine per range, remainder rows going one
// each to the leading ranges. Ranges write disjoint regions of the same
// slice, so the only synchronization is the final join. Results are
// bit-identical for any worker count.
func Compute(v Viewport, width, height, workers int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("grid size %dx%d out of range", width, height)
	}

	g := &Grid{
		Counts:  make([]int, width*height),
		Width:   width,
		Height:  height,
		MaxIter: v.MaxIter,
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers < 1 {
		workers = 1
	}
	if workers > height {
		workers = height
	}

	if workers == 1 {
		computeRows(g, v, 0, height)
		return g, nil
	}

	rowsEach := height / workers
	extra := height % workers

	var wg sync.WaitGroup
	row := 0
	for i := 0; i < workers; i++ {
		count := rowsEach
		if i < extra {
			count++
		}
		if count == 0 {
			continue
		}
		start, end := row, row+count
		row = end

		wg.Add(1)
		go func() {
			defer wg.Done()
			computeRows(g, v, start, end)
		}()
	}
	wg.Wait()

	return g, nil
}

// computeRows fills rows [rowStart, rowEnd) of the grid.
func computeRows(g *Grid, v Viewport, rowStart, rowEnd int) {
	dx := (v.Xmax - v.Xmin) / float64(g.Width)
	dy := (v.Ymax - v.Ymin) / float64(g.Height)

	for row := rowStart; row < rowEnd; row++ {
		out := g.Counts[row*g.Width : (row+1)*g.Width]
		py := v.Ymax - float64(row)*dy

		for col := 0; col < g.Width; col++ {
			px := v.Xmin + float64(col)*dx

			var zr, zi, cr, ci float64
			if v.Julia {
				zr, zi = px, py
				cr, ci = v.JuliaCr, v.JuliaCi
			} else {
				cr, ci = px, py
			}

			iter := 0
			for iter < v.MaxIter {
				zr2 := zr * zr
				zi2 := zi * zi
				if zr2+zi2 > 4.0 {
					break
				}
				zi = 2*zr*zi + ci
				zr = zr2 - zi2 + cr
				iter++
			}

			out[col] = iter
		}
	}
}
