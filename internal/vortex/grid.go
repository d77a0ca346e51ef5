package vortex

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Bounds is a closed coordinate interval along one axis.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Grid is a rectangular grid described by its two coordinate axes.
type Grid struct {
	X []float64
	Y []float64
}

// Linspace returns n evenly spaced samples over [lo, hi], endpoints included.
// A single sample is lo. The last sample is exactly hi.
func Linspace(lo, hi float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{lo}
	}
	x := floats.Span(make([]float64, n), lo, hi)
	x[n-1] = hi
	return x
}

// NewGrid builds a grid from explicit axes. The axes are copied.
func NewGrid(x, y []float64) Grid {
	return Grid{
		X: append([]float64(nil), x...),
		Y: append([]float64(nil), y...),
	}
}

// UniformGrid builds an nx by ny grid with linspace axes over the given bounds.
func UniformGrid(xb, yb Bounds, nx, ny int) (Grid, error) {
	if nx < 1 || ny < 1 {
		return Grid{}, fmt.Errorf("grid resolution must be positive, got %dx%d", nx, ny)
	}
	return Grid{
		X: Linspace(xb.Min, xb.Max, nx),
		Y: Linspace(yb.Min, yb.Max, ny),
	}, nil
}

// Nx returns the number of points along x.
func (g Grid) Nx() int { return len(g.X) }

// Ny returns the number of points along y.
func (g Grid) Ny() int { return len(g.Y) }

// Size returns the total number of grid points.
func (g Grid) Size() int { return len(g.X) * len(g.Y) }

// Eval samples fn at every grid point.
func (g Grid) Eval(fn func(x, y float64) float64) Field {
	nx, ny := g.Nx(), g.Ny()
	data := make([]float64, nx*ny)
	for i, x := range g.X {
		for j, y := range g.Y {
			data[i*ny+j] = fn(x, y)
		}
	}
	return Field{nx: nx, ny: ny, data: data}
}
