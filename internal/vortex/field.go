package vortex

import (
	"encoding/json"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Field is one scalar quantity sampled on a grid, stored row-major with
// the x index selecting the row. A Field is not modified after construction.
type Field struct {
	nx, ny int
	data   []float64
}

// NewField wraps a copy of data as an nx by ny field.
func NewField(nx, ny int, data []float64) (Field, error) {
	if nx < 0 || ny < 0 || len(data) != nx*ny {
		return Field{}, fmt.Errorf("field data has %d values, want %dx%d", len(data), nx, ny)
	}
	return Field{nx: nx, ny: ny, data: append([]float64(nil), data...)}, nil
}

// Nx returns the number of rows.
func (f Field) Nx() int { return f.nx }

// Ny returns the number of columns.
func (f Field) Ny() int { return f.ny }

// Len returns the number of samples.
func (f Field) Len() int { return len(f.data) }

// At returns the value at grid point (i, j).
func (f Field) At(i, j int) float64 {
	if i < 0 || i >= f.nx {
		panic(fmt.Sprintf("vortex: x index %d out of range [0, %d)", i, f.nx))
	}
	if j < 0 || j >= f.ny {
		panic(fmt.Sprintf("vortex: y index %d out of range [0, %d)", j, f.ny))
	}
	return f.data[i*f.ny+j]
}

// Data returns a copy of the row-major samples.
func (f Field) Data() []float64 {
	return append([]float64(nil), f.data...)
}

// Rows returns the samples as nx rows of ny values, the shape most plotting
// backends accept.
func (f Field) Rows() [][]float64 {
	rows := make([][]float64, f.nx)
	for i := range rows {
		rows[i] = append([]float64(nil), f.data[i*f.ny:(i+1)*f.ny]...)
	}
	return rows
}

// Max returns the largest sample, or NaN for an empty field.
func (f Field) Max() float64 {
	if len(f.data) == 0 {
		return math.NaN()
	}
	return floats.Max(f.data)
}

// Min returns the smallest sample, or NaN for an empty field.
func (f Field) Min() float64 {
	if len(f.data) == 0 {
		return math.NaN()
	}
	return floats.Min(f.data)
}

// SameShape reports whether f and o cover the same grid shape.
func (f Field) SameShape(o Field) bool {
	return f.nx == o.nx && f.ny == o.ny
}

// MarshalJSON encodes the field as a 2-D array of rows.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Rows())
}

// apply builds a new field from fn applied to each sample.
func (f Field) apply(fn func(v float64) float64) Field {
	out := make([]float64, len(f.data))
	for k, v := range f.data {
		out[k] = fn(v)
	}
	return Field{nx: f.nx, ny: f.ny, data: out}
}

// combine builds a new field from fn applied pairwise. Mismatched shapes panic.
func combine(a, b Field, fn func(x, y float64) float64) Field {
	if !a.SameShape(b) {
		panic(fmt.Sprintf("vortex: field shape mismatch %dx%d vs %dx%d", a.nx, a.ny, b.nx, b.ny))
	}
	out := make([]float64, len(a.data))
	for k := range a.data {
		out[k] = fn(a.data[k], b.data[k])
	}
	return Field{nx: a.nx, ny: a.ny, data: out}
}

// magnitude returns sqrt(u² + v²) pointwise.
func magnitude(u, v Field) Field {
	return combine(u, v, func(a, b float64) float64 {
		return math.Sqrt(float64(a*a) + float64(b*b))
	})
}

func sub(a, b Field) Field {
	if !a.SameShape(b) {
		panic(fmt.Sprintf("vortex: field shape mismatch %dx%d vs %dx%d", a.nx, a.ny, b.nx, b.ny))
	}
	return Field{nx: a.nx, ny: a.ny, data: floats.SubTo(make([]float64, len(a.data)), a.data, b.data)}
}
