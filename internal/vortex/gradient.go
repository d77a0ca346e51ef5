package vortex

import "fmt"

// Axis selects the grid direction of a derivative.
type Axis int

const (
	AxisX Axis = iota // along i (rows)
	AxisY             // along j (columns)
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// Gradient differentiates f along axis using the coordinates of that axis.
// Interior points use the second-order centred difference, index 0 a forward
// difference and the last index a backward difference. An axis with a single
// point has a zero derivative. Mismatched coordinate lengths panic.
//
// The arithmetic follows numpy.gradient operation for operation: when every
// spacing is exactly equal the interior is (f[k+1]-f[k-1])/(2h), otherwise
// the weighted three-point form a·f[k-1] + b·f[k] + c·f[k+1].
func Gradient(f Field, coords []float64, axis Axis) Field {
	n, stride, lines := f.nx, f.ny, f.ny
	if axis == AxisY {
		n, stride, lines = f.ny, 1, f.nx
	}
	if len(coords) != n {
		panic(fmt.Sprintf("vortex: %d coordinates for %s axis of length %d", len(coords), axis, n))
	}

	out := make([]float64, len(f.data))
	if n < 2 {
		return Field{nx: f.nx, ny: f.ny, data: out}
	}

	st := newStencil(coords)
	for line := 0; line < lines; line++ {
		base := line
		if axis == AxisY {
			base = line * f.ny
		}
		at := func(k int) float64 { return f.data[base+k*stride] }

		out[base] = (at(1) - at(0)) / st.first
		for k := 1; k < n-1; k++ {
			out[base+k*stride] = st.interior(k, at(k-1), at(k), at(k+1))
		}
		last := n - 1
		out[base+last*stride] = (at(last) - at(last-1)) / st.last
	}
	return Field{nx: f.nx, ny: f.ny, data: out}
}

// stencil holds the per-axis difference weights.
type stencil struct {
	uniform     bool
	h           float64 // spacing when uniform
	first, last float64 // end spacings
	a, b, c     []float64
}

func newStencil(coords []float64) stencil {
	n := len(coords)
	dx := make([]float64, n-1)
	uniform := true
	for k := range dx {
		dx[k] = coords[k+1] - coords[k]
		if dx[k] != dx[0] {
			uniform = false
		}
	}

	st := stencil{uniform: uniform, h: dx[0], first: dx[0], last: dx[n-2]}
	if uniform || n < 3 {
		return st
	}
	st.a = make([]float64, n-2)
	st.b = make([]float64, n-2)
	st.c = make([]float64, n-2)
	for k := range st.a {
		d1, d2 := dx[k], dx[k+1]
		st.a[k] = -d2 / (d1 * (d1 + d2))
		st.b[k] = (d2 - d1) / (d1 * d2)
		st.c[k] = d1 / (d2 * (d1 + d2))
	}
	return st
}

// interior differentiates at point k from its neighbours. The explicit
// float64 conversions keep each product rounded on its own so no fused
// multiply-add changes the result.
func (s stencil) interior(k int, prev, cur, next float64) float64 {
	if s.uniform {
		return (next - prev) / (2 * s.h)
	}
	i := k - 1
	return float64(float64(s.a[i]*prev)+float64(s.b[i]*cur)) + float64(s.c[i]*next)
}
