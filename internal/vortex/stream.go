package vortex

import "fmt"

// StreamFields holds velocity and vorticity recovered from a stream function.
type StreamFields struct {
	U         Field `json:"u"`
	V         Field `json:"v"`
	Speed     Field `json:"speed"`
	Vorticity Field `json:"vorticity"`
}

// FromStream reconstructs the flow from psi by finite differences:
// u = ∂ψ/∂y, v = -∂ψ/∂x, vorticity = ∂v/∂x - ∂u/∂y.
func FromStream(g Grid, psi Field) StreamFields {
	if psi.nx != g.Nx() || psi.ny != g.Ny() {
		panic(fmt.Sprintf("vortex: stream function is %dx%d on a %dx%d grid", psi.nx, psi.ny, g.Nx(), g.Ny()))
	}

	u := Gradient(psi, g.Y, AxisY)
	v := Gradient(psi, g.X, AxisX).apply(func(d float64) float64 { return -d })

	dvdx := Gradient(v, g.X, AxisX)
	dudy := Gradient(u, g.Y, AxisY)

	return StreamFields{
		U:         u,
		V:         v,
		Speed:     magnitude(u, v),
		Vorticity: sub(dvdx, dudy),
	}
}
