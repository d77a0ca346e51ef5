// Package vortex evaluates the 2D Taylor-Green vortex and checks a
// finite-difference reconstruction of it against the closed form.
//
// # Flow
//
// The Taylor-Green vortex is a periodic, decaying solution of the
// incompressible Navier-Stokes equations. With kinematic viscosity ν and
// time t the decay factor is F = exp(-2νt) and
//
//	u(x, y) =  sin(x) cos(y) F
//	v(x, y) = -cos(x) sin(y) F
//	ψ(x, y) =  sin(x) sin(y) F        (stream function)
//	ω(x, y) = 2 sin(x) sin(y) F       (vorticity, so ω = 2ψ)
//
// # Grid and storage
//
// A [Grid] holds two 1-D coordinate axes. Point (i, j) sits at
// (X[i], Y[j]), the same layout as a meshgrid built with ij indexing.
// A [Field] stores one value per grid point in row-major order:
//
//	Data[i*Ny + j]  ↔  (X[i], Y[j])
//
// so the x index selects the row and the y index the column.
//
// # Differencing
//
// [Gradient] differentiates along one axis. Interior points use the
// second-order centred formula: the plain central difference when every
// spacing is exactly equal, otherwise the weighted non-uniform form, each
// rounded the way numpy.gradient rounds it. Index 0 uses a forward difference and
// the last index a backward difference. Output has the input's shape; no
// boundary row or column is dropped.
//
// Velocity is recovered from ψ as u = ∂ψ/∂y, v = -∂ψ/∂x, and vorticity as
// ∂v/∂x - ∂u/∂y. The one-sided boundary stencils are first order, which is
// why the reconstructed vorticity error is dominated by the domain edges.
package vortex
