package vortex

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradient_StencilsAlongY(t *testing.T) {
	// f(i, j) = j² on y = 0, 1, 2, 3
	f, err := NewField(1, 4, []float64{0, 1, 4, 9})
	require.NoError(t, err)

	d := Gradient(f, []float64{0, 1, 2, 3}, AxisY)

	assert.Equal(t, []float64{1, 2, 4, 5}, d.Data())
}

func TestGradient_StencilsAlongX(t *testing.T) {
	// two columns, x = 0, 0.5, 1
	f, err := NewField(3, 2, []float64{
		0, 10,
		1, 10,
		4, 10,
	})
	require.NoError(t, err)

	d := Gradient(f, []float64{0, 0.5, 1}, AxisX)

	assert.Equal(t, []float64{
		2, 0,
		4, 0,
		6, 0,
	}, d.Data())
}

func TestGradient_PreservesShape(t *testing.T) {
	g, err := UniformGrid(Bounds{0, 1}, Bounds{0, 2}, 7, 5)
	require.NoError(t, err)
	f := g.Eval(func(x, y float64) float64 { return x * y })

	for _, axis := range []Axis{AxisX, AxisY} {
		coords := g.X
		if axis == AxisY {
			coords = g.Y
		}
		d := Gradient(f, coords, axis)
		assert.Equal(t, f.Nx(), d.Nx())
		assert.Equal(t, f.Ny(), d.Ny())
	}
}

func TestGradient_ExactForLinear(t *testing.T) {
	g, err := UniformGrid(Bounds{-1, 3}, Bounds{0, 1}, 9, 6)
	require.NoError(t, err)
	f := g.Eval(func(x, y float64) float64 { return 3*x - 2*y + 1 })

	dx := Gradient(f, g.X, AxisX)
	dy := Gradient(f, g.Y, AxisY)
	for k := range dx.Data() {
		assert.InDelta(t, 3, dx.Data()[k], 1e-12)
		assert.InDelta(t, -2, dy.Data()[k], 1e-12)
	}
}

func TestGradient_NonUniformQuadraticInterior(t *testing.T) {
	x := []float64{0, 0.1, 0.4, 1.0}
	f, err := NewField(4, 1, []float64{0, 0.01, 0.16, 1.0})
	require.NoError(t, err)

	d := Gradient(f, x, AxisX)

	// The centred stencil is exact for quadratics on any spacing.
	assert.InDelta(t, 0.2, d.At(1, 0), 1e-12)
	assert.InDelta(t, 0.8, d.At(2, 0), 1e-12)
	// One-sided ends are first order.
	assert.InDelta(t, 0.1, d.At(0, 0), 1e-12)
	assert.InDelta(t, 1.4, d.At(3, 0), 1e-12)
}

func TestGradient_SinglePointAxis(t *testing.T) {
	f, err := NewField(1, 3, []float64{1, 2, 3})
	require.NoError(t, err)

	d := Gradient(f, []float64{math.Pi}, AxisX)
	assert.Equal(t, []float64{0, 0, 0}, d.Data())
}

func TestGradient_CoordinateMismatchPanics(t *testing.T) {
	f, err := NewField(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Panics(t, func() { Gradient(f, []float64{0, 1, 2}, AxisY) })
}

func TestGradient_MatchesNumpyRoundingNonUniform(t *testing.T) {
	coords := []float64{0.0, 0.1, 0.35, 0.45, 0.9, 1.3}
	f, err := NewField(1, 6, []float64{0.2, 0.7, -1.3, 2.9, 0.05, 1.7})
	require.NoError(t, err)

	d := Gradient(f, coords, AxisY)

	// numpy.gradient(f, coords) on the same inputs
	assert.Equal(t, []float64{
		4.999999999999999,
		1.2857142857142843,
		27.7142857142857,
		33.2121212121212,
		-0.7965686274509802,
		4.124999999999999,
	}, d.Data())
}

func TestGradient_MatchesNumpyRoundingUniform(t *testing.T) {
	coords := []float64{0.0, 0.25, 0.5, 0.75, 1.0}
	f, err := NewField(5, 1, []float64{0.3, -0.1, 0.45, 1.05, 0.2})
	require.NoError(t, err)

	d := Gradient(f, coords, AxisX)

	assert.Equal(t, []float64{
		-1.6,
		0.30000000000000004,
		2.3000000000000003,
		-0.5,
		-3.4000000000000004,
	}, d.Data())
}

func TestNewStencil_DetectsUniformSpacing(t *testing.T) {
	assert.True(t, newStencil([]float64{0, 0.25, 0.5, 0.75}).uniform)
	assert.False(t, newStencil([]float64{0, 0.1, 0.35}).uniform)
}
