package vortex

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, Linspace(0, 1, 5))
	assert.Equal(t, []float64{2}, Linspace(2, 5, 1))
	assert.Nil(t, Linspace(0, 1, 0))

	x := Linspace(0, 2*math.Pi, 50)
	assert.Len(t, x, 50)
	assert.Equal(t, 0.0, x[0])
	assert.Equal(t, 2*math.Pi, x[49])
}

func TestUniformGrid(t *testing.T) {
	g, err := UniformGrid(Bounds{0, 1}, Bounds{-1, 1}, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Nx())
	assert.Equal(t, 5, g.Ny())
	assert.Equal(t, 15, g.Size())

	_, err = UniformGrid(Bounds{0, 1}, Bounds{0, 1}, 0, 5)
	require.Error(t, err)
}

func TestGridEval_RowMajorIJ(t *testing.T) {
	g := NewGrid([]float64{1, 2}, []float64{10, 20, 30})
	f := g.Eval(func(x, y float64) float64 { return x + y })

	assert.Equal(t, []float64{11, 21, 31, 12, 22, 32}, f.Data())
	assert.Equal(t, 22.0, f.At(1, 1))
	assert.Equal(t, [][]float64{{11, 21, 31}, {12, 22, 32}}, f.Rows())
}

func TestNewGrid_CopiesAxes(t *testing.T) {
	x := []float64{0, 1}
	g := NewGrid(x, []float64{0})
	x[0] = 99
	assert.Equal(t, 0.0, g.X[0])
}

func TestField(t *testing.T) {
	_, err := NewField(2, 2, []float64{1, 2, 3})
	require.Error(t, err)

	data := []float64{4, -1, 7, 2}
	f, err := NewField(2, 2, data)
	require.NoError(t, err)
	data[0] = 100

	assert.Equal(t, 4.0, f.At(0, 0))
	assert.Equal(t, 7.0, f.Max())
	assert.Equal(t, -1.0, f.Min())
	assert.Panics(t, func() { f.At(2, 0) })
	assert.Panics(t, func() { f.At(0, -1) })

	out, err := json.Marshal(f)
	require.NoError(t, err)
	assert.JSONEq(t, `[[4,-1],[7,2]]`, string(out))
}
