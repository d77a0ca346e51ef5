package vortex

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Labels used for the four compared quantities.
const (
	LabelU         = "u velocity"
	LabelV         = "v velocity"
	LabelSpeed     = "velocity magnitude"
	LabelVorticity = "vorticity"
)

// ErrorSummary is the serialisable part of an ErrorReport.
type ErrorSummary struct {
	Label       string  `json:"label"`
	MaxAbsError float64 `json:"max_abs_error"`
}

// Report summarises one verification run.
type Report struct {
	ID         string         `json:"id"`
	Params     Params         `json:"params"`
	Nx         int            `json:"nx"`
	Ny         int            `json:"ny"`
	XBounds    Bounds         `json:"x_bounds"`
	YBounds    Bounds         `json:"y_bounds"`
	Errors     []ErrorSummary `json:"errors"`
	ComputedAt time.Time      `json:"computed_at"`
}

// NewReport summarises errs for a run on g with p.
func NewReport(g Grid, p Params, errs []ErrorReport) Report {
	r := Report{
		Params:     p,
		Nx:         g.Nx(),
		Ny:         g.Ny(),
		XBounds:    axisBounds(g.X),
		YBounds:    axisBounds(g.Y),
		Errors:     make([]ErrorSummary, len(errs)),
		ComputedAt: clock.Now().UTC(),
	}
	for i, e := range errs {
		r.Errors[i] = ErrorSummary{Label: e.Label, MaxAbsError: e.Max}
	}
	r.ID = generateID(r)
	return r
}

// MaxError returns the summary for label.
func (r Report) MaxError(label string) (float64, bool) {
	for _, e := range r.Errors {
		if e.Label == label {
			return e.MaxAbsError, true
		}
	}
	return 0, false
}

// generateID hashes the run inputs so repeated runs with the same setup share an ID.
func generateID(r Report) string {
	key := fmt.Sprintf("%g|%g|%d|%d|%g|%g|%g|%g",
		r.Params.Time, r.Params.Viscosity, r.Nx, r.Ny,
		r.XBounds.Min, r.XBounds.Max, r.YBounds.Min, r.YBounds.Max)
	sum := sha256.Sum256([]byte(key))
	return "tg-" + hex.EncodeToString(sum[:8])
}

func axisBounds(axis []float64) Bounds {
	if len(axis) == 0 {
		return Bounds{}
	}
	return Bounds{Min: axis[0], Max: axis[len(axis)-1]}
}
