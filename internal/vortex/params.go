package vortex

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidParams is the parent of every parameter validation failure.
	ErrInvalidParams = errors.New("invalid flow parameters")
	// ErrInvalidViscosity is returned when viscosity is not strictly positive.
	ErrInvalidViscosity = fmt.Errorf("%w: viscosity must be a positive value", ErrInvalidParams)
	// ErrInvalidTime is returned when time is negative.
	ErrInvalidTime = fmt.Errorf("%w: time must be non-negative", ErrInvalidParams)
)

// Params are the physical inputs of the vortex.
type Params struct {
	Time      float64 `json:"time"`      // s
	Viscosity float64 `json:"viscosity"` // m²/s
}

// Validate checks viscosity first, then time.
func (p Params) Validate() error {
	if !(p.Viscosity > 0) {
		return fmt.Errorf("%w (got %g)", ErrInvalidViscosity, p.Viscosity)
	}
	if !(p.Time >= 0) {
		return fmt.Errorf("%w (got %g)", ErrInvalidTime, p.Time)
	}
	return nil
}

// Decay returns the amplitude factor exp(-2νt).
func (p Params) Decay() float64 {
	return math.Exp(-2.0 * p.Viscosity * p.Time)
}
