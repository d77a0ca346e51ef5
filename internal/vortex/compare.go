package vortex

import (
	"fmt"
	"math"
)

// ErrorReport is the pointwise absolute difference between a reference field
// and its numerical counterpart.
type ErrorReport struct {
	Label string  `json:"label"`
	Max   float64 `json:"max_abs_error"`
	Diff  Field   `json:"-"`
}

// CompareFields returns |theory - numeric| and its maximum. Fields of
// different shapes panic.
func CompareFields(theory, numeric Field, label string) ErrorReport {
	diff := combine(theory, numeric, func(a, b float64) float64 {
		return math.Abs(a - b)
	})
	maxErr := diff.Max()
	if diff.Len() == 0 {
		maxErr = 0
	}
	return ErrorReport{Label: label, Max: maxErr, Diff: diff}
}

func (r ErrorReport) String() string {
	return fmt.Sprintf("Maximum error in %s computation: %.6e", r.Label, r.Max)
}
