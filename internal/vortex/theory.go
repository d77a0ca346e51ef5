package vortex

import "math"

// TheoryFields holds the closed-form vortex fields on a grid.
type TheoryFields struct {
	U         Field `json:"u"`
	V         Field `json:"v"`
	Speed     Field `json:"speed"`
	Vorticity Field `json:"vorticity"`
	Psi       Field `json:"psi"`
}

// Theory evaluates the analytic Taylor-Green fields. It fails only when p
// does not validate.
func Theory(g Grid, p Params) (TheoryFields, error) {
	if err := p.Validate(); err != nil {
		return TheoryFields{}, err
	}
	decay := p.Decay()

	u := g.Eval(func(x, y float64) float64 {
		return math.Sin(x) * math.Cos(y) * decay
	})
	v := g.Eval(func(x, y float64) float64 {
		return -math.Cos(x) * math.Sin(y) * decay
	})
	psi := g.Eval(func(x, y float64) float64 {
		return math.Sin(x) * math.Sin(y) * decay
	})
	vort := g.Eval(func(x, y float64) float64 {
		return 2.0 * math.Sin(x) * math.Sin(y) * decay
	})

	return TheoryFields{
		U:         u,
		V:         v,
		Speed:     magnitude(u, v),
		Vorticity: vort,
		Psi:       psi,
	}, nil
}
