package pipeline

import (
	"sort"

	"github.com/couchcryptid/taylor-green/internal/vortex"
)

// Result holds every field produced by one run.
type Result struct {
	Grid   vortex.Grid
	Params vortex.Params
	Theory vortex.TheoryFields
	Stream vortex.StreamFields
	Errors []vortex.ErrorReport // u, v, speed, vorticity
	Report vortex.Report
}

// Fields returns every field of the run keyed by name, e.g. "u_theory",
// "u_stream", "u_error", "psi".
func (r *Result) Fields() map[string]vortex.Field {
	m := map[string]vortex.Field{
		"u_theory":         r.Theory.U,
		"v_theory":         r.Theory.V,
		"speed_theory":     r.Theory.Speed,
		"vorticity_theory": r.Theory.Vorticity,
		"psi":              r.Theory.Psi,
		"u_stream":         r.Stream.U,
		"v_stream":         r.Stream.V,
		"speed_stream":     r.Stream.Speed,
		"vorticity_stream": r.Stream.Vorticity,
	}
	for _, e := range r.Errors {
		m[errorFieldName(e.Label)] = e.Diff
	}
	return m
}

// Field looks up one field by name.
func (r *Result) Field(name string) (vortex.Field, bool) {
	f, ok := r.Fields()[name]
	return f, ok
}

// FieldNames lists the available field names in sorted order.
func (r *Result) FieldNames() []string {
	fields := r.Fields()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func errorFieldName(label string) string {
	switch label {
	case vortex.LabelU:
		return "u_error"
	case vortex.LabelV:
		return "v_error"
	case vortex.LabelSpeed:
		return "speed_error"
	case vortex.LabelVorticity:
		return "vorticity_error"
	default:
		return label + "_error"
	}
}

func (r *Result) errorField(label string) vortex.Field {
	for _, e := range r.Errors {
		if e.Label == label {
			return e.Diff
		}
	}
	return vortex.Field{}
}
