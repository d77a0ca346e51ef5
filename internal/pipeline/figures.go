package pipeline

import (
	"github.com/couchcryptid/taylor-green/internal/render"
	"github.com/couchcryptid/taylor-green/internal/vortex"
)

// Colour limits for the figure set.
const (
	velocityLimit       = 0.9
	velocityErrorLimit  = 0.003
	vorticityErrorLimit = 0.07
)

// Figures returns the standard figure sequence for a run: for each of u, v,
// speed, and vorticity the analytic field, the reconstructed field, and the
// error; then the stream function. Analytic and error plots carry analytic
// arrows, reconstructed plots carry reconstructed arrows.
func Figures(r *Result, quiver bool) []render.Figure {
	th, st := r.Theory, r.Stream
	vel := [2]float64{-velocityLimit, velocityLimit}
	velErr := [2]float64{0, velocityErrorLimit}

	theory := func(name, title string, f vortex.Field, rng [2]float64) render.Figure {
		return render.Figure{Name: name, Title: title, Field: f, U: th.U, V: th.V, Range: rng, Quiver: quiver}
	}
	stream := func(name, title string, f vortex.Field, rng [2]float64) render.Figure {
		return render.Figure{Name: name, Title: title, Field: f, U: st.U, V: st.V, Range: rng, Quiver: quiver}
	}

	return []render.Figure{
		theory("u_theory", "Velocity Field u: theoretical [m/s]", th.U, vel),
		stream("u_stream", "Velocity Field u: from stream function [m/s]", st.U, vel),
		theory("u_error", "Error in computation of u [m/s]", r.errorField(vortex.LabelU), velErr),

		theory("v_theory", "Velocity Field v: theoretical [m/s]", th.V, vel),
		stream("v_stream", "Velocity Field v: from stream function [m/s]", st.V, vel),
		theory("v_error", "Error in computation of v [m/s]", r.errorField(vortex.LabelV), velErr),

		theory("speed_theory", "Velocity magnitude: theoretical [m/s]", th.Speed, [2]float64{0, velocityLimit}),
		stream("speed_stream", "Velocity magnitude: from stream function [m/s]", st.Speed, [2]float64{0, velocityLimit}),
		theory("speed_error", "Error in computation of velocity magnitude [m/s]", r.errorField(vortex.LabelSpeed), velErr),

		theory("vorticity_theory", "Vorticity field of the theoretical velocity [s^-1]", th.Vorticity, [2]float64{-2 * velocityLimit, 2 * velocityLimit}),
		stream("vorticity_stream", "Vorticity field of the velocity obtained from stream function [s^-1]", st.Vorticity, [2]float64{-2 * velocityLimit, 2 * velocityLimit}),
		theory("vorticity_error", "Error in computation of vorticity [s^-1]", r.errorField(vortex.LabelVorticity), [2]float64{0, vorticityErrorLimit}),

		stream("psi", "Stream function [s^-1]", th.Psi, vel),
	}
}

// FindFigure returns the figure with the given name.
func FindFigure(figs []render.Figure, name string) (render.Figure, bool) {
	for _, f := range figs {
		if f.Name == name {
			return f, true
		}
	}
	return render.Figure{}, false
}
