package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/taylor-green/internal/config"
	"github.com/couchcryptid/taylor-green/internal/observability"
	"github.com/couchcryptid/taylor-green/internal/pipeline"
	"github.com/couchcryptid/taylor-green/internal/vortex"
)

// Minimum observed orders of accuracy between the two finest levels. The
// one-sided boundary differences cap vorticity at first order.
const (
	minVelocityOrder  = 1.5
	minVorticityOrder = 0.8
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// level is one refinement step of the convergence study.
type level struct {
	nx, ny int
	h      float64
	errors map[string]float64
}

func newValidateCmd() *cobra.Command {
	var levels int
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that reconstruction errors shrink as the grid is refined",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(nil)
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg)
			return runValidation(cmd.Context(), cfg, levels, cmd.OutOrStdout(), logger, observability.NewMetrics())
		},
	}
	cmd.Flags().IntVar(&levels, "levels", 3, "number of grid doublings to compare (at least 2)")
	return cmd
}

func runValidation(ctx context.Context, cfg *config.Config, levels int, out io.Writer, logger *slog.Logger, metrics *observability.Metrics) error {
	if levels < 2 {
		return fmt.Errorf("levels must be at least 2, got %d", levels)
	}

	fmt.Fprintln(out, "=== Taylor-Green Convergence Validation ===")
	fmt.Fprintln(out)

	steps, err := refine(ctx, cfg, levels, logger, metrics)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "  %-10s %-12s %-12s %-12s %-12s\n", "grid", "u", "v", "speed", "vorticity")
	for _, s := range steps {
		fmt.Fprintf(out, "  %-10s %-12.4e %-12.4e %-12.4e %-12.4e\n",
			fmt.Sprintf("%dx%d", s.nx, s.ny),
			s.errors[vortex.LabelU], s.errors[vortex.LabelV],
			s.errors[vortex.LabelSpeed], s.errors[vortex.LabelVorticity])
	}

	phases := []*phase{
		checkMonotone("velocity errors shrink", steps, vortex.LabelU, vortex.LabelV, vortex.LabelSpeed),
		checkMonotone("vorticity error shrinks", steps, vortex.LabelVorticity),
		checkOrder(steps),
	}

	fmt.Fprintln(out)
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(out, "  %-42s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(out, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(out, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(out, "\nAll validations passed.")
		return nil
	}
	fmt.Fprintln(out, "\nValidation FAILED.")
	return fmt.Errorf("convergence validation failed")
}

// refine runs the pipeline on the configured grid and on levels-1 successive
// doublings of it.
func refine(ctx context.Context, cfg *config.Config, levels int, logger *slog.Logger, metrics *observability.Metrics) ([]level, error) {
	p := pipeline.New(nil, io.Discard, logger, metrics)
	params := paramsFromConfig(cfg)
	xb := vortex.Bounds{Min: cfg.XMin, Max: cfg.XMax}
	yb := vortex.Bounds{Min: cfg.YMin, Max: cfg.YMax}

	steps := make([]level, 0, levels)
	nx, ny := cfg.GridNX, cfg.GridNY
	for range levels {
		g, err := vortex.UniformGrid(xb, yb, nx, ny)
		if err != nil {
			return nil, err
		}
		res, err := p.Run(ctx, g, params)
		if err != nil {
			return nil, fmt.Errorf("run %dx%d: %w", nx, ny, err)
		}

		errs := make(map[string]float64, len(res.Errors))
		for _, e := range res.Errors {
			errs[e.Label] = e.Max
		}
		steps = append(steps, level{
			nx:     nx,
			ny:     ny,
			h:      math.Max((xb.Max-xb.Min)/float64(nx-1), (yb.Max-yb.Min)/float64(ny-1)),
			errors: errs,
		})

		nx, ny = 2*nx, 2*ny
	}
	return steps, nil
}

func checkMonotone(name string, steps []level, labels ...string) *phase {
	p := &phase{name: name}
	for _, label := range labels {
		for i := 1; i < len(steps); i++ {
			prev, cur := steps[i-1].errors[label], steps[i].errors[label]
			if !(cur < prev) {
				p.errorf("%s: %dx%d error %.4e not below %dx%d error %.4e",
					label, steps[i].nx, steps[i].ny, cur, steps[i-1].nx, steps[i-1].ny, prev)
			}
		}
	}
	return p
}

// checkOrder estimates the order of accuracy between the two finest levels.
func checkOrder(steps []level) *phase {
	p := &phase{name: "order of accuracy"}
	coarse, fine := steps[len(steps)-2], steps[len(steps)-1]

	want := map[string]float64{
		vortex.LabelU:         minVelocityOrder,
		vortex.LabelV:         minVelocityOrder,
		vortex.LabelVorticity: minVorticityOrder,
	}
	for _, label := range []string{vortex.LabelU, vortex.LabelV, vortex.LabelVorticity} {
		got := observedOrder(coarse, fine, label)
		if !(got >= want[label]) {
			p.errorf("%s: observed order %.2f, want at least %.1f", label, got, want[label])
		}
	}
	return p
}

func observedOrder(coarse, fine level, label string) float64 {
	return math.Log(coarse.errors[label]/fine.errors[label]) / math.Log(coarse.h/fine.h)
}
