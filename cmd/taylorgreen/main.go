// Command taylorgreen checks a finite-difference reconstruction of the
// Taylor-Green vortex against its closed form.
//
// Usage:
//
//	taylorgreen run [--render none|png|window] [--out plots]
//	taylorgreen serve [--addr :8080]
//	taylorgreen validate [--levels 3]
//
// Grid, bounds, time, and viscosity come from the environment (GRID_NX,
// GRID_NY, X_MIN, X_MAX, Y_MIN, Y_MAX, FLOW_TIME, VISCOSITY) and default to a
// 50x40 grid over [0, 2π]² at t = 1 s, ν = 0.1 m²/s.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/taylor-green/internal/config"
	"github.com/couchcryptid/taylor-green/internal/vortex"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		slog.Error("taylorgreen failed", "error", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taylorgreen",
		Short:         "Verify a finite-difference Taylor-Green vortex against the analytic solution",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd(), newServeCmd(), newValidateCmd())
	return root
}

// loadConfig reads the environment and applies overrides before validating.
func loadConfig(override func(*config.Config)) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if override != nil {
		override(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func gridFromConfig(cfg *config.Config) (vortex.Grid, error) {
	return vortex.UniformGrid(
		vortex.Bounds{Min: cfg.XMin, Max: cfg.XMax},
		vortex.Bounds{Min: cfg.YMin, Max: cfg.YMax},
		cfg.GridNX, cfg.GridNY,
	)
}

func paramsFromConfig(cfg *config.Config) vortex.Params {
	return vortex.Params{Time: cfg.Time, Viscosity: cfg.Viscosity}
}
