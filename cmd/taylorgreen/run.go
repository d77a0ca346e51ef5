package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	kafkaadapter "github.com/couchcryptid/taylor-green/internal/adapter/kafka"
	"github.com/couchcryptid/taylor-green/internal/adapter/window"
	"github.com/couchcryptid/taylor-green/internal/config"
	"github.com/couchcryptid/taylor-green/internal/observability"
	"github.com/couchcryptid/taylor-green/internal/pipeline"
	"github.com/couchcryptid/taylor-green/internal/render"
)

const (
	figureWidth  = 800
	figureHeight = 600
)

func newRunCmd() *cobra.Command {
	var (
		renderMode string
		outDir     string
		quiver     bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute the fields once, print the errors, and render the figures",
		Long: `Compute the fields once, print one "Maximum error in <field> computation"
line per field to stdout, and render the figures per RENDER_MODE.

Log records share stdout with the error lines, so run logs at warn unless
LOG_LEVEL is set.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(func(c *config.Config) {
				quietLogLevel(c)
				if cmd.Flags().Changed("render") {
					c.RenderMode = renderMode
				}
				if cmd.Flags().Changed("out") {
					c.RenderDir = outDir
				}
				if cmd.Flags().Changed("quiver") {
					c.Quiver = quiver
				}
			})
			if err != nil {
				return err
			}
			logger := observability.NewLogger(cfg)

			app := newApp(cfg, cmd.OutOrStdout(), logger, observability.NewMetrics())
			defer app.close()

			res, err := app.run(cmd.Context())
			if err != nil {
				return err
			}
			return renderFigures(cfg, res, logger)
		},
	}
	cmd.Flags().StringVar(&renderMode, "render", config.RenderNone, "figure output: none, png, or window")
	cmd.Flags().StringVar(&outDir, "out", "plots", "directory for png figures")
	cmd.Flags().BoolVar(&quiver, "quiver", true, "overlay velocity arrows")
	return cmd
}

// quietLogLevel drops the default log level to warn. An explicit LOG_LEVEL wins.
func quietLogLevel(c *config.Config) {
	if _, ok := os.LookupEnv("LOG_LEVEL"); !ok {
		c.LogLevel = "warn"
	}
}

// app wires the pipeline to its optional report publisher.
type app struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	writer   *kafkaadapter.Writer
	logger   *slog.Logger
}

func newApp(cfg *config.Config, out io.Writer, logger *slog.Logger, metrics *observability.Metrics) *app {
	a := &app{cfg: cfg, logger: logger}
	var publisher pipeline.ReportPublisher
	if cfg.KafkaEnabled {
		a.writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = a.writer
		logger.Info("kafka report publishing enabled", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka report publishing disabled")
	}

	a.pipeline = pipeline.New(publisher, out, logger, metrics)
	return a
}

func (a *app) run(ctx context.Context) (*pipeline.Result, error) {
	g, err := gridFromConfig(a.cfg)
	if err != nil {
		return nil, err
	}
	return a.pipeline.Run(ctx, g, paramsFromConfig(a.cfg))
}

func (a *app) close() {
	if a.writer == nil {
		return
	}
	if err := a.writer.Close(); err != nil {
		a.logger.Error("kafka writer close error", "error", err)
	}
}

// renderFigures draws the figure set per RENDER_MODE.
func renderFigures(cfg *config.Config, res *pipeline.Result, logger *slog.Logger) error {
	if cfg.RenderMode == config.RenderNone {
		return nil
	}

	figs := pipeline.Figures(res, cfg.Quiver)
	pages := make([]window.Page, 0, len(figs))
	for _, fig := range figs {
		img, err := render.Draw(res.Grid, fig, figureWidth, figureHeight)
		if err != nil {
			return fmt.Errorf("render %s: %w", fig.Name, err)
		}
		if cfg.RenderMode == config.RenderPNG {
			path, err := render.SavePNG(cfg.RenderDir, fig.Name, img)
			if err != nil {
				return err
			}
			logger.Info("figure saved", "figure", fig.Name, "path", path)
			continue
		}
		pages = append(pages, window.Page{Title: fig.Title, Image: img})
	}

	if cfg.RenderMode == config.RenderWindow {
		return window.Show("Taylor-Green vortex", pages)
	}
	return nil
}
