package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/storm-data-shared/retry"

	"github.com/couchcryptid/taylor-green/internal/observability"
	"github.com/couchcryptid/taylor-green/internal/vortex"
)

// ReportPublisher ships a finished report somewhere durable.
type ReportPublisher interface {
	Publish(ctx context.Context, report vortex.Report) error
}

// Pipeline runs the analytic evaluation, the stream-function reconstruction,
// and the comparison, then reports the result.
type Pipeline struct {
	publisher ReportPublisher
	out       io.Writer
	logger    *slog.Logger
	metrics   *observability.Metrics
	result    atomic.Pointer[Result]

	publishAttempts int
	backoff         time.Duration
}

// New creates a Pipeline. Error lines are written to out. Pass a nil
// publisher to skip report publishing.
func New(publisher ReportPublisher, out io.Writer, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		publisher:       publisher,
		out:             out,
		logger:          logger,
		metrics:         metrics,
		publishAttempts: 3,
		backoff:         200 * time.Millisecond,
	}
}

// CheckReadiness returns nil once a run has completed.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.result.Load() == nil {
		return errors.New("no verification run has completed yet")
	}
	return nil
}

// Result returns the most recent completed run.
func (p *Pipeline) Result() (*Result, bool) {
	r := p.result.Load()
	return r, r != nil
}

// Run evaluates the vortex on g, reconstructs it from the stream function,
// and compares the two. Invalid params fail before any field is computed.
func (p *Pipeline) Run(ctx context.Context, g vortex.Grid, params vortex.Params) (*Result, error) {
	start := time.Now()
	p.logger.Info("run started",
		"nx", g.Nx(), "ny", g.Ny(),
		"time", params.Time, "viscosity", params.Viscosity,
	)

	theory, err := vortex.Theory(g, params)
	if err != nil {
		p.metrics.ValidationErrors.Inc()
		p.logger.Error("invalid parameters", "error", err)
		return nil, fmt.Errorf("evaluate analytic field: %w", err)
	}
	stream := vortex.FromStream(g, theory.Psi)

	errs := []vortex.ErrorReport{
		vortex.CompareFields(theory.U, stream.U, vortex.LabelU),
		vortex.CompareFields(theory.V, stream.V, vortex.LabelV),
		vortex.CompareFields(theory.Speed, stream.Speed, vortex.LabelSpeed),
		vortex.CompareFields(theory.Vorticity, stream.Vorticity, vortex.LabelVorticity),
	}
	for _, e := range errs {
		if _, err := fmt.Fprintln(p.out, e.String()); err != nil {
			return nil, fmt.Errorf("write report: %w", err)
		}
		p.logger.Debug("field compared", "field", e.Label, "max_abs_error", e.Max)
		p.metrics.MaxAbsError.WithLabelValues(e.Label).Set(e.Max)
	}

	res := &Result{
		Grid:   g,
		Params: params,
		Theory: theory,
		Stream: stream,
		Errors: errs,
		Report: vortex.NewReport(g, params, errs),
	}

	p.metrics.RunDuration.Observe(time.Since(start).Seconds())
	p.metrics.GridPoints.Set(float64(g.Size()))
	p.metrics.RunsTotal.Inc()
	p.result.Store(res)

	p.publish(ctx, res.Report)

	p.logger.Info("run complete", "report_id", res.Report.ID, "duration", time.Since(start))
	return res, nil
}

// publish sends the report with exponential backoff. Failure is logged and
// counted but does not fail the run.
func (p *Pipeline) publish(ctx context.Context, report vortex.Report) {
	if p.publisher == nil {
		return
	}

	backoff := p.backoff
	maxBackoff := 5 * time.Second
	for attempt := 1; ; attempt++ {
		err := p.publisher.Publish(ctx, report)
		if err == nil {
			p.logger.Info("report published", "report_id", report.ID, "attempt", attempt)
			return
		}
		if attempt >= p.publishAttempts || ctx.Err() != nil {
			p.metrics.PublishErrors.Inc()
			p.logger.Error("publish report failed", "error", err, "report_id", report.ID, "attempts", attempt)
			return
		}
		p.logger.Warn("publish report failed, retrying", "error", err, "attempt", attempt, "backoff", backoff)
		if !retry.SleepWithContext(ctx, backoff) {
			p.metrics.PublishErrors.Inc()
			return
		}
		backoff = retry.NextBackoff(backoff, maxBackoff)
	}
}
