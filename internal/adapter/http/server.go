package http

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/taylor-green/internal/pipeline"
	"github.com/couchcryptid/taylor-green/internal/render"
)

const (
	plotWidth  = 800
	plotHeight = 600
)

// ResultSource exposes the latest verification run.
type ResultSource interface {
	sharedobs.ReadinessChecker
	Result() (*pipeline.Result, bool)
}

// Server exposes health, metrics, and the fields of the latest run over HTTP.
type Server struct {
	httpServer *http.Server
	results    ResultSource
	quiver     bool
	plots      *plotCache
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, /report,
// /fields/{name}, and /plots/{name} routes. Up to plotCacheSize rendered
// plots are kept in memory.
func NewServer(addr string, results ResultSource, quiver bool, plotCacheSize int, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		results: results,
		quiver:  quiver,
		plots:   newPlotCache(plotCacheSize),
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(results))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /report", s.handleReport)
	mux.HandleFunc("GET /fields", s.handleFieldIndex)
	mux.HandleFunc("GET /fields/{name}", s.handleField)
	mux.HandleFunc("GET /plots/{name}", s.handlePlot)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) latest(w http.ResponseWriter) (*pipeline.Result, bool) {
	res, ok := s.results.Result()
	if !ok {
		sharedobs.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no completed run"})
	}
	return res, ok
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	res, ok := s.latest(w)
	if !ok {
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, res.Report)
}

func (s *Server) handleFieldIndex(w http.ResponseWriter, _ *http.Request) {
	res, ok := s.latest(w)
	if !ok {
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{
		"fields": res.FieldNames(),
		"x":      res.Grid.X,
		"y":      res.Grid.Y,
	})
}

func (s *Server) handleField(w http.ResponseWriter, r *http.Request) {
	res, ok := s.latest(w)
	if !ok {
		return
	}
	name := r.PathValue("name")
	f, ok := res.Field(name)
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "unknown field " + name})
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{
		"name":   name,
		"nx":     f.Nx(),
		"ny":     f.Ny(),
		"values": f,
	})
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	res, ok := s.latest(w)
	if !ok {
		return
	}
	name := strings.TrimSuffix(r.PathValue("name"), ".png")
	fig, ok := pipeline.FindFigure(pipeline.Figures(res, s.quiver), name)
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "unknown plot " + name})
		return
	}

	key := plotKey(res.Report.ID, name)
	data, ok := s.plots.get(key)
	if !ok {
		var err error
		data, err = s.renderPlot(res, fig)
		if err != nil {
			s.logger.Error("render plot failed", "plot", name, "error", err)
			sharedobs.WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		s.plots.put(key, data)
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(data) //nolint:errcheck // client disconnects are not actionable
}

func (s *Server) renderPlot(res *pipeline.Result, fig render.Figure) ([]byte, error) {
	img, err := render.Draw(res.Grid, fig, plotWidth, plotHeight)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
