package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/patent-dashboard/internal/observability"
	"github.com/couchcryptid/patent-dashboard/internal/pipeline"
)

// Server exposes the dashboard, its data views, and health, readiness, and
// metrics endpoints.
type Server struct {
	httpServer *http.Server
	content    *pipeline.Artifacts
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewServer creates an HTTP server serving the pre-rendered content.
func NewServer(addr string, content *pipeline.Artifacts, ready sharedobs.ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		content: content,
		metrics: metrics,
		logger:  logger,
	}

	mux.Handle("GET /{$}", s.instrument("/", s.handlePage))
	mux.Handle("GET /charts/{name}", s.instrument("/charts", s.handleChart))
	mux.Handle("GET /api/regions", s.instrument("/api/regions", s.handleJSON(content.RegionsJSON)))
	mux.Handle("GET /api/top", s.instrument("/api/top", s.handleJSON(content.TopJSON)))
	mux.Handle("GET /export.xlsx", s.instrument("/export.xlsx", s.handleWorkbook))
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

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

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	writeBytes(w, "text/html; charset=utf-8", s.content.Page)
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	svg, ok := s.content.Chart(r.PathValue("name"))
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "chart not found"})
		return
	}
	writeBytes(w, "image/svg+xml", svg)
}

func (s *Server) handleJSON(body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeBytes(w, "application/json", body)
	}
}

func (s *Server) handleWorkbook(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Disposition", `attachment; filename="patents.xlsx"`)
	writeBytes(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", s.content.Workbook)
}

// instrument counts requests to route by status code.
func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		s.metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		s.logger.Debug("http request", "method", r.Method, "path", r.URL.Path, "status", rec.status)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func writeBytes(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck // client disconnects are not actionable
}
