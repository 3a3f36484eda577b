// Package httpapi serves the stored annotation snapshot over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/markyfy/internal/engine"
	"github.com/example/markyfy/internal/export"
	"github.com/example/markyfy/internal/logging"
	"github.com/example/markyfy/internal/persist"
)

// Server exposes one engine and its store.
type Server struct {
	mu       sync.Mutex
	engine   *engine.Engine
	store    *persist.Store
	gatherer prometheus.Gatherer
	log      *slog.Logger
	version  string
}

// Option configures a Server.
type Option func(*Server)

// WithGatherer exposes g on /metrics. Without it the route is not mounted.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithLogger sets the request logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithVersion is reported by /healthz.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New returns a server for eng, which must save to store. The server takes
// ownership of eng; callers must not use it concurrently.
func New(eng *engine.Engine, store *persist.Store, opts ...Option) *Server {
	s := &Server{engine: eng, store: store, version: "dev"}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.NewNop()
	}
	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Route("/snapshot", func(r chi.Router) {
		r.Get("/", s.snapshotPNG)
		r.Get("/data-url", s.snapshotDataURL)
		r.Get("/info", s.snapshotInfo)
		r.Delete("/", s.clear)
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.version})
}

func (s *Server) snapshotPNG(w http.ResponseWriter, r *http.Request) {
	img, err := s.store.Load(r.Context())
	if err != nil {
		s.fail(w, "load snapshot", err)
		return
	}
	w.Header().Set("Content-Type", persist.MIMEType)
	if err := export.WritePNG(w, img); err != nil {
		s.log.Warn("write png response", "error", err)
	}
}

func (s *Server) snapshotDataURL(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Raw(r.Context())
	if err != nil {
		s.fail(w, "read snapshot", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(data))
}

type infoResponse struct {
	Key     string `json:"key"`
	MIME    string `json:"mime"`
	Encoded int    `json:"encoded_bytes"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
}

func (s *Server) snapshotInfo(w http.ResponseWriter, r *http.Request) {
	h, err := s.store.Info(r.Context())
	if err != nil {
		s.fail(w, "inspect snapshot", err)
		return
	}
	writeJSON(w, http.StatusOK, infoResponse{
		Key: s.store.Key(), MIME: h.MIME, Encoded: h.Encoded, Width: h.Width, Height: h.Height,
	})
}

func (s *Server) clear(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.engine.AwaitLoad(r.Context()); err != nil {
		s.fail(w, "await load", err)
		return
	}
	if err := s.engine.ClearAll(); err != nil {
		s.fail(w, "clear", err)
		return
	}
	s.log.Info("snapshot cleared over http", "remote", r.RemoteAddr)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, persist.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, persist.ErrDecode):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.log.Error(op+" failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": fmt.Sprintf("%s: %v", op, err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
