// Package adminserver exposes the operational HTTP endpoints of
// keymesh-server: liveness and Prometheus metrics. It is separate from
// the data-plane TCP listener so operators can firewall the two
// independently.
package adminserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/yndnr/keymesh-go/internal/infra/buildinfo"
	"github.com/yndnr/keymesh-go/internal/telemetry/logger"
	"github.com/yndnr/keymesh-go/internal/telemetry/metric"
)

// Config holds the admin server configuration.
type Config struct {
	Addr string
}

// Server is the admin HTTP server.
type Server struct {
	cfg  *Config
	log  logger.Logger
	http *http.Server
}

// healthResponse is the /healthz body.
type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Nodes   int    `json:"nodes"`
}

// newMux builds the admin routes. nodeCount supplies the live node
// count reported by /healthz; metrics may be nil to disable /metrics.
func newMux(metrics *metric.Registry, nodeCount func() int) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		resp := healthResponse{
			Status:  "ok",
			Version: buildinfo.Version,
		}
		if nodeCount != nil {
			resp.Nodes = nodeCount()
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	})
	if metrics != nil {
		mux.Handle("/metrics", metrics.Handler())
	}
	return mux
}

// New creates the admin server. nodeCount supplies the live node count
// reported by /healthz; metrics may be nil to disable /metrics.
func New(cfg *Config, log logger.Logger, metrics *metric.Registry, nodeCount func() int) *Server {
	if log == nil {
		log = logger.Default()
	}

	return &Server{
		cfg: cfg,
		log: log,
		http: &http.Server{
			Addr:              cfg.Addr,
			Handler:           newMux(metrics, nodeCount),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       time.Minute,
		},
	}
}

// Start begins serving. It returns once the listener goroutine is up.
func (s *Server) Start(_ context.Context) error {
	s.log.Info("starting admin server", "address", s.cfg.Addr)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("admin server error", "error", err)
		}
	}()
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
