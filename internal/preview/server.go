package preview

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	logger "github.com/PolarWolf314/sitelock/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/atomic"
)

const contentType = "text/html; charset=utf-8"

// Config configures a preview Server.
type Config struct {
	// Artifact is the path of the generated HTML file.
	Artifact string

	// ListenAddr defaults to 127.0.0.1:8080.
	ListenAddr string

	Log logger.Logger

	// GracefulShutdownDuration bounds how long Serve waits for in-flight
	// requests after its context ends. Defaults to 5s.
	GracefulShutdownDuration time.Duration
}

// Server serves a single artifact for local testing.
type Server struct {
	cfg      Config
	requests atomic.Int64
	srv      *http.Server
}

// New returns a Server for cfg with defaults filled in. It does not start
// listening.
func New(cfg Config) *Server {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = "127.0.0.1:8080"
	}
	if cfg.GracefulShutdownDuration == 0 {
		cfg.GracefulShutdownDuration = 5 * time.Second
	}

	s := &Server{cfg: cfg}
	s.srv = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Router returns the HTTP handler. The artifact is served at / and
// /index.html; there is nothing else to serve since every asset lives inside
// the artifact.
func (s *Server) Router() http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.NoCache)
	mux.Use(s.httpLogger)

	mux.Get("/", s.handleArtifact)
	mux.Get("/index.html", s.handleArtifact)
	mux.Get("/livez", s.handleLivenessCheck)

	return mux
}

// Requests returns how many requests the server has handled.
func (s *Server) Requests() int64 {
	return s.requests.Load()
}

func (s *Server) httpLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.requests.Inc()
		s.cfg.Log.Infof("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Microsecond))
	})
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.cfg.Artifact)
	if err != nil {
		s.cfg.Log.Warnf("failed to read artifact %s: %v", s.cfg.Artifact, err)
		http.Error(w, "artifact not found, run sitelock encrypt first", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleLivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"alive"}`))
}

// Listen binds the listen address. It is split from Serve so callers can
// report the bound address before blocking.
func (s *Server) Listen() (net.Listener, error) {
	return net.Listen("tcp", s.cfg.ListenAddr)
}

// Serve handles requests on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.GracefulShutdownDuration)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.cfg.Log.Infof("preview server stopped after %d requests", s.Requests())
	return nil
}
