// Package web serves the lap timer as a browser page and a JSON API.
package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/penwyp/go-lap-timer/internal/application/tracker"
	"github.com/penwyp/go-lap-timer/internal/metrics"
	"github.com/penwyp/go-lap-timer/internal/util"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed templates/index.html
var templateFS embed.FS

// Config holds the server settings
type Config struct {
	Listen          string
	ShutdownTimeout time.Duration
	SplitDecimals   int
	NewestFirst     bool
}

type Server struct {
	config  Config
	tracker *tracker.Tracker
	page    *template.Template

	splitDecimals atomic.Int32
}

func NewServer(cfg Config, tr *tracker.Tracker) (*Server, error) {
	page, err := template.ParseFS(templateFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}

	s := &Server{
		config:  cfg,
		tracker: tr,
		page:    page,
	}
	s.splitDecimals.Store(int32(cfg.SplitDecimals))
	return s, nil
}

// SetSplitDecimals changes the precision of split times in later responses
func (s *Server) SetSplitDecimals(decimals int) {
	s.splitDecimals.Store(int32(decimals))
}

func (s *Server) decimals() int {
	return int(s.splitDecimals.Load())
}

// Router builds the HTTP routes
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.Middleware)
	// middleware only wraps matched routes, so misses are counted here
	r.NotFoundHandler = metrics.Middleware(http.NotFoundHandler())
	r.MethodNotAllowedHandler = metrics.Middleware(http.HandlerFunc(methodNotAllowed))

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	r.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	r.HandleFunc("/start", s.formAction(s.start)).Methods(http.MethodPost)
	r.HandleFunc("/stop", s.formAction(s.stop)).Methods(http.MethodPost)
	r.HandleFunc("/toggle", s.formAction(s.toggle)).Methods(http.MethodPost)
	r.HandleFunc("/lap", s.formAction(s.lap)).Methods(http.MethodPost)
	r.HandleFunc("/reset", s.formAction(s.reset)).Methods(http.MethodPost)
	r.HandleFunc("/laps/{id}/skip", s.formAction(s.skip)).Methods(http.MethodPost)
	r.HandleFunc("/laps/{id}/split", s.formAction(s.split)).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = metrics.Middleware(http.HandlerFunc(s.apiNotFound))
	api.MethodNotAllowedHandler = metrics.Middleware(http.HandlerFunc(s.apiMethodNotAllowed))
	api.HandleFunc("/session", s.handleSession).Methods(http.MethodGet)
	api.HandleFunc("/start", s.apiAction(s.start)).Methods(http.MethodPost)
	api.HandleFunc("/stop", s.apiAction(s.stop)).Methods(http.MethodPost)
	api.HandleFunc("/toggle", s.apiAction(s.toggle)).Methods(http.MethodPost)
	api.HandleFunc("/lap", s.apiAction(s.lap)).Methods(http.MethodPost)
	api.HandleFunc("/reset", s.apiAction(s.reset)).Methods(http.MethodPost)
	api.HandleFunc("/laps/{id}/skip", s.apiAction(s.skip)).Methods(http.MethodPost)
	api.HandleFunc("/laps/{id}/split", s.apiAction(s.split)).Methods(http.MethodPost)
	api.HandleFunc("/export", s.handleExport).Methods(http.MethodGet)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.Listen, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		util.LogInfo("HTTP server listening", util.F("addr", listener.Addr().String()))
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	util.LogInfo("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
