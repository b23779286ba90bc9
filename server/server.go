// Package server exposes store views over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"couponview/appcontext"
	"couponview/loader"
	"couponview/page"
	"couponview/sheets"
)

const shutdownTimeout = 10 * time.Second

// ViewLoader builds the view for a store.
type ViewLoader interface {
	Load(ctx context.Context, store string) *loader.View
}

// Server routes store requests to a ViewLoader.
type Server struct {
	logger *slog.Logger
	views  ViewLoader
	router *chi.Mux
}

// New creates a new Server with its routes registered.
func New(logger *slog.Logger, views ViewLoader) *Server {
	s := &Server{
		logger: logger,
		views:  views,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.withLogger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/stores/{store}", s.handleStorePage)
	s.router.Get("/api/stores/{store}", s.handleStoreJSON)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// withLogger puts a request-scoped logger into the request context.
func (s *Server) withLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger.With(
			"requestID", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
		)
		ctx := appcontext.WithLogger(r.Context(), logger)
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		logger.InfoContext(ctx, "Handled request", "status", ww.Status(), "duration", time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleStorePage(w http.ResponseWriter, r *http.Request) {
	view := s.views.Load(r.Context(), chi.URLParam(r, "store"))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(w, view); err != nil {
		appcontext.LoggerFromContext(r.Context()).ErrorContext(r.Context(), "Failed to render page", "error", err)
	}
}

func (s *Server) handleStoreJSON(w http.ResponseWriter, r *http.Request) {
	view := s.views.Load(r.Context(), chi.URLParam(r, "store"))

	status := http.StatusOK
	switch {
	case !view.Failed():
	case errors.Is(view.Err(), sheets.ErrNotFound):
		status = http.StatusNotFound
	default:
		status = http.StatusBadGateway
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(view); err != nil {
		appcontext.LoggerFromContext(r.Context()).ErrorContext(r.Context(), "Failed to encode view", "error", err)
	}
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "Listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server on %s failed: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	s.logger.InfoContext(ctx, "Server stopped")
	return nil
}
