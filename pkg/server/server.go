// Package server adapts a Resolver to HTTP.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/marmos91/snapserve/internal/logger"
	"github.com/marmos91/snapserve/pkg/metrics"
)

// Server serves static files over HTTP/1.1.
//
// The server is created in a stopped state. Call Start to bind the port and
// begin serving. It supports graceful shutdown with a configurable timeout.
type Server struct {
	server       *http.Server
	config       Config
	listener     net.Listener
	mu           sync.RWMutex
	shutdownOnce sync.Once
}

// New creates a static file server.
//
// Parameters:
//   - cfg: port and timeouts; zero values take defaults
//   - res: resolves request paths to content
//   - m: request metrics, nil to disable
func New(cfg Config, res Resolver, m metrics.StaticMetrics) *Server {
	cfg.applyDefaults()

	return &Server{
		server: &http.Server{
			Addr:         ":" + strconv.Itoa(cfg.Port),
			Handler:      NewRouter(res, m),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		config: cfg,
	}
}

// Listen binds the configured port. Start calls it when no listener is bound
// yet.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	return s.UseListener(ln)
}

// UseListener adopts an already bound listener.
func (s *Server) UseListener(ln net.Listener) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return fmt.Errorf("server already bound to %s", s.listener.Addr())
	}
	s.listener = ln
	return nil
}

// Start serves until ctx is cancelled, then shuts down gracefully.
//
// onReady, if non-nil, is invoked once the listener is bound and before the
// first connection is accepted.
//
// Returns:
//   - nil on graceful shutdown
//   - error if the port cannot be bound or the server fails
func (s *Server) Start(ctx context.Context, onReady func(addr net.Addr)) error {
	ln := s.boundListener()
	if ln == nil {
		if err := s.Listen(); err != nil {
			return err
		}
		ln = s.boundListener()
	}

	logger.Debug("Static server listening", logger.KeyPort, s.Port())
	if onReady != nil {
		onReady(ln.Addr())
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Debug("Static server shutdown signal received")
		// ctx is already cancelled, so shutdown needs its own deadline
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		return s.Stop(shutdownCtx)
	case err := <-errChan:
		return fmt.Errorf("static server failed: %w", err)
	}
}

// Stop initiates graceful shutdown. Safe to call multiple times and
// concurrently with Start.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		if err := s.server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("static server shutdown error: %w", err)
			logger.Error("Static server shutdown error", logger.KeyError, err)
			return
		}
		logger.Info("Static server stopped gracefully")
	})
	return shutdownErr
}

// Port returns the bound TCP port, or the configured one before binding.
func (s *Server) Port() int {
	if ln := s.boundListener(); ln != nil {
		if tcp, ok := ln.Addr().(*net.TCPAddr); ok {
			return tcp.Port
		}
	}
	return s.config.Port
}

// Addr returns the bound address, or nil before binding.
func (s *Server) Addr() net.Addr {
	if ln := s.boundListener(); ln != nil {
		return ln.Addr()
	}
	return nil
}

func (s *Server) boundListener() net.Listener {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listener
}
