package lifecycle

import (
	"context"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/marmos91/snapserve/internal/logger"
)

// DefaultShutdownTimeout is the default timeout for graceful shutdown.
const DefaultShutdownTimeout = 5 * time.Second

// StaticServer is the static file HTTP server.
type StaticServer interface {
	Start(ctx context.Context, onReady func(addr net.Addr)) error
	Stop(ctx context.Context) error
	Port() int
}

// AuxiliaryServer is an interface for auxiliary HTTP servers (Metrics).
type AuxiliaryServer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Port() int
}

// Service orchestrates server startup, the exit timer and graceful shutdown.
// There is one Service per process.
type Service struct {
	static          StaticServer
	timer           *Timer
	shutdownTimeout time.Duration
	metricsServer   AuxiliaryServer

	// serveOnce ensures Serve() is only called once
	serveOnce sync.Once
	served    atomic.Bool
}

// New creates a new lifecycle service. timer may be nil or disabled, in
// which case the process runs until ctx is cancelled.
func New(static StaticServer, timer *Timer, shutdownTimeout time.Duration) *Service {
	if shutdownTimeout == 0 {
		shutdownTimeout = DefaultShutdownTimeout
	}
	return &Service{
		static:          static,
		timer:           timer,
		shutdownTimeout: shutdownTimeout,
	}
}

// SetMetricsServer sets the metrics HTTP server.
// Must be called before Serve().
func (s *Service) SetMetricsServer(server AuxiliaryServer) {
	if s.served.Load() {
		panic("cannot set metrics server after Serve() has been called")
	}
	s.metricsServer = server
	if server != nil {
		logger.Debug("Metrics server registered", logger.KeyPort, server.Port())
	}
}

// Serve starts all servers and blocks until ctx is cancelled or a server
// fails. With an enabled timer the process usually exits from the timer
// before Serve returns.
func (s *Service) Serve(ctx context.Context) error {
	err := fmt.Errorf("lifecycle service already served")

	s.serveOnce.Do(func() {
		s.served.Store(true)
		err = s.serve(ctx)
	})

	return err
}

func (s *Service) serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 1. Start metrics server if configured
	metricsErrChan := make(chan error, 1)
	if s.metricsServer != nil {
		go func() {
			if err := s.metricsServer.Start(ctx); err != nil {
				metricsErrChan <- err
			}
		}()
	}

	// 2. Start the static server; the timer is armed once it is bound
	staticErrChan := make(chan error, 1)
	go func() {
		staticErrChan <- s.static.Start(ctx, s.onReady)
	}()

	// 3. Wait for shutdown signal or server error
	var shutdownErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received", "reason", ctx.Err())
	case err := <-staticErrChan:
		if err != nil {
			shutdownErr = err
		}
	case err := <-metricsErrChan:
		logger.Error("Metrics server failed - initiating shutdown", logger.KeyError, err)
		shutdownErr = fmt.Errorf("metrics server error: %w", err)
	}

	// 4. Graceful shutdown
	s.shutdown()

	return shutdownErr
}

func (s *Service) onReady(addr net.Addr) {
	port := s.static.Port()
	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = tcp.Port
	}
	logger.Info(fmt.Sprintf("Server on %d", port), logger.KeyPort, port)

	if s.timer.Enabled() {
		s.timer.Arm()
	}
}

func (s *Service) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.static.Stop(ctx); err != nil {
		logger.Error("Static server shutdown error", logger.KeyError, err)
	}

	if s.metricsServer != nil {
		logger.Debug("Stopping metrics server")
		if err := s.metricsServer.Stop(ctx); err != nil {
			logger.Error("Metrics server shutdown error", logger.KeyError, err)
		}
	}
}
