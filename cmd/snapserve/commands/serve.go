package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marmos91/snapserve/internal/logger"
	"github.com/marmos91/snapserve/internal/telemetry"
	"github.com/marmos91/snapserve/pkg/config"
	"github.com/marmos91/snapserve/pkg/lifecycle"
	"github.com/marmos91/snapserve/pkg/metrics"
	"github.com/marmos91/snapserve/pkg/resolver"
	"github.com/marmos91/snapserve/pkg/server"

	// Import prometheus metrics to register init() functions
	_ "github.com/marmos91/snapserve/pkg/metrics/prometheus"
)

// serveFlags holds command line overrides for the server settings.
type serveFlags struct {
	root        string
	port        int
	exitAfter   time.Duration
	containment string
	metrics     bool
}

var serveOpts serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve files and exit shortly after listening",
	Long: `Serve static files from a directory over HTTP.

The server listens on port 8888 and serves the directory containing the
snapserve executable unless configured otherwise. "/" serves index.html.
100ms after it starts listening the process logs "Ready" and exits with
status 0. Set --exit-after 0 to keep serving until interrupted.

Examples:
  # Serve the executable's directory for 100ms
  snapserve serve

  # Serve ./site on port 9000 and keep running
  snapserve serve --root ./site --port 9000 --exit-after 0

  # Override settings through the environment
  SNAPSERVE_LOGGING_LEVEL=DEBUG snapserve serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addServeFlags(serveCmd)
}

// addServeFlags registers the override flags on cmd. Root and serve share
// them so "snapserve --port 9000" works without a subcommand.
func addServeFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&serveOpts.root, "root", "", "Directory to serve (default: the executable's directory)")
	fs.IntVar(&serveOpts.port, "port", server.DefaultPort, "TCP port to listen on")
	fs.DurationVar(&serveOpts.exitAfter, "exit-after", lifecycle.DefaultExitAfter, "Exit this long after listening; 0 disables")
	fs.StringVar(&serveOpts.containment, "containment", string(resolver.ContainmentStrict), "Path containment mode (strict|legacy)")
	fs.BoolVar(&serveOpts.metrics, "metrics", false, "Expose Prometheus metrics")
}

// applyServeOverrides copies explicitly set flags over the loaded config.
func applyServeOverrides(cfg *config.Config, fs *pflag.FlagSet, opts serveFlags) {
	if fs.Changed("root") {
		cfg.Server.Root = opts.root
	}
	if fs.Changed("port") {
		cfg.Server.Port = opts.port
	}
	if fs.Changed("exit-after") {
		cfg.Lifecycle.ExitAfter = opts.exitAfter
	}
	if fs.Changed("containment") {
		cfg.Server.Containment = opts.containment
	}
	if fs.Changed("metrics") {
		cfg.Metrics.Enabled = opts.metrics
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(GetConfigFile())
	if err != nil {
		return err
	}

	applyServeOverrides(cfg, cmd.Flags(), serveOpts)
	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := newRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.close()

	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))

	return rt.service.Serve(ctx)
}

// serveRuntime bundles everything one serve invocation starts.
type serveRuntime struct {
	runID   string
	server  *server.Server
	timer   *lifecycle.Timer
	service *lifecycle.Service
	closers []func(context.Context) error
}

// newRuntime builds the servers and the exit timer from cfg. Extra timer
// options are applied after the configured ones.
func newRuntime(ctx context.Context, cfg *config.Config, timerOpts ...lifecycle.TimerOption) (*serveRuntime, error) {
	rt := &serveRuntime{runID: uuid.NewString()}
	logger.Debug("Starting snapserve", logger.KeyRunID, rt.runID, "version", Version)

	// Initialize OpenTelemetry (if enabled)
	telemetryShutdown, err := telemetry.Init(ctx, cfg.TracingConfig(Version))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	rt.closers = append(rt.closers, telemetryShutdown)
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	}

	// Initialize Pyroscope profiling (if enabled)
	profilingStop, err := telemetry.InitProfiling(cfg.ProfilingConfig(Version))
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("failed to initialize profiling: %w", err)
	}
	profilingHook := func(context.Context) error { return profilingStop() }
	rt.closers = append(rt.closers, profilingHook)
	if telemetry.IsProfilingEnabled() {
		logger.Info("Profiling enabled", "endpoint", cfg.Telemetry.Profiling.Endpoint)
	}

	res, err := resolver.New(cfg.ResolverOptions())
	if err != nil {
		rt.close()
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}
	if info, err := os.Stat(res.Root()); err != nil || !info.IsDir() {
		logger.Warn("Root is not a readable directory; every request will be answered with 404", logger.KeyRoot, res.Root())
	}
	logger.Debug("Serving directory", logger.KeyRoot, res.Root(), "containment", res.Containment())

	var (
		staticMetrics metrics.StaticMetrics
		metricsServer *metrics.Server
	)
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		staticMetrics = metrics.NewStaticMetrics()
		metricsServer, err = metrics.NewServer(cfg.Metrics.Port)
		if err != nil {
			rt.close()
			return nil, fmt.Errorf("failed to create metrics server: %w", err)
		}
	}

	rt.server = server.New(cfg.HTTPConfig(), res, staticMetrics)

	opts := append([]lifecycle.TimerOption{lifecycle.WithHookTimeout(cfg.Lifecycle.HookTimeout)}, timerOpts...)
	rt.timer = lifecycle.NewTimer(cfg.Lifecycle.ExitAfter, opts...)
	rt.timer.AddHook("telemetry", telemetryShutdown)
	rt.timer.AddHook("profiling", profilingHook)

	rt.service = lifecycle.New(rt.server, rt.timer, cfg.Lifecycle.ShutdownTimeout)
	if metricsServer != nil {
		rt.service.SetMetricsServer(metricsServer)
	}

	return rt, nil
}

// close flushes telemetry and stops profiling. Used when the process ends
// without the exit timer.
func (rt *serveRuntime) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil {
			logger.Warn("Shutdown hook failed", logger.KeyError, err)
		}
	}
}
