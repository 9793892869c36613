package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"

	"github.com/curtail-dev/curtail-sync-server/internal/api"
	"github.com/curtail-dev/curtail-sync-server/internal/config"
	"github.com/curtail-dev/curtail-sync-server/internal/db"
	"github.com/curtail-dev/curtail-sync-server/internal/edge"
	"github.com/curtail-dev/curtail-sync-server/internal/links"
	syncpkg "github.com/curtail-dev/curtail-sync-server/internal/sync"
	"github.com/curtail-dev/curtail-sync-server/internal/telemetry"
	"github.com/curtail-dev/curtail-sync-server/internal/versions"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the sync server",
	Long: `Start the sync server that keeps the edge cache consistent with the
authoritative link database.

The server requires a configuration file (--config) that specifies:
- Database connection parameters
- Edge cache endpoint, namespace, and credentials
- Sync, scheduler, and telemetry settings`,
	RunE: runServe,
}

const (
	defaultGracefulTimeout = 30 * time.Second // Kubernetes-friendly shutdown time
	serverRequestTimeout   = 90 * time.Second // Must cover a full sync attempt
	serverReadTimeout      = 10 * time.Second // Enough for headers and small requests
	serverWriteTimeout     = 95 * time.Second // Must be > serverRequestTimeout to let middleware handle timeout
	serverIdleTimeout      = 60 * time.Second // Keep connections alive for reuse
)

func init() {
	serveCmd.Flags().String("address", "", "Address to listen on (overrides config)")
	serveCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")

	err := viper.BindPFlag("address", serveCmd.Flags().Lookup("address"))
	if err != nil {
		slog.Error("Failed to bind address flag", "error", err)
		os.Exit(1)
	}
	err = viper.BindPFlag("config", serveCmd.Flags().Lookup("config"))
	if err != nil {
		slog.Error("Failed to bind config flag", "error", err)
		os.Exit(1)
	}

	if err := serveCmd.MarkFlagRequired("config"); err != nil {
		slog.Error("Failed to mark config flag as required", "error", err)
		os.Exit(1)
	}
}

// newEdgeStore builds the edge store client from configuration. A nil or
// endpoint-less edge config yields an unconfigured client: the server still
// runs, but syncs report the misconfiguration.
func newEdgeStore(cfg *config.Config) (edge.Store, error) {
	if cfg.Edge == nil {
		return edge.NewClient("", ""), nil
	}

	token, err := cfg.Edge.GetToken()
	if err != nil {
		return nil, fmt.Errorf("failed to get edge token: %w", err)
	}

	opts := []edge.ClientOption{edge.WithToken(token)}
	if cfg.Edge.MaxBatchSize > 0 {
		opts = append(opts, edge.WithMaxBatchSize(cfg.Edge.MaxBatchSize))
	}
	if cfg.Edge.Timeout != "" {
		timeout, err := time.ParseDuration(cfg.Edge.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid edge timeout: %w", err)
		}
		opts = append(opts, edge.WithTimeout(timeout))
	}

	return edge.NewClient(cfg.Edge.Endpoint, cfg.Edge.Namespace, opts...), nil
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	configPath := viper.GetString("config")
	cfg, err := config.LoadConfig(config.WithConfigPath(configPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	address := viper.GetString("address")
	if address == "" {
		address = cfg.GetAddress()
	}

	slog.Info("Starting sync server", "address", address, "config", configPath)

	versionInfo := versions.GetVersionInfo()

	// Telemetry providers. Both return no-op implementations when disabled.
	var telemetryCfg *telemetry.Config
	if cfg.Telemetry != nil {
		telemetryCfg = cfg.Telemetry
	} else {
		telemetryCfg = &telemetry.Config{}
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx,
		telemetry.WithMeterServiceName(telemetryCfg.GetServiceName()),
		telemetry.WithMeterServiceVersion(versionInfo.Version),
		telemetry.WithMetricsConfig(telemetryCfg.Metrics),
		telemetry.WithMeterEndpoint(telemetryCfg.GetEndpoint()),
		telemetry.WithMeterInsecure(telemetryCfg.Insecure),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
		defer cancel()
		if err := telemetry.ShutdownMeterProvider(shutdownCtx, meterProvider); err != nil {
			slog.Error("Failed to shut down meter provider", "error", err)
		}
	}()

	tracerProvider, err := telemetry.NewTracerProvider(ctx,
		telemetry.WithTracerServiceName(telemetryCfg.GetServiceName()),
		telemetry.WithTracerServiceVersion(versionInfo.Version),
		telemetry.WithTracingConfig(telemetryCfg.Tracing),
		telemetry.WithTracerEndpoint(telemetryCfg.GetEndpoint()),
		telemetry.WithTracerInsecure(telemetryCfg.Insecure),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
		defer cancel()
		if err := telemetry.ShutdownTracerProvider(shutdownCtx, tracerProvider); err != nil {
			slog.Error("Failed to shut down tracer provider", "error", err)
		}
	}()

	syncMetrics, err := telemetry.NewSyncMetrics(meterProvider)
	if err != nil {
		return fmt.Errorf("failed to create sync metrics: %w", err)
	}

	// Database pool, with the startup ping retried while Postgres comes up.
	pool, err := db.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Shared sync state. The tracker starts dirty so the first attempt after
	// a deploy always pushes a full snapshot.
	tracker := syncpkg.NewDirtyTracker()
	history := syncpkg.NewHistory()

	store, err := links.NewStore(pool, tracker)
	if err != nil {
		return fmt.Errorf("failed to create link store: %w", err)
	}

	edgeStore, err := newEdgeStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to create edge store: %w", err)
	}
	if !edgeStore.IsConfigured() {
		slog.Warn("Edge store is not configured; sync triggers will report 503")
	}

	syncerOpts := []syncpkg.Option{
		syncpkg.WithMetrics(syncMetrics),
		syncpkg.WithTracer(otel.Tracer(telemetry.SyncMetricsMeterName)),
	}
	if cfg.Sync != nil && cfg.Sync.Timeout != "" {
		timeout, err := time.ParseDuration(cfg.Sync.Timeout)
		if err != nil {
			return fmt.Errorf("invalid sync timeout: %w", err)
		}
		syncerOpts = append(syncerOpts, syncpkg.WithTimeout(timeout))
	}
	syncer := syncpkg.NewSyncer(store, edgeStore, tracker, history, syncerOpts...)

	// Best-effort startup sync so the edge cache is warm shortly after a
	// deploy, without blocking server startup on it.
	if edgeStore.IsConfigured() {
		go func() {
			result := syncer.Sync(context.Background())
			if result.Error != "" {
				slog.Warn("Startup sync did not complete", "error", result.Error)
			}
		}()
	}

	// Optional background scheduler. External cron remains the primary
	// trigger; the scheduler covers deployments without one.
	var scheduler syncpkg.Scheduler
	if cfg.Scheduler != nil && cfg.Scheduler.Interval != "" {
		interval, err := time.ParseDuration(cfg.Scheduler.Interval)
		if err != nil {
			return fmt.Errorf("invalid scheduler interval: %w", err)
		}
		scheduler = syncpkg.NewScheduler(syncer, interval)
		go func() {
			if err := scheduler.Start(context.Background()); err != nil {
				slog.Error("Sync scheduler failed", "error", err)
			}
		}()
	}

	cronSecret, err := cfg.Server.GetCronSecret()
	if err != nil {
		return fmt.Errorf("failed to get cron secret: %w", err)
	}
	if cronSecret == "" {
		slog.Warn("No cron secret configured; sync trigger endpoint will report 500")
	}

	router := api.NewServer(syncer, edgeStore, cronSecret,
		api.WithMiddlewares(
			middleware.RequestID,
			middleware.RealIP,
			middleware.Recoverer,
			middleware.Timeout(serverRequestTimeout),
			api.LoggingMiddleware,
		),
	)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	if scheduler != nil {
		if err := scheduler.Stop(); err != nil {
			slog.Error("Failed to stop sync scheduler", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultGracefulTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return err
	}

	slog.Info("Server shutdown complete")
	return nil
}
