package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hiroki-koketsu/go-todo-sample/internal/config"
	"github.com/hiroki-koketsu/go-todo-sample/internal/store"
	"github.com/hiroki-koketsu/go-todo-sample/internal/telemetry"
	"github.com/hiroki-koketsu/go-todo-sample/internal/ui"
	"go.opentelemetry.io/otel"
)

func main() {
	if err := run(); err != nil {
		// The UI has released the terminal by now.
		reportFailure(os.Stderr, err)
		os.Exit(1)
	}
}

func reportFailure(w io.Writer, err error) {
	slog.New(slog.NewJSONHandler(w, nil)).Error("application failed", slog.Any("error", err))
}

// shutdownFunc wraps a provider's Shutdown for defer, logging a failed flush.
func shutdownFunc(ctx context.Context, logger *slog.Logger, name string, shutdown func(context.Context) error) func() {
	return func() {
		if err := shutdown(ctx); err != nil {
			logger.Error("failed to shutdown "+name+" provider", slog.Any("error", err))
		}
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The terminal belongs to the UI, so local records go to LOG_FILE or nowhere.
	localLogger, closer, err := telemetry.NewLocalLogger(cfg.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Providers are shut down with a fresh context so a cancelled run still flushes.
	shutdownCtx := context.Background()

	logger := localLogger
	if cfg.TelemetryEnabled {
		// Export failures would otherwise be printed over the UI.
		telemetry.RouteErrors(localLogger)

		tp, err := telemetry.InitTracerProvider(ctx, cfg.ServiceName, cfg.OTLPEndpoint, cfg.Environment)
		if err != nil {
			return fmt.Errorf("initializing tracer provider: %w", err)
		}
		defer shutdownFunc(shutdownCtx, localLogger, "tracer", tp.Shutdown)()

		mp, err := telemetry.InitMeterProvider(ctx, cfg.ServiceName, cfg.OTLPEndpoint, cfg.Environment)
		if err != nil {
			return fmt.Errorf("initializing meter provider: %w", err)
		}
		defer shutdownFunc(shutdownCtx, localLogger, "meter", mp.Shutdown)()

		// Initialized after the other providers for log-trace correlation
		lp, otelLogger, err := telemetry.InitLoggerProvider(ctx, cfg.ServiceName, cfg.OTLPEndpoint, cfg.Environment)
		if err != nil {
			return fmt.Errorf("initializing logger provider: %w", err)
		}
		defer shutdownFunc(shutdownCtx, localLogger, "logger", lp.Shutdown)()
		logger = otelLogger
	}

	logger.Info("starting application",
		slog.String("service", cfg.ServiceName),
		slog.String("environment", cfg.Environment),
		slog.Bool("telemetry", cfg.TelemetryEnabled),
	)

	taskStore := store.NewTaskStore(
		store.WithLogger(logger),
		store.WithSort(cfg.Sort),
		store.WithFilter(cfg.Filter),
	)

	// Uses the no-op global meter when telemetry is disabled.
	metrics, err := telemetry.NewMetrics(otel.Meter(cfg.ServiceName), taskStore.Count)
	if err != nil {
		return fmt.Errorf("creating metrics: %w", err)
	}
	taskStore.SetMetrics(metrics)

	if err := ui.Run(ctx, taskStore); err != nil {
		logger.Error("ui stopped", slog.Any("error", err))
		return fmt.Errorf("running ui: %w", err)
	}

	logger.Info("application stopped", slog.Int64("tasks", taskStore.Count()))
	return nil
}
