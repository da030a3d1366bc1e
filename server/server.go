// Package server runs the planner gateway as an HTTP service with graceful
// shutdown and optional OpenTelemetry tracing.
package server

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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gqlfed/federation-planner/gateway"
)

const serverVersion = "v0.1.0"

// Run loads the settings file, builds the engine from the configured
// supergraph SDL and serves the GraphQL endpoint until interrupted.
func Run(settingsPath string) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	sdl, err := os.ReadFile(settings.SupergraphFile)
	if err != nil {
		return fmt.Errorf("failed to read supergraph file: %w", err)
	}

	subgraphTimeout, err := time.ParseDuration(settings.SubgraphTimeout)
	if err != nil {
		return fmt.Errorf("failed to parse subgraph timeout: %w", err)
	}
	client := &http.Client{Timeout: subgraphTimeout}
	if settings.Opentelemetry.Tracing.Enable {
		client.Transport = otelhttp.NewTransport(http.DefaultTransport)
	}

	engine, err := gateway.NewEngine(string(sdl), client)
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}

	handler := http.Handler(gateway.NewGateway(gateway.NewStore(engine)))
	if settings.Opentelemetry.Tracing.Enable {
		handler = otelhttp.NewHandler(handler, settings.ServiceName)
	}

	mux := http.NewServeMux()
	mux.Handle(settings.Endpoint, handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", settings.Port),
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer := func(context.Context) error { return nil }
	if settings.Opentelemetry.Tracing.Enable {
		shutdownTracer, err = gateway.InitTracer(ctx, settings.ServiceName, serverVersion)
		if err != nil {
			return fmt.Errorf("failed to initialize tracer: %w", err)
		}
	}

	go func() {
		slog.Info("starting planner server", "port", settings.Port, "endpoint", settings.Endpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	timeout, err := time.ParseDuration(settings.TimeoutDuration)
	if err != nil {
		timeout = 5 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	slog.Info("shutting down planner server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown tracer: %w", err)
	}

	slog.Info("planner server stopped")
	return nil
}
