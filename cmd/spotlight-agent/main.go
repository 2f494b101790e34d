package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keyraphi/led-spot/internal/agent"
	"github.com/keyraphi/led-spot/internal/api"
	"github.com/keyraphi/led-spot/internal/sink"
	"github.com/keyraphi/led-spot/pkg/config"
	"github.com/keyraphi/led-spot/pkg/health"
	"github.com/keyraphi/led-spot/pkg/mqtt"
)

func main() {
	// Load configuration with hierarchy: defaults → file → env → flags
	cfg := config.NewConfig()
	if err := loadConfigFile(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	cfg.LoadFromEnv()
	cfg.LoadFromFlags()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// Set up structured logging
	logLevel := parseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting LED spotlight agent",
		"version", agent.Version,
		"device_id", cfg.DeviceID,
		"mqtt_broker", cfg.MQTTAddress(),
		"sink", cfg.SinkKind,
		"http_port", cfg.HTTPPort,
		"log_level", cfg.LogLevel)

	// Set up context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Initialize MQTT client unless disabled
	var mqttClient mqtt.Client
	if cfg.MQTTEnabled {
		mqttClient = mqtt.NewClient(cfg, logger)
	}

	// Build the output sink
	out, err := sink.New(cfg, mqttClient, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sink error: %v\n", err)
		os.Exit(1)
	}

	// The loop counts as stalled after missing ten frames in a row
	staleAfter := time.Duration(10*cfg.FrameIntervalMs) * time.Millisecond
	if staleAfter < 2*time.Second {
		staleAfter = 2 * time.Second
	}
	healthChecker := health.NewChecker(mqttClient, staleAfter, logger)

	// Create the spotlight agent
	spotAgent := agent.New(mqttClient, out, healthChecker, cfg, logger)

	// Start HTTP server with API, UI and health endpoints
	apiServer := api.NewServer(spotAgent, healthChecker, logger)
	httpServer := startHTTPServer(cfg.HTTPPort, apiServer, logger)

	// Start agent in a goroutine
	agentErr := make(chan error, 1)
	go func() {
		if err := spotAgent.Start(ctx); err != nil {
			logger.Error("Agent error", "error", err)
			agentErr <- err
		}
	}()

	// Wait for shutdown signal or agent error
	select {
	case <-sigChan:
		logger.Info("Shutdown signal received (SIGTERM/SIGINT)")
	case err := <-agentErr:
		logger.Error("Agent failed", "error", err)
	}

	// Graceful shutdown
	logger.Info("Initiating graceful shutdown")
	cancel()

	if err := spotAgent.Stop(); err != nil {
		logger.Error("Error stopping agent", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down HTTP server", "error", err)
	}

	logger.Info("Spotlight agent shutdown complete")
}

// loadConfigFile merges the YAML config file, if one is present. An
// explicit LEDSPOT_CONFIG path must exist; the default path may not.
func loadConfigFile(cfg *config.Config) error {
	if path := os.Getenv("LEDSPOT_CONFIG"); path != "" {
		return cfg.LoadFromFile(path)
	}
	if _, err := os.Stat("ledspot.yaml"); err == nil {
		return cfg.LoadFromFile("ledspot.yaml")
	}
	return nil
}

func startHTTPServer(port int, apiServer *api.Server, logger *slog.Logger) *http.Server {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: apiServer.Handler(),
	}

	go func() {
		logger.Info("Starting HTTP server", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	return server
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
