package health

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/keyraphi/led-spot/pkg/mqtt"
)

// Checker provides health check functionality for the daemon
type Checker struct {
	mqtt       mqtt.Client
	logger     *slog.Logger
	staleAfter time.Duration
	lastFrame  atomic.Int64
}

// NewChecker creates a new health checker. staleAfter is how long the
// animation loop may go without a frame before it counts as stalled.
func NewChecker(mqttClient mqtt.Client, staleAfter time.Duration, logger *slog.Logger) *Checker {
	c := &Checker{
		mqtt:       mqttClient,
		logger:     logger,
		staleAfter: staleAfter,
	}
	c.RecordFrame()
	return c
}

// RecordFrame marks the animation loop as alive. The frame loop calls
// this on every tick.
func (h *Checker) RecordFrame() {
	h.lastFrame.Store(time.Now().UnixNano())
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp string    `json:"timestamp"`
	Services  *Services `json:"services,omitempty"`
}

// Services represents the status of the daemon's moving parts
type Services struct {
	MQTT string `json:"mqtt"`
	Loop string `json:"loop"`
}

// HandlerFunc returns an HTTP handler function for health checks.
// Returns 200 if the process is alive without checking dependencies,
// which keeps the probe fast.
func (h *Checker) HandlerFunc() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode health response", "error", err)
		}
	}
}

// ReadyHandlerFunc returns a handler that checks the broker connection
// and the animation loop before reporting ready.
func (h *Checker) ReadyHandlerFunc() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		services := &Services{
			MQTT: "disabled",
			Loop: "running",
		}

		if h.mqtt != nil {
			if h.mqtt.IsConnected() {
				services.MQTT = "connected"
			} else {
				services.MQTT = "disconnected"
			}
		}

		last := time.Unix(0, h.lastFrame.Load())
		if time.Since(last) > h.staleAfter {
			services.Loop = "stalled"
		}

		status := "healthy"
		statusCode := http.StatusOK

		if services.MQTT == "disconnected" || services.Loop == "stalled" {
			status = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		response := HealthResponse{
			Status:    status,
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			Services:  services,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)

		if err := json.NewEncoder(w).Encode(response); err != nil {
			h.logger.Error("Failed to encode health response", "error", err)
		}
	}
}
