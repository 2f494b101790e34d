// Package agent runs the animation engine behind MQTT and keeps the
// retained state, status and announce documents on the broker current.
package agent

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/keyraphi/led-spot/internal/colorspace"
	"github.com/keyraphi/led-spot/internal/easing"
	"github.com/keyraphi/led-spot/internal/sink"
	"github.com/keyraphi/led-spot/internal/spotlight"
	"github.com/keyraphi/led-spot/pkg/config"
	"github.com/keyraphi/led-spot/pkg/health"
	"github.com/keyraphi/led-spot/pkg/mqtt"
)

// Version is reported in the startup log and the announce document
const Version = "1.0.0"

// Agent owns the engine and serializes access to it. The frame loop,
// MQTT handlers and HTTP handlers all go through the engine mutex.
type Agent struct {
	mqtt   mqtt.Client
	cfg    *config.Config
	logger *slog.Logger
	health *health.Checker

	engineMux sync.Mutex
	engine    *spotlight.Engine
	out       sink.Sink

	overrides *OverrideManager
	throttle  *publishThrottle
	daylight  atomic.Bool

	stateMux  sync.Mutex
	lastColor colorspace.RGB
	lastMode  spotlight.Mode

	instanceID string
	started    time.Time

	// Frame loop
	ticker   *time.Ticker
	stopChan chan struct{}
}

// State is a point-in-time view of the lamp for the API
type State struct {
	Color         colorspace.RGB
	Mode          spotlight.Mode
	Daylight      bool
	OverrideUntil time.Time
}

// New creates a new spotlight agent. mqttClient may be nil when the
// MQTT surface is disabled; out must not be nil.
func New(mqttClient mqtt.Client, out sink.Sink, checker *health.Checker, cfg *config.Config, logger *slog.Logger) *Agent {
	a := &Agent{
		mqtt:       mqttClient,
		cfg:        cfg,
		logger:     logger,
		health:     checker,
		out:        out,
		overrides:  NewOverrideManager(),
		throttle:   newPublishThrottle(),
		instanceID: uuid.NewString(),
		started:    time.Now(),
		stopChan:   make(chan struct{}),
	}

	a.engine = spotlight.New(out.Write, nil, nil)
	a.engine.SetTransitionDuration(cfg.TransitionDurationSec)
	a.engine.SetTransitionEasing(easing.FromString(cfg.TransitionEasing))
	a.engine.SetCycleDuration(cfg.CycleDurationSec)
	a.engine.SetCycleEasing(easing.FromString(cfg.CycleEasing))
	a.daylight.Store(cfg.DaylightEnabled)

	return a
}

// Start starts the agent and blocks until the context is cancelled
func (a *Agent) Start(ctx context.Context) error {
	a.logger.Info("Starting spotlight agent",
		"device_id", a.cfg.DeviceID,
		"sink", a.cfg.SinkKind,
		"frame_interval_ms", a.cfg.FrameIntervalMs,
		"daylight", a.cfg.DaylightEnabled)

	if a.mqtt != nil {
		if err := a.mqtt.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to MQTT: %w", err)
		}

		commandTopic := mqtt.CommandTopic(a.cfg.MQTTBaseTopic, a.cfg.DeviceID)
		if err := a.mqtt.Subscribe(commandTopic, 0, a.handleCommandMessage); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", commandTopic, err)
		}
		a.logger.Info("Subscribed to commands", "topic", commandTopic)

		// Broadcast commands address every device on the base topic
		broadcastTopic := mqtt.CommandTopic(a.cfg.MQTTBaseTopic, "all")
		if err := a.mqtt.Subscribe(broadcastTopic, 0, a.handleCommandMessage); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", broadcastTopic, err)
		}

		if err := a.publishStatus(mqtt.StatusOnline); err != nil {
			a.logger.Error("Failed to publish online status", "error", err)
		}
		if err := a.publishAnnounce(); err != nil {
			a.logger.Error("Failed to publish announce", "error", err)
		}
	}

	a.applyInitialColor()

	a.startFrameLoop()
	// The scheduler always runs; applyDaylight no-ops while the mode is
	// off, so a later daylight command picks up periodic retargeting.
	go a.runDaylightLoop()

	a.logger.Info("Spotlight agent started and ready")

	// Block until context is cancelled
	<-ctx.Done()
	a.logger.Info("Spotlight agent stopping")

	return nil
}

// Stop gracefully stops the agent
func (a *Agent) Stop() error {
	a.logger.Info("Stopping spotlight agent")

	if a.ticker != nil {
		a.ticker.Stop()
	}
	close(a.stopChan)

	if a.mqtt != nil {
		if err := a.publishStatus(mqtt.StatusOffline); err != nil {
			a.logger.Error("Failed to publish offline status", "error", err)
		}
		if err := a.clearAnnounce(); err != nil {
			a.logger.Error("Failed to clear announce", "error", err)
		}
		a.mqtt.Disconnect()
	}

	if err := a.out.Close(); err != nil {
		a.logger.Error("Error closing sink", "error", err)
		return err
	}

	a.logger.Info("Spotlight agent stopped")
	return nil
}

// Snapshot returns the current lamp state
func (a *Agent) Snapshot() State {
	a.engineMux.Lock()
	color := a.engine.CurrentColor()
	mode := a.engine.Mode()
	a.engineMux.Unlock()

	s := State{
		Color:    color,
		Mode:     mode,
		Daylight: a.daylight.Load(),
	}
	if expires, ok := a.overrides.ExpiresAt(); ok {
		s.OverrideUntil = expires
	}
	return s
}

// applyInitialColor fades the lamp in from black at startup
func (a *Agent) applyInitialColor() {
	c, err := colorspace.ParseHex(a.cfg.InitialColor)
	if err != nil {
		a.logger.Warn("Invalid initial color, staying dark",
			"value", a.cfg.InitialColor,
			"error", err)
		return
	}

	a.engineMux.Lock()
	a.engine.SetRGB(c.R, c.G, c.B)
	a.engineMux.Unlock()
}

// startFrameLoop starts the tick loop that drives the animation
func (a *Agent) startFrameLoop() {
	interval := time.Duration(a.cfg.FrameIntervalMs) * time.Millisecond
	a.ticker = time.NewTicker(interval)

	go func() {
		a.logger.Info("Starting frame loop", "interval_ms", a.cfg.FrameIntervalMs)
		for {
			select {
			case <-a.ticker.C:
				a.frame()
			case <-a.stopChan:
				return
			}
		}
	}()
}

// frame advances the animation by one tick
func (a *Agent) frame() {
	a.engineMux.Lock()
	a.engine.Tick()
	color := a.engine.CurrentColor()
	mode := a.engine.Mode()
	a.engineMux.Unlock()

	if a.health != nil {
		a.health.RecordFrame()
	}
	a.maybePublishState(color, mode)
}
