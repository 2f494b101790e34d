package agent

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/keyraphi/led-spot/internal/colorspace"
	"github.com/keyraphi/led-spot/internal/spotlight"
	"github.com/keyraphi/led-spot/pkg/mqtt"
)

// publishThrottle rate limits state publishes so a running animation
// does not flood the broker with one message per frame.
type publishThrottle struct {
	mu   sync.Mutex
	last time.Time
}

func newPublishThrottle() *publishThrottle {
	return &publishThrottle{}
}

// Allow checks if enough time has passed since the last publish.
// Returns true and records the publish, or false if rate limited.
func (pt *publishThrottle) Allow(minInterval time.Duration) bool {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	if !pt.last.IsZero() && time.Since(pt.last) < minInterval {
		return false
	}
	pt.last = time.Now()
	return true
}

// Record marks a publish that bypassed the throttle (e.g. after a
// command) so the timer restarts from it.
func (pt *publishThrottle) Record() {
	pt.mu.Lock()
	defer pt.mu.Unlock()

	pt.last = time.Now()
}

// stateMessage is the retained state document on {base}/state/{device}
type stateMessage struct {
	Color     string `json:"color"`
	R         uint8  `json:"r"`
	G         uint8  `json:"g"`
	B         uint8  `json:"b"`
	Mode      string `json:"mode"`
	Daylight  bool   `json:"daylight"`
	Override  bool   `json:"override"`
	Timestamp string `json:"timestamp"`
}

// announceMessage is the retained discovery document on
// {base}/announce/{device}
type announceMessage struct {
	DeviceID     string `json:"device_id"`
	Name         string `json:"name"`
	Instance     string `json:"instance"`
	Version      string `json:"version"`
	HTTPPort     int    `json:"http_port"`
	CommandTopic string `json:"command_topic"`
	StateTopic   string `json:"state_topic"`
	StatusTopic  string `json:"status_topic"`
	StartedAt    string `json:"started_at"`
}

// maybePublishState publishes from the frame loop when the displayed
// color or mode changed, subject to the throttle.
func (a *Agent) maybePublishState(color colorspace.RGB, mode spotlight.Mode) {
	if a.mqtt == nil {
		return
	}

	a.stateMux.Lock()
	if color == a.lastColor && mode == a.lastMode {
		a.stateMux.Unlock()
		return
	}
	interval := time.Duration(a.cfg.StateIntervalMs) * time.Millisecond
	if !a.throttle.Allow(interval) {
		a.stateMux.Unlock()
		return
	}
	a.lastColor = color
	a.lastMode = mode
	a.stateMux.Unlock()

	if err := a.publishState(color, mode); err != nil {
		a.logger.Debug("Failed to publish state", "error", err)
	}
}

// forcePublishState publishes the current state unconditionally and
// resets the throttle timer. Called after every accepted command.
func (a *Agent) forcePublishState() {
	if a.mqtt == nil {
		return
	}

	a.engineMux.Lock()
	color := a.engine.CurrentColor()
	mode := a.engine.Mode()
	a.engineMux.Unlock()

	a.stateMux.Lock()
	a.lastColor = color
	a.lastMode = mode
	a.stateMux.Unlock()
	a.throttle.Record()

	if err := a.publishState(color, mode); err != nil {
		a.logger.Error("Failed to publish state", "error", err)
	}
}

func (a *Agent) publishState(color colorspace.RGB, mode spotlight.Mode) error {
	msg := stateMessage{
		Color:     color.Hex(),
		R:         color.R,
		G:         color.G,
		B:         color.B,
		Mode:      mode.String(),
		Daylight:  a.daylight.Load(),
		Override:  a.overrides.Active(),
		Timestamp: time.Now().Format(time.RFC3339),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal state message: %w", err)
	}

	topic := mqtt.StateTopic(a.cfg.MQTTBaseTopic, a.cfg.DeviceID)
	if err := a.mqtt.Publish(topic, 0, true, payload); err != nil {
		return fmt.Errorf("failed to publish state to %s: %w", topic, err)
	}
	return nil
}

// publishAnnounce publishes the retained discovery document so
// controllers can find the device without probing.
func (a *Agent) publishAnnounce() error {
	msg := announceMessage{
		DeviceID:     a.cfg.DeviceID,
		Name:         a.cfg.DeviceName,
		Instance:     a.instanceID,
		Version:      Version,
		HTTPPort:     a.cfg.HTTPPort,
		CommandTopic: mqtt.CommandTopic(a.cfg.MQTTBaseTopic, a.cfg.DeviceID),
		StateTopic:   mqtt.StateTopic(a.cfg.MQTTBaseTopic, a.cfg.DeviceID),
		StatusTopic:  mqtt.StatusTopic(a.cfg.MQTTBaseTopic, a.cfg.DeviceID),
		StartedAt:    a.started.Format(time.RFC3339),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal announce message: %w", err)
	}

	topic := mqtt.AnnounceTopic(a.cfg.MQTTBaseTopic, a.cfg.DeviceID)
	if err := a.mqtt.Publish(topic, 0, true, payload); err != nil {
		return fmt.Errorf("failed to publish announce to %s: %w", topic, err)
	}
	return nil
}

// clearAnnounce removes the retained discovery document by publishing
// an empty retained payload.
func (a *Agent) clearAnnounce() error {
	topic := mqtt.AnnounceTopic(a.cfg.MQTTBaseTopic, a.cfg.DeviceID)
	if err := a.mqtt.Publish(topic, 0, true, nil); err != nil {
		return fmt.Errorf("failed to clear announce on %s: %w", topic, err)
	}
	return nil
}

// publishStatus publishes the retained online/offline marker.
func (a *Agent) publishStatus(status string) error {
	topic := mqtt.StatusTopic(a.cfg.MQTTBaseTopic, a.cfg.DeviceID)
	if err := a.mqtt.Publish(topic, 1, true, []byte(status)); err != nil {
		return fmt.Errorf("failed to publish status to %s: %w", topic, err)
	}
	return nil
}
