package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.MQTTBaseTopic != "ledspot" {
		t.Errorf("expected base topic ledspot, got %s", cfg.MQTTBaseTopic)
	}
	if cfg.FrameIntervalMs != 20 {
		t.Errorf("expected frame interval 20ms, got %d", cfg.FrameIntervalMs)
	}
	if cfg.TransitionDurationSec != 0.2 || cfg.TransitionEasing != "cubic-in-out" {
		t.Errorf("unexpected transition defaults: %v %s", cfg.TransitionDurationSec, cfg.TransitionEasing)
	}
	if cfg.CycleDurationSec != 2.0 || cfg.CycleEasing != "linear" {
		t.Errorf("unexpected cycle defaults: %v %s", cfg.CycleDurationSec, cfg.CycleEasing)
	}
	if cfg.DeviceID == "" {
		t.Error("expected a non-empty device ID default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `
mqtt_broker: broker.lan
mqtt_port: 8883
device_id: kitchen-spot
sink: gpio
transition_duration_sec: 1.5
presets:
  sunset:
    - "#ff7e00"
    - "#ff2d00"
    - "#5b1647"
  ocean:
    - "#003355"
    - "#0077aa"
`
	path := filepath.Join(t.TempDir(), "ledspot.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg := NewConfig()
	if err := cfg.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.MQTTBroker != "broker.lan" || cfg.MQTTPort != 8883 {
		t.Errorf("broker not loaded: %s:%d", cfg.MQTTBroker, cfg.MQTTPort)
	}
	if cfg.DeviceID != "kitchen-spot" {
		t.Errorf("device ID not loaded: %s", cfg.DeviceID)
	}
	if cfg.SinkKind != "gpio" {
		t.Errorf("sink not loaded: %s", cfg.SinkKind)
	}
	if cfg.TransitionDurationSec != 1.5 {
		t.Errorf("transition duration not loaded: %v", cfg.TransitionDurationSec)
	}

	// Keys absent from the file keep their defaults.
	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTP port default lost: %d", cfg.HTTPPort)
	}
	if cfg.CycleEasing != "linear" {
		t.Errorf("cycle easing default lost: %s", cfg.CycleEasing)
	}

	if len(cfg.Presets) != 2 {
		t.Fatalf("expected 2 presets, got %d", len(cfg.Presets))
	}
	if len(cfg.Presets["sunset"]) != 3 || cfg.Presets["sunset"][0] != "#ff7e00" {
		t.Errorf("sunset preset not loaded: %v", cfg.Presets["sunset"])
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LEDSPOT_MQTT_BROKER", "envbroker")
	t.Setenv("LEDSPOT_MQTT_PORT", "2883")
	t.Setenv("LEDSPOT_MQTT_ENABLED", "false")
	t.Setenv("LEDSPOT_SINK", "null")
	t.Setenv("LEDSPOT_CYCLE_DURATION_SEC", "0.5")
	t.Setenv("LEDSPOT_FRAME_INTERVAL_MS", "not-a-number")

	cfg := NewConfig()
	cfg.LoadFromEnv()

	if cfg.MQTTBroker != "envbroker" {
		t.Errorf("broker not loaded from env: %s", cfg.MQTTBroker)
	}
	if cfg.MQTTPort != 2883 {
		t.Errorf("port not loaded from env: %d", cfg.MQTTPort)
	}
	if cfg.MQTTEnabled {
		t.Error("MQTT should be disabled via env")
	}
	if cfg.SinkKind != "null" {
		t.Errorf("sink not loaded from env: %s", cfg.SinkKind)
	}
	if cfg.CycleDurationSec != 0.5 {
		t.Errorf("cycle duration not loaded from env: %v", cfg.CycleDurationSec)
	}
	// Unparseable values are ignored, default stands.
	if cfg.FrameIntervalMs != 20 {
		t.Errorf("bad env value should be ignored, got %d", cfg.FrameIntervalMs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty broker", func(c *Config) { c.MQTTBroker = "" }, true},
		{"empty broker mqtt disabled", func(c *Config) { c.MQTTBroker = ""; c.MQTTEnabled = false }, false},
		{"zero mqtt port", func(c *Config) { c.MQTTPort = 0 }, true},
		{"mqtt port too high", func(c *Config) { c.MQTTPort = 70000 }, true},
		{"zero http port", func(c *Config) { c.HTTPPort = 0 }, true},
		{"empty device id", func(c *Config) { c.DeviceID = "" }, true},
		{"zero frame interval", func(c *Config) { c.FrameIntervalMs = 0 }, true},
		{"unknown sink", func(c *Config) { c.SinkKind = "plasma" }, true},
		{"mqtt sink without topic", func(c *Config) { c.SinkKind = "mqtt" }, true},
		{"mqtt sink with topic", func(c *Config) { c.SinkKind = "mqtt"; c.MQTTForwardTopic = "lights/raw" }, false},
		{"bad latitude", func(c *Config) { c.DaylightEnabled = true; c.Latitude = 95 }, true},
		{"bad latitude daylight off", func(c *Config) { c.Latitude = 95 }, false},
		{"kelvin range inverted", func(c *Config) { c.DaylightEnabled = true; c.DaylightMinKelvin = 7000 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMQTTAddress(t *testing.T) {
	cfg := NewConfig()
	cfg.MQTTBroker = "broker.lan"
	cfg.MQTTPort = 1884
	if got := cfg.MQTTAddress(); got != "tcp://broker.lan:1884" {
		t.Errorf("MQTTAddress() = %s", got)
	}
}
