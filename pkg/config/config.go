package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the spotlight daemon
type Config struct {
	// MQTT configuration
	MQTTEnabled   bool   `yaml:"mqtt_enabled"`
	MQTTBroker    string `yaml:"mqtt_broker"`
	MQTTPort      int    `yaml:"mqtt_port"`
	MQTTUser      string `yaml:"mqtt_user"`
	MQTTPassword  string `yaml:"mqtt_password"`
	MQTTClientID  string `yaml:"mqtt_client_id"`
	MQTTBaseTopic string `yaml:"mqtt_base_topic"`

	// Device identity
	DeviceID   string `yaml:"device_id"`
	DeviceName string `yaml:"device_name"`

	// HTTP API, UI and health share one port
	HTTPPort int    `yaml:"http_port"`
	LogLevel string `yaml:"log_level"`

	// Output sink
	SinkKind         string `yaml:"sink"`
	PinRed           string `yaml:"pin_red"`
	PinGreen         string `yaml:"pin_green"`
	PinBlue          string `yaml:"pin_blue"`
	PWMFrequencyHz   int    `yaml:"pwm_frequency_hz"`
	MQTTForwardTopic string `yaml:"mqtt_forward_topic"`

	// Engine parameters
	FrameIntervalMs       int     `yaml:"frame_interval_ms"`
	StateIntervalMs       int     `yaml:"state_interval_ms"`
	TransitionDurationSec float64 `yaml:"transition_duration_sec"`
	TransitionEasing      string  `yaml:"transition_easing"`
	CycleDurationSec      float64 `yaml:"cycle_duration_sec"`
	CycleEasing           string  `yaml:"cycle_easing"`
	InitialColor          string  `yaml:"initial_color"`

	// Daylight mode
	DaylightEnabled         bool    `yaml:"daylight_enabled"`
	Latitude                float64 `yaml:"latitude"`
	Longitude               float64 `yaml:"longitude"`
	DaylightIntervalSec     int     `yaml:"daylight_interval_sec"`
	DaylightMinKelvin       float64 `yaml:"daylight_min_kelvin"`
	DaylightMaxKelvin       float64 `yaml:"daylight_max_kelvin"`
	DaylightNightBrightness float64 `yaml:"daylight_night_brightness"`
	ManualOverrideMinutes   int     `yaml:"manual_override_minutes"`

	// Named color palettes for cycle mode, config file only
	Presets map[string][]string `yaml:"presets"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "spotlight"
	}
	return &Config{
		MQTTEnabled:           true,
		MQTTBroker:            "localhost",
		MQTTPort:              1883,
		MQTTBaseTopic:         "ledspot",
		DeviceID:              hostname,
		DeviceName:            "LED Spotlight",
		HTTPPort:              8080,
		LogLevel:              "info",
		SinkKind:              "console",
		PinRed:                "GPIO17",
		PinGreen:              "GPIO22",
		PinBlue:               "GPIO24",
		PWMFrequencyHz:        1000,
		FrameIntervalMs:       20,
		StateIntervalMs:       1000,
		TransitionDurationSec: 0.2,
		TransitionEasing:      "cubic-in-out",
		CycleDurationSec:      2.0,
		CycleEasing:           "linear",
		InitialColor:          "#000000",
		// Helsinki coordinates
		Latitude:                60.1695,
		Longitude:               24.9354,
		DaylightIntervalSec:     60,
		DaylightMinKelvin:       2400,
		DaylightMaxKelvin:       6500,
		DaylightNightBrightness: 0.4,
		ManualOverrideMinutes:   30,
	}
}

// LoadFromFile merges a YAML configuration file over the current values.
// Keys absent from the file keep their defaults.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// LoadFromEnv loads configuration from environment variables with LEDSPOT_ prefix
func (c *Config) LoadFromEnv() {
	// MQTT configuration
	if v := os.Getenv("LEDSPOT_MQTT_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.MQTTEnabled = enabled
		}
	}
	if v := os.Getenv("LEDSPOT_MQTT_BROKER"); v != "" {
		c.MQTTBroker = v
	}
	if v := os.Getenv("LEDSPOT_MQTT_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.MQTTPort = port
		}
	}
	if v := os.Getenv("LEDSPOT_MQTT_USER"); v != "" {
		c.MQTTUser = v
	}
	if v := os.Getenv("LEDSPOT_MQTT_PASSWORD"); v != "" {
		c.MQTTPassword = v
	}
	if v := os.Getenv("LEDSPOT_MQTT_CLIENT_ID"); v != "" {
		c.MQTTClientID = v
	}
	if v := os.Getenv("LEDSPOT_MQTT_BASE_TOPIC"); v != "" {
		c.MQTTBaseTopic = v
	}

	// Device identity
	if v := os.Getenv("LEDSPOT_DEVICE_ID"); v != "" {
		c.DeviceID = v
	}
	if v := os.Getenv("LEDSPOT_DEVICE_NAME"); v != "" {
		c.DeviceName = v
	}

	// Service configuration
	if v := os.Getenv("LEDSPOT_HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.HTTPPort = port
		}
	}
	if v := os.Getenv("LEDSPOT_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	// Output sink
	if v := os.Getenv("LEDSPOT_SINK"); v != "" {
		c.SinkKind = v
	}
	if v := os.Getenv("LEDSPOT_PIN_RED"); v != "" {
		c.PinRed = v
	}
	if v := os.Getenv("LEDSPOT_PIN_GREEN"); v != "" {
		c.PinGreen = v
	}
	if v := os.Getenv("LEDSPOT_PIN_BLUE"); v != "" {
		c.PinBlue = v
	}
	if v := os.Getenv("LEDSPOT_PWM_FREQUENCY_HZ"); v != "" {
		if hz, err := strconv.Atoi(v); err == nil {
			c.PWMFrequencyHz = hz
		}
	}
	if v := os.Getenv("LEDSPOT_MQTT_FORWARD_TOPIC"); v != "" {
		c.MQTTForwardTopic = v
	}

	// Engine parameters
	if v := os.Getenv("LEDSPOT_FRAME_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.FrameIntervalMs = ms
		}
	}
	if v := os.Getenv("LEDSPOT_STATE_INTERVAL_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.StateIntervalMs = ms
		}
	}
	if v := os.Getenv("LEDSPOT_TRANSITION_DURATION_SEC"); v != "" {
		if sec, err := strconv.ParseFloat(v, 64); err == nil {
			c.TransitionDurationSec = sec
		}
	}
	if v := os.Getenv("LEDSPOT_TRANSITION_EASING"); v != "" {
		c.TransitionEasing = v
	}
	if v := os.Getenv("LEDSPOT_CYCLE_DURATION_SEC"); v != "" {
		if sec, err := strconv.ParseFloat(v, 64); err == nil {
			c.CycleDurationSec = sec
		}
	}
	if v := os.Getenv("LEDSPOT_CYCLE_EASING"); v != "" {
		c.CycleEasing = v
	}
	if v := os.Getenv("LEDSPOT_INITIAL_COLOR"); v != "" {
		c.InitialColor = v
	}

	// Daylight mode
	if v := os.Getenv("LEDSPOT_DAYLIGHT_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.DaylightEnabled = enabled
		}
	}
	if v := os.Getenv("LEDSPOT_LATITUDE"); v != "" {
		if lat, err := strconv.ParseFloat(v, 64); err == nil {
			c.Latitude = lat
		}
	}
	if v := os.Getenv("LEDSPOT_LONGITUDE"); v != "" {
		if lon, err := strconv.ParseFloat(v, 64); err == nil {
			c.Longitude = lon
		}
	}
	if v := os.Getenv("LEDSPOT_DAYLIGHT_INTERVAL_SEC"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil {
			c.DaylightIntervalSec = sec
		}
	}
	if v := os.Getenv("LEDSPOT_DAYLIGHT_MIN_KELVIN"); v != "" {
		if k, err := strconv.ParseFloat(v, 64); err == nil {
			c.DaylightMinKelvin = k
		}
	}
	if v := os.Getenv("LEDSPOT_DAYLIGHT_MAX_KELVIN"); v != "" {
		if k, err := strconv.ParseFloat(v, 64); err == nil {
			c.DaylightMaxKelvin = k
		}
	}
	if v := os.Getenv("LEDSPOT_DAYLIGHT_NIGHT_BRIGHTNESS"); v != "" {
		if b, err := strconv.ParseFloat(v, 64); err == nil {
			c.DaylightNightBrightness = b
		}
	}
	if v := os.Getenv("LEDSPOT_MANUAL_OVERRIDE_MINUTES"); v != "" {
		if minutes, err := strconv.Atoi(v); err == nil {
			c.ManualOverrideMinutes = minutes
		}
	}
}

// LoadFromFlags parses command-line flags and overrides config values
func (c *Config) LoadFromFlags() {
	// MQTT flags
	pflag.BoolVar(&c.MQTTEnabled, "mqtt-enabled", c.MQTTEnabled, "Enable the MQTT command/state surface")
	pflag.StringVar(&c.MQTTBroker, "mqtt-broker", c.MQTTBroker, "MQTT broker hostname")
	pflag.IntVar(&c.MQTTPort, "mqtt-port", c.MQTTPort, "MQTT broker port")
	pflag.StringVar(&c.MQTTUser, "mqtt-user", c.MQTTUser, "MQTT username")
	pflag.StringVar(&c.MQTTPassword, "mqtt-password", c.MQTTPassword, "MQTT password")
	pflag.StringVar(&c.MQTTClientID, "mqtt-client-id", c.MQTTClientID, "MQTT client ID")
	pflag.StringVar(&c.MQTTBaseTopic, "mqtt-base-topic", c.MQTTBaseTopic, "Base segment of every MQTT topic")

	// Device flags
	pflag.StringVar(&c.DeviceID, "device-id", c.DeviceID, "Device identifier used in topics")
	pflag.StringVar(&c.DeviceName, "device-name", c.DeviceName, "Human-readable device name")

	// Service flags
	pflag.IntVar(&c.HTTPPort, "http-port", c.HTTPPort, "HTTP port for API, UI and health")
	pflag.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level (debug, info, warn, error)")

	// Sink flags
	pflag.StringVar(&c.SinkKind, "sink", c.SinkKind, "Output sink (gpio, mqtt, console, null)")
	pflag.StringVar(&c.PinRed, "pin-red", c.PinRed, "GPIO pin name for the red channel")
	pflag.StringVar(&c.PinGreen, "pin-green", c.PinGreen, "GPIO pin name for the green channel")
	pflag.StringVar(&c.PinBlue, "pin-blue", c.PinBlue, "GPIO pin name for the blue channel")
	pflag.IntVar(&c.PWMFrequencyHz, "pwm-frequency-hz", c.PWMFrequencyHz, "PWM frequency in hertz")
	pflag.StringVar(&c.MQTTForwardTopic, "mqtt-forward-topic", c.MQTTForwardTopic, "Topic the mqtt sink publishes colors to")

	// Engine flags
	pflag.IntVar(&c.FrameIntervalMs, "frame-interval-ms", c.FrameIntervalMs, "Animation frame interval in milliseconds")
	pflag.IntVar(&c.StateIntervalMs, "state-interval-ms", c.StateIntervalMs, "Minimum interval between state publishes while animating (ms)")
	pflag.Float64Var(&c.TransitionDurationSec, "transition-duration", c.TransitionDurationSec, "Default transition duration in seconds")
	pflag.StringVar(&c.TransitionEasing, "transition-easing", c.TransitionEasing, "Default transition easing curve")
	pflag.Float64Var(&c.CycleDurationSec, "cycle-duration", c.CycleDurationSec, "Default cycle leg duration in seconds")
	pflag.StringVar(&c.CycleEasing, "cycle-easing", c.CycleEasing, "Default cycle easing curve")
	pflag.StringVar(&c.InitialColor, "initial-color", c.InitialColor, "Color applied at startup (hex)")

	// Daylight flags
	pflag.BoolVar(&c.DaylightEnabled, "daylight", c.DaylightEnabled, "Track the sun and adjust color temperature")
	pflag.Float64Var(&c.Latitude, "latitude", c.Latitude, "Geographic latitude for daylight calculation")
	pflag.Float64Var(&c.Longitude, "longitude", c.Longitude, "Geographic longitude for daylight calculation")
	pflag.IntVar(&c.DaylightIntervalSec, "daylight-interval", c.DaylightIntervalSec, "Daylight update interval in seconds")
	pflag.Float64Var(&c.DaylightMinKelvin, "daylight-min-kelvin", c.DaylightMinKelvin, "Color temperature at night")
	pflag.Float64Var(&c.DaylightMaxKelvin, "daylight-max-kelvin", c.DaylightMaxKelvin, "Color temperature at high sun")
	pflag.Float64Var(&c.DaylightNightBrightness, "daylight-night-brightness", c.DaylightNightBrightness, "Brightness while the sun is below the horizon")
	pflag.IntVar(&c.ManualOverrideMinutes, "manual-override-minutes", c.ManualOverrideMinutes, "How long manual commands pause daylight mode (minutes)")

	pflag.Parse()
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.MQTTEnabled && c.MQTTBroker == "" {
		return fmt.Errorf("MQTT broker is required")
	}
	if c.MQTTPort <= 0 || c.MQTTPort > 65535 {
		return fmt.Errorf("MQTT port must be between 1 and 65535")
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP port must be between 1 and 65535")
	}
	if c.DeviceID == "" {
		return fmt.Errorf("device ID is required")
	}
	if c.FrameIntervalMs <= 0 {
		return fmt.Errorf("frame interval must be positive")
	}

	switch c.SinkKind {
	case "gpio", "mqtt", "console", "null":
	default:
		return fmt.Errorf("invalid sink: %s (must be gpio, mqtt, console, or null)", c.SinkKind)
	}
	if c.SinkKind == "mqtt" && c.MQTTForwardTopic == "" {
		return fmt.Errorf("mqtt sink requires a forward topic")
	}

	if c.DaylightEnabled {
		if c.Latitude < -90 || c.Latitude > 90 {
			return fmt.Errorf("latitude must be between -90 and 90")
		}
		if c.Longitude < -180 || c.Longitude > 180 {
			return fmt.Errorf("longitude must be between -180 and 180")
		}
		if c.DaylightMinKelvin >= c.DaylightMaxKelvin {
			return fmt.Errorf("daylight min kelvin must be below max kelvin")
		}
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// MQTTAddress returns the full MQTT broker address
func (c *Config) MQTTAddress() string {
	return fmt.Sprintf("tcp://%s:%d", c.MQTTBroker, c.MQTTPort)
}
