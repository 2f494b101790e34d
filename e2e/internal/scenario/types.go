package scenario

import "time"

// Scenario represents a complete E2E test scenario: a sequence of
// commands published to a running spotlight agent, and the state the
// agent is expected to report back over MQTT.
type Scenario struct {
	Name         string                   `yaml:"name"`
	Description  string                   `yaml:"description"`
	Setup        SetupConfig              `yaml:"setup"`
	Commands     []CommandStep            `yaml:"commands"`
	Wait         []WaitPeriod             `yaml:"wait"`
	Expectations map[string][]Expectation `yaml:"expectations"`
}

// SetupConfig identifies the device under test
type SetupConfig struct {
	Device string `yaml:"device"`
}

// CommandStep represents one command to publish during the test. The
// action and params are merged into a single JSON object and published
// to {base}/command/{device}.
type CommandStep struct {
	Time        float64                `yaml:"time"`             // Seconds from start
	Action      string                 `yaml:"action"`           // e.g. "rgb", "wheel", "cycle"
	Params      map[string]interface{} `yaml:"params,omitempty"` // Action arguments
	Device      string                 `yaml:"device,omitempty"` // Overrides setup.device, e.g. "all" for broadcast
	Description string                 `yaml:"description"`
}

// WaitPeriod represents a pause in the scenario
type WaitPeriod struct {
	Time        float64 `yaml:"time"` // Seconds from start
	Description string  `yaml:"description"`
}

// Expectation represents an expected outcome to verify against the
// most recent message captured on a topic.
type Expectation struct {
	Time    float64                `yaml:"time"`    // Seconds from start
	Topic   string                 `yaml:"topic"`   // MQTT topic
	Payload map[string]interface{} `yaml:"payload"` // Expected payload fields (supports special matchers)

	// Optional: match the r/g/b fields of a state payload against a
	// hex color, each channel within Tolerance.
	Color     string `yaml:"color,omitempty"`
	Tolerance int    `yaml:"tolerance,omitempty"`
}

// TestResult represents the outcome of running a scenario
type TestResult struct {
	Scenario     *Scenario
	StartTime    time.Time
	EndTime      time.Time
	Passed       bool
	PassedCount  int
	FailedCount  int
	Expectations []ExpectationResult
}

// ExpectationResult represents the result of checking a single expectation
type ExpectationResult struct {
	Layer         string
	Expectation   Expectation
	Passed        bool
	Reason        string
	ActualTopic   string
	ActualPayload interface{}
}
