package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/keyraphi/led-spot/internal/colorspace"
	"github.com/keyraphi/led-spot/internal/easing"
	"github.com/keyraphi/led-spot/internal/spotlight"
	"github.com/keyraphi/led-spot/pkg/mqtt"
)

// ErrUnknownPreset is returned when a preset name is not configured
var ErrUnknownPreset = errors.New("unknown preset")

// command is the JSON document accepted on {base}/command/{device}.
// One action per message, unused fields are ignored.
type command struct {
	Action string `json:"action"`

	// action: rgb
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`

	// action: kelvin
	Kelvin     float64  `json:"kelvin"`
	Brightness *float64 `json:"brightness"`

	// action: wheel
	Period    float64 `json:"period"`
	Direction string  `json:"direction"`

	// action: cycle
	Colors []string `json:"colors"`
	Random bool     `json:"random"`

	// action: preset
	Name string `json:"name"`

	// action: daylight
	Enabled *bool `json:"enabled"`

	// action: config
	TransitionDuration *float64 `json:"transition_duration"`
	TransitionEasing   *string  `json:"transition_easing"`
	CycleDuration      *float64 `json:"cycle_duration"`
	CycleEasing        *string  `json:"cycle_easing"`
}

// handleCommandMessage handles incoming command messages
func (a *Agent) handleCommandMessage(msg mqtt.Message) {
	var cmd command
	if err := json.Unmarshal(msg.Payload(), &cmd); err != nil {
		a.logger.Error("Failed to parse command message",
			"topic", msg.Topic(),
			"error", err)
		return
	}

	a.logger.Debug("Received command", "topic", msg.Topic(), "action", cmd.Action)

	if err := a.apply(&cmd); err != nil {
		a.logger.Warn("Rejected command",
			"action", cmd.Action,
			"error", err)
	}
}

// apply dispatches one command to the engine
func (a *Agent) apply(cmd *command) error {
	switch cmd.Action {
	case "rgb":
		a.SetRGB(cmd.R, cmd.G, cmd.B)

	case "kelvin":
		kelvin := cmd.Kelvin
		if kelvin <= 0 {
			kelvin = 6500
		}
		brightness := 1.0
		if cmd.Brightness != nil {
			brightness = *cmd.Brightness
		}
		a.SetColorTemperature(kelvin, brightness)

	case "wheel":
		period := cmd.Period
		if period == 0 {
			period = 10
		}
		a.StartWheel(period, spotlight.ParseDirection(cmd.Direction))

	case "cycle":
		colors, err := parseColors(cmd.Colors)
		if err != nil {
			return err
		}
		if len(colors) == 0 {
			return fmt.Errorf("cycle requires at least one color")
		}
		a.StartCycle(colors, cmd.Random)

	case "preset":
		return a.ApplyPreset(cmd.Name)

	case "daylight":
		if cmd.Enabled == nil {
			return fmt.Errorf("daylight requires an enabled flag")
		}
		a.SetDaylight(*cmd.Enabled)

	case "config":
		if cmd.TransitionDuration != nil {
			a.SetTransitionDuration(*cmd.TransitionDuration)
		}
		if cmd.TransitionEasing != nil {
			a.SetTransitionEasing(easing.FromString(*cmd.TransitionEasing))
		}
		if cmd.CycleDuration != nil {
			a.SetCycleDuration(*cmd.CycleDuration)
		}
		if cmd.CycleEasing != nil {
			a.SetCycleEasing(easing.FromString(*cmd.CycleEasing))
		}

	default:
		return fmt.Errorf("unknown action: %s", cmd.Action)
	}
	return nil
}

// SetRGB fades the lamp to a fixed color. Channels are clamped to 0-255.
func (a *Agent) SetRGB(r, g, b int) {
	c := colorspace.RGB{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}

	a.engineMux.Lock()
	a.engine.SetRGB(c.R, c.G, c.B)
	a.engineMux.Unlock()

	a.markManual()
	a.logger.Info("Set color", "color", c.Hex())
	a.forcePublishState()
}

// SetColorTemperature snaps the lamp to a white point.
func (a *Agent) SetColorTemperature(kelvin, brightness float64) {
	a.engineMux.Lock()
	a.engine.SetColorTemperature(kelvin, brightness)
	a.engineMux.Unlock()

	a.markManual()
	a.logger.Info("Set color temperature", "kelvin", kelvin, "brightness", brightness)
	a.forcePublishState()
}

// StartWheel starts a hue rotation with the given period in seconds.
func (a *Agent) StartWheel(periodSeconds float64, dir spotlight.Direction) {
	a.engineMux.Lock()
	a.engine.EnableColorWheelMode(periodSeconds, dir)
	a.engineMux.Unlock()

	a.markManual()
	a.logger.Info("Started color wheel", "period_sec", periodSeconds, "direction", dir.String())
	a.forcePublishState()
}

// StartCycle starts cycling through the given colors.
func (a *Agent) StartCycle(colors []colorspace.RGB, random bool) {
	a.engineMux.Lock()
	a.engine.EnableColorCycleMode(colors, random)
	a.engineMux.Unlock()

	a.markManual()
	a.logger.Info("Started color cycle", "colors", len(colors), "random", random)
	a.forcePublishState()
}

// ApplyPreset starts a cycle over a named palette from the config.
func (a *Agent) ApplyPreset(name string) error {
	hexes, ok := a.cfg.Presets[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	colors, err := parseColors(hexes)
	if err != nil {
		return fmt.Errorf("preset %s: %w", name, err)
	}
	if len(colors) == 0 {
		return fmt.Errorf("preset %s is empty", name)
	}

	a.engineMux.Lock()
	a.engine.EnableColorCycleMode(colors, false)
	a.engineMux.Unlock()

	a.markManual()
	a.logger.Info("Applied preset", "preset", name, "colors", len(colors))
	a.forcePublishState()
	return nil
}

// SetDaylight turns daylight mode on or off at runtime. Enabling it
// clears any manual override and retargets immediately.
func (a *Agent) SetDaylight(enabled bool) {
	a.daylight.Store(enabled)
	a.logger.Info("Daylight mode", "enabled", enabled)

	if enabled {
		a.overrides.Clear()
		a.applyDaylight(time.Now())
	}
	a.forcePublishState()
}

// SetTransitionDuration sets the duration for upcoming transitions.
func (a *Agent) SetTransitionDuration(seconds float64) {
	a.engineMux.Lock()
	a.engine.SetTransitionDuration(seconds)
	a.engineMux.Unlock()
	a.logger.Info("Set transition duration", "seconds", seconds)
}

// SetTransitionEasing sets the easing curve for upcoming transitions.
func (a *Agent) SetTransitionEasing(c easing.Curve) {
	a.engineMux.Lock()
	a.engine.SetTransitionEasing(c)
	a.engineMux.Unlock()
	a.logger.Info("Set transition easing", "curve", c.String())
}

// SetCycleDuration sets the duration for upcoming cycle legs.
func (a *Agent) SetCycleDuration(seconds float64) {
	a.engineMux.Lock()
	a.engine.SetCycleDuration(seconds)
	a.engineMux.Unlock()
	a.logger.Info("Set cycle duration", "seconds", seconds)
}

// SetCycleEasing sets the easing curve for upcoming cycle legs.
func (a *Agent) SetCycleEasing(c easing.Curve) {
	a.engineMux.Lock()
	a.engine.SetCycleEasing(c)
	a.engineMux.Unlock()
	a.logger.Info("Set cycle easing", "curve", c.String())
}

// markManual opens the override window that pauses daylight mode
func (a *Agent) markManual() {
	if !a.daylight.Load() {
		return
	}
	d := time.Duration(a.cfg.ManualOverrideMinutes) * time.Minute
	expires := a.overrides.Set(d)
	a.logger.Debug("Manual override set", "expires_at", expires.Format(time.RFC3339))
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// parseColors converts hex strings to colors, failing on the first bad one
func parseColors(hexes []string) ([]colorspace.RGB, error) {
	colors := make([]colorspace.RGB, 0, len(hexes))
	for _, h := range hexes {
		c, err := colorspace.ParseHex(h)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q: %w", h, err)
		}
		colors = append(colors, c)
	}
	return colors, nil
}
