package agent

import (
	"math"
	"testing"
	"time"

	"github.com/keyraphi/led-spot/internal/colorspace"
	"github.com/keyraphi/led-spot/internal/spotlight"
	"github.com/keyraphi/led-spot/pkg/config"
)

func TestDaylightTarget(t *testing.T) {
	const (
		minK  = 2400.0
		maxK  = 6500.0
		night = 0.4
	)

	tests := []struct {
		name           string
		altitude       float64
		wantKelvin     float64
		wantBrightness float64
	}{
		{"below horizon", -0.5, 2400, 0.4},
		{"at horizon", 0, 2400, 0.4},
		{"overhead", math.Pi / 2, 6500, 1.0},
		{"thirty degrees", math.Pi / 6, 4450, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kelvin, brightness := daylightTarget(tt.altitude, minK, maxK, night)
			if math.Abs(kelvin-tt.wantKelvin) > 1e-6 {
				t.Errorf("kelvin = %v, want %v", kelvin, tt.wantKelvin)
			}
			if brightness != tt.wantBrightness {
				t.Errorf("brightness = %v, want %v", brightness, tt.wantBrightness)
			}
		})
	}
}

func TestApplyDaylightAtNoon(t *testing.T) {
	a, _, out := newTestAgent(t, func(c *config.Config) {
		c.DaylightEnabled = true
		c.Latitude = 0
		c.Longitude = 0
	})

	// June solstice noon on the equator, sun well above the horizon
	noon := time.Date(2026, 6, 21, 12, 0, 0, 0, time.UTC)
	a.applyDaylight(noon)

	last, ok := out.lastFrame()
	if !ok {
		t.Fatal("expected a frame")
	}
	if last.R != 255 {
		t.Errorf("daytime white should keep the red channel full, got %+v", last)
	}
	if last.B == 0 {
		t.Errorf("daytime white should not be fully warm, got %+v", last)
	}
}

func TestApplyDaylightAtNight(t *testing.T) {
	a, _, out := newTestAgent(t, func(c *config.Config) {
		c.DaylightEnabled = true
		c.Latitude = 0
		c.Longitude = 0
	})

	midnight := time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC)
	a.applyDaylight(midnight)

	last, ok := out.lastFrame()
	if !ok {
		t.Fatal("expected a frame")
	}
	// 2400K dimmed to the night brightness
	if last != (colorspace.RGB{R: 102, G: 62, B: 24}) {
		t.Errorf("unexpected night color: %+v", last)
	}
}

func TestApplyDaylightSkipsDuringOverride(t *testing.T) {
	a, _, out := newTestAgent(t, func(c *config.Config) {
		c.DaylightEnabled = true
	})

	a.overrides.Set(time.Minute)
	before := out.frameCount()

	a.applyDaylight(time.Now())

	if out.frameCount() != before {
		t.Error("daylight should not retarget during a manual override")
	}
}

func TestApplyDaylightSkipsWhenDisabled(t *testing.T) {
	a, _, out := newTestAgent(t, nil)

	a.applyDaylight(time.Now())

	if out.frameCount() != 0 {
		t.Error("daylight should not retarget while disabled")
	}
}

func TestApplyDaylightSkipsDuringAnimation(t *testing.T) {
	a, _, out := newTestAgent(t, func(c *config.Config) {
		c.DaylightEnabled = true
	})

	a.StartWheel(5, spotlight.Clockwise)
	// Even once the override window has lapsed, a running animation
	// keeps daylight mode out of the way.
	a.overrides.Clear()
	before := out.frameCount()

	a.applyDaylight(time.Now())

	if out.frameCount() != before {
		t.Error("daylight should not retarget while an animation runs")
	}
}
