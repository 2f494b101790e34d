package spotlight

import (
	"testing"

	"github.com/keyraphi/led-spot/internal/colorspace"
	"github.com/keyraphi/led-spot/internal/easing"
)

func TestSetColorTemperature(t *testing.T) {
	tests := []struct {
		name       string
		kelvin     float64
		brightness float64
		want       colorspace.RGB
	}{
		{"full brightness is identity", 6500, 1.0, colorspace.KelvinToRGB(6500)},
		{"half brightness truncates", 6500, 0.5, colorspace.RGB{R: 127, G: 127, B: 125}},
		{"brightness clamps high", 6500, 2.5, colorspace.KelvinToRGB(6500)},
		{"brightness clamps low", 6500, -1, colorspace.RGB{}},
		{"warm white", 2700, 1.0, colorspace.KelvinToRGB(2700)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(nil)
			f.eng.SetColorTemperature(tt.kelvin, tt.brightness)
			if got := f.last(); got != tt.want {
				t.Errorf("SetColorTemperature(%v, %v) wrote %v, want %v",
					tt.kelvin, tt.brightness, got, tt.want)
			}
			if got := f.eng.Mode(); got != ModeIdle {
				t.Errorf("mode = %v, want idle", got)
			}
		})
	}
}

func TestSetColorTemperatureStopsAnimations(t *testing.T) {
	f := newFixture(nil)
	f.eng.EnableColorWheelMode(10, Clockwise)
	f.eng.SetColorTemperature(3000, 1.0)

	writes := len(f.out)
	f.now += 5000
	f.eng.Tick()
	if len(f.out) != writes {
		t.Errorf("engine still animating after temperature set")
	}
}

func TestModeExclusivity(t *testing.T) {
	f := newFixture(nil)
	f.eng.SetCycleDuration(1.0)
	f.eng.EnableColorCycleMode([]colorspace.RGB{red, green, blue}, false)
	target := f.eng.cycleTarget

	f.eng.EnableColorWheelMode(10, Clockwise)
	if got := f.eng.Mode(); got != ModeWheel {
		t.Fatalf("mode = %v, want wheel", got)
	}

	// Ticks far past several cycle legs must not advance the cycle list.
	for i := 0; i < 10; i++ {
		f.now += 1500
		f.eng.Tick()
	}
	if f.eng.cycleTarget != target {
		t.Errorf("cycle target advanced to %d while wheel mode active", f.eng.cycleTarget)
	}
}

func TestModeSwitchContinuity(t *testing.T) {
	f := newFixture(nil)
	f.eng.SetTransitionDuration(1.0)
	f.eng.SetTransitionEasing(easing.Linear)
	f.eng.SetRGB(255, 0, 0)

	// Halfway to red, the wheel must pick up exactly the displayed color.
	f.now = 500
	displayed := f.eng.CurrentColor()
	wantH, wantS, wantV := colorspace.RGBToHSV(displayed)

	f.eng.EnableColorWheelMode(10, Clockwise)
	if f.eng.wheelHue != wantH || f.eng.wheelSat != wantS || f.eng.wheelVal != wantV {
		t.Errorf("wheel captured (%v, %v, %v), want (%v, %v, %v)",
			f.eng.wheelHue, f.eng.wheelSat, f.eng.wheelVal, wantH, wantS, wantV)
	}
	f.eng.Tick()
	if got := f.last(); got != displayed {
		t.Errorf("first wheel tick wrote %v, want the displayed color %v", got, displayed)
	}
}

func TestSetRGBCapturesDisplayedColor(t *testing.T) {
	f := newFixture(nil)
	f.eng.SetTransitionDuration(1.0)
	f.eng.SetTransitionEasing(easing.Linear)
	f.eng.SetRGB(255, 0, 0)

	f.now = 500
	displayed := f.eng.CurrentColor()
	f.eng.SetRGB(0, 0, 255)

	if want := colorspace.RGBToLCH(displayed); f.eng.transStart != want {
		t.Errorf("transition start = %+v, want %+v (the displayed color)", f.eng.transStart, want)
	}
	f.eng.Tick()
	if got := f.last(); got != displayed {
		t.Errorf("redirected transition starts at %v, want %v", got, displayed)
	}
}

func TestCycleEmptyListIsNoOp(t *testing.T) {
	f := newFixture(nil)
	f.eng.SetTransitionDuration(0)
	f.eng.SetRGB(0, 255, 0)
	f.eng.Tick()
	f.eng.EnableColorWheelMode(10, Clockwise)
	anchor := f.eng.wheelAnchor

	f.eng.EnableColorCycleMode(nil, false)
	if got := f.eng.Mode(); got != ModeWheel {
		t.Errorf("mode = %v, want wheel untouched by empty cycle request", got)
	}
	if f.eng.wheelAnchor != anchor {
		t.Errorf("wheel state disturbed by empty cycle request")
	}
}

func TestCycleTruncatesAtCapacity(t *testing.T) {
	colors := make([]colorspace.RGB, MaxCycleColors+8)
	for i := range colors {
		colors[i] = colorspace.RGB{R: uint8(i)}
	}

	f := newFixture(nil)
	f.eng.EnableColorCycleMode(colors, false)
	if f.eng.cycleCount != MaxCycleColors {
		t.Errorf("cycle count = %d, want %d", f.eng.cycleCount, MaxCycleColors)
	}
}

func TestCycleShuffle(t *testing.T) {
	// Scripted pivots: swap(0,1), swap(1,2), swap(2,3), then the initial
	// advance off stop 0 picks index 2.
	f := newFixture(scripted(t, 1, 2, 3, 2))
	stops := []colorspace.RGB{red, green, blue, yellow}
	f.eng.EnableColorCycleMode(stops, true)

	want := []colorspace.RGB{green, blue, yellow, red}
	for i, w := range want {
		if got := colorspace.LCHToRGB(f.eng.cycleStops[i]); got != w {
			t.Errorf("stop[%d] = %v, want %v", i, got, w)
		}
	}
	if f.eng.cycleTarget != 2 {
		t.Errorf("initial target = %d, want 2", f.eng.cycleTarget)
	}
	if f.eng.cycleStart != f.eng.cycleStops[0] {
		t.Errorf("first leg start = %+v, want stop 0", f.eng.cycleStart)
	}
}

func TestCycleRandomInitialAdvanceSkipsCurrent(t *testing.T) {
	// The advance off stop 0 retries until it leaves index 0: the first
	// scripted value is consumed by the shuffle, the next two by the
	// retry loop.
	f := newFixture(scripted(t, 0, 0, 1))
	f.eng.EnableColorCycleMode([]colorspace.RGB{red, green}, true)
	if f.eng.cycleTarget != 1 {
		t.Errorf("initial target = %d, want 1", f.eng.cycleTarget)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"clockwise", Clockwise},
		{"Clockwise", Clockwise},
		{"counterclockwise", CounterClockwise},
		{"COUNTERCLOCKWISE", CounterClockwise},
		{"counter-clockwise", CounterClockwise},
		{"ccw", CounterClockwise},
		{"", Clockwise},
		{"widdershins", Clockwise},
	}

	for _, tt := range tests {
		if got := ParseDirection(tt.in); got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeIdle, "idle"},
		{ModeTransition, "transition"},
		{ModeWheel, "wheel"},
		{ModeCycle, "cycle"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}
