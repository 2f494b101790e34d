package spotlight

import (
	"github.com/keyraphi/led-spot/internal/colorspace"
	"github.com/keyraphi/led-spot/internal/easing"
)

// SetRGB eases from the currently displayed color to the requested one
// using the configured transition duration and easing.
func (e *Engine) SetRGB(r, g, b uint8) {
	from := colorspace.RGBToLCH(e.CurrentColor())
	e.stopAll()
	e.transStart = from
	e.transEnd = colorspace.RGBToLCH(colorspace.RGB{R: r, G: g, B: b})
	e.transAnchor = e.clock()
	e.transFor = e.transitionDuration
	e.transCurve = e.transitionEasing
	e.mode = ModeTransition
}

// SetColorTemperature writes the black-body color for kelvin immediately
// with no transition, scaling each channel by brightness clamped to
// [0,1] (truncating). All animation modes stop.
func (e *Engine) SetColorTemperature(kelvin, brightness float64) {
	e.stopAll()
	if brightness < 0 {
		brightness = 0
	}
	if brightness > 1 {
		brightness = 1
	}
	c := colorspace.KelvinToRGB(kelvin)
	c.R = uint8(float64(c.R) * brightness)
	c.G = uint8(float64(c.G) * brightness)
	c.B = uint8(float64(c.B) * brightness)
	e.write(c)
}

// EnableColorWheelMode rotates the hue of the currently displayed color
// through the full circle every periodSeconds, holding its saturation
// and value constant. The mode runs until replaced.
func (e *Engine) EnableColorWheelMode(periodSeconds float64, dir Direction) {
	h, s, v := colorspace.RGBToHSV(e.CurrentColor())
	e.stopAll()
	e.wheelHue = h
	e.wheelSat = s
	e.wheelVal = v
	e.wheelPeriod = periodSeconds
	e.wheelDir = dir
	e.wheelAnchor = e.clock()
	e.mode = ModeWheel
}

// EnableColorCycleMode blends through the given stops in order, or in a
// random order that never repeats a stop twice in a row. At most
// MaxCycleColors stops are kept; an empty list leaves the engine exactly
// as it was. The mode runs until replaced.
func (e *Engine) EnableColorCycleMode(colors []colorspace.RGB, random bool) {
	count := len(colors)
	if count > MaxCycleColors {
		count = MaxCycleColors
	}
	if count == 0 {
		return
	}

	e.stopAll()
	for i := 0; i < count; i++ {
		e.cycleStops[i] = colorspace.RGBToLCH(colors[i])
	}
	e.cycleCount = count
	e.cycleRandom = random
	if random {
		e.shuffleStops()
	}

	// The first instant displays stop 0 exactly; the leg then blends
	// toward the next target.
	e.cycleStart = e.cycleStops[0]
	e.cycleTarget = e.nextCycleTarget(0)
	e.cycleAnchor = e.clock()
	e.cycleFor = e.cycleDuration
	e.cycleCurve = e.cycleEasing
	e.mode = ModeCycle
}

// SetCycleDuration sets the leg length in seconds for subsequent legs.
func (e *Engine) SetCycleDuration(seconds float64) {
	e.cycleDuration = seconds
}

// SetCycleEasing selects the easing applied to subsequent legs.
func (e *Engine) SetCycleEasing(c easing.Curve) {
	e.cycleEasing = c
}

// SetTransitionDuration sets the length in seconds of subsequent
// transitions.
func (e *Engine) SetTransitionDuration(seconds float64) {
	e.transitionDuration = seconds
}

// SetTransitionEasing selects the easing for subsequent transitions.
func (e *Engine) SetTransitionEasing(c easing.Curve) {
	e.transitionEasing = c
}

// shuffleStops permutes the stop list in place, one random pivot per
// position.
func (e *Engine) shuffleStops() {
	for i := 0; i < e.cycleCount-1; i++ {
		j := e.randInt(i, e.cycleCount)
		if i != j {
			e.cycleStops[i], e.cycleStops[j] = e.cycleStops[j], e.cycleStops[i]
		}
	}
}

// stopAll deactivates every mode without touching the last written
// color.
func (e *Engine) stopAll() {
	e.mode = ModeIdle
}
