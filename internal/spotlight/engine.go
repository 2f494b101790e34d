package spotlight

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/keyraphi/led-spot/internal/colorspace"
	"github.com/keyraphi/led-spot/internal/easing"
)

// MaxCycleColors bounds the color-cycle stop list. Longer requests are
// truncated silently.
const MaxCycleColors = 32

// Default animation parameters, applied until the setters override them.
const (
	DefaultTransitionDuration = 0.2
	DefaultCycleDuration      = 2.0
)

// Sink receives every color the engine writes: hardware PWM, a network
// forwarder, or a test recorder.
type Sink func(colorspace.RGB)

// Clock returns a monotonically non-decreasing millisecond counter. It
// may wrap; elapsed time is always computed with wrapping uint32
// subtraction.
type Clock func() uint32

// RandInt returns a uniformly distributed integer in [lo, hi).
type RandInt func(lo, hi int) int

// Direction selects which way wheel mode rotates the hue.
type Direction uint8

const (
	Clockwise Direction = iota
	CounterClockwise
)

// ParseDirection maps a direction name case-insensitively. Anything that
// does not spell counterclockwise spins clockwise.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "counterclockwise", "counter-clockwise", "ccw":
		return CounterClockwise
	}
	return Clockwise
}

func (d Direction) String() string {
	if d == CounterClockwise {
		return "counterclockwise"
	}
	return "clockwise"
}

// Mode reports which animation branch is active.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeTransition
	ModeWheel
	ModeCycle
)

func (m Mode) String() string {
	switch m {
	case ModeTransition:
		return "transition"
	case ModeWheel:
		return "wheel"
	case ModeCycle:
		return "cycle"
	}
	return "idle"
}

// Engine is the tick-driven animation state machine. At most one mode is
// active at a time; activating any mode deactivates the others. The
// engine is single-threaded and non-blocking: Tick must be called
// frequently by the host loop, and callers running mutators from other
// goroutines must serialize access externally. Nothing on the tick path
// allocates.
type Engine struct {
	sink    Sink
	clock   Clock
	randInt RandInt

	current colorspace.RGB
	mode    Mode

	// Configured parameters; captured by each new transition or cycle
	// leg, so changing them never affects one already in flight.
	transitionDuration float64
	transitionEasing   easing.Curve
	cycleDuration      float64
	cycleEasing        easing.Curve

	transStart  colorspace.LCH
	transEnd    colorspace.LCH
	transAnchor uint32
	transFor    float64
	transCurve  easing.Curve

	wheelHue    float64
	wheelSat    float64
	wheelVal    float64
	wheelPeriod float64
	wheelDir    Direction
	wheelAnchor uint32

	cycleStops  [MaxCycleColors]colorspace.LCH
	cycleCount  int
	cycleTarget int
	cycleStart  colorspace.LCH
	cycleAnchor uint32
	cycleFor    float64
	cycleCurve  easing.Curve
	cycleRandom bool
}

// New constructs an engine writing to sink. clock and randInt may be
// nil, which selects a wall-clock millisecond counter and math/rand.
func New(sink Sink, clock Clock, randInt RandInt) *Engine {
	if clock == nil {
		clock = WallClock()
	}
	if randInt == nil {
		randInt = func(lo, hi int) int {
			if hi <= lo {
				return lo
			}
			return lo + rand.Intn(hi-lo)
		}
	}
	return &Engine{
		sink:               sink,
		clock:              clock,
		randInt:            randInt,
		transitionDuration: DefaultTransitionDuration,
		transitionEasing:   easing.CubicInOut,
		cycleDuration:      DefaultCycleDuration,
		cycleEasing:        easing.Linear,
	}
}

// WallClock returns a Clock counting milliseconds from its creation. The
// counter wraps after about 49 days, which the elapsed-time arithmetic
// tolerates.
func WallClock() Clock {
	start := time.Now()
	return func() uint32 {
		return uint32(time.Since(start).Milliseconds())
	}
}

// Tick advances the active mode and writes the instantaneous color to
// the sink. Idle ticks do nothing.
func (e *Engine) Tick() {
	now := e.clock()
	switch e.mode {
	case ModeTransition:
		t := progress(now-e.transAnchor, e.transFor)
		if t >= 1 {
			e.write(colorspace.LCHToRGB(e.transEnd))
			e.mode = ModeIdle
			return
		}
		e.write(colorspace.LCHToRGB(blend(e.transStart, e.transEnd, e.transCurve.Ease(t))))

	case ModeWheel:
		e.write(colorspace.HSVToRGB(e.wheelHueAt(now), e.wheelSat, e.wheelVal))

	case ModeCycle:
		if progress(now-e.cycleAnchor, e.cycleFor) >= 1 {
			e.commitCycleLeg(now)
			return
		}
		t := e.cycleCurve.Ease(progress(now-e.cycleAnchor, e.cycleFor))
		e.write(colorspace.LCHToRGB(blend(e.cycleStart, e.cycleStops[e.cycleTarget], t)))
	}
}

// CurrentColor evaluates the active mode exactly as Tick would, with
// progress clamped into [0,1], mutating nothing. Mutators use it to hand
// off between modes without a visible jump; it also serves as the query
// surface.
func (e *Engine) CurrentColor() colorspace.RGB {
	now := e.clock()
	switch e.mode {
	case ModeTransition:
		t := clampProgress(progress(now-e.transAnchor, e.transFor))
		if t >= 1 {
			return colorspace.LCHToRGB(e.transEnd)
		}
		return colorspace.LCHToRGB(blend(e.transStart, e.transEnd, e.transCurve.Ease(t)))
	case ModeWheel:
		return colorspace.HSVToRGB(e.wheelHueAt(now), e.wheelSat, e.wheelVal)
	case ModeCycle:
		t := clampProgress(progress(now-e.cycleAnchor, e.cycleFor))
		return colorspace.LCHToRGB(blend(e.cycleStart, e.cycleStops[e.cycleTarget], e.cycleCurve.Ease(t)))
	}
	return e.current
}

// Mode reports the active animation mode.
func (e *Engine) Mode() Mode {
	return e.mode
}

// commitCycleLeg promotes the reached stop to the new leg start,
// advances the target and re-arms the leg with the currently configured
// duration and easing. The commit tick itself writes nothing; the next
// tick evaluates the fresh leg.
func (e *Engine) commitCycleLeg(now uint32) {
	e.cycleStart = e.cycleStops[e.cycleTarget]
	e.cycleTarget = e.nextCycleTarget(e.cycleTarget)
	e.cycleAnchor = now
	e.cycleFor = e.cycleDuration
	e.cycleCurve = e.cycleEasing
}

// nextCycleTarget picks the following stop index: sequential wraparound,
// or uniformly random never repeating the current one when more than a
// single stop exists.
func (e *Engine) nextCycleTarget(current int) int {
	if e.cycleCount <= 1 {
		return current
	}
	if !e.cycleRandom {
		return (current + 1) % e.cycleCount
	}
	next := current
	for next == current {
		next = e.randInt(0, e.cycleCount)
	}
	return next
}

// wheelHueAt returns the rotated hue in [0,360). Non-positive periods
// hold the starting hue instead of dividing by zero.
func (e *Engine) wheelHueAt(now uint32) float64 {
	if e.wheelPeriod <= 0 {
		return e.wheelHue
	}
	delta := float64(now-e.wheelAnchor) / (e.wheelPeriod * 1000) * 360
	if e.wheelDir == CounterClockwise {
		delta = -delta
	}
	h := math.Mod(e.wheelHue+delta, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func (e *Engine) write(c colorspace.RGB) {
	e.current = c
	if e.sink != nil {
		e.sink(c)
	}
}

// progress normalizes elapsed milliseconds by a duration in seconds.
// Non-positive durations complete immediately.
func progress(elapsedMs uint32, durationSec float64) float64 {
	if durationSec <= 0 {
		return 1
	}
	return float64(elapsedMs) / (durationSec * 1000)
}

func clampProgress(t float64) float64 {
	if t > 1 {
		return 1
	}
	return t
}

// blend computes start + (end-start)*t in the interpolation space.
func blend(a, b colorspace.LCH, t float64) colorspace.LCH {
	return a.Add(b.Sub(a).Scale(t))
}
