package easing

import (
	"math"
	"strings"
)

// Curve identifies one of the closed set of symmetric in-out easing
// curves. The zero value is Linear.
type Curve uint8

const (
	Linear Curve = iota
	SineInOut
	QuadInOut
	CubicInOut
	QuartInOut
	QuintInOut
	CircInOut
	ElasticInOut
	BackInOut
	BounceInOut
)

// String returns the canonical hyphenated name.
func (c Curve) String() string {
	switch c {
	case SineInOut:
		return "sine-in-out"
	case QuadInOut:
		return "quad-in-out"
	case CubicInOut:
		return "cubic-in-out"
	case QuartInOut:
		return "quart-in-out"
	case QuintInOut:
		return "quint-in-out"
	case CircInOut:
		return "circ-in-out"
	case ElasticInOut:
		return "elastic-in-out"
	case BackInOut:
		return "back-in-out"
	case BounceInOut:
		return "bounce-in-out"
	}
	return "linear"
}

// FromString maps a curve name onto the enumeration, case-insensitively.
// The hyphenated form ("cubic-in-out"), the collapsed form ("cubicinout")
// and the bare family name ("cubic") are all accepted. Anything
// unrecognized falls back to Linear without error.
func FromString(name string) Curve {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, "-", "")
	s = strings.TrimSuffix(s, "inout")

	switch s {
	case "sine":
		return SineInOut
	case "quad", "quadratic":
		return QuadInOut
	case "cubic":
		return CubicInOut
	case "quart", "quartic":
		return QuartInOut
	case "quint", "quintic":
		return QuintInOut
	case "circ", "circular":
		return CircInOut
	case "elastic":
		return ElasticInOut
	case "back":
		return BackInOut
	case "bounce":
		return BounceInOut
	}
	return Linear
}

// Ease remaps normalized progress t in [0,1] through the curve. Elastic
// and back overshoot [0,1] mid-curve on purpose; every curve maps 0 to 0
// and 1 to 1. Inputs outside [0,1] are not special-cased, callers clamp
// first when overshoot is unwanted.
func (c Curve) Ease(t float64) float64 {
	switch c {
	case SineInOut:
		return easeSineInOut(t)
	case QuadInOut:
		return easeQuadInOut(t)
	case CubicInOut:
		return easeCubicInOut(t)
	case QuartInOut:
		return easeQuartInOut(t)
	case QuintInOut:
		return easeQuintInOut(t)
	case CircInOut:
		return easeCircInOut(t)
	case ElasticInOut:
		return easeElasticInOut(t)
	case BackInOut:
		return easeBackInOut(t)
	case BounceInOut:
		return easeBounceInOut(t)
	}
	return t
}

func easeSineInOut(t float64) float64 {
	return 0.5 * (1 - math.Cos(t*math.Pi))
}

func easeQuadInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -2*t*t + 4*t - 1
}

func easeCubicInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	f := 2*t - 2
	return 0.5*f*f*f + 1
}

func easeQuartInOut(t float64) float64 {
	if t < 0.5 {
		return 8 * t * t * t * t
	}
	f := t - 1
	return -8*f*f*f*f + 1
}

func easeQuintInOut(t float64) float64 {
	if t < 0.5 {
		return 16 * t * t * t * t * t
	}
	f := 2*t - 2
	return 0.5*f*f*f*f*f + 1
}

func easeCircInOut(t float64) float64 {
	f := 2 * t
	if f < 1 {
		return -0.5 * (math.Sqrt(1-f*f) - 1)
	}
	f -= 2
	return 0.5 * (math.Sqrt(1-f*f) + 1)
}

func easeElasticInOut(t float64) float64 {
	if t == 0 || t == 1 {
		return t
	}
	const p = 0.3 * 1.5
	const s = p / 4
	f := 2*t - 1
	if f < 0 {
		return -0.5 * math.Pow(2, 10*f) * math.Sin((f-s)*(2*math.Pi)/p)
	}
	return math.Pow(2, -10*f)*math.Sin((f-s)*(2*math.Pi)/p)*0.5 + 1
}

func easeBackInOut(t float64) float64 {
	const s = 1.70158 * 1.525
	f := 2 * t
	if f < 1 {
		return 0.5 * (f * f * ((s+1)*f - s))
	}
	f -= 2
	return 0.5 * (f*f*((s+1)*f+s) + 2)
}

func easeBounceInOut(t float64) float64 {
	if t < 0.5 {
		return 0.5 * (1 - bounceOut(1-2*t))
	}
	return 0.5*bounceOut(2*t-1) + 0.5
}

func bounceOut(t float64) float64 {
	switch {
	case t < 1/2.75:
		return 7.5625 * t * t
	case t < 2/2.75:
		t -= 1.5 / 2.75
		return 7.5625*t*t + 0.75
	case t < 2.5/2.75:
		t -= 2.25 / 2.75
		return 7.5625*t*t + 0.9375
	}
	t -= 2.625 / 2.75
	return 7.5625*t*t + 0.984375
}
