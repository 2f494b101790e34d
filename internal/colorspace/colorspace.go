package colorspace

import "math"

// RGB is a color as three independent byte channels, the canonical output
// representation written to the light hardware.
type RGB struct {
	R, G, B uint8
}

// HSL holds hue in degrees [0,360) with saturation and lightness in [0,1].
type HSL struct {
	H, S, L float64
}

// LCH is the interpolation color used for animated blends: lightness and
// chroma in [0,1] plus hue in degrees [0,360). It derives from HSL rather
// than CIE Lab; the name is an internal label.
type LCH struct {
	L, C, H float64
}

// Add returns the componentwise sum of the two colors.
func (a LCH) Add(b LCH) LCH {
	return LCH{L: a.L + b.L, C: a.C + b.C, H: a.H + b.H}
}

// Sub returns the componentwise difference a minus b.
func (a LCH) Sub(b LCH) LCH {
	return LCH{L: a.L - b.L, C: a.C - b.C, H: a.H - b.H}
}

// Scale multiplies every component by f.
func (a LCH) Scale(f float64) LCH {
	return LCH{L: a.L * f, C: a.C * f, H: a.H * f}
}

// RGBToHSV converts to hue [0,360), saturation and value [0,1]. Gray
// inputs (including black) report hue and saturation as 0 so repeated
// conversions never drift.
func RGBToHSV(c RGB) (h, s, v float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	v = max
	if max == 0 || delta == 0 {
		return 0, 0, v
	}
	s = delta / max
	h = sectorHue(r, g, b, max, delta)
	return h, s, v
}

// HSVToRGB converts hue in degrees (wrapped into [0,360)) with saturation
// and value in [0,1] back to byte channels.
func HSVToRGB(h, s, v float64) RGB {
	h = wrapHue(h)
	s = clamp01(s)
	v = clamp01(v)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGB{toByte(r + m), toByte(g + m), toByte(b + m)}
}

// RGBToHSL converts to the HSL cylinder.
func RGBToHSL(c RGB) HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min
	l := (max + min) / 2

	if delta == 0 {
		return HSL{L: l}
	}
	var s float64
	if l < 0.5 {
		s = delta / (max + min)
	} else {
		s = delta / (2 - max - min)
	}
	return HSL{H: sectorHue(r, g, b, max, delta), S: s, L: l}
}

// HSLToRGB converts from the HSL cylinder using the piecewise
// hue-to-channel helper.
func HSLToRGB(c HSL) RGB {
	s := clamp01(c.S)
	l := clamp01(c.L)
	if s == 0 {
		v := toByte(l)
		return RGB{v, v, v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	h := wrapHue(c.H) / 360

	return RGB{
		toByte(hueToChannel(p, q, h+1.0/3)),
		toByte(hueToChannel(p, q, h)),
		toByte(hueToChannel(p, q, h-1.0/3)),
	}
}

// RGBToLCH converts to the interpolation space: lightness is the midpoint
// of the extreme channels, chroma their spread, hue as in RGBToHSV.
func RGBToLCH(c RGB) LCH {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min
	l := (max + min) / 2

	if delta == 0 {
		return LCH{L: l}
	}
	return LCH{L: l, C: delta, H: sectorHue(r, g, b, max, delta)}
}

// LCHToRGB converts back by recovering HSL saturation from the chroma
// spread, branching on lightness so neither half of the range divides
// asymmetrically, then delegating to HSLToRGB.
func LCHToRGB(c LCH) RGB {
	l := clamp01(c.L)
	var s float64
	if c.C > 0 {
		if l < 0.5 {
			s = c.C / (2 * l)
		} else {
			s = c.C / (2 - 2*l)
		}
	}
	return HSLToRGB(HSL{H: c.H, S: clamp01(s), L: l})
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// sectorHue computes the six-sector hue in degrees from normalized
// channels. delta must be non-zero.
func sectorHue(r, g, b, max, delta float64) float64 {
	var h float64
	switch max {
	case r:
		h = math.Mod((g-b)/delta, 6)
	case g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h
}

func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clamp01(f float64) float64 {
	return math.Min(1, math.Max(0, f))
}

// toByte maps [0,1] onto a rounded byte, clamping out-of-range inputs
// before narrowing (float-to-integer overflow is not defined to saturate).
func toByte(f float64) uint8 {
	v := math.Round(f * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
