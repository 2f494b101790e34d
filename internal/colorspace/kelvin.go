package colorspace

import "math"

// KelvinToRGB approximates the black-body radiation color for a
// temperature in kelvin using Tanner Helland's polynomial/log fit.
// Input is clamped to [1000,40000]; each channel clamps to [0,255].
func KelvinToRGB(kelvin float64) RGB {
	if kelvin < 1000 {
		kelvin = 1000
	}
	if kelvin > 40000 {
		kelvin = 40000
	}
	t := kelvin / 100

	var r, g, b float64
	if t <= 66 {
		r = 255
		g = 99.4708025861*math.Log(t) - 161.1195681661
	} else {
		r = 329.698727446 * math.Pow(t-60, -0.1332047592)
		g = 288.1221695283 * math.Pow(t-60, -0.0755148492)
	}
	switch {
	case t >= 66:
		b = 255
	case t <= 19:
		b = 0
	default:
		b = 138.5177312231*math.Log(t-10) - 305.0447927307
	}
	return RGB{clampByte(r), clampByte(g), clampByte(b)}
}

func clampByte(f float64) uint8 {
	v := math.Round(f)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
