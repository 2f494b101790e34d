package colorspace

import (
	"math"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// sampleBytes covers the byte range unevenly so the grids below hit
// boundaries, near-boundaries and mid-range values.
var sampleBytes = []uint8{0, 1, 2, 17, 51, 85, 119, 127, 128, 153, 187, 221, 254, 255}

func TestRGBToHSVKnownColors(t *testing.T) {
	tests := []struct {
		name    string
		in      RGB
		h, s, v float64
	}{
		{"black", RGB{0, 0, 0}, 0, 0, 0},
		{"white", RGB{255, 255, 255}, 0, 0, 1},
		{"gray", RGB{128, 128, 128}, 0, 0, 128.0 / 255},
		{"red", RGB{255, 0, 0}, 0, 1, 1},
		{"green", RGB{0, 255, 0}, 120, 1, 1},
		{"blue", RGB{0, 0, 255}, 240, 1, 1},
		{"yellow", RGB{255, 255, 0}, 60, 1, 1},
		{"cyan", RGB{0, 255, 255}, 180, 1, 1},
		{"magenta", RGB{255, 0, 255}, 300, 1, 1},
		{"half green", RGB{0, 128, 0}, 120, 1, 128.0 / 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := RGBToHSV(tt.in)
			if math.Abs(h-tt.h) > 1e-9 || math.Abs(s-tt.s) > 1e-9 || math.Abs(v-tt.v) > 1e-9 {
				t.Errorf("RGBToHSV(%v) = (%v, %v, %v), want (%v, %v, %v)",
					tt.in, h, s, v, tt.h, tt.s, tt.v)
			}
		})
	}
}

func TestHSVToRGBKnownColors(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float64
		want    RGB
	}{
		{"red", 0, 1, 1, RGB{255, 0, 0}},
		{"yellow", 60, 1, 1, RGB{255, 255, 0}},
		{"green", 120, 1, 1, RGB{0, 255, 0}},
		{"cyan", 180, 1, 1, RGB{0, 255, 255}},
		{"blue", 240, 1, 1, RGB{0, 0, 255}},
		{"magenta", 300, 1, 1, RGB{255, 0, 255}},
		{"wrapped hue", 420, 1, 1, RGB{255, 255, 0}},
		{"negative hue", -60, 1, 1, RGB{255, 0, 255}},
		{"black", 123, 1, 0, RGB{0, 0, 0}},
		{"white", 0, 0, 1, RGB{255, 255, 255}},
		{"clamped saturation", 0, 1.5, 1, RGB{255, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSVToRGB(tt.h, tt.s, tt.v); got != tt.want {
				t.Errorf("HSVToRGB(%v, %v, %v) = %v, want %v", tt.h, tt.s, tt.v, got, tt.want)
			}
		})
	}
}

func TestHSVRoundTrip(t *testing.T) {
	for _, r := range sampleBytes {
		for _, g := range sampleBytes {
			for _, b := range sampleBytes {
				in := RGB{r, g, b}
				h, s, v := RGBToHSV(in)
				out := HSVToRGB(h, s, v)
				if !within(in, out, 1) {
					t.Fatalf("HSV round trip %v -> (%v, %v, %v) -> %v drifts more than 1", in, h, s, v, out)
				}
			}
		}
	}
}

func TestHSLKnownColors(t *testing.T) {
	tests := []struct {
		name string
		in   HSL
		want RGB
	}{
		{"red", HSL{0, 1, 0.5}, RGB{255, 0, 0}},
		{"green", HSL{120, 1, 0.5}, RGB{0, 255, 0}},
		{"blue", HSL{240, 1, 0.5}, RGB{0, 0, 255}},
		{"white", HSL{0, 0, 1}, RGB{255, 255, 255}},
		{"black", HSL{0, 1, 0}, RGB{0, 0, 0}},
		{"gray", HSL{0, 0, 0.5}, RGB{128, 128, 128}},
		{"light blue", HSL{240, 1, 0.75}, RGB{128, 128, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSLToRGB(tt.in); got != tt.want {
				t.Errorf("HSLToRGB(%+v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHSLRoundTrip(t *testing.T) {
	for _, r := range sampleBytes {
		for _, g := range sampleBytes {
			for _, b := range sampleBytes {
				in := RGB{r, g, b}
				out := HSLToRGB(RGBToHSL(in))
				if !within(in, out, 1) {
					t.Fatalf("HSL round trip %v -> %v drifts more than 1", in, out)
				}
			}
		}
	}
}

// TestLCHRoundTrip is the core interpolation-space law: converting any
// byte triple into LCH and back must land within one count per channel.
func TestLCHRoundTrip(t *testing.T) {
	check := func(in RGB) {
		t.Helper()
		out := LCHToRGB(RGBToLCH(in))
		if !within(in, out, 1) {
			t.Fatalf("LCH round trip %v -> %+v -> %v drifts more than 1", in, RGBToLCH(in), out)
		}
	}

	for _, r := range sampleBytes {
		for _, g := range sampleBytes {
			for _, b := range sampleBytes {
				check(RGB{r, g, b})
			}
		}
	}
	// Coarse full-range sweep with a stride coprime to 256.
	for r := 0; r < 256; r += 15 {
		for g := 0; g < 256; g += 15 {
			for b := 0; b < 256; b += 15 {
				check(RGB{uint8(r), uint8(g), uint8(b)})
			}
		}
	}
}

func TestLCHArithmetic(t *testing.T) {
	a := LCH{L: 0.25, C: 0.5, H: 300}
	b := LCH{L: 0.75, C: 0.25, H: 60}

	if got := a.Add(b.Sub(a).Scale(0)); got != a {
		t.Errorf("a + (b-a)*0 = %+v, want %+v", got, a)
	}
	got := a.Add(b.Sub(a).Scale(1))
	if math.Abs(got.L-b.L) > 1e-12 || math.Abs(got.C-b.C) > 1e-12 || math.Abs(got.H-b.H) > 1e-12 {
		t.Errorf("a + (b-a)*1 = %+v, want %+v", got, b)
	}
	mid := a.Add(b.Sub(a).Scale(0.5))
	want := LCH{L: 0.5, C: 0.375, H: 180}
	if math.Abs(mid.L-want.L) > 1e-12 || math.Abs(mid.C-want.C) > 1e-12 || math.Abs(mid.H-want.H) > 1e-12 {
		t.Errorf("midpoint = %+v, want %+v", mid, want)
	}
}

// TestRGBToHSVAgainstColorful cross-checks the conversion against the
// go-colorful reference implementation.
func TestRGBToHSVAgainstColorful(t *testing.T) {
	for _, r := range sampleBytes {
		for _, g := range sampleBytes {
			for _, b := range sampleBytes {
				in := RGB{r, g, b}
				h, s, v := RGBToHSV(in)
				ch, cs, cv := colorful.Color{
					R: float64(r) / 255,
					G: float64(g) / 255,
					B: float64(b) / 255,
				}.Hsv()
				if math.Abs(h-ch) > 1e-9 || math.Abs(s-cs) > 1e-9 || math.Abs(v-cv) > 1e-9 {
					t.Fatalf("RGBToHSV(%v) = (%v, %v, %v), colorful says (%v, %v, %v)",
						in, h, s, v, ch, cs, cv)
				}
			}
		}
	}
}

func TestHSVToRGBAgainstColorful(t *testing.T) {
	for h := 0.0; h < 360; h += 12.5 {
		for _, s := range []float64{0, 0.25, 0.5, 0.75, 1} {
			for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
				got := HSVToRGB(h, s, v)
				ref := colorful.Hsv(h, s, v)
				want := RGB{toByte(ref.R), toByte(ref.G), toByte(ref.B)}
				if !within(got, want, 1) {
					t.Fatalf("HSVToRGB(%v, %v, %v) = %v, colorful says %v", h, s, v, got, want)
				}
			}
		}
	}
}

// within reports whether every channel of a and b differs by at most tol.
func within(a, b RGB, tol int) bool {
	diff := func(x, y uint8) int {
		d := int(x) - int(y)
		if d < 0 {
			return -d
		}
		return d
	}
	return diff(a.R, b.R) <= tol && diff(a.G, b.G) <= tol && diff(a.B, b.B) <= tol
}
