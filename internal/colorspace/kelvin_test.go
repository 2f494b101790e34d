package colorspace

import "testing"

func TestKelvinToRGB(t *testing.T) {
	tests := []struct {
		name   string
		kelvin float64
		want   RGB
	}{
		{"candle", 1000, RGB{255, 68, 0}},
		{"incandescent", 2700, RGB{255, 167, 87}},
		{"halogen", 3500, RGB{255, 193, 141}},
		{"daylight", 6500, RGB{255, 254, 250}},
		{"overcast sky", 7000, RGB{243, 242, 255}},
		{"blue sky", 10000, RGB{202, 218, 255}},
		{"clamped low", 500, RGB{255, 68, 0}},
		{"clamped high", 50000, RGB{152, 186, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KelvinToRGB(tt.kelvin)
			if !within(got, tt.want, 1) {
				t.Errorf("KelvinToRGB(%v) = %v, want %v (within 1)", tt.kelvin, got, tt.want)
			}
		})
	}
}

func TestKelvinToRGBWarmth(t *testing.T) {
	// Blue rises monotonically with temperature through the sub-daylight
	// range while red stays saturated.
	prev := -1
	for k := 1500.0; k <= 6600; k += 100 {
		c := KelvinToRGB(k)
		if c.R != 255 {
			t.Errorf("KelvinToRGB(%v).R = %d, want 255", k, c.R)
		}
		if int(c.B) < prev {
			t.Errorf("KelvinToRGB(%v).B = %d, dropped below %d", k, c.B, prev)
		}
		prev = int(c.B)
	}
}
