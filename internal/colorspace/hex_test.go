package colorspace

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    RGB
		wantErr bool
	}{
		{"plain", "ff8000", RGB{255, 128, 0}, false},
		{"hash prefix", "#ff8000", RGB{255, 128, 0}, false},
		{"uppercase", "FF8000", RGB{255, 128, 0}, false},
		{"black", "000000", RGB{0, 0, 0}, false},
		{"white", "#FFFFFF", RGB{255, 255, 255}, false},
		{"padded", "  #00ff00  ", RGB{0, 255, 0}, false},
		{"too short", "fff", RGB{}, true},
		{"too long", "ff80001", RGB{}, true},
		{"not hex", "gg0000", RGB{}, true},
		{"empty", "", RGB{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, c := range []RGB{{0, 0, 0}, {255, 255, 255}, {1, 2, 3}, {171, 205, 239}} {
		got, err := ParseHex(c.Hex())
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", c.Hex(), err)
		}
		if got != c {
			t.Errorf("round trip %v -> %q -> %v", c, c.Hex(), got)
		}
	}
}
