package checker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesExpectation(t *testing.T) {
	tests := []struct {
		name     string
		actual   interface{}
		expected interface{}
		want     bool
	}{
		{"equal strings", "wheel", "wheel", true},
		{"different strings", "wheel", "cycle", false},
		{"string vs number", 42, "wheel", false},
		{"equal bools", true, true, true},
		{"different bools", false, true, false},
		{"equal ints", 128, 128, true},
		{"int vs float", float64(128), 128, true},
		{"different numbers", float64(127), 128, false},
		{"regex match", "#ff4000", "~^#[0-9a-f]{6}$~", true},
		{"regex mismatch", "not-a-color", "~^#[0-9a-f]{6}$~", false},
		{"greater than", float64(200), ">100", true},
		{"greater than fails", float64(50), ">100", false},
		{"less or equal", float64(100), "<=100", true},
		{"comparison on string", "fast", ">100", false},
		{"nil both", nil, nil, true},
		{"nil actual", nil, "idle", false},
		{
			name:     "map subset",
			actual:   map[string]interface{}{"mode": "idle", "r": float64(255), "daylight": false},
			expected: map[string]interface{}{"mode": "idle"},
			want:     true,
		},
		{
			name:     "map missing key",
			actual:   map[string]interface{}{"mode": "idle"},
			expected: map[string]interface{}{"override": true},
			want:     false,
		},
		{
			name:     "nested map value",
			actual:   map[string]interface{}{"mode": "wheel", "r": float64(200)},
			expected: map[string]interface{}{"mode": "wheel", "r": ">100"},
			want:     true,
		},
		{
			name:     "array match",
			actual:   []interface{}{"#ff0000", "#00ff00"},
			expected: []interface{}{"#ff0000", "#00ff00"},
			want:     true,
		},
		{
			name:     "array length mismatch",
			actual:   []interface{}{"#ff0000"},
			expected: []interface{}{"#ff0000", "#00ff00"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := MatchesExpectation(tt.actual, tt.expected)
			assert.Equal(t, tt.want, got, "reason: %s", reason)
			if !tt.want {
				assert.NotEmpty(t, reason)
			}
		})
	}
}
