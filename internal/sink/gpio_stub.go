//go:build !linux

package sink

import (
	"fmt"
	"log/slog"
)

// NewGPIO is only available on linux, where periph can reach the pins.
func NewGPIO(pinRed, pinGreen, pinBlue string, freqHz int, logger *slog.Logger) (Sink, error) {
	return nil, fmt.Errorf("gpio sink is only available on linux")
}
