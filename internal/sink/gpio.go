//go:build linux

package sink

import (
	"errors"
	"fmt"
	"log/slog"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/keyraphi/led-spot/internal/colorspace"
)

type gpioSink struct {
	red    gpio.PinIO
	green  gpio.PinIO
	blue   gpio.PinIO
	freq   physic.Frequency
	logger *slog.Logger
	failed bool
}

// NewGPIO returns a sink that drives three PWM pins, one per channel.
// Pin names are periph names such as "GPIO17".
func NewGPIO(pinRed, pinGreen, pinBlue string, freqHz int, logger *slog.Logger) (Sink, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize gpio host: %w", err)
	}

	pins := make([]gpio.PinIO, 0, 3)
	for _, name := range []string{pinRed, pinGreen, pinBlue} {
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, fmt.Errorf("unknown gpio pin: %s", name)
		}
		pins = append(pins, pin)
	}

	return &gpioSink{
		red:    pins[0],
		green:  pins[1],
		blue:   pins[2],
		freq:   physic.Frequency(freqHz) * physic.Hertz,
		logger: logger,
	}, nil
}

func (s *gpioSink) Write(c colorspace.RGB) {
	s.drive(s.red, c.R)
	s.drive(s.green, c.G)
	s.drive(s.blue, c.B)
}

func (s *gpioSink) drive(pin gpio.PinIO, value uint8) {
	duty := gpio.Duty(uint64(value) * uint64(gpio.DutyMax) / 255)
	if err := pin.PWM(duty, s.freq); err != nil {
		// Log the first failure only, this runs at frame rate.
		if !s.failed {
			s.failed = true
			s.logger.Error("PWM write failed", "pin", pin.Name(), "error", err)
		}
	}
}

func (s *gpioSink) Close() error {
	return errors.Join(s.red.Halt(), s.green.Halt(), s.blue.Halt())
}
