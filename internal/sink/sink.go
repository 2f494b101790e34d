// Package sink delivers engine frames to an output device: PWM pins on
// a Raspberry Pi, an MQTT topic, a terminal, or nowhere.
package sink

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/keyraphi/led-spot/internal/colorspace"
	"github.com/keyraphi/led-spot/pkg/config"
	"github.com/keyraphi/led-spot/pkg/mqtt"
)

// Sink receives every frame the engine produces. Write is called from
// the frame loop only, so implementations do not need to be safe for
// concurrent use.
type Sink interface {
	Write(c colorspace.RGB)
	Close() error
}

// New builds the sink named by the configuration.
func New(cfg *config.Config, client mqtt.Client, logger *slog.Logger) (Sink, error) {
	switch cfg.SinkKind {
	case "gpio":
		return NewGPIO(cfg.PinRed, cfg.PinGreen, cfg.PinBlue, cfg.PWMFrequencyHz, logger)
	case "mqtt":
		if client == nil {
			return nil, fmt.Errorf("mqtt sink requires an MQTT client")
		}
		return NewMQTT(client, cfg.MQTTForwardTopic, logger), nil
	case "console":
		return NewConsole(os.Stdout), nil
	case "null":
		return NewNull(), nil
	default:
		return nil, fmt.Errorf("unknown sink: %s", cfg.SinkKind)
	}
}

type consoleSink struct {
	w io.Writer
}

// NewConsole returns a sink that renders the color as a truecolor
// swatch on one terminal line, overwriting it frame by frame.
func NewConsole(w io.Writer) Sink {
	return &consoleSink{w: w}
}

func (s *consoleSink) Write(c colorspace.RGB) {
	fmt.Fprintf(s.w, "\r\x1b[48;2;%d;%d;%dm   \x1b[0m %s", c.R, c.G, c.B, c.Hex())
}

func (s *consoleSink) Close() error {
	fmt.Fprintln(s.w)
	return nil
}

type nullSink struct{}

// NewNull returns a sink that discards every frame.
func NewNull() Sink {
	return nullSink{}
}

func (nullSink) Write(colorspace.RGB) {}

func (nullSink) Close() error { return nil }

type multiSink struct {
	sinks []Sink
}

// NewMulti fans every frame out to all the given sinks.
func NewMulti(sinks ...Sink) Sink {
	return &multiSink{sinks: sinks}
}

func (s *multiSink) Write(c colorspace.RGB) {
	for _, sub := range s.sinks {
		sub.Write(c)
	}
}

func (s *multiSink) Close() error {
	var errs []error
	for _, sub := range s.sinks {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
