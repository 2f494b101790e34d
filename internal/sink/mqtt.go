package sink

import (
	"encoding/json"
	"log/slog"

	"github.com/keyraphi/led-spot/internal/colorspace"
	"github.com/keyraphi/led-spot/pkg/mqtt"
)

// frameMessage is the JSON document forwarded per color change
type frameMessage struct {
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
	Hex string `json:"hex"`
}

type mqttSink struct {
	client  mqtt.Client
	topic   string
	logger  *slog.Logger
	lastHex string
}

// NewMQTT returns a sink that forwards frames to an MQTT topic as JSON
// color messages. Repeated frames with the same color are skipped so a
// held color does not flood the broker.
func NewMQTT(client mqtt.Client, topic string, logger *slog.Logger) Sink {
	return &mqttSink{
		client: client,
		topic:  topic,
		logger: logger,
	}
}

func (s *mqttSink) Write(c colorspace.RGB) {
	hex := c.Hex()
	if hex == s.lastHex {
		return
	}
	s.lastHex = hex

	payload, err := json.Marshal(frameMessage{R: c.R, G: c.G, B: c.B, Hex: hex})
	if err != nil {
		return
	}
	if err := s.client.Publish(s.topic, 0, false, payload); err != nil {
		s.logger.Debug("Failed to forward color", "topic", s.topic, "error", err)
	}
}

// Close is a no-op, the MQTT client is owned by the caller.
func (s *mqttSink) Close() error {
	return nil
}
