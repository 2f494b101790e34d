package executor

import (
	"encoding/json"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTTPlayer publishes lamp commands to the MQTT broker
type MQTTPlayer struct {
	client    mqtt.Client
	baseTopic string
	logger    *log.Logger
}

// NewMQTTPlayer creates a new MQTT player
func NewMQTTPlayer(broker, baseTopic string, logger *log.Logger) (*MQTTPlayer, error) {
	if logger == nil {
		logger = log.Default()
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID("ledspot-test-player")
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	token.Wait()
	if token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	logger.Printf("Connected to MQTT broker at %s", broker)

	return &MQTTPlayer{
		client:    client,
		baseTopic: baseTopic,
		logger:    logger,
	}, nil
}

// PublishCommand publishes a command to a device's command topic. The
// action is merged with the params into a single JSON object, the
// document the agent accepts on {base}/command/{device}.
func (p *MQTTPlayer) PublishCommand(device, action string, params map[string]interface{}) error {
	payload := make(map[string]interface{}, len(params)+1)
	for key, value := range params {
		payload[key] = value
	}
	payload["action"] = action

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal command: %w", err)
	}

	topic := fmt.Sprintf("%s/command/%s", p.baseTopic, device)

	// Publish with QoS 1 to ensure delivery
	token := p.client.Publish(topic, 1, false, payloadBytes)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, token.Error())
	}

	p.logger.Printf("Published command to %s: %s", topic, string(payloadBytes))

	return nil
}

// Close disconnects from MQTT broker
func (p *MQTTPlayer) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
		p.logger.Printf("Disconnected from MQTT broker")
	}
}
