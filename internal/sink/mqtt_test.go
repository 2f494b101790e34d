package sink

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/keyraphi/led-spot/internal/colorspace"
	"github.com/keyraphi/led-spot/pkg/mqtt"
)

type publishedMsg struct {
	topic    string
	qos      byte
	retained bool
	payload  string
}

type fakeClient struct {
	published  []publishedMsg
	publishErr error
	connected  bool
}

func (f *fakeClient) Connect(ctx context.Context) error { f.connected = true; return nil }
func (f *fakeClient) Disconnect()                       { f.connected = false }
func (f *fakeClient) IsConnected() bool                 { return f.connected }

func (f *fakeClient) Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error {
	return nil
}

func (f *fakeClient) Publish(topic string, qos byte, retained bool, payload []byte) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.published = append(f.published, publishedMsg{topic, qos, retained, string(payload)})
	return nil
}

func TestMQTTSinkPublishesFrame(t *testing.T) {
	client := &fakeClient{}
	s := NewMQTT(client, "lights/raw", discardLogger())

	s.Write(colorspace.RGB{R: 255, G: 0, B: 0})

	if len(client.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(client.published))
	}
	msg := client.published[0]
	if msg.topic != "lights/raw" {
		t.Errorf("unexpected topic: %s", msg.topic)
	}
	var frame frameMessage
	if err := json.Unmarshal([]byte(msg.payload), &frame); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if frame.R != 255 || frame.G != 0 || frame.B != 0 || frame.Hex != "#ff0000" {
		t.Errorf("unexpected frame: %+v", frame)
	}
	if msg.retained {
		t.Error("frames should not be retained")
	}
}

func TestMQTTSinkSkipsRepeatedColor(t *testing.T) {
	client := &fakeClient{}
	s := NewMQTT(client, "lights/raw", discardLogger())

	s.Write(colorspace.RGB{R: 255, G: 0, B: 0})
	s.Write(colorspace.RGB{R: 255, G: 0, B: 0})
	s.Write(colorspace.RGB{R: 0, G: 0, B: 255})

	if len(client.published) != 2 {
		t.Fatalf("expected 2 publishes, got %d", len(client.published))
	}
	var frame frameMessage
	if err := json.Unmarshal([]byte(client.published[1].payload), &frame); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if frame.Hex != "#0000ff" {
		t.Errorf("unexpected second frame: %+v", frame)
	}
}

func TestMQTTSinkToleratesPublishError(t *testing.T) {
	client := &fakeClient{publishErr: errors.New("broker down")}
	s := NewMQTT(client, "lights/raw", discardLogger())

	// Must not panic, the frame loop keeps running without the broker.
	s.Write(colorspace.RGB{R: 1, G: 2, B: 3})
	s.Write(colorspace.RGB{R: 4, G: 5, B: 6})
}
