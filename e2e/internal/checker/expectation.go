package checker

import (
	"fmt"
	"math"

	"github.com/keyraphi/led-spot/e2e/internal/observer"
	"github.com/keyraphi/led-spot/e2e/internal/scenario"
	"github.com/keyraphi/led-spot/internal/colorspace"
)

// CheckExpectation validates an expectation against captured MQTT
// messages. The most recent message on the expectation's topic is the
// one checked: state topics are retained, so the newest message is the
// state the agent currently reports.
func CheckExpectation(exp scenario.Expectation, messages []observer.CapturedMessage) (bool, string, interface{}) {
	var latest *observer.CapturedMessage
	for i := range messages {
		if messages[i].Topic == exp.Topic {
			latest = &messages[i]
		}
	}

	if latest == nil {
		return false, fmt.Sprintf("no messages found for topic %q", exp.Topic), nil
	}

	if exp.Color != "" {
		if ok, reason := checkColor(exp, latest.Payload); !ok {
			return false, reason, latest.Payload
		}
	}

	if len(exp.Payload) > 0 {
		payloadMap, ok := latest.Payload.(map[string]interface{})
		if !ok {
			return false, fmt.Sprintf("payload is not a JSON object, got %T", latest.Payload), latest.Payload
		}

		matches, reason := MatchesExpectation(payloadMap, exp.Payload)
		if !matches {
			return false, reason, latest.Payload
		}
	}

	return true, "", latest.Payload
}

// checkColor compares the r/g/b fields of a state payload against a
// hex color, allowing each channel to be off by the tolerance.
func checkColor(exp scenario.Expectation, payload interface{}) (bool, string) {
	want, err := colorspace.ParseHex(exp.Color)
	if err != nil {
		return false, fmt.Sprintf("invalid expected color %q: %v", exp.Color, err)
	}

	payloadMap, ok := payload.(map[string]interface{})
	if !ok {
		return false, fmt.Sprintf("payload is not a JSON object, got %T", payload)
	}

	channels := []struct {
		key  string
		want float64
	}{
		{"r", float64(want.R)},
		{"g", float64(want.G)},
		{"b", float64(want.B)},
	}

	for _, ch := range channels {
		raw, exists := payloadMap[ch.key]
		if !exists {
			return false, fmt.Sprintf("payload has no %q field", ch.key)
		}

		got, ok := toFloat64(raw)
		if !ok {
			return false, fmt.Sprintf("field %q is not numeric: %v", ch.key, raw)
		}

		if math.Abs(got-ch.want) > float64(exp.Tolerance) {
			return false, fmt.Sprintf("channel %s: expected %.0f (tolerance %d), got %.0f",
				ch.key, ch.want, exp.Tolerance, got)
		}
	}

	return true, ""
}
