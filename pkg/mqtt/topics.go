package mqtt

import "fmt"

// Availability payloads published on the status topic.
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Topic layout: {base}/{channel}/{device}
//
//	ledspot/command/kitchen   inbound command JSON
//	ledspot/state/kitchen     retained state JSON
//	ledspot/status/kitchen    retained online/offline (last will)
//	ledspot/announce/kitchen  retained device announcement

// CommandTopic constructs the inbound command topic for a device.
func CommandTopic(base, device string) string {
	return fmt.Sprintf("%s/command/%s", base, device)
}

// StateTopic constructs the retained state topic for a device.
func StateTopic(base, device string) string {
	return fmt.Sprintf("%s/state/%s", base, device)
}

// StatusTopic constructs the retained availability topic for a device.
func StatusTopic(base, device string) string {
	return fmt.Sprintf("%s/status/%s", base, device)
}

// AnnounceTopic constructs the retained announcement topic used for
// device discovery.
func AnnounceTopic(base, device string) string {
	return fmt.Sprintf("%s/announce/%s", base, device)
}

// Wildcard matches every topic under base, across all devices and
// channels.
func Wildcard(base string) string {
	return fmt.Sprintf("%s/#", base)
}
