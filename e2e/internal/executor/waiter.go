package executor

import (
	"time"
)

// WaitUntil waits until a specific time relative to start. Returns
// immediately if the target is already past.
func WaitUntil(startTime time.Time, targetSeconds float64) {
	targetTime := startTime.Add(time.Duration(targetSeconds * float64(time.Second)))
	now := time.Now()

	if now.Before(targetTime) {
		time.Sleep(targetTime.Sub(now))
	}
}

// GetElapsed returns elapsed seconds since start
func GetElapsed(startTime time.Time) float64 {
	return time.Since(startTime).Seconds()
}
