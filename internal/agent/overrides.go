package agent

import (
	"sync"
	"time"
)

// OverrideManager tracks the manual override window. A manual color
// command pauses daylight mode until the window expires or is cleared.
type OverrideManager struct {
	mu        sync.Mutex
	expiresAt time.Time
}

// NewOverrideManager creates a new override manager
func NewOverrideManager() *OverrideManager {
	return &OverrideManager{}
}

// Set starts or extends the override window and returns when it expires
func (om *OverrideManager) Set(d time.Duration) time.Time {
	om.mu.Lock()
	defer om.mu.Unlock()

	om.expiresAt = time.Now().Add(d)
	return om.expiresAt
}

// Active reports whether an override is in effect. An expired override
// is cleared on the way out.
func (om *OverrideManager) Active() bool {
	om.mu.Lock()
	defer om.mu.Unlock()

	if om.expiresAt.IsZero() {
		return false
	}
	if time.Now().After(om.expiresAt) {
		om.expiresAt = time.Time{}
		return false
	}
	return true
}

// Clear removes the override, returns true if one was active
func (om *OverrideManager) Clear() bool {
	om.mu.Lock()
	defer om.mu.Unlock()

	if om.expiresAt.IsZero() {
		return false
	}
	om.expiresAt = time.Time{}
	return true
}

// ExpiresAt returns the current override expiry, if any
func (om *OverrideManager) ExpiresAt() (time.Time, bool) {
	om.mu.Lock()
	defer om.mu.Unlock()

	if om.expiresAt.IsZero() || time.Now().After(om.expiresAt) {
		return time.Time{}, false
	}
	return om.expiresAt, true
}
