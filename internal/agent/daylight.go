package agent

import (
	"math"
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/keyraphi/led-spot/internal/spotlight"
)

// daylightTarget maps the sun's altitude (radians above the horizon)
// to a color temperature and brightness. The temperature scales with
// sin(altitude) from minKelvin at the horizon to maxKelvin overhead.
// Below the horizon the lamp stays at minKelvin, dimmed for the night.
func daylightTarget(altitude, minKelvin, maxKelvin, nightBrightness float64) (kelvin, brightness float64) {
	frac := math.Sin(altitude)
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}

	kelvin = minKelvin + (maxKelvin-minKelvin)*frac
	brightness = 1.0
	if altitude <= 0 {
		brightness = nightBrightness
	}
	return kelvin, brightness
}

// runDaylightLoop periodically retargets the color temperature to the
// sun's position until the agent stops. The loop runs whether or not
// daylight mode is currently on; applyDaylight checks the flag.
func (a *Agent) runDaylightLoop() {
	interval := time.Duration(a.cfg.DaylightIntervalSec) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.logger.Info("Starting daylight scheduler",
		"interval_sec", a.cfg.DaylightIntervalSec,
		"enabled", a.daylight.Load(),
		"latitude", a.cfg.Latitude,
		"longitude", a.cfg.Longitude,
		"min_kelvin", a.cfg.DaylightMinKelvin,
		"max_kelvin", a.cfg.DaylightMaxKelvin)

	// Retarget right away instead of waiting out the first interval
	a.applyDaylight(time.Now())

	for {
		select {
		case <-ticker.C:
			a.applyDaylight(time.Now())
		case <-a.stopChan:
			return
		}
	}
}

// applyDaylight retargets the lamp unless daylight mode is off, a
// manual override is in effect, or an animation is running.
func (a *Agent) applyDaylight(now time.Time) {
	if !a.daylight.Load() {
		return
	}
	if a.overrides.Active() {
		a.logger.Debug("Manual override active, skipping daylight update")
		return
	}

	a.engineMux.Lock()
	mode := a.engine.Mode()
	a.engineMux.Unlock()
	if mode == spotlight.ModeWheel || mode == spotlight.ModeCycle {
		a.logger.Debug("Animation running, skipping daylight update", "mode", mode.String())
		return
	}

	position := suncalc.GetPosition(now, a.cfg.Latitude, a.cfg.Longitude)
	kelvin, brightness := daylightTarget(position.Altitude,
		a.cfg.DaylightMinKelvin, a.cfg.DaylightMaxKelvin, a.cfg.DaylightNightBrightness)

	a.engineMux.Lock()
	a.engine.SetColorTemperature(kelvin, brightness)
	a.engineMux.Unlock()

	a.logger.Debug("Applied daylight color temperature",
		"kelvin", kelvin,
		"brightness", brightness,
		"sun_altitude_deg", position.Altitude*(180.0/math.Pi))
}
