// spotlight-demo walks the animation engine through its modes on a
// terminal swatch. No broker or hardware required.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/keyraphi/led-spot/internal/colorspace"
	"github.com/keyraphi/led-spot/internal/easing"
	"github.com/keyraphi/led-spot/internal/sink"
	"github.com/keyraphi/led-spot/internal/spotlight"
)

type step struct {
	name string
	run  func(e *spotlight.Engine)
	wait time.Duration
}

func main() {
	frameIntervalMs := pflag.Int("frame-interval-ms", 20, "frame interval in milliseconds")
	stepSeconds := pflag.Float64("step-seconds", 4, "how long each demo step runs")
	pflag.Parse()

	out := sink.NewConsole(os.Stdout)
	engine := spotlight.New(out.Write, nil, nil)

	hold := time.Duration(*stepSeconds * float64(time.Second))
	palette := []colorspace.RGB{
		{R: 255, G: 0, B: 0},
		{R: 255, G: 160, B: 0},
		{R: 0, G: 200, B: 80},
		{R: 0, G: 80, B: 255},
		{R: 160, G: 0, B: 255},
	}

	steps := []step{
		{"fade to red", func(e *spotlight.Engine) {
			e.SetTransitionDuration(1.0)
			e.SetRGB(255, 0, 0)
		}, hold},
		{"elastic fade to blue", func(e *spotlight.Engine) {
			e.SetTransitionDuration(1.5)
			e.SetTransitionEasing(easing.ElasticInOut)
			e.SetRGB(0, 64, 255)
		}, hold},
		{"bounce fade to green", func(e *spotlight.Engine) {
			e.SetTransitionEasing(easing.BounceInOut)
			e.SetRGB(0, 200, 80)
		}, hold},
		{"warm white (2700K)", func(e *spotlight.Engine) {
			e.SetColorTemperature(2700, 1.0)
		}, hold},
		{"overcast sky (7000K)", func(e *spotlight.Engine) {
			e.SetColorTemperature(7000, 1.0)
		}, hold},
		{"color wheel", func(e *spotlight.Engine) {
			e.EnableColorWheelMode(6, spotlight.Clockwise)
		}, 2 * hold},
		{"color wheel, reversed", func(e *spotlight.Engine) {
			e.EnableColorWheelMode(6, spotlight.CounterClockwise)
		}, hold},
		{"color cycle", func(e *spotlight.Engine) {
			e.SetCycleDuration(1.0)
			e.SetCycleEasing(easing.SineInOut)
			e.EnableColorCycleMode(palette, false)
		}, 2 * hold},
		{"random color cycle", func(e *spotlight.Engine) {
			e.SetCycleDuration(0.6)
			e.EnableColorCycleMode(palette, true)
		}, 2 * hold},
		{"fade out", func(e *spotlight.Engine) {
			e.SetTransitionDuration(2.0)
			e.SetTransitionEasing(easing.CubicInOut)
			e.SetRGB(0, 0, 0)
		}, hold},
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Duration(*frameIntervalMs) * time.Millisecond)
	defer ticker.Stop()

	for _, st := range steps {
		fmt.Printf("\n%s\n", st.name)
		st.run(engine)

		deadline := time.After(st.wait)
	frames:
		for {
			select {
			case <-ticker.C:
				engine.Tick()
			case <-deadline:
				break frames
			case <-sigChan:
				out.Close()
				fmt.Println("interrupted")
				return
			}
		}
	}

	out.Close()
}
