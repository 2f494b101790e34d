package executor

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/keyraphi/led-spot/e2e/internal/checker"
	"github.com/keyraphi/led-spot/e2e/internal/observer"
	"github.com/keyraphi/led-spot/e2e/internal/reporter"
	"github.com/keyraphi/led-spot/e2e/internal/scenario"
	"github.com/keyraphi/led-spot/pkg/mqtt"
)

// Runner orchestrates test scenario execution against a live agent
type Runner struct {
	mqttBroker string
	baseTopic  string
	logger     *log.Logger
	observer   *observer.Observer
	player     *MQTTPlayer
}

// NewRunner creates a new test runner
func NewRunner(mqttBroker, baseTopic string, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}

	return &Runner{
		mqttBroker: mqttBroker,
		baseTopic:  baseTopic,
		logger:     logger,
	}
}

// Run executes a test scenario
func (r *Runner) Run(s *scenario.Scenario) (*scenario.TestResult, []reporter.TimelineEvent, error) {
	r.logger.Printf("Starting scenario: %s", s.Name)
	r.logger.Printf("Description: %s", s.Description)

	// Initialize connections
	if err := r.initialize(); err != nil {
		return nil, nil, fmt.Errorf("initialization failed: %w", err)
	}
	defer r.cleanup()

	// Start capturing before the first command so the agent's retained
	// state lands in the capture too
	if err := r.observer.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start observer: %w", err)
	}

	r.logger.Printf("Waiting 2 seconds for retained messages...")
	time.Sleep(2 * time.Second)

	startTime := time.Now()
	var timelineEvents []reporter.TimelineEvent

	// Publish commands
	for _, step := range s.Commands {
		WaitUntil(startTime, step.Time)
		elapsed := GetElapsed(startTime)

		device := step.Device
		if device == "" {
			device = s.Setup.Device
		}

		stepDesc := fmt.Sprintf("%s on %s (%s)", step.Action, device, step.Description)
		r.logger.Printf("[%.2fs] Publishing command: %s", elapsed, stepDesc)

		if err := r.player.PublishCommand(device, step.Action, step.Params); err != nil {
			return nil, nil, fmt.Errorf("failed to publish command: %w", err)
		}

		timelineEvents = append(timelineEvents, reporter.TimelineEvent{
			Elapsed:     elapsed,
			Layer:       "command",
			Description: stepDesc,
			IsCheck:     false,
		})
	}

	// Execute wait periods
	for _, wait := range s.Wait {
		WaitUntil(startTime, wait.Time)
		elapsed := GetElapsed(startTime)

		r.logger.Printf("[%.2fs] Wait: %s", elapsed, wait.Description)

		timelineEvents = append(timelineEvents, reporter.TimelineEvent{
			Elapsed:     elapsed,
			Layer:       "wait",
			Description: fmt.Sprintf("%s (%.1fs)", wait.Description, wait.Time),
			IsCheck:     false,
		})
	}

	// Check expectations
	var expectationResults []scenario.ExpectationResult

	// Sort expectations by layer and time
	type layerExp struct {
		layer string
		exp   scenario.Expectation
	}
	var allExpectations []layerExp
	for layer, exps := range s.Expectations {
		for _, exp := range exps {
			allExpectations = append(allExpectations, layerExp{layer, exp})
		}
	}
	sort.Slice(allExpectations, func(i, j int) bool {
		return allExpectations[i].exp.Time < allExpectations[j].exp.Time
	})

	for _, le := range allExpectations {
		WaitUntil(startTime, le.exp.Time)
		elapsed := GetElapsed(startTime)

		r.logger.Printf("[%.2fs] Checking expectation: %s - %s",
			elapsed, le.layer, le.exp.Topic)

		messages := r.observer.GetAllMessages()
		passed, reason, actualPayload := checker.CheckExpectation(le.exp, messages)

		result := scenario.ExpectationResult{
			Layer:         le.layer,
			Expectation:   le.exp,
			Passed:        passed,
			Reason:        reason,
			ActualTopic:   le.exp.Topic,
			ActualPayload: actualPayload,
		}

		expectationResults = append(expectationResults, result)

		if passed {
			r.logger.Printf("[%.2fs] ✓ PASS", elapsed)
		} else {
			r.logger.Printf("[%.2fs] ✗ FAIL: %s", elapsed, reason)
		}

		timelineEvents = append(timelineEvents, reporter.TimelineEvent{
			Elapsed:     elapsed,
			Layer:       le.layer,
			Description: le.exp.Topic,
			Success:     passed,
			IsCheck:     true,
		})
	}

	endTime := time.Now()

	// Calculate results
	passedCount := 0
	failedCount := 0
	for _, result := range expectationResults {
		if result.Passed {
			passedCount++
		} else {
			failedCount++
		}
	}

	testResult := &scenario.TestResult{
		Scenario:     s,
		StartTime:    startTime,
		EndTime:      endTime,
		Passed:       failedCount == 0,
		PassedCount:  passedCount,
		FailedCount:  failedCount,
		Expectations: expectationResults,
	}

	return testResult, timelineEvents, nil
}

// initialize sets up the observer and command player
func (r *Runner) initialize() error {
	r.observer = observer.NewObserver(r.mqttBroker, mqtt.Wildcard(r.baseTopic), r.logger)

	player, err := NewMQTTPlayer(r.mqttBroker, r.baseTopic, r.logger)
	if err != nil {
		return fmt.Errorf("failed to create MQTT player: %w", err)
	}
	r.player = player

	return nil
}

// cleanup closes all connections
func (r *Runner) cleanup() {
	if r.observer != nil {
		r.observer.Stop()
	}
	if r.player != nil {
		r.player.Close()
	}
}

// SaveCapture saves the MQTT capture to a file
func (r *Runner) SaveCapture(filename string) error {
	if r.observer == nil {
		return fmt.Errorf("observer not initialized")
	}
	return r.observer.SaveCapture(filename)
}
