package scenario

import (
	"fmt"

	"github.com/keyraphi/led-spot/internal/colorspace"
)

// ValidateScenario performs validation checks on a loaded scenario
func ValidateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("scenario description is required")
	}

	if s.Setup.Device == "" {
		return fmt.Errorf("setup.device is required")
	}

	if err := validateCommands(s.Commands); err != nil {
		return fmt.Errorf("commands validation failed: %w", err)
	}

	if err := validateWaitPeriods(s.Wait); err != nil {
		return fmt.Errorf("wait periods validation failed: %w", err)
	}

	if err := validateExpectations(s.Expectations); err != nil {
		return fmt.Errorf("expectations validation failed: %w", err)
	}

	return nil
}

func validateCommands(steps []CommandStep) error {
	if len(steps) == 0 {
		return fmt.Errorf("at least one command is required")
	}

	for i, step := range steps {
		if step.Time < 0 {
			return fmt.Errorf("command %d: time cannot be negative", i)
		}

		if step.Action == "" {
			return fmt.Errorf("command %d: action is required", i)
		}

		if step.Description == "" {
			return fmt.Errorf("command %d: description is required", i)
		}
	}

	return nil
}

func validateWaitPeriods(waits []WaitPeriod) error {
	for i, wait := range waits {
		if wait.Time < 0 {
			return fmt.Errorf("wait period %d: time cannot be negative", i)
		}

		if wait.Description == "" {
			return fmt.Errorf("wait period %d: description is required", i)
		}
	}

	return nil
}

func validateExpectations(expectations map[string][]Expectation) error {
	if len(expectations) == 0 {
		return fmt.Errorf("at least one expectation is required")
	}

	for layer, exps := range expectations {
		if layer == "" {
			return fmt.Errorf("expectation layer name cannot be empty")
		}

		for i, exp := range exps {
			if exp.Time < 0 {
				return fmt.Errorf("layer %s, expectation %d: time cannot be negative", layer, i)
			}

			if exp.Topic == "" {
				return fmt.Errorf("layer %s, expectation %d: topic is required", layer, i)
			}

			if len(exp.Payload) == 0 && exp.Color == "" {
				return fmt.Errorf("layer %s, expectation %d: either payload or color is required", layer, i)
			}

			if exp.Color != "" {
				if _, err := colorspace.ParseHex(exp.Color); err != nil {
					return fmt.Errorf("layer %s, expectation %d: invalid color: %w", layer, i, err)
				}
			}

			if exp.Tolerance < 0 || exp.Tolerance > 255 {
				return fmt.Errorf("layer %s, expectation %d: tolerance must be between 0 and 255", layer, i)
			}

			if exp.Tolerance > 0 && exp.Color == "" {
				return fmt.Errorf("layer %s, expectation %d: tolerance requires color", layer, i)
			}
		}
	}

	return nil
}
