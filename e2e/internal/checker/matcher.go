package checker

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

// MatchesExpectation checks if actual value matches expected value.
// Returns (true, "") on match, (false, "reason") on mismatch.
//
// Expected strings support two matcher forms: ~pattern~ for regular
// expressions and >n, >=n, <n, <=n for numeric comparisons. Maps match
// when every expected key matches; extra keys in the actual value are
// ignored. Values come from decoded YAML and JSON, so the dynamic
// types are strings, bools, numbers, maps and slices.
func MatchesExpectation(actual, expected interface{}) (bool, string) {
	if expected == nil || actual == nil {
		if expected == nil && actual == nil {
			return true, ""
		}
		return false, fmt.Sprintf("expected %v, got %v", expected, actual)
	}

	switch exp := expected.(type) {
	case string:
		// Check for regex matcher: ~pattern~
		if len(exp) > 1 && strings.HasPrefix(exp, "~") && strings.HasSuffix(exp, "~") {
			return matchRegex(actual, strings.Trim(exp, "~"))
		}

		// Check for comparison matchers: >value, <value, >=value, <=value
		if strings.HasPrefix(exp, ">") || strings.HasPrefix(exp, "<") {
			return matchComparison(actual, exp)
		}

		actualStr, ok := actual.(string)
		if !ok {
			return false, fmt.Sprintf("expected string %q, got %T", exp, actual)
		}
		if actualStr != exp {
			return false, fmt.Sprintf("expected %q, got %q", exp, actualStr)
		}
		return true, ""

	case bool:
		actualBool, ok := actual.(bool)
		if !ok {
			return false, fmt.Sprintf("expected bool, got %T", actual)
		}
		if actualBool != exp {
			return false, fmt.Sprintf("expected %v, got %v", exp, actualBool)
		}
		return true, ""

	case map[string]interface{}:
		return matchMap(actual, exp)

	case []interface{}:
		return matchArray(actual, exp)

	default:
		// Numbers arrive as int from YAML and float64 from JSON, so
		// compare them as float64
		expectedNum, expOK := toFloat64(expected)
		if !expOK {
			if reflect.DeepEqual(actual, expected) {
				return true, ""
			}
			return false, fmt.Sprintf("expected %v, got %v", expected, actual)
		}

		actualNum, actOK := toFloat64(actual)
		if !actOK {
			return false, fmt.Sprintf("expected number %v, got %T", expected, actual)
		}

		if actualNum != expectedNum {
			return false, fmt.Sprintf("expected %v, got %v", expected, actual)
		}
		return true, ""
	}
}

// matchRegex checks if actual matches a regex pattern
func matchRegex(actual interface{}, pattern string) (bool, string) {
	actualStr := fmt.Sprintf("%v", actual)

	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Sprintf("invalid regex pattern %q: %v", pattern, err)
	}

	if re.MatchString(actualStr) {
		return true, ""
	}

	return false, fmt.Sprintf("value %q does not match pattern ~%s~", actualStr, pattern)
}

// matchComparison checks if actual satisfies a comparison (>, <, >=, <=)
func matchComparison(actual interface{}, comparison string) (bool, string) {
	actualNum, ok := toFloat64(actual)
	if !ok {
		return false, fmt.Sprintf("cannot compare non-numeric value: %v", actual)
	}

	var op, valueStr string
	switch {
	case strings.HasPrefix(comparison, ">="):
		op, valueStr = ">=", strings.TrimPrefix(comparison, ">=")
	case strings.HasPrefix(comparison, "<="):
		op, valueStr = "<=", strings.TrimPrefix(comparison, "<=")
	case strings.HasPrefix(comparison, ">"):
		op, valueStr = ">", strings.TrimPrefix(comparison, ">")
	case strings.HasPrefix(comparison, "<"):
		op, valueStr = "<", strings.TrimPrefix(comparison, "<")
	default:
		return false, fmt.Sprintf("invalid comparison: %s", comparison)
	}

	expectedNum, err := strconv.ParseFloat(strings.TrimSpace(valueStr), 64)
	if err != nil {
		return false, fmt.Sprintf("invalid comparison value: %s", valueStr)
	}

	var result bool
	switch op {
	case ">":
		result = actualNum > expectedNum
	case "<":
		result = actualNum < expectedNum
	case ">=":
		result = actualNum >= expectedNum
	case "<=":
		result = actualNum <= expectedNum
	}

	if result {
		return true, ""
	}

	return false, fmt.Sprintf("expected %s %v, got %v", op, expectedNum, actualNum)
}

// matchMap checks every expected key against the actual map
func matchMap(actual interface{}, expected map[string]interface{}) (bool, string) {
	actualMap, ok := actual.(map[string]interface{})
	if !ok {
		return false, fmt.Sprintf("expected map, got %T", actual)
	}

	for key, expectedValue := range expected {
		actualValue, exists := actualMap[key]
		if !exists {
			return false, fmt.Sprintf("missing key %q", key)
		}

		matches, reason := MatchesExpectation(actualValue, expectedValue)
		if !matches {
			return false, fmt.Sprintf("key %q: %s", key, reason)
		}
	}

	return true, ""
}

// matchArray performs element-wise matching
func matchArray(actual interface{}, expected []interface{}) (bool, string) {
	actualSlice, ok := actual.([]interface{})
	if !ok {
		return false, fmt.Sprintf("expected array, got %T", actual)
	}

	if len(actualSlice) != len(expected) {
		return false, fmt.Sprintf("expected array length %d, got %d", len(expected), len(actualSlice))
	}

	for i := range expected {
		matches, reason := MatchesExpectation(actualSlice[i], expected[i])
		if !matches {
			return false, fmt.Sprintf("element %d: %s", i, reason)
		}
	}

	return true, ""
}

// toFloat64 converts the numeric types YAML and JSON decoding produce
func toFloat64(val interface{}) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
