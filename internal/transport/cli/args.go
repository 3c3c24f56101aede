package cli

import (
	"fmt"
	"strconv"
)

// paramValidator checks a parsed integer argument.
type paramValidator func(valueToTest int64) bool

// gte returns a paramValidator accepting values greater than or equal to min.
func gte(min int64) paramValidator {
	return func(v int64) bool {
		return v >= min
	}
}

// parseValidate parses a base 10 integer argument and applies v to it.
func parseValidate(name, value string, v paramValidator) (int, error) {
	if value == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	n, err := strconv.ParseInt(value, 10, 32)
	if err != nil || !v(n) {
		return 0, fmt.Errorf("invalid %s: %s", name, value)
	}
	return int(n), nil
}

// parsePosition parses a 1-based list position.
func parsePosition(arg string) (int, error) {
	return parseValidate("position", arg, gte(1))
}
