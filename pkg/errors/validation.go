package errors

import (
	"math"
	"slices"
	"strings"
)

// ValidatePositive reports a configuration error when v is not a finite
// value strictly greater than zero.
func ValidatePositive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeConfiguration, "%s must be finite, got %v", name, v)
	}
	if v <= 0 {
		return New(ErrCodeConfiguration, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidatePositiveInt reports a configuration error when n < 1.
func ValidatePositiveInt(name string, n int) error {
	if n < 1 {
		return New(ErrCodeConfiguration, "%s must be positive, got %d", name, n)
	}
	return nil
}

// ValidateNonNegative reports a configuration error when v is negative or
// not finite.
func ValidateNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return New(ErrCodeConfiguration, "%s must be a non-negative number, got %v", name, v)
	}
	return nil
}

// ValidateAtMost reports a configuration error when v exceeds limit.
func ValidateAtMost(name string, v, limit float64) error {
	if v > limit {
		return New(ErrCodeConfiguration, "%s must be at most %v, got %v", name, limit, v)
	}
	return nil
}

// ValidateFinite reports an input error when v is NaN or infinite.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be finite, got %v", name, v)
	}
	return nil
}

// ValidateOneOf reports a configuration error when value is not one of
// allowed. The message lists the allowed values in the given order.
func ValidateOneOf(name, value string, allowed ...string) error {
	if slices.Contains(allowed, value) {
		return nil
	}
	return New(ErrCodeConfiguration, "invalid %s: %q (must be one of: %s)", name, value, strings.Join(allowed, ", "))
}
