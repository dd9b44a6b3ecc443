// Package validate checks layout settings coming from flags, config and MCP
// tool arguments. Failures are *errors.ValidationError values.
package validate

import (
	"fmt"
	"math"
	"strings"

	clierrors "github.com/salmonumbrella/tabulate/internal/errors"
)

// MaxMinWidth bounds the minimum column width so a typo cannot allocate
// gigabyte-wide borders.
const MaxMinWidth = 1 << 12

// MinWidth validates a minimum column width.
func MinWidth(field string, n int) error {
	if n < 0 {
		return invalid(field, "must not be negative, got %d", n)
	}
	if n > MaxMinWidth {
		return invalid(field, "must be at most %d, got %d", MaxMinWidth, n)
	}
	return nil
}

// MinWidthNumber validates a minimum column width given as a JSON number.
func MinWidthNumber(field string, f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, invalid(field, "must be a whole number, got %v", f)
	}
	if f < 0 {
		return 0, invalid(field, "must not be negative, got %v", f)
	}
	if f > MaxMinWidth {
		return 0, invalid(field, "must be at most %d, got %v", MaxMinWidth, f)
	}
	return int(f), nil
}

// SingleLine validates text placed inside a table line, such as the column
// separator or the missing-cell marker.
func SingleLine(field, value string) error {
	if strings.ContainsAny(value, "\r\n") {
		return invalid(field, "must not contain line breaks, got %q", value)
	}
	return nil
}

func invalid(field, format string, args ...any) error {
	return &clierrors.ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
