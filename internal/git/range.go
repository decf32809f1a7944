package git

import (
	"fmt"
	"strings"
)

// RangeSpec holds the two endpoints of a "start..end" range expression.
type RangeSpec struct {
	Start string
	End   string
}

// ParseRange splits a range expression into its endpoints.
// The expression must contain exactly one ".." separator with a non-empty
// revision on each side; anything else fails with ErrInvalidRange.
func ParseRange(expr string) (RangeSpec, error) {
	expr = strings.TrimSpace(expr)

	parts := strings.Split(expr, "..")
	if len(parts) != 2 {
		return RangeSpec{}, fmt.Errorf("%w: %q (expected start..end)", ErrInvalidRange, expr)
	}
	if parts[0] == "" {
		return RangeSpec{}, fmt.Errorf("%w: %q: missing start revision", ErrInvalidRange, expr)
	}
	if parts[1] == "" {
		return RangeSpec{}, fmt.Errorf("%w: %q: missing end revision", ErrInvalidRange, expr)
	}

	return RangeSpec{Start: parts[0], End: parts[1]}, nil
}
