package parity

import (
	"fmt"
	"strings"

	"github.com/yyyoichi/errdetect"
)

// Kind is the 1-count target of a parity bit.
type Kind int

const (
	Even Kind = iota
	Odd
)

func (k Kind) String() string {
	switch k {
	case Even:
		return "even"
	case Odd:
		return "odd"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind accepts "even" or "odd", case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "even":
		return Even, nil
	case "odd":
		return Odd, nil
	}
	return 0, fmt.Errorf("%w: parity kind %q", errdetect.ErrInvalidConfig, s)
}

// bit returns the parity bit that brings a block with the given number of
// ones to the target count.
func (k Kind) bit(ones int) string {
	odd := ones%2 == 1
	if (k == Even && !odd) || (k == Odd && odd) {
		return "0"
	}
	return "1"
}

func evenOdd(n int) string {
	if n%2 == 0 {
		return "even"
	}
	return "odd"
}
