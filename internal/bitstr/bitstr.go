// Package bitstr holds the bit-string primitives shared by every codec.
// A bit string is a Go string over the alphabet {'0', '1'}.
package bitstr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrEmpty     = errors.New("empty bit string")
	ErrNotBinary = errors.New("non-binary character")
	ErrBlockSize = errors.New("block size must be positive")
)

// Clean removes every whitespace character from s.
func Clean(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Check returns s (whitespace stripped when allowWhitespace is set) if it is
// a non-empty string of '0' and '1' characters.
func Check(s string, allowWhitespace bool) (string, error) {
	if allowWhitespace {
		s = Clean(s)
	}
	if s == "" {
		return "", ErrEmpty
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '0' && s[i] != '1' {
			return "", fmt.Errorf("%w %q at %d", ErrNotBinary, s[i], i)
		}
	}
	return s, nil
}

// Validate reports whether s is an acceptable bit string.
func Validate(s string, allowWhitespace bool) bool {
	_, err := Check(s, allowWhitespace)
	return err == nil
}

// SplitBlocks slices payload into size-wide blocks. The final block is
// right-padded with '0'.
func SplitBlocks(payload string, size int) ([]string, error) {
	blocks, err := SplitRaw(payload, size)
	if err != nil {
		return nil, err
	}
	if n := len(blocks); n > 0 {
		blocks[n-1] = PadRight(blocks[n-1], size)
	}
	return blocks, nil
}

// SplitRaw is SplitBlocks without padding: a short trailing block is kept as-is.
func SplitRaw(payload string, size int) ([]string, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrBlockSize, size)
	}
	blocks := make([]string, 0, (len(payload)+size-1)/size)
	for i := 0; i < len(payload); i += size {
		blocks = append(blocks, payload[i:min(i+size, len(payload))])
	}
	return blocks, nil
}

func CountOnes(s string) int {
	return strings.Count(s, "1")
}

// FormatUint renders v in binary, left-padded with '0' to width.
// A value wider than width is returned in full, never truncated.
func FormatUint(v uint64, width int) string {
	return PadLeft(strconv.FormatUint(v, 2), width)
}

func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return Zeros(width-len(s)) + s
}

func PadRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + Zeros(width-len(s))
}

func Zeros(n int) string {
	return strings.Repeat("0", max(n, 0))
}

func Ones(n int) string {
	return strings.Repeat("1", max(n, 0))
}

// Flip inverts the bits of s at the given positions. Out of range positions
// are ignored; a position listed twice is flipped twice.
func Flip(s string, at ...int) string {
	b := []byte(s)
	for _, i := range at {
		if i < 0 || i >= len(b) {
			continue
		}
		if b[i] == '1' {
			b[i] = '0'
		} else {
			b[i] = '1'
		}
	}
	return string(b)
}

// XOR returns the bitwise XOR of two equal-length bit strings.
func XOR(a, b string) string {
	out := make([]byte, len(a))
	for i := range out {
		if a[i] == b[i] {
			out[i] = '0'
		} else {
			out[i] = '1'
		}
	}
	return string(out)
}
