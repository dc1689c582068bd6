// Package strmark converts text to and from bit strings so that text can be
// fed to the codecs as a payload.
package strmark

import (
	"fmt"

	"github.com/yyyoichi/errdetect"
	"github.com/yyyoichi/errdetect/internal/bitstr"
)

// Encode encodes the input string into a bit string, 8 bits per byte, MSB first.
func Encode(src string) string {
	return bitstr.FromBytes([]byte(src))
}

// Decode decodes a bit string back into the original string.
// Whitespace is ignored and a trailing partial byte is padded with zero bits.
func Decode(bits string) (string, error) {
	bits, err := bitstr.Check(bits, true)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errdetect.ErrInvalidInput, err)
	}
	return string(bitstr.ToBytes(bits)), nil
}
