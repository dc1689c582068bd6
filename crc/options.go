package crc

import (
	"fmt"

	"github.com/yyyoichi/errdetect"
	"github.com/yyyoichi/errdetect/internal/bitstr"
)

// DefaultPolynomial is x^4 + x + 1.
const DefaultPolynomial = "10011"

type Option func(*Codec) error

// WithPolynomial sets the generator polynomial, highest degree first.
// It must be at least 2 bits long and start with '1'.
func WithPolynomial(p string) Option {
	return func(c *Codec) error {
		if err := checkPolynomial(p); err != nil {
			return err
		}
		c.polynomial = p
		return nil
	}
}

func checkPolynomial(p string) error {
	if _, err := bitstr.Check(p, false); err != nil {
		return fmt.Errorf("%w: polynomial: %w", errdetect.ErrInvalidConfig, err)
	}
	if len(p) < 2 {
		return fmt.Errorf("%w: polynomial %q is shorter than 2 bits", errdetect.ErrInvalidConfig, p)
	}
	if p[0] != '1' {
		return fmt.Errorf("%w: polynomial %q must start with 1", errdetect.ErrInvalidConfig, p)
	}
	return nil
}
