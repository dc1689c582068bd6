package parity

import (
	"fmt"

	"github.com/yyyoichi/errdetect"
)

const DefaultBlockSize = 8

// Option configures a parity Codec.
type Option func(*Codec) error

// WithBlockSize sets the number of data bits covered by one parity bit.
// On the receiving side each unit is blockSize+1 bits wide.
func WithBlockSize(n int) Option {
	return func(c *Codec) error {
		if n <= 0 {
			return fmt.Errorf("%w: block size %d", errdetect.ErrInvalidConfig, n)
		}
		c.blockSize = n
		return nil
	}
}

// WithKind selects even or odd parity.
func WithKind(k Kind) Option {
	return func(c *Codec) error {
		if k != Even && k != Odd {
			return fmt.Errorf("%w: parity kind %d", errdetect.ErrInvalidConfig, int(k))
		}
		c.kind = k
		return nil
	}
}
